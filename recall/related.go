package recall

import (
	"context"

	"github.com/rushteam/feedkit/core"
)

// Related 是相关视频召回源：以一条最近观看记录为种子，
// 取回其详情页的相关视频列表。默认不启用（engine.Config.RelatedSeeds）。
type Related struct {
	Client  core.ContentSource
	VideoID string
}

func (r *Related) Name() string { return SourceRelated }

func (r *Related) Recall(
	ctx context.Context,
	_ *core.RecommendContext,
) ([]*core.Item, error) {
	if r.Client == nil || r.VideoID == "" {
		return nil, nil
	}

	details, err := r.Client.VideoDetails(ctx, r.VideoID)
	if err != nil {
		return nil, err
	}
	if details == nil {
		return nil, nil
	}

	out := make([]*core.Item, 0, len(details.Related))
	for _, v := range details.Related {
		if v == nil {
			continue
		}
		out = append(out, core.NewItem(v))
	}
	return out, nil
}
