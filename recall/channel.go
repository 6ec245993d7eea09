package recall

import (
	"context"

	"github.com/rushteam/feedkit/core"
)

// ChannelUploads 是频道直查召回源：列出单个订阅频道的最新视频。
// 引擎每次调用从订阅里随机采样至多 3 个频道，各建一个实例。
type ChannelUploads struct {
	Client    core.ContentSource
	ChannelID string
}

func (r *ChannelUploads) Name() string { return SourceChannel }

func (r *ChannelUploads) Recall(
	ctx context.Context,
	_ *core.RecommendContext,
) ([]*core.Item, error) {
	if r.Client == nil || r.ChannelID == "" {
		return nil, nil
	}

	videos, err := r.Client.ChannelVideos(ctx, r.ChannelID)
	if err != nil {
		return nil, err
	}

	out := make([]*core.Item, 0, len(videos))
	for _, v := range videos {
		if v == nil {
			continue
		}
		out = append(out, core.NewItem(v))
	}
	return out, nil
}
