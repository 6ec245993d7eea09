package recall

import (
	"context"

	"github.com/rushteam/feedkit/core"
	"github.com/rushteam/feedkit/pkg/utils"
)

// Search 是搜索召回源：一条查询词对应一个实例，由引擎按 Query Generator
// 的产出逐条构建后交给 Fanout 并发执行。
type Search struct {
	Client    core.ContentSource
	Query     string
	PageToken string // 分页变体用；空串表示第一页
}

func (r *Search) Name() string { return SourceSearch }

func (r *Search) Recall(
	ctx context.Context,
	_ *core.RecommendContext,
) ([]*core.Item, error) {
	if r.Client == nil || r.Query == "" {
		return nil, nil
	}

	res, err := r.Client.Search(ctx, r.Query, r.PageToken)
	if err != nil {
		return nil, err
	}
	if res == nil {
		return nil, nil
	}

	out := make([]*core.Item, 0, len(res.Videos)+len(res.Shorts))
	for _, v := range res.Videos {
		if v == nil {
			continue
		}
		it := core.NewItem(v)
		it.PutLabel("query", utils.Label{Value: r.Query, Source: "recall"})
		out = append(out, it)
	}
	for _, v := range res.Shorts {
		if v == nil {
			continue
		}
		it := core.NewItem(v)
		it.PutLabel("query", utils.Label{Value: r.Query, Source: "recall"})
		// 内容源已判定的短视频，混排阶段直接信任该标记
		it.PutLabel(LabelForm, utils.Label{Value: "short", Source: "recall"})
		out = append(out, it)
	}
	return out, nil
}
