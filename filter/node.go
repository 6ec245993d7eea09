package filter

import (
	"context"

	"github.com/rushteam/feedkit/core"
	"github.com/rushteam/feedkit/pipeline"
	"github.com/rushteam/feedkit/pkg/utils"
)

// Node 是过滤 Node，按声明顺序组合多个过滤器。
// 单个候选遇到第一个命中的过滤器即短路剔除（顺序决定剔除原因的归属，
// 不影响最终保留集合）。
type Node struct {
	Filters []Filter
}

func (n *Node) Name() string {
	return "filter.chain"
}

func (n *Node) Kind() pipeline.Kind {
	return pipeline.KindFilter
}

func (n *Node) Process(
	ctx context.Context,
	rctx *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	if len(n.Filters) == 0 || len(items) == 0 {
		return items, nil
	}

	// 每请求派生状态（已看集合、词表）在这里换取一次，
	// Node 与其中的过滤器都可跨请求复用。
	filters := make([]Filter, len(n.Filters))
	for i, f := range n.Filters {
		if scoped, ok := f.(RequestScoped); ok {
			filters[i] = scoped.ForRequest(ctx, rctx)
		} else {
			filters[i] = f
		}
	}

	out := make([]*core.Item, 0, len(items))

	for _, item := range items {
		if item == nil {
			continue
		}

		rejected := false
		reason := ""

		for _, f := range filters {
			ok, err := f.ShouldFilter(ctx, rctx, item)
			if err != nil {
				// 过滤器自身出错时跳过该规则，不中断流程
				continue
			}
			if ok {
				rejected = true
				reason = f.Name()
				break
			}
		}

		if rejected {
			item.PutLabel("filtered", utils.Label{Value: "true", Source: reason})
			continue
		}

		out = append(out, item)
	}

	return out, nil
}
