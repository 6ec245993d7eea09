package rerank

import (
	"context"

	"github.com/rushteam/feedkit/core"
	"github.com/rushteam/feedkit/pipeline"
)

// DefaultPageSize 分页扁平变体的单页大小。
const DefaultPageSize = 50

// TopN 截断到前 N 个候选。分页扁平变体不做热门/个性化混合，
// 打分排序后的列表直接截断返回。
type TopN struct {
	// N <=0 时取 DefaultPageSize。
	N int
}

func (n *TopN) Name() string        { return "rerank.topn" }
func (n *TopN) Kind() pipeline.Kind { return pipeline.KindReRank }

func (n *TopN) Process(
	_ context.Context,
	_ *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	limit := n.N
	if limit <= 0 {
		limit = DefaultPageSize
	}
	if len(items) <= limit {
		return items, nil
	}
	return items[:limit], nil
}
