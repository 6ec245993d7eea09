// Package feature 提供候选特征补全节点。
package feature

import (
	"context"

	"github.com/rushteam/feedkit/core"
	"github.com/rushteam/feedkit/pipeline"
)

// EnrichNode 在召回之后一次性补全每个候选的派生特征：
// 抽取关键词、解析时长秒数。后续的过滤/打分阶段直接读缓存结果，
// 不再各自走懒加载路径。
type EnrichNode struct{}

func (n *EnrichNode) Name() string        { return "feature.enrich" }
func (n *EnrichNode) Kind() pipeline.Kind { return pipeline.KindPostProcess }

func (n *EnrichNode) Process(
	_ context.Context,
	_ *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	for _, it := range items {
		if it == nil || it.Video == nil {
			continue
		}
		it.EnsureKeywords()
		it.EnsureSeconds()
	}
	return items, nil
}
