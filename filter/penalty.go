package filter

import (
	"context"

	"github.com/rushteam/feedkit/core"
)

// DefaultPenaltyThreshold 是负反馈惩罚的默认阈值：累积惩罚 >2 即剔除。
const DefaultPenaltyThreshold = 2.0

// Penalty 是负反馈关键词过滤器：候选关键词在惩罚表里的累积计数
// 超过阈值即剔除。惩罚表由调用方根据历史负反馈整理，引擎只读。
type Penalty struct {
	// Threshold 为 0 时取 DefaultPenaltyThreshold。
	Threshold float64
}

func (f *Penalty) Name() string { return "filter.penalty" }

func (f *Penalty) ShouldFilter(
	_ context.Context,
	rctx *core.RecommendContext,
	item *core.Item,
) (bool, error) {
	if item == nil {
		return true, nil
	}
	if rctx == nil || rctx.Signals == nil || len(rctx.Signals.NegativeKeywords) == 0 {
		return false, nil
	}

	threshold := f.Threshold
	if threshold == 0 {
		threshold = DefaultPenaltyThreshold
	}

	penalty := rctx.Signals.NegativeKeywords.Penalty(item.EnsureKeywords())
	return penalty > threshold, nil
}
