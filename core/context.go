package core

import (
	"math/rand"

	"github.com/rushteam/feedkit/pkg/utils"
)

// RecommendContext 承载一次排序调用的用户信号与请求信息，贯穿整个 Pipeline 透传。
type RecommendContext struct {
	UserID string

	// Signals 是用户信号快照，调用方组装，引擎只读。
	Signals *UserSignals

	// Page 是个性化分页变体的页码/偏移计数。
	Page int

	// Rand 是注入的随机源（噪声、洗牌、频道采样都只用它）。
	// 可用固定种子做确定性测试；为 nil 时各节点视为零噪声。
	Rand *rand.Rand

	// Labels 是调用级标签：回填触发、降级来源等链路事件都记在这里，
	// 方便上游 explain / 观测。
	Labels map[string]utils.Label

	// Params 请求级上下文参数（搜索分页 token、实验开关等）。
	Params map[string]any
}

// PutLabel 写入调用级 Label。
func (rctx *RecommendContext) PutLabel(key string, lbl utils.Label) {
	if rctx.Labels == nil {
		rctx.Labels = make(map[string]utils.Label)
	}
	if old, ok := rctx.Labels[key]; ok {
		rctx.Labels[key] = utils.MergeLabel(old, lbl)
		return
	}
	rctx.Labels[key] = lbl
}

// GetLabel 获取调用级 Label。
func (rctx *RecommendContext) GetLabel(key string) (utils.Label, bool) {
	if rctx.Labels == nil {
		return utils.Label{}, false
	}
	lbl, ok := rctx.Labels[key]
	return lbl, ok
}

// Float64 返回 [0,1) 均匀随机数；未注入随机源时返回 0（确定性模式）。
func (rctx *RecommendContext) Float64() float64 {
	if rctx.Rand == nil {
		return 0
	}
	return rctx.Rand.Float64()
}

// Intn 返回 [0,n) 随机整数；未注入随机源时返回 0。
func (rctx *RecommendContext) Intn(n int) int {
	if rctx.Rand == nil || n <= 0 {
		return 0
	}
	return rctx.Rand.Intn(n)
}

// Shuffle 原地洗牌；未注入随机源时保持原顺序。
func (rctx *RecommendContext) Shuffle(n int, swap func(i, j int)) {
	if rctx.Rand == nil || n < 2 {
		return
	}
	rctx.Rand.Shuffle(n, swap)
}
