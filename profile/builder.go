// Package profile 把用户信号汇聚成加权词向量（画像），供打分与短视频种子使用。
// 向量每次调用重建，不持久化；分类偏好原样透传，不做向量化。
package profile

import (
	"context"
	"math"

	"github.com/rushteam/feedkit/core"
	"github.com/rushteam/feedkit/pkg/keyword"
)

// 各信号源的基础权重。历史按 exp(-index/10) 做指数衰减，index 0 = 最近一条。
const (
	subscriptionWeight = 5.0

	shortsTitleWeight   = 3.0
	shortsChannelWeight = 4.0
	shortsHistoryCap    = 30

	watchTitleWeight   = 1.5
	watchChannelWeight = 2.0
	watchHistoryCap    = 20

	decayScale = 10.0
)

// Builder 构建用户画像向量。
type Builder struct {
	// Interests 是可选的长期兴趣特征服务（Feast 在线特征库）。
	// 取回失败按“无长期兴趣”处理，不影响请求内信号。
	Interests core.InterestService
}

// Build 从信号快照构建词向量并计算范数。
//
// 权重累加规则：
//   - 订阅频道名关键词：5.0
//   - 短视频观看历史（上限 30 条）：标题 3.0·e^(-i/10)，频道名 4.0·e^(-i/10)
//   - 长视频观看历史（上限 20 条）：标题 1.5·e^(-i/10)，频道名 2.0·e^(-i/10)
//   - 配置了 Interests 时，长期兴趣词权重按原值并入
func (b *Builder) Build(ctx context.Context, rctx *core.RecommendContext) *core.TermVector {
	tv := core.NewTermVector()
	if rctx == nil || rctx.Signals == nil {
		tv.Finalize()
		return tv
	}
	s := rctx.Signals

	for _, ch := range s.Subscriptions {
		addKeywords(tv, ch.Name, subscriptionWeight)
	}

	addHistory(tv, s.ShortsHistory, shortsHistoryCap, shortsTitleWeight, shortsChannelWeight)
	addHistory(tv, s.WatchHistory, watchHistoryCap, watchTitleWeight, watchChannelWeight)

	if b != nil && b.Interests != nil && rctx.UserID != "" {
		if weights, err := b.Interests.UserTermWeights(ctx, rctx.UserID); err == nil {
			for term, w := range weights {
				tv.Add(term, w)
			}
		}
	}

	tv.Finalize()
	return tv
}

func addHistory(tv *core.TermVector, entries []core.WatchEntry, limit int, titleW, channelW float64) {
	for i, e := range entries {
		if i >= limit {
			break
		}
		decay := math.Exp(-float64(i) / decayScale)
		addKeywords(tv, e.Title, titleW*decay)
		addKeywords(tv, e.ChannelName, channelW*decay)
	}
}

func addKeywords(tv *core.TermVector, text string, weight float64) {
	for _, tok := range keyword.Extract(text) {
		tv.Add(tok, weight)
	}
}
