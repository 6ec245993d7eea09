// Package rerank 提供排序后的重排节点：频道冷却多样性约束与分页截断。
package rerank

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/rushteam/feedkit/core"
	"github.com/rushteam/feedkit/pipeline"
	"github.com/rushteam/feedkit/pkg/utils"
)

const (
	// DefaultCooldown 同频道再次出现前需要先放行的候选数。
	DefaultCooldown = 3
	// DefaultMinResults 结果下限：低于它才触发热门回填。
	DefaultMinResults = 5

	// ParamTrendingPool 是 rctx.Params 里的回填池键，
	// 由引擎在召回阶段存入未过滤的热门候选。
	ParamTrendingPool = "trending_pool"
)

// Cooldown 对打分降序列表做频道多样性约束：
// 每个频道维护一个冷却计数，只有计数为 0 的频道候选才被放行；
// 放行后该频道计数重置为 Cooldown，其余频道的正计数各减 1。
// 被冷却挡下的候选直接丢弃，不再回流（高分也不例外）。
//
// 约束可能把结果砍得过短：低于 MinResults 时从热门池回填，
// 排除已出现与用户已看过的视频。回填是独立路径，会打日志并在
// rctx 上记 backfill Label，测试与观测都能分辨。
type Cooldown struct {
	// Cooldown 冷却窗口，<=0 时取 DefaultCooldown。
	Cooldown int
	// MinResults 回填下限，<=0 时取 DefaultMinResults。
	MinResults int

	Logger zerolog.Logger
}

func (n *Cooldown) Name() string { return "rerank.cooldown" }

func (n *Cooldown) Kind() pipeline.Kind { return pipeline.KindReRank }

func (n *Cooldown) Process(
	_ context.Context,
	rctx *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	window := n.Cooldown
	if window <= 0 {
		window = DefaultCooldown
	}

	cooldowns := make(map[string]int, 16)
	out := make([]*core.Item, 0, len(items))

	for _, it := range items {
		if it == nil || it.Video == nil {
			continue
		}
		ch := it.Video.ChannelID
		if cooldowns[ch] > 0 {
			continue
		}
		for other, c := range cooldowns {
			if c > 0 {
				cooldowns[other] = c - 1
			}
		}
		cooldowns[ch] = window
		out = append(out, it)
	}

	return n.backfill(rctx, out), nil
}

// backfill 结果不足下限时从热门池补齐，保持唯一性并排除已看内容。
func (n *Cooldown) backfill(rctx *core.RecommendContext, out []*core.Item) []*core.Item {
	floor := n.MinResults
	if floor <= 0 {
		floor = DefaultMinResults
	}
	if len(out) >= floor {
		return out
	}

	pool := trendingPool(rctx)
	if len(pool) == 0 {
		return out
	}

	picked := make(map[string]struct{}, len(out))
	for _, it := range out {
		picked[it.ID()] = struct{}{}
	}
	var seen map[string]struct{}
	if rctx != nil && rctx.Signals != nil {
		seen = rctx.Signals.SeenSet()
	}

	added := 0
	for _, it := range pool {
		if len(out) >= floor {
			break
		}
		if it == nil || it.Video == nil {
			continue
		}
		id := it.ID()
		if _, ok := picked[id]; ok {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		picked[id] = struct{}{}
		it.PutLabel("backfill", utils.Label{Value: "trending", Source: n.Name()})
		out = append(out, it)
		added++
	}

	if added > 0 {
		n.Logger.Info().
			Int("added", added).
			Int("floor", floor).
			Msg("cooldown result below floor, backfilled from trending pool")
		if rctx != nil {
			rctx.PutLabel("backfill", utils.Label{Value: "trending", Source: n.Name()})
		}
	}
	return out
}

func trendingPool(rctx *core.RecommendContext) []*core.Item {
	if rctx == nil || rctx.Params == nil {
		return nil
	}
	pool, _ := rctx.Params[ParamTrendingPool].([]*core.Item)
	return pool
}
