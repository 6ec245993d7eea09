package filter

import (
	"context"

	"github.com/rushteam/feedkit/core"
)

// Seen 是已看过滤器：剔除已展示/已观看/手动隐藏的候选。
//
// 数据源有两层：
//  1. 请求内快照（UserSignals.SeenVideoIDs）——近期数据，必查
//  2. 可选的 Store（长周期已看记录，zset 按看过时间存）——配置了才查
//
// Store 查询失败按“查不到”处理，绝不因为存储抖动误杀或误放大盘。
// 本体只持配置；已看集合经 ForRequest 按请求构建，不在实例上留存。
type Seen struct {
	// Store 是可选的长周期已看记录后端。
	Store core.KeyValueStore

	// KeyPrefix 是 Store 中的 key 前缀，实际 key 为 {KeyPrefix}:{UserID}。
	// 默认 "feed:seen"。
	KeyPrefix string

	// HistoryDepth 是从 Store 取回的已看条数上限，默认 1000。
	HistoryDepth int64
}

func (f *Seen) Name() string { return "filter.seen" }

// ForRequest 为本次请求构建一次已看集合，之后逐候选 O(1) 查询。
func (f *Seen) ForRequest(ctx context.Context, rctx *core.RecommendContext) Filter {
	return &seenSnapshot{set: f.buildSet(ctx, rctx)}
}

// ShouldFilter 直接调用（不经 Node）时每次重建集合；
// 链内由 ForRequest 按请求构建一次。
func (f *Seen) ShouldFilter(
	ctx context.Context,
	rctx *core.RecommendContext,
	item *core.Item,
) (bool, error) {
	return f.ForRequest(ctx, rctx).ShouldFilter(ctx, rctx, item)
}

func (f *Seen) buildSet(ctx context.Context, rctx *core.RecommendContext) map[string]struct{} {
	set := make(map[string]struct{})
	if rctx == nil {
		return set
	}
	if rctx.Signals != nil {
		set = rctx.Signals.SeenSet()
	}

	if f.Store == nil || rctx.UserID == "" {
		return set
	}

	prefix := f.KeyPrefix
	if prefix == "" {
		prefix = "feed:seen"
	}
	depth := f.HistoryDepth
	if depth <= 0 {
		depth = 1000
	}

	ids, err := f.Store.ZRange(ctx, prefix+":"+rctx.UserID, 0, depth-1)
	if err != nil {
		return set
	}
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

// seenSnapshot 是单次请求的已看集合视图。
type seenSnapshot struct {
	set map[string]struct{}
}

func (f *seenSnapshot) Name() string { return "filter.seen" }

func (f *seenSnapshot) ShouldFilter(
	_ context.Context,
	_ *core.RecommendContext,
	item *core.Item,
) (bool, error) {
	if item == nil {
		return true, nil
	}
	_, hit := f.set[item.ID()]
	return hit, nil
}
