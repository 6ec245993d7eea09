package filter

import (
	"context"

	"github.com/rushteam/feedkit/core"
)

// NGChannel 是拉黑频道过滤器：候选的频道标识在 NG 集合里即剔除。
// 本体无状态；拉黑集合经 ForRequest 按请求构建。
type NGChannel struct{}

func (f *NGChannel) Name() string { return "filter.ng_channel" }

// ForRequest 从本次请求的信号快照构建一次拉黑集合。
func (f *NGChannel) ForRequest(_ context.Context, rctx *core.RecommendContext) Filter {
	blocked := make(map[string]struct{})
	if rctx != nil && rctx.Signals != nil {
		for _, id := range rctx.Signals.NGChannelIDs {
			blocked[id] = struct{}{}
		}
	}
	return &ngChannelSnapshot{blocked: blocked}
}

// ShouldFilter 直接调用时每次重建集合；链内由 ForRequest 按请求构建一次。
func (f *NGChannel) ShouldFilter(
	ctx context.Context,
	rctx *core.RecommendContext,
	item *core.Item,
) (bool, error) {
	return f.ForRequest(ctx, rctx).ShouldFilter(ctx, rctx, item)
}

// ngChannelSnapshot 是单次请求的拉黑集合视图。
type ngChannelSnapshot struct {
	blocked map[string]struct{}
}

func (f *ngChannelSnapshot) Name() string { return "filter.ng_channel" }

func (f *ngChannelSnapshot) ShouldFilter(
	_ context.Context,
	_ *core.RecommendContext,
	item *core.Item,
) (bool, error) {
	if item == nil || item.Video == nil {
		return true, nil
	}
	_, hit := f.blocked[item.Video.ChannelID]
	return hit, nil
}
