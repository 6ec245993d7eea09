package filter

import (
	"context"
	"strings"

	"github.com/rushteam/feedkit/core"
)

// NGKeyword 是排除关键词过滤器：任一 NG 词是 title+channelName
//（开启 IncludeDescription 后再加 description）的大小写不敏感子串即剔除。
// 本体只持配置；小写化词表经 ForRequest 按请求构建。
type NGKeyword struct {
	// IncludeDescription 把简介也纳入匹配范围（向量画像变体开启）。
	IncludeDescription bool
}

func (f *NGKeyword) Name() string { return "filter.ng_keyword" }

// ForRequest 从本次请求的信号快照构建一次小写化词表。
func (f *NGKeyword) ForRequest(_ context.Context, rctx *core.RecommendContext) Filter {
	return &ngKeywordSnapshot{
		lowered:            loweredNGKeywords(rctx),
		includeDescription: f.IncludeDescription,
	}
}

// ShouldFilter 直接调用时每次重建词表；链内由 ForRequest 按请求构建一次。
func (f *NGKeyword) ShouldFilter(
	ctx context.Context,
	rctx *core.RecommendContext,
	item *core.Item,
) (bool, error) {
	return f.ForRequest(ctx, rctx).ShouldFilter(ctx, rctx, item)
}

func loweredNGKeywords(rctx *core.RecommendContext) []string {
	if rctx == nil || rctx.Signals == nil {
		return nil
	}
	lowered := make([]string, 0, len(rctx.Signals.NGKeywords))
	for _, ng := range rctx.Signals.NGKeywords {
		ng = strings.ToLower(strings.TrimSpace(ng))
		if ng != "" {
			lowered = append(lowered, ng)
		}
	}
	return lowered
}

// ngKeywordSnapshot 是单次请求的小写化词表视图。
type ngKeywordSnapshot struct {
	lowered            []string
	includeDescription bool
}

func (f *ngKeywordSnapshot) Name() string { return "filter.ng_keyword" }

func (f *ngKeywordSnapshot) ShouldFilter(
	_ context.Context,
	_ *core.RecommendContext,
	item *core.Item,
) (bool, error) {
	if item == nil || item.Video == nil {
		return true, nil
	}
	if len(f.lowered) == 0 {
		return false, nil
	}

	haystack := strings.ToLower(item.Video.Title + " " + item.Video.ChannelName)
	if f.includeDescription {
		haystack += " " + strings.ToLower(item.Video.Description)
	}

	for _, ng := range f.lowered {
		if strings.Contains(haystack, ng) {
			return true, nil
		}
	}
	return false, nil
}
