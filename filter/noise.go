package filter

import (
	"context"
	"strings"

	"github.com/rushteam/feedkit/core"
)

// defaultNoiseKeywords 是固定的运营/新闻/政治噪声词表。
// 这类内容不走个性化分发，统一剔除。
var defaultNoiseKeywords = []string{
	"ニュース",
	"news",
	"速報",
	"breaking",
	"政治",
	"politics",
	"選挙",
	"election",
	"記者会見",
	"official trailer",
}

// BrandNoise 是品牌/噪声过滤器：命中固定噪声词表即剔除，
// AllowChannelIDs 里的频道豁免（运营指定的窄例外）。
type BrandNoise struct {
	// Keywords 为空时使用默认词表。
	Keywords []string

	// AllowChannelIDs 是豁免频道（即便标题命中噪声词也保留）。
	AllowChannelIDs []string
}

func (f *BrandNoise) Name() string { return "filter.brand_noise" }

func (f *BrandNoise) ShouldFilter(
	_ context.Context,
	_ *core.RecommendContext,
	item *core.Item,
) (bool, error) {
	if item == nil || item.Video == nil {
		return true, nil
	}

	for _, allow := range f.AllowChannelIDs {
		if item.Video.ChannelID == allow {
			return false, nil
		}
	}

	keywords := f.Keywords
	if len(keywords) == 0 {
		keywords = defaultNoiseKeywords
	}

	haystack := strings.ToLower(item.Video.Title + " " + item.Video.ChannelName)
	for _, kw := range keywords {
		if strings.Contains(haystack, strings.ToLower(kw)) {
			return true, nil
		}
	}
	return false, nil
}
