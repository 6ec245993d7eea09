// Package blend 实现全量 Feed 的混排：长短视频分池、
// 热门与个性化按固定比例取量、注入随机源洗牌后输出。
package blend

import (
	"strings"

	"github.com/rushteam/feedkit/core"
	"github.com/rushteam/feedkit/pkg/duration"
	"github.com/rushteam/feedkit/recall"
)

const (
	// DefaultLongTarget 长视频目标条数。
	DefaultLongTarget = 50
	// DefaultShortTarget 短视频目标条数。
	DefaultShortTarget = 20
	// DefaultTrendingRatio 长视频里来自热门召回的固定占比。
	DefaultTrendingRatio = 0.40
)

// Mixer 把过滤打分后的候选混成最终 FeedResult。
// 它不是 pipeline.Node：输出形态是长/短两个列表而非单一候选序列，
// 由引擎在重排之后单独调用。
//
// 组成不变量：候选充足时，长视频恰好 LongTarget*TrendingRatio 条来自
// 热门召回，其余来自个性化召回；顺序由洗牌决定，不做承诺。
type Mixer struct {
	// LongTarget <=0 时取 DefaultLongTarget。
	LongTarget int
	// ShortTarget <=0 时取 DefaultShortTarget。
	ShortTarget int
	// TrendingRatio <=0 时取 DefaultTrendingRatio。
	TrendingRatio float64
}

// Mix 分池、取量、洗牌。洗牌全部走 rctx 注入的随机源，
// 未注入时顺序确定（测试模式）。
func (m *Mixer) Mix(rctx *core.RecommendContext, items []*core.Item) *core.FeedResult {
	longTarget := m.LongTarget
	if longTarget <= 0 {
		longTarget = DefaultLongTarget
	}
	shortTarget := m.ShortTarget
	if shortTarget <= 0 {
		shortTarget = DefaultShortTarget
	}
	ratio := m.TrendingRatio
	if ratio <= 0 {
		ratio = DefaultTrendingRatio
	}

	var trending, personalized, shorts []*core.Item
	for _, it := range items {
		if it == nil || it.Video == nil {
			continue
		}
		switch {
		case isShortForm(it):
			shorts = append(shorts, it)
		case isTrendingSourced(it):
			trending = append(trending, it)
		default:
			personalized = append(personalized, it)
		}
	}

	shuffle(rctx, trending)
	shuffle(rctx, personalized)

	trendingTake := int(float64(longTarget) * ratio)
	if trendingTake > len(trending) {
		trendingTake = len(trending)
	}
	personalizedTake := longTarget - trendingTake
	if personalizedTake > len(personalized) {
		personalizedTake = len(personalized)
	}

	long := make([]*core.Item, 0, trendingTake+personalizedTake)
	long = append(long, trending[:trendingTake]...)
	long = append(long, personalized[:personalizedTake]...)
	shuffle(rctx, long)

	shuffle(rctx, shorts)
	if len(shorts) > shortTarget {
		shorts = shorts[:shortTarget]
	}

	return &core.FeedResult{
		Videos: videos(long),
		Shorts: videos(shorts),
	}
}

// isShortForm 先看内容源打的形态标记，再退回时长/标题判定。
// Label 合并累积后可能是复合值，按段匹配。
func isShortForm(it *core.Item) bool {
	if lbl, ok := it.GetLabel(recall.LabelForm); ok && hasPart(lbl.Value, "short") {
		return true
	}
	return duration.IsShortForm(it.EnsureSeconds(), it.Video.Title)
}

// isTrendingSourced 判断候选是否来自热门召回。
// 去重合并后 recall_source 可能是 "search|trending" 这类复合值。
func isTrendingSourced(it *core.Item) bool {
	lbl, ok := it.GetLabel(recall.LabelRecallSource)
	if !ok {
		return false
	}
	return hasPart(lbl.Value, recall.SourceTrending)
}

func hasPart(merged, want string) bool {
	for _, part := range strings.Split(merged, "|") {
		if part == want {
			return true
		}
	}
	return false
}

func shuffle(rctx *core.RecommendContext, items []*core.Item) {
	if rctx == nil {
		return
	}
	rctx.Shuffle(len(items), func(i, j int) {
		items[i], items[j] = items[j], items[i]
	})
}

func videos(items []*core.Item) []*core.Video {
	out := make([]*core.Video, 0, len(items))
	for _, it := range items {
		out = append(out, it.Video)
	}
	return out
}
