// Package rank 实现多信号加权打分：时长偏好、频道亲和、标签命中、
// 分类偏好词组、新鲜度、向量相似度、负反馈惩罚与探索噪声的加性组合。
package rank

import (
	"context"
	"sort"
	"strings"

	"github.com/rushteam/feedkit/core"
	"github.com/rushteam/feedkit/pipeline"
	"github.com/rushteam/feedkit/pkg/duration"
	"github.com/rushteam/feedkit/pkg/utils"
)

// Mode 选择打分变体。两种变体共享同一条代码路径，只在
// 订阅加分、向量项与淘汰线三处取不同参数，避免历史上多份近似实现发散。
type Mode string

const (
	// ModeFlat 扁平打分：只用规则加分，淘汰线 -1000。
	ModeFlat Mode = "flat"
	// ModeVector 向量画像打分：追加余弦相似项与负反馈惩罚，淘汰线 -50。
	ModeVector Mode = "vector"
)

// 各信号的分值。
const (
	ngKeywordScore = -10000.0 // NG 命中直接出局，短路其余规则

	durationMatchBonus    = 50.0
	durationMismatchScore = -20.0

	preferredChannelBonus = 30.0
	subscribedBonusFlat   = 15.0
	subscribedBonusVector = 50.0

	genreBonus     = 10.0
	prefGroupBonus = 8.0
	freshnessBonus = 10.0

	vectorScale        = 100.0
	negativePenaltyMul = 20.0

	floorFlat   = -1000.0
	floorVector = -50.0
)

// recentMarkers 命中任意一个即认为“最近上传”（分钟/小时/天级别的相对时间文本）。
var recentMarkers = []string{"分前", "時間前", "日前", "minute", "hour", "day"}

// Scorer 是排序 Node：逐候选打分、淘汰低于下限的候选、按分数降序排序。
// 打分理由写入 score_reason Label，便于 explain。
type Scorer struct {
	Mode Mode

	// Vector 是用户画像词向量（ModeVector 时由引擎注入；nil 则向量项为 0）。
	Vector *core.TermVector

	// NoiseAmplitude 是探索噪声幅度：每个候选加上 [0, NoiseAmplitude) 的
	// 均匀随机值，打散完全确定的排序。0（或 rctx 未注入随机源）= 无噪声，
	// 测试用它拿到可复现的分数。
	NoiseAmplitude float64
}

func (n *Scorer) Name() string        { return "rank.scorer" }
func (n *Scorer) Kind() pipeline.Kind { return pipeline.KindRank }

func (n *Scorer) Process(
	_ context.Context,
	rctx *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	if len(items) == 0 {
		return items, nil
	}

	sig := signalsOf(rctx)
	prof := newMatcher(sig)

	out := make([]*core.Item, 0, len(items))
	floor := floorFlat
	if n.Mode == ModeVector {
		floor = floorVector
	}

	for _, it := range items {
		if it == nil || it.Video == nil {
			continue
		}
		n.score(rctx, prof, it)
		if it.Score < floor {
			continue
		}
		out = append(out, it)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score > out[j].Score
	})
	return out, nil
}

func (n *Scorer) score(rctx *core.RecommendContext, m *matcher, it *core.Item) {
	v := it.Video
	haystack := strings.ToLower(v.Title + " " + v.Description + " " + v.ChannelName)
	reasons := make([]string, 0, 4)

	// NG 命中：直接出局并短路，后面的加分救不回来
	if m.hitNG(haystack) {
		it.Score = ngKeywordScore
		it.PutLabel("score_reason", utils.Label{Value: "ng_keyword", Source: "rank"})
		return
	}

	var score float64

	// 时长偏好：可解析才有信号，不可解析不奖不罚
	if len(m.durations) > 0 {
		if secs := it.EnsureSeconds(); secs > 0 {
			if m.durationMatch(duration.Classify(secs)) {
				score += durationMatchBonus
				reasons = append(reasons, "duration")
			} else {
				score += durationMismatchScore
			}
		}
	}

	lowerChannel := strings.ToLower(v.ChannelName)
	for _, pc := range m.preferredChannels {
		if strings.Contains(lowerChannel, pc) {
			score += preferredChannelBonus
			reasons = append(reasons, "preferred_channel")
			break
		}
	}

	if m.subscribed(v.ChannelID, lowerChannel) {
		if n.Mode == ModeVector {
			score += subscribedBonusVector
		} else {
			score += subscribedBonusFlat
		}
		reasons = append(reasons, "subscribed")
	}

	for _, g := range m.genres {
		if strings.Contains(haystack, g) {
			score += genreBonus
			reasons = append(reasons, "genre:"+g)
		}
	}

	if hits := m.prefGroupHits(haystack); hits > 0 {
		score += prefGroupBonus * float64(hits)
		reasons = append(reasons, "pref_groups")
	}

	if m.freshness == core.FreshnessNew && isRecent(v.PublishedText) {
		score += freshnessBonus
		reasons = append(reasons, "fresh")
	}

	if n.Mode == ModeVector {
		if sim := n.Vector.Similarity(it.EnsureKeywords()); sim > 0 {
			score += vectorScale * sim
			reasons = append(reasons, "content_match")
		}
		if p := m.negatives.Penalty(it.EnsureKeywords()); p > 0 {
			score -= negativePenaltyMul * p
			reasons = append(reasons, "negative_feedback")
		}
	}

	if n.NoiseAmplitude > 0 {
		score += rctx.Float64() * n.NoiseAmplitude
	}

	it.Score = score
	if len(reasons) > 0 {
		it.PutLabel("score_reason", utils.Label{Value: strings.Join(reasons, "|"), Source: "rank"})
	}
}

func isRecent(publishedText string) bool {
	lower := strings.ToLower(publishedText)
	for _, marker := range recentMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}

func signalsOf(rctx *core.RecommendContext) *core.UserSignals {
	if rctx == nil || rctx.Signals == nil {
		return &core.UserSignals{}
	}
	return rctx.Signals
}
