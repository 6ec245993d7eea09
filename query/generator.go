// Package query 把画像与显式偏好变成一组有上限的检索词，供召回 fan-out 使用。
package query

import (
	"strings"

	"github.com/rushteam/feedkit/core"
	"github.com/rushteam/feedkit/pkg/keyword"
)

// MaxQueries 是一次调用生成检索词的上限。
const MaxQueries = 5

// historySeedCap 是参与种子生成的最近搜索/观看历史条数（各自独立计数）。
const historySeedCap = 5

// fallbackSeeds 是兜底的宽泛种子（热门/音乐/游戏）。
var fallbackSeeds = []string{"trending videos", "music", "gaming"}

// shortsFallbackSeeds 是短视频变体的兜底种子。
var shortsFallbackSeeds = []string{"#shorts", "funny #shorts", "music #shorts", "game #shorts"}

// shortsMarker 追加在短视频种子后的标记。
const shortsMarker = "#shorts"

// Generator 生成检索词。无状态，可并发使用。
type Generator struct{}

// Generate 按优先级生成至多 MaxQueries 个互不相同的检索词：
//
//  1. 每个喜好标签一条（带上下文后缀；新鲜度偏好为 new 时再带新鲜度后缀）
//  2. 每个喜好频道名一条（带上下文后缀，不带新鲜度后缀）
//  3. 非纯探索模式：最近至多 5 条搜索历史原样各一条（显式意图，
//     排在观看派生种子之前）
//  4. 非纯探索模式：最近至多 5 条观看历史标题的主导关键词（首个 token）各一条
//  5. 非纯探索模式且有订阅：随机取一个订阅频道名做种子
//  6. 一条都没有、或纯探索模式：退回宽泛种子（仍带上下文后缀）
//
// 达到上限或来源用尽即停。
func (g *Generator) Generate(rctx *core.RecommendContext) []string {
	if rctx == nil || rctx.Signals == nil {
		return withSuffix(fallbackSeeds, "")
	}
	s := rctx.Signals
	suffix := contextSuffix(&s.Prefs)

	queries := make([]string, 0, MaxQueries)
	seen := make(map[string]struct{}, MaxQueries)
	add := func(q string) bool {
		q = strings.TrimSpace(q)
		if q == "" {
			return len(queries) < MaxQueries
		}
		if _, dup := seen[q]; dup {
			return len(queries) < MaxQueries
		}
		seen[q] = struct{}{}
		queries = append(queries, q)
		return len(queries) < MaxQueries
	}

	freshness := ""
	if s.Prefs.Freshness == core.FreshnessNew {
		freshness = "new"
	}

	for _, genre := range s.PreferredGenres {
		if !add(join(genre, suffix, freshness)) {
			return queries
		}
	}

	for _, ch := range s.PreferredChannels {
		if !add(join(ch, suffix)) {
			return queries
		}
	}

	pure := s.Prefs.Discovery == core.DiscoveryPure

	if !pure {
		for i, q := range s.SearchHistory {
			if i >= historySeedCap {
				break
			}
			if !add(q) {
				return queries
			}
		}

		for i, e := range s.WatchHistory {
			if i >= historySeedCap {
				break
			}
			toks := keyword.Extract(e.Title)
			if len(toks) == 0 {
				continue
			}
			if !add(toks[0]) {
				return queries
			}
		}

		if len(s.Subscriptions) > 0 {
			ch := s.Subscriptions[rctx.Intn(len(s.Subscriptions))]
			if !add(ch.Name) {
				return queries
			}
		}
	}

	if len(queries) == 0 || pure {
		for _, seed := range fallbackSeeds {
			if !add(join(seed, suffix)) {
				return queries
			}
		}
	}

	return queries
}

// ShortsSeeds 生成短视频变体的种子：画像向量权重前 4 的 token，
// 各自带短视频标记；向量为空时退回通用短视频种子。
func (g *Generator) ShortsSeeds(tv *core.TermVector) []string {
	terms := tv.TopTerms(4)
	if len(terms) == 0 {
		out := make([]string, len(shortsFallbackSeeds))
		copy(out, shortsFallbackSeeds)
		return out
	}
	out := make([]string, 0, len(terms))
	for _, t := range terms {
		out = append(out, t+" "+shortsMarker)
	}
	return out
}

// contextSuffix 根据分类偏好拼出查询的上下文后缀。
// 只取有明确检索语义的轴：情绪、深度、画面风格。
func contextSuffix(p *core.Preferences) string {
	parts := make([]string, 0, 3)
	switch p.Mood {
	case core.MoodRelax:
		parts = append(parts, "relaxing bgm")
	case core.MoodEnergetic:
		parts = append(parts, "exciting")
	}
	switch p.Depth {
	case core.DepthDeep:
		parts = append(parts, "解説")
	case core.DepthLight:
		parts = append(parts, "ダイジェスト")
	}
	switch p.Visual {
	case core.VisualAnime:
		parts = append(parts, "アニメ")
	case core.VisualLiveAction:
		parts = append(parts, "実写")
	}
	return strings.Join(parts, " ")
}

func join(parts ...string) string {
	nonEmpty := parts[:0:0]
	for _, p := range parts {
		if p != "" {
			nonEmpty = append(nonEmpty, p)
		}
	}
	return strings.Join(nonEmpty, " ")
}

func withSuffix(seeds []string, suffix string) []string {
	out := make([]string, 0, len(seeds))
	for _, s := range seeds {
		out = append(out, join(s, suffix))
	}
	return out
}
