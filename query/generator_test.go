package query

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/rushteam/feedkit/core"
)

func newRctx(s *core.UserSignals) *core.RecommendContext {
	return &core.RecommendContext{
		Signals: s,
		Rand:    rand.New(rand.NewSource(1)),
	}
}

func TestGeneratePrecedence(t *testing.T) {
	rctx := newRctx(&core.UserSignals{
		PreferredGenres:   []string{"citypop"},
		PreferredChannels: []string{"NightFM"},
		WatchHistory: []core.WatchEntry{
			{Title: "synthwave mix 2024"},
		},
		Subscriptions: []core.Channel{{ID: "c1", Name: "RetroWave"}},
	})

	got := (&Generator{}).Generate(rctx)

	if len(got) != 4 {
		t.Fatalf("got %d queries %v, want 4", len(got), got)
	}
	if got[0] != "citypop" {
		t.Errorf("genre query first, got %q", got[0])
	}
	if got[1] != "NightFM" {
		t.Errorf("channel query second, got %q", got[1])
	}
	if got[2] != "synthwave" {
		t.Errorf("history dominant keyword third, got %q", got[2])
	}
	if got[3] != "RetroWave" {
		t.Errorf("subscription seed fourth, got %q", got[3])
	}
}

func TestGenerateSearchHistorySeeds(t *testing.T) {
	rctx := newRctx(&core.UserSignals{
		PreferredGenres: []string{"citypop"},
		SearchHistory:   []string{"lofi hip hop radio", "vaporwave essentials"},
		WatchHistory: []core.WatchEntry{
			{Title: "synthwave mix 2024"},
		},
	})

	got := (&Generator{}).Generate(rctx)

	if len(got) != 4 {
		t.Fatalf("got %d queries %v, want 4", len(got), got)
	}
	// 搜索历史是显式意图，原样使用且排在观看派生种子之前
	if got[1] != "lofi hip hop radio" || got[2] != "vaporwave essentials" {
		t.Errorf("search history seeds = %q, %q", got[1], got[2])
	}
	if got[3] != "synthwave" {
		t.Errorf("watch-derived seed after search seeds, got %q", got[3])
	}
}

func TestGenerateCap(t *testing.T) {
	rctx := newRctx(&core.UserSignals{
		PreferredGenres: []string{"g1", "g2", "g3", "g4", "g5", "g6", "g7"},
	})

	got := (&Generator{}).Generate(rctx)

	if len(got) != MaxQueries {
		t.Errorf("got %d queries, want %d", len(got), MaxQueries)
	}
}

func TestGenerateContextAndFreshnessSuffix(t *testing.T) {
	rctx := newRctx(&core.UserSignals{
		PreferredGenres:   []string{"jazz"},
		PreferredChannels: []string{"CoffeeBeats"},
	})
	rctx.Signals.Prefs.Mood = core.MoodRelax
	rctx.Signals.Prefs.Freshness = core.FreshnessNew

	got := (&Generator{}).Generate(rctx)

	if got[0] != "jazz relaxing bgm new" {
		t.Errorf("genre query = %q, want context + freshness suffix", got[0])
	}
	// 频道查询带上下文后缀，但不带新鲜度后缀
	if got[1] != "CoffeeBeats relaxing bgm" {
		t.Errorf("channel query = %q, want context suffix only", got[1])
	}
}

func TestGeneratePureDiscoverySkipsHistoryAndSubs(t *testing.T) {
	rctx := newRctx(&core.UserSignals{
		WatchHistory:  []core.WatchEntry{{Title: "speedrun any%"}},
		SearchHistory: []string{"speedrun tutorial"},
		Subscriptions: []core.Channel{{ID: "c1", Name: "RunnersHub"}},
	})
	rctx.Signals.Prefs.Discovery = core.DiscoveryPure

	got := (&Generator{}).Generate(rctx)

	for _, q := range got {
		if strings.Contains(q, "speedrun") || strings.Contains(q, "RunnersHub") {
			t.Errorf("pure discovery must not use history/subscription seeds, got %q", q)
		}
	}
	if len(got) != len(fallbackSeeds) {
		t.Errorf("want fallback seeds in pure discovery, got %v", got)
	}
}

func TestGenerateFallbackWhenNoSignals(t *testing.T) {
	got := (&Generator{}).Generate(newRctx(&core.UserSignals{}))
	if len(got) != len(fallbackSeeds) {
		t.Fatalf("want %d fallback seeds, got %v", len(fallbackSeeds), got)
	}
	if got[0] != "trending videos" {
		t.Errorf("first fallback seed = %q", got[0])
	}
}

func TestGenerateDistinct(t *testing.T) {
	rctx := newRctx(&core.UserSignals{
		PreferredGenres:   []string{"jazz", "jazz"},
		PreferredChannels: []string{"jazz"},
	})

	got := (&Generator{}).Generate(rctx)

	if len(got) != 1 {
		t.Errorf("duplicate queries must collapse, got %v", got)
	}
}

func TestShortsSeedsFromVector(t *testing.T) {
	tv := core.NewTermVector()
	tv.Add("guitar", 5)
	tv.Add("piano", 4)
	tv.Add("drums", 3)
	tv.Add("bass", 2)
	tv.Add("kazoo", 1)
	tv.Finalize()

	got := (&Generator{}).ShortsSeeds(tv)

	want := []string{"guitar #shorts", "piano #shorts", "drums #shorts", "bass #shorts"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("seed[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestShortsSeedsFallback(t *testing.T) {
	got := (&Generator{}).ShortsSeeds(core.NewTermVector())
	if len(got) != len(shortsFallbackSeeds) {
		t.Errorf("want generic shorts seeds, got %v", got)
	}
}
