package rank

import (
	"context"
	"math/rand"
	"testing"

	"github.com/rushteam/feedkit/core"
	"github.com/rushteam/feedkit/pkg/duration"
)

func item(id string, v core.Video) *core.Item {
	v.ID = id
	return core.NewItem(&v)
}

func run(t *testing.T, n *Scorer, rctx *core.RecommendContext, items ...*core.Item) []*core.Item {
	t.Helper()
	out, err := n.Process(context.Background(), rctx, items)
	if err != nil {
		t.Fatal(err)
	}
	return out
}

func TestScorerDeterministicWithZeroNoise(t *testing.T) {
	signals := &core.UserSignals{
		Subscriptions:   []core.Channel{{ID: "c1", Name: "MusicCh"}},
		PreferredGenres: []string{"jazz"},
	}
	mk := func() []*core.Item {
		return []*core.Item{
			item("v1", core.Video{ChannelID: "c1", ChannelName: "MusicCh", Title: "jazz night"}),
			item("v2", core.Video{ChannelID: "c2", ChannelName: "Other", Title: "random vlog"}),
		}
	}

	n := &Scorer{Mode: ModeFlat} // NoiseAmplitude 0 = 确定性
	rctx := &core.RecommendContext{Signals: signals}

	first := run(t, n, rctx, mk()...)
	second := run(t, n, rctx, mk()...)

	for i := range first {
		if first[i].Score != second[i].Score {
			t.Errorf("score[%d] differs across runs: %v vs %v", i, first[i].Score, second[i].Score)
		}
	}
}

func TestScorerNGShortCircuit(t *testing.T) {
	signals := &core.UserSignals{
		NGKeywords:      []string{"banned"},
		PreferredGenres: []string{"banned"}, // 即便同词有加分也救不回来
	}
	it := item("v1", core.Video{ChannelID: "c1", Title: "banned content"})

	out := run(t, &Scorer{Mode: ModeFlat}, &core.RecommendContext{Signals: signals}, it)

	if len(out) != 0 {
		t.Fatalf("NG hit must fall below floor and be dropped, got %v", out)
	}
	if it.Score != ngKeywordScore {
		t.Errorf("score = %v, want %v", it.Score, ngKeywordScore)
	}
}

func TestScorerDurationBuckets(t *testing.T) {
	signals := &core.UserSignals{}
	signals.Prefs.Durations = []duration.Bucket{duration.BucketMedium}
	rctx := &core.RecommendContext{Signals: signals}

	match := item("v1", core.Video{Duration: "PT10M"})    // 600s = medium
	mismatch := item("v2", core.Video{Duration: "PT40M"}) // 2400s = long
	unparseable := item("v3", core.Video{})

	run(t, &Scorer{Mode: ModeFlat}, rctx, match, mismatch, unparseable)

	if match.Score != 50 {
		t.Errorf("bucket match score = %v, want 50", match.Score)
	}
	if mismatch.Score != -20 {
		t.Errorf("bucket mismatch score = %v, want -20", mismatch.Score)
	}
	if unparseable.Score != 0 {
		t.Errorf("unparseable duration must be no-signal, got %v", unparseable.Score)
	}
}

func TestScorerChannelAffinity(t *testing.T) {
	signals := &core.UserSignals{
		PreferredChannels: []string{"Night"},
		Subscriptions:     []core.Channel{{ID: "sub1", Name: "DayCh"}},
	}
	rctx := &core.RecommendContext{Signals: signals}

	preferred := item("v1", core.Video{ChannelID: "x", ChannelName: "NightFM Radio"})
	subscribedFlat := item("v2", core.Video{ChannelID: "sub1", ChannelName: "DayCh"})

	run(t, &Scorer{Mode: ModeFlat}, rctx, preferred, subscribedFlat)
	if preferred.Score != 30 {
		t.Errorf("preferred channel substring = %v, want 30", preferred.Score)
	}
	if subscribedFlat.Score != 15 {
		t.Errorf("subscribed flat bonus = %v, want 15", subscribedFlat.Score)
	}

	subscribedVector := item("v3", core.Video{ChannelID: "sub1", ChannelName: "DayCh"})
	run(t, &Scorer{Mode: ModeVector}, rctx, subscribedVector)
	if subscribedVector.Score != 50 {
		t.Errorf("subscribed vector bonus = %v, want 50", subscribedVector.Score)
	}
}

func TestScorerGenreAdditive(t *testing.T) {
	signals := &core.UserSignals{PreferredGenres: []string{"jazz", "piano"}}
	it := item("v1", core.Video{Title: "jazz piano session"})

	run(t, &Scorer{Mode: ModeFlat}, &core.RecommendContext{Signals: signals}, it)

	if it.Score != 20 {
		t.Errorf("two genre matches = %v, want 20", it.Score)
	}
}

func TestScorerPrefGroups(t *testing.T) {
	signals := &core.UserSignals{}
	signals.Prefs.Mood = core.MoodRelax
	signals.Prefs.Depth = core.DepthDeep
	it := item("v1", core.Video{Title: "作業用 bgm 解説つき"})

	run(t, &Scorer{Mode: ModeFlat}, &core.RecommendContext{Signals: signals}, it)

	// mood + depth 两组各 +8
	if it.Score != 16 {
		t.Errorf("two pref groups = %v, want 16", it.Score)
	}
}

func TestScorerFreshness(t *testing.T) {
	signals := &core.UserSignals{}
	signals.Prefs.Freshness = core.FreshnessNew
	fresh := item("v1", core.Video{PublishedText: "3時間前"})
	stale := item("v2", core.Video{PublishedText: "3年前"})

	run(t, &Scorer{Mode: ModeFlat}, &core.RecommendContext{Signals: signals}, fresh, stale)

	if fresh.Score != 10 {
		t.Errorf("fresh upload = %v, want 10", fresh.Score)
	}
	if stale.Score != 0 {
		t.Errorf("old upload = %v, want 0", stale.Score)
	}
}

func TestScorerVectorSimilarityAndPenalty(t *testing.T) {
	tv := core.NewTermVector()
	tv.Add("guitar", 3)
	tv.Add("jazz", 4)
	tv.Finalize() // magnitude 5

	signals := &core.UserSignals{
		NegativeKeywords: core.NegativeKeywordTable{"loud": 0.5},
	}
	rctx := &core.RecommendContext{Signals: signals}

	it := item("v1", core.Video{Title: "jazz guitar loud", ChannelName: ""})
	run(t, &Scorer{Mode: ModeVector, Vector: tv}, rctx, it)

	// keywords = [jazz guitar loud]，dot = 4+3 = 7
	// sim = 7 / (5 * sqrt(3))；向量项 = 100*sim；负反馈 = -20*0.5
	wantSim := 7.0 / (5.0 * 1.7320508075688772)
	want := 100*wantSim - 10
	if diff := it.Score - want; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("vector score = %v, want %v", it.Score, want)
	}
}

func TestScorerFloorVector(t *testing.T) {
	signals := &core.UserSignals{
		NegativeKeywords: core.NegativeKeywordTable{"spam": 3},
	}
	// -20*3 = -60 < -50（向量淘汰线）→ 丢弃
	it := item("v1", core.Video{Title: "spam"})

	out := run(t, &Scorer{Mode: ModeVector}, &core.RecommendContext{Signals: signals}, it)
	if len(out) != 0 {
		t.Errorf("score below vector floor must be dropped, got %v", out)
	}
}

func TestScorerSortsDescending(t *testing.T) {
	signals := &core.UserSignals{PreferredGenres: []string{"jazz"}}
	low := item("v1", core.Video{Title: "vlog"})
	high := item("v2", core.Video{Title: "jazz"})

	out := run(t, &Scorer{Mode: ModeFlat}, &core.RecommendContext{Signals: signals}, low, high)

	if out[0].ID() != "v2" || out[1].ID() != "v1" {
		t.Errorf("order = [%s %s], want [v2 v1]", out[0].ID(), out[1].ID())
	}
}

func TestScorerNoiseBounded(t *testing.T) {
	rctx := &core.RecommendContext{
		Signals: &core.UserSignals{},
		Rand:    rand.New(rand.NewSource(7)),
	}
	it := item("v1", core.Video{Title: "plain"})

	run(t, &Scorer{Mode: ModeFlat, NoiseAmplitude: 10}, rctx, it)

	if it.Score < 0 || it.Score >= 10 {
		t.Errorf("noise-only score = %v, want in [0, 10)", it.Score)
	}
}
