package core

import (
	"math"
	"testing"

	"github.com/rushteam/feedkit/pkg/duration"
	"github.com/rushteam/feedkit/pkg/utils"
)

func TestTermVector(t *testing.T) {
	tv := NewTermVector()
	tv.Add("jazz", 3)
	tv.Add("jazz", 1) // 只增不减
	tv.Add("piano", 0)
	tv.Add("noise", -1) // 非正权重忽略
	tv.Finalize()

	if tv.Weights["jazz"] != 4 {
		t.Errorf("jazz weight = %v, want 4", tv.Weights["jazz"])
	}
	if _, ok := tv.Weights["noise"]; ok {
		t.Error("non-positive weight must be ignored")
	}
	if got, want := tv.Magnitude, 4.0; math.Abs(got-want) > 1e-9 {
		t.Errorf("magnitude = %v, want %v", got, want)
	}
}

func TestTermVectorSimilarity(t *testing.T) {
	tv := NewTermVector()
	tv.Add("a", 3)
	tv.Add("b", 4)
	tv.Finalize() // magnitude 5

	// dot = 3，sim = 3 / (5 * sqrt(2))
	want := 3.0 / (5.0 * math.Sqrt2)
	if got := tv.Similarity([]string{"a", "zzz"}); math.Abs(got-want) > 1e-9 {
		t.Errorf("similarity = %v, want %v", got, want)
	}

	if got := tv.Similarity(nil); got != 0 {
		t.Errorf("empty keywords similarity = %v, want 0", got)
	}
	empty := NewTermVector()
	empty.Finalize()
	if got := empty.Similarity([]string{"a"}); got != 0 {
		t.Errorf("zero-magnitude similarity = %v, want 0", got)
	}
}

func TestTermVectorTopTerms(t *testing.T) {
	tv := NewTermVector()
	tv.Add("b", 2)
	tv.Add("a", 2)
	tv.Add("c", 5)
	tv.Finalize()

	got := tv.TopTerms(2)
	// 权重降序，同权重按字典序
	if len(got) != 2 || got[0] != "c" || got[1] != "a" {
		t.Errorf("TopTerms = %v, want [c a]", got)
	}
}

func TestItemEnsureKeywordsCaches(t *testing.T) {
	it := NewItem(&Video{Title: "Cool #gaming video", ChannelName: "GameHub"})

	first := it.EnsureKeywords()
	if len(first) == 0 {
		t.Fatal("no keywords extracted")
	}
	it.Video.Title = "changed"
	second := it.EnsureKeywords()
	if &first[0] != &second[0] {
		t.Error("keywords must be extracted once and cached")
	}
}

func TestItemLabelsMerge(t *testing.T) {
	it := NewItem(&Video{ID: "v1"})
	it.PutLabel("recall_source", utils.Label{Value: "search", Source: "recall"})
	it.PutLabel("recall_source", utils.Label{Value: "trending", Source: "recall"})

	lbl, ok := it.GetLabel("recall_source")
	if !ok || lbl.Value != "search|trending" {
		t.Errorf("merged label = %+v, want search|trending", lbl)
	}
}

func TestPreferencesValidate(t *testing.T) {
	p := &Preferences{
		Mood:      MoodRelax,
		Freshness: FreshnessNew,
		Discovery: DiscoveryPure,
		Durations: []duration.Bucket{duration.BucketShort},
	}
	if err := p.Validate(); err != nil {
		t.Errorf("valid prefs rejected: %v", err)
	}

	bad := &Preferences{Mood: Mood("frenzied")}
	err := bad.Validate()
	if derr := GetDomainError(err); derr == nil || derr.Code != ErrorCodeInvalidInput {
		t.Errorf("err = %v, want invalid input", err)
	}

	badBucket := &Preferences{Durations: []duration.Bucket{duration.Bucket("epic")}}
	if badBucket.Validate() == nil {
		t.Error("unknown duration bucket must be rejected")
	}
}

func TestNegativeKeywordPenalty(t *testing.T) {
	table := NegativeKeywordTable{"drama": 1.5, "gossip": 1.0}

	if got := table.Penalty([]string{"drama", "gossip", "jazz"}); got != 2.5 {
		t.Errorf("penalty = %v, want 2.5", got)
	}
	if got := table.Penalty(nil); got != 0 {
		t.Errorf("empty keywords penalty = %v, want 0", got)
	}
}

func TestRecommendContextRandFallbacks(t *testing.T) {
	rctx := &RecommendContext{}

	if rctx.Float64() != 0 {
		t.Error("nil rand Float64 must be 0")
	}
	if rctx.Intn(10) != 0 {
		t.Error("nil rand Intn must be 0")
	}
	order := []int{1, 2, 3}
	rctx.Shuffle(len(order), func(i, j int) { order[i], order[j] = order[j], order[i] })
	if order[0] != 1 || order[1] != 2 || order[2] != 3 {
		t.Error("nil rand Shuffle must keep order")
	}
}
