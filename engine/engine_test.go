package engine

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/rushteam/feedkit/core"
)

// fakeSource 是内存内容源：按查询词返回固定候选，可整体注入失败。
type fakeSource struct {
	searchResults map[string][]*core.Video
	channelVideos map[string][]*core.Video
	trending      []*core.Video
	fail          bool
	failSearch    bool

	searchCalls   int
	trendingCalls int
}

func (f *fakeSource) Name() string { return "fake" }

func (f *fakeSource) Search(_ context.Context, query, _ string) (*core.SearchResult, error) {
	f.searchCalls++
	if f.fail || f.failSearch {
		return nil, errors.New("search down")
	}
	return &core.SearchResult{Videos: f.searchResults[query]}, nil
}

func (f *fakeSource) ChannelVideos(_ context.Context, channelID string) ([]*core.Video, error) {
	if f.fail {
		return nil, errors.New("channel down")
	}
	return f.channelVideos[channelID], nil
}

func (f *fakeSource) VideoDetails(_ context.Context, _ string) (*core.VideoDetails, error) {
	if f.fail {
		return nil, errors.New("details down")
	}
	return nil, nil
}

func (f *fakeSource) Trending(_ context.Context) ([]*core.Video, error) {
	f.trendingCalls++
	if f.fail {
		return nil, errors.New("trending down")
	}
	return f.trending, nil
}

func video(id, channelID, title string) *core.Video {
	return &core.Video{
		ID:          id,
		ChannelID:   channelID,
		ChannelName: "ch-" + channelID,
		Title:       title,
		Duration:    "PT10M",
	}
}

func TestEngineExcludesSeenAndNG(t *testing.T) {
	src := &fakeSource{
		searchResults: map[string][]*core.Video{
			"jazz": {
				video("keep1", "c1", "jazz session"),
				video("seen1", "c2", "jazz live"),
				video("ng1", "c3", "jazz drama exposed"),
			},
		},
		trending: []*core.Video{video("trend1", "c4", "top clip")},
	}

	e, err := New(src, Config{}) // 向量模式；未注入随机源 → 输出确定
	if err != nil {
		t.Fatal(err)
	}

	rctx := &core.RecommendContext{
		UserID: "u1",
		Signals: &core.UserSignals{
			PreferredGenres: []string{"jazz"},
			SeenVideoIDs:    []string{"seen1"},
			NGKeywords:      []string{"drama"},
		},
	}

	res, err := e.Rank(context.Background(), rctx)
	if err != nil {
		t.Fatal(err)
	}
	for _, v := range append(res.Videos, res.Shorts...) {
		if v.ID == "seen1" {
			t.Error("seen video leaked into the feed")
		}
		if v.ID == "ng1" {
			t.Error("NG-keyword video leaked into the feed")
		}
	}
	found := false
	for _, v := range res.Videos {
		if v.ID == "keep1" {
			found = true
		}
	}
	if !found {
		t.Errorf("clean candidate missing from feed: %v", res.Videos)
	}
}

func TestEngineTotalFailureSurfacesOneError(t *testing.T) {
	e, err := New(&fakeSource{fail: true}, Config{})
	if err != nil {
		t.Fatal(err)
	}

	res, err := e.Rank(context.Background(), &core.RecommendContext{
		Signals: &core.UserSignals{PreferredGenres: []string{"jazz"}},
	})
	if res != nil {
		t.Errorf("total failure must not return a result, got %v", res)
	}
	if !core.IsUnavailable(err) {
		t.Fatalf("err = %v, want unavailable domain error", err)
	}
}

func TestEnginePartialFailureDegrades(t *testing.T) {
	// 搜索全挂、热门活着：调用成功，输出降级为只有热门
	src := &fakeSource{
		failSearch: true,
		trending:   []*core.Video{video("trend1", "c1", "top clip")},
	}

	e, err := New(src, Config{})
	if err != nil {
		t.Fatal(err)
	}
	res, err := e.Rank(context.Background(), &core.RecommendContext{
		Signals: &core.UserSignals{PreferredGenres: []string{"jazz"}},
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Videos) != 1 || res.Videos[0].ID != "trend1" {
		t.Errorf("trending-only degradation expected, got %v", res.Videos)
	}
}

func TestEngineFlatModeDeterministicPage(t *testing.T) {
	results := make([]*core.Video, 0, 60)
	for i := 0; i < 60; i++ {
		results = append(results, video(fmt.Sprintf("v%d", i), fmt.Sprintf("c%d", i), "jazz clip"))
	}
	src := &fakeSource{
		searchResults: map[string][]*core.Video{"jazz": results},
	}

	e, err := New(src, Config{Mode: "flat", PageSize: 10})
	if err != nil {
		t.Fatal(err)
	}

	mk := func() *core.RecommendContext {
		return &core.RecommendContext{
			Signals: &core.UserSignals{PreferredGenres: []string{"jazz"}},
		}
	}

	first, err := e.Rank(context.Background(), mk())
	if err != nil {
		t.Fatal(err)
	}
	second, err := e.Rank(context.Background(), mk())
	if err != nil {
		t.Fatal(err)
	}

	if len(first.Videos) != 10 {
		t.Fatalf("page size = %d, want 10", len(first.Videos))
	}
	if len(first.Shorts) != 0 {
		t.Errorf("flat variant must not split shorts, got %d", len(first.Shorts))
	}
	for i := range first.Videos {
		if first.Videos[i].ID != second.Videos[i].ID {
			t.Fatalf("zero-noise flat ranking must be reproducible, run1[%d]=%s run2[%d]=%s",
				i, first.Videos[i].ID, i, second.Videos[i].ID)
		}
	}
}

func TestEngineRejectsInvalidPrefs(t *testing.T) {
	e, err := New(&fakeSource{}, Config{})
	if err != nil {
		t.Fatal(err)
	}

	signals := &core.UserSignals{}
	signals.Prefs.Mood = core.Mood("frenzied")

	_, err = e.Rank(context.Background(), &core.RecommendContext{Signals: signals})
	if derr := core.GetDomainError(err); derr == nil || derr.Code != core.ErrorCodeInvalidInput {
		t.Fatalf("err = %v, want invalid input domain error", err)
	}
}

func TestEngineRequiresClient(t *testing.T) {
	if _, err := New(nil, Config{}); err == nil {
		t.Fatal("nil client must be rejected at construction")
	}
}

func TestEngineRejectsBadLanguageRule(t *testing.T) {
	if _, err := New(&fakeSource{}, Config{LanguageRule: "((("}); err == nil {
		t.Fatal("unparseable rule expression must fail construction")
	}
}

func TestParseConfig(t *testing.T) {
	cfg, err := ParseConfig([]byte("mode: flat\npage_size: 25\ncooldown: 4\n"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Mode != "flat" || cfg.PageSize != 25 || cfg.Cooldown != 4 {
		t.Errorf("cfg = %+v", cfg)
	}
	// 未出现的字段保持默认
	if got := cfg.noiseAmplitude(); got != DefaultNoiseAmplitude {
		t.Errorf("noise amplitude = %v, want default %v", got, DefaultNoiseAmplitude)
	}

	if _, err := ParseConfig([]byte("mode: quantum\n")); err == nil {
		t.Error("unknown mode must be rejected")
	}
	if _, err := ParseConfig([]byte("trending_ratio: 1.5\n")); err == nil {
		t.Error("out-of-range ratio must be rejected")
	}
}

func TestConfigNoiseAmplitude(t *testing.T) {
	// 未设置 → 生产默认，忘记 DefaultConfig 的调用方不会丢探索噪声
	unset := Config{}
	if got := unset.noiseAmplitude(); got != DefaultNoiseAmplitude {
		t.Errorf("unset noise = %v, want default %v", got, DefaultNoiseAmplitude)
	}

	// 显式 0 → 关闭噪声（确定性模式）
	zero := 0.0
	disabled := Config{NoiseAmplitude: &zero}
	if got := disabled.noiseAmplitude(); got != 0 {
		t.Errorf("explicit zero noise = %v, want 0", got)
	}

	cfg, err := ParseConfig([]byte("noise_amplitude: 0\n"))
	if err != nil {
		t.Fatal(err)
	}
	if got := cfg.noiseAmplitude(); got != 0 {
		t.Errorf("yaml zero noise = %v, want 0", got)
	}

	if _, err := ParseConfig([]byte("noise_amplitude: -1\n")); err == nil {
		t.Error("negative noise amplitude must be rejected")
	}
}
