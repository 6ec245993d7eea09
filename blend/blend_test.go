package blend

import (
	"fmt"
	"math/rand"
	"strings"
	"testing"

	"github.com/rushteam/feedkit/core"
	"github.com/rushteam/feedkit/pkg/utils"
	"github.com/rushteam/feedkit/recall"
)

func sourced(id, source string) *core.Item {
	it := core.NewItem(&core.Video{ID: id, Duration: "PT10M"})
	it.PutLabel(recall.LabelRecallSource, utils.Label{Value: source, Source: "recall"})
	return it
}

func TestMixerComposition(t *testing.T) {
	// 50 个热门 + 75 个个性化长视频，目标 50、比例 0.40：
	// 输出必须恰好 20 热门 + 30 个性化。顺序由洗牌决定，不做断言。
	items := make([]*core.Item, 0, 125)
	for i := 0; i < 50; i++ {
		items = append(items, sourced(fmt.Sprintf("t%d", i), recall.SourceTrending))
	}
	for i := 0; i < 75; i++ {
		items = append(items, sourced(fmt.Sprintf("p%d", i), recall.SourceSearch))
	}

	rctx := &core.RecommendContext{Rand: rand.New(rand.NewSource(1))}
	res := (&Mixer{}).Mix(rctx, items)

	if len(res.Videos) != 50 {
		t.Fatalf("got %d long-form videos, want 50", len(res.Videos))
	}
	trending, personalized := 0, 0
	for _, v := range res.Videos {
		if strings.HasPrefix(v.ID, "t") {
			trending++
		} else {
			personalized++
		}
	}
	if trending != 20 || personalized != 30 {
		t.Errorf("composition = %d trending / %d personalized, want 20/30", trending, personalized)
	}
}

func TestMixerMergedSourceCountsAsTrending(t *testing.T) {
	// 去重合并后的复合来源也算热门
	items := []*core.Item{sourced("v1", "search|trending")}
	res := (&Mixer{}).Mix(&core.RecommendContext{}, items)
	if len(res.Videos) != 1 {
		t.Fatalf("got %d videos, want 1", len(res.Videos))
	}
}

func TestMixerShortsSplitAndTruncate(t *testing.T) {
	items := make([]*core.Item, 0, 30)
	for i := 0; i < 25; i++ {
		// 形态标记判短
		it := sourced(fmt.Sprintf("s%d", i), recall.SourceSearch)
		it.PutLabel(recall.LabelForm, utils.Label{Value: "short", Source: "recall"})
		items = append(items, it)
	}
	// 无标记但时长 ≤60s 也判短
	byDuration := core.NewItem(&core.Video{ID: "s-dur", Duration: "PT45S"})
	items = append(items, byDuration)
	// 标题短视频标记判短
	byMarker := core.NewItem(&core.Video{ID: "s-tag", Title: "quick clip #shorts"})
	items = append(items, byMarker)
	// 普通长视频留在长列表
	items = append(items, sourced("long1", recall.SourceSearch))

	rctx := &core.RecommendContext{Rand: rand.New(rand.NewSource(2))}
	res := (&Mixer{}).Mix(rctx, items)

	if len(res.Shorts) != DefaultShortTarget {
		t.Errorf("got %d shorts, want %d", len(res.Shorts), DefaultShortTarget)
	}
	if len(res.Videos) != 1 || res.Videos[0].ID != "long1" {
		t.Errorf("long list = %v, want only long1", res.Videos)
	}
}

func TestMixerScarceTrendingFallsBackToPersonalized(t *testing.T) {
	// 热门不足 20 时取全部热门，个性化补足到目标
	items := make([]*core.Item, 0, 60)
	for i := 0; i < 5; i++ {
		items = append(items, sourced(fmt.Sprintf("t%d", i), recall.SourceTrending))
	}
	for i := 0; i < 55; i++ {
		items = append(items, sourced(fmt.Sprintf("p%d", i), recall.SourceSearch))
	}

	res := (&Mixer{}).Mix(&core.RecommendContext{}, items)
	if len(res.Videos) != 50 {
		t.Fatalf("got %d videos, want 50", len(res.Videos))
	}
	trending := 0
	for _, v := range res.Videos {
		if strings.HasPrefix(v.ID, "t") {
			trending++
		}
	}
	if trending != 5 {
		t.Errorf("got %d trending, want all 5 available", trending)
	}
}

func TestMixerDeterministicWithoutRand(t *testing.T) {
	items := []*core.Item{
		sourced("p1", recall.SourceSearch),
		sourced("p2", recall.SourceSearch),
		sourced("t1", recall.SourceTrending),
	}
	res := (&Mixer{}).Mix(&core.RecommendContext{}, items)

	// 未注入随机源时不洗牌：热门段在前，个性化段保持原序
	got := []string{res.Videos[0].ID, res.Videos[1].ID, res.Videos[2].ID}
	want := []string{"t1", "p1", "p2"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}
