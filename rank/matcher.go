package rank

import (
	"strings"

	"github.com/rushteam/feedkit/core"
	"github.com/rushteam/feedkit/pkg/duration"
)

// prefKeywordGroups 把分类偏好映射到固定的小词表：
// 候选文本命中某个已设置偏好轴的任意词，该轴记一次命中（+8/轴）。
var prefKeywordGroups = map[string]map[string][]string{
	"mood": {
		string(core.MoodRelax):     {"relax", "chill", "bgm", "作業用", "ambient"},
		string(core.MoodEnergetic): {"upbeat", "exciting", "hype", "テンション"},
	},
	"depth": {
		string(core.DepthDeep):  {"解説", "考察", "analysis", "documentary"},
		string(core.DepthLight): {"切り抜き", "まとめ", "ダイジェスト", "highlights"},
	},
	"vocal": {
		string(core.VocalVocal):        {"歌ってみた", "vocal", "cover", "歌詞"},
		string(core.VocalInstrumental): {"instrumental", "インスト", "off vocal", "bgm"},
	},
	"era": {
		string(core.EraNew):     {"新曲", "最新", "new release"},
		string(core.EraClassic): {"名曲", "レトロ", "昭和", "90s", "80s"},
	},
	"live": {
		string(core.LiveLive):   {"ライブ", "live", "concert", "フェス"},
		string(core.LiveEdited): {"mv", "pv", "official video"},
	},
	"community": {
		string(core.CollabCollab): {"コラボ", "collab", "feat"},
		string(core.CollabSolo):   {"ソロ", "solo", "弾き語り"},
	},
}

// matcher 把信号快照预处理成小写词表/集合，打分阶段逐候选 O(1)/O(k) 查询。
// 每次 Process 构建一次。
type matcher struct {
	ngKeywords        []string
	preferredChannels []string
	genres            []string
	durations         []duration.Bucket
	subscribedIDs     map[string]struct{}
	subscribedNames   []string
	groups            [][]string // 已设置偏好轴的词表
	freshness         core.Freshness
	negatives         core.NegativeKeywordTable
}

func newMatcher(s *core.UserSignals) *matcher {
	m := &matcher{
		ngKeywords:        lowerAll(s.NGKeywords),
		preferredChannels: lowerAll(s.PreferredChannels),
		genres:            lowerAll(s.PreferredGenres),
		durations:         s.Prefs.Durations,
		subscribedIDs:     s.SubscribedChannelIDs(),
		freshness:         s.Prefs.Freshness,
		negatives:         s.NegativeKeywords,
	}
	for _, ch := range s.Subscriptions {
		if ch.Name != "" {
			m.subscribedNames = append(m.subscribedNames, strings.ToLower(ch.Name))
		}
	}

	axes := []struct {
		axis  string
		value string
	}{
		{"mood", string(s.Prefs.Mood)},
		{"depth", string(s.Prefs.Depth)},
		{"vocal", string(s.Prefs.Vocal)},
		{"era", string(s.Prefs.Era)},
		{"live", string(s.Prefs.Live)},
		{"community", string(s.Prefs.Collab)},
	}
	for _, a := range axes {
		if a.value == "" {
			continue
		}
		if words, ok := prefKeywordGroups[a.axis][a.value]; ok {
			m.groups = append(m.groups, words)
		}
	}
	return m
}

func (m *matcher) hitNG(haystack string) bool {
	for _, ng := range m.ngKeywords {
		if strings.Contains(haystack, ng) {
			return true
		}
	}
	return false
}

func (m *matcher) durationMatch(b duration.Bucket) bool {
	for _, want := range m.durations {
		if b == want {
			return true
		}
	}
	return false
}

func (m *matcher) subscribed(channelID, lowerName string) bool {
	if _, ok := m.subscribedIDs[channelID]; ok {
		return true
	}
	for _, name := range m.subscribedNames {
		if name == lowerName {
			return true
		}
	}
	return false
}

// prefGroupHits 返回命中的偏好轴个数（每轴至多记一次）。
func (m *matcher) prefGroupHits(haystack string) int {
	hits := 0
	for _, words := range m.groups {
		for _, w := range words {
			if strings.Contains(haystack, w) {
				hits++
				break
			}
		}
	}
	return hits
}

func lowerAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		s = strings.ToLower(strings.TrimSpace(s))
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}
