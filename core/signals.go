package core

// WatchEntry 是一条观看历史，最近的在前。
// 画像构建只用到标题与频道名，标识用于已看过滤与相关视频种子。
type WatchEntry struct {
	VideoID     string
	Title       string
	ChannelID   string
	ChannelName string
}

// NegativeKeywordTable 是 token -> 累积惩罚计数，由调用方根据历史负反馈
//（关闭、划走等）整理后传入，引擎只读不写。
type NegativeKeywordTable map[string]float64

// Penalty 计算一组关键词的累积惩罚。
func (t NegativeKeywordTable) Penalty(keywords []string) float64 {
	if len(t) == 0 || len(keywords) == 0 {
		return 0
	}
	var sum float64
	for _, k := range keywords {
		sum += t[k]
	}
	return sum
}

// UserSignals 是一次排序调用的全部用户侧输入快照。
// 由调用方（偏好存储协作方）组装；引擎不持久化、不回写，
// 每次调用都是纯函数式的：同样的快照 + 同样的随机种子 = 同样的结果。
type UserSignals struct {
	// 历史（最近的在前；画像构建各自有采样上限）
	WatchHistory  []WatchEntry // 长视频观看历史
	ShortsHistory []WatchEntry // 短视频观看历史
	SearchHistory []string     // 搜索历史（最近在前，原样作为检索种子）

	// 订阅与显式偏好
	Subscriptions     []Channel
	PreferredGenres   []string // 用户自选的喜好标签
	PreferredChannels []string // 用户自选的喜好频道名

	// 排除集
	NGKeywords       []string             // 排除关键词（大小写不敏感子串匹配）
	NGChannelIDs     []string             // 排除频道
	SeenVideoIDs     []string             // 已展示/已观看/手动隐藏
	NegativeKeywords NegativeKeywordTable // 负反馈关键词惩罚表

	// 分类偏好
	Prefs Preferences
}

// SeenSet 把已看列表整理成集合，供过滤与回填使用。
func (s *UserSignals) SeenSet() map[string]struct{} {
	set := make(map[string]struct{}, len(s.SeenVideoIDs))
	for _, id := range s.SeenVideoIDs {
		set[id] = struct{}{}
	}
	return set
}

// SubscribedChannelIDs 返回订阅频道的标识集合。
func (s *UserSignals) SubscribedChannelIDs() map[string]struct{} {
	set := make(map[string]struct{}, len(s.Subscriptions))
	for _, ch := range s.Subscriptions {
		set[ch.ID] = struct{}{}
	}
	return set
}
