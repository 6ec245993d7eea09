package core

// Video 是从内容源取回的候选视频。一次取回后不可变，
// 排序过程中的分数挂在 Item 上，不回写 Video 本身。
type Video struct {
	ID            string // 唯一标识
	Title         string
	ChannelID     string
	ChannelName   string
	Duration      string // 机器可读时长（ISO-8601，例如 PT1H2M3S）
	DurationText  string // 人类可读时长（H:MM:SS / MM:SS / 秒数）
	PublishedText string // 上传时间的相对文本（“3 hours ago” / “3時間前”）
	Description   string // 简介片段
	AvatarURL     string // 频道头像（可选）
}

// Channel 表示一个频道。放在订阅集合里是订阅，放在 NG 集合里是拉黑。
type Channel struct {
	ID        string
	Name      string
	AvatarURL string
}

// FeedResult 是 Rank 的最终输出：长视频列表 + 短视频列表。
type FeedResult struct {
	Videos []*Video
	Shorts []*Video
}
