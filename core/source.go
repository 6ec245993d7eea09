package core

import "context"

// SearchResult 是内容源搜索的返回形态：长视频与短视频分开给。
type SearchResult struct {
	Videos []*Video
	Shorts []*Video
}

// VideoDetails 是单个视频详情，携带相关视频列表。
type VideoDetails struct {
	Video   *Video
	Related []*Video
}

// ContentSource 是外部内容源的领域接口，引擎消费的唯一能力面。
//
// 设计原则：
//   - 定义在领域层（core），由调用方注入具体实现（HTTP 客户端、mock 等）
//   - 四个操作必须可独立、并发调用
//   - 失败（非 nil error）与“空成功”必须可区分：引擎对两者都按该源为空处理，
//     但全部失败时需要向上暴露错误，所以不允许实现把失败伪装成空结果
//   - 超时/取消/重试是实现方的职责，引擎只要求“给值或给错”
type ContentSource interface {
	// Name 返回内容源名称（用于日志/观测）
	Name() string

	// Search 按查询词检索，pageToken 为空表示第一页
	Search(ctx context.Context, query, pageToken string) (*SearchResult, error)

	// ChannelVideos 列出指定频道的视频
	ChannelVideos(ctx context.Context, channelID string) ([]*Video, error)

	// VideoDetails 返回单个视频详情与相关视频
	VideoDetails(ctx context.Context, videoID string) (*VideoDetails, error)

	// Trending 返回当前热门/推荐列表
	Trending(ctx context.Context) ([]*Video, error)
}
