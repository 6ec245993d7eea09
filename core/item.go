package core

import (
	"github.com/rushteam/feedkit/pkg/duration"
	"github.com/rushteam/feedkit/pkg/keyword"
	"github.com/rushteam/feedkit/pkg/utils"
)

// Item 是推荐链路中的统一承载结构：候选视频、分数、抽取出的关键词、标签。
// Labels 用于解释与策略驱动（召回来源、打分理由、过滤原因）；Score 用于排序决策。
// Item 只在一次排序调用内存活，产出最终列表后即丢弃。
type Item struct {
	Video *Video
	Score float64

	// Keywords 是 title+channelName 抽取出的 token 序列，
	// 由 feature.EnrichNode 填充一次，后续节点复用，避免重复分词。
	Keywords []string

	// Seconds 是解析后的时长秒数（0 = 无法解析），同样由 EnrichNode 填充。
	Seconds int

	Labels map[string]utils.Label
}

func NewItem(v *Video) *Item {
	return &Item{
		Video:  v,
		Labels: make(map[string]utils.Label),
	}
}

// ID 返回视频标识；Item 一定包裹一个 Video。
func (it *Item) ID() string {
	if it.Video == nil {
		return ""
	}
	return it.Video.ID
}

// EnsureKeywords 返回候选的关键词序列，首次调用时从 title+channelName 抽取并缓存。
// 通常由 feature.EnrichNode 统一填充；这里兜底，保证单独使用过滤/打分节点也能工作。
func (it *Item) EnsureKeywords() []string {
	if it.Keywords == nil && it.Video != nil {
		it.Keywords = keyword.Extract(it.Video.Title + " " + it.Video.ChannelName)
		if it.Keywords == nil {
			it.Keywords = []string{}
		}
	}
	return it.Keywords
}

// EnsureSeconds 返回解析后的时长秒数，首次调用时解析并缓存。
func (it *Item) EnsureSeconds() int {
	if it.Seconds == 0 && it.Video != nil {
		it.Seconds = duration.Parse(it.Video.Duration, it.Video.DurationText)
	}
	return it.Seconds
}

// PutLabel 写入 Label；若已存在同名 key，则按默认 Merge 规则累积。
func (it *Item) PutLabel(key string, lbl utils.Label) {
	if it.Labels == nil {
		it.Labels = make(map[string]utils.Label)
	}
	if old, ok := it.Labels[key]; ok {
		it.Labels[key] = utils.MergeLabel(old, lbl)
		return
	}
	it.Labels[key] = lbl
}

// GetLabel 获取 Label。
func (it *Item) GetLabel(key string) (utils.Label, bool) {
	if it.Labels == nil {
		return utils.Label{}, false
	}
	lbl, ok := it.Labels[key]
	return lbl, ok
}
