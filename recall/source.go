package recall

import (
	"context"

	"github.com/rushteam/feedkit/core"
)

// Source 表示一个可复用的召回源（搜索/频道/热门/相关视频）。
// 可以把它理解为“可并发 fan-out 的取数单元”。
type Source interface {
	Name() string
	Recall(ctx context.Context, rctx *core.RecommendContext) ([]*core.Item, error)
}

// Label key 约定：召回来源与形态标记，贯穿过滤/混排阶段使用。
const (
	LabelRecallSource = "recall_source"
	LabelForm         = "form" // "short" = 内容源判定的短视频
)

// 召回来源名（同时也是 Label 值）。
const (
	SourceSearch   = "search"
	SourceChannel  = "channel"
	SourceTrending = "trending"
	SourceRelated  = "related"
)
