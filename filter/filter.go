package filter

import (
	"context"

	"github.com/rushteam/feedkit/core"
)

// Filter 是过滤器的抽象接口，用于判断一个候选是否应该被剔除。
// 返回 true 表示应该过滤（移除），false 表示保留。
//
// 过滤器本体只持配置，不持请求派生状态：同一个实例可以跨请求复用、
// 跨 goroutine 共享（配置驱动的管线只构建一次）。
type Filter interface {
	// Name 返回过滤器名称（也是被剔除候选的 filtered Label 值）
	Name() string

	// ShouldFilter 判断候选是否应该被过滤
	ShouldFilter(ctx context.Context, rctx *core.RecommendContext, item *core.Item) (bool, error)
}

// RequestScoped 由需要按请求预构建查询结构（已看集合、小写化 NG 词表等）
// 的过滤器实现。Node 在每轮 Process 开头换取一份只服务本次请求的实例，
// 派生状态的生命周期不会越过单次调用。
type RequestScoped interface {
	// ForRequest 返回绑定了本次请求派生数据的过滤器实例。
	ForRequest(ctx context.Context, rctx *core.RecommendContext) Filter
}
