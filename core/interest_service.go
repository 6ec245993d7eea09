package core

import "context"

// InterestService 是长期兴趣特征服务的领域接口。
//
// 用户的长期兴趣词权重（离线任务从全量行为算出）存放在 Feature Store，
// 画像构建时可选地取回并合并进 TermVector，补足请求内短期历史覆盖不到的兴趣。
//
// 实现：
//   - feast.InterestClient（Feast 在线特征库）
//   - 测试中用内存 stub
type InterestService interface {
	// Name 返回服务名称（用于日志/监控）
	Name() string

	// UserTermWeights 取回用户的长期兴趣词权重；没有记录时返回空 map，不是错误
	UserTermWeights(ctx context.Context, userID string) (map[string]float64, error)

	// Close 释放资源
	Close(ctx context.Context) error
}
