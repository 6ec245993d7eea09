// Package feast 封装 Feast Feature Store 的在线特征访问，
// 为画像构建提供用户长期兴趣词权重。
package feast

import (
	"context"
	"time"
)

// Client 是 Feast 在线特征库的客户端接口。
// 领域层只依赖此接口，gRPC 实现见 GrpcClient。
type Client interface {
	// GetOnlineFeatures 取回在线特征。
	GetOnlineFeatures(ctx context.Context, req *OnlineFeaturesRequest) (*OnlineFeaturesResponse, error)

	// Close 关闭客户端连接。
	Close() error
}

// OnlineFeaturesRequest 在线特征请求。
type OnlineFeaturesRequest struct {
	// Features 特征名列表，例如 ["user_profile:interest_terms"]。
	Features []string

	// EntityRows 实体行，例如 [{"user_id": "u123"}]。
	EntityRows []map[string]any

	// Project 项目名（可选，空则用客户端默认值）。
	Project string
}

// OnlineFeaturesResponse 在线特征响应，每个实体行对应一个特征向量。
type OnlineFeaturesResponse struct {
	Vectors []FeatureVector
}

// FeatureVector 单个实体行的特征值集合。
type FeatureVector struct {
	Values    map[string]any
	EntityRow map[string]any
}

// ClientOption 客户端配置选项。
type ClientOption func(*ClientConfig)

// ClientConfig 客户端配置。
type ClientConfig struct {
	Timeout time.Duration
	// Token 静态 Token 认证（空 = 不认证）。
	Token string
}

// WithTimeout 设置请求超时。
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *ClientConfig) { c.Timeout = timeout }
}

// WithStaticToken 使用静态 Token 认证。
func WithStaticToken(token string) ClientOption {
	return func(c *ClientConfig) { c.Token = token }
}
