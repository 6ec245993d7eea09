package feast

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rushteam/feedkit/core"
)

// 长期兴趣特征的默认布局：
// 离线任务把每个用户的兴趣词权重序列化成 JSON（{"词": 权重}）
// 写进在线特征库的一个字符串特征。
const (
	DefaultInterestFeature = "user_profile:interest_terms"
	DefaultEntityKey       = "user_id"
)

// InterestClient 把 Feast 在线特征适配成 core.InterestService，
// 供画像构建合并长期兴趣。
type InterestClient struct {
	Client Client

	// Feature 兴趣特征名，空取 DefaultInterestFeature。
	Feature string
	// EntityKey 实体键名，空取 DefaultEntityKey。
	EntityKey string
}

func (c *InterestClient) Name() string { return "feast.interests" }

// UserTermWeights 取回并解码用户的长期兴趣词权重。
// 特征缺失 = 没有记录，返回空 map；特征值损坏才算错误。
func (c *InterestClient) UserTermWeights(ctx context.Context, userID string) (map[string]float64, error) {
	feature := c.Feature
	if feature == "" {
		feature = DefaultInterestFeature
	}
	entityKey := c.EntityKey
	if entityKey == "" {
		entityKey = DefaultEntityKey
	}

	resp, err := c.Client.GetOnlineFeatures(ctx, &OnlineFeaturesRequest{
		Features:   []string{feature},
		EntityRows: []map[string]any{{entityKey: userID}},
	})
	if err != nil {
		return nil, err
	}
	if len(resp.Vectors) == 0 {
		return map[string]float64{}, nil
	}

	raw, ok := resp.Vectors[0].Values[feature]
	if !ok || raw == nil {
		return map[string]float64{}, nil
	}
	encoded, ok := raw.(string)
	if !ok {
		return nil, fmt.Errorf("feast: feature %s is not a string, got %T", feature, raw)
	}
	if encoded == "" {
		return map[string]float64{}, nil
	}

	weights := make(map[string]float64)
	if err := json.Unmarshal([]byte(encoded), &weights); err != nil {
		return nil, fmt.Errorf("feast: decode feature %s: %w", feature, err)
	}
	return weights, nil
}

func (c *InterestClient) Close(_ context.Context) error {
	if c.Client == nil {
		return nil
	}
	return c.Client.Close()
}

var _ core.InterestService = (*InterestClient)(nil)
