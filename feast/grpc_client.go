package feast

import (
	"context"
	"fmt"
	"time"

	feastsdk "github.com/feast-dev/feast/sdk/go"
	feasttypes "github.com/feast-dev/feast/sdk/go/protos/feast/types"
)

// GrpcClient 是基于官方 Feast Go SDK 的 gRPC 实现。
type GrpcClient struct {
	client  *feastsdk.GrpcClient
	project string
	timeout time.Duration
}

// NewGrpcClient 连接 Feast Feature Server。port 为 0 时取默认 6565。
func NewGrpcClient(host string, port int, project string, opts ...ClientOption) (*GrpcClient, error) {
	if port == 0 {
		port = 6565
	}
	cfg := &ClientConfig{Timeout: 30 * time.Second}
	for _, opt := range opts {
		opt(cfg)
	}

	var (
		client *feastsdk.GrpcClient
		err    error
	)
	if cfg.Token != "" {
		security := feastsdk.SecurityConfig{
			EnableTLS:  false,
			Credential: feastsdk.NewStaticCredential(cfg.Token),
		}
		client, err = feastsdk.NewSecureGrpcClient(host, port, security)
	} else {
		client, err = feastsdk.NewGrpcClient(host, port)
	}
	if err != nil {
		return nil, fmt.Errorf("feast: connect %s:%d: %w", host, port, err)
	}

	return &GrpcClient{client: client, project: project, timeout: cfg.Timeout}, nil
}

func (c *GrpcClient) GetOnlineFeatures(
	ctx context.Context,
	req *OnlineFeaturesRequest,
) (*OnlineFeaturesResponse, error) {
	if len(req.Features) == 0 {
		return nil, fmt.Errorf("feast: features are required")
	}
	if len(req.EntityRows) == 0 {
		return nil, fmt.Errorf("feast: entity rows are required")
	}
	project := req.Project
	if project == "" {
		project = c.project
	}

	entities := make([]feastsdk.Row, len(req.EntityRows))
	for i, row := range req.EntityRows {
		entity := make(feastsdk.Row, len(row))
		for k, v := range row {
			entity[k] = toValue(v)
		}
		entities[i] = entity
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	resp, err := c.client.GetOnlineFeatures(ctx, &feastsdk.OnlineFeaturesRequest{
		Features: req.Features,
		Entities: entities,
		Project:  project,
	})
	if err != nil {
		return nil, fmt.Errorf("feast: get online features: %w", err)
	}

	rows := resp.Rows()
	vectors := make([]FeatureVector, len(rows))
	for i, row := range rows {
		values := make(map[string]any, len(req.Features))
		for _, name := range req.Features {
			if val, ok := row[name]; ok {
				if decoded := fromValue(val); decoded != nil {
					values[name] = decoded
				}
			}
		}
		var entityRow map[string]any
		if i < len(req.EntityRows) {
			entityRow = req.EntityRows[i]
		}
		vectors[i] = FeatureVector{Values: values, EntityRow: entityRow}
	}

	return &OnlineFeaturesResponse{Vectors: vectors}, nil
}

func (c *GrpcClient) Close() error {
	c.client = nil
	return nil
}

func toValue(v any) *feasttypes.Value {
	switch val := v.(type) {
	case string:
		return feastsdk.StrVal(val)
	case int:
		return feastsdk.Int64Val(int64(val))
	case int32:
		return feastsdk.Int64Val(int64(val))
	case int64:
		return feastsdk.Int64Val(val)
	case float32:
		return feastsdk.FloatVal(val)
	case float64:
		return feastsdk.DoubleVal(val)
	case bool:
		return feastsdk.BoolVal(val)
	case []byte:
		return feastsdk.BytesVal(val)
	default:
		return feastsdk.StrVal(fmt.Sprintf("%v", val))
	}
}

func fromValue(v *feasttypes.Value) any {
	if v == nil {
		return nil
	}
	switch val := v.Val.(type) {
	case *feasttypes.Value_StringVal:
		return val.StringVal
	case *feasttypes.Value_Int32Val:
		return float64(val.Int32Val)
	case *feasttypes.Value_Int64Val:
		return float64(val.Int64Val)
	case *feasttypes.Value_FloatVal:
		return float64(val.FloatVal)
	case *feasttypes.Value_DoubleVal:
		return val.DoubleVal
	case *feasttypes.Value_BoolVal:
		return val.BoolVal
	case *feasttypes.Value_BytesVal:
		return string(val.BytesVal)
	default:
		return nil
	}
}

var _ Client = (*GrpcClient)(nil)
