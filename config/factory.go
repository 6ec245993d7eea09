package config

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/rushteam/feedkit/feature"
	"github.com/rushteam/feedkit/filter"
	"github.com/rushteam/feedkit/pipeline"
	"github.com/rushteam/feedkit/pkg/conv"
	"github.com/rushteam/feedkit/rank"
	"github.com/rushteam/feedkit/rerank"
)

func init() {
	Register("feature.enrich", buildEnrichNode)
	Register("filter.chain", buildFilterNode)
	Register("rank.scorer", buildScorerNode)
	Register("rerank.cooldown", buildCooldownNode)
	Register("rerank.topn", buildTopNNode)
}

func buildEnrichNode(_ map[string]interface{}) (pipeline.Node, error) {
	return &feature.EnrichNode{}, nil
}

// buildFilterNode 组装过滤链。config 形如：
//
//	filters:
//	  - type: seen
//	  - type: ng_keyword
//	    include_description: true
//	  - type: brand_noise
//	    allow_channel_ids: ["UCxxxx"]
//	  - type: rule
//	    expr: "..."
func buildFilterNode(config map[string]interface{}) (pipeline.Node, error) {
	raw, ok := config["filters"].([]interface{})
	if !ok {
		return nil, fmt.Errorf("filters not found or invalid")
	}

	filters := make([]filter.Filter, 0, len(raw))
	for _, fc := range raw {
		fm, ok := fc.(map[string]interface{})
		if !ok {
			continue
		}
		switch conv.ConfigGet[string](fm, "type", "") {
		case "seen":
			filters = append(filters, &filter.Seen{
				KeyPrefix:    conv.ConfigGet[string](fm, "key_prefix", ""),
				HistoryDepth: conv.ConfigGetInt64(fm, "history_depth", 0),
			})
		case "ng_keyword":
			filters = append(filters, &filter.NGKeyword{
				IncludeDescription: conv.ConfigGet[bool](fm, "include_description", false),
			})
		case "ng_channel":
			filters = append(filters, &filter.NGChannel{})
		case "penalty":
			filters = append(filters, &filter.Penalty{
				Threshold: conv.ConfigGetFloat64(fm, "threshold", 0),
			})
		case "brand_noise":
			filters = append(filters, &filter.BrandNoise{
				Keywords:        conv.SliceAnyToString(fm["keywords"]),
				AllowChannelIDs: conv.SliceAnyToString(fm["allow_channel_ids"]),
			})
		case "rule":
			expr := conv.ConfigGet[string](fm, "expr", "")
			if expr == "" {
				return nil, fmt.Errorf("rule filter requires expr")
			}
			rule, err := filter.NewRule(expr)
			if err != nil {
				return nil, fmt.Errorf("compile rule: %w", err)
			}
			filters = append(filters, rule)
		default:
			return nil, fmt.Errorf("unknown filter type: %v", fm["type"])
		}
	}

	return &filter.Node{Filters: filters}, nil
}

// buildScorerNode 组装打分节点。画像向量按调用构建、需要引擎注入，
// 配置驱动的 scorer 只覆盖扁平模式；向量模式请走 engine 组装。
func buildScorerNode(config map[string]interface{}) (pipeline.Node, error) {
	mode := rank.Mode(conv.ConfigGet[string](config, "mode", string(rank.ModeFlat)))
	switch mode {
	case rank.ModeFlat, rank.ModeVector:
	default:
		return nil, fmt.Errorf("unknown scorer mode: %s", mode)
	}
	return &rank.Scorer{
		Mode:           mode,
		NoiseAmplitude: conv.ConfigGetFloat64(config, "noise_amplitude", 0),
	}, nil
}

func buildCooldownNode(config map[string]interface{}) (pipeline.Node, error) {
	return &rerank.Cooldown{
		Cooldown:   int(conv.ConfigGetInt64(config, "cooldown", 0)),
		MinResults: int(conv.ConfigGetInt64(config, "min_results", 0)),
		Logger:     zerolog.Nop(),
	}, nil
}

func buildTopNNode(config map[string]interface{}) (pipeline.Node, error) {
	return &rerank.TopN{
		N: int(conv.ConfigGetInt64(config, "n", 0)),
	}, nil
}
