package engine

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/rushteam/feedkit/blend"
	"github.com/rushteam/feedkit/rank"
	"github.com/rushteam/feedkit/rerank"
)

// DefaultNoiseAmplitude 探索噪声的默认幅度。
const DefaultNoiseAmplitude = 10.0

// Config 是引擎的调优配置，全部可通过 YAML 下发。
// 零值字段在各节点内部回退到默认值；Mode 为空默认向量画像模式。
type Config struct {
	// Mode 打分变体："vector"（默认，全量 Feed + 混排）或 "flat"（分页截断）。
	Mode string `yaml:"mode"`

	// NoiseAmplitude 探索噪声幅度。nil（未设置）回退 DefaultNoiseAmplitude；
	// 显式 0 才是“关闭噪声、完全确定”（测试模式），忘记 DefaultConfig 的
	// 生产调用方不会静默丢掉探索。
	NoiseAmplitude *float64 `yaml:"noise_amplitude"`

	// 混排目标。
	LongTarget    int     `yaml:"long_target"`
	ShortTarget   int     `yaml:"short_target"`
	TrendingRatio float64 `yaml:"trending_ratio"`

	// 多样性约束。
	Cooldown   int `yaml:"cooldown"`
	MinResults int `yaml:"min_results"`

	// 分页扁平变体的单页大小。
	PageSize int `yaml:"page_size"`

	// 召回形态。
	MaxChannelSources int `yaml:"max_channel_sources"` // 每次调用采样的订阅频道数，默认 3
	RelatedSeeds      int `yaml:"related_seeds"`       // 相关视频召回的种子条数，0 = 不启用
	RecallTimeout     int `yaml:"recall_timeout"`      // 单个召回源超时（秒），0 = 不限制
	MaxConcurrent     int `yaml:"max_concurrent"`      // 召回并发上限，0 = 不限制
	TrendingCacheTTL  int `yaml:"trending_cache_ttl"`  // 热门快照缓存（秒），0 = 不缓存

	// 过滤行为。
	LanguageRule         string   `yaml:"language_rule"`          // CEL 规则表达式，空 = 关闭
	NGIncludeDescription bool     `yaml:"ng_include_description"` // NG 关键词是否也查简介
	BrandNoiseAllow      []string `yaml:"brand_noise_allow"`      // 品牌噪声过滤的豁免频道 ID
}

// DefaultConfig 返回生产默认值。
func DefaultConfig() Config {
	noise := DefaultNoiseAmplitude
	return Config{
		Mode:              string(rank.ModeVector),
		NoiseAmplitude:    &noise,
		LongTarget:        blend.DefaultLongTarget,
		ShortTarget:       blend.DefaultShortTarget,
		TrendingRatio:     blend.DefaultTrendingRatio,
		Cooldown:          rerank.DefaultCooldown,
		MinResults:        rerank.DefaultMinResults,
		PageSize:          rerank.DefaultPageSize,
		MaxChannelSources: 3,
	}
}

// Validate 校验配置边界。
func (c *Config) Validate() error {
	switch rank.Mode(c.Mode) {
	case "", rank.ModeFlat, rank.ModeVector:
	default:
		return fmt.Errorf("engine: unknown mode %q", c.Mode)
	}
	if c.TrendingRatio < 0 || c.TrendingRatio > 1 {
		return fmt.Errorf("engine: trending_ratio %v out of [0, 1]", c.TrendingRatio)
	}
	if c.NoiseAmplitude != nil && *c.NoiseAmplitude < 0 {
		return fmt.Errorf("engine: noise_amplitude %v must be >= 0", *c.NoiseAmplitude)
	}
	return nil
}

// noiseAmplitude 解析噪声幅度：未设置取默认，显式 0 保持 0。
func (c *Config) noiseAmplitude() float64 {
	if c.NoiseAmplitude == nil {
		return DefaultNoiseAmplitude
	}
	return *c.NoiseAmplitude
}

// LoadConfig 从 YAML 文件加载配置，未出现的字段保持生产默认值。
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("engine: read config: %w", err)
	}
	return ParseConfig(data)
}

// ParseConfig 解析 YAML 配置。
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("engine: parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
