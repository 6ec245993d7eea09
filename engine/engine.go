// Package engine 是 feedkit 的对外入口：
// 把画像构建、查询生成、召回 fan-out、过滤、打分、多样性约束与混排
// 组装成一次 Rank 调用。引擎自身无跨调用状态，每次调用独立且幂等
//（新鲜度文本与探索噪声除外）。
package engine

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/rushteam/feedkit/blend"
	"github.com/rushteam/feedkit/core"
	"github.com/rushteam/feedkit/feature"
	"github.com/rushteam/feedkit/filter"
	"github.com/rushteam/feedkit/pipeline"
	"github.com/rushteam/feedkit/profile"
	"github.com/rushteam/feedkit/query"
	"github.com/rushteam/feedkit/rank"
	"github.com/rushteam/feedkit/recall"
	"github.com/rushteam/feedkit/rerank"
)

// ParamPageToken 是 rctx.Params 里的搜索分页 token 键（分页扁平变体用）。
const ParamPageToken = "page_token"

// Engine 对一次调用执行完整的推荐流程。
type Engine struct {
	client    core.ContentSource
	store     core.KeyValueStore
	interests core.InterestService
	cfg       Config
	rule      *filter.Rule
	logger    zerolog.Logger

	profile *profile.Builder
	queries *query.Generator
}

// Option 配置可选依赖。
type Option func(*Engine)

// WithStore 挂接长周期已看记录与热门快照缓存的存储后端。
func WithStore(kv core.KeyValueStore) Option {
	return func(e *Engine) { e.store = kv }
}

// WithInterests 挂接长期兴趣特征服务（Feast）。
func WithInterests(svc core.InterestService) Option {
	return func(e *Engine) { e.interests = svc }
}

// WithLogger 设置日志器，默认丢弃。
func WithLogger(l zerolog.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// New 构建引擎。配置校验与规则编译都在这里完成，启动期暴露问题。
func New(client core.ContentSource, cfg Config, opts ...Option) (*Engine, error) {
	if client == nil {
		return nil, core.NewDomainError(core.ModuleEngine, core.ErrorCodeInvalidInput, "content source client is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	e := &Engine{
		client:  client,
		cfg:     cfg,
		logger:  zerolog.Nop(),
		profile: &profile.Builder{},
		queries: &query.Generator{},
	}
	for _, opt := range opts {
		opt(e)
	}
	e.profile.Interests = e.interests

	if cfg.LanguageRule != "" {
		rule, err := filter.NewRule(cfg.LanguageRule)
		if err != nil {
			return nil, err
		}
		e.rule = rule
	}
	return e, nil
}

// Rank 执行一次推荐。
//
// 召回是唯一的挂起点：各源并发执行、单源失败只降级不报错，
// 全部失败才返回一个“推荐不可用”错误。召回之后的过滤/打分/混排
// 全部同步在内存里完成，最终顺序只由分数与注入随机源的洗牌决定，
// 与取数完成时序无关。
func (e *Engine) Rank(ctx context.Context, rctx *core.RecommendContext) (*core.FeedResult, error) {
	if rctx == nil {
		rctx = &core.RecommendContext{}
	}
	if rctx.Signals == nil {
		rctx.Signals = &core.UserSignals{}
	}
	if err := rctx.Signals.Prefs.Validate(); err != nil {
		return nil, err
	}

	mode := rank.ModeVector
	if rank.Mode(e.cfg.Mode) == rank.ModeFlat {
		mode = rank.ModeFlat
	}

	tv := e.profile.Build(ctx, rctx)

	fanout := &recall.Fanout{
		Sources:       e.buildSources(rctx, tv, mode),
		Timeout:       time.Duration(e.cfg.RecallTimeout) * time.Second,
		MaxConcurrent: e.cfg.MaxConcurrent,
		Logger:        e.logger,
	}
	candidates, err := fanout.Process(ctx, rctx, nil)
	if err != nil {
		return nil, err
	}

	// 未过滤的热门池供多样性回填使用，在过滤前截取
	if rctx.Params == nil {
		rctx.Params = make(map[string]any)
	}
	rctx.Params[rerank.ParamTrendingPool] = trendingPool(candidates)

	p := &pipeline.Pipeline{Nodes: e.buildNodes(mode, tv)}
	ranked, err := p.Run(ctx, rctx, candidates)
	if err != nil {
		return nil, err
	}

	if mode == rank.ModeFlat {
		return &core.FeedResult{Videos: videosOf(ranked)}, nil
	}

	mixer := &blend.Mixer{
		LongTarget:    e.cfg.LongTarget,
		ShortTarget:   e.cfg.ShortTarget,
		TrendingRatio: e.cfg.TrendingRatio,
	}
	return mixer.Mix(rctx, ranked), nil
}

// buildSources 按查询生成器的产出组装本次调用的召回源：
// 至多 MaxQueries 条搜索 + 至多 MaxChannelSources 个采样订阅频道
//（纯探索模式跳过）+ 固定一条热门 + 可选的相关视频种子。
// 全量 Feed 变体再为短视频种子各加一条搜索。
func (e *Engine) buildSources(rctx *core.RecommendContext, tv *core.TermVector, mode rank.Mode) []recall.Source {
	s := rctx.Signals
	pageToken, _ := pageTokenOf(rctx)

	sources := make([]recall.Source, 0, 16)
	for _, q := range e.queries.Generate(rctx) {
		sources = append(sources, &recall.Search{Client: e.client, Query: q, PageToken: pageToken})
	}
	if mode == rank.ModeVector {
		for _, q := range e.queries.ShortsSeeds(tv) {
			sources = append(sources, &recall.Search{Client: e.client, Query: q})
		}
	}

	if s.Prefs.Discovery != core.DiscoveryPure && len(s.Subscriptions) > 0 {
		limit := e.cfg.MaxChannelSources
		if limit <= 0 {
			limit = 3
		}
		idx := make([]int, len(s.Subscriptions))
		for i := range idx {
			idx[i] = i
		}
		rctx.Shuffle(len(idx), func(i, j int) { idx[i], idx[j] = idx[j], idx[i] })
		if limit > len(idx) {
			limit = len(idx)
		}
		for _, i := range idx[:limit] {
			sources = append(sources, &recall.ChannelUploads{
				Client:    e.client,
				ChannelID: s.Subscriptions[i].ID,
			})
		}
	}

	sources = append(sources, &recall.Trending{
		Client:   e.client,
		Store:    e.store,
		CacheTTL: e.cfg.TrendingCacheTTL,
	})

	if e.cfg.RelatedSeeds > 0 {
		added := 0
		for _, entry := range s.WatchHistory {
			if added >= e.cfg.RelatedSeeds {
				break
			}
			if entry.VideoID == "" {
				continue
			}
			sources = append(sources, &recall.Related{Client: e.client, VideoID: entry.VideoID})
			added++
		}
	}

	return sources
}

func (e *Engine) buildNodes(mode rank.Mode, tv *core.TermVector) []pipeline.Node {
	filters := []filter.Filter{
		&filter.Seen{Store: e.store},
		&filter.NGKeyword{IncludeDescription: e.cfg.NGIncludeDescription},
		&filter.NGChannel{},
		&filter.Penalty{},
		&filter.BrandNoise{AllowChannelIDs: e.cfg.BrandNoiseAllow},
	}
	if e.rule != nil {
		filters = append(filters, e.rule)
	}

	scorer := &rank.Scorer{Mode: mode, NoiseAmplitude: e.cfg.noiseAmplitude()}
	if mode == rank.ModeVector {
		scorer.Vector = tv
	}

	nodes := []pipeline.Node{
		&feature.EnrichNode{},
		&filter.Node{Filters: filters},
		scorer,
	}
	if mode == rank.ModeFlat {
		// 分页扁平变体：打分排序后直接截断，不做混排
		return append(nodes, &rerank.TopN{N: e.cfg.PageSize})
	}
	return append(nodes, &rerank.Cooldown{
		Cooldown:   e.cfg.Cooldown,
		MinResults: e.cfg.MinResults,
		Logger:     e.logger,
	})
}

// trendingPool 从召回合并结果里截取热门来源的候选。
func trendingPool(items []*core.Item) []*core.Item {
	pool := make([]*core.Item, 0, len(items))
	for _, it := range items {
		if it == nil {
			continue
		}
		if lbl, ok := it.GetLabel(recall.LabelRecallSource); ok && containsSource(lbl.Value, recall.SourceTrending) {
			pool = append(pool, it)
		}
	}
	return pool
}

func containsSource(merged, want string) bool {
	start := 0
	for i := 0; i <= len(merged); i++ {
		if i == len(merged) || merged[i] == '|' {
			if merged[start:i] == want {
				return true
			}
			start = i + 1
		}
	}
	return false
}

func pageTokenOf(rctx *core.RecommendContext) (string, bool) {
	if rctx.Params == nil {
		return "", false
	}
	token, ok := rctx.Params[ParamPageToken].(string)
	return token, ok
}

func videosOf(items []*core.Item) []*core.Video {
	out := make([]*core.Video, 0, len(items))
	for _, it := range items {
		if it == nil || it.Video == nil {
			continue
		}
		out = append(out, it.Video)
	}
	return out
}
