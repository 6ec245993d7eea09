package recall

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/rushteam/feedkit/core"
	"github.com/rushteam/feedkit/pipeline"
	"github.com/rushteam/feedkit/pkg/utils"
)

// Fanout 是一个 Recall Node：并发执行多个召回源，并合并结果。
//
// 失败隔离是硬性约定：任何单个源的错误只让该源为空，记一条日志，
// 不中断其他源；只有所有源都失败时才对外返回“推荐不可用”错误。
// 合并固定为按视频 ID 去重、先到先得——这里的“先”指 Sources 的声明顺序，
// 与哪个请求先完成无关，保证结果与完成时序解耦。
type Fanout struct {
	Sources       []Source
	Timeout       time.Duration // 每个召回源的超时时间（0 表示不限制）
	MaxConcurrent int           // 最大并发数（0 表示无限制）
	Logger        zerolog.Logger
}

func (n *Fanout) Name() string        { return "recall.fanout" }
func (n *Fanout) Kind() pipeline.Kind { return pipeline.KindRecall }

func (n *Fanout) Process(
	ctx context.Context,
	rctx *core.RecommendContext,
	_ []*core.Item,
) ([]*core.Item, error) {
	if len(n.Sources) == 0 {
		return nil, nil
	}

	// 每个源占一个结果槽位，goroutine 之间无共享写，合并顺序与完成顺序无关。
	results := make([][]*core.Item, len(n.Sources))
	errs := make([]error, len(n.Sources))

	eg, _ := errgroup.WithContext(ctx)
	if n.MaxConcurrent > 0 {
		eg.SetLimit(n.MaxConcurrent)
	}

	for i, src := range n.Sources {
		slot := i
		s := src

		eg.Go(func() error {
			recallCtx := ctx
			if n.Timeout > 0 {
				var cancel context.CancelFunc
				recallCtx, cancel = context.WithTimeout(ctx, n.Timeout)
				defer cancel()
			}

			items, err := s.Recall(recallCtx, rctx)
			if err != nil {
				// 单源失败：记录后按空结果处理，不中断其他源
				n.Logger.Warn().
					Str("source", s.Name()).
					Err(err).
					Msg("recall source failed, treating as empty")
				errs[slot] = err
				return nil
			}

			for _, it := range items {
				if it == nil {
					continue
				}
				it.PutLabel(LabelRecallSource, utils.Label{Value: s.Name(), Source: "recall"})
			}
			results[slot] = items
			return nil
		})
	}

	// goroutine 自身从不返回 error，这里 Wait 只做汇合
	_ = eg.Wait()

	failed := 0
	var lastErr error
	for _, err := range errs {
		if err != nil {
			failed++
			lastErr = err
		}
	}
	if failed == len(n.Sources) {
		return nil, core.NewAllSourcesFailed(lastErr)
	}

	return mergeFirst(results), nil
}

// mergeFirst 按源声明顺序展平并按视频 ID 去重，保留第一个出现的；
// 后续来源的重复项只合并 Label 后丢弃。
func mergeFirst(results [][]*core.Item) []*core.Item {
	total := 0
	for _, r := range results {
		total += len(r)
	}
	seen := make(map[string]*core.Item, total)
	out := make([]*core.Item, 0, total)
	for _, r := range results {
		for _, it := range r {
			if it == nil || it.Video == nil {
				continue
			}
			if old, ok := seen[it.ID()]; ok {
				for k, v := range it.Labels {
					old.PutLabel(k, v)
				}
				continue
			}
			seen[it.ID()] = it
			out = append(out, it)
		}
	}
	return out
}
