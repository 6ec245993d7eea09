// Package dsl 提供基于 CEL (Common Expression Language) 的候选规则解释器。
// 运营侧可以用表达式描述“该不该剔除这条候选”，不用改代码：
//
//   - `labels.recall_source == "trending"`
//   - `video.seconds > 1200 && !signals.subscribed`
//   - `!video.title.matches('[\\p{Hiragana}\\p{Katakana}\\p{Han}]') && !signals.subscribed`
//
// 最后一条就是可配置的语言限制规则：非订阅频道的非日语内容。
package dsl

import (
	"fmt"
	"sync"

	"github.com/google/cel-go/cel"

	"github.com/rushteam/feedkit/core"
)

var (
	// celEnv 是全局的 CEL 环境，线程安全，可复用
	celEnv     *cel.Env
	celEnvOnce sync.Once
	celEnvErr  error
)

// initCELEnv 初始化 CEL 环境，定义变量
func initCELEnv() (*cel.Env, error) {
	return cel.NewEnv(
		cel.Variable("video", cel.DynType),
		cel.Variable("labels", cel.DynType),
		cel.Variable("signals", cel.DynType),
	)
}

func getCELEnv() (*cel.Env, error) {
	celEnvOnce.Do(func() {
		celEnv, celEnvErr = initCELEnv()
	})
	return celEnv, celEnvErr
}

// Program 是编译好的规则表达式，可对多个候选重复求值。
type Program struct {
	expr string
	prg  cel.Program
}

// Compile 编译一条规则表达式。表达式必须返回布尔值。
func Compile(expr string) (*Program, error) {
	if expr == "" {
		return nil, fmt.Errorf("empty rule expression")
	}
	env, err := getCELEnv()
	if err != nil {
		return nil, fmt.Errorf("init cel env: %w", err)
	}

	ast, issues := env.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("compile rule %q: %w", expr, issues.Err())
	}
	prg, err := env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("build program %q: %w", expr, err)
	}
	return &Program{expr: expr, prg: prg}, nil
}

// Expr 返回原始表达式（用于日志/错误提示）。
func (p *Program) Expr() string { return p.expr }

// EvalItem 对单个候选求值，返回布尔结果。
//
// 暴露给表达式的变量：
//   - video:   id / title / channel_id / channel_name / description / seconds
//   - labels:  item 上的 Label（key -> value 字符串）
//   - signals: subscribed（候选频道是否在订阅里）/ page
func (p *Program) EvalItem(item *core.Item, rctx *core.RecommendContext) (bool, error) {
	if item == nil || item.Video == nil {
		return false, nil
	}

	labels := make(map[string]string, len(item.Labels))
	for k, lbl := range item.Labels {
		labels[k] = lbl.Value
	}

	subscribed := false
	page := 0
	if rctx != nil {
		page = rctx.Page
		if rctx.Signals != nil {
			ids := rctx.Signals.SubscribedChannelIDs()
			_, subscribed = ids[item.Video.ChannelID]
		}
	}

	out, _, err := p.prg.Eval(map[string]any{
		"video": map[string]any{
			"id":           item.Video.ID,
			"title":        item.Video.Title,
			"channel_id":   item.Video.ChannelID,
			"channel_name": item.Video.ChannelName,
			"description":  item.Video.Description,
			"seconds":      item.EnsureSeconds(),
		},
		"labels": labels,
		"signals": map[string]any{
			"subscribed": subscribed,
			"page":       page,
		},
	})
	if err != nil {
		return false, fmt.Errorf("eval rule %q: %w", p.expr, err)
	}

	result, ok := out.Value().(bool)
	if !ok {
		return false, fmt.Errorf("rule %q did not evaluate to bool", p.expr)
	}
	return result, nil
}
