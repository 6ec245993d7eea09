package filter

import (
	"context"

	"github.com/rushteam/feedkit/core"
	"github.com/rushteam/feedkit/pkg/dsl"
)

// Rule 是 CEL 表达式驱动的过滤器：表达式返回 true 即剔除。
//
// 典型用法是语言限制规则（非订阅频道的非日语内容），它的默认开关在
// 原始业务里一直悬而未决，这里做成显式配置：表达式为空 = 规则关闭，
// 开启与否由运营/调用方决定，引擎不猜默认值。
type Rule struct {
	prog *dsl.Program
}

// LanguageRuleJapanese 是预置的语言限制表达式：
// 标题不含日文假名/汉字、且频道不在订阅里的候选剔除。
const LanguageRuleJapanese = `!video.title.matches('[\\p{Hiragana}\\p{Katakana}\\p{Han}]') && !signals.subscribed`

// NewRule 编译一条规则表达式。表达式非法时返回错误（边界校验，启动期暴露）。
func NewRule(expr string) (*Rule, error) {
	prog, err := dsl.Compile(expr)
	if err != nil {
		return nil, err
	}
	return &Rule{prog: prog}, nil
}

func (f *Rule) Name() string { return "filter.rule" }

func (f *Rule) ShouldFilter(
	_ context.Context,
	rctx *core.RecommendContext,
	item *core.Item,
) (bool, error) {
	if f.prog == nil {
		return false, nil
	}
	return f.prog.EvalItem(item, rctx)
}
