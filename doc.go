// Package feedkit 是一个个性化视频 Feed 排序引擎（Feed Kit）。
//
// 设计要点：
// - Pipeline-first: 排序逻辑通过 Node 串联（Recall → Filter → Rank → ReRank）
// - Labels-first: labels 全链路透传与标准化 merge，支持 explain / 观测
// - 信号快照注入: 用户历史/偏好/NG 列表由调用方组装成 UserSignals，引擎只读
// - 随机性可注入: 噪声与洗牌全走 RecommendContext 的随机源，测试可完全确定
//
// 对外入口是 engine.Engine.Rank；需要自定义编排时可直接组合各 Node。
package feedkit

import "github.com/rushteam/feedkit/pipeline"

// 轻量 facade：便于用户直接 import "feedkit" 使用核心抽象。
type Pipeline = pipeline.Pipeline
type Node = pipeline.Node
type Kind = pipeline.Kind

const (
	KindRecall      = pipeline.KindRecall
	KindFilter      = pipeline.KindFilter
	KindRank        = pipeline.KindRank
	KindReRank      = pipeline.KindReRank
	KindPostProcess = pipeline.KindPostProcess
)
