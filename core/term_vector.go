package core

import (
	"math"
	"sort"
)

// TermVector 是加权词向量：归一化 token -> 累积权重。
// 每次排序调用新建，不持久化。构建期间权重只增不减。
type TermVector struct {
	Weights map[string]float64

	// Magnitude 是欧氏范数，构建完成后由 Finalize 计算一次，
	// 供余弦相似度风格的归一化使用。
	Magnitude float64
}

func NewTermVector() *TermVector {
	return &TermVector{Weights: make(map[string]float64)}
}

// Add 累加一个 token 的权重；非正权重忽略（权重只增不减的不变式）。
func (tv *TermVector) Add(term string, weight float64) {
	if term == "" || weight <= 0 {
		return
	}
	tv.Weights[term] += weight
}

// Finalize 计算向量范数。构建完成后调用一次。
func (tv *TermVector) Finalize() {
	var sum float64
	for _, w := range tv.Weights {
		sum += w * w
	}
	tv.Magnitude = math.Sqrt(sum)
}

// Similarity 计算候选关键词序列与本向量的余弦风格匹配度：
// dot / (Magnitude * sqrt(候选关键词个数))。
// 向量为空或候选无关键词时返回 0。
func (tv *TermVector) Similarity(keywords []string) float64 {
	if tv == nil || tv.Magnitude == 0 || len(keywords) == 0 {
		return 0
	}
	var dot float64
	for _, k := range keywords {
		dot += tv.Weights[k]
	}
	return dot / (tv.Magnitude * math.Sqrt(float64(len(keywords))))
}

// TopTerms 按权重降序返回前 n 个 token（权重相同按字典序，保证确定性）。
func (tv *TermVector) TopTerms(n int) []string {
	if tv == nil || n <= 0 || len(tv.Weights) == 0 {
		return nil
	}
	terms := make([]string, 0, len(tv.Weights))
	for t := range tv.Weights {
		terms = append(terms, t)
	}
	sort.Slice(terms, func(i, j int) bool {
		wi, wj := tv.Weights[terms[i]], tv.Weights[terms[j]]
		if wi != wj {
			return wi > wj
		}
		return terms[i] < terms[j]
	})
	if len(terms) > n {
		terms = terms[:n]
	}
	return terms
}
