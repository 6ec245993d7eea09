// Package keyword 提供视频标题/频道名/简介的轻量关键词抽取。
// 纯函数、无副作用，是画像构建与内容打分的最底层依赖。
package keyword

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// segmentRe 匹配两类整体片段：hashtag（原样保留）与方括号标注（【】/[] 去框取内容）。
var segmentRe = regexp.MustCompile(`#[^\s#\[\]【】]+|\[[^\]]*\]|【[^】]*】`)

// boilerplatePrefixes 是常见的 URL/域名噪声前缀，命中即丢弃。
var boilerplatePrefixes = []string{"http", "www", "com", "jp"}

// Extract 把一段文本拆成有序 token 序列（允许重复，保持原文顺序）。
//
// 规则：
//   - hashtag（#word）原样输出
//   - [...] / 【...】 片段去掉括号、trim 空白后作为单个 token 输出
//   - 其余文本按标点/空白切词；rune 长度 <=1 或命中噪声前缀的词丢弃
//
// 除 trim 外不做任何归一化；大小写折叠由调用方按需处理。
// 空输入返回空序列。
func Extract(text string) []string {
	if text == "" {
		return nil
	}

	tokens := make([]string, 0, 8)
	last := 0
	for _, loc := range segmentRe.FindAllStringIndex(text, -1) {
		tokens = appendWords(tokens, text[last:loc[0]])

		seg := text[loc[0]:loc[1]]
		if strings.HasPrefix(seg, "#") {
			tokens = append(tokens, seg)
		} else {
			inner := strings.Trim(seg, "[]【】")
			inner = strings.TrimSpace(inner)
			if inner != "" {
				tokens = append(tokens, inner)
			}
		}
		last = loc[1]
	}
	tokens = appendWords(tokens, text[last:])
	return tokens
}

// appendWords 把普通文本按标点/空白切词后追加到 tokens。
func appendWords(tokens []string, text string) []string {
	words := strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
	for _, w := range words {
		if utf8.RuneCountInString(w) <= 1 {
			continue
		}
		if isBoilerplate(w) {
			continue
		}
		tokens = append(tokens, w)
	}
	return tokens
}

func isBoilerplate(w string) bool {
	lower := strings.ToLower(w)
	for _, p := range boilerplatePrefixes {
		if strings.HasPrefix(lower, p) {
			return true
		}
	}
	return false
}
