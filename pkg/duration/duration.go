// Package duration 负责把视频时长的机器形式（ISO-8601）与人类可读形式
//（H:MM:SS / MM:SS / 纯秒数）解析成秒，并提供短视频判定与时长偏好分桶。
package duration

import (
	"regexp"
	"strconv"
	"strings"
)

// Bucket 是时长偏好匹配用的分桶。
type Bucket string

const (
	BucketUnknown Bucket = ""       // 无法解析，不参与偏好匹配
	BucketShort   Bucket = "short"  // (0, 240) 秒
	BucketMedium  Bucket = "medium" // [240, 1200] 秒
	BucketLong    Bucket = "long"   // > 1200 秒
)

// isoRe 匹配 ISO-8601 时长，例如 PT1H2M3S / PT45S / P1DT2H。
var isoRe = regexp.MustCompile(`^P(?:(\d+)D)?T?(?:(\d+)H)?(?:(\d+)M)?(?:(\d+)S)?$`)

// shortFormMarkers 命中任意一个即视为短视频（不看时长）。
var shortFormMarkers = []string{"#shorts", "#short", "ショート"}

// Parse 解析时长，优先机器形式，失败后回退人类文本形式。
// 两者都解析失败时返回 0（“无信号”，不是错误）。
func Parse(iso, text string) int {
	if sec := parseISO(iso); sec > 0 {
		return sec
	}
	return parseText(text)
}

func parseISO(iso string) int {
	if iso == "" {
		return 0
	}
	m := isoRe.FindStringSubmatch(strings.ToUpper(iso))
	if m == nil {
		return 0
	}
	d, _ := strconv.Atoi(zeroIfEmpty(m[1]))
	h, _ := strconv.Atoi(zeroIfEmpty(m[2]))
	min, _ := strconv.Atoi(zeroIfEmpty(m[3]))
	s, _ := strconv.Atoi(zeroIfEmpty(m[4]))
	return d*86400 + h*3600 + min*60 + s
}

func parseText(text string) int {
	text = strings.TrimSpace(text)
	if text == "" {
		return 0
	}
	parts := strings.Split(text, ":")
	switch len(parts) {
	case 1:
		// 纯秒数
		if sec, err := strconv.Atoi(parts[0]); err == nil && sec >= 0 {
			return sec
		}
	case 2:
		// MM:SS
		min, err1 := strconv.Atoi(parts[0])
		sec, err2 := strconv.Atoi(parts[1])
		if err1 == nil && err2 == nil && min >= 0 && sec >= 0 {
			return min*60 + sec
		}
	case 3:
		// H:MM:SS
		h, err1 := strconv.Atoi(parts[0])
		min, err2 := strconv.Atoi(parts[1])
		sec, err3 := strconv.Atoi(parts[2])
		if err1 == nil && err2 == nil && err3 == nil && h >= 0 && min >= 0 && sec >= 0 {
			return h*3600 + min*60 + sec
		}
	}
	return 0
}

func zeroIfEmpty(s string) string {
	if s == "" {
		return "0"
	}
	return s
}

// IsShortForm 判定短视频：秒数在 (0, 60] 内，或标题带短视频标记。
// 其余可解析的视频一律视为长视频。
func IsShortForm(seconds int, title string) bool {
	if seconds > 0 && seconds <= 60 {
		return true
	}
	lower := strings.ToLower(title)
	for _, m := range shortFormMarkers {
		if strings.Contains(lower, m) {
			return true
		}
	}
	return false
}

// Classify 返回时长偏好匹配用的分桶；0 秒（不可解析）归入 BucketUnknown。
func Classify(seconds int) Bucket {
	switch {
	case seconds <= 0:
		return BucketUnknown
	case seconds < 240:
		return BucketShort
	case seconds <= 1200:
		return BucketMedium
	default:
		return BucketLong
	}
}
