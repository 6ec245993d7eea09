// Package conv 提供类型转换、map/slice 转换等泛型工具，用于简化各模块中的重复逻辑。
package conv

// ToFloat64 将 any 转为 float64。
// 支持 float64、float32、int、int64、int32；bool 视为 1.0/0.0。
func ToFloat64(v any) (float64, bool) {
	if v == nil {
		return 0, false
	}
	switch val := v.(type) {
	case float64:
		return val, true
	case float32:
		return float64(val), true
	case int:
		return float64(val), true
	case int64:
		return float64(val), true
	case int32:
		return float64(val), true
	case bool:
		if val {
			return 1.0, true
		}
		return 0.0, true
	default:
		return 0, false
	}
}

// ToInt 将 any 转为 int。
// 支持 int、int64、int32、float64、float32。
func ToInt(v any) (int, bool) {
	if v == nil {
		return 0, false
	}
	switch val := v.(type) {
	case int:
		return val, true
	case int64:
		return int(val), true
	case int32:
		return int(val), true
	case float64:
		return int(val), true
	case float32:
		return int(val), true
	default:
		return 0, false
	}
}

// ToString 将 any 转为 string。
// 仅支持 string 类型，否则返回 ("", false)。
func ToString(v any) (string, bool) {
	if v == nil {
		return "", false
	}
	if s, ok := v.(string); ok {
		return s, true
	}
	return "", false
}

// MapToFloat64 将 map[string]any 转为 map[string]float64，忽略不可转换的值。
func MapToFloat64(m map[string]any) map[string]float64 {
	out := make(map[string]float64, len(m))
	for k, v := range m {
		if fv, ok := ToFloat64(v); ok {
			out[k] = fv
		}
	}
	return out
}

// SliceAnyToString 将 []any / []string 转为 []string，忽略非 string 元素。
func SliceAnyToString(v any) []string {
	if v == nil {
		return nil
	}
	switch vals := v.(type) {
	case []string:
		return vals
	case []any:
		out := make([]string, 0, len(vals))
		for _, e := range vals {
			if s, ok := e.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}

// ConfigGet 从配置 map 中取出 T 类型的值，缺省或类型不符时返回 def。
func ConfigGet[T any](config map[string]any, key string, def T) T {
	if config == nil {
		return def
	}
	if v, ok := config[key]; ok {
		if tv, ok := v.(T); ok {
			return tv
		}
	}
	return def
}

// ConfigGetInt64 从配置 map 中取出整数值，兼容 YAML/JSON 解析出的 int/int64/float64。
func ConfigGetInt64(config map[string]any, key string, def int64) int64 {
	if config == nil {
		return def
	}
	v, ok := config[key]
	if !ok {
		return def
	}
	if iv, ok := ToInt(v); ok {
		return int64(iv)
	}
	return def
}

// ConfigGetFloat64 从配置 map 中取出浮点值，兼容 int/float 两种解析结果。
func ConfigGetFloat64(config map[string]any, key string, def float64) float64 {
	if config == nil {
		return def
	}
	v, ok := config[key]
	if !ok {
		return def
	}
	if fv, ok := ToFloat64(v); ok {
		return fv
	}
	return def
}
