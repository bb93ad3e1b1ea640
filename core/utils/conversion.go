package utils

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// ToInt64 converts loosely typed JSON values to int64.
// Provider documents encode numbers both as JSON numbers and as decimal strings.
func ToInt64(val any) int64 {
	switch v := val.(type) {
	case nil:
		return 0
	case int:
		return int64(v)
	case int64:
		return v
	case int32:
		return int64(v)
	case uint:
		return int64(v)
	case uint32:
		return int64(v)
	case uint64:
		return int64(v)
	case float64:
		return int64(v)
	case float32:
		return int64(v)
	case json.Number:
		i, err := v.Int64()
		if err != nil {
			f, _ := v.Float64()
			return int64(f)
		}
		return i
	case string:
		i, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		if err != nil {
			f, _ := strconv.ParseFloat(strings.TrimSpace(v), 64)
			return int64(f)
		}
		return i
	case []byte:
		return ToInt64(string(v))
	default:
		return ToInt64(fmt.Sprintf("%v", v))
	}
}

// ToInt converts various types to int.
func ToInt(val any) int {
	return int(ToInt64(val))
}

// ToString converts various types to string.
// Whole floats print without a fractional part so numeric ids survive a round-trip.
func ToString(val any) string {
	switch v := val.(type) {
	case nil:
		return ""
	case string:
		return v
	case []byte:
		return string(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case json.Number:
		return v.String()
	default:
		return fmt.Sprintf("%v", v)
	}
}

// ToBool converts various types to bool.
// It handles bool, numeric types (1=true), and strings ("1", "true").
func ToBool(val any) bool {
	switch v := val.(type) {
	case bool:
		return v
	case int, int64, int32, uint, uint64, uint32, float64, float32, json.Number:
		return ToInt64(v) == 1
	case string:
		return v == "1" || strings.ToLower(v) == "true"
	case []byte:
		return ToBool(string(v))
	default:
		return false
	}
}
