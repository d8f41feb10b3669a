package sortable

import (
	"fmt"
	"math"
	"strconv"

	"github.com/google/uuid"
)

// CanonicalKey renders a key or attribute value in a form that compares equal
// across storage representations: int32(7), int64(7) and "7" stay distinct
// types in Go but drivers hand back whichever they like, so integers collapse
// to their decimal text, UUIDs in any form to their hyphenated text.
func CanonicalKey(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case []byte:
		if len(t) == 16 {
			if id, err := uuid.FromBytes(t); err == nil {
				return id.String()
			}
		}
		return string(t)
	case [16]byte:
		return uuid.UUID(t).String()
	case uuid.UUID:
		return t.String()
	case fmt.Stringer:
		return t.String()
	}
	if n, ok := IntValue(v); ok {
		return strconv.FormatInt(n, 10)
	}
	return fmt.Sprint(v)
}

// SameKey reports whether two keys denote the same record.
func SameKey(a, b any) bool {
	if a == nil || b == nil {
		return false
	}
	return CanonicalKey(a) == CanonicalKey(b)
}

// IntValue converts numeric driver values to int64. Strings are parsed; floats
// must be integral.
func IntValue(v any) (int64, bool) {
	switch t := v.(type) {
	case int:
		return int64(t), true
	case int8:
		return int64(t), true
	case int16:
		return int64(t), true
	case int32:
		return int64(t), true
	case int64:
		return t, true
	case uint:
		return int64(t), true
	case uint8:
		return int64(t), true
	case uint16:
		return int64(t), true
	case uint32:
		return int64(t), true
	case uint64:
		if t > math.MaxInt64 {
			return 0, false
		}
		return int64(t), true
	case float32:
		return floatInt(float64(t))
	case float64:
		return floatInt(t)
	case string:
		n, err := strconv.ParseInt(t, 10, 64)
		return n, err == nil
	case []byte:
		n, err := strconv.ParseInt(string(t), 10, 64)
		return n, err == nil
	case *int64:
		if t == nil {
			return 0, false
		}
		return *t, true
	}
	return 0, false
}

func floatInt(f float64) (int64, bool) {
	if f != math.Trunc(f) || f > math.MaxInt64 || f < math.MinInt64 {
		return 0, false
	}
	return int64(f), true
}
