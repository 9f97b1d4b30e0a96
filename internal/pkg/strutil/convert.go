// Package strutil converts query-string values.
package strutil

import "strconv"

// ConvertToInt parses s as an int, returning 0 when s is not a number.
func ConvertToInt(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}

// ConvertToInt64 parses s as an int64, returning 0 when s is not a number.
func ConvertToInt64(s string) int64 {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0
	}
	return n
}

// ConvertToBool parses s as a bool. The second result is false when s is not a boolean.
func ConvertToBool(s string) (bool, bool) {
	b, err := strconv.ParseBool(s)
	if err != nil {
		return false, false
	}
	return b, true
}
