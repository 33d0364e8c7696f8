package util

import (
	"errors"
	"math"
	"reflect"
	"runtime"
	"strconv"
	"strings"
	"unicode"
)

func GetFunctionName(i interface{}) string {
	name := runtime.FuncForPC(reflect.ValueOf(i).Pointer()).Name()
	// Method values and closures carry a "-fm"/".funcN" suffix.
	name = strings.TrimSuffix(name, "-fm")
	if idx := strings.LastIndex(name, "/"); idx >= 0 {
		name = name[idx+1:]
	}
	return name
}

// LeadingInt reads the integer a string starts with, skipping leading
// whitespace: "12", " 7 eps" and "3/12" all parse. Anything else, including
// negative numbers, is 0. Values too large for an int saturate at math.MaxInt.
func LeadingInt(s string) int {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)
	s = strings.TrimPrefix(s, "+")
	end := strings.IndexFunc(s, func(r rune) bool { return r < '0' || r > '9' })
	if end < 0 {
		end = len(s)
	}
	if end == 0 {
		return 0
	}
	n, err := strconv.Atoi(s[:end])
	if errors.Is(err, strconv.ErrRange) {
		return math.MaxInt
	}
	return n
}

// ContainsFold reports whether substr is within s, ignoring case.
func ContainsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
