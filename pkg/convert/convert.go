// Copyright (c) 2026 Bnusa. All rights reserved.

/*
Package convert provides forgiving string conversions for query parameters.

Malformed input falls back to a default instead of failing the request;
do not use it where a bad value must be reported.
*/
package convert

import (
	"strconv"
	"strings"
)

// ToIntD converts a string to an int, returning def when it is empty or malformed.
func ToIntD(str string, def int) int {
	str = strings.TrimSpace(str)
	if str == "" {
		return def
	}
	if v, err := strconv.Atoi(str); err == nil {
		return v
	}
	return def
}

// ToFlag interprets a query flag. "", "1", "true" and "yes" are true, so a
// bare "?noInc" counts as set.
func ToFlag(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "1", "true", "yes", "on":
		return true
	}
	return false
}
