// Copyright (c) 2026 Bnusa. All rights reserved.

package slice_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yad-anakin/bnusa/pkg/slice"
)

func TestMapFilter(t *testing.T) {
	assert.Nil(t, slice.Map[int, int](nil, func(v int) int { return v }))
	assert.Equal(t, []int{2, 4}, slice.Map([]int{1, 2}, func(v int) int { return v * 2 }))
	assert.Equal(t, []string{"a", "c"}, slice.Filter([]string{"a", "", "c"}, func(s string) bool { return s != "" }))
}

func TestUniqueBy_KeepsFirstOccurrence(t *testing.T) {
	in := []string{"https://A.com", "https://b.com", "https://a.com"}
	out := slice.UniqueBy(in, strings.ToLower)
	assert.Equal(t, []string{"https://A.com", "https://b.com"}, out)
}

func TestTake(t *testing.T) {
	assert.Equal(t, []int{1, 2, 3}, slice.Take([]int{1, 2, 3, 4, 5}, 3))
	assert.Equal(t, []int{1}, slice.Take([]int{1}, 3))
	assert.Empty(t, slice.Take([]int{1}, -1))
}
