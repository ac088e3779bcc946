// Copyright (c) 2026 Bnusa. All rights reserved.

/*
Package slice complements the standard [slices] package with the small
generic transforms used when normalising link lists and building projections.
*/
package slice

// Map maps a slice of T to a slice of U.
func Map[T any, U any](input []T, transform func(T) U) []U {
	if input == nil {
		return nil
	}
	result := make([]U, len(input))
	for i, v := range input {
		result[i] = transform(v)
	}
	return result
}

// Filter returns the elements for which predicate is true.
func Filter[T any](input []T, predicate func(T) bool) []T {
	var result []T
	for _, v := range input {
		if predicate(v) {
			result = append(result, v)
		}
	}
	return result
}

// UniqueBy drops elements whose key was already seen, keeping first occurrences in order.
func UniqueBy[T any, K comparable](input []T, key func(T) K) []T {
	seen := make(map[K]struct{}, len(input))
	result := make([]T, 0, len(input))
	for _, v := range input {
		k := key(v)
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		result = append(result, v)
	}
	return result
}

// Take returns at most n leading elements.
func Take[T any](input []T, n int) []T {
	if n < 0 {
		n = 0
	}
	if len(input) > n {
		return input[:n]
	}
	return input
}
