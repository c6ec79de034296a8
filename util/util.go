package util

import (
	"golang.org/x/exp/constraints"
	"golang.org/x/exp/slices"
)

func GetKeys[A constraints.Ordered, B any](m map[A]B) []A {
	keys := make([]A, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	return keys
}

// SortedKeys returns the keys of m in ascending order.
func SortedKeys[A constraints.Ordered, B any](m map[A]B) []A {
	keys := GetKeys(m)
	slices.Sort(keys)
	return keys
}

// SortedBy sorts items in place by rank, ties broken by natural order.
func SortedBy[A constraints.Ordered, R constraints.Integer](items []A, rank func(A) R) []A {
	slices.SortFunc(items, func(a, b A) int {
		ra, rb := rank(a), rank(b)
		switch {
		case ra < rb:
			return -1
		case ra > rb:
			return 1
		case a < b:
			return -1
		case a > b:
			return 1
		}
		return 0
	})
	return items
}

// Dedupe keeps the first occurrence of every item.
func Dedupe[A comparable](items []A) []A {
	seen := make(map[A]bool, len(items))
	res := make([]A, 0, len(items))
	for _, v := range items {
		if seen[v] {
			continue
		}
		seen[v] = true
		res = append(res, v)
	}
	return res
}

func Max[A constraints.Integer](num1 A, num2 A) A {
	if num1 < num2 {
		return num2
	}
	return num1
}

// Cycle returns the item after cur, wrapping around. An unknown cur gives
// the first item.
func Cycle[A comparable](items []A, cur A) A {
	for i, v := range items {
		if v == cur {
			return items[(i+1)%len(items)]
		}
	}
	return items[0]
}
