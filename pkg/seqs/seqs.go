// Package seqs contains lazy sequence operations used to apply compiled query
// plans to record streams.
package seqs

import (
	"iter"
	"slices"
)

// Filter returns the elements of src for which keep returns true. The result
// is lazy: src is consumed only while the result is being ranged over.
func Filter[T any](src iter.Seq[T], keep func(T) bool) iter.Seq[T] {
	return func(yield func(T) bool) {
		for v := range src {
			if !keep(v) {
				continue
			}
			if !yield(v) {
				return
			}
		}
	}
}

// SortedStable returns the elements of src in the order given by cmp.
// Elements that compare equal keep their relative input order. src is
// buffered into a fresh slice and sorted on first pull; the input is never
// mutated.
func SortedStable[T any](src iter.Seq[T], cmp func(a, b T) int) iter.Seq[T] {
	return func(yield func(T) bool) {
		sorted := slices.Collect(src)
		slices.SortStableFunc(sorted, cmp)
		for _, v := range sorted {
			if !yield(v) {
				return
			}
		}
	}
}

// Window drops the first skip elements of src and then yields at most take
// elements. A zero take imposes no limit. Consumption of src stops as soon as
// the window is satisfied.
func Window[T any](src iter.Seq[T], skip, take uint64) iter.Seq[T] {
	if skip == 0 && take == 0 {
		return src
	}
	return func(yield func(T) bool) {
		var skipped, taken uint64
		for v := range src {
			if skipped < skip {
				skipped++
				continue
			}
			if !yield(v) {
				return
			}
			taken++
			if take > 0 && taken == take {
				return
			}
		}
	}
}
