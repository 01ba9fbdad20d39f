package compiler

import (
	"iter"

	"github.com/dynqio/dynq/domain"
	"github.com/dynqio/dynq/pkg/seqs"
)

// Run applies a compiled plan to a sequence. The result is lazy: nothing is
// pulled from src before the caller ranges over it. Unordered plans stream
// and stop pulling as soon as the window is satisfied; ordered plans buffer
// the matching records on first pull to sort them stably before windowing.
func Run[T any](src iter.Seq[T], plan *domain.Plan) iter.Seq[T] {
	if plan == nil {
		return src
	}
	res := src
	if match := plan.Match; match != nil {
		res = seqs.Filter(res, func(record T) bool { return match(record) })
	}
	if compare := plan.Compare; compare != nil {
		res = seqs.SortedStable(res, func(a, b T) int { return compare(a, b) })
	}
	return seqs.Window(res, plan.Skip, plan.Take)
}
