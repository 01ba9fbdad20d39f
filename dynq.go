// Package dynq provides dynamic query composition over plain Go collections.
//
// Request options carry exact-match filters, range filters, substring search,
// multi-key ordering and a paging window. A [Planner] validates them once
// against a record type and compiles them into a reusable [Plan], which [Run]
// then applies to any sequence of that type.
//
// The basic usage starts with creating a new [Planner] instance, which can be
// done by calling [NewPlanner]. For one-off requests, [Apply] compiles and
// runs in a single call.
package dynq

import (
	"iter"
	"slices"

	"go.uber.org/zap"

	"github.com/dynqio/dynq/domain"
	"github.com/dynqio/dynq/internal/adapter/compiler"
	"github.com/dynqio/dynq/internal/adapter/resolver"
)

// ErrInvalidFieldPath is returned when a requested field path is
// syntactically invalid, for example when it is empty or contains an empty
// segment.
type ErrInvalidFieldPath = domain.ErrInvalidFieldPath

// ErrUnknownField is returned when a field path names a member the record
// type does not have.
type ErrUnknownField = domain.ErrUnknownField

// ErrTypeMismatch is returned when a filter operand cannot be converted to
// the type of the field it is matched against.
type ErrTypeMismatch = domain.ErrTypeMismatch

// ErrUnsupportedOperation is returned when a stage cannot serve the type of
// the field it was requested on, for example a range filter over a slice, or
// when a sort direction is not recognized.
type ErrUnsupportedOperation = domain.ErrUnsupportedOperation

// defaultResolver backs every planner that was not given its own resolver, so
// resolved field chains are cached once per record type across the process.
var defaultResolver = resolver.NewResolver()

// NewPlanner creates a new [Planner] instance with the provided configuration
// options:
//
// - [WithResolver]: sets the resolver for turning field paths into accessors.
//
// - [WithCoercer]: sets the coercer for converting operands to field types.
//
// - [WithComparer]: sets the comparer for ordering and equality of values.
//
// - [WithPredicateBuilder]: sets the builder for filter and search predicates.
//
// - [WithOrderer]: sets the orderer for sort key comparisons.
//
// - [WithLogger]: sets the logger for plan composition diagnostics.
func NewPlanner(options ...Option) Planner {
	options = append([]Option{WithResolver(defaultResolver)}, options...)
	return compiler.NewCompiler(options...)
}

// Planner defines the main interface for composing query plans. It validates
// request options against a record type once, up front, and compiles them
// into a reusable [Plan].
//
// Plans are immutable and safe to share across goroutines.
type Planner interface {
	// Plan composes a plan for the record type of root. Exact-match
	// filters, range filters and search conjoin into one predicate,
	// ordering keys fold into one comparison, and skip and take are
	// carried as the paging window. The first invalid stage aborts
	// planning and no partial plan is returned.
	Plan(root any, opts RequestDataOptions) (*Plan, error)
}

// Plan is an executable query plan composed by a [Planner].
type Plan = domain.Plan

// RequestDataOptions describes one query request: which records to keep,
// how to order them and which page to return.
type RequestDataOptions = domain.RequestDataOptions

// ExactMatchFilter keeps records whose field equals a value.
type ExactMatchFilter = domain.ExactMatchFilter

// RangeFilter keeps records whose field falls inside bounds.
type RangeFilter = domain.RangeFilter

// OrderSpec orders records by a field in a direction.
type OrderSpec = domain.OrderSpec

// SearchSpec is a normalized substring search over a set of fields.
type SearchSpec = domain.SearchSpec

// SortDirection names the direction of one ordering key.
type SortDirection = domain.SortDirection

const (
	// Ascending sorts a key from the smallest value to the greatest.
	Ascending = domain.Ascending
	// Descending sorts a key from the greatest value to the smallest.
	Descending = domain.Descending
)

// Predicate reports whether a record stays in the result.
type Predicate = domain.Predicate

// CompareFunc compares two records for ordering.
type CompareFunc = domain.CompareFunc

// Field carries a value together with whether its member was present on the
// record at all.
type Field = domain.Field

// Getter is implemented by values that distinguish being absent from holding
// nil.
type Getter = domain.Getter

// Resolver turns field paths into record accessors.
type Resolver = domain.Resolver

// Chain is a resolved field path, bound to the member it navigates to.
type Chain = domain.Chain

// Coercer converts filter operands to field types.
type Coercer = domain.Coercer

// Comparer provides ordering and comparison for different value types.
type Comparer = domain.Comparer

// PredicateBuilder compiles filters and search terms into predicates.
type PredicateBuilder = domain.PredicateBuilder

// Orderer compiles ordering keys into comparisons.
type Orderer = domain.Orderer

// NewPlan composes a plan for records of type T. It is a shorthand for
// creating a [Planner] and planning against the zero value of T.
func NewPlan[T any](opts RequestDataOptions, options ...Option) (*Plan, error) {
	var root T
	return NewPlanner(options...).Plan(root, opts)
}

// Run applies a compiled plan to a sequence of records. The result is lazy:
// nothing is pulled from src until the returned sequence is ranged over, and
// unordered plans stop pulling as soon as the page is full. A nil plan keeps
// the sequence as is.
func Run[T any](src iter.Seq[T], plan *Plan) iter.Seq[T] {
	return compiler.Run(src, plan)
}

// Compile composes a plan for the record type of src and returns the lazy
// result of applying it. It is a shorthand for [NewPlan] followed by [Run].
func Compile[T any](src iter.Seq[T], opts RequestDataOptions, options ...Option) (iter.Seq[T], error) {
	plan, err := NewPlan[T](opts, options...)
	if err != nil {
		return nil, err
	}
	return Run(src, plan), nil
}

// Apply composes a plan for the record type of records and collects the
// result of applying it into a new slice. The input slice is never reordered
// or modified.
func Apply[T any](records []T, opts RequestDataOptions, options ...Option) ([]T, error) {
	res, err := Compile(slices.Values(records), opts, options...)
	if err != nil {
		return nil, err
	}
	return slices.Collect(res), nil
}

// Where keeps the records whose field equals value.
func Where[T any](records []T, field string, value any) ([]T, error) {
	return Apply(records, RequestDataOptions{
		Filters: []ExactMatchFilter{{Field: field, Value: value}},
	})
}

// WhereRange keeps the records whose field falls inside the given bounds:
// [GreaterThan], [GreaterThanOrEqual], [LessThan] and [LessThanOrEqual].
// Without bounds every record is kept.
func WhereRange[T any](records []T, field string, bounds ...RangeBound) ([]T, error) {
	filter := RangeFilter{Field: field}
	for _, bound := range bounds {
		bound(&filter)
	}
	return Apply(records, RequestDataOptions{
		RangeFilters: []RangeFilter{filter},
	})
}

// WhereSearch keeps the records containing term in at least one of the named
// string fields.
func WhereSearch[T any](records []T, term string, fields ...string) ([]T, error) {
	return Apply(records, RequestDataOptions{
		Search:       term,
		SearchFields: fields,
	})
}

// OrderBy returns the records ordered by the given keys. The sort is stable:
// records that tie on every key keep their input order.
func OrderBy[T any](records []T, specs ...OrderSpec) ([]T, error) {
	return Apply(records, RequestDataOptions{OrderBy: specs})
}

// Page returns the records left after dropping the first skip and keeping at
// most take. Zero means the corresponding cut is absent.
func Page[T any](records []T, skip, take uint64) []T {
	return slices.Collect(Run(slices.Values(records), &Plan{Skip: skip, Take: take}))
}

// Option configures planner behavior through the functional options pattern.
type Option = domain.CompilerOption

// WithResolver sets the resolver for turning field paths into accessors.
func WithResolver(r Resolver) Option {
	return domain.WithCompilerResolver(r)
}

// WithCoercer sets the coercer for converting operands to field types.
func WithCoercer(c Coercer) Option {
	return domain.WithCompilerCoercer(c)
}

// WithComparer sets the comparer for ordering and equality of values.
func WithComparer(c Comparer) Option {
	return domain.WithCompilerComparer(c)
}

// WithPredicateBuilder sets the builder for filter and search predicates.
func WithPredicateBuilder(p PredicateBuilder) Option {
	return domain.WithCompilerPredicateBuilder(p)
}

// WithOrderer sets the orderer for sort key comparisons.
func WithOrderer(o Orderer) Option {
	return domain.WithCompilerOrderer(o)
}

// WithLogger sets the logger for plan composition diagnostics.
func WithLogger(l *zap.Logger) Option {
	return domain.WithCompilerLogger(l)
}

// RangeBound sets one bound of a [RangeFilter] through the functional options
// pattern.
type RangeBound = domain.RangeBound

// GreaterThan keeps records strictly above value.
func GreaterThan(value any) RangeBound {
	return domain.WithGreaterThan(value)
}

// GreaterThanOrEqual keeps records at or above value.
func GreaterThanOrEqual(value any) RangeBound {
	return domain.WithGreaterThanOrEqual(value)
}

// LessThan keeps records strictly below value.
func LessThan(value any) RangeBound {
	return domain.WithLessThan(value)
}

// LessThanOrEqual keeps records at or below value.
func LessThanOrEqual(value any) RangeBound {
	return domain.WithLessThanOrEqual(value)
}
