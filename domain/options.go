package domain

import "go.uber.org/zap"

// WithCompilerResolver sets the resolver used to turn field paths into
// accessor chains.
func WithCompilerResolver(r Resolver) CompilerOption {
	return func(co *CompilerOptions) {
		co.Resolver = r
	}
}

// WithCompilerCoercer sets the coercer used to convert filter operands to
// field types.
func WithCompilerCoercer(c Coercer) CompilerOption {
	return func(co *CompilerOptions) {
		co.Coercer = c
	}
}

// WithCompilerComparer sets the comparer used by both predicates and
// ordering.
func WithCompilerComparer(c Comparer) CompilerOption {
	return func(co *CompilerOptions) {
		co.Comparer = c
	}
}

// WithCompilerPredicateBuilder sets the builder used for the filter, range
// and search stages. When set, the compiler's coercer and comparer are not
// consulted for those stages.
func WithCompilerPredicateBuilder(pb PredicateBuilder) CompilerOption {
	return func(co *CompilerOptions) {
		co.PredicateBuilder = pb
	}
}

// WithCompilerOrderer sets the orderer used for the ordering stage.
func WithCompilerOrderer(o Orderer) CompilerOption {
	return func(co *CompilerOptions) {
		co.Orderer = o
	}
}

// WithCompilerLogger sets the logger used to trace plan composition.
func WithCompilerLogger(l *zap.Logger) CompilerOption {
	return func(co *CompilerOptions) {
		co.Logger = l
	}
}

// CompilerOption configures plan compilation through the functional options
// pattern.
type CompilerOption func(*CompilerOptions)

// CompilerOptions contains the collaborators a plan compiler is built with.
// Nil fields are replaced by the default implementations.
type CompilerOptions struct {
	// Resolver turns field paths into accessor chains.
	Resolver Resolver
	// Coercer converts filter operands to field types.
	Coercer Coercer
	// Comparer orders and compares field values.
	Comparer Comparer
	// PredicateBuilder compiles the filter, range and search stages.
	PredicateBuilder PredicateBuilder
	// Orderer compiles the ordering stage.
	Orderer Orderer
	// Logger traces plan composition. Defaults to a nop logger.
	Logger *zap.Logger
}

// WithGreaterThan bounds the field exclusively from below.
func WithGreaterThan(v any) RangeBound {
	return func(f *RangeFilter) {
		f.GreaterThan = v
	}
}

// WithGreaterThanOrEqual bounds the field inclusively from below.
func WithGreaterThanOrEqual(v any) RangeBound {
	return func(f *RangeFilter) {
		f.GreaterThanOrEqual = v
	}
}

// WithLessThan bounds the field exclusively from above.
func WithLessThan(v any) RangeBound {
	return func(f *RangeFilter) {
		f.LessThan = v
	}
}

// WithLessThanOrEqual bounds the field inclusively from above.
func WithLessThanOrEqual(v any) RangeBound {
	return func(f *RangeFilter) {
		f.LessThanOrEqual = v
	}
}

// RangeBound sets a single bound of a [RangeFilter] through the functional
// options pattern.
type RangeBound func(*RangeFilter)
