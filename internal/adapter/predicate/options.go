package predicate

import "github.com/dynqio/dynq/domain"

// WithCoercer sets the coercer used to convert operand values to member
// types.
func WithCoercer(c domain.Coercer) Option {
	return func(b *Builder) {
		b.crc = c
	}
}

// WithComparer sets the comparer used to evaluate comparisons.
func WithComparer(c domain.Comparer) Option {
	return func(b *Builder) {
		b.cmp = c
	}
}

// Option configures predicate building through the functional options
// pattern.
type Option func(*Builder)
