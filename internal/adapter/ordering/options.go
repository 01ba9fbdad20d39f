package ordering

import "github.com/dynqio/dynq/domain"

// WithComparer sets the comparer used to order member values.
func WithComparer(c domain.Comparer) Option {
	return func(o *Orderer) {
		o.cmp = c
	}
}

// Option configures ordering behavior through the functional options pattern.
type Option func(*Orderer)
