package resolver

import (
	"github.com/goccy/go-reflect"
)

// step is a single resolved path segment: the index of the member within its
// struct plus the member's declared type.
type step struct {
	index int
	typ   reflect.Type
}

// Chain implements [domain.Chain].
type Chain struct {
	path    string
	steps   []step
	zero    any
	nilable bool
}

// Path implements [domain.Chain].
func (c *Chain) Path() string { return c.path }

// Get implements [domain.Chain]. The record must be of the type the chain was
// resolved for, or a pointer to it.
func (c *Chain) Get(record any) (any, bool) {
	if record == nil {
		return nil, false
	}
	v := reflect.ValueNoEscapeOf(record)
	for _, s := range c.steps {
		for v.Kind() == reflect.Ptr {
			if v.IsNil() {
				return nil, false
			}
			v = v.Elem()
		}
		v = v.Field(s.index)
	}
	for v.Kind() == reflect.Ptr {
		if v.IsNil() {
			// a nil in the final position is null, not undefined
			return nil, true
		}
		v = v.Elem()
	}
	return v.Interface(), true
}

// Zero implements [domain.Chain].
func (c *Chain) Zero() any { return c.zero }

// Nilable implements [domain.Chain].
func (c *Chain) Nilable() bool { return c.nilable }
