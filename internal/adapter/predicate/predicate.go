package predicate

import (
	"strings"

	"github.com/goccy/go-reflect"

	"github.com/dynqio/dynq/domain"
	"github.com/dynqio/dynq/internal/adapter/coercer"
	"github.com/dynqio/dynq/internal/adapter/comparer"
	"github.com/dynqio/dynq/pkg/structure"
)

// Builder implements [domain.PredicateBuilder].
type Builder struct {
	crc domain.Coercer
	cmp domain.Comparer
}

// NewBuilder returns a new implementation of [domain.PredicateBuilder].
func NewBuilder(options ...Option) domain.PredicateBuilder {
	b := &Builder{}
	for _, option := range options {
		option(b)
	}
	if b.crc == nil {
		b.crc = coercer.NewCoercer()
	}
	if b.cmp == nil {
		b.cmp = comparer.NewComparer()
	}
	return b
}

// Equals implements [domain.PredicateBuilder]. A nil value tests nilable
// members for null; against a non-nilable member it fails with
// [domain.ErrTypeMismatch]. Undefined members never match.
func (b *Builder) Equals(chain domain.Chain, value any) (domain.Predicate, error) {
	if value == nil {
		if !chain.Nilable() {
			return nil, &domain.ErrTypeMismatch{
				Field: chain.Path(),
				Type:  typeName(chain.Zero()),
			}
		}
		return func(record any) bool {
			v, defined := chain.Get(record)
			return defined && isNull(v)
		}, nil
	}

	operand, err := b.coerce(chain, value)
	if err != nil {
		return nil, err
	}
	return func(record any) bool {
		v, defined := chain.Get(record)
		if !defined {
			return false
		}
		if b.cmp.Comparable(v, operand) {
			comp, err := b.cmp.Compare(v, operand)
			return err == nil && comp == 0
		}
		return reflect.DeepEqual(v, operand)
	}, nil
}

// Range implements [domain.PredicateBuilder]. Undefined and null members
// satisfy no bound.
func (b *Builder) Range(chain domain.Chain, filter domain.RangeFilter) (domain.Predicate, error) {
	bounds := []struct {
		value any
		keep  func(int) bool
	}{
		{value: filter.GreaterThan, keep: func(comp int) bool { return comp > 0 }},
		{value: filter.GreaterThanOrEqual, keep: func(comp int) bool { return comp >= 0 }},
		{value: filter.LessThan, keep: func(comp int) bool { return comp < 0 }},
		{value: filter.LessThanOrEqual, keep: func(comp int) bool { return comp <= 0 }},
	}

	conds := make([]func(any) bool, 0, len(bounds))
	for _, bound := range bounds {
		if bound.value == nil {
			continue
		}
		if len(conds) == 0 {
			// checked once, before the first bound compiles
			if zero := chain.Zero(); !b.cmp.Comparable(zero, zero) {
				return nil, &domain.ErrUnsupportedOperation{
					Op:    "range",
					Field: chain.Path(),
					Type:  typeName(zero),
				}
			}
		}
		operand, err := b.coerce(chain, bound.value)
		if err != nil {
			return nil, err
		}
		keep := bound.keep
		conds = append(conds, func(v any) bool {
			if !b.cmp.Comparable(v, operand) {
				return false
			}
			comp, err := b.cmp.Compare(v, operand)
			return err == nil && keep(comp)
		})
	}
	if len(conds) == 0 {
		return nil, nil
	}

	return func(record any) bool {
		v, defined := chain.Get(record)
		if !defined {
			return false
		}
		for _, cond := range conds {
			if !cond(v) {
				return false
			}
		}
		return true
	}, nil
}

// Search implements [domain.PredicateBuilder]. Matching is a case-sensitive
// substring test over the term as given.
func (b *Builder) Search(chains []domain.Chain, term string) (domain.Predicate, error) {
	if strings.TrimSpace(term) == "" {
		return nil, nil
	}

	conds := make([]func(any) bool, 0, len(chains))
	for _, chain := range chains {
		if !structure.IsString(reflect.TypeOf(chain.Zero())) {
			continue
		}
		conds = append(conds, func(record any) bool {
			v, defined := chain.Get(record)
			if !defined || v == nil {
				return false
			}
			return strings.Contains(reflect.ValueNoEscapeOf(v).String(), term)
		})
	}
	if len(conds) == 0 {
		return nil, nil
	}

	return func(record any) bool {
		for _, cond := range conds {
			if cond(record) {
				return true
			}
		}
		return false
	}, nil
}

func (b *Builder) coerce(chain domain.Chain, value any) (any, error) {
	operand, err := b.crc.Coerce(value, chain.Zero())
	if err != nil {
		return nil, &domain.ErrTypeMismatch{
			Field: chain.Path(),
			Type:  typeName(chain.Zero()),
			Value: value,
			Cause: err,
		}
	}
	return operand, nil
}

// isNull reports whether a defined value is an explicit nil, including typed
// nils boxed in an interface.
func isNull(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueNoEscapeOf(v)
	switch rv.Kind() {
	case reflect.Chan, reflect.Func, reflect.Map, reflect.Ptr,
		reflect.UnsafePointer, reflect.Interface, reflect.Slice:
		return rv.IsNil()
	}
	return false
}

func typeName(zero any) string {
	t := reflect.TypeOf(zero)
	if t == nil {
		return "any"
	}
	return t.String()
}
