package ordering

import (
	"fmt"

	"github.com/goccy/go-reflect"

	"github.com/dynqio/dynq/domain"
	"github.com/dynqio/dynq/internal/adapter/comparer"
)

// Orderer implements [domain.Orderer].
type Orderer struct {
	cmp domain.Comparer
}

// NewOrderer returns a new implementation of [domain.Orderer].
func NewOrderer(options ...Option) domain.Orderer {
	o := &Orderer{}
	for _, option := range options {
		option(o)
	}
	if o.cmp == nil {
		o.cmp = comparer.NewComparer()
	}
	return o
}

// OrderBy implements [domain.Orderer].
func (o *Orderer) OrderBy(chain domain.Chain, direction domain.SortDirection) (domain.CompareFunc, error) {
	return o.key(chain, direction)
}

// ThenBy implements [domain.Orderer].
func (o *Orderer) ThenBy(cmp domain.CompareFunc, chain domain.Chain, direction domain.SortDirection) (domain.CompareFunc, error) {
	key, err := o.key(chain, direction)
	if err != nil {
		return nil, err
	}
	if cmp == nil {
		return key, nil
	}
	return func(a, b any) int {
		if comp := cmp(a, b); comp != 0 {
			return comp
		}
		return key(a, b)
	}, nil
}

// key builds the comparison for a single ordering key. Members rank
// undefined first, then null, then values; descending reverses the whole
// order. A comparer failure at evaluation time ranks the pair as a tie, so
// a stable sort leaves it in input order; the default comparer never fails
// on a member type that passed the orderability check.
func (o *Orderer) key(chain domain.Chain, direction domain.SortDirection) (domain.CompareFunc, error) {
	order := direction.Order()
	if order == 0 {
		return nil, &domain.ErrUnsupportedOperation{
			Op:    fmt.Sprintf("direction %q", direction),
			Field: chain.Path(),
		}
	}
	if zero := chain.Zero(); !o.cmp.Comparable(zero, zero) {
		return nil, &domain.ErrUnsupportedOperation{
			Op:    "order by",
			Field: chain.Path(),
			Type:  typeName(zero),
		}
	}
	return func(a, b any) int {
		av, aDefined := chain.Get(a)
		bv, bDefined := chain.Get(b)
		comp, err := o.cmp.Compare(
			domain.Field{Value: av, Defined: aDefined},
			domain.Field{Value: bv, Defined: bDefined},
		)
		if err != nil {
			return 0
		}
		return comp * order
	}, nil
}

func typeName(zero any) string {
	t := reflect.TypeOf(zero)
	if t == nil {
		return "any"
	}
	return t.String()
}
