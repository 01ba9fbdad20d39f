// Package compiler contains the default [domain.Planner] implementation. It
// turns request options into immutable plans: filters, range filters and
// search compose one match predicate, ordering keys fold into one comparison
// and the paging window is carried as plain numbers.
package compiler

import (
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/dynqio/dynq/domain"
	"github.com/dynqio/dynq/internal/adapter/coercer"
	"github.com/dynqio/dynq/internal/adapter/comparer"
	"github.com/dynqio/dynq/internal/adapter/ordering"
	"github.com/dynqio/dynq/internal/adapter/predicate"
	"github.com/dynqio/dynq/internal/adapter/resolver"
)

// Compiler implements [domain.Planner].
type Compiler struct {
	rslvr  domain.Resolver
	preds  domain.PredicateBuilder
	ordrr  domain.Orderer
	logger *zap.Logger
}

// NewCompiler returns a new implementation of [domain.Planner]. Collaborators
// not supplied through options fall back to the default adapters, sharing one
// comparer and one coercer.
func NewCompiler(options ...domain.CompilerOption) domain.Planner {
	var opts domain.CompilerOptions
	for _, option := range options {
		option(&opts)
	}

	c := &Compiler{
		rslvr:  opts.Resolver,
		preds:  opts.PredicateBuilder,
		ordrr:  opts.Orderer,
		logger: opts.Logger,
	}
	if c.logger == nil {
		c.logger = zap.NewNop()
	}
	if c.rslvr == nil {
		c.rslvr = resolver.NewResolver()
	}
	if c.preds == nil || c.ordrr == nil {
		cmp := opts.Comparer
		if cmp == nil {
			cmp = comparer.NewComparer()
		}
		if c.preds == nil {
			crc := opts.Coercer
			if crc == nil {
				crc = coercer.NewCoercer()
			}
			c.preds = predicate.NewBuilder(
				predicate.WithCoercer(crc),
				predicate.WithComparer(cmp),
			)
		}
		if c.ordrr == nil {
			c.ordrr = ordering.NewOrderer(ordering.WithComparer(cmp))
		}
	}
	return c
}

// Plan implements [domain.Planner]. Stages compose in a fixed order: exact
// filters, range filters, search, ordering, then the window. The first
// failing stage aborts and nothing of the partial plan leaks out.
func (c *Compiler) Plan(root any, opts domain.RequestDataOptions) (*domain.Plan, error) {
	logger := c.logger.With(zap.String("plan", uuid.NewString()))

	plan := &domain.Plan{}
	for _, filter := range opts.Filters {
		pred, err := c.equals(root, filter)
		if err != nil {
			return nil, err
		}
		plan.Match = and(plan.Match, pred)
		logger.Debug("composed filter",
			zap.String("field", filter.Field),
			zap.Any("value", filter.Value),
		)
	}

	for _, filter := range opts.RangeFilters {
		pred, err := c.ranges(root, filter)
		if err != nil {
			return nil, err
		}
		plan.Match = and(plan.Match, pred)
		logger.Debug("composed range filter", zap.String("field", filter.Field))
	}

	if search := opts.SearchSpec(); !search.Empty() {
		pred, err := c.search(root, search)
		if err != nil {
			return nil, err
		}
		plan.Match = and(plan.Match, pred)
		logger.Debug("composed search",
			zap.String("term", search.Term),
			zap.Strings("fields", search.Fields),
		)
	}

	for _, spec := range opts.OrderBy {
		chain, err := c.rslvr.Resolve(root, spec.Field)
		if err != nil {
			return nil, err
		}
		if plan.Compare == nil {
			plan.Compare, err = c.ordrr.OrderBy(chain, spec.Direction)
		} else {
			plan.Compare, err = c.ordrr.ThenBy(plan.Compare, chain, spec.Direction)
		}
		if err != nil {
			return nil, err
		}
		logger.Debug("composed ordering",
			zap.String("field", spec.Field),
			zap.String("direction", string(spec.Direction)),
		)
	}

	plan.Skip = opts.Skip
	plan.Take = opts.Take
	if plan.Skip > 0 || plan.Take > 0 {
		logger.Debug("composed window",
			zap.Uint64("skip", plan.Skip),
			zap.Uint64("take", plan.Take),
		)
	}

	return plan, nil
}

func (c *Compiler) equals(root any, filter domain.ExactMatchFilter) (domain.Predicate, error) {
	chain, err := c.rslvr.Resolve(root, filter.Field)
	if err != nil {
		return nil, err
	}
	return c.preds.Equals(chain, filter.Value)
}

func (c *Compiler) ranges(root any, filter domain.RangeFilter) (domain.Predicate, error) {
	chain, err := c.rslvr.Resolve(root, filter.Field)
	if err != nil {
		return nil, err
	}
	return c.preds.Range(chain, filter)
}

func (c *Compiler) search(root any, spec domain.SearchSpec) (domain.Predicate, error) {
	chains := make([]domain.Chain, 0, len(spec.Fields))
	for _, field := range spec.Fields {
		chain, err := c.rslvr.Resolve(root, field)
		if err != nil {
			return nil, err
		}
		chains = append(chains, chain)
	}
	return c.preds.Search(chains, spec.Term)
}

// and conjoins two predicates. A nil predicate stands for the identity and
// never forces an evaluation.
func and(a, b domain.Predicate) domain.Predicate {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	return func(record any) bool {
		return a(record) && b(record)
	}
}
