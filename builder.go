package dynq

import "slices"

// Builder provides a fluent API for assembling [RequestDataOptions]. Methods
// add to the request step by step and return the builder, culminating in a
// final [Builder.Build] call.
//
// A Builder is not safe for concurrent use.
type Builder struct {
	opts RequestDataOptions
}

// NewBuilder creates a new, empty request builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// Where adds an exact-match filter on field.
func (b *Builder) Where(field string, value any) *Builder {
	b.opts.Filters = append(b.opts.Filters, ExactMatchFilter{Field: field, Value: value})
	return b
}

// WhereRange adds a range filter on field with the given bounds:
// [GreaterThan], [GreaterThanOrEqual], [LessThan] and [LessThanOrEqual].
func (b *Builder) WhereRange(field string, bounds ...RangeBound) *Builder {
	filter := RangeFilter{Field: field}
	for _, bound := range bounds {
		bound(&filter)
	}
	b.opts.RangeFilters = append(b.opts.RangeFilters, filter)
	return b
}

// Search sets the substring search term and the string fields it runs over.
// Calling it again replaces the previous search.
func (b *Builder) Search(term string, fields ...string) *Builder {
	b.opts.Search = term
	b.opts.SearchFields = fields
	return b
}

// OrderBy appends an ordering key.
func (b *Builder) OrderBy(field string, direction SortDirection) *Builder {
	b.opts.OrderBy = append(b.opts.OrderBy, OrderSpec{Field: field, Direction: direction})
	return b
}

// OrderByAsc appends an ascending ordering key.
func (b *Builder) OrderByAsc(field string) *Builder {
	return b.OrderBy(field, Ascending)
}

// OrderByDesc appends a descending ordering key.
func (b *Builder) OrderByDesc(field string) *Builder {
	return b.OrderBy(field, Descending)
}

// Skip sets how many records to drop from the start of the result.
func (b *Builder) Skip(skip uint64) *Builder {
	b.opts.Skip = skip
	return b
}

// Take sets how many records to keep after skipping.
func (b *Builder) Take(take uint64) *Builder {
	b.opts.Take = take
	return b
}

// Clone returns a copy of the builder. The copy and the original can be
// extended independently, so a base request can fan out into variants.
func (b *Builder) Clone() *Builder {
	clone := *b
	clone.opts.Filters = slices.Clone(b.opts.Filters)
	clone.opts.RangeFilters = slices.Clone(b.opts.RangeFilters)
	clone.opts.SearchFields = slices.Clone(b.opts.SearchFields)
	clone.opts.OrderBy = slices.Clone(b.opts.OrderBy)
	return &clone
}

// Reset clears all configurations from the builder, returning it to its
// initial state.
func (b *Builder) Reset() *Builder {
	b.opts = RequestDataOptions{}
	return b
}

// Build returns the assembled [RequestDataOptions].
func (b *Builder) Build() RequestDataOptions {
	return b.opts
}
