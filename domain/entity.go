package domain

import "strings"

// SortDirection selects the direction of a single ordering key.
type SortDirection string

const (
	// Ascending orders a key from smallest to largest.
	Ascending SortDirection = "Asc"
	// Descending orders a key from largest to smallest.
	Descending SortDirection = "Desc"
)

// Order returns the comparison multiplier for the direction: 1 for
// ascending, -1 for descending and 0 when the direction is not recognized.
// Directions parse case-insensitively and accept the long forms "Ascending"
// and "Descending"; the empty direction means ascending.
func (d SortDirection) Order() int {
	switch strings.ToLower(string(d)) {
	case "", "asc", "ascending":
		return 1
	case "desc", "descending":
		return -1
	}
	return 0
}

// ExactMatchFilter asserts equality between a field and a value.
type ExactMatchFilter struct {
	Field string `json:"field"`
	Value any    `json:"value"`
}

// RangeFilter bounds a field from either side. Absent bounds are nil and
// impose no constraint; present bounds are conjoined.
type RangeFilter struct {
	Field              string `json:"field"`
	GreaterThan        any    `json:"greaterThan,omitempty"`
	GreaterThanOrEqual any    `json:"greaterThanOrEqual,omitempty"`
	LessThan           any    `json:"lessThan,omitempty"`
	LessThanOrEqual    any    `json:"lessThanOrEqual,omitempty"`
}

// OrderSpec names a single ordering key and its direction.
type OrderSpec struct {
	Field     string        `json:"field"`
	Direction SortDirection `json:"direction"`
}

// RequestDataOptions is the wire-shaped description of a dynamic query: which
// records to keep, how to order them and which window of the result to
// return. The zero value selects everything in input order.
type RequestDataOptions struct {
	// Filters are exact-match conditions; all of them must hold.
	Filters []ExactMatchFilter `json:"filters,omitempty"`
	// RangeFilters are bound conditions; all of them must hold.
	RangeFilters []RangeFilter `json:"rangeFilters,omitempty"`
	// Search is a free-text term looked up in SearchFields.
	Search string `json:"search,omitempty"`
	// SearchFields are the candidate fields for Search; a record matches
	// when any of them contains the term.
	SearchFields []string `json:"searchFields,omitempty"`
	// OrderBy lists the ordering keys, most significant first.
	OrderBy []OrderSpec `json:"orderBy,omitempty"`
	// Skip is the number of leading records to drop. Zero drops nothing.
	Skip uint64 `json:"skip,omitempty"`
	// Take is the maximum number of records to return. Zero means no
	// limit.
	Take uint64 `json:"take,omitempty"`
}

// SearchSpec returns the normalized search request of the options: the
// verbatim term plus the candidate fields with duplicates dropped, first
// occurrences kept.
func (o RequestDataOptions) SearchSpec() SearchSpec {
	fields := make([]string, 0, len(o.SearchFields))
	seen := make(map[string]struct{}, len(o.SearchFields))
	for _, field := range o.SearchFields {
		if _, ok := seen[field]; ok {
			continue
		}
		seen[field] = struct{}{}
		fields = append(fields, field)
	}
	return SearchSpec{Term: o.Search, Fields: fields}
}

// SearchSpec is a normalized free-text search request: one term applied to an
// ordered set of candidate fields.
type SearchSpec struct {
	Term   string
	Fields []string
}

// Empty reports whether the spec requests nothing: a term that is blank
// after space trimming, or no candidate fields at all.
func (s SearchSpec) Empty() bool {
	return strings.TrimSpace(s.Term) == "" || len(s.Fields) == 0
}

// Predicate is a boolean test over a single record.
type Predicate func(record any) bool

// CompareFunc orders two records: negative when a sorts before b, positive
// when a sorts after b and zero when they tie.
type CompareFunc func(a, b any) int

// Plan is the compiled form of a [RequestDataOptions] value. Plans are
// immutable and safe to apply to any number of sequences concurrently. A nil
// Match keeps every record and a nil Compare keeps the input order.
type Plan struct {
	// Match decides whether a record is part of the result.
	Match Predicate
	// Compare orders two records of the result.
	Compare CompareFunc
	// Skip is the number of leading records dropped from the result.
	Skip uint64
	// Take is the maximum number of records returned. Zero means no
	// limit.
	Take uint64
}

// Field carries the outcome of one chain walk so comparisons can tell an
// undefined member apart from an explicit nil.
type Field struct {
	Value   any
	Defined bool
}

// Get implements [Getter].
func (f Field) Get() (any, bool) { return f.Value, f.Defined }
