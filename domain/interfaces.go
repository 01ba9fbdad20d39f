// Package domain contains domain-specific interfaces, value objects and
// option types for dynq.
//
// This package defines the core interfaces that must be implemented by
// adapters, the request options value the engine consumes, the typed errors
// it surfaces, and functional options for configuring the plan compiler.
package domain

// Resolver turns dotted field paths into accessor chains over a record type.
type Resolver interface {
	// Resolve validates the syntax of path and resolves each of its
	// segments against the type of root. Resolved chains are memoized per
	// (root type, path) pair and safe for concurrent reuse.
	Resolve(root any, path string) (Chain, error)
}

// Chain is a resolved field path: an ordered accessor chain from a record
// type down to one of its possibly nested members. Chains are immutable and
// safe for concurrent use, but only against records of the type they were
// resolved for.
type Chain interface {
	// Path returns the field path the chain was resolved from.
	Path() string
	// Get walks record and returns the value of the target member. A nil
	// pointer met before the final segment leaves the value undefined. A
	// nil in the final position stays defined; pointer indirection is
	// removed from the returned value.
	Get(record any) (value any, defined bool)
	// Zero returns the zero value of the target member's type with
	// pointer indirection removed.
	Zero() any
	// Nilable reports whether the target member's declared type can hold
	// nil.
	Nilable() bool
}

// Coercer converts operand values to the type of a resolved field.
type Coercer interface {
	// Coerce converts value to the type of the target exemplar. The
	// target value itself is never read, only its type.
	Coerce(value any, target any) (any, error)
}

// Comparer provides ordering and comparison operations for different data types.
type Comparer interface {
	// Compare returns -1, 0, or 1 based on the comparison of two values.
	Compare(any, any) (int, error)
	// Comparable returns true if two values can be ordered against each
	// other.
	Comparable(any, any) bool
}

// PredicateBuilder compiles filter clauses into predicates over records.
type PredicateBuilder interface {
	// Equals builds an equality test between the chain's member and
	// value. The value is coerced to the member's type first.
	Equals(chain Chain, value any) (Predicate, error)
	// Range builds the conjunction of the filter's present bounds, each
	// coerced to the chain's member type. A filter with no bounds yields
	// a nil predicate, which stands for the identity.
	Range(chain Chain, filter RangeFilter) (Predicate, error)
	// Search builds the disjunction of substring tests for term over the
	// string-typed chains. Chains with non-string members are skipped;
	// when nothing remains the predicate is nil.
	Search(chains []Chain, term string) (Predicate, error)
}

// Orderer builds record comparisons out of resolved chains.
type Orderer interface {
	// OrderBy builds the comparison for a primary ordering key.
	OrderBy(chain Chain, direction SortDirection) (CompareFunc, error)
	// ThenBy extends cmp with a tie-breaking key that is consulted only
	// when every previous key compares equal.
	ThenBy(cmp CompareFunc, chain Chain, direction SortDirection) (CompareFunc, error)
}

// Planner compiles request options into an immutable query plan.
type Planner interface {
	// Plan resolves every field the options reference against the type
	// of root and composes the match predicate, the ordering comparison
	// and the paging window. The first failing stage aborts the plan.
	Plan(root any, opts RequestDataOptions) (*Plan, error)
}

// Getter represents a value that can be treated as undefined.
type Getter interface {
	// Get returns the value and a bool that indicates whether the value
	// counts as defined or not. A chain walk interrupted by a nil pointer
	// is undefined. If a value is explicitly [nil], it will not count as
	// undefined.
	Get() (value any, defined bool)
}
