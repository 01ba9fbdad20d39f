// Package resolver contains the default [domain.Resolver] implementation.
package resolver

import (
	"fmt"
	"strings"
	"sync"

	"github.com/goccy/go-reflect"

	"github.com/dynqio/dynq/domain"
	"github.com/dynqio/dynq/pkg/structure"
)

// DefaultTagName is the struct tag consulted for serialization aliases.
const DefaultTagName = "json"

// cacheKey identifies a resolved chain by the identity of the root type and
// the verbatim field path.
type cacheKey struct {
	root reflect.Type
	path string
}

// Resolver implements [domain.Resolver].
type Resolver struct {
	tagName string
	chains  sync.Map // cacheKey -> *Chain
}

// NewResolver returns a new implementation of [domain.Resolver].
func NewResolver(options ...Option) domain.Resolver {
	r := &Resolver{tagName: DefaultTagName}
	for _, option := range options {
		option(r)
	}
	return r
}

// Resolve implements [domain.Resolver]. Chains are cached per (root type,
// path) pair; concurrent calls for the same pair return the same chain.
func (r *Resolver) Resolve(root any, path string) (domain.Chain, error) {
	rootType := structure.Deref(reflect.TypeOf(root))
	key := cacheKey{root: rootType, path: path}
	if cached, ok := r.chains.Load(key); ok {
		return cached.(*Chain), nil
	}
	chain, err := r.resolve(rootType, path)
	if err != nil {
		return nil, err
	}
	cached, _ := r.chains.LoadOrStore(key, chain)
	return cached.(*Chain), nil
}

func (r *Resolver) resolve(rootType reflect.Type, path string) (*Chain, error) {
	if err := validatePath(path); err != nil {
		return nil, err
	}
	segments := strings.Split(path, ".")
	steps := make([]step, 0, len(segments))
	curr := rootType
	for _, segment := range segments {
		curr = structure.Deref(curr)
		member, ok := r.member(curr, segment)
		if !ok {
			return nil, &domain.ErrUnknownField{Segment: segment, Type: typeName(curr)}
		}
		steps = append(steps, step{index: member.Index, typ: member.Type})
		curr = member.Type
	}
	target := steps[len(steps)-1].typ
	return &Chain{
		path:    path,
		steps:   steps,
		zero:    reflect.Zero(structure.Deref(target)).Interface(),
		nilable: structure.Nilable(target),
	}, nil
}

// member resolves one segment against the exported members of t: an alias
// pass first, then a declared-name pass, both case-insensitive. Within each
// pass the first declared member wins.
func (r *Resolver) member(t reflect.Type, segment string) (structure.Member, bool) {
	members := structure.Members(t, r.tagName)
	for _, m := range members {
		if m.Alias != "" && strings.EqualFold(m.Alias, segment) {
			return m, true
		}
	}
	for _, m := range members {
		if strings.EqualFold(m.Name, segment) {
			return m, true
		}
	}
	return structure.Member{}, false
}

func validatePath(path string) error {
	if path == "" {
		return &domain.ErrInvalidFieldPath{Path: path, Reason: "path is empty"}
	}
	for _, r := range path {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_', r == '.':
		default:
			return &domain.ErrInvalidFieldPath{Path: path, Reason: fmt.Sprintf("illegal character %q", r)}
		}
	}
	if strings.HasPrefix(path, ".") || strings.HasSuffix(path, ".") || strings.Contains(path, "..") {
		return &domain.ErrInvalidFieldPath{Path: path, Reason: "empty segment"}
	}
	return nil
}

func typeName(t reflect.Type) string {
	if t == nil {
		return "<nil>"
	}
	return t.String()
}
