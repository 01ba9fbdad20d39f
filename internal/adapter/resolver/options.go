package resolver

// WithTagName sets the struct tag consulted for serialization aliases.
func WithTagName(tagName string) Option {
	return func(r *Resolver) {
		r.tagName = tagName
	}
}

// Option configures resolver behavior through the functional options pattern.
type Option func(*Resolver)
