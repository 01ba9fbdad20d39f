package coercer

import "github.com/mitchellh/mapstructure"

// WithTagName sets the struct tag consulted when decoding into struct
// targets.
func WithTagName(tagName string) Option {
	return func(c *Coercer) {
		c.tagName = tagName
	}
}

// WithDecodeHook replaces the decode hook applied while coercing.
func WithDecodeHook(hook mapstructure.DecodeHookFunc) Option {
	return func(c *Coercer) {
		c.hook = hook
	}
}

// Option configures coercer behavior through the functional options pattern.
type Option func(*Coercer)
