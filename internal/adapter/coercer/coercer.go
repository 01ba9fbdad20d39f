// Package coercer contains the default [domain.Coercer] implementation.
package coercer

import (
	"fmt"
	"math"
	"math/big"
	"time"

	"github.com/goccy/go-reflect"
	"github.com/mitchellh/mapstructure"

	"github.com/dynqio/dynq/domain"
)

// DefaultTagName is the struct tag consulted when decoding into struct
// targets.
const DefaultTagName = "json"

// Coercer implements [domain.Coercer] on top of mapstructure. Numeric kinds
// convert into each other as long as the value survives unchanged: a float
// with a fractional part, or one beyond the target's range, does not coerce
// into an integer target. Strings parse into [time.Time] (RFC 3339) and into
// any [encoding.TextUnmarshaler] target. Everything else must already have
// the target's kind.
type Coercer struct {
	tagName string
	hook    mapstructure.DecodeHookFunc
}

// NewCoercer returns a new implementation of [domain.Coercer].
func NewCoercer(options ...Option) domain.Coercer {
	c := &Coercer{
		tagName: DefaultTagName,
		hook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeHookFunc(time.RFC3339),
			mapstructure.TextUnmarshallerHookFunc(),
		),
	}
	for _, option := range options {
		option(c)
	}
	return c
}

// Coerce implements [domain.Coercer]. A nil target accepts any value
// unchanged.
func (c *Coercer) Coerce(value any, target any) (any, error) {
	if target == nil {
		return value, nil
	}
	typ := reflect.TypeOf(target)
	if value != nil && reflect.TypeOf(value) == typ {
		return value, nil
	}
	if err := c.checkInteger(value, typ); err != nil {
		return nil, err
	}

	out := reflect.New(typ)
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: c.hook,
		TagName:    c.tagName,
		Result:     out.Interface(),
	})
	if err != nil {
		return nil, err
	}
	if err := dec.Decode(value); err != nil {
		return nil, err
	}
	return out.Elem().Interface(), nil
}

// checkInteger rejects float values that do not convert exactly into an
// integer target; mapstructure would truncate them silently.
func (c *Coercer) checkInteger(value any, typ reflect.Type) error {
	switch typ.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
	default:
		return nil
	}
	if value == nil {
		return nil
	}
	rv := reflect.ValueNoEscapeOf(value)
	if k := rv.Kind(); k != reflect.Float32 && k != reflect.Float64 {
		return nil
	}
	if !lossless(rv.Float(), typ) {
		return fmt.Errorf("%v does not convert exactly into %s", value, typ)
	}
	return nil
}

// lossless reports whether f survives conversion into the integer type typ
// unchanged. big.Float keeps the test exact across the whole float64 range.
func lossless(f float64, typ reflect.Type) bool {
	if math.IsNaN(f) {
		return false
	}
	bf := big.NewFloat(f)
	if !bf.IsInt() {
		return false
	}
	switch typ.Kind() {
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		u, acc := bf.Uint64()
		return acc == big.Exact && !reflect.Zero(typ).OverflowUint(u)
	default:
		n, acc := bf.Int64()
		return acc == big.Exact && !reflect.Zero(typ).OverflowInt(n)
	}
}
