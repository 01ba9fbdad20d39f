package comparer

import (
	"cmp"
	"fmt"
	"math"
	"math/big"
	"time"

	"github.com/goccy/go-reflect"

	"github.com/dynqio/dynq/domain"
)

var timeType = reflect.TypeOf(time.Time{})

// Comparer implements domain.Comparer.
type Comparer struct{}

// NewComparer returns a new implementation of domain.Comparer.
func NewComparer() domain.Comparer {
	return &Comparer{}
}

// Comparable implements domain.Comparer.
func (c *Comparer) Comparable(a, b any) bool {
	if !c.isSet(a) || !c.isSet(b) {
		return false
	}
	a, b = c.getVal(a), c.getVal(b)

	equal := false
	if _, ok := c.asNumber(a); ok {
		_, equal = c.asNumber(b)
		return equal
	}
	if _, ok := c.asString(a); ok {
		_, equal = c.asString(b)
		return equal
	}
	if _, ok := c.asBool(a); ok {
		_, equal = c.asBool(b)
		return equal
	}
	if _, ok := c.asTime(a); ok {
		_, equal = c.asTime(b)
		return equal
	}
	return false
}

// Compare implements domain.Comparer. Values rank undefined first, then nil,
// NaN, numbers, strings, booleans and times.
func (c *Comparer) Compare(a any, b any) (int, error) {

	// [domain.Getter]. Equivalent to js undefined
	if c, ok := c.checkUndefined(a, b); ok {
		return c, nil
	}

	a, b = c.getVal(a), c.getVal(b)

	// [nil] (null)
	if c, ok := c.checkNil(a, b); ok {
		return c, nil
	}

	// NaN
	if c, ok := c.checkNaN(a, b); ok {
		return c, nil
	}

	// Numbers
	if c, ok := c.checkNumbers(a, b); ok {
		return c, nil
	}

	// Strings
	if c, ok := c.checkStrings(a, b); ok {
		return c, nil
	}

	// Booleans
	if c, ok := c.checkBooleans(a, b); ok {
		return c, nil
	}

	// Dates
	if c, ok := c.checkTime(a, b); ok {
		return c, nil
	}

	return 0, fmt.Errorf("cannot compare unexpected types %T and %T", a, b)
}

func (c *Comparer) checkUndefined(a, b any) (int, bool) {
	// [domain.Getter]
	if !c.isSet(a) {
		if !c.isSet(b) {
			return 0, true
		}
		return -1, true
	}
	if !c.isSet(b) {
		return 1, true
	}
	return 0, false
}

func (c *Comparer) checkNil(a, b any) (int, bool) {
	if a == nil {
		if b == nil {
			return 0, true
		}
		return -1, true
	}
	if b == nil {
		return 1, true // no need to test if a == nil
	}
	return 0, false
}

// checkNaN ranks float NaN between null and the numbers. big.Float cannot
// represent NaN, so the numeric rank must never see one.
func (c *Comparer) checkNaN(a, b any) (int, bool) {
	if c.isNaN(a) {
		if c.isNaN(b) {
			return 0, true
		}
		return -1, true
	}
	if c.isNaN(b) {
		return 1, true
	}
	return 0, false
}

func (c *Comparer) checkNumbers(a, b any) (int, bool) {
	if a, ok := c.asNumber(a); ok {
		// Using big.Float to safely compare float64 and int64 without
		// precision loss
		if b, ok := c.asNumber(b); ok {
			return a.Cmp(b), true
		}
		return -1, true
	}
	if _, ok := c.asNumber(b); ok {
		return 1, true
	}
	return 0, false
}

func (c *Comparer) checkStrings(a, b any) (int, bool) {
	if a, ok := c.asString(a); ok {
		if b, ok := c.asString(b); ok {
			return cmp.Compare(a, b), true
		}
		return -1, true
	}
	if _, ok := c.asString(b); ok {
		return 1, true
	}
	return 0, false
}

func (c *Comparer) checkBooleans(a, b any) (int, bool) {
	if a, ok := c.asBool(a); ok {
		if b, ok := c.asBool(b); ok {
			return c.compareBool(a, b), true
		}
		return -1, true
	}
	if _, ok := c.asBool(b); ok {
		return 1, true
	}
	return 0, false
}

func (c *Comparer) checkTime(a, b any) (int, bool) {
	if a, ok := c.asTime(a); ok {
		if b, ok := c.asTime(b); ok {
			return a.Compare(b), true
		}
		return -1, true
	}
	if _, ok := c.asTime(b); ok {
		return 1, true
	}
	return 0, false
}

func (c *Comparer) compareBool(a, b bool) int {
	if a == b {
		return 0
	}
	if a {
		return 1
	}
	return -1
}

func (c *Comparer) asNumber(v any) (*big.Float, bool) {
	r := big.NewFloat(0)
	switch n := v.(type) {
	case int:
		r.SetInt64(int64(n))
	case int8:
		r.SetInt64(int64(n))
	case int16:
		r.SetInt64(int64(n))
	case int32:
		r.SetInt64(int64(n))
	case int64:
		r.SetInt64(n)
	case uint:
		r.SetUint64(uint64(n))
	case uint8:
		r.SetUint64(uint64(n))
	case uint16:
		r.SetUint64(uint64(n))
	case uint32:
		r.SetUint64(uint64(n))
	case uint64:
		r.SetUint64(n)
	case float32:
		if math.IsNaN(float64(n)) {
			return nil, false
		}
		r.SetFloat64(float64(n))
	case float64:
		if math.IsNaN(n) {
			return nil, false
		}
		r.SetFloat64(n)
	default:
		// named number types land here
		return c.asNumberReflect(v)
	}
	return r, true
}

func (c *Comparer) asNumberReflect(v any) (*big.Float, bool) {
	if v == nil {
		return nil, false
	}
	r := big.NewFloat(0)
	rv := reflect.ValueNoEscapeOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		r.SetInt64(rv.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		r.SetUint64(rv.Uint())
	case reflect.Float32, reflect.Float64:
		f := rv.Float()
		if math.IsNaN(f) {
			return nil, false
		}
		r.SetFloat64(f)
	default:
		return nil, false
	}
	return r, true
}

// isNaN reports whether v is a NaN of any float kind.
func (c *Comparer) isNaN(v any) bool {
	switch n := v.(type) {
	case float32:
		return math.IsNaN(float64(n))
	case float64:
		return math.IsNaN(n)
	}
	if v == nil {
		return false
	}
	rv := reflect.ValueNoEscapeOf(v)
	if k := rv.Kind(); k == reflect.Float32 || k == reflect.Float64 {
		return math.IsNaN(rv.Float())
	}
	return false
}

func (c *Comparer) asString(v any) (string, bool) {
	if s, ok := v.(string); ok {
		return s, true
	}
	if v == nil {
		return "", false
	}
	if rv := reflect.ValueNoEscapeOf(v); rv.Kind() == reflect.String {
		return rv.String(), true
	}
	return "", false
}

func (c *Comparer) asBool(v any) (bool, bool) {
	if b, ok := v.(bool); ok {
		return b, true
	}
	if v == nil {
		return false, false
	}
	if rv := reflect.ValueNoEscapeOf(v); rv.Kind() == reflect.Bool {
		return rv.Bool(), true
	}
	return false, false
}

func (c *Comparer) asTime(v any) (time.Time, bool) {
	if t, ok := v.(time.Time); ok {
		return t, true
	}
	if v == nil {
		return time.Time{}, false
	}
	rv := reflect.ValueNoEscapeOf(v)
	if rv.Kind() == reflect.Struct && rv.Type().ConvertibleTo(timeType) {
		return rv.Convert(timeType).Interface().(time.Time), true
	}
	return time.Time{}, false
}

func (c *Comparer) isSet(v any) bool {
	if g, ok := v.(domain.Getter); ok {
		_, isSet := g.Get()
		return isSet
	}
	return true
}

func (c *Comparer) getVal(v any) any {
	if g, ok := v.(domain.Getter); ok {
		val, _ := g.Get()
		return val
	}
	return v
}
