package coercer

import (
	"math"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

type CoercerTestSuite struct {
	suite.Suite
	c *Coercer
}

func (s *CoercerTestSuite) SetupTest() {
	s.c = NewCoercer().(*Coercer)
}

func (s *CoercerTestSuite) TestSameTypePassesThrough() {
	v, err := s.c.Coerce("hello", "")
	s.NoError(err)
	s.Equal("hello", v)

	v, err = s.c.Coerce(42, 0)
	s.NoError(err)
	s.Equal(42, v)
}

func (s *CoercerTestSuite) TestNumericKinds() {
	cases := []struct {
		value    any
		target   any
		expected any
	}{
		{value: float64(30), target: 0, expected: 30},
		{value: 30, target: float64(0), expected: float64(30)},
		{value: 30, target: int64(0), expected: int64(30)},
		{value: int8(2), target: uint64(0), expected: uint64(2)},
		{value: float32(1.5), target: float64(0), expected: float64(1.5)},
	}
	for _, c := range cases {
		v, err := s.c.Coerce(c.value, c.target)
		s.NoError(err)
		s.Equal(c.expected, v)
	}
}

func (s *CoercerTestSuite) TestNamedStringTarget() {
	type email string
	v, err := s.c.Coerce("ann@a.io", email(""))
	s.NoError(err)
	s.Equal(email("ann@a.io"), v)
}

func (s *CoercerTestSuite) TestStringToTime() {
	v, err := s.c.Coerce("2024-05-01T10:30:00Z", time.Time{})
	s.Require().NoError(err)
	s.Equal(time.Date(2024, 5, 1, 10, 30, 0, 0, time.UTC), v)
}

func (s *CoercerTestSuite) TestStringToUUID() {
	id := uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8")
	v, err := s.c.Coerce("6ba7b810-9dad-11d1-80b4-00c04fd430c8", uuid.UUID{})
	s.Require().NoError(err)
	s.Equal(id, v)
}

func (s *CoercerTestSuite) TestMapToStruct() {
	type address struct {
		City string `json:"city"`
	}
	v, err := s.c.Coerce(map[string]any{"city": "Porto"}, address{})
	s.Require().NoError(err)
	s.Equal(address{City: "Porto"}, v)
}

func (s *CoercerTestSuite) TestNilTargetAcceptsAnything() {
	v, err := s.c.Coerce("anything", nil)
	s.NoError(err)
	s.Equal("anything", v)

	v, err = s.c.Coerce(42, nil)
	s.NoError(err)
	s.Equal(42, v)
}

func (s *CoercerTestSuite) TestCoerceFailures() {
	cases := []struct {
		value  any
		target any
	}{
		{value: "thirty", target: 0},
		{value: true, target: ""},
		{value: 12, target: time.Time{}},
		{value: "not-a-uuid", target: uuid.UUID{}},
		{value: "2024-13-99", target: time.Time{}},
	}
	for _, c := range cases {
		_, err := s.c.Coerce(c.value, c.target)
		s.Error(err, "%v into %T", c.value, c.target)
	}
}

// float values must land in an integer target unchanged.
func (s *CoercerTestSuite) TestLossyFloatRejected() {
	type score float64
	cases := []struct {
		value  any
		target any
	}{
		{value: 18.5, target: 0},
		{value: float32(2.5), target: int8(0)},
		{value: score(0.1), target: int64(0)},
		{value: -1.0, target: uint(0)},
		{value: 256.0, target: int8(0)},
		{value: 1e300, target: int64(0)},
		{value: math.NaN(), target: 0},
		{value: math.Inf(1), target: uint64(0)},
	}
	for _, c := range cases {
		_, err := s.c.Coerce(c.value, c.target)
		s.Error(err, "%v into %T", c.value, c.target)
	}
}

func (s *CoercerTestSuite) TestTagNameOption() {
	type row struct {
		Value string `db:"val"`
	}
	c := NewCoercer(WithTagName("db"))
	v, err := c.Coerce(map[string]any{"val": "x"}, row{})
	s.Require().NoError(err)
	s.Equal(row{Value: "x"}, v)
}

func (s *CoercerTestSuite) TestDecodeHookOption() {
	c := NewCoercer(WithDecodeHook(nil))
	_, err := c.Coerce("2024-05-01T10:30:00Z", time.Time{})
	s.Error(err)
}

func TestCoercerTestSuite(t *testing.T) {
	suite.Run(t, new(CoercerTestSuite))
}
