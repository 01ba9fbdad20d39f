package dynq_test

import (
	"iter"
	"math"
	"slices"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"

	"github.com/dynqio/dynq"
)

type address struct {
	City string `json:"city"`
}

type user struct {
	ID      uuid.UUID `json:"id"`
	Name    string    `json:"name"`
	Age     int       `json:"age"`
	Email   *string   `json:"email"`
	Active  bool      `json:"active"`
	Joined  time.Time `json:"joined"`
	Address *address  `json:"address"`
}

var (
	annID = uuid.MustParse("0f8fad5b-d9cb-469f-a165-70867728950e")

	annEmail = "ann@corp.example"
	cidEmail = "cid@corp.example"
)

func testUsers() []user {
	return []user{
		{
			ID:      annID,
			Name:    "Ann",
			Age:     30,
			Email:   &annEmail,
			Active:  true,
			Joined:  time.Date(2023, time.March, 14, 9, 0, 0, 0, time.UTC),
			Address: &address{City: "Lisbon"},
		},
		{
			ID:     uuid.MustParse("7c9e6679-7425-40de-944b-e07fc1f90ae7"),
			Name:   "Ben",
			Age:    25,
			Active: true,
			Joined: time.Date(2024, time.June, 2, 12, 30, 0, 0, time.UTC),
		},
		{
			ID:      uuid.MustParse("9566c74d-1003-4c4d-bbbb-0407d1e2c649"),
			Name:    "Cid",
			Age:     30,
			Email:   &cidEmail,
			Joined:  time.Date(2022, time.November, 20, 18, 45, 0, 0, time.UTC),
			Address: &address{City: "Porto"},
		},
	}
}

// counted wraps a slice in a sequence that records how many elements were
// pulled from it.
func counted[T any](s []T, pulled *int) iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, v := range s {
			*pulled++
			if !yield(v) {
				return
			}
		}
	}
}

type DynqTestSuite struct {
	suite.Suite
	users []user
}

func (s *DynqTestSuite) SetupTest() {
	s.users = testUsers()
}

func (s *DynqTestSuite) names(users []user) []string {
	names := make([]string, 0, len(users))
	for _, u := range users {
		names = append(names, u.Name)
	}
	return names
}

func (s *DynqTestSuite) TestApplyFiltersAndOrders() {
	out, err := dynq.Apply(s.users, dynq.RequestDataOptions{
		Filters: []dynq.ExactMatchFilter{{Field: "age", Value: 30}},
		OrderBy: []dynq.OrderSpec{{Field: "name", Direction: dynq.Ascending}},
	})
	s.Require().NoError(err)
	s.Equal([]string{"Ann", "Cid"}, s.names(out))
}

func (s *DynqTestSuite) TestApplyOrdersSkipsTakes() {
	out, err := dynq.Apply(s.users, dynq.RequestDataOptions{
		OrderBy: []dynq.OrderSpec{{Field: "age", Direction: dynq.Descending}},
		Skip:    1,
		Take:    1,
	})
	s.Require().NoError(err)
	s.Equal([]string{"Cid"}, s.names(out))
}

func (s *DynqTestSuite) TestApplyFullRequest() {
	out, err := dynq.Apply(s.users, dynq.RequestDataOptions{
		Filters:      []dynq.ExactMatchFilter{{Field: "age", Value: 30}},
		RangeFilters: []dynq.RangeFilter{{Field: "joined", LessThan: "2024-01-01T00:00:00Z"}},
		Search:       "corp.example",
		SearchFields: []string{"email"},
		OrderBy: []dynq.OrderSpec{
			{Field: "age", Direction: dynq.Descending},
			{Field: "name", Direction: dynq.Ascending},
		},
		Take: 10,
	}, dynq.WithLogger(zap.NewNop()))
	s.Require().NoError(err)
	s.Equal([]string{"Ann", "Cid"}, s.names(out))
}

func (s *DynqTestSuite) TestApplyEmptyOptionsCopies() {
	out, err := dynq.Apply(s.users, dynq.RequestDataOptions{})
	s.Require().NoError(err)
	s.Equal(s.users, out)
	s.NotSame(&s.users[0], &out[0])
}

func (s *DynqTestSuite) TestApplyNeverReordersInput() {
	before := s.names(s.users)
	_, err := dynq.Apply(s.users, dynq.RequestDataOptions{
		OrderBy: []dynq.OrderSpec{{Field: "name", Direction: dynq.Descending}},
	})
	s.Require().NoError(err)
	s.Equal(before, s.names(s.users))
}

// a NaN member never matches a filter, satisfies no bound and sorts with
// the smallest values instead of blowing up the comparison.
func (s *DynqTestSuite) TestApplyWithNaNValues() {
	type reading struct {
		Sensor string  `json:"sensor"`
		Value  float64 `json:"value"`
	}
	readings := []reading{
		{Sensor: "a", Value: 1.5},
		{Sensor: "b", Value: math.NaN()},
		{Sensor: "c", Value: -2.25},
	}

	out, err := dynq.Apply(readings, dynq.RequestDataOptions{
		OrderBy: []dynq.OrderSpec{{Field: "value", Direction: dynq.Ascending}},
	})
	s.Require().NoError(err)
	s.Equal("b", out[0].Sensor)
	s.Equal("c", out[1].Sensor)
	s.Equal("a", out[2].Sensor)

	out, err = dynq.Apply(readings, dynq.RequestDataOptions{
		RangeFilters: []dynq.RangeFilter{{Field: "value", GreaterThan: -3.0}},
	})
	s.Require().NoError(err)
	s.Require().Len(out, 2)
	s.Equal("a", out[0].Sensor)
	s.Equal("c", out[1].Sensor)

	out, err = dynq.Apply(readings, dynq.RequestDataOptions{
		Filters: []dynq.ExactMatchFilter{{Field: "value", Value: 1.5}},
	})
	s.Require().NoError(err)
	s.Require().Len(out, 1)
	s.Equal("a", out[0].Sensor)
}

func (s *DynqTestSuite) TestApplyErrors() {
	s.Run("unknown field", func() {
		_, err := dynq.Apply(s.users, dynq.RequestDataOptions{
			Filters: []dynq.ExactMatchFilter{{Field: "planet", Value: 1}},
		})
		var unknown *dynq.ErrUnknownField
		s.Require().ErrorAs(err, &unknown)
		s.Equal("planet", unknown.Segment)
	})

	s.Run("invalid path", func() {
		_, err := dynq.Apply(s.users, dynq.RequestDataOptions{
			Filters: []dynq.ExactMatchFilter{{Field: "address..city", Value: "Lisbon"}},
		})
		var invalid *dynq.ErrInvalidFieldPath
		s.Require().ErrorAs(err, &invalid)
		s.Equal("address..city", invalid.Path)
	})

	s.Run("operand mismatch", func() {
		_, err := dynq.Apply(s.users, dynq.RequestDataOptions{
			Filters: []dynq.ExactMatchFilter{{Field: "age", Value: "old"}},
		})
		var mismatch *dynq.ErrTypeMismatch
		s.Require().ErrorAs(err, &mismatch)
		s.Equal("age", mismatch.Field)
	})

	s.Run("unknown direction", func() {
		_, err := dynq.Apply(s.users, dynq.RequestDataOptions{
			OrderBy: []dynq.OrderSpec{{Field: "name", Direction: "sideways"}},
		})
		var unsupported *dynq.ErrUnsupportedOperation
		s.Require().ErrorAs(err, &unsupported)
		s.Equal("name", unsupported.Field)
	})
}

func (s *DynqTestSuite) TestCompileIsLazy() {
	var pulled int
	res, err := dynq.Compile(counted(s.users, &pulled), dynq.RequestDataOptions{
		Filters: []dynq.ExactMatchFilter{{Field: "active", Value: true}},
	})
	s.Require().NoError(err)
	s.Zero(pulled)

	out := slices.Collect(res)
	s.Equal(len(s.users), pulled)
	s.Equal([]string{"Ann", "Ben"}, s.names(out))
}

func (s *DynqTestSuite) TestNewPlanIsReusable() {
	plan, err := dynq.NewPlan[user](dynq.RequestDataOptions{
		RangeFilters: []dynq.RangeFilter{{Field: "age", GreaterThanOrEqual: 28}},
		OrderBy:      []dynq.OrderSpec{{Field: "name", Direction: dynq.Ascending}},
	})
	s.Require().NoError(err)

	out := slices.Collect(dynq.Run(slices.Values(s.users), plan))
	s.Equal([]string{"Ann", "Cid"}, s.names(out))

	others := []user{{Name: "Zoe", Age: 41}, {Name: "Kim", Age: 12}}
	out = slices.Collect(dynq.Run(slices.Values(others), plan))
	s.Equal([]string{"Zoe"}, s.names(out))
}

func (s *DynqTestSuite) TestRunWithoutPlan() {
	out := slices.Collect(dynq.Run(slices.Values(s.users), nil))
	s.Equal(s.users, out)
}

func (s *DynqTestSuite) TestWhere() {
	out, err := dynq.Where(s.users, "name", "Ben")
	s.Require().NoError(err)
	s.Equal([]string{"Ben"}, s.names(out))
}

func (s *DynqTestSuite) TestWhereNested() {
	out, err := dynq.Where(s.users, "address.city", "Porto")
	s.Require().NoError(err)
	s.Equal([]string{"Cid"}, s.names(out))
}

func (s *DynqTestSuite) TestWhereNull() {
	out, err := dynq.Where(s.users, "email", nil)
	s.Require().NoError(err)
	s.Equal([]string{"Ben"}, s.names(out))
}

func (s *DynqTestSuite) TestWhereCoercesOperands() {
	s.Run("number", func() {
		// numbers arrive as float64 once a request crosses JSON
		out, err := dynq.Where(s.users, "age", float64(25))
		s.Require().NoError(err)
		s.Equal([]string{"Ben"}, s.names(out))
	})

	s.Run("uuid", func() {
		out, err := dynq.Where(s.users, "id", annID.String())
		s.Require().NoError(err)
		s.Equal([]string{"Ann"}, s.names(out))
	})

	s.Run("time", func() {
		out, err := dynq.Where(s.users, "joined", "2024-06-02T12:30:00Z")
		s.Require().NoError(err)
		s.Equal([]string{"Ben"}, s.names(out))
	})
}

func (s *DynqTestSuite) TestWhereRange() {
	out, err := dynq.WhereRange(s.users, "age",
		dynq.GreaterThan(24),
		dynq.LessThanOrEqual(29),
	)
	s.Require().NoError(err)
	s.Equal([]string{"Ben"}, s.names(out))
}

func (s *DynqTestSuite) TestWhereRangeTime() {
	out, err := dynq.WhereRange(s.users, "joined",
		dynq.GreaterThanOrEqual("2023-01-01T00:00:00Z"),
		dynq.LessThan("2025-01-01T00:00:00Z"),
	)
	s.Require().NoError(err)
	s.Equal([]string{"Ann", "Ben"}, s.names(out))
}

func (s *DynqTestSuite) TestWhereRangeWithoutBounds() {
	out, err := dynq.WhereRange(s.users, "age")
	s.Require().NoError(err)
	s.Equal(s.users, out)
}

func (s *DynqTestSuite) TestWhereSearch() {
	out, err := dynq.WhereSearch(s.users, "corp.example", "email", "name")
	s.Require().NoError(err)
	s.Equal([]string{"Ann", "Cid"}, s.names(out))
}

func (s *DynqTestSuite) TestOrderBy() {
	out, err := dynq.OrderBy(s.users,
		dynq.OrderSpec{Field: "age", Direction: dynq.Descending},
		dynq.OrderSpec{Field: "name", Direction: dynq.Descending},
	)
	s.Require().NoError(err)
	s.Equal([]string{"Cid", "Ann", "Ben"}, s.names(out))
}

func (s *DynqTestSuite) TestOrderByDirectionForms() {
	for _, direction := range []dynq.SortDirection{"asc", "ASC", "ascending", ""} {
		out, err := dynq.OrderBy(s.users, dynq.OrderSpec{Field: "name", Direction: direction})
		s.Require().NoError(err)
		s.Equal([]string{"Ann", "Ben", "Cid"}, s.names(out), "direction %q", direction)
	}
}

func (s *DynqTestSuite) TestOrderByRanksMissingMembersFirst() {
	// Ben has no address, so address.city is undefined for him; undefined
	// sorts before every value, descending reverses that.
	out, err := dynq.OrderBy(s.users, dynq.OrderSpec{Field: "address.city", Direction: dynq.Ascending})
	s.Require().NoError(err)
	s.Equal([]string{"Ben", "Ann", "Cid"}, s.names(out))

	out, err = dynq.OrderBy(s.users, dynq.OrderSpec{Field: "address.city", Direction: dynq.Descending})
	s.Require().NoError(err)
	s.Equal([]string{"Cid", "Ann", "Ben"}, s.names(out))
}

func (s *DynqTestSuite) TestPage() {
	s.Equal([]string{"Ben", "Cid"}, s.names(dynq.Page(s.users, 1, 0)))
	s.Equal([]string{"Ann", "Ben"}, s.names(dynq.Page(s.users, 0, 2)))
	s.Equal([]string{"Ben"}, s.names(dynq.Page(s.users, 1, 1)))
	s.Empty(dynq.Page(s.users, 5, 2))
}

type failingResolver struct {
	err error
}

func (r failingResolver) Resolve(root any, path string) (dynq.Chain, error) {
	return nil, r.err
}

func (s *DynqTestSuite) TestResolverOption() {
	boom := &dynq.ErrUnknownField{Segment: "any", Type: "user"}
	_, err := dynq.Apply(s.users, dynq.RequestDataOptions{
		Filters: []dynq.ExactMatchFilter{{Field: "name", Value: "Ann"}},
	}, dynq.WithResolver(failingResolver{err: boom}))
	s.ErrorIs(err, boom)
}

func (s *DynqTestSuite) TestPlannerPlan() {
	planner := dynq.NewPlanner()
	plan, err := planner.Plan(user{}, dynq.RequestDataOptions{
		Filters: []dynq.ExactMatchFilter{{Field: "active", Value: true}},
		Take:    1,
	})
	s.Require().NoError(err)
	s.NotNil(plan.Match)
	s.Nil(plan.Compare)
	s.Equal(uint64(1), plan.Take)

	out := slices.Collect(dynq.Run(slices.Values(s.users), plan))
	s.Equal([]string{"Ann"}, s.names(out))
}

func TestDynqTestSuite(t *testing.T) {
	suite.Run(t, new(DynqTestSuite))
}
