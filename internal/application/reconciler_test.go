package application

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ojuto/zendesk-user-reports/internal/domain/entity"
)

func ptr[T any](v T) *T { return &v }

func TestWithRoleNamesToleratesMisses(t *testing.T) {
	roles := []entity.CustomAgentRole{{ID: 10, Name: "Supervisor"}}
	users := []entity.User{
		{ID: 1, Name: "resolved", CustomRoleID: ptr(int64(10))},
		{ID: 2, Name: "unknown role", CustomRoleID: ptr(int64(99))},
		{ID: 3, Name: "no role"},
	}

	got := WithRoleNames(users, roles)
	require.Len(t, got, 3)
	assert.Equal(t, "Supervisor", got[0].CustomAgentRoleName)
	assert.Equal(t, "", got[1].CustomAgentRoleName)
	assert.Equal(t, "", got[2].CustomAgentRoleName)
}

func TestBrandRoleTalliesSortAndSkips(t *testing.T) {
	roles := []entity.CustomAgentRole{
		{ID: 1, Name: "Alpha"},
		{ID: 2, Name: "Beta"},
		{ID: 3, Name: "Gamma"},
	}
	users := []entity.User{
		{ID: 1, CustomRoleID: ptr(int64(1))},
		{ID: 2, CustomRoleID: ptr(int64(1))},
		{ID: 3, CustomRoleID: ptr(int64(1))},
		{ID: 4, CustomRoleID: ptr(int64(2))},
		{ID: 5, CustomRoleID: ptr(int64(2))},
		{ID: 6, CustomRoleID: ptr(int64(2))},
		{ID: 7, CustomRoleID: ptr(int64(3))},
		{ID: 8},                               // no custom role, skipped
		{ID: 9, CustomRoleID: ptr(int64(77))}, // unresolved role, skipped
	}
	brands := []entity.Brand{{ID: 100, Name: "Thermomix"}, {ID: 200, Name: "Kobold"}}
	var edges []entity.BrandAgent
	for userID := int64(1); userID <= 9; userID++ {
		edges = append(edges, entity.BrandAgent{BrandID: 100, UserID: userID})
	}

	tallies := BrandRoleTallies(brands, edges, users, roles)
	require.Len(t, tallies, 2)

	// Counts {Alpha:3, Beta:3, Gamma:1}: equal counts break ties
	// alphabetically, so Alpha always precedes Beta.
	assert.Equal(t, "Thermomix", tallies[0].BrandName)
	assert.Equal(t, []entity.RoleCount{
		{Role: "Alpha", Count: 3},
		{Role: "Beta", Count: 3},
		{Role: "Gamma", Count: 1},
	}, tallies[0].Rows)

	// Brands without edges still get a tally, just with no rows.
	assert.Equal(t, "Kobold", tallies[1].BrandName)
	assert.Empty(t, tallies[1].Rows)
}

func TestAggregateRoleTallyDeduplicatesUsers(t *testing.T) {
	roles := []entity.CustomAgentRole{{ID: 1, Name: "Alpha"}}
	users := []entity.User{{ID: 1, CustomRoleID: ptr(int64(1))}}
	edges := []entity.BrandAgent{
		{BrandID: 100, UserID: 1},
		{BrandID: 200, UserID: 1}, // same user on a second brand
	}

	got := AggregateRoleTally(edges, users, roles)
	assert.Equal(t, []entity.RoleCount{{Role: "Alpha", Count: 1}}, got)
}

func TestSharedUsersNormalizesEmails(t *testing.T) {
	primary := []entity.UserWithRoleName{
		{User: entity.User{ID: 1, Name: "shared", Email: ptr("Foo@X.com")}},
		{User: entity.User{ID: 2, Name: "only primary", Email: ptr("bar@x.com")}},
		{User: entity.User{ID: 3, Name: "no email"}},
	}
	secondary := []entity.UserWithRoleName{
		{User: entity.User{ID: 4, Email: ptr("foo@x.com ")}},
		{User: entity.User{ID: 5, Email: ptr("")}},
	}

	got := SharedUsers(primary, secondary)
	require.Len(t, got, 1)
	assert.Equal(t, "shared", got[0].Name)
}

func TestSharedUsersEmptyEmailNeverMatches(t *testing.T) {
	primary := []entity.UserWithRoleName{{User: entity.User{ID: 1, Name: "no email"}}}
	secondary := []entity.UserWithRoleName{{User: entity.User{ID: 2}}}

	assert.Empty(t, SharedUsers(primary, secondary))
}

func TestCountUsedSeats(t *testing.T) {
	eligible := func(n int) []entity.User {
		users := make([]entity.User, n)
		for i := range users {
			users[i] = entity.User{ID: int64(i + 1), Role: entity.RoleAgent}
		}
		return users
	}

	// 10 eligible users combined minus the overage of 7.
	assert.Equal(t, 3, CountUsedSeats(eligible(6), eligible(4)))
	// Not clamped: fewer eligible users than the overage goes negative.
	assert.Equal(t, -2, CountUsedSeats(eligible(3), eligible(2)))

	// Suspended and light agent users never occupy seats.
	mixed := append(eligible(2),
		entity.User{ID: 90, Role: entity.RoleAgent, Suspended: true},
		entity.User{ID: 91, Role: entity.RoleAgent, RoleType: entity.LightAgentRoleType},
	)
	assert.Equal(t, 2+2-7, CountUsedSeats(mixed, eligible(2)))
}

func TestDoubleUsedSeats(t *testing.T) {
	assert.Equal(t, 2, DoubleUsedSeats(9))
	assert.Equal(t, 0, DoubleUsedSeats(5))
	assert.Equal(t, 0, DoubleUsedSeats(7))
}

func TestExcludeVorwerkInternational(t *testing.T) {
	brands := []entity.Brand{
		{ID: 1, Name: "Vorwerk International"},
		{ID: 2, Name: "Kobold"},
		{ID: 3, Name: "vorwerk international"}, // exact match only
	}

	got := ExcludeVorwerkInternational(brands)
	require.Len(t, got, 2)
	assert.Equal(t, "Kobold", got[0].Name)
	assert.Equal(t, "vorwerk international", got[1].Name)
}
