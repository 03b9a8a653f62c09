package application

import (
	"sort"

	"github.com/ojuto/zendesk-user-reports/internal/domain/entity"
)

// seatOverage is the number of seats excluded from billing by contract.
const seatOverage = 7

// vorwerkInternationalBrand is excluded from the VDE side of the brand
// comparison; it mirrors brands already covered on the VI instance.
const vorwerkInternationalBrand = "Vorwerk International"

// RoleNamesByID builds the role id to role name lookup.
func RoleNamesByID(roles []entity.CustomAgentRole) map[int64]string {
	names := make(map[int64]string, len(roles))
	for _, r := range roles {
		names[r.ID] = r.Name
	}
	return names
}

// WithRoleNames decorates each user with its resolved custom role name.
// Users without a custom role, or with a role id that does not resolve,
// get an empty name.
func WithRoleNames(users []entity.User, roles []entity.CustomAgentRole) []entity.UserWithRoleName {
	names := RoleNamesByID(roles)
	out := make([]entity.UserWithRoleName, 0, len(users))
	for _, u := range users {
		decorated := entity.UserWithRoleName{User: u}
		if u.CustomRoleID != nil {
			decorated.CustomAgentRoleName = names[*u.CustomRoleID]
		}
		out = append(out, decorated)
	}
	return out
}

// BrandRoleTallies tallies role names per brand over the brand membership
// edges. Edges whose user has no custom role, or whose role id does not
// resolve to a name, are skipped. Every brand gets a tally, empty or not,
// in the brands' original order.
func BrandRoleTallies(brands []entity.Brand, brandAgents []entity.BrandAgent, users []entity.User, roles []entity.CustomAgentRole) []entity.BrandRoleTally {
	names := RoleNamesByID(roles)
	roleIDByUser := make(map[int64]*int64, len(users))
	for _, u := range users {
		roleIDByUser[u.ID] = u.CustomRoleID
	}

	tallies := make([]entity.BrandRoleTally, 0, len(brands))
	for _, b := range brands {
		counts := make(map[string]int)
		for _, ba := range brandAgents {
			if ba.BrandID != b.ID {
				continue
			}
			roleID, ok := roleIDByUser[ba.UserID]
			if !ok || roleID == nil || *roleID == 0 {
				continue
			}
			name, ok := names[*roleID]
			if !ok {
				continue
			}
			counts[name]++
		}
		tallies = append(tallies, entity.BrandRoleTally{
			BrandID:   b.ID,
			BrandName: b.Name,
			Rows:      sortedRoleCounts(counts),
		})
	}
	return tallies
}

// AggregateRoleTally tallies role names across the de-duplicated set of
// all brand-agent user ids, independent of brand.
func AggregateRoleTally(brandAgents []entity.BrandAgent, users []entity.User, roles []entity.CustomAgentRole) []entity.RoleCount {
	names := RoleNamesByID(roles)
	roleIDByUser := make(map[int64]*int64, len(users))
	for _, u := range users {
		roleIDByUser[u.ID] = u.CustomRoleID
	}

	seen := make(map[int64]bool)
	counts := make(map[string]int)
	for _, ba := range brandAgents {
		if seen[ba.UserID] {
			continue
		}
		seen[ba.UserID] = true
		roleID, ok := roleIDByUser[ba.UserID]
		if !ok || roleID == nil || *roleID == 0 {
			continue
		}
		name, ok := names[*roleID]
		if !ok {
			continue
		}
		counts[name]++
	}
	return sortedRoleCounts(counts)
}

// sortedRoleCounts orders tally rows by count descending, ties broken by
// role name ascending.
func sortedRoleCounts(counts map[string]int) []entity.RoleCount {
	rows := make([]entity.RoleCount, 0, len(counts))
	for role, count := range counts {
		rows = append(rows, entity.RoleCount{Role: role, Count: count})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Count != rows[j].Count {
			return rows[i].Count > rows[j].Count
		}
		return rows[i].Role < rows[j].Role
	})
	return rows
}

// SharedUsers returns the primary-instance users whose normalized email
// also exists on the secondary instance. Users without an email are never
// shared.
func SharedUsers(primary, secondary []entity.UserWithRoleName) []entity.UserWithRoleName {
	secondaryEmails := make(map[string]bool, len(secondary))
	for _, u := range secondary {
		if email := u.NormalizedEmail(); email != "" {
			secondaryEmails[email] = true
		}
	}

	var out []entity.UserWithRoleName
	for _, u := range primary {
		email := u.NormalizedEmail()
		if email != "" && secondaryEmails[email] {
			out = append(out, u)
		}
	}
	return out
}

// CountUsedSeats counts the non-suspended, non-light-agent users on both
// instances and subtracts the contractual seat overage. The result may be
// negative and is not clamped.
func CountUsedSeats(primary, secondary []entity.User) int {
	return countEligible(primary) + countEligible(secondary) - seatOverage
}

func countEligible(users []entity.User) int {
	n := 0
	for _, u := range users {
		if !u.Suspended && !u.IsLightAgent() {
			n++
		}
	}
	return n
}

// DoubleUsedSeats derives the doubly used seat count from the size of the
// shared-user cohort. Unlike CountUsedSeats this never goes negative.
func DoubleUsedSeats(sharedUsers int) int {
	if sharedUsers > seatOverage {
		return sharedUsers - seatOverage
	}
	return 0
}

// ExcludeVorwerkInternational drops the brand named "Vorwerk International"
// from the given list. Applied to the VDE brand list only.
func ExcludeVorwerkInternational(brands []entity.Brand) []entity.Brand {
	var out []entity.Brand
	for _, b := range brands {
		if b.Name != vorwerkInternationalBrand {
			out = append(out, b)
		}
	}
	return out
}
