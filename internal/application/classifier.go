package application

import (
	"time"

	"github.com/ojuto/zendesk-user-reports/internal/domain/entity"
)

const inactivityThresholdDays = 45.0

// AgentsInactive45Days returns the non-suspended, non-light agents whose
// last login is at least 45 days before now. Agents that never logged in
// count as infinitely inactive and are included. Agents tagged as active
// light agents or as CC service addresses are excluded.
func AgentsInactive45Days(users []entity.User, now time.Time) []entity.User {
	var out []entity.User
	for _, u := range users {
		if u.Role != entity.RoleAgent || u.Suspended || u.IsLightAgent() {
			continue
		}
		if u.HasTag(entity.TagLightAgentActive) || u.HasTag(entity.TagCCServiceAddresses) {
			continue
		}
		if u.LastLoginAt != nil && !u.LastLoginAt.IsZero() {
			days := now.Sub(*u.LastLoginAt).Hours() / 24
			if days < inactivityThresholdDays {
				continue
			}
		}
		out = append(out, u)
	}
	return out
}

// SuspendedAgentsNotLightAgents returns suspended agents that are not
// light agents.
func SuspendedAgentsNotLightAgents(users []entity.User) []entity.User {
	var out []entity.User
	for _, u := range users {
		if u.Role == entity.RoleAgent && u.Suspended && !u.IsLightAgent() {
			out = append(out, u)
		}
	}
	return out
}

// LightAgentActiveButNotLightAgent returns agents tagged as active light
// agents whose role type says otherwise. This is a data quality cohort.
func LightAgentActiveButNotLightAgent(users []entity.User) []entity.User {
	var out []entity.User
	for _, u := range users {
		if u.Role == entity.RoleAgent && !u.IsLightAgent() && u.HasTag(entity.TagLightAgentActive) {
			out = append(out, u)
		}
	}
	return out
}

// FunctionalUsers returns users tagged as functional users, regardless of
// role.
func FunctionalUsers(users []entity.User) []entity.User {
	var out []entity.User
	for _, u := range users {
		if u.HasTag(entity.TagFunctionalUser) {
			out = append(out, u)
		}
	}
	return out
}

// BrandRoleCountUsers returns the users eligible for brand role tallies:
// everyone not suspended, including end-users.
func BrandRoleCountUsers(users []entity.User) []entity.User {
	var out []entity.User
	for _, u := range users {
		if !u.Suspended {
			out = append(out, u)
		}
	}
	return out
}

// CommonUsers returns the users eligible for cross-instance license
// comparison: not suspended and not light agents.
func CommonUsers(users []entity.User) []entity.User {
	var out []entity.User
	for _, u := range users {
		if !u.Suspended && !u.IsLightAgent() {
			out = append(out, u)
		}
	}
	return out
}
