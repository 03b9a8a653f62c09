package entity

import (
	"strings"
	"time"
)

// User roles as reported by the Zendesk users API.
const (
	RoleEndUser = "end-user"
	RoleAgent   = "agent"
	RoleAdmin   = "admin"
)

// LightAgentRoleType is the role_type value Zendesk assigns to light agents.
const LightAgentRoleType = 1

// Tags with special meaning for the audit cohorts.
const (
	TagLightAgentActive   = "lightagent_active"
	TagCCServiceAddresses = "cc_service_addresses"
	TagFunctionalUser     = "functional_user"
)

// User is a Zendesk user record with the fields the report consumes.
// Users are immutable once fetched; classification and reconciliation
// always produce new slices.
type User struct {
	ID           int64      `json:"id"`
	Name         string     `json:"name"`
	Email        *string    `json:"email"`
	Role         string     `json:"role"`
	CreatedAt    time.Time  `json:"created_at"`
	LastLoginAt  *time.Time `json:"last_login_at"`
	Tags         []string   `json:"tags"`
	Details      string     `json:"details"`
	Notes        string     `json:"notes"`
	Suspended    bool       `json:"suspended"`
	Active       bool       `json:"active"`
	CustomRoleID *int64     `json:"custom_role_id"`
	RoleType     int        `json:"role_type"`
}

// HasTag reports whether the user carries the given tag.
func (u User) HasTag(tag string) bool {
	for _, t := range u.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// IsLightAgent reports whether the user's role type marks a light agent.
func (u User) IsLightAgent() bool {
	return u.RoleType == LightAgentRoleType
}

// NormalizedEmail returns the trimmed, lower-cased email used as the join
// key across instances, or "" when the user has no email.
func (u User) NormalizedEmail() string {
	if u.Email == nil {
		return ""
	}
	return strings.ToLower(strings.TrimSpace(*u.Email))
}

// UserWithRoleName decorates a User with its resolved custom role name.
// The name is empty when the user has no custom role or the role id does
// not resolve.
type UserWithRoleName struct {
	User
	CustomAgentRoleName string
}
