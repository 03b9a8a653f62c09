package entity

import "time"

// CustomAgentRole is a Zendesk custom agent role definition.
type CustomAgentRole struct {
	ID              int64     `json:"id"`
	Name            string    `json:"name"`
	Description     string    `json:"description"`
	RoleType        int       `json:"role_type"`
	TeamMemberCount int       `json:"team_member_count"`
	CreatedAt       time.Time `json:"created_at"`
}
