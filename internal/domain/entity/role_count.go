package entity

// RoleCount is one tallied row of a role-count block: how many team
// members hold a given custom role.
type RoleCount struct {
	Role  string
	Count int
}

// BrandRoleTally is the per-brand role tally rendered as one block on the
// brand role count sheet. Rows are sorted by count descending, ties broken
// by role name ascending.
type BrandRoleTally struct {
	BrandID   int64
	BrandName string
	Rows      []RoleCount
}
