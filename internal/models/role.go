package models

// Role is the badge an admin can assign to a user. Empty means no role.
type Role string

const (
	RoleNone  Role = ""
	RoleRich  Role = "RICH"
	RoleFraud Role = "FRAUD"
	RoleGang  Role = "GANG"
)

func (r Role) Valid() bool {
	switch r {
	case RoleNone, RoleRich, RoleFraud, RoleGang:
		return true
	}
	return false
}

// RoleBadge carries the presentation metadata for a role so clients never
// branch on the raw string.
type RoleBadge struct {
	Label string `json:"label"`
	Color string `json:"color"`
}

func (r Role) Badge() *RoleBadge {
	switch r {
	case RoleRich:
		return &RoleBadge{Label: "Rich", Color: "gold"}
	case RoleFraud:
		return &RoleBadge{Label: "Fraud", Color: "red"}
	case RoleGang:
		return &RoleBadge{Label: "Gang", Color: "purple"}
	default:
		return nil
	}
}
