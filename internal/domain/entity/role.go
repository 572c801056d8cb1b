// Package entity contains the core business objects of the project.
package entity

import (
	"slices"
	"strings"
)

// Role represents the type of role a connected user holds.
type Role string

const (
	// RoleAdmin indicates an administrator watching the dashboard.
	RoleAdmin Role = "ADMIN"
	// RoleFieldAgent indicates a field agent reporting positions and requesting discounts.
	RoleFieldAgent Role = "FIELD_AGENT"
)

// String returns the string representation of the Role.
func (r Role) String() string {
	return string(r)
}

// IsValid checks if the Role is a valid value.
func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleFieldAgent:
		return true
	default:
		return false
	}
}

// ParseRole accepts role names case-insensitively ("admin", "field_agent", "FIELD_AGENT").
func ParseRole(s string) (Role, bool) {
	role := Role(strings.ToUpper(strings.TrimSpace(s)))
	if !role.IsValid() {
		return "", false
	}

	return role, true
}

// Roles is a slice of Role for convenience.
type Roles []Role

// Contains checks if the roles slice contains a specific role.
func (rs Roles) Contains(role Role) bool {
	return slices.Contains(rs, role)
}
