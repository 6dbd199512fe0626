package models

import (
	"errors"
	"strings"
)

type Role string

const (
	RoleUser       Role = "user"
	RoleTechnician Role = "tech"
)

var ErrInvalidRole = errors.New("role must be one of user, tech")

// ParseRole accepts the spellings clients send ("user", "USER", "tech",
// "technician", "TECHNICIAN") and returns the stored role.
func ParseRole(s string) (Role, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "user":
		return RoleUser, nil
	case "tech", "technician":
		return RoleTechnician, nil
	}
	return "", ErrInvalidRole
}

// Display is the upper-case label the frontend expects in login responses.
func (r Role) Display() string {
	if r == RoleTechnician {
		return "TECHNICIAN"
	}
	return "USER"
}

func (r Role) Valid() bool {
	return r == RoleUser || r == RoleTechnician
}
