package domain

import "fmt"

// Role represents a client's role in the polling session
type Role string

const (
	RoleTeacher Role = "teacher"
	RoleStudent Role = "student"
)

// String returns the string representation of the role
func (r Role) String() string {
	return string(r)
}

// IsTeacher returns true if this role is the teacher
func (r Role) IsTeacher() bool {
	return r == RoleTeacher
}

// ParseRole converts a string into a Role
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleTeacher:
		return RoleTeacher, nil
	case RoleStudent:
		return RoleStudent, nil
	default:
		return "", fmt.Errorf("unknown role %q", s)
	}
}
