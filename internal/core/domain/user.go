package domain

import (
	"errors"
	"time"
)

const (
	RoleAdmin    = "admin"
	RoleManager  = "manager"
	RoleEmployee = "employee"
)

// roleIDs mirrors the seeded role rows: 1=admin, 2=manager, 3=employee.
var roleIDs = map[string]int{
	RoleAdmin:    1,
	RoleManager:  2,
	RoleEmployee: 3,
}

var ErrUserNotFound = errors.New("user not found")
var ErrUserExists = errors.New("user already exists")
var ErrInvalidCredentials = errors.New("invalid credentials")

// ValidRole reports whether name is one of the three seeded role names.
func ValidRole(name string) bool {
	_, ok := roleIDs[name]
	return ok
}

// RoleID maps a role name to its seeded numeric id, 0 if unknown.
func RoleID(name string) int {
	return roleIDs[name]
}

// RoleName maps a seeded numeric id back to the role name, "" if unknown.
func RoleName(id int) string {
	for name, n := range roleIDs {
		if n == id {
			return name
		}
	}
	return ""
}

// Role is the seeded reference data describing what a role name means.
type Role struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	DisplayName string `json:"display_name"`
	Description string `json:"description"`
}

// User models an authenticated actor. ManagerID is a self-referential
// parent link forming the reporting line; it is empty for users without
// a manager and is not checked for cycles.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	ManagerID    string    `json:"manager_id,omitempty"`
	Position     string    `json:"position,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Actor is the authenticated identity attached to a request.
type Actor struct {
	ID   string
	Name string
	Role string
}
