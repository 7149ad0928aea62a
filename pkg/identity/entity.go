package identity

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Role is the single role assigned to a user at registration.
// Exactly one role exists per identity and it never changes through
// normal application flows.
type Role string

const (
	RoleStudent Role = "student"
	RoleFaculty Role = "faculty"
	RoleRep     Role = "rep"
	RoleAdmin   Role = "admin"
	RoleStaff   Role = "staff"
)

// ParseRole converts a raw string to a Role, returning an error for
// unknown values.
func ParseRole(s string) (Role, error) {
	r := Role(s)
	switch r {
	case RoleStudent, RoleFaculty, RoleRep, RoleAdmin, RoleStaff:
		return r, nil
	}
	return "", fmt.Errorf("unknown role %q", s)
}

// User is a domain entity representing a system user together with the
// role-conditional profile attributes attached to it.
type User struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	Role         Role
	FirstName    string
	LastName     string
	CreatedAt    time.Time
	Profile      Profile
}

// Profile groups the attributes whose relevance depends on the role.
// Fields outside the user's role are left at their zero value.
type Profile struct {
	// students
	Major     string
	GradYear  int
	GPA       float32
	ResumeURL string
	// company representatives
	CompanyName string
	JobTitle    string
	// faculty
	Department  string
	OfficeHours string
}
