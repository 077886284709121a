package models

import "fmt"

// Role identifies which part of the cafeteria a user operates in.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleStaff   Role = "staff"
	RoleStudent Role = "student"
)

// User represents the active identity for a session. Students carry a roll
// number and mobile so their orders can be attributed; admin and staff carry
// neither.
type User struct {
	Role   Role   `json:"role"`
	RollNo string `json:"rollNo,omitempty"`
	Mobile string `json:"mobile,omitempty"`
}

// NewAdmin returns an admin identity.
func NewAdmin() User {
	return User{Role: RoleAdmin}
}

// NewStaff returns a staff identity.
func NewStaff() User {
	return User{Role: RoleStaff}
}

// NewStudent returns a student identity. Roll number and mobile are required
// fields of the constructor rather than optional extras.
func NewStudent(rollNo, mobile string) User {
	return User{Role: RoleStudent, RollNo: rollNo, Mobile: mobile}
}

// ValidateUser checks role-specific required fields.
func ValidateUser(u User) error {
	switch u.Role {
	case RoleAdmin, RoleStaff:
		return nil
	case RoleStudent:
		if u.RollNo == "" {
			return fmt.Errorf("student identity requires a roll number")
		}
		if u.Mobile == "" {
			return fmt.Errorf("student identity requires a mobile number")
		}
		return nil
	default:
		return fmt.Errorf("unknown role %q", u.Role)
	}
}

// CanOrder reports whether this identity carries enough information to be
// stamped on a placed order.
func (u User) CanOrder() bool {
	return u.RollNo != "" && u.Mobile != ""
}
