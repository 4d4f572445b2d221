package domain

import (
	"fmt"
	"strings"
	"time"
)

// Role represents the role of a person in the salon
type Role string

const (
	RoleCustomer Role = "customer"
	RoleStaff    Role = "staff"
	RoleAdmin    Role = "admin"
)

// ParseRole converts an external string into a Role
func ParseRole(s string) (Role, error) {
	role := Role(strings.ToLower(strings.TrimSpace(s)))
	switch role {
	case RoleCustomer, RoleStaff, RoleAdmin:
		return role, nil
	}
	return "", fmt.Errorf("%w: unknown role %q", ErrInvalidInput, s)
}

// Person is a customer or staff record from the directory
type Person struct {
	ID        int64
	Name      string
	Email     string
	Phone     *string
	Role      Role
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Contact returns the notification address of the person
func (p *Person) Contact() Contact {
	c := Contact{PersonID: p.ID, Name: p.Name, Email: p.Email}
	if p.Phone != nil {
		c.Phone = *p.Phone
	}
	return c
}

// Contact is where notifications for a person are delivered
type Contact struct {
	PersonID int64
	Name     string
	Email    string
	Phone    string
}

// Actor is the authenticated caller of an operation
type Actor struct {
	ID   int64
	Role Role
}

// IsStaff returns true for staff and admin actors
func (a Actor) IsStaff() bool {
	return a.Role == RoleStaff || a.Role == RoleAdmin
}

// IsAdmin returns true for admin actors
func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}

// PersonField selects which booking reference an overlap check looks at
type PersonField string

const (
	FieldCustomer PersonField = "customer"
	FieldStaff    PersonField = "staff"
)

// Column returns the bookings column for the field
func (f PersonField) Column() string {
	if f == FieldStaff {
		return "staff_id"
	}
	return "customer_id"
}

// LockKey returns the advisory lock key that serializes bookings of the person
func (f PersonField) LockKey(personID int64) string {
	return fmt.Sprintf("%s:%d", f, personID)
}

// NormalizeEmail lowercases and trims an email for lookups
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// IsPlaceholderEmail reports whether email was generated for a walk-in customer
func IsPlaceholderEmail(email string) bool {
	return strings.HasSuffix(NormalizeEmail(email), "@"+PlaceholderEmailDomain)
}
