package domain

import "time"

type Role string

const (
	RoleSale     Role = "sale"
	RoleCustomer Role = "customer"
)

// IsValid checks if the role is one of the known roles.
// Tokens carrying anything else are rejected at the auth boundary.
func (r Role) IsValid() bool {
	switch r {
	case RoleSale, RoleCustomer:
		return true
	}
	return false
}

type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Password  string    `json:"-"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
