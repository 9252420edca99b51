package domain

// Role is the closed set of roles the auth gate can hand out.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// User models the identity of whoever is currently logged in. It only exists
// between a successful login and the next logout.
type User struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Role     Role   `json:"role"`
}

// IsAdmin reports whether the user may see financial data.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}
