package model

// Role names.
const (
	RoleAdmin = "admin"
	RoleStaff = "staff"
)

// User is an operator allowed to log in.
type User struct {
	Username     string `json:"username"`
	PasswordHash string `json:"passwordHash"`
	Role         string `json:"role"`
}
