package models

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// RoleOrDefault returns role, or RoleUser when none was supplied.
func RoleOrDefault(role string) string {
	if role == "" {
		return RoleUser
	}
	return role
}
