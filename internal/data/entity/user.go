package entity

type UserRole string

const (
	RoleUser  UserRole = "user"
	RoleAdmin UserRole = "admin"
)

type AuthProvider string

const (
	ProviderLocal  AuthProvider = "local"
	ProviderGoogle AuthProvider = "google"
)

type User struct {
	Base
	Name         string       `db:"name"`
	Email        string       `db:"email"`
	PasswordHash *string      `db:"password"` // nil for google accounts
	Provider     AuthProvider `db:"provider"`
	Role         UserRole     `db:"role"`
}
