package model

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User is an account. PasswordHash never leaves the service.
type User struct {
	ID           string  `json:"id" db:"id"`
	Name         string  `json:"name" db:"name"`
	UserName     string  `json:"user_name" db:"user_name"`
	Email        string  `json:"email" db:"email"`
	PasswordHash string  `json:"-" db:"password_hash"`
	BirthDate    Date    `json:"birth_date" db:"birth_date"`
	Location     *string `json:"location" db:"location"`
	Role         string  `json:"role" db:"role"`
}

// AuthResponse is returned by a successful login
type AuthResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresAt   int64  `json:"expires_at"`
	User        User   `json:"user"`
}
