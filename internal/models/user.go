package models

// User is an account allowed to drive the strip through the protected API.
// The bcrypt hash never leaves the server.
type User struct {
	ID           int    `json:"id"`
	Username     string `json:"username"`
	PasswordHash string `json:"-"`
}
