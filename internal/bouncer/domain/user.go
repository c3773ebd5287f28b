package domain

import "time"

type User struct {
	ID           string
	Username     string
	PasswordHash string  // argon2 encoded
	Roles        Roles   // Parsed from space-delimited storage
	Active       bool    // Deactivated accounts fail authentication immediately
	TOTPSecret   *string // TOTP secret (nullable, base32 encoded)
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
