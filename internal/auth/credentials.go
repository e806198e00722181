package auth

import (
	"crypto/subtle"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// Credentials is the single admin account. When PasswordHash is set it
// takes precedence over the plain Password.
type Credentials struct {
	Email        string
	Password     string
	PasswordHash string
}

func (c Credentials) Configured() bool {
	return c.Email != "" && (c.Password != "" || c.PasswordHash != "")
}

func (c Credentials) Verify(email, password string) bool {
	if !c.Configured() {
		return false
	}
	emailOK := strings.EqualFold(strings.TrimSpace(email), c.Email)

	var passOK bool
	if c.PasswordHash != "" {
		passOK = bcrypt.CompareHashAndPassword([]byte(c.PasswordHash), []byte(password)) == nil
	} else {
		passOK = subtle.ConstantTimeCompare([]byte(password), []byte(c.Password)) == 1
	}
	return emailOK && passOK
}
