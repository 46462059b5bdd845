package auth

import (
	"crypto/subtle"

	"golang.org/x/crypto/bcrypt"
)

func HashPassword(password string) (string, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashedPassword), nil
}

func VerifyPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}

// Credentials is the single account allowed to log in.
type Credentials struct {
	username     string
	passwordHash string
}

// NewCredentials takes an already bcrypt-hashed password.
func NewCredentials(username, passwordHash string) (Credentials, error) {
	if _, err := bcrypt.Cost([]byte(passwordHash)); err != nil {
		return Credentials{}, err
	}
	return Credentials{username: username, passwordHash: passwordHash}, nil
}

// CredentialsFromPassword hashes a plaintext password.
func CredentialsFromPassword(username, password string) (Credentials, error) {
	hash, err := HashPassword(password)
	if err != nil {
		return Credentials{}, err
	}
	return Credentials{username: username, passwordHash: hash}, nil
}

// Check reports whether the pair matches. The hash comparison always runs so
// a wrong username costs the same as a wrong password.
func (c Credentials) Check(username, password string) bool {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(c.username)) == 1
	passOK := VerifyPassword(c.passwordHash, password)
	return userOK && passOK
}
