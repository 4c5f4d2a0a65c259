// Package service provides authentication-related services for secret generation
// and token management. Implements secure random token generation and Argon2id
// hashing for actor credentials.
package service

// TokenService generates and hashes bearer tokens.
type TokenService interface {
	GenerateToken() (plainToken string, tokenHash string, error error)
	HashToken(plainToken string) string
}

// SecretService generates and verifies actor secrets.
type SecretService interface {
	GenerateSecret() (plainSecret string, hashedSecret string, error error)
	HashSecret(plainSecret string) (hashedSecret string, error error)
	CompareSecret(plainSecret string, hashedSecret string) bool
}
