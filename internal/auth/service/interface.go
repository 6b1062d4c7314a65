// Package service provides authentication-related services for token
// generation and authentication-key hashing.
package service

// TokenService defines the interface for opaque bearer token generation and hashing.
type TokenService interface {
	GenerateToken() (plainToken string, tokenHash string, err error)
	HashToken(plainToken string) string
}

// KeyHashService defines the interface for hashing the client-derived
// authentication key before storage. The client already paid the Argon2 cost
// deriving the key, but hashing again server-side keeps a database leak from
// handing out login credentials.
type KeyHashService interface {
	Hash(authKey []byte) (string, error)
	Compare(authKey []byte, hash string) bool
}
