package types

import "github.com/golang-jwt/jwt/v5"

type Claims struct {
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// Actor identifies who performed a request. UserID is 0 for unauthenticated
// callers such as an external signer.
type Actor struct {
	UserID    uint
	IP        string
	UserAgent string
}
