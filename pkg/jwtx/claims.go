package jwtx

import "github.com/golang-jwt/jwt/v5"

// Claims are the assertions carried by an access token. Role is trusted
// because the signature is, not because of where the token came from.
type Claims struct {
	jwt.RegisteredClaims

	Role string `json:"role,omitempty"`
}
