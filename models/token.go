package models

import (
	"fmt"
	"strconv"

	"github.com/golang-jwt/jwt/v5"
)

// Token wraps a JWT token with convenience accessors for authentication
// flows.
//
// It embeds [jwt.Token] for low-level token operations and
// [jwt.RegisteredClaims] for standard claim access. SignedString holds the
// compact serialized form ready to be transmitted in HTTP headers; UserID is
// a cached, parsed copy of the "sub" claim.
type Token struct {
	// Token is the underlying JWT used for signing and claim inspection.
	*jwt.Token `json:"-"`

	// RegisteredClaims provides the standard RFC 7519 claim set.
	jwt.RegisteredClaims

	// SignedString is the compact JWS representation of the token.
	SignedString string `json:"-"`

	// UserID is the owner identifier extracted from the "sub" claim.
	UserID int64 `json:"-"`
}

// GetUserID extracts the user identifier from the token's "sub" claim and
// parses it as a base-10 int64.
func (t *Token) GetUserID() (int64, error) {
	userIDString, err := t.GetSubject()
	if err != nil {
		return 0, fmt.Errorf("error extracting UserID from token: %w", err)
	}

	userID, err := strconv.ParseInt(userIDString, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("error converting UserID from token to int64: %w", err)
	}

	return userID, nil
}

// String returns the compact JWS serialization of the token. It implements
// the [fmt.Stringer] interface.
func (t *Token) String() string {
	return t.SignedString
}
