package utils

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/kotobadev/kotoba-sync/models"
)

// GenerateJWTToken creates a signed HMAC-SHA256 JWT token with the given
// parameters.
//
// The token includes the following standard claims:
//   - Issuer    (iss): identifies the service that issued the token
//   - Subject   (sub): the user ID encoded as a string
//   - IssuedAt  (iat): the current time
//   - ExpiresAt (exp): the current time plus tokenDuration
//
// All parameters are required. Returns an error if any of them are empty or
// zero.
func GenerateJWTToken(issuer string, userID int64, tokenDuration time.Duration, signKey string) (models.Token, error) {
	if issuer == "" || tokenDuration == 0 || signKey == "" {
		return models.Token{}, errors.New("invalid params for generating JWT Token")
	}

	now := time.Now()
	claims := &jwt.RegisteredClaims{
		Issuer:    issuer,
		Subject:   strconv.FormatInt(userID, 10),
		ExpiresAt: jwt.NewNumericDate(now.Add(tokenDuration)),
		IssuedAt:  jwt.NewNumericDate(now),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(signKey))
	if err != nil {
		return models.Token{}, fmt.Errorf("error occurred during signing JWT token: %w", err)
	}

	return models.Token{Token: token, SignedString: tokenString}, nil
}

// ValidateAndParseJWTToken validates the given JWT token string and extracts
// its claims.
//
// Validation includes:
//   - Signature verification using the provided sign key
//   - Issuer (iss) claim check against the provided tokenIssuer
//   - Expiration (exp) claim check
//   - Subject (sub) claim presence and conversion to int64 UserID
func ValidateAndParseJWTToken(tokenString, tokenSignKey, tokenIssuer string) (models.Token, error) {
	token, err := jwt.ParseWithClaims(tokenString, &models.Token{}, func(token *jwt.Token) (any, error) {
		return []byte(tokenSignKey), nil
	}, jwt.WithIssuer(tokenIssuer))
	if err != nil {
		return models.Token{}, fmt.Errorf("error occurred validating and parsing token: %w", err)
	}

	userIDStr, err := token.Claims.GetSubject()
	if err != nil {
		return models.Token{}, fmt.Errorf("error occurred during getting subject from token: %w", err)
	}
	if userIDStr == "" {
		return models.Token{}, errors.New("empty subject error")
	}

	userID, err := strconv.ParseInt(userIDStr, 10, 64)
	if err != nil {
		return models.Token{}, fmt.Errorf("error occurred during converting subject to user ID: %w", err)
	}

	return models.Token{Token: token, UserID: userID}, err
}

// ParseBearerToken extracts the raw token from an "Authorization: Bearer ..."
// header value.
func ParseBearerToken(authorizationHeader string) (string, error) {
	parts := strings.Split(strings.TrimSpace(authorizationHeader), " ")
	if len(parts) != 2 || parts[1] == "" {
		return "", errors.New("invalid authorization header")
	}
	return parts[1], nil
}
