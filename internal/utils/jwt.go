package utils

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrTokenWithoutExpiry is returned by TokenExpired for a token that has no
// "exp" claim.
var ErrTokenWithoutExpiry = errors.New("token has no expiration claim")

// TokenExpired parses a bearer token without verifying its signature and
// reports whether its "exp" claim lies before now. The client never holds the
// signing key; the check only spares a round trip with a token the server
// would reject anyway.
func TokenExpired(tokenString string, now time.Time) (bool, error) {
	token, _, err := jwt.NewParser().ParseUnverified(tokenString, jwt.MapClaims{})
	if err != nil {
		return false, fmt.Errorf("parse bearer token: %w", err)
	}

	exp, err := token.Claims.GetExpirationTime()
	if err != nil {
		return false, fmt.Errorf("read token expiration: %w", err)
	}
	if exp == nil {
		return false, ErrTokenWithoutExpiry
	}

	return exp.Before(now), nil
}
