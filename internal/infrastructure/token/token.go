// Package token inspects the opaque session credential without trusting it.
//
// The client never validates the token — that is the server's job — but when
// a request comes back 401 it is worth knowing whether the token had simply
// expired. When the credential happens to be a JWT, the exp claim answers
// that; anything unparseable is treated as non-expired and the 401 stays a
// plain authorization failure.
package token

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Expired reports whether raw is a JWT whose exp claim lies before now.
// The signature is deliberately not verified; the answer is used only to
// pick an accurate user-facing message, never to grant anything.
func Expired(raw string, now time.Time) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(raw, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Time.Before(now)
}
