package token

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func signed(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	raw, err := tok.SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	return raw
}

func TestExpired(t *testing.T) {
	now := time.Date(2025, 8, 1, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		raw  string
		want bool
	}{
		{
			name: "exp in the past",
			raw:  signed(t, jwt.MapClaims{"exp": now.Add(-time.Hour).Unix()}),
			want: true,
		},
		{
			name: "exp in the future",
			raw:  signed(t, jwt.MapClaims{"exp": now.Add(time.Hour).Unix()}),
			want: false,
		},
		{
			name: "no exp claim",
			raw:  signed(t, jwt.MapClaims{"sub": "u1"}),
			want: false,
		},
		{
			name: "opaque token",
			raw:  "not-a-jwt",
			want: false,
		},
		{
			name: "empty token",
			raw:  "",
			want: false,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Expired(tc.raw, now); got != tc.want {
				t.Fatalf("Expired = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestExpired_IgnoresSignature(t *testing.T) {
	now := time.Now()
	raw := signed(t, jwt.MapClaims{"exp": now.Add(-time.Minute).Unix()})
	// Corrupt the signature; expiry inspection must still work.
	raw = raw[:len(raw)-4] + "AAAA"

	if !Expired(raw, now) {
		t.Fatalf("expiry inspection must not depend on a valid signature")
	}
}
