package auth

import (
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"pekarna-api/internal/domain"
)

// Claims carries the user id as the string claim "id" next to the
// registered claims. Kept string-encoded for compatibility with existing
// token consumers.
type Claims struct {
	UID string `json:"id"`
	jwt.RegisteredClaims
}

// JWTer signs and validates HS256 bearer tokens. Secret is read once at
// startup and shared immutably by all issue/parse calls.
type JWTer struct {
	Secret []byte
	Issuer string
	TTL    time.Duration
}

func (j *JWTer) Issue(userID uint) (string, error) {
	now := time.Now()
	claims := Claims{
		UID: strconv.FormatUint(uint64(userID), 10),
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    j.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(j.TTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(j.Secret)
}

// Parse validates signature, algorithm and expiry. Anything wrong with the
// token, including an alg swap, collapses to domain.ErrInvalidToken. No
// leeway: a token is rejected the instant exp passes.
func (j *JWTer) Parse(tokenStr string) (uint, error) {
	t, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected alg %q", token.Method.Alg())
		}
		return j.Secret, nil
	})
	if err != nil {
		return 0, domain.ErrInvalidToken
	}
	c, ok := t.Claims.(*Claims)
	if !ok || !t.Valid {
		return 0, domain.ErrInvalidToken
	}
	uid, err := strconv.ParseUint(c.UID, 10, 64)
	if err != nil {
		return 0, domain.ErrInvalidToken
	}
	return uint(uid), nil
}
