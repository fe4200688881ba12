// Package receipt issues signed result receipts. A receipt lets a third party
// check that a score came from this service without querying it.
package receipt

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const issuer = "mindengage-psychometrics"

var ErrInvalid = errors.New("invalid receipt")

type Issuer struct {
	hmac []byte
	ttl  time.Duration
	now  func() time.Time
}

// NewIssuer signs with HS256. A zero ttl issues receipts that never expire.
func NewIssuer(secret string, ttl time.Duration) *Issuer {
	return &Issuer{hmac: []byte(secret), ttl: ttl, now: time.Now}
}

type Claims struct {
	ResultID     string  `json:"rid"`
	AssessmentID string  `json:"aid"`
	Algorithm    string  `json:"algorithm"`
	Overall      float64 `json:"overall"`
	Digest       string  `json:"digest"`
	jwt.RegisteredClaims
}

func (i *Issuer) Issue(c Claims) (string, error) {
	now := i.now()
	c.RegisteredClaims = jwt.RegisteredClaims{
		Issuer:   issuer,
		Subject:  c.ResultID,
		IssuedAt: jwt.NewNumericDate(now),
	}
	if i.ttl > 0 {
		c.ExpiresAt = jwt.NewNumericDate(now.Add(i.ttl))
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, &c)
	return t.SignedString(i.hmac)
}

// Verify checks signature, issuer and expiry.
func (i *Issuer) Verify(tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		return i.hmac, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithTimeFunc(i.now),
	)
	if err != nil {
		return nil, errors.Join(ErrInvalid, err)
	}
	c, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalid
	}
	return c, nil
}
