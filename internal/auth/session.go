// ABOUTME: Session codec serializing an Identity into an HS256-signed token
// ABOUTME: The claims carry the full Identity so decode needs no store round-trip

package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrNoSession is returned by Decode for any structurally invalid
// payload: bad signature, missing role, or a role outside the five-value
// enumeration. A malformed session is treated the same as an absent one.
var ErrNoSession = errors.New("no session")

// SessionCodec encodes an Identity into a session token and restores it
// on later requests. The token claims are the Identity fields themselves,
// so decode never touches the store. Role or scoping changes mid-session
// are not observed until the next login.
type SessionCodec struct {
	secret []byte
	ttl    time.Duration
}

// NewSessionCodec creates a codec signing with the given secret. ttl is
// the expiry the surrounding transport imposes on issued tokens.
func NewSessionCodec(secret []byte, ttl time.Duration) *SessionCodec {
	return &SessionCodec{secret: secret, ttl: ttl}
}

// Encode serializes the Identity into a signed session token
func (c *SessionCodec) Encode(identity Identity) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  identity.ID,
		"role": string(identity.Role),
		"key":  identity.DisplayKey,
		"iat":  now.Unix(),
		"exp":  now.Add(c.ttl).Unix(),
	}
	if identity.UniversityID != "" {
		claims["university_id"] = identity.UniversityID
	}
	if identity.ProgramID != "" {
		claims["program_id"] = identity.ProgramID
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(c.secret)
}

// Decode restores the Identity from a session token. A tampered
// signature, expired token, or missing/unknown role yields ErrNoSession;
// callers treat that as an unauthenticated request, never as a crash.
func (c *SessionCodec) Decode(tokenString string) (*Identity, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrNoSession
		}
		return c.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrNoSession
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrNoSession
	}

	roleStr, _ := claims["role"].(string)
	role := Role(roleStr)
	if !role.Valid() {
		return nil, ErrNoSession
	}

	sub, _ := claims["sub"].(string)
	if sub == "" {
		return nil, ErrNoSession
	}

	identity := &Identity{
		ID:         sub,
		Role:       role,
		DisplayKey: stringClaim(claims, "key"),
	}
	identity.UniversityID = stringClaim(claims, "university_id")
	identity.ProgramID = stringClaim(claims, "program_id")

	return identity, nil
}

func stringClaim(claims jwt.MapClaims, key string) string {
	s, _ := claims[key].(string)
	return s
}
