package authn

import (
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/google/uuid"

	"github.com/matthews-wong/setaside-be/internal/apperr"
)

// Claims is the JWT payload: standard claims plus the caller's email and
// role.
type Claims struct {
	jwt.StandardClaims
	Email string `json:"email"`
	Role  string `json:"role"`
}

// Tokens issues and verifies signed bearer tokens.
type Tokens struct {
	secret []byte
	ttl    time.Duration
}

// NewTokens creates a token issuer/verifier with an HS256 secret.
func NewTokens(secret string, ttl time.Duration) *Tokens {
	return &Tokens{secret: []byte(secret), ttl: ttl}
}

// Issue signs a token for the given identity.
func (t *Tokens) Issue(id uuid.UUID, email string, role Role) (string, error) {
	now := time.Now()
	claims := &Claims{
		StandardClaims: jwt.StandardClaims{
			Subject:   id.String(),
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(t.ttl).Unix(),
		},
		Email: email,
		Role:  string(role),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
}

// Verify parses and validates a token string, returning the identity it
// carries. Expired, malformed, or wrongly-signed tokens all fail with
// UNAUTHENTICATED.
func (t *Tokens) Verify(tokenString string) (Identity, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(tok *jwt.Token) (interface{}, error) {
		if _, ok := tok.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, apperr.New(apperr.KindUnauthenticated, "unexpected signing method")
		}
		return t.secret, nil
	})
	if err != nil || !token.Valid {
		return Identity{}, apperr.New(apperr.KindUnauthenticated, "invalid or expired token")
	}

	id, err := uuid.Parse(claims.Subject)
	if err != nil {
		return Identity{}, apperr.New(apperr.KindUnauthenticated, "invalid token subject")
	}
	role := Role(claims.Role)
	if !role.Valid() {
		return Identity{}, apperr.New(apperr.KindUnauthenticated, "invalid token role")
	}
	return Identity{ID: id, Email: claims.Email, Role: role}, nil
}
