package server

import (
	"fmt"
	"time"

	"foodforall/pkg/types"

	"github.com/lestrrat-go/jwx/v3/jwa"
	"github.com/lestrrat-go/jwx/v3/jwt"
)

// Identity is the verified (user, role) pair carried by a bearer token.
type Identity struct {
	UserID string
	Role   types.Role
}

func (s *Service) issueToken(user *types.User) (string, error) {
	now := time.Now()

	token, err := jwt.NewBuilder().
		Subject(user.ID).
		IssuedAt(now).
		Expiration(now.Add(time.Duration(s.config.TokenTTLHours) * time.Hour)).
		Claim("role", string(user.Role)).
		Build()
	if err != nil {
		return "", fmt.Errorf("build token: %w", err)
	}

	signed, err := jwt.Sign(token, jwt.WithKey(jwa.HS256(), s.signingKey))
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}

	return string(signed), nil
}

func (s *Service) parseToken(raw string) (Identity, error) {
	token, err := jwt.Parse(
		[]byte(raw),
		jwt.WithKey(jwa.HS256(), s.signingKey),
		jwt.WithValidate(true),
	)
	if err != nil {
		return Identity{}, fmt.Errorf("parse token: %w", err)
	}

	userID, ok := token.Subject()
	if !ok || userID == "" {
		return Identity{}, fmt.Errorf("no user id in token subject claim")
	}

	var role string
	if err := token.Get("role", &role); err != nil {
		return Identity{}, fmt.Errorf("no role claim in token: %w", err)
	}

	if !types.Role(role).Valid() {
		return Identity{}, fmt.Errorf("unknown role %q in token", role)
	}

	return Identity{UserID: userID, Role: types.Role(role)}, nil
}
