// Package token issues and validates the HS256 bearer tokens staff clients
// present on every request.
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	dErrors "evsops/pkg/domain-errors"
	"evsops/pkg/domain"
)

// Claims carries the acting staff member inside the signed token.
type Claims struct {
	Name string `json:"name"`
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// Service handles JWT creation and validation.
type Service struct {
	signingKey []byte
	issuer     string
}

func NewService(signingKey, issuer string) *Service {
	return &Service{signingKey: []byte(signingKey), issuer: issuer}
}

// Issue signs a token for the given actor. The subject claim carries the
// actor id.
func (s *Service) Issue(actor domain.Actor, expiresIn time.Duration) (string, error) {
	newToken := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		Name: actor.Name,
		Role: string(actor.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   string(actor.ID),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiresIn)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    s.issuer,
			ID:        uuid.NewString(),
		},
	})
	return newToken.SignedString(s.signingKey)
}

// Validate parses the token and returns the actor it carries.
func (s *Service) Validate(tokenString string) (domain.Actor, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenUnverifiable
		}
		return s.signingKey, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return domain.Actor{}, dErrors.New(dErrors.CodeUnauthorized, "token has expired")
		}
		return domain.Actor{}, dErrors.New(dErrors.CodeUnauthorized, "invalid token")
	}
	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return domain.Actor{}, dErrors.New(dErrors.CodeUnauthorized, "invalid token claims")
	}

	role, err := domain.ParseRole(claims.Role)
	if err != nil {
		return domain.Actor{}, dErrors.New(dErrors.CodeUnauthorized, "token carries an unknown role")
	}
	if claims.Subject == "" {
		return domain.Actor{}, dErrors.New(dErrors.CodeUnauthorized, "token carries no subject")
	}
	return domain.Actor{
		ID:   domain.UserID(claims.Subject),
		Name: claims.Name,
		Role: role,
	}, nil
}
