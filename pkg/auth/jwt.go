package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/Marxcruz/hospital-api/internal/model"
)

// TokenService signs and verifies the identity tokens stored in role
// cookies. A single secret covers all three namespaces; the role claim
// plus the middleware role check keep them apart.
type TokenService struct {
	secret []byte
	expiry time.Duration
}

func NewTokenService(secret string, expiry time.Duration) *TokenService {
	return &TokenService{secret: []byte(secret), expiry: expiry}
}

type tokenClaims struct {
	Correo string     `json:"correo"`
	Rol    model.Role `json:"rol"`
	jwt.RegisteredClaims
}

// Generate issues a signed token identifying the user.
func (s *TokenService) Generate(user *model.User) (string, error) {
	now := time.Now()
	claims := tokenClaims{
		Correo: user.Correo,
		Rol:    user.Rol,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.expiry)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Validate parses and verifies a token, returning its claims.
func (s *TokenService) Validate(tokenString string) (*model.TokenClaims, error) {
	var claims tokenClaims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}
	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID in token: %w", err)
	}

	return &model.TokenClaims{
		UserID: userID,
		Correo: claims.Correo,
		Rol:    claims.Rol,
	}, nil
}

// Expiry returns the configured token lifetime, used to align the cookie
// Max-Age with the token expiry.
func (s *TokenService) Expiry() time.Duration {
	return s.expiry
}
