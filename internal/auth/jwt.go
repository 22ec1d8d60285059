package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/forma/server/internal/model"
)

const (
	accessTokenExpiry  = 15 * time.Minute
	refreshTokenExpiry = 7 * 24 * time.Hour
)

// Claims represents the JWT claim set shared by access and refresh tokens.
type Claims struct {
	UserID uuid.UUID `json:"sub"`
	Email  string    `json:"email"`
	jwt.RegisteredClaims
}

// TokenService signs and verifies JWTs with a process-wide HMAC secret.
// Tokens are stateless: nothing is stored server-side, so revocation is
// not possible.
type TokenService struct {
	secret []byte
}

// NewTokenService creates a new token service.
func NewTokenService(secret string) *TokenService {
	return &TokenService{secret: []byte(secret)}
}

// IssueTokens signs the claim set twice: once with the 15-minute access
// expiry and once with the 7-day refresh expiry.
func (s *TokenService) IssueTokens(userID uuid.UUID, email string) (model.AuthTokens, error) {
	access, err := s.sign(userID, email, accessTokenExpiry)
	if err != nil {
		return model.AuthTokens{}, fmt.Errorf("failed to sign access token: %w", err)
	}
	refresh, err := s.sign(userID, email, refreshTokenExpiry)
	if err != nil {
		return model.AuthTokens{}, fmt.Errorf("failed to sign refresh token: %w", err)
	}
	return model.AuthTokens{AccessToken: access, RefreshToken: refresh}, nil
}

func (s *TokenService) sign(userID uuid.UUID, email string, expiry time.Duration) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID: userID,
		Email:  email,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(expiry)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Verify parses a token and returns its claims. Expired or otherwise
// invalid tokens fail.
func (s *TokenService) Verify(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	return claims, nil
}
