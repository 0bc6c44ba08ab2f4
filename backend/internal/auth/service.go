package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"studysync/backend/internal/shared"
)

var (
	ErrTokenMissing = errors.New("token missing")
	ErrTokenInvalid = errors.New("invalid or expired token")
)

// CustomClaims for JWT
type CustomClaims struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// AuthService validates bearer tokens issued with the shared HMAC secret and
// can mint tokens for development and the admin CLI.
type AuthService struct {
	config shared.SecurityConfig
	now    func() time.Time
}

// NewAuthService creates a new AuthService instance
func NewAuthService(config *shared.ServiceConfig) *AuthService {
	return &AuthService{config: config.Security, now: time.Now}
}

// GenerateToken creates a signed JWT for userID
func (s *AuthService) GenerateToken(userID, role string) (string, time.Time, error) {
	if s.config.JWTSecret == "" {
		return "", time.Time{}, errors.New("JWT secret is not configured")
	}

	issuedAt := s.now()
	expirationTime := issuedAt.Add(time.Duration(s.config.JWTExpirationHours) * time.Hour)

	claims := CustomClaims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			// jti keeps tokens distinct even when minted in the same second
			ID:        uuid.NewString(),
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(expirationTime),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			Issuer:    s.config.JWTIssuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(s.config.JWTSecret))

	return tokenString, expirationTime, err
}

// ValidateToken checks signature, expiry and issuer and returns the claims
func (s *AuthService) ValidateToken(tokenString string) (*CustomClaims, error) {
	if tokenString == "" {
		return nil, ErrTokenMissing
	}

	token, claims, err := s.parseToken(tokenString)
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("%w: %v", ErrTokenInvalid, err)
	}
	return claims, nil
}

// parseToken validates the JWT signature and extracts claims
func (s *AuthService) parseToken(tokenString string) (*jwt.Token, *CustomClaims, error) {
	claims := &CustomClaims{}
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
		jwt.WithExpirationRequired(),
	}
	if s.config.JWTIssuer != "" {
		opts = append(opts, jwt.WithIssuer(s.config.JWTIssuer))
	}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.config.JWTSecret), nil
	}, opts...)

	return token, claims, err
}

// ============================================================================
// Request context
// ============================================================================

type claimsKey struct{}

// WithClaims stores validated claims on ctx
func WithClaims(ctx context.Context, claims *CustomClaims) context.Context {
	return context.WithValue(ctx, claimsKey{}, claims)
}

// ClaimsFromContext returns the claims stored by WithClaims, if any
func ClaimsFromContext(ctx context.Context) (*CustomClaims, bool) {
	claims, ok := ctx.Value(claimsKey{}).(*CustomClaims)
	return claims, ok
}
