package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/ladelta/bakery-service/internal/models"
)

// ErrInvalidCredentials is returned by Login for unknown emails and wrong
// passwords alike, so callers cannot tell the two apart.
var ErrInvalidCredentials = errors.New("invalid credentials")

// UserStore is the slice of the user repository the auth service needs.
type UserStore interface {
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}

// JWTConfig holds configuration for JWT token generation
type JWTConfig struct {
	Secret    string
	ExpiresIn int // hours
}

// Identity is the verified claim set of a session token.
type Identity struct {
	UserID string
	Email  string
	Role   string
}

// IsAdmin reports whether the identity carries the admin role.
func (i *Identity) IsAdmin() bool {
	return i != nil && i.Role == string(models.RoleAdmin)
}

// Claims represents JWT claims
type Claims struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// AuthService handles authentication and authorization
type AuthService struct {
	users     UserStore
	jwtConfig JWTConfig
}

// NewAuthService creates a new authentication service
func NewAuthService(users UserStore, jwtConfig JWTConfig) *AuthService {
	return &AuthService{
		users:     users,
		jwtConfig: jwtConfig,
	}
}

// Login authenticates a credential pair and returns a signed session token
// together with the user record.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *models.User, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return "", nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.IssueToken(Identity{
		UserID: user.ID.String(),
		Email:  user.Email,
		Role:   string(user.Role),
	})
	if err != nil {
		return "", nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return token, user, nil
}

// IssueToken signs a session token embedding the identity with the
// configured validity window.
func (s *AuthService) IssueToken(identity Identity) (string, error) {
	now := time.Now()
	expirationTime := now.Add(time.Duration(s.jwtConfig.ExpiresIn) * time.Hour)

	claims := &Claims{
		UserID: identity.UserID,
		Email:  identity.Email,
		Role:   identity.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expirationTime),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtConfig.Secret))
}

// VerifyToken returns the identity encoded in the token, or nil if the
// signature is invalid, the token is expired, or any identity field is
// missing. Verification failures are logged, never surfaced to callers.
func (s *AuthService) VerifyToken(tokenString string) *Identity {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.jwtConfig.Secret), nil
	})
	if err != nil || !token.Valid {
		logrus.WithError(err).Debug("Token verification failed")
		return nil
	}

	if claims.UserID == "" || claims.Email == "" || claims.Role == "" {
		logrus.Debug("Token payload missing identity fields")
		return nil
	}

	return &Identity{
		UserID: claims.UserID,
		Email:  claims.Email,
		Role:   claims.Role,
	}
}

// HashPassword hashes a plaintext password for storage.
func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), 12)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashed), nil
}
