package services

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/bundleworks/commerce-backend/internal/logger"
)

// AuthService guards the mutating catalog routes. There is a single admin
// principal: a bcrypt-checked password is exchanged for a short-lived HS256
// token.
type AuthService interface {
	Login(password string) (string, error)
	ValidateToken(tokenString string) error
}

type authService struct {
	log               *logger.Logger
	jwtSecret         []byte
	adminPasswordHash []byte
	tokenTTL          time.Duration
}

func NewAuthService(baseLog *logger.Logger, jwtSecret string, adminPasswordHash string, tokenTTL time.Duration) (AuthService, error) {
	if jwtSecret == "" {
		return nil, fmt.Errorf("a jwt secret is required")
	}
	if adminPasswordHash == "" {
		return nil, fmt.Errorf("an admin password hash is required")
	}
	if _, err := bcrypt.Cost([]byte(adminPasswordHash)); err != nil {
		return nil, fmt.Errorf("admin password hash is not a bcrypt hash: %w", err)
	}
	return &authService{
		log:               baseLog.With("service", "AuthService"),
		jwtSecret:         []byte(jwtSecret),
		adminPasswordHash: []byte(adminPasswordHash),
		tokenTTL:          tokenTTL,
	}, nil
}

func (as *authService) Login(password string) (string, error) {
	if err := bcrypt.CompareHashAndPassword(as.adminPasswordHash, []byte(password)); err != nil {
		as.log.Warn("Admin login rejected")
		return "", fmt.Errorf("invalid credentials")
	}
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   "admin",
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(as.tokenTTL)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(as.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("error signing token: %w", err)
	}
	return signed, nil
}

func (as *authService) ValidateToken(tokenString string) error {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return as.jwtSecret, nil
	})
	if err != nil {
		return fmt.Errorf("invalid token: %w", err)
	}
	if !token.Valid {
		return fmt.Errorf("invalid token")
	}
	return nil
}

// HashAdminPassword is a setup helper for generating ADMIN_PASSWORD_HASH.
func HashAdminPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
