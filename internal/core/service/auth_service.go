package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/bookvault/books-api/internal/core/domain"
	"github.com/bookvault/books-api/internal/core/ports"
)

const (
	tokenTypeAccess  = "access"
	tokenTypeRefresh = "refresh"
)

// AuthService implements registration, login and token refresh.
type AuthService struct {
	repo       ports.AuthRepository
	tokens     ports.RefreshTokenStore
	jwtSecret  string
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewAuthService(repo ports.AuthRepository, tokens ports.RefreshTokenStore, jwtSecret string, accessTTL, refreshTTL time.Duration) *AuthService {
	if accessTTL <= 0 {
		accessTTL = 15 * time.Minute
	}
	if refreshTTL <= 0 {
		refreshTTL = 7 * 24 * time.Hour
	}
	return &AuthService{
		repo:       repo,
		tokens:     tokens,
		jwtSecret:  jwtSecret,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}
}

func (s *AuthService) Register(ctx context.Context, username, password string) (*domain.User, error) {
	if username == "" || password == "" {
		return nil, domain.ErrMissingCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Username:     username,
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (s *AuthService) Login(ctx context.Context, username, password string) (*ports.TokenPair, error) {
	if username == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}

	access, err := s.generateToken(user.Username, tokenTypeAccess, "", s.accessTTL)
	if err != nil {
		return nil, err
	}

	tokenID := newTokenID()
	refresh, err := s.generateToken(user.Username, tokenTypeRefresh, tokenID, s.refreshTTL)
	if err != nil {
		return nil, err
	}
	if err := s.tokens.Save(ctx, user.Username, tokenID, s.refreshTTL); err != nil {
		return nil, fmt.Errorf("save refresh token: %w", err)
	}

	return &ports.TokenPair{Access: access, Refresh: refresh}, nil
}

// Refresh validates a refresh token against its signature, type claim and the
// token store, then issues a new access token for the same user.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(refreshToken, claims, func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil || !tkn.Valid {
		return "", domain.ErrInvalidToken
	}

	typ, _ := claims["typ"].(string)
	username, _ := claims["username"].(string)
	tokenID, _ := claims["jti"].(string)
	if typ != tokenTypeRefresh || username == "" || tokenID == "" {
		return "", domain.ErrInvalidToken
	}

	known, err := s.tokens.Exists(ctx, username, tokenID)
	if err != nil {
		return "", fmt.Errorf("check refresh token: %w", err)
	}
	if !known {
		return "", domain.ErrInvalidToken
	}

	return s.generateToken(username, tokenTypeAccess, "", s.accessTTL)
}

func (s *AuthService) generateToken(username, typ, tokenID string, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"username": username,
		"typ":      typ,
		"exp":      time.Now().Add(ttl).Unix(),
	}
	if tokenID != "" {
		claims["jti"] = tokenID
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}

// newTokenID returns a random 128-bit hex identifier for refresh tokens.
func newTokenID() string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		// fallback: use current nanoseconds
		return fmt.Sprintf("%x", time.Now().UnixNano())
	}
	return hex.EncodeToString(b)
}
