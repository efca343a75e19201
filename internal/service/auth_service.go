package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"bloglist/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const defaultTokenTTL = time.Hour

// AuthService issues and verifies bearer tokens.
type AuthService struct {
	users  repository.Users
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewAuthService(users repository.Users, secret string, ttl time.Duration) *AuthService {
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}
	return &AuthService{users: users, secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Claims defines JWT claims. Subject repeats UserID.
type Claims struct {
	jwt.RegisteredClaims
	Username string `json:"username"`
	UserID   string `json:"id"`
}

// Login checks credentials and returns a signed token.
// Every failure collapses into ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, username, password string) (LoginResult, error) {
	if username == "" || password == "" {
		return LoginResult{}, ErrInvalidCredentials
	}

	u, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return LoginResult{}, err
	}
	if u == nil {
		return LoginResult{}, ErrInvalidCredentials
	}

	if err := verifyPassword(u.PasswordHash, password); err != nil {
		return LoginResult{}, ErrInvalidCredentials
	}

	token, err := s.issueToken(u.ID, u.Username)
	if err != nil {
		return LoginResult{}, err
	}
	return LoginResult{Token: token, Username: u.Username, Name: u.Name}, nil
}

// Identify resolves a raw bearer token. An empty token is anonymous.
func (s *AuthService) Identify(ctx context.Context, token string) (Identity, error) {
	if token == "" {
		return Anonymous(), nil
	}

	claims, err := s.ParseToken(token)
	if err != nil {
		return Anonymous(), ErrInvalidToken
	}

	u, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		return Anonymous(), err
	}
	if u == nil {
		return Anonymous(), ErrInvalidToken
	}
	return Authenticated(*u), nil
}

// ParseToken verifies signature and expiry and returns the claims.
func (s *AuthService) ParseToken(accessToken string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(accessToken, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		// Ensure HMAC signing is used
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.UserID == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

func (s *AuthService) issueToken(userID, username string) (string, error) {
	now := s.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		Username: username,
		UserID:   userID,
	})
	return token.SignedString(s.secret)
}

// helper: hash password safely
func hashPassword(password string) (string, error) {
	if strings.TrimSpace(password) == "" {
		return "", errors.New("password is empty")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

func verifyPassword(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}
