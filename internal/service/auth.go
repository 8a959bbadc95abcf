package service

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/mtslabs/mts/internal/model"
	"github.com/mtslabs/mts/internal/store"
)

const adminUserName = "admin"

// Claims is the JWT payload. Subject carries the user id.
type Claims struct {
	IsAdmin bool `json:"isAdmin"`
	jwt.RegisteredClaims
}

// UserID returns the parsed subject.
func (c *Claims) UserID() (uuid.UUID, error) {
	return uuid.Parse(c.Subject)
}

// NewAuthService creates a new AuthService.
func NewAuthService(store store.Store, secret string, tokenTTL time.Duration) *AuthService {
	return &AuthService{
		store:    store,
		secret:   []byte(secret),
		tokenTTL: tokenTTL,
	}
}

// AuthService manages users and issues HS256 tokens.
type AuthService struct {
	store    store.Store
	secret   []byte
	tokenTTL time.Duration
}

// Login verifies the password and issues a token. Unknown names and wrong
// passwords are indistinguishable to the caller.
func (a *AuthService) Login(ctx context.Context, name, pass string) (string, *model.User, error) {
	user, err := a.store.GetUserByName(ctx, name)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", nil, ErrWrongPassword
		}
		return "", nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Hash), []byte(pass)); err != nil {
		return "", nil, ErrWrongPassword
	}

	token, err := a.issueToken(user)
	if err != nil {
		return "", nil, err
	}

	return token, user, nil
}

// CreateUser creates a user with a bcrypt password hash.
func (a *AuthService) CreateUser(ctx context.Context, name, pass string, isAdmin bool) (*model.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(pass), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		ID:      uuid.New(),
		Name:    name,
		Hash:    string(hash),
		IsAdmin: isAdmin,
	}

	if err := a.store.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// EnsureAdmin bootstraps the admin account from INIT_PASS on startup. A noop
// when the account exists or no password is configured.
func (a *AuthService) EnsureAdmin(ctx context.Context, pass string) error {
	if pass == "" {
		logrus.Warn("INIT_PASS not set, skipping admin bootstrap")
		return nil
	}

	_, err := a.store.GetUserByName(ctx, adminUserName)
	if err == nil {
		return nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return err
	}

	_, err = a.CreateUser(ctx, adminUserName, pass, true)
	if err != nil {
		return err
	}

	logrus.Info("created admin user")

	return nil
}

// VerifyToken parses and validates a token string.
func (a *AuthService) VerifyToken(tokenString string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return a.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	if _, err := claims.UserID(); err != nil {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

func (a *AuthService) issueToken(user *model.User) (string, error) {
	now := time.Now()
	claims := &Claims{
		IsAdmin: user.IsAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(a.tokenTTL)),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.secret)
}
