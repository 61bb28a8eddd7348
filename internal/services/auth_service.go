// Package services – AuthService
//
// This file implements the AuthService, which owns account lifecycle and
// credential verification: registration, login, logout, profile updates, and
// account deletion. Passwords are hashed with Argon2id using the account id
// as salt, so hashes can be verified without a separate salt column.
//
// Service-level failures (AuthError values) carry their own HTTP shape so the
// handler layer can surface them without per-error mapping.
package services

import (
	"context"
	"crypto/subtle"
	"errors"

	"golang.org/x/crypto/argon2"
	"golang.org/x/text/cases"
	"gorm.io/gorm"

	"github.com/mkarlsen/go-posts-backend/internal/domain"
	"github.com/mkarlsen/go-posts-backend/internal/repo"
)

// Argon2id parameters. These match the library defaults recommended for
// interactive login.
const (
	argonTime    = 1
	argonMemory  = 64 * 1024
	argonThreads = 4
	argonKeyLen  = 32
)

// UserRepo defines the repository contract required by AuthService for
// account rows.
type UserRepo interface {
	// CreateUser inserts a new user with a caller-supplied id and pre-hashed
	// password.
	CreateUser(ctx context.Context, db *gorm.DB, id, email, username string, password []byte) (*domain.User, error)

	// GetUserByEmail fetches a user by email for credential checks.
	GetUserByEmail(ctx context.Context, db *gorm.DB, email string) (*domain.User, error)

	// GetUserByID fetches a user by primary key.
	GetUserByID(ctx context.Context, db *gorm.DB, id string) (*domain.User, error)

	// UpdateUser applies a partial profile update; nil fields are untouched.
	UpdateUser(ctx context.Context, db *gorm.DB, id string, email, username *string) (*domain.User, error)

	// DeleteUser removes the account row; sessions and keys cascade.
	DeleteUser(ctx context.Context, db *gorm.DB, id string) error
}

// SessionRepo defines the repository contract required by AuthService for
// session rows.
type SessionRepo interface {
	// CreateSession inserts a new session for the user.
	CreateSession(ctx context.Context, db *gorm.DB, userID string) (*domain.Session, error)

	// DeleteSession removes a session by id.
	DeleteSession(ctx context.Context, db *gorm.DB, id string) error
}

// KeyRevoker is the slice of the key repository AuthService needs to log out
// an API-key identity.
type KeyRevoker interface {
	// DeleteKey removes an API key by id, enforcing ownership.
	DeleteKey(ctx context.Context, db *gorm.DB, id, userID string) error
}

// AuthService provides account-level operations: register, login, logout,
// profile update, and deletion.
type AuthService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB
	// Users is the account repository used by this service.
	Users UserRepo
	// Sessions is the session repository used by this service.
	Sessions SessionRepo
	// Keys revokes API keys when logout is invoked with a key identity.
	Keys KeyRevoker

	// FoldUniques, when true, stores emails and usernames case-folded so
	// uniqueness checks ignore letter case.
	FoldUniques bool
}

// NewAuthService constructs an AuthService over the given handle and repos.
func NewAuthService(db *gorm.DB, users UserRepo, sessions SessionRepo, keys KeyRevoker) *AuthService {
	return &AuthService{DB: db, Users: users, Sessions: sessions, Keys: keys}
}

// Register creates a new account and an initial session in one transaction.
// Returns ErrEmailTaken or ErrUsernameTaken on uniqueness conflicts.
func (s *AuthService) Register(ctx context.Context, email, username, password string) (*domain.User, *domain.Session, error) {
	email = s.normalize(email)
	username = s.normalize(username)

	id := repo.NewID()
	hash := hashPassword(id, password)

	var (
		user *domain.User
		sess *domain.Session
	)
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		user, err = s.Users.CreateUser(ctx, tx, id, email, username, hash)
		if err != nil {
			return err
		}
		sess, err = s.Sessions.CreateSession(ctx, tx, user.ID)
		return err
	})
	if err != nil {
		return nil, nil, mapConflict(err)
	}
	return user, sess, nil
}

// Login verifies the credentials and opens a new session. Unknown emails and
// wrong passwords both return ErrInvalidCredentials; a dummy hash is computed
// for unknown emails so both paths take comparable time.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, *domain.Session, error) {
	email = s.normalize(email)

	user, err := s.Users.GetUserByEmail(ctx, s.DB, email)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			hashPassword(dummySalt, password)
			return nil, nil, ErrInvalidCredentials
		}
		return nil, nil, err
	}
	if !verifyPassword(user.ID, password, user.Password) {
		return nil, nil, ErrInvalidCredentials
	}

	sess, err := s.Sessions.CreateSession(ctx, s.DB, user.ID)
	if err != nil {
		return nil, nil, err
	}
	return user, sess, nil
}

// LogoutSession ends a cookie-based login by deleting its session row.
// A session that is already gone is treated as logged out.
func (s *AuthService) LogoutSession(ctx context.Context, sessionID string) error {
	err := s.Sessions.DeleteSession(ctx, s.DB, sessionID)
	if errors.Is(err, repo.ErrNotFound) {
		return nil
	}
	return err
}

// LogoutAPIKey ends a key-based login by revoking the key itself. A key that
// is already gone is treated as logged out.
func (s *AuthService) LogoutAPIKey(ctx context.Context, keyID, userID string) error {
	err := s.Keys.DeleteKey(ctx, s.DB, keyID, userID)
	if errors.Is(err, repo.ErrNotFound) {
		return nil
	}
	return err
}

// Me returns the current account row.
func (s *AuthService) Me(ctx context.Context, userID string) (*domain.User, error) {
	return s.Users.GetUserByID(ctx, s.DB, userID)
}

// UpdateMe applies a partial profile update. Returns ErrEmailTaken or
// ErrUsernameTaken on uniqueness conflicts.
func (s *AuthService) UpdateMe(ctx context.Context, userID string, email, username *string) (*domain.User, error) {
	if email != nil {
		e := s.normalize(*email)
		email = &e
	}
	if username != nil {
		u := s.normalize(*username)
		username = &u
	}
	user, err := s.Users.UpdateUser(ctx, s.DB, userID, email, username)
	if err != nil {
		return nil, mapConflict(err)
	}
	return user, nil
}

// DeleteMe removes the account. Sessions, keys, and posts cascade at the
// database level.
func (s *AuthService) DeleteMe(ctx context.Context, userID string) error {
	return s.Users.DeleteUser(ctx, s.DB, userID)
}

// normalize case-folds uniqueness-bearing fields when FoldUniques is set.
func (s *AuthService) normalize(v string) string {
	if s.FoldUniques {
		return cases.Fold().String(v)
	}
	return v
}

// mapConflict translates repository uniqueness errors to their service-level
// shapes, passing everything else through.
func mapConflict(err error) error {
	switch {
	case errors.Is(err, repo.ErrEmailTaken):
		return ErrEmailTaken
	case errors.Is(err, repo.ErrUsernameTaken):
		return ErrUsernameTaken
	default:
		return err
	}
}

// dummySalt keeps the login failure path doing real Argon2 work even when no
// account matched the email.
const dummySalt = "00000000-0000-0000-0000-000000000000"

// hashPassword derives an Argon2id hash of the password, salted with the
// account id.
func hashPassword(userID, password string) []byte {
	return argon2.IDKey([]byte(password), []byte(userID), argonTime, argonMemory, argonThreads, argonKeyLen)
}

// verifyPassword re-derives the hash and compares in constant time.
func verifyPassword(userID, password string, stored []byte) bool {
	candidate := hashPassword(userID, password)
	return subtle.ConstantTimeCompare(candidate, stored) == 1
}
