// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the User model.
//
// All functions are context-aware and accept a *gorm.DB handle, making them
// safe for use within transactions or connection-scoped operations. They
// follow the "thin repository" approach: no business logic, only CRUD
// persistence and query composition.
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mkarlsen/go-posts-backend/internal/domain"
)

// CreateUser inserts a new user row. The caller supplies the id (it doubles
// as the password hash salt, so it must exist before hashing) and the
// already-hashed password. Unique-constraint failures are classified into
// ErrEmailTaken / ErrUsernameTaken.
func CreateUser(ctx context.Context, db *gorm.DB, id, email, username string, password []byte) (*domain.User, error) {
	u := &domain.User{
		ID:        id,
		Email:     email,
		Username:  username,
		Password:  password,
		CreatedAt: time.Now().UTC(),
	}
	if err := db.WithContext(ctx).Create(u).Error; err != nil {
		return nil, classifyConflict(err)
	}
	return u, nil
}

// GetUserByEmail fetches a user by email address, or ErrNotFound.
func GetUserByEmail(ctx context.Context, db *gorm.DB, email string) (*domain.User, error) {
	var u domain.User
	if err := db.WithContext(ctx).Where("email = ?", email).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

// GetUserByID fetches a user by id, or ErrNotFound.
func GetUserByID(ctx context.Context, db *gorm.DB, id string) (*domain.User, error) {
	var u domain.User
	if err := db.WithContext(ctx).Where("id = ?", id).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

// UpdateUser applies the non-nil fields to the user row and returns the
// updated record. Passing no fields is a plain fetch. Unique-constraint
// failures are classified like CreateUser's.
func UpdateUser(ctx context.Context, db *gorm.DB, id string, email, username *string) (*domain.User, error) {
	updates := map[string]any{}
	if email != nil {
		updates["email"] = *email
	}
	if username != nil {
		updates["username"] = *username
	}

	if len(updates) > 0 {
		res := db.WithContext(ctx).
			Model(&domain.User{}).
			Where("id = ?", id).
			Updates(updates)
		if res.Error != nil {
			return nil, classifyConflict(res.Error)
		}
		if res.RowsAffected == 0 {
			return nil, ErrNotFound
		}
	}
	return GetUserByID(ctx, db, id)
}

// DeleteUser removes a user row. Sessions, API keys, and posts cascade away
// with it. Returns ErrNotFound when no row matched.
func DeleteUser(ctx context.Context, db *gorm.DB, id string) error {
	res := db.WithContext(ctx).Where("id = ?", id).Delete(&domain.User{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// NewID returns a fresh random identifier in the canonical UUID string form
// used for all primary keys.
func NewID() string { return uuid.NewString() }
