// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for sessions.
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mkarlsen/go-posts-backend/internal/domain"
)

// CreateSession inserts a new session row for userID with a random UUID id
// and returns it.
func CreateSession(ctx context.Context, db *gorm.DB, userID string) (*domain.Session, error) {
	s := &domain.Session{
		ID:        uuid.NewString(),
		UserID:    userID,
		CreatedAt: time.Now().UTC(),
	}
	if err := db.WithContext(ctx).Create(s).Error; err != nil {
		return nil, err
	}
	return s, nil
}

// GetSessionUser resolves a session id to its owning user, or ErrNotFound
// when the session does not exist.
func GetSessionUser(ctx context.Context, db *gorm.DB, sessionID string) (*domain.User, error) {
	var u domain.User
	err := db.WithContext(ctx).
		Where("id = (?)", db.Model(&domain.Session{}).Select("user_id").Where("id = ?", sessionID)).
		First(&u).Error
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// DeleteSession removes a session row. Returns ErrNotFound when no row
// matched, which callers may treat as an already-expired login.
func DeleteSession(ctx context.Context, db *gorm.DB, sessionID string) error {
	res := db.WithContext(ctx).Where("id = ?", sessionID).Delete(&domain.Session{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
