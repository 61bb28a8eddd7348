// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for API keys.
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mkarlsen/go-posts-backend/internal/domain"
)

// CreateKey inserts a new API key owned by userID. The random UUID id is
// the credential itself.
func CreateKey(ctx context.Context, db *gorm.DB, userID string) (*domain.APIKey, error) {
	k := &domain.APIKey{
		ID:        uuid.NewString(),
		UserID:    userID,
		CreatedAt: time.Now().UTC(),
	}
	if err := db.WithContext(ctx).Create(k).Error; err != nil {
		return nil, err
	}
	return k, nil
}

// CountKeys returns the total number of API keys owned by userID.
func CountKeys(ctx context.Context, db *gorm.DB, userID string) (int64, error) {
	var total int64
	err := db.WithContext(ctx).
		Model(&domain.APIKey{}).
		Where("user_id = ?", userID).
		Count(&total).Error
	return total, err
}

// ListKeysPage returns a page of userID's API keys, newest first.
func ListKeysPage(ctx context.Context, db *gorm.DB, userID string, offset, limit int) ([]domain.APIKey, error) {
	var out []domain.APIKey
	err := db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at desc").
		Offset(offset).
		Limit(limit).
		Find(&out).Error
	return out, err
}

// GetKey fetches a single API key by id, enforcing ownership. Returns
// ErrNotFound when the key is missing or owned by someone else.
func GetKey(ctx context.Context, db *gorm.DB, id, userID string) (*domain.APIKey, error) {
	var k domain.APIKey
	err := db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&k).Error
	if err != nil {
		return nil, err
	}
	return &k, nil
}

// GetKeyUser resolves an API key id to its owning user, or ErrNotFound when
// the key does not exist.
func GetKeyUser(ctx context.Context, db *gorm.DB, keyID string) (*domain.User, error) {
	var u domain.User
	err := db.WithContext(ctx).
		Where("id = (?)", db.Model(&domain.APIKey{}).Select("user_id").Where("id = ?", keyID)).
		First(&u).Error
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// DeleteKey removes an API key by id, enforcing ownership. Returns
// ErrNotFound when no row matched.
func DeleteKey(ctx context.Context, db *gorm.DB, id, userID string) error {
	res := db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&domain.APIKey{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
