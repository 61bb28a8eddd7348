// Package services – KeyService
//
// This file implements the KeyService, which manages issued API keys. Every
// operation is scoped to the owning user; a key that exists but belongs to
// someone else is indistinguishable from one that never existed.
package services

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/mkarlsen/go-posts-backend/internal/domain"
	"github.com/mkarlsen/go-posts-backend/internal/repo"
)

// KeyRepo defines the repository contract required by KeyService.
type KeyRepo interface {
	// CreateKey issues a new API key for the user.
	CreateKey(ctx context.Context, db *gorm.DB, userID string) (*domain.APIKey, error)

	// CountKeys returns the total number of keys for pagination.
	CountKeys(ctx context.Context, db *gorm.DB, userID string) (int64, error)

	// ListKeysPage returns a page of the user's keys.
	ListKeysPage(ctx context.Context, db *gorm.DB, userID string, offset, limit int) ([]domain.APIKey, error)

	// GetKey fetches a key by id, enforcing ownership.
	GetKey(ctx context.Context, db *gorm.DB, id, userID string) (*domain.APIKey, error)

	// DeleteKey removes a key by id, enforcing ownership.
	DeleteKey(ctx context.Context, db *gorm.DB, id, userID string) error
}

// KeyService provides API key operations: issuing, listing with pagination,
// fetching, and revoking.
type KeyService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB
	// Repo is the key repository used by this service.
	Repo KeyRepo
}

// NewKeyService constructs a KeyService over the given handle and repo.
func NewKeyService(db *gorm.DB, r KeyRepo) *KeyService {
	return &KeyService{DB: db, Repo: r}
}

// Create issues a new API key for userID.
func (s *KeyService) Create(ctx context.Context, userID string) (*domain.APIKey, error) {
	return s.Repo.CreateKey(ctx, s.DB, userID)
}

// ListPage returns one page of the user's keys plus the total count.
func (s *KeyService) ListPage(ctx context.Context, userID string, page, size int) ([]domain.APIKey, int64, error) {
	total, err := s.Repo.CountKeys(ctx, s.DB, userID)
	if err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []domain.APIKey{}, 0, nil
	}
	items, err := s.Repo.ListKeysPage(ctx, s.DB, userID, (page-1)*size, size)
	return items, total, err
}

// Get fetches one of the user's keys by id. Returns UnknownKeyError when the
// key is missing or owned by someone else.
func (s *KeyService) Get(ctx context.Context, id, userID string) (*domain.APIKey, error) {
	k, err := s.Repo.GetKey(ctx, s.DB, id, userID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, UnknownKeyError{ID: id}
		}
		return nil, err
	}
	return k, nil
}

// Delete revokes one of the user's keys. Returns UnknownKeyError when the key
// is missing or owned by someone else.
func (s *KeyService) Delete(ctx context.Context, id, userID string) error {
	err := s.Repo.DeleteKey(ctx, s.DB, id, userID)
	if errors.Is(err, repo.ErrNotFound) {
		return UnknownKeyError{ID: id}
	}
	return err
}
