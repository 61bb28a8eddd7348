// Package services – PostService
//
// This file implements the PostService, which manages the lifecycle of posts.
// Reads are public; writes are scoped to the authoring user. Missing or
// foreign posts surface as UnknownPostError so handlers echo the offending id
// back to the caller.
package services

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/mkarlsen/go-posts-backend/internal/domain"
	"github.com/mkarlsen/go-posts-backend/internal/repo"
)

// PostRepo defines the repository contract required by PostService.
type PostRepo interface {
	// CreatePost inserts a new post authored by userID.
	CreatePost(ctx context.Context, db *gorm.DB, userID, title, content string) (*domain.Post, error)

	// CountPosts returns the total number of posts for pagination.
	CountPosts(ctx context.Context, db *gorm.DB) (int64, error)

	// ListPostsPage returns a page of posts from every user.
	ListPostsPage(ctx context.Context, db *gorm.DB, offset, limit int) ([]domain.Post, error)

	// CountUserPosts returns the number of posts authored by userID.
	CountUserPosts(ctx context.Context, db *gorm.DB, userID string) (int64, error)

	// ListUserPostsPage returns a page of posts authored by userID.
	ListUserPostsPage(ctx context.Context, db *gorm.DB, userID string, offset, limit int) ([]domain.Post, error)

	// GetPost fetches a post by id with no ownership filter.
	GetPost(ctx context.Context, db *gorm.DB, id string) (*domain.Post, error)

	// UpdatePost applies a partial update to a post owned by userID.
	UpdatePost(ctx context.Context, db *gorm.DB, id, userID string, title, content *string) (*domain.Post, error)

	// DeletePost removes a post by id, enforcing ownership.
	DeletePost(ctx context.Context, db *gorm.DB, id, userID string) error
}

// PostService provides post-level operations: creating, listing with
// pagination, fetching, updating, and deleting.
type PostService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB
	// Repo is the post repository used by this service.
	Repo PostRepo
}

// NewPostService constructs a PostService over the given handle and repo.
func NewPostService(db *gorm.DB, r PostRepo) *PostService {
	return &PostService{DB: db, Repo: r}
}

// Create inserts a new post authored by userID.
func (s *PostService) Create(ctx context.Context, userID, title, content string) (*domain.Post, error) {
	return s.Repo.CreatePost(ctx, s.DB, userID, title, content)
}

// ListPage returns one page of the public feed plus the total count.
func (s *PostService) ListPage(ctx context.Context, page, size int) ([]domain.Post, int64, error) {
	total, err := s.Repo.CountPosts(ctx, s.DB)
	if err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []domain.Post{}, 0, nil
	}
	items, err := s.Repo.ListPostsPage(ctx, s.DB, (page-1)*size, size)
	return items, total, err
}

// ListMinePage returns one page of the caller's own posts plus their total.
func (s *PostService) ListMinePage(ctx context.Context, userID string, page, size int) ([]domain.Post, int64, error) {
	total, err := s.Repo.CountUserPosts(ctx, s.DB, userID)
	if err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []domain.Post{}, 0, nil
	}
	items, err := s.Repo.ListUserPostsPage(ctx, s.DB, userID, (page-1)*size, size)
	return items, total, err
}

// Get fetches a post by id. Returns UnknownPostError when it does not exist.
func (s *PostService) Get(ctx context.Context, id string) (*domain.Post, error) {
	p, err := s.Repo.GetPost(ctx, s.DB, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, UnknownPostError{ID: id}
		}
		return nil, err
	}
	return p, nil
}

// Update applies a partial update to a post owned by userID. Returns
// UnknownPostError when the post is missing or owned by someone else.
func (s *PostService) Update(ctx context.Context, id, userID string, title, content *string) (*domain.Post, error) {
	p, err := s.Repo.UpdatePost(ctx, s.DB, id, userID, title, content)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, UnknownPostError{ID: id}
		}
		return nil, err
	}
	return p, nil
}

// Delete removes a post owned by userID. Returns UnknownPostError when the
// post is missing or owned by someone else.
func (s *PostService) Delete(ctx context.Context, id, userID string) error {
	err := s.Repo.DeletePost(ctx, s.DB, id, userID)
	if errors.Is(err, repo.ErrNotFound) {
		return UnknownPostError{ID: id}
	}
	return err
}
