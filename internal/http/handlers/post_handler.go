// Post HTTP handlers.
//
// This file exposes REST endpoints for post resources:
//   - GET    /posts       (public feed, paginated)
//   - GET    /posts/me    (caller's posts, paginated)
//   - POST   /posts       (create)
//   - GET    /posts/:id   (fetch)
//   - PUT    /posts/:id   (partial update, owner only)
//   - DELETE /posts/:id   (delete, owner only)
//
// Reads of the feed and of individual posts are public; everything else
// requires an authenticated identity.
package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mkarlsen/go-posts-backend/internal/domain"
	"github.com/mkarlsen/go-posts-backend/internal/http/extract"
	"github.com/mkarlsen/go-posts-backend/internal/http/middleware"
	"github.com/mkarlsen/go-posts-backend/internal/services"
)

// PostService defines the post operations consumed by HTTP handlers.
//
// Implementations should be safe for concurrent use and must honor the
// provided context for cancellation and timeouts.
type PostService interface {
	// Create inserts a new post authored by userID.
	Create(ctx context.Context, userID, title, content string) (*domain.Post, error)
	// ListPage returns a page of the public feed and the total count.
	ListPage(ctx context.Context, page, size int) ([]domain.Post, int64, error)
	// ListMinePage returns a page of the user's posts and their total.
	ListMinePage(ctx context.Context, userID string, page, size int) ([]domain.Post, int64, error)
	// Get fetches a post by id.
	Get(ctx context.Context, id string) (*domain.Post, error)
	// Update applies a partial update to a post owned by userID.
	Update(ctx context.Context, id, userID string, title, content *string) (*domain.Post, error)
	// Delete removes a post owned by userID.
	Delete(ctx context.Context, id, userID string) error
}

// PostHandlers groups the post endpoints.
type PostHandlers struct {
	svc PostService
}

// NewPostHandlers constructs a PostHandlers bound to the given service.
func NewPostHandlers(svc PostService) *PostHandlers {
	return &PostHandlers{svc: svc}
}

//
// DTOs
//

// CreatePostInput is the JSON payload for creating a post.
type CreatePostInput struct {
	// Title is 3–128 characters.
	Title string `json:"title" validate:"required,min=3,max=128" example:"On the Analytical Engine"`
	// Content is the post body; may be empty.
	Content string `json:"content" example:"The engine weaves algebraic patterns."`
}

// UpdatePostInput is the JSON payload for a partial post update. Absent
// fields are left unchanged.
type UpdatePostInput struct {
	Title   *string `json:"title" validate:"omitempty,min=3,max=128" example:"On the Analytical Engine, revised"`
	Content *string `json:"content" example:"The engine weaves algebraic patterns, amended."`
}

// Pagination carries pagination metadata for list responses.
type Pagination struct {
	Page       int   `json:"page"`
	Size       int   `json:"size"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
	HasNext    bool  `json:"has_next"`
}

// paginationFor derives the response metadata from the request page and the
// total row count.
func paginationFor(p extract.Paginate, total int64) Pagination {
	totalPages := int((total + int64(p.Size) - 1) / int64(p.Size))
	return Pagination{
		Page:       p.Page,
		Size:       p.Size,
		Total:      total,
		TotalPages: totalPages,
		HasNext:    p.Page < totalPages,
	}
}

// ListPostsResponse wraps a page of posts and pagination information.
type ListPostsResponse struct {
	Posts      []domain.Post `json:"posts"`
	Pagination Pagination    `json:"pagination"`
}

//
// Handlers
//

// ListPosts godoc
// @ID          listPosts
// @Summary     List posts (paginated)
// @Description Returns a page of the public feed, newest first.
// @Tags        Posts
// @Produce     json
//
// @Param       page  query  int  false  "Page number"     minimum(1) maximum(100) default(1)
// @Param       size  query  int  false  "Items per page"  minimum(1) maximum(100) default(10)
//
// @Success     200  {object}  handlers.ListPostsResponse
// @Failure     400  {object}  handlers.ErrorEnvelope  "Invalid pagination"
// @Failure     500  {object}  handlers.ErrorEnvelope  "Internal error"
// @Router      /posts [get]
func (h *PostHandlers) ListPosts(c *gin.Context) {
	p, err := extract.Query[extract.Paginate](c)
	if err != nil {
		failure[services.UnknownPostError](c, err)
		return
	}

	items, total, err := h.svc.ListPage(c.Request.Context(), p.Page, p.Size)
	if err != nil {
		failure[services.UnknownPostError](c, err)
		return
	}
	ok(c, http.StatusOK, ListPostsResponse{Posts: items, Pagination: paginationFor(p, total)})
}

// ListMyPosts godoc
// @ID          listMyPosts
// @Summary     List the caller's posts (paginated)
// @Description Returns a page of the authenticated caller's own posts, newest first.
// @Tags        Posts
// @Produce     json
//
// @Param       page  query  int  false  "Page number"     minimum(1) maximum(100) default(1)
// @Param       size  query  int  false  "Items per page"  minimum(1) maximum(100) default(10)
//
// @Success     200  {object}  handlers.ListPostsResponse
// @Failure     400  {object}  handlers.ErrorEnvelope  "Invalid pagination"
// @Failure     401  {object}  handlers.ErrorEnvelope  "Not authenticated"
// @Failure     500  {object}  handlers.ErrorEnvelope  "Internal error"
// @Router      /posts/me [get]
func (h *PostHandlers) ListMyPosts(c *gin.Context) {
	id, okID := middleware.IdentityFrom(c)
	if !okID {
		failure[services.AuthError](c, services.ErrAuthenticationRequired)
		return
	}

	p, err := extract.Query[extract.Paginate](c)
	if err != nil {
		failure[services.UnknownPostError](c, err)
		return
	}

	items, total, err := h.svc.ListMinePage(c.Request.Context(), id.User.ID, p.Page, p.Size)
	if err != nil {
		failure[services.UnknownPostError](c, err)
		return
	}
	ok(c, http.StatusOK, ListPostsResponse{Posts: items, Pagination: paginationFor(p, total)})
}

// CreatePost godoc
// @ID          createPost
// @Summary     Create a post
// @Description Creates a post authored by the caller.
// @Tags        Posts
// @Accept      json
// @Produce     json
//
// @Param       body  body  handlers.CreatePostInput  true  "Create post payload"
//
// @Success     201  {object}  domain.Post
// @Failure     400  {object}  handlers.ErrorEnvelope  "Malformed body or validation failure"
// @Failure     401  {object}  handlers.ErrorEnvelope  "Not authenticated"
// @Failure     500  {object}  handlers.ErrorEnvelope  "Internal error"
// @Router      /posts [post]
func (h *PostHandlers) CreatePost(c *gin.Context) {
	id, okID := middleware.IdentityFrom(c)
	if !okID {
		failure[services.AuthError](c, services.ErrAuthenticationRequired)
		return
	}

	in, err := extract.JSON[CreatePostInput](c)
	if err != nil {
		failure[services.UnknownPostError](c, err)
		return
	}

	post, err := h.svc.Create(c.Request.Context(), id.User.ID, in.Title, in.Content)
	if err != nil {
		failure[services.UnknownPostError](c, err)
		return
	}
	ok(c, http.StatusCreated, post)
}

// GetPost godoc
// @ID          getPost
// @Summary     Fetch a post
// @Description Returns a single post by id.
// @Tags        Posts
// @Produce     json
//
// @Param       id  path  string  true  "Post ID"  format(uuid)
//
// @Success     200  {object}  domain.Post
// @Failure     400  {object}  handlers.ErrorEnvelope  "Invalid id"
// @Failure     404  {object}  handlers.ErrorEnvelope  "Post not found"
// @Failure     500  {object}  handlers.ErrorEnvelope  "Internal error"
// @Router      /posts/{id} [get]
func (h *PostHandlers) GetPost(c *gin.Context) {
	postID, err := extract.ID(c, "id")
	if err != nil {
		failure[services.UnknownPostError](c, err)
		return
	}

	post, err := h.svc.Get(c.Request.Context(), postID)
	if err != nil {
		failure[services.UnknownPostError](c, err)
		return
	}
	ok(c, http.StatusOK, post)
}

// UpdatePost godoc
// @ID          updatePost
// @Summary     Update a post
// @Description Applies a partial update to one of the caller's posts. Omitted fields are unchanged.
// @Tags        Posts
// @Accept      json
// @Produce     json
//
// @Param       id    path  string                    true  "Post ID"  format(uuid)
// @Param       body  body  handlers.UpdatePostInput  true  "Update post payload"
//
// @Success     200  {object}  domain.Post
// @Failure     400  {object}  handlers.ErrorEnvelope  "Malformed body or validation failure"
// @Failure     401  {object}  handlers.ErrorEnvelope  "Not authenticated"
// @Failure     404  {object}  handlers.ErrorEnvelope  "Post not found or not owned by caller"
// @Failure     500  {object}  handlers.ErrorEnvelope  "Internal error"
// @Router      /posts/{id} [put]
func (h *PostHandlers) UpdatePost(c *gin.Context) {
	id, okID := middleware.IdentityFrom(c)
	if !okID {
		failure[services.AuthError](c, services.ErrAuthenticationRequired)
		return
	}

	postID, err := extract.ID(c, "id")
	if err != nil {
		failure[services.UnknownPostError](c, err)
		return
	}

	in, err := extract.JSON[UpdatePostInput](c)
	if err != nil {
		failure[services.UnknownPostError](c, err)
		return
	}

	post, err := h.svc.Update(c.Request.Context(), postID, id.User.ID, in.Title, in.Content)
	if err != nil {
		failure[services.UnknownPostError](c, err)
		return
	}
	ok(c, http.StatusOK, post)
}

// DeletePost godoc
// @ID          deletePost
// @Summary     Delete a post
// @Description Deletes one of the caller's posts.
// @Tags        Posts
// @Produce     json
//
// @Param       id  path  string  true  "Post ID"  format(uuid)
//
// @Success     204  {string}  string  "Post deleted"
// @Failure     400  {object}  handlers.ErrorEnvelope  "Invalid id"
// @Failure     401  {object}  handlers.ErrorEnvelope  "Not authenticated"
// @Failure     404  {object}  handlers.ErrorEnvelope  "Post not found or not owned by caller"
// @Failure     500  {object}  handlers.ErrorEnvelope  "Internal error"
// @Router      /posts/{id} [delete]
func (h *PostHandlers) DeletePost(c *gin.Context) {
	id, okID := middleware.IdentityFrom(c)
	if !okID {
		failure[services.AuthError](c, services.ErrAuthenticationRequired)
		return
	}

	postID, err := extract.ID(c, "id")
	if err != nil {
		failure[services.UnknownPostError](c, err)
		return
	}

	if err := h.svc.Delete(c.Request.Context(), postID, id.User.ID); err != nil {
		failure[services.UnknownPostError](c, err)
		return
	}
	noContent(c)
}
