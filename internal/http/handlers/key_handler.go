// API key HTTP handlers.
//
// This file exposes REST endpoints for the caller's API keys:
//   - GET    /keys      (list, paginated)
//   - POST   /keys      (issue)
//   - GET    /keys/:id  (fetch)
//   - DELETE /keys/:id  (revoke)
//
// Every endpoint requires an authenticated identity and operates only on the
// caller's own keys.
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

// KeyService defines the API key operations consumed by HTTP handlers.
//
// Implementations should be safe for concurrent use and must honor the
// provided context for cancellation and timeouts.
type KeyService interface {
	// Create issues a new key for userID.
	Create(ctx context.Context, userID string) (*domain.APIKey, error)
	// ListPage returns a page of the user's keys and the total count.
	ListPage(ctx context.Context, userID string, page, size int) ([]domain.APIKey, int64, error)
	// Get fetches one of the user's keys by id.
	Get(ctx context.Context, id, userID string) (*domain.APIKey, error)
	// Delete revokes one of the user's keys.
	Delete(ctx context.Context, id, userID string) error
}

// KeyHandlers groups the API key endpoints.
type KeyHandlers struct {
	svc KeyService
}

// NewKeyHandlers constructs a KeyHandlers bound to the given service.
func NewKeyHandlers(svc KeyService) *KeyHandlers {
	return &KeyHandlers{svc: svc}
}

// ListKeysResponse wraps a page of API keys and pagination information.
type ListKeysResponse struct {
	Keys       []domain.APIKey `json:"keys"`
	Pagination Pagination      `json:"pagination"`
}

// ListKeys godoc
// @ID          listKeys
// @Summary     List API keys (paginated)
// @Description Returns a page of the caller's API keys, newest first.
// @Tags        Keys
// @Produce     json
//
// @Param       page  query  int  false  "Page number"     minimum(1) maximum(100) default(1)
// @Param       size  query  int  false  "Items per page"  minimum(1) maximum(100) default(10)
//
// @Success     200  {object}  handlers.ListKeysResponse
// @Failure     400  {object}  handlers.ErrorEnvelope  "Invalid pagination"
// @Failure     401  {object}  handlers.ErrorEnvelope  "Not authenticated"
// @Failure     500  {object}  handlers.ErrorEnvelope  "Internal error"
// @Router      /keys [get]
func (h *KeyHandlers) ListKeys(c *gin.Context) {
	id, okID := middleware.IdentityFrom(c)
	if !okID {
		failure[services.AuthError](c, services.ErrAuthenticationRequired)
		return
	}

	p, err := extract.Query[extract.Paginate](c)
	if err != nil {
		failure[services.UnknownKeyError](c, err)
		return
	}

	items, total, err := h.svc.ListPage(c.Request.Context(), id.User.ID, p.Page, p.Size)
	if err != nil {
		failure[services.UnknownKeyError](c, err)
		return
	}
	ok(c, http.StatusOK, ListKeysResponse{Keys: items, Pagination: paginationFor(p, total)})
}

// CreateKey godoc
// @ID          createKey
// @Summary     Issue an API key
// @Description Issues a new API key for the caller. The returned key value is the credential; it is shown in full only here.
// @Tags        Keys
// @Produce     json
//
// @Success     201  {object}  domain.APIKey
// @Failure     401  {object}  handlers.ErrorEnvelope  "Not authenticated"
// @Failure     500  {object}  handlers.ErrorEnvelope  "Internal error"
// @Router      /keys [post]
func (h *KeyHandlers) CreateKey(c *gin.Context) {
	id, okID := middleware.IdentityFrom(c)
	if !okID {
		failure[services.AuthError](c, services.ErrAuthenticationRequired)
		return
	}

	key, err := h.svc.Create(c.Request.Context(), id.User.ID)
	if err != nil {
		failure[services.UnknownKeyError](c, err)
		return
	}
	ok(c, http.StatusCreated, key)
}

// GetKey godoc
// @ID          getKey
// @Summary     Fetch an API key
// @Description Returns one of the caller's API keys by id.
// @Tags        Keys
// @Produce     json
//
// @Param       id  path  string  true  "Key ID"  format(uuid)
//
// @Success     200  {object}  domain.APIKey
// @Failure     400  {object}  handlers.ErrorEnvelope  "Invalid id"
// @Failure     401  {object}  handlers.ErrorEnvelope  "Not authenticated"
// @Failure     404  {object}  handlers.ErrorEnvelope  "Key not found or not owned by caller"
// @Failure     500  {object}  handlers.ErrorEnvelope  "Internal error"
// @Router      /keys/{id} [get]
func (h *KeyHandlers) GetKey(c *gin.Context) {
	id, okID := middleware.IdentityFrom(c)
	if !okID {
		failure[services.AuthError](c, services.ErrAuthenticationRequired)
		return
	}

	keyID, err := extract.ID(c, "id")
	if err != nil {
		failure[services.UnknownKeyError](c, err)
		return
	}

	key, err := h.svc.Get(c.Request.Context(), keyID, id.User.ID)
	if err != nil {
		failure[services.UnknownKeyError](c, err)
		return
	}
	ok(c, http.StatusOK, key)
}

// DeleteKey godoc
// @ID          deleteKey
// @Summary     Revoke an API key
// @Description Revokes one of the caller's API keys. Requests bearing the key fail immediately afterwards.
// @Tags        Keys
// @Produce     json
//
// @Param       id  path  string  true  "Key ID"  format(uuid)
//
// @Success     204  {string}  string  "Key revoked"
// @Failure     400  {object}  handlers.ErrorEnvelope  "Invalid id"
// @Failure     401  {object}  handlers.ErrorEnvelope  "Not authenticated"
// @Failure     404  {object}  handlers.ErrorEnvelope  "Key not found or not owned by caller"
// @Failure     500  {object}  handlers.ErrorEnvelope  "Internal error"
// @Router      /keys/{id} [delete]
func (h *KeyHandlers) DeleteKey(c *gin.Context) {
	id, okID := middleware.IdentityFrom(c)
	if !okID {
		failure[services.AuthError](c, services.ErrAuthenticationRequired)
		return
	}

	keyID, err := extract.ID(c, "id")
	if err != nil {
		failure[services.UnknownKeyError](c, err)
		return
	}

	if err := h.svc.Delete(c.Request.Context(), keyID, id.User.ID); err != nil {
		failure[services.UnknownKeyError](c, err)
		return
	}
	noContent(c)
}
