// Package middleware – authentication
//
// This file resolves the caller's identity from either an API key bearer
// token or a session cookie. When both credentials are present the API key
// wins and the cookie is never consulted, so a stale cookie cannot shadow a
// deliberate key-based request.
package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mkarlsen/go-posts-backend/internal/apperr"
	"github.com/mkarlsen/go-posts-backend/internal/domain"
	"github.com/mkarlsen/go-posts-backend/internal/repo"
	"github.com/mkarlsen/go-posts-backend/internal/services"
)

const (
	// SessionCookie is the cookie carrying the session id.
	SessionCookie = "session"
	// bearerPrefix is the scheme expected on the Authorization header.
	bearerPrefix = "Bearer "
	// identityKey is the Gin context key under which the Identity is stored.
	identityKey = "identity"
	// sessionCookieMaxAge keeps the cookie alive for 30 days.
	sessionCookieMaxAge = 30 * 24 * 60 * 60
)

// IdentitySource distinguishes how the caller authenticated.
type IdentitySource int

const (
	// SourceSession means the caller presented a session cookie.
	SourceSession IdentitySource = iota
	// SourceAPIKey means the caller presented a bearer API key.
	SourceAPIKey
)

// Identity is the resolved caller: the authenticated user plus the credential
// that proved it. TokenID is the session id or the key id depending on Source,
// which lets logout revoke exactly the credential that was used.
type Identity struct {
	Source  IdentitySource
	TokenID string
	User    *domain.User
}

// RequireIdentity authenticates the request or aborts with the standard error
// envelope. Resolution order:
//
//  1. Any Authorization header. A non-Bearer scheme, malformed key, or
//     unknown key is a 401 (invalid_api_key) even when a valid session
//     cookie is also present.
//  2. The session cookie. Unknown sessions are a 401 (invalid_session_cookie).
//  3. Neither credential: 401 (authentication_required).
//
// On success the Identity is stored in the Gin context and the user id is
// exposed for access logging.
func RequireIdentity(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		if h := c.GetHeader("Authorization"); h != "" {
			raw, ok := bearerToken(h)
			if !ok {
				apperr.Respond(c, services.ErrInvalidAPIKey)
				return
			}
			authenticateKey(c, db, raw)
			return
		}
		if sid, err := c.Cookie(SessionCookie); err == nil {
			authenticateSession(c, db, sid)
			return
		}
		apperr.Respond(c, services.ErrAuthenticationRequired)
	}
}

// bearerToken extracts the token from an Authorization header value. A
// header using any other scheme reports !ok so the caller can reject it.
func bearerToken(h string) (string, bool) {
	if !strings.HasPrefix(h, bearerPrefix) {
		return "", false
	}
	return strings.TrimSpace(strings.TrimPrefix(h, bearerPrefix)), true
}

func authenticateKey(c *gin.Context, db *gorm.DB, raw string) {
	id, err := uuid.Parse(raw)
	if err != nil {
		apperr.Respond(c, services.ErrInvalidAPIKey)
		return
	}
	user, err := repo.GetKeyUser(c.Request.Context(), db, id.String())
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			apperr.Respond(c, services.ErrInvalidAPIKey)
			return
		}
		apperr.Fail(c, err)
		return
	}
	setIdentity(c, Identity{Source: SourceAPIKey, TokenID: id.String(), User: user})
}

func authenticateSession(c *gin.Context, db *gorm.DB, sid string) {
	id, err := uuid.Parse(sid)
	if err != nil {
		apperr.Respond(c, services.ErrInvalidSessionCookie)
		return
	}
	user, err := repo.GetSessionUser(c.Request.Context(), db, id.String())
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			apperr.Respond(c, services.ErrInvalidSessionCookie)
			return
		}
		apperr.Fail(c, err)
		return
	}
	setIdentity(c, Identity{Source: SourceSession, TokenID: id.String(), User: user})
}

func setIdentity(c *gin.Context, id Identity) {
	c.Set(identityKey, id)
	c.Set("userID", id.User.ID)
	c.Next()
}

// IdentityFrom returns the Identity resolved by RequireIdentity.
func IdentityFrom(c *gin.Context) (Identity, bool) {
	v, ok := c.Get(identityKey)
	if !ok {
		return Identity{}, false
	}
	id, ok := v.(Identity)
	return id, ok
}

// NewSessionCookie writes the session cookie on the response.
func NewSessionCookie(c *gin.Context, sessionID string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookie, sessionID, sessionCookieMaxAge, "/", "", false, true)
}

// ClearSessionCookie expires the session cookie.
func ClearSessionCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookie, "", -1, "/", "", false, true)
}
