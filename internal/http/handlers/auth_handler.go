// Account HTTP handlers.
//
// This file exposes REST endpoints for registration, login, logout, and the
// current-account resource:
//   - POST   /auth/register  (create account + session)
//   - POST   /auth/login     (verify credentials + open session)
//   - GET    /auth/logout    (revoke the presented credential)
//   - GET    /auth/me        (current account)
//   - PUT    /auth/me        (partial profile update)
//   - DELETE /auth/me        (delete account)
//
// Handlers are transport-thin: they run the extraction pipeline, call the
// auth service, and write the result. Failure mapping is total: whatever
// the service returns is promoted into the auth route group's error space.
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

// AuthService defines the account operations consumed by HTTP handlers.
//
// Implementations should be safe for concurrent use and must honor the
// provided context for cancellation and timeouts.
type AuthService interface {
	// Register creates an account and an initial session.
	Register(ctx context.Context, email, username, password string) (*domain.User, *domain.Session, error)
	// Login verifies credentials and opens a session.
	Login(ctx context.Context, email, password string) (*domain.User, *domain.Session, error)
	// LogoutSession ends a cookie-based login.
	LogoutSession(ctx context.Context, sessionID string) error
	// LogoutAPIKey ends a key-based login by revoking the key.
	LogoutAPIKey(ctx context.Context, keyID, userID string) error
	// Me returns the current account.
	Me(ctx context.Context, userID string) (*domain.User, error)
	// UpdateMe applies a partial profile update.
	UpdateMe(ctx context.Context, userID string, email, username *string) (*domain.User, error)
	// DeleteMe removes the account.
	DeleteMe(ctx context.Context, userID string) error
}

// AuthHandlers groups the account endpoints.
type AuthHandlers struct {
	svc AuthService
}

// NewAuthHandlers constructs an AuthHandlers bound to the given service.
func NewAuthHandlers(svc AuthService) *AuthHandlers {
	return &AuthHandlers{svc: svc}
}

//
// DTOs
//

// RegisterInput is the JSON payload for creating an account.
type RegisterInput struct {
	// Email must be a well-formed address; unique across accounts.
	Email string `json:"email" validate:"required,email" example:"ada@example.com"`
	// Username is 3–16 ASCII letters and digits; unique across accounts.
	Username string `json:"username" validate:"required,min=3,max=16,username" example:"ada"`
	// Password is 8–128 characters.
	Password string `json:"password" validate:"required,min=8,max=128" example:"correct horse battery"`
}

// LoginInput is the JSON payload for opening a session.
type LoginInput struct {
	Email    string `json:"email" validate:"required,email" example:"ada@example.com"`
	Password string `json:"password" validate:"required,min=8,max=128" example:"correct horse battery"`
}

// UpdateUserInput is the JSON payload for a partial profile update. Absent
// fields are left unchanged.
type UpdateUserInput struct {
	Email    *string `json:"email" validate:"omitempty,email" example:"lovelace@example.com"`
	Username *string `json:"username" validate:"omitempty,min=3,max=16,username" example:"lovelace"`
}

//
// Handlers
//

// Register godoc
// @ID          register
// @Summary     Create an account
// @Description Registers a new account, opens a session, and sets the session cookie.
// @Tags        Auth
// @Accept      json
// @Produce     json
//
// @Param       body  body  handlers.RegisterInput  true  "Registration payload"
//
// @Success     201  {object}  domain.User
// @Failure     400  {object}  handlers.ErrorEnvelope  "Malformed body or validation failure"
// @Failure     409  {object}  handlers.ErrorEnvelope  "Email or username already taken"
// @Failure     500  {object}  handlers.ErrorEnvelope  "Internal error"
// @Router      /auth/register [post]
func (h *AuthHandlers) Register(c *gin.Context) {
	in, err := extract.JSON[RegisterInput](c)
	if err != nil {
		failure[services.AuthError](c, err)
		return
	}

	user, sess, err := h.svc.Register(c.Request.Context(), in.Email, in.Username, in.Password)
	if err != nil {
		failure[services.AuthError](c, err)
		return
	}

	middleware.NewSessionCookie(c, sess.ID)
	ok(c, http.StatusCreated, user)
}

// Login godoc
// @ID          login
// @Summary     Log in
// @Description Verifies the credentials, opens a session, and sets the session cookie.
// @Tags        Auth
// @Accept      json
// @Produce     json
//
// @Param       body  body  handlers.LoginInput  true  "Login payload"
//
// @Success     200  {object}  domain.User
// @Failure     400  {object}  handlers.ErrorEnvelope  "Malformed body or validation failure"
// @Failure     401  {object}  handlers.ErrorEnvelope  "Unknown email or wrong password"
// @Failure     500  {object}  handlers.ErrorEnvelope  "Internal error"
// @Router      /auth/login [post]
func (h *AuthHandlers) Login(c *gin.Context) {
	in, err := extract.JSON[LoginInput](c)
	if err != nil {
		failure[services.AuthError](c, err)
		return
	}

	user, sess, err := h.svc.Login(c.Request.Context(), in.Email, in.Password)
	if err != nil {
		failure[services.AuthError](c, err)
		return
	}

	middleware.NewSessionCookie(c, sess.ID)
	ok(c, http.StatusOK, user)
}

// Logout godoc
// @ID          logout
// @Summary     Log out
// @Description Revokes the credential that authenticated this request: the session is deleted, or, for key-based requests, the API key itself is revoked.
// @Tags        Auth
// @Produce     json
//
// @Success     204  {string}  string  "Logged out"
// @Failure     401  {object}  handlers.ErrorEnvelope  "Not authenticated"
// @Failure     500  {object}  handlers.ErrorEnvelope  "Internal error"
// @Router      /auth/logout [get]
func (h *AuthHandlers) Logout(c *gin.Context) {
	id, ok := middleware.IdentityFrom(c)
	if !ok {
		failure[services.AuthError](c, services.ErrAuthenticationRequired)
		return
	}

	var err error
	switch id.Source {
	case middleware.SourceAPIKey:
		err = h.svc.LogoutAPIKey(c.Request.Context(), id.TokenID, id.User.ID)
	default:
		err = h.svc.LogoutSession(c.Request.Context(), id.TokenID)
	}
	if err != nil {
		failure[services.AuthError](c, err)
		return
	}

	middleware.ClearSessionCookie(c)
	noContent(c)
}

// Me godoc
// @ID          me
// @Summary     Current account
// @Description Returns the account of the authenticated caller.
// @Tags        Auth
// @Produce     json
//
// @Success     200  {object}  domain.User
// @Failure     401  {object}  handlers.ErrorEnvelope  "Not authenticated"
// @Failure     500  {object}  handlers.ErrorEnvelope  "Internal error"
// @Router      /auth/me [get]
func (h *AuthHandlers) Me(c *gin.Context) {
	id, okID := middleware.IdentityFrom(c)
	if !okID {
		failure[services.AuthError](c, services.ErrAuthenticationRequired)
		return
	}

	user, err := h.svc.Me(c.Request.Context(), id.User.ID)
	if err != nil {
		failure[services.AuthError](c, err)
		return
	}
	ok(c, http.StatusOK, user)
}

// UpdateMe godoc
// @ID          updateMe
// @Summary     Update the current account
// @Description Applies a partial update to the caller's profile. Omitted fields are unchanged.
// @Tags        Auth
// @Accept      json
// @Produce     json
//
// @Param       body  body  handlers.UpdateUserInput  true  "Profile update payload"
//
// @Success     200  {object}  domain.User
// @Failure     400  {object}  handlers.ErrorEnvelope  "Malformed body or validation failure"
// @Failure     401  {object}  handlers.ErrorEnvelope  "Not authenticated"
// @Failure     409  {object}  handlers.ErrorEnvelope  "Email or username already taken"
// @Failure     500  {object}  handlers.ErrorEnvelope  "Internal error"
// @Router      /auth/me [put]
func (h *AuthHandlers) UpdateMe(c *gin.Context) {
	id, okID := middleware.IdentityFrom(c)
	if !okID {
		failure[services.AuthError](c, services.ErrAuthenticationRequired)
		return
	}

	in, err := extract.JSON[UpdateUserInput](c)
	if err != nil {
		failure[services.AuthError](c, err)
		return
	}

	user, err := h.svc.UpdateMe(c.Request.Context(), id.User.ID, in.Email, in.Username)
	if err != nil {
		failure[services.AuthError](c, err)
		return
	}
	ok(c, http.StatusOK, user)
}

// DeleteMe godoc
// @ID          deleteMe
// @Summary     Delete the current account
// @Description Deletes the caller's account. Sessions, API keys, and posts are removed with it.
// @Tags        Auth
// @Produce     json
//
// @Success     204  {string}  string  "Account deleted"
// @Failure     401  {object}  handlers.ErrorEnvelope  "Not authenticated"
// @Failure     500  {object}  handlers.ErrorEnvelope  "Internal error"
// @Router      /auth/me [delete]
func (h *AuthHandlers) DeleteMe(c *gin.Context) {
	id, okID := middleware.IdentityFrom(c)
	if !okID {
		failure[services.AuthError](c, services.ErrAuthenticationRequired)
		return
	}

	if err := h.svc.DeleteMe(c.Request.Context(), id.User.ID); err != nil {
		failure[services.AuthError](c, err)
		return
	}

	middleware.ClearSessionCookie(c)
	noContent(c)
}
