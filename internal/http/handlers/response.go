// Package handlers provides HTTP handler implementations for the public API.
//
// This file defines the standard response utilities used across all
// endpoints. Success responses are plain JSON resources; failures always go
// through the apperr pipeline so every error (validation, auth, not-found,
// persistence) is rendered in the one envelope shape:
//
//	HTTP/1.1 404 Not Found
//	{
//	  "success": false,
//	  "errors": [ { "code": "post_not_found", "details": { "post": "…" } } ]
//	}
//
// Handlers never map individual errors to statuses themselves: `failure`
// promotes whatever the service returned and writes the result.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mkarlsen/go-posts-backend/internal/apperr"
)

// ErrorEnvelope mirrors the error wire shape for OpenAPI documentation.
type ErrorEnvelope struct {
	Success bool             `json:"success" example:"false"`
	Errors  []apperr.Message `json:"errors"`
}

// failure promotes err into the route group's error space and writes the
// envelope. E is the feature error type of the route group, so feature
// failures keep their own status and messages, taxonomy members render as
// themselves, and anything unclassified becomes an opaque 500.
func failure[E apperr.Feature](c *gin.Context, err error) {
	apperr.Respond(c, apperr.Promote[E](err))
}

// ok writes a success JSON response with the given status.
func ok(c *gin.Context, status int, body any) {
	c.JSON(status, body)
}

// noContent writes an HTTP 204 No Content response.
func noContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}
