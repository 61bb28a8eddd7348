package apperr

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// Envelope is the fixed wire shape of every error response.
type Envelope struct {
	Success bool      `json:"success"`
	Errors  []Message `json:"errors"`
}

// Respond writes s through the shared response pipeline: status code, any
// extra headers, and the standard envelope body. The errors array is always
// present, an empty slice rather than null, so the contract holds even for
// shapes that hide all detail (database failures).
//
// Server-side failures (5xx) are logged with their full internal detail
// before the sanitized body is written, so operators see what clients don't.
func Respond(c *gin.Context, s Shape) {
	status := s.Status()

	if hp, ok := s.(HeaderProvider); ok {
		for k, vv := range hp.Headers() {
			for _, v := range vv {
				c.Writer.Header().Set(k, v)
			}
		}
	}

	if status >= 500 {
		ev := log.Error().
			Int("status", status).
			Str("request_id", c.Writer.Header().Get("X-Request-ID")).
			Str("path", c.Request.URL.Path)
		if err, ok := s.(error); ok {
			ev = ev.Str("error", err.Error())
		}
		ev.Msg("api error")
	}

	msgs := s.Messages()
	if msgs == nil {
		msgs = []Message{}
	}
	c.AbortWithStatusJSON(status, Envelope{Success: false, Errors: msgs})
}

// Fail classifies err and writes it through Respond. Errors that already
// carry the Shape capability are rendered as themselves; everything else is
// treated as an internal persistence failure.
func Fail(c *gin.Context, err error) {
	var s Shape
	if errors.As(err, &s) {
		Respond(c, s)
		return
	}
	Respond(c, &DatabaseError{Err: err})
}
