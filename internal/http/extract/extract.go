// Package extract implements the validating input pipeline for handlers:
// decode the request payload, then run structural validation, accumulating
// every violation instead of stopping at the first. Failures come back as
// apperr shapes, so handlers pass them straight to the response layer.
package extract

import (
	"encoding/json"
	"errors"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/mkarlsen/go-posts-backend/internal/apperr"
)

// validate is the shared validator instance. Field names in violations use
// the JSON wire name, not the Go identifier.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "" {
			name = strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		}
		if name == "-" {
			return ""
		}
		return name
	})
	// "username" permits ASCII letters and digits only.
	if err := v.RegisterValidation("username", isUsername); err != nil {
		panic(err)
	}
	return v
}

// isUsername reports whether the field is non-empty ASCII alphanumeric.
func isUsername(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	if s == "" {
		return false
	}
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
		default:
			return false
		}
	}
	return true
}

// JSON decodes the request body into T and validates it. Malformed bodies
// come back as a DecodeError; rule violations come back as a ValidationError
// carrying one message per broken rule.
func JSON[T any](c *gin.Context) (T, error) {
	var v T
	if err := json.NewDecoder(c.Request.Body).Decode(&v); err != nil {
		return v, &apperr.DecodeError{Err: err}
	}
	if err := check(v); err != nil {
		return v, err
	}
	return v, nil
}

// Query binds the query string into T and validates it. Unparseable values
// come back as a QueryError.
func Query[T any](c *gin.Context) (T, error) {
	var v T
	if err := c.ShouldBindQuery(&v); err != nil {
		return v, &apperr.QueryError{Err: err}
	}
	if err := check(v); err != nil {
		return v, err
	}
	return v, nil
}

// ID reads the named path parameter and requires it to be a UUID.
func ID(c *gin.Context, name string) (string, error) {
	raw := c.Param(name)
	id, err := uuid.Parse(raw)
	if err != nil {
		return "", &apperr.PathError{Param: name, Err: err}
	}
	return id.String(), nil
}

// check runs structural validation, converting violations to their response
// shape.
func check(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var violations validator.ValidationErrors
	if errors.As(err, &violations) {
		return &apperr.ValidationError{Violations: violations}
	}
	// InvalidValidationError: a non-struct reached the validator.
	return &apperr.DecodeError{Err: err}
}

// Paginate is the shared pagination query shape. Absent parameters default
// to the first page of ten items.
type Paginate struct {
	Page int `form:"page,default=1" json:"page" validate:"min=1,max=100"`
	Size int `form:"size,default=10" json:"size" validate:"min=1,max=100"`
}

// Offset converts the page number to a row offset.
func (p Paginate) Offset() int { return (p.Page - 1) * p.Size }

// Limit returns the page size.
func (p Paginate) Limit() int { return p.Size }
