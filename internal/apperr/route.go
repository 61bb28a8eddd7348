package apperr

import (
	"errors"
	"net/http"
)

// Feature constrains a route group's own error type: it must carry the Shape
// capability and be a regular Go error so it composes with errors.Is/As.
type Feature interface {
	Shape
	error
}

// RouteError composes a feature's closed error set with the cross-cutting
// AppError taxonomy, so every route group shares one conversion and response
// path. Exactly one of the two cases is set.
type RouteError[E Feature] struct {
	app     AppError
	route   E
	isRoute bool
}

// App wraps a cross-cutting failure.
func App[E Feature](err AppError) RouteError[E] {
	return RouteError[E]{app: err}
}

// Route wraps a feature-specific failure.
func Route[E Feature](err E) RouteError[E] {
	return RouteError[E]{route: err, isRoute: true}
}

// Promote classifies an arbitrary error into a RouteError. Feature errors
// take precedence, then taxonomy members; anything else is treated as a
// persistence failure (500, no client-visible messages). The mapping is
// total: handler code returns whichever error is most specific and never
// wraps manually.
func Promote[E Feature](err error) RouteError[E] {
	var route E
	if errors.As(err, &route) {
		return Route(route)
	}
	var app AppError
	if errors.As(err, &app) {
		return App[E](app)
	}
	return App[E](&DatabaseError{Err: err})
}

func (e RouteError[E]) shape() Shape {
	if e.isRoute {
		return e.route
	}
	return e.app
}

// Status implements Shape.
func (e RouteError[E]) Status() int { return e.shape().Status() }

// Messages implements Shape.
func (e RouteError[E]) Messages() []Message { return e.shape().Messages() }

// Headers forwards the wrapped shape's extra headers, if any.
func (e RouteError[E]) Headers() http.Header {
	if hp, ok := e.shape().(HeaderProvider); ok {
		return hp.Headers()
	}
	return nil
}

func (e RouteError[E]) Error() string {
	if e.isRoute {
		return e.route.Error()
	}
	return e.app.Error()
}

// Unwrap exposes the wrapped error for errors.Is/As.
func (e RouteError[E]) Unwrap() error {
	if e.isRoute {
		return e.route
	}
	return e.app
}
