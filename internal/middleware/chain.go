package middleware

import "net/http"

// Middleware wraps a handler. Everything in this package that applies to the
// whole site has this shape; route-level checks use Guard instead.
type Middleware func(http.Handler) http.Handler

// Chain wraps h so that middlewares run in the order given: the first one
// sees the request first and the response last.
func Chain(h http.Handler, middlewares ...Middleware) http.Handler {
	for i := len(middlewares) - 1; i >= 0; i-- {
		h = middlewares[i](h)
	}
	return h
}
