package httpx

import (
	"errors"
	"net/http"
)

// ErrTrailingBody reports a request body containing more than one JSON value.
var ErrTrailingBody = errors.New("httpx: unexpected data after JSON body")

// Middleware wraps an http.Handler with additional behaviour.
type Middleware func(http.Handler) http.Handler

// Chain applies middlewares to h so that the first listed middleware is the
// outermost one, i.e. Chain(h, a, b) serves a(b(h)).
func Chain(h http.Handler, mw ...Middleware) http.Handler {
	for i := len(mw) - 1; i >= 0; i-- {
		h = mw[i](h)
	}
	return h
}
