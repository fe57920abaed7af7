// ABOUTME: Registers API routes on a ServeMux with the middleware chain
// ABOUTME: Request logging wraps every endpoint

package server

import (
	"net/http"

	"github.com/ahmedalalousi/hwVisualiser/internal/middleware"
)

// NewMux builds the HTTP mux with all routes and middleware applied.
func NewMux(h *Handler) *http.ServeMux {
	mux := http.NewServeMux()
	for _, route := range h.Routes() {
		handler := middleware.Chain(route.Handler, middleware.LogRequest)
		mux.HandleFunc(route.Method+" "+route.Path, handler)
	}
	return mux
}
