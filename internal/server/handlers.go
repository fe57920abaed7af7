// ABOUTME: HTTP handlers exposing a parsed hierarchy to visualization consumers
// ABOUTME: Provides health, hierarchy, and summary endpoints over a diagram file

package server

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/ahmedalalousi/hwVisualiser/internal/cache"
	"github.com/ahmedalalousi/hwVisualiser/internal/puml"
)

const hierarchyCacheKey = "hierarchy"

// Handler serves a diagram file as JSON for external visualization tooling.
// The diagram is re-parsed when the cache entry expires, so edits show up
// without restarting the server.
type Handler struct {
	diagramPath string
	cache       *cache.Cache
}

func NewHandler(diagramPath string, c *cache.Cache) *Handler {
	return &Handler{diagramPath: diagramPath, cache: c}
}

// Route defines an API endpoint with its HTTP method and handler.
type Route struct {
	Method  string
	Path    string
	Handler http.HandlerFunc
}

// Routes returns all API routes for registration.
func (h *Handler) Routes() []Route {
	return []Route{
		{Method: http.MethodGet, Path: "/api/health", Handler: h.Health},
		{Method: http.MethodGet, Path: "/api/hierarchy", Handler: h.GetHierarchy},
		{Method: http.MethodGet, Path: "/api/summary", Handler: h.GetSummary},
	}
}

// Health returns API health status.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "ok",
		"diagram": h.diagramPath,
		"time":    time.Now().UTC(),
	})
}

// GetHierarchy returns the parsed hierarchy graph.
func (h *Handler) GetHierarchy(w http.ResponseWriter, r *http.Request) {
	hier, err := h.hierarchy()
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, "failed to parse diagram", err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"roots":         hier.Roots,
		"skipped_lines": hier.SkippedCount,
	})
}

// GetSummary returns node counts per construct type.
func (h *Handler) GetSummary(w http.ResponseWriter, r *http.Request) {
	hier, err := h.hierarchy()
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, "failed to parse diagram", err)
		return
	}

	counts := make(map[string]int)
	hier.Walk(func(n *puml.Node, depth int) {
		counts[n.Type]++
	})
	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"roots":         len(hier.Roots),
		"nodes":         hier.NodeCount(),
		"types":         counts,
		"skipped_lines": hier.SkippedCount,
	})
}

func (h *Handler) hierarchy() (*puml.Hierarchy, error) {
	if cached, found := h.cache.Get(hierarchyCacheKey); found {
		return cached.(*puml.Hierarchy), nil
	}

	hier, err := puml.ParseFile(h.diagramPath)
	if err != nil {
		return nil, err
	}
	h.cache.Set(hierarchyCacheKey, hier)
	return hier, nil
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, msg string, err error) {
	slog.Error(msg, "error", err)
	h.writeJSON(w, status, map[string]string{"error": msg})
}
