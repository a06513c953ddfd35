package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/abgdnv/product-api/pkg/web"
)

// Counter reports how many products are stored.
type Counter interface {
	Count(ctx context.Context) (int64, error)
}

// HealthHandler reports whether the product store is reachable.
type HealthHandler struct {
	counter Counter
	logger  *slog.Logger
}

// NewHealthHandler creates a HealthHandler backed by counter.
func NewHealthHandler(counter Counter, logger *slog.Logger) *HealthHandler {
	return &HealthHandler{
		counter: counter,
		logger:  logger.With("component", "health"),
	}
}

// ServeHTTP responds 200 with the product count, or 503 when the store cannot be queried.
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	count, err := h.counter.Count(r.Context())
	if err != nil {
		h.logger.ErrorContext(r.Context(), "Health check failed", "error", err)
		web.RespondJSON(w, h.logger, http.StatusServiceUnavailable, map[string]string{"status": "DOWN"})
		return
	}
	web.RespondJSON(w, h.logger, http.StatusOK, map[string]any{"status": "UP", "products": count})
}
