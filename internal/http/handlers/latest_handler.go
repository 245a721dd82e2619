package handlers

import (
	"errors"
	"net/http"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"movetrack/internal/cache"
)

// LatestHandler serves the most recent cached reading for an operator.
type LatestHandler struct {
	store  *cache.LatestStore
	logger *zap.Logger
}

// NewLatestHandler returns handler.
func NewLatestHandler(store *cache.LatestStore, logger *zap.Logger) *LatestHandler {
	return &LatestHandler{
		store:  store,
		logger: logger,
	}
}

// ServeHTTP handles GET /gps/latest?operator_id=N.
func (h *LatestHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	operatorKey := r.URL.Query().Get("operator_id")
	if operatorKey == "" {
		http.Error(w, "operator_id is required", http.StatusBadRequest)
		return
	}

	payload, err := h.store.GetLatest(r.Context(), operatorKey)
	if err != nil {
		if errors.Is(err, redis.Nil) {
			http.Error(w, "no recent reading", http.StatusNotFound)
			return
		}
		h.logger.Error("failed to read latest reading", zap.Error(err))
		http.Error(w, "failed to read latest reading", http.StatusInternalServerError)
		return
	}

	writeRaw(w, http.StatusOK, payload)
}
