package http

import (
	"net/http"

	"fliptips/backend-go/internal/config"
	"fliptips/backend-go/internal/handlers"
	"fliptips/backend-go/internal/services"
)

func NewRouter(cfg config.Config, feeds *services.FeedClient) http.Handler {
	api := handlers.New(cfg, feeds)

	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/health", api.Health)
	mux.HandleFunc("/api/v1/data", api.Data)
	mux.HandleFunc("/api/v1/item", api.Item)
	mux.HandleFunc("/api/v1/diag", api.Diag)

	h := http.Handler(mux)
	h = withRecovery(h)
	h = withLogging(h)
	h = withRateLimit(cfg.RateLimitPerMin)(h)
	h = withCORS(h)
	return h
}
