package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"fliptips/backend-go/internal/config"
	"fliptips/backend-go/internal/services"
)

type API struct {
	cfg     config.Config
	feeds   *services.FeedClient
	catalog *services.CatalogCache
	agg     *services.Aggregator
}

func New(cfg config.Config, feeds *services.FeedClient) *API {
	catalog := services.NewCatalogCache(cfg, feeds)
	return &API{
		cfg:     cfg,
		feeds:   feeds,
		catalog: catalog,
		agg:     services.NewAggregator(feeds, catalog),
	}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func parseIntParam(v string, def int, min int, max int) int {
	if v == "" {
		return def
	}
	var out int
	_, err := fmt.Sscanf(v, "%d", &out)
	if err != nil {
		return def
	}
	if out < min {
		return min
	}
	if out > max {
		return max
	}
	return out
}

func timeboxed(r *http.Request, d time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(r.Context(), d)
}

func nowISO() string {
	return time.Now().UTC().Format(time.RFC3339)
}
