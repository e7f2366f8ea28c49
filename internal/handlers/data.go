package handlers

import (
	"net/http"
	"strings"
	"time"

	"fliptips/backend-go/internal/models"
	"fliptips/backend-go/internal/services"
)

const maxPage = 1000000000

// Data serves the aggregated, filtered, paginated row set. ageMs is
// measured against the aggregation pass's join timestamp at response-build
// time, so consumers can flag the payload as delayed past the staleness
// threshold.
func (a *API) Data(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := services.ParseFilter(q.Get("filter"))
	search := strings.TrimSpace(q.Get("q"))
	page := parseIntParam(q.Get("page"), 1, 1, maxPage)
	pageSize := parseIntParam(q.Get("pageSize"), a.cfg.DefaultPageSize, 1, a.cfg.MaxPageSize)

	ctx, cancel := timeboxed(r, a.cfg.UpstreamTimeout)
	defer cancel()

	rows, pulledAt, err := a.agg.Build(ctx, search)
	if err != nil {
		writeUpstreamError(w, err)
		return
	}

	items, total := services.Paginate(filter.Apply(rows), page, pageSize)
	writeJSON(w, http.StatusOK, models.DataResponse{
		Ok:           true,
		Total:        total,
		Page:         page,
		PageSize:     pageSize,
		Items:        items,
		PulledAt:     pulledAt,
		AgeMs:        time.Now().UnixMilli() - pulledAt,
		StaleAfterMs: a.cfg.StaleAfter.Milliseconds(),
	})
}
