package handlers

import (
	"net/http"
	"strconv"
	"sync"

	"fliptips/backend-go/internal/models"
)

// Diag probes each feed independently and never fails as a whole for a
// single feed outage; overall ok is the AND of the probed feeds.
func (a *API) Diag(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeboxed(r, a.cfg.UpstreamTimeout)
	defer cancel()

	paths := []string{"/mapping", "/latest", "/1h"}
	results := make([]string, len(paths))
	healthy := make([]bool, len(paths))

	var wg sync.WaitGroup
	wg.Add(len(paths))
	for i, path := range paths {
		go func(i int, path string) {
			defer wg.Done()
			status, err := a.feeds.Probe(ctx, path)
			if err != nil {
				results[i] = err.Error()
				return
			}
			results[i] = strconv.Itoa(status)
			healthy[i] = status >= 200 && status < 300
		}(i, path)
	}
	wg.Wait()

	writeJSON(w, http.StatusOK, models.DiagResponse{
		Ok:             healthy[0] && healthy[1] && healthy[2],
		Mapping:        results[0],
		Latest:         results[1],
		OneHour:        results[2],
		CacheSec:       int(a.cfg.CacheTTL.Seconds()),
		StaleBannerSec: int(a.cfg.StaleAfter.Seconds()),
	})
}
