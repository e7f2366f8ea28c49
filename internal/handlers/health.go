package handlers

import (
	"net/http"
	"os"
	"time"

	"fliptips/backend-go/internal/models"
)

func (a *API) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeboxed(r, 2*time.Second)
	defer cancel()

	depsStatus := map[string]models.DepStatus{}
	ok := true
	status, err := a.feeds.Probe(ctx, "/latest")
	switch {
	case err != nil:
		ok = false
		depsStatus["prices_api"] = models.DepStatus{Ok: false, Error: err.Error()}
	case status >= 300:
		ok = false
		depsStatus["prices_api"] = models.DepStatus{Ok: false, Error: http.StatusText(status)}
	default:
		depsStatus["prices_api"] = models.DepStatus{Ok: true}
	}

	writeJSON(w, http.StatusOK, models.HealthResponse{
		Ok:         ok,
		TsISO:      nowISO(),
		Service:    "fliptips-backend",
		Version:    os.Getenv("SERVICE_VERSION"),
		DepsStatus: depsStatus,
		Env: map[string]bool{
			"OSRS_API_BASE_URL": os.Getenv("OSRS_API_BASE_URL") != "",
			"REDIS_URL":         os.Getenv("REDIS_URL") != "",
			"USER_AGENT":        os.Getenv("USER_AGENT") != "",
		},
	})
}
