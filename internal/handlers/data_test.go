package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"fliptips/backend-go/internal/config"
	"fliptips/backend-go/internal/models"
	"fliptips/backend-go/internal/services"
)

func fakeUpstream(t *testing.T, overrides map[string]http.HandlerFunc) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	register := func(path string, h http.HandlerFunc) {
		if _, ok := overrides[path]; !ok {
			mux.HandleFunc(path, h)
		}
	}
	register("/mapping", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[
			{"id":1,"name":"Abyssal whip","limit":70,"highalch":72000},
			{"id":2,"name":"Rune scimitar","limit":125,"highalch":15360}
		]`))
	})
	register("/latest", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data":{
			"1":{"high":1000,"low":900},
			"2":{"high":700000,"low":650000}
		}}`))
	})
	register("/1h", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data":{"1":{"volume":5000}}}`))
	})
	register("/24h", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data":{"1":{"avgLowPrice":950,"avgHighPrice":1050}}}`))
	})
	for path, h := range overrides {
		mux.HandleFunc(path, h)
	}
	return httptest.NewServer(mux)
}

func newTestAPI(srvURL string) *API {
	cfg := config.Config{
		APIBaseURL:      srvURL,
		UserAgent:       "fliptips-test",
		CacheTTL:        time.Minute,
		StaleAfter:      2 * time.Minute,
		UpstreamTimeout: 2 * time.Second,
		DefaultPageSize: 25,
		MaxPageSize:     200,
	}
	return New(cfg, services.NewFeedClient(cfg, services.NewMemoryCache()))
}

func TestDataHappyPath(t *testing.T) {
	srv := fakeUpstream(t, nil)
	defer srv.Close()
	api := newTestAPI(srv.URL)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/data", nil)
	rec := httptest.NewRecorder()
	api.Data(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var out models.DataResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !out.Ok || out.Total != 2 {
		t.Fatalf("unexpected payload: %+v", out)
	}
	if out.Page != 1 || out.PageSize != 25 {
		t.Fatalf("unexpected paging defaults: %+v", out)
	}
	if out.PulledAt <= 0 || out.AgeMs < 0 {
		t.Fatalf("freshness fields missing: pulledAt=%d ageMs=%d", out.PulledAt, out.AgeMs)
	}
	if out.StaleAfterMs != 120000 {
		t.Fatalf("expected staleness threshold 120000ms, got %d", out.StaleAfterMs)
	}
	// Default sort: yield descending. Item 2 yields floor(700000*0.99)-650000=43000.
	if out.Items[0].ID != 2 || out.Items[0].YieldAfterTax != 43000 {
		t.Fatalf("unexpected first row: %+v", out.Items[0])
	}
}

func TestDataClampsPaging(t *testing.T) {
	srv := fakeUpstream(t, nil)
	defer srv.Close()
	api := newTestAPI(srv.URL)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/data?page=0&pageSize=500", nil)
	rec := httptest.NewRecorder()
	api.Data(rec, req)

	var out models.DataResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.Page != 1 {
		t.Fatalf("page=0 must clamp to 1, got %d", out.Page)
	}
	if out.PageSize != 200 {
		t.Fatalf("pageSize=500 must clamp to 200, got %d", out.PageSize)
	}
}

func TestDataFilterParam(t *testing.T) {
	srv := fakeUpstream(t, nil)
	defer srv.Close()
	api := newTestAPI(srv.URL)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/data?filter=high+value", nil)
	rec := httptest.NewRecorder()
	api.Data(rec, req)

	var out models.DataResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.Total != 1 || out.Items[0].ID != 2 {
		t.Fatalf("expected only the 700k item, got %+v", out.Items)
	}
}

func TestDataFailsWhollyOnUpstreamError(t *testing.T) {
	srv := fakeUpstream(t, map[string]http.HandlerFunc{
		"/24h": func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		},
	})
	defer srv.Close()
	api := newTestAPI(srv.URL)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/data", nil)
	rec := httptest.NewRecorder()
	api.Data(rec, req)

	if rec.Code != http.StatusBadGateway {
		t.Fatalf("expected 502 for failed aggregation, got %d", rec.Code)
	}
	var out map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if _, ok := out["items"]; ok {
		t.Fatal("expected no partial items on failure")
	}
}
