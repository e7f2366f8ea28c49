package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"fliptips/backend-go/internal/models"
)

func TestItemDetail(t *testing.T) {
	srv := fakeUpstream(t, nil)
	defer srv.Close()
	api := newTestAPI(srv.URL)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/item?id=1", nil)
	rec := httptest.NewRecorder()
	api.Item(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var out models.ItemDetail
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.ID != 1 || out.Name != "Abyssal whip" {
		t.Fatalf("unexpected detail: %+v", out)
	}
	if out.WikiLink == "" || out.PriceLink == "" {
		t.Fatalf("expected deep links, got %+v", out)
	}
}

func TestItemUnknownIDIs404(t *testing.T) {
	srv := fakeUpstream(t, nil)
	defer srv.Close()
	api := newTestAPI(srv.URL)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/item?id=99999", nil)
	rec := httptest.NewRecorder()
	api.Item(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestItemBadIDIs400(t *testing.T) {
	srv := fakeUpstream(t, nil)
	defer srv.Close()
	api := newTestAPI(srv.URL)

	for _, raw := range []string{"", "abc"} {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/item?id="+raw, nil)
		rec := httptest.NewRecorder()
		api.Item(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("id=%q: expected 400, got %d", raw, rec.Code)
		}
	}
}
