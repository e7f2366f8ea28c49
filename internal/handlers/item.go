package handlers

import (
	"net/http"
	"strconv"
)

func (a *API) Item(w http.ResponseWriter, r *http.Request) {
	idParam := r.URL.Query().Get("id")
	id, err := strconv.Atoi(idParam)
	if idParam == "" || err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid or missing item id"})
		return
	}

	ctx, cancel := timeboxed(r, a.cfg.UpstreamTimeout)
	defer cancel()

	detail, err := a.agg.BuildItem(ctx, id)
	if err != nil {
		writeUpstreamError(w, err)
		return
	}
	if detail == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "item not found"})
		return
	}
	writeJSON(w, http.StatusOK, detail)
}
