package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"geoportal-backend/internal/apperr"
	"geoportal-backend/internal/metrics"

	"github.com/rs/zerolog"
)

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeErr converts err to the {ok:false, error} envelope. Internal errors
// are logged with detail but leave the process with a generic message only.
func writeErr(w http.ResponseWriter, log zerolog.Logger, err error) {
	status := apperr.Status(err)
	if status >= http.StatusInternalServerError {
		log.Error().Err(err).Msg("request failed")
	}
	metrics.RequestErrors.WithLabelValues(strconv.Itoa(status)).Inc()
	writeJSON(w, status, map[string]any{"ok": false, "error": apperr.ClientMessage(err)})
}

// decodeBody fills req from the request body. An absent or malformed body is
// treated as an empty object so field validation produces the 400, not the
// decoder.
func decodeBody(r *http.Request, req any) {
	_ = json.NewDecoder(r.Body).Decode(req)
}
