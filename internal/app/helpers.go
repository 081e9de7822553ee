package app

import (
	"encoding/json"
	"net/http"
	"strconv"
)

// RequireMethod validates that the request uses the specified HTTP method
func RequireMethod(w http.ResponseWriter, r *http.Request, method string) bool {
	if r.Method != method {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return false
	}
	return true
}

// RequireEditMode validates that edit mode is enabled
func RequireEditMode(w http.ResponseWriter) bool {
	if !EditMode {
		http.Error(w, ErrEditModeDisabled, http.StatusForbidden)
		return false
	}
	return true
}

// writeJSON encodes v as the response body and logs encoding failures
func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		Log.WithError(err).Error("encoding response")
		http.Error(w, ErrInternalServer, http.StatusInternalServerError)
	}
}

// queryInt reads a non-negative integer query parameter, def if absent
func queryInt(r *http.Request, name string, def int) (int, bool) {
	s := r.URL.Query().Get(name)
	if s == "" {
		return def, true
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

// orDefault returns v unless it is zero or negative
func orDefault(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}

// exceeds reports whether any of values is above limit
func exceeds(limit int, values ...int) bool {
	for _, v := range values {
		if v > limit {
			return true
		}
	}
	return false
}
