package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/cmlabs-hris/fleet-backend-go/internal/handler/http/response"
)

// maxUploadSize bounds multipart bodies for photo and receipt uploads.
const maxUploadSize = 10 << 20

// decodeJSON decodes the request body into dst, answering 400 on failure.
func decodeJSON(w http.ResponseWriter, r *http.Request, op string, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		slog.Error(op+" decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return false
	}
	return true
}

func queryString(r *http.Request, key string) *string {
	if v := r.URL.Query().Get(key); v != "" {
		return &v
	}
	return nil
}

func queryInt(r *http.Request, key string) *int {
	v := r.URL.Query().Get(key)
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return nil
	}
	return &n
}

// pagination reads page and limit; invalid values fall back to the filter defaults.
func pagination(r *http.Request) (page, limit int) {
	if p := queryInt(r, "page"); p != nil {
		page = *p
	}
	if l := queryInt(r, "limit"); l != nil {
		limit = *l
	}
	return page, limit
}
