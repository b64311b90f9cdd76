package api

import (
	"encoding/json"
	"mime"
	"net/http"
)

func isJson(r *http.Request) bool {
	mediatype, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return mediatype == "application/json"
}

func readJson(r *http.Request, v any) error {
	defer r.Body.Close()

	return json.NewDecoder(r.Body).Decode(v)
}

func valueFormat(r *http.Request) string {
	if val := r.URL.Query().Get("format"); val != "" {
		return val
	}

	return ""
}
