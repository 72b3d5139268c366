package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"
)

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// isJSON reports whether the request declares a JSON body
func isJSON(r *http.Request) bool {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil {
		return false
	}
	return mediaType == "application/json" || strings.HasSuffix(mediaType, "+json")
}

// readJSON decodes a JSON body of at most limit bytes. An empty body decodes to the zero value.
func readJSON(w http.ResponseWriter, r *http.Request, v interface{}, limit int64) error {
	if r.Body == nil {
		return nil
	}
	defer r.Body.Close()

	if limit > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, limit)
	}

	decoder := json.NewDecoder(r.Body)
	if err := decoder.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return err
	}

	// Trailing data after the first value is malformed JSON
	_, err := decoder.Token()
	switch {
	case errors.Is(err, io.EOF):
		return nil
	case err != nil:
		return fmt.Errorf("unexpected data after JSON body: %w", err)
	default:
		return errors.New("unexpected data after JSON body")
	}
}
