// Package response holds the two write helpers every API handler funnels
// through, so the content type and encoding live in one place.
package response

import (
	"encoding/json"
	"net/http"
)

// JSON encodes data as the response body under the given status. A nil
// data leaves the body empty. Encoding errors are dropped: the header
// is already on the wire, so there is nothing useful left to send.
func JSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(data)
}

// NoContent replies 204 with an empty body.
func NoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}
