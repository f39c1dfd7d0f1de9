// pkg/transport/httpx/respond.go
package httpx

import (
	"encoding/json"
	"net/http"
)

// Rejection is the structured body written for every auth rejection.
type Rejection struct {
	Message string `json:"message"`
	Status  int    `json:"status"`
}

func WriteJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// WriteReject emits the 401 rejection envelope and ends the response.
func WriteReject(w http.ResponseWriter, message string) {
	WriteJSON(w, http.StatusUnauthorized, Rejection{Message: message, Status: http.StatusUnauthorized})
}
