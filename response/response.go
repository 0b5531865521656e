package response

import (
	"encoding/json"
	"net/http"
)

// WriteJSON writes v as a JSON body with the given status.
func WriteJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// WriteMessage writes a plain {message} body.
func WriteMessage(w http.ResponseWriter, status int, message string) {
	WriteJSON(w, status, map[string]string{"message": message})
}

// WriteError resolves err to an API error and writes its {message} body.
func WriteError(w http.ResponseWriter, err error) {
	apiErr := ResolveError(err)
	WriteJSON(w, apiErr.Status, apiErr)
}
