package utils

import (
	"encoding/json"
	"net/http"
)

// JSON sends a JSON response
func JSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// Message sends a 200 response with a message body
func Message(w http.ResponseWriter, message string) {
	JSON(w, http.StatusOK, map[string]string{"message": message})
}

// FetchError sends the legacy read-endpoint error body
func FetchError(w http.ResponseWriter) {
	JSON(w, http.StatusInternalServerError, map[string]string{"msg": "Error fetching data"})
}
