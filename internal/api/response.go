// Package api holds the JSON response conventions shared by all handlers:
// success bodies carry {"success": true, ...}, failures carry {"error": msg}.
package api

import (
	"encoding/json"
	"net/http"
)

// JSON writes a JSON response with the given status code.
func JSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// Error writes a JSON error response.
func Error(w http.ResponseWriter, status int, message string) {
	JSON(w, status, map[string]string{"error": message})
}

// NotAuthenticated writes the uniform 401 response.
func NotAuthenticated(w http.ResponseWriter) {
	Error(w, http.StatusUnauthorized, "Not authenticated")
}

// NotAuthorized writes the uniform 403 response.
func NotAuthorized(w http.ResponseWriter) {
	Error(w, http.StatusForbidden, "Not authorized")
}
