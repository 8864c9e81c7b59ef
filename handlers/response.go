package handlers

import (
	"encoding/json"
	"log"
	"net/http"
)

// Every action answers with the same envelope: {success, data} on the happy
// path, {success:false, error, ...flags} otherwise. The optional flags let
// the client offer a specific next step (upgrade link, edit-description
// prompt) instead of a bare message.
type successResponse struct {
	Success bool `json:"success"`
	Data    any  `json:"data,omitempty"`
}

type errorResponse struct {
	Success             bool   `json:"success"`
	Error               string `json:"error"`
	RequiresUpgrade     bool   `json:"requiresUpgrade,omitempty"`
	RequiresDescription bool   `json:"requiresDescription,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("writeJSON: failed to encode response: %v", err)
	}
}

func success(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, successResponse{Success: true, Data: data})
}

func failure(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

func failureUpgrade(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg, RequiresUpgrade: true})
}

func failureDescription(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg, RequiresDescription: true})
}
