package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"benchmate/internal/apperr"
)

type envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

func decodeJSON(r *http.Request, dest any) error {
	if r.Body == nil {
		return errors.New("request body required")
	}
	defer r.Body.Close()

	return json.NewDecoder(r.Body).Decode(dest)
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(payload)
}

func respond(w http.ResponseWriter, status int, message string, data any) {
	respondJSON(w, status, envelope{Success: true, Message: message, Data: data})
}

// respondError is the single error responder: every handler failure funnels
// through here, with unexpected errors collapsed to a 500.
func respondError(w http.ResponseWriter, err error) {
	appErr := apperr.From(err)
	respondJSON(w, appErr.Status, map[string]any{
		"success": false,
		"message": appErr.Message,
	})
}
