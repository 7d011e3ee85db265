package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/MrSnakeDoc/pitch/internal/domain"
	"github.com/MrSnakeDoc/pitch/internal/httpserver/deps"
	"github.com/MrSnakeDoc/pitch/internal/i18n"
	"github.com/MrSnakeDoc/pitch/internal/registration"
	"github.com/MrSnakeDoc/pitch/internal/store"
)

type registrationResponse struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}

// Register accepts a public registration: 201 with the new id, 400 when a
// field is missing or invalid, 503 without storage, 500 otherwise.
func Register(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		lang := requestLang(r)

		body, err := readBody(w, r)
		if err != nil {
			writeBadRequest(w, r)
			return
		}
		var req registration.Request
		if err := json.Unmarshal(body, &req); err != nil {
			writeBadRequest(w, r)
			return
		}

		id, err := d.Registrations.Submit(r.Context(), req)
		if err != nil {
			if ve, ok := domain.AsValidation(err); ok {
				writeJSON(w, http.StatusBadRequest, errorResponse{
					Error:   "validation",
					Message: i18n.Message(lang, "error.validation"),
					Field:   ve.Field,
				})
				return
			}
			if errors.Is(err, store.ErrNotConfigured) {
				writeJSON(w, http.StatusServiceUnavailable, errorResponse{
					Error:   "not_configured",
					Message: i18n.Message(lang, "error.not_configured"),
				})
				return
			}
			writeJSON(w, http.StatusInternalServerError, errorResponse{
				Error:   "internal",
				Message: i18n.Message(lang, "error.internal"),
			})
			return
		}

		writeJSON(w, http.StatusCreated, registrationResponse{
			ID:      id,
			Message: i18n.Message(lang, "registration.created"),
		})
	}
}
