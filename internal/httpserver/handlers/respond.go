package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/MrSnakeDoc/pitch/internal/content"
	"github.com/MrSnakeDoc/pitch/internal/domain"
	"github.com/MrSnakeDoc/pitch/internal/httpserver/deps"
	"github.com/MrSnakeDoc/pitch/internal/i18n"
	"github.com/MrSnakeDoc/pitch/internal/logger"
)

// maxBodyBytes caps JSON request bodies.
const maxBodyBytes = 1 << 20

type errorResponse struct {
	Error   string `json:"error"`           // error class, ex: "validation"
	Message string `json:"message"`         // localized, human readable
	Field   string `json:"field,omitempty"` // offending field for validation errors
	Draft   any    `json:"draft,omitempty"` // submitted record, echoed back on failed writes
}

var classStatus = map[content.ErrorClass]int{
	content.ClassValidation:    http.StatusBadRequest,
	content.ClassNotFound:      http.StatusNotFound,
	content.ClassPermission:    http.StatusForbidden,
	content.ClassTransient:     http.StatusServiceUnavailable,
	content.ClassNotConfigured: http.StatusServiceUnavailable,
	content.ClassConflict:      http.StatusConflict,
	content.ClassInternal:      http.StatusInternalServerError,
}

func requestLang(r *http.Request) string {
	return i18n.Negotiate(r.URL.Query().Get("lang"), r.Header.Get("Accept-Language"))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps err to its HTTP status and a localized message.
// draft, when not nil, is sent back so the client keeps what was typed.
func writeError(w http.ResponseWriter, r *http.Request, d deps.Deps, err error, draft any) {
	class := content.Classify(err)
	status := classStatus[class]

	resp := errorResponse{
		Error:   string(class),
		Message: i18n.Message(requestLang(r), "error."+string(class)),
		Draft:   draft,
	}
	if ve, ok := domain.AsValidation(err); ok {
		resp.Field = ve.Field
	}

	if status >= http.StatusInternalServerError {
		d.Logger.Error("request failed",
			logger.String("path", r.URL.Path),
			logger.String("class", string(class)),
			logger.Error(err))
	}
	writeJSON(w, status, resp)
}

func writeBadRequest(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusBadRequest, errorResponse{
		Error:   "bad_request",
		Message: i18n.Message(requestLang(r), "error.bad_request"),
	})
}

// readBody reads a size-limited request body.
func readBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		return nil, err
	}
	if !json.Valid(body) {
		return nil, errors.New("invalid json body")
	}
	return body, nil
}
