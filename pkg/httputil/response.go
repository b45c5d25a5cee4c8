package httputil

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	apperrors "github.com/carmitra/carmitra/pkg/errors"
	"github.com/carmitra/carmitra/pkg/logger"
	"github.com/carmitra/carmitra/pkg/validator"
)

// MaxBodyBytes caps JSON request bodies.
const MaxBodyBytes = 1 << 20

// Envelope is the JSON shape of mutation results and of every error response.
type Envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

// WriteJSON writes a JSON response with the given status code.
// If encoding fails, the error is logged but headers are already sent so nothing can be done.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteSuccess writes a success envelope. A nil data omits the field.
func WriteSuccess(w http.ResponseWriter, status int, message string, data any) {
	WriteJSON(w, status, Envelope{Success: true, Message: message, Data: data})
}

// WriteError writes an error envelope for err. Status and message come from an
// AppError when present, otherwise from the sentinel the error wraps.
// Internal errors are logged, and their detail is echoed in the "error" field
// only when exposeDetails is set. It prefers the request-scoped logger from
// context (set by the RequestLogger middleware) over the fallback logger.
func WriteError(w http.ResponseWriter, r *http.Request, err error, fallback *slog.Logger, exposeDetails bool) {
	l := logger.FromContext(r.Context())
	if l == slog.Default() && fallback != nil {
		l = fallback
	}

	status := apperrors.HTTPStatus(err)
	message := "an internal error occurred"
	detail := err

	var (
		appErr *apperrors.AppError
		valErr *validator.ValidationError
	)
	switch {
	case errors.As(err, &appErr):
		status = appErr.Status
		message = appErr.Message
		if appErr.Err != nil {
			detail = appErr.Err
		}
	case errors.As(err, &valErr):
		status = http.StatusBadRequest
		message = valErr.First()
	case errors.Is(err, validator.ErrMalformedBody):
		status = http.StatusBadRequest
		message = "invalid request body"
	case errors.Is(err, apperrors.ErrNotFound):
		message = "resource not found"
	case errors.Is(err, apperrors.ErrInvalidInput), errors.Is(err, apperrors.ErrValidation):
		message = err.Error()
	}

	env := Envelope{Success: false, Message: message}
	if status >= http.StatusInternalServerError {
		l.ErrorContext(r.Context(), "internal error",
			slog.String("error", err.Error()),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
		)
		if exposeDetails {
			env.Error = detail.Error()
		}
	}

	WriteJSON(w, status, env)
}
