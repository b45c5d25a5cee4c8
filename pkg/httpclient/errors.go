package httpclient

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	apperrors "github.com/carmitra/carmitra/pkg/errors"
)

// remoteEnvelope is the error body shape returned by the CarMitra API.
type remoteEnvelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Error   string `json:"error"`
}

// ParseResponseError reads a non-2xx response and translates it into an
// AppError carrying the server's message. Bodies that are not an error
// envelope produce a plain error with the status and raw body.
// The body is consumed and closed.
func ParseResponseError(resp *http.Response, remote string) error {
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("%s returned status %d (failed to read body: %w)", remote, resp.StatusCode, err)
	}

	var env remoteEnvelope
	if json.Unmarshal(body, &env) != nil || env.Message == "" {
		return fmt.Errorf("%s returned status %d: %s", remote, resp.StatusCode, string(body))
	}

	switch {
	case resp.StatusCode == http.StatusBadRequest:
		return apperrors.Validation(env.Message)
	case resp.StatusCode == http.StatusNotFound:
		return &apperrors.AppError{
			Code:    "NOT_FOUND",
			Message: env.Message,
			Status:  http.StatusNotFound,
			Err:     apperrors.ErrNotFound,
		}
	case resp.StatusCode == http.StatusServiceUnavailable:
		return &apperrors.AppError{
			Code:    "UNAVAILABLE",
			Message: env.Message,
			Status:  http.StatusServiceUnavailable,
			Err:     apperrors.ErrUnavailable,
		}
	default:
		detail := env.Message
		if env.Error != "" {
			detail += ": " + env.Error
		}
		return &apperrors.AppError{
			Code:    "REMOTE_ERROR",
			Message: fmt.Sprintf("%s: %s", remote, detail),
			Status:  resp.StatusCode,
		}
	}
}
