package handler

import (
	"context"
	"errors"
	"net/http"

	customError "github.com/segyhp/pledge-engine/pkg/errors"
	"github.com/segyhp/pledge-engine/pkg/response"
)

// statusFor maps engine errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case customError.IsNotFound(err):
		return http.StatusNotFound
	case errors.Is(err, customError.ErrConflict),
		errors.Is(err, customError.ErrLockNotAcquired),
		errors.Is(err, customError.ErrPledgeClosed):
		return http.StatusConflict
	case errors.Is(err, customError.ErrPrecondition):
		return http.StatusUnprocessableEntity
	case customError.IsClientError(err):
		return http.StatusBadRequest
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

func (h *PledgeHandler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)

	code := ""
	message := http.StatusText(status)
	var businessErr *customError.BusinessError
	if errors.As(err, &businessErr) {
		code = businessErr.Code
		message = businessErr.Message
	}

	switch {
	case status == http.StatusNotFound:
		response.NotFound(w, code, message)
	case status == http.StatusInternalServerError:
		h.logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "error", err)
		response.InternalServerError(w, code, message)
	case status > http.StatusInternalServerError:
		h.logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "error", err)
		response.ErrorWithCode(w, status, code, message, nil)
	default:
		response.ErrorWithCode(w, status, code, message, err)
	}
}
