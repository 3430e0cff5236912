package handlers

import (
	"net/http"
	"strings"

	"github.com/danielgtaylor/huma/v2"
	"github.com/serroba/shorturl-service/internal/shortener"
	"go.uber.org/zap"
)

// ErrorModel is the body of every error response: {"error": "<message>"}.
type ErrorModel struct {
	Status  int    `json:"-"`
	Message string `json:"error"`
}

func (e *ErrorModel) Error() string {
	return e.Message
}

// GetStatus implements huma.StatusError.
func (e *ErrorModel) GetStatus() int {
	return e.Status
}

// NewError builds an ErrorModel. Request validation failures, which huma
// reports as 422, are answered with 400.
func NewError(status int, msg string, errs ...error) huma.StatusError {
	if status == http.StatusUnprocessableEntity {
		status = http.StatusBadRequest
	}

	details := make([]string, 0, len(errs))
	for _, err := range errs {
		if err != nil {
			details = append(details, err.Error())
		}
	}

	if len(details) > 0 {
		msg = msg + ": " + strings.Join(details, "; ")
	}

	return &ErrorModel{Status: status, Message: msg}
}

func init() {
	huma.NewError = NewError
}

// writeError maps a service error to its HTTP status.
func writeError(logger *zap.Logger, op string, err error) error {
	switch shortener.KindOf(err) {
	case shortener.KindInvalid:
		return huma.Error400BadRequest(err.Error())
	case shortener.KindNotFound:
		return huma.Error404NotFound(err.Error())
	default:
		logger.Error("request failed", zap.String("operation", op), zap.Error(err))

		return huma.Error500InternalServerError(err.Error())
	}
}
