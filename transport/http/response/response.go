package response

import (
	"encoding/json"
	"net/http"

	"minihotel/shared/constant"
	"minihotel/shared/failure"
	"minihotel/shared/logger"
)

type Data[T any] struct {
	Data *T `json:"data,omitempty"`
}

type Error struct {
	Error *string `json:"error,omitempty"`
}

type Message struct {
	Message *string `json:"message,omitempty"`
}

// WithMessage sends a response carrying a plain text message.
func WithMessage(writer http.ResponseWriter, code int, message string) {
	write(writer, code, Message{Message: &message})
}

// WithJSON sends a response wrapping the payload in a data envelope.
func WithJSON(writer http.ResponseWriter, code int, payload any) {
	write(writer, code, Data[any]{Data: &payload})
}

// WithError sends an error response. The status code comes from the
// failure attached to err, defaulting to 500 for untyped errors.
func WithError(writer http.ResponseWriter, err error) {
	message := err.Error()

	write(writer, failure.GetCode(err), Error{Error: &message})
}

// WithRequestLimitExceeded is the rate limiter rejection response.
func WithRequestLimitExceeded(writer http.ResponseWriter) {
	WithMessage(writer, http.StatusTooManyRequests, constant.ResponseErrorRequestLimitExceeded)
}

// WithPreparingShutdown is the health response during graceful shutdown.
func WithPreparingShutdown(writer http.ResponseWriter) {
	WithMessage(writer, http.StatusServiceUnavailable, constant.ResponseErrorPrepareShutdown)
}

// WithUnhealthy is the health response when a dependency check fails.
func WithUnhealthy(writer http.ResponseWriter) {
	WithMessage(writer, http.StatusServiceUnavailable, constant.ResponseErrorUnhealthy)
}

func write(writer http.ResponseWriter, code int, payload any) {
	body, err := json.Marshal(payload)
	if err != nil {
		logger.ErrorWithStack(err)

		return
	}

	writer.Header().Set(constant.RequestHeaderContentType, constant.ContentTypeJSON)
	writer.WriteHeader(code)

	if _, err = writer.Write(body); err != nil {
		logger.ErrorWithStack(err)
	}
}
