package errors

import (
	"net/http"
	"time"

	"note/api/models/dtos"
)

/*
	Utility functions to facilitate returning error responses to HTTP clients
*/

// CreateSimpleError wraps messages into a response for the given status code
func CreateSimpleError(code int, messages ...string) dtos.GeneralErrorResponseDto {
	errs := make([]dtos.GeneralError, 0, len(messages))
	for _, m := range messages {
		errs = append(errs, dtos.GeneralError{Message: m})
	}

	return dtos.GeneralErrorResponseDto{
		Code:      code,
		Message:   http.StatusText(code),
		Timestamp: time.Now(),
		Errors:    errs,
	}
}

// -- Simplest: 1 error with message
func CreateSimpleBadRequest(message string) dtos.GeneralErrorResponseDto {
	return CreateSimpleError(http.StatusBadRequest, message)
}

func CreateSimpleNotFound(message string) dtos.GeneralErrorResponseDto {
	return CreateSimpleError(http.StatusNotFound, message)
}

// --
