package apperror

import (
	"context"
	"errors"
	"net/http"
)

// HTTPError is the boundary representation handed to the response writer.
type HTTPError struct {
	Status  int
	Code    string
	Message string
	Details any
}

// ToHTTP classifies any error for the HTTP boundary. Unknown errors map to a
// generic 500 so internal details never leak; context deadline errors map to
// 503 because they mean the store or a dependency timed out.
func ToHTTP(err error) HTTPError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return HTTPError{
			Status:  appErr.HTTPStatus,
			Code:    appErr.Code,
			Message: appErr.Message,
		}
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return HTTPError{
			Status:  http.StatusServiceUnavailable,
			Code:    CodeServiceUnavailable,
			Message: ErrServiceUnavailable.Message,
		}
	}

	return HTTPError{
		Status:  http.StatusInternalServerError,
		Code:    CodeInternalError,
		Message: ErrInternal.Message,
	}
}
