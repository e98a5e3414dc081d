package apperror

import "fmt"

// AppError is the structured error every service boundary returns. Handlers
// translate it to the HTTP envelope via ToHTTP; anything that is not an
// AppError is treated as internal.
type AppError struct {
	Code       string // stable machine code (e.g. INVALID_STATE)
	Message    string // human-readable message
	HTTPStatus int
	Err        error // wrapped cause (optional)
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func New(code, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}

// Wrap attaches taxonomy to an underlying error. Returns nil when err is nil
// so call sites can pass through repository results unconditionally.
func Wrap(err error, code, message string, httpStatus int) *AppError {
	if err == nil {
		return nil
	}
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Err:        err,
	}
}
