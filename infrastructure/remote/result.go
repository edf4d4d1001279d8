package remote

import (
	apperrors "github.com/keilahoriye/tilapiasuprememobile/pkg/errors"
)

// Result the {success, data | message} shape of an operation outcome, used
// for JSON output.
type Result[T any] struct {
	Success bool                `json:"success"`
	Data    T                   `json:"data,omitempty"`
	Message string              `json:"message,omitempty"`
	Code    apperrors.ErrorCode `json:"code,omitempty"`
}

// ResultOf folds an operation's (value, error) pair into a Result
func ResultOf[T any](v T, err error) Result[T] {
	if err != nil {
		appErr := apperrors.AsAppError(err)
		return Result[T]{Message: appErr.Message, Code: appErr.Code}
	}
	return Result[T]{Success: true, Data: v}
}
