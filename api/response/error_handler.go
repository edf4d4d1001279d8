package response

import (
	stdErrors "errors"
	"net/http"
	"runtime"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/keilahoriye/tilapiasuprememobile/domain/order"
	"github.com/keilahoriye/tilapiasuprememobile/domain/shared"
	"github.com/keilahoriye/tilapiasuprememobile/domain/user"
	"github.com/keilahoriye/tilapiasuprememobile/pkg/errors"
	"github.com/keilahoriye/tilapiasuprememobile/pkg/logger"
)

func getRequestID(c *gin.Context) string {
	if requestID, exists := c.Get(RequestIDKey); exists {
		if id, ok := requestID.(string); ok {
			return id
		}
	}
	return ""
}

func GetRequestID(c *gin.Context) string {
	return getRequestID(c)
}

func captureStack(skip int) []string {
	var pcs [16]uintptr
	n := runtime.Callers(skip, pcs[:])
	frames := runtime.CallersFrames(pcs[:n])

	stack := make([]string, 0, 5)
	for i := 0; i < 5; i++ {
		frame, more := frames.Next()
		if frame.Function != "" {
			stack = append(stack, frame.Function)
		}
		if !more {
			break
		}
	}
	return stack
}

// FromDomainError classifies err. AppErrors pass through; domain sentinels
// map to their code and keep the domain message; anything else is internal.
func FromDomainError(err error) *errors.AppError {
	var appErr *errors.AppError
	if stdErrors.As(err, &appErr) {
		return appErr
	}

	switch {
	case stdErrors.Is(err, order.ErrOrderNotFound):
		return errors.Wrap(err, errors.CodeOrderNotFound, err.Error())
	case stdErrors.Is(err, order.ErrUnknownProduct):
		return errors.Wrap(err, errors.CodeUnknownProduct, err.Error())
	case stdErrors.Is(err, order.ErrMissingOrderID):
		return errors.Wrap(err, errors.CodeInvalidOrderRef, err.Error())
	case stdErrors.Is(err, order.ErrIncompleteDraft), stdErrors.Is(err, shared.ErrInvalidInput):
		return errors.Wrap(err, errors.CodeValidation, err.Error())
	case stdErrors.Is(err, user.ErrInvalidCredentials):
		return errors.Wrap(err, errors.CodeUnauthorized, err.Error())
	case stdErrors.Is(err, shared.ErrNotFound):
		return errors.Wrap(err, errors.CodeNotFound, err.Error())
	case stdErrors.Is(err, shared.ErrConflict):
		return errors.Wrap(err, errors.CodeConflict, err.Error())
	}
	return errors.Wrap(err, errors.CodeInternal, "internal server error")
}

// HandleError answers a framework level failure, such as a body that does
// not bind, with 400
func HandleError(c *gin.Context, err error, message string, code int) {
	requestID := getRequestID(c)

	logger.Warn(message,
		zap.String("request_id", requestID),
		zap.String("path", c.Request.URL.Path),
		zap.String("method", c.Request.Method),
		zap.Int("status", code),
		zap.Error(err))

	c.JSON(code, &Response{
		Success:   false,
		Error:     string(errors.CodeBadRequest),
		Message:   message,
		Code:      code,
		RequestID: requestID,
	})
}

// HandleAppError maps err to its status and writes the error body. Internal
// errors are logged in full and answered with a generic message.
func HandleAppError(c *gin.Context, err error) {
	requestID := getRequestID(c)
	appErr := FromDomainError(err)
	httpStatus := appErr.HTTPStatusCode()

	fields := []zap.Field{
		zap.String("request_id", requestID),
		zap.String("path", c.Request.URL.Path),
		zap.String("method", c.Request.Method),
		zap.String("error_code", string(appErr.Code)),
		zap.Int("http_status", httpStatus),
	}
	if appErr.Err != nil {
		fields = append(fields, zap.Error(appErr.Err))
	}

	userMessage := appErr.Message
	if httpStatus >= http.StatusInternalServerError {
		fields = append(fields, zap.Strings("stack", extractStack(err)))
		logger.Error(appErr.Message, fields...)
		if appErr.Code == errors.CodeInternal {
			userMessage = "internal server error"
		}
	} else {
		logger.Info(appErr.Message, fields...)
	}

	c.JSON(httpStatus, &Response{
		Success:   false,
		Error:     string(appErr.Code),
		Message:   userMessage,
		Code:      httpStatus,
		RequestID: requestID,
	})
}

// extractStack prefers the stack recorded where the error was created and
// falls back to the handling site
func extractStack(err error) []string {
	var stacker shared.Stacker
	if stdErrors.As(err, &stacker) {
		if stack := stacker.Stack(); len(stack) > 0 {
			return stack
		}
	}
	return captureStack(4)
}
