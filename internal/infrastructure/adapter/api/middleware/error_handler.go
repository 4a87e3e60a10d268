package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	errs "github.com/amirhossein-jamali/wager-ledger/internal/domain/error"
	coreport "github.com/amirhossein-jamali/wager-ledger/internal/domain/port/core"
	"github.com/amirhossein-jamali/wager-ledger/internal/infrastructure/adapter/api/dto"
)

// ErrorHandler recovers from panics and renders errors attached with c.Error
// when the handler has not written a response itself
func ErrorHandler(logger coreport.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				logger.Error("Panic recovered in API request", map[string]any{
					"error":      err,
					"path":       c.Request.URL.Path,
					"method":     c.Request.Method,
					"client_ip":  c.ClientIP(),
					"request_id": coreport.RequestIDFrom(c.Request.Context()),
					"user_agent": c.Request.UserAgent(),
				})

				c.AbortWithStatusJSON(http.StatusInternalServerError, dto.ErrorResponse{
					Code:    errs.ErrorCode(errs.ErrInternalServer),
					Message: "Internal server error",
				})
			}
		}()

		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}
		err := c.Errors.Last().Err
		status := StatusCode(err)
		if status >= http.StatusInternalServerError {
			fields := map[string]any{
				"error":      err.Error(),
				"path":       c.FullPath(),
				"request_id": coreport.RequestIDFrom(c.Request.Context()),
			}
			logger.Error("Request failed", fields)
		}
		c.AbortWithStatusJSON(status, ErrorResponse(err))
	}
}

// StatusCode maps an error's kind to an HTTP status
func StatusCode(err error) int {
	var bindErr *BindError
	if errors.As(err, &bindErr) {
		return http.StatusBadRequest
	}
	switch errs.Kind(err) {
	case errs.ErrNotFound:
		return http.StatusNotFound
	case errs.ErrForbidden:
		return http.StatusForbidden
	case errs.ErrUnauthorized:
		return http.StatusUnauthorized
	case errs.ErrInvalidInput, errs.ErrInsufficientBalance:
		return http.StatusBadRequest
	case errs.ErrAlreadyProcessed, errs.ErrAlreadySettled, errs.ErrRoundClosed, errs.ErrConflict:
		return http.StatusConflict
	case errs.ErrStoreFailure:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// ErrorResponse builds the response body; internal details are not exposed
func ErrorResponse(err error) dto.ErrorResponse {
	var bindErr *BindError
	if errors.As(err, &bindErr) {
		return dto.ErrorResponse{
			Code:    errs.CodeInvalidInput,
			Message: "invalid request",
			Fields:  dto.FieldErrors(bindErr.Err),
		}
	}

	kind := errs.Kind(err)
	message := err.Error()
	switch kind {
	case errs.ErrInternalServer:
		message = "Internal server error"
	case errs.ErrStoreFailure:
		message = "Service temporarily unavailable"
	case errs.ErrInsufficientBalance:
		message = errs.ErrInsufficientBalance.Error()
	}
	return dto.ErrorResponse{Code: errs.ErrorCode(err), Message: message}
}

// BindError marks a request body or query that failed binding or validation
type BindError struct {
	Err error
}

func (e *BindError) Error() string { return "invalid request: " + e.Err.Error() }

func (e *BindError) Unwrap() error { return e.Err }
