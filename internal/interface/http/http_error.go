package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/yanqian/belaycheck/pkg/errors"
)

// Error codes rendered in {"error":{"code"}}. Domain codes from pkg/errors
// pass through unchanged where a client can act on them.
const (
	codeInvalidRequest = "invalid_request"
	codeUnauthorized   = "unauthorized"
	codeRateLimited    = "rate_limit_exceeded"
	codeSessionFailed  = "session_failed"
	codeInternal       = "internal_error"
)

// HTTPError is the transport form of a failure: status, public code and
// message, plus the cause for logging.
type HTTPError struct {
	Status  int
	Code    string
	Message string
	Err     error
}

// Error implements the error interface.
func (e *HTTPError) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

// NewHTTPError builds an HTTPError.
func NewHTTPError(status int, code, message string, err error) *HTTPError {
	return &HTTPError{Status: status, Code: code, Message: message, Err: err}
}

func badRequest(message string, err error) *HTTPError {
	return NewHTTPError(http.StatusBadRequest, codeInvalidRequest, message, err)
}

// fromDomainError maps a pkg/errors code onto a status. Storage outages are
// 503 so the retry wrapper can replay them.
func fromDomainError(err error) *HTTPError {
	switch apperrors.CodeOf(err) {
	case apperrors.CodeInvalidInput:
		return badRequest(errMessage(err), err)
	case apperrors.CodeInvalidToken:
		return NewHTTPError(http.StatusUnauthorized, apperrors.CodeInvalidToken, errMessage(err), err)
	case apperrors.CodeStorage:
		return NewHTTPError(http.StatusServiceUnavailable, apperrors.CodeStorage, "client state is temporarily unavailable", err)
	case apperrors.CodeSession:
		return NewHTTPError(http.StatusInternalServerError, apperrors.CodeSession, errMessage(err), err)
	default:
		return NewHTTPError(http.StatusInternalServerError, codeInternal, "something went wrong", err)
	}
}

func asHTTPError(err error) *HTTPError {
	if err == nil {
		return nil
	}
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}
	return fromDomainError(err)
}

func abortWithError(c *gin.Context, err *HTTPError) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}

func abortWithDomainError(c *gin.Context, err error) {
	abortWithError(c, fromDomainError(err))
}

func errMessage(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
