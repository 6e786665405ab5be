package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dmitrijs2005/growflow/internal/common"
)

// Client-facing messages. Internal error text never reaches the response.
const (
	msgUserExists         = "User already exists"
	msgInvalidCredentials = "Invalid Credentials"
	msgNoToken            = "No token provided, authorization denied."
	msgMalformedToken     = `Token format is "Bearer <token>". Authorization denied.`
	msgTokenExpired       = "Token has expired. Authorization denied."
	msgInvalidToken       = "Invalid token. Authorization denied."
	msgTaskNotFound       = "Task not found"
	msgUserNotFound       = "User not found"
	msgNotAuthorized      = "Not authorized"
	msgTaskRemoved        = "Task removed"
	msgTooManyRequests    = "Too many requests, try again later."
	msgBadRequestBody     = "Invalid request body"
	msgServerError        = "Server error"
)

// msgBody is the shape of every error response and of the delete confirmation.
type msgBody struct {
	Msg string `json:"msg"`
}

// statusFor maps a service error to an HTTP status and message. notFoundMsg
// names the missing resource.
func statusFor(err error, notFoundMsg string) (int, string) {
	switch {
	case errors.Is(err, common.ErrorValidation):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, common.ErrorDuplicateIdentity):
		return http.StatusBadRequest, msgUserExists
	case errors.Is(err, common.ErrorInvalidCredentials):
		return http.StatusBadRequest, msgInvalidCredentials
	case errors.Is(err, common.ErrMissingToken):
		return http.StatusUnauthorized, msgNoToken
	case errors.Is(err, common.ErrMalformedToken):
		return http.StatusUnauthorized, msgMalformedToken
	case errors.Is(err, common.ErrTokenExpired):
		return http.StatusUnauthorized, msgTokenExpired
	case errors.Is(err, common.ErrInvalidToken):
		return http.StatusUnauthorized, msgInvalidToken
	case errors.Is(err, common.ErrorForbidden):
		// not 403, to match the rest of the auth failures
		return http.StatusUnauthorized, msgNotAuthorized
	case errors.Is(err, common.ErrorNotFound):
		return http.StatusNotFound, notFoundMsg
	case errors.Is(err, common.ErrorRateLimited):
		return http.StatusTooManyRequests, msgTooManyRequests
	default:
		return http.StatusServiceUnavailable, msgServerError
	}
}

func abortWithError(c *gin.Context, err error, notFoundMsg string) {
	status, msg := statusFor(err, notFoundMsg)
	_ = c.Error(err)
	c.AbortWithStatusJSON(status, msgBody{Msg: msg})
}
