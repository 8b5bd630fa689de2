package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	errInternalServer     = "Internal server error"
	errInvalidCredentials = "Invalid email or password"
	errEmailTaken         = "That email address is already in use"
	errTokenInvalid       = "Token is invalid or expired"
	errTurnstileRequired  = "Turnstile verification is required"
	errSignedReqMissing   = "signed_request missing"
	errUserIDMissing      = "user_id missing in signed_request"
	errForbidden          = "Forbidden"
)

type errorDetail struct {
	Message    string `json:"message"`
	StatusText string `json:"statusText"`
}

type errorBody struct {
	Error errorDetail `json:"error"`
}

// respondError writes the API's error envelope:
// {"error":{"message":..., "statusText":...}}.
func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, errorBody{Error: errorDetail{
		Message:    message,
		StatusText: http.StatusText(status),
	}})
}

// respondInternal writes a generic 500. Outside production the underlying
// error text is appended so local debugging doesn't need log access.
func respondInternal(c *gin.Context, debug bool, err error) {
	message := errInternalServer
	if debug && err != nil {
		message = errInternalServer + ": " + err.Error()
	}
	respondError(c, http.StatusInternalServerError, message)
}
