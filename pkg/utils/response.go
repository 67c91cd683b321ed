package utils

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	appErrors "ewaste-tracker/pkg/errors"
)

// Response is the JSON envelope returned by every endpoint.
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func SuccessResponse(c *gin.Context, status int, message string, data interface{}) {
	c.JSON(status, Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

func ErrorResponse(c *gin.Context, status int, message string) {
	c.JSON(status, Response{
		Success: false,
		Message: message,
	})
}

// ServiceErrorResponse maps a service error to an HTTP status by its
// application error code and renders the standard envelope.
func ServiceErrorResponse(c *gin.Context, err error) {
	var notQualified *appErrors.NotQualifiedError
	if errors.As(err, &notQualified) {
		c.JSON(http.StatusForbidden, gin.H{
			"success":        false,
			"message":        notQualified.Error(),
			"totalQualified": notQualified.Qualified,
			"required":       notQualified.Required,
		})
		return
	}

	status := http.StatusBadRequest
	switch appErrors.CodeOf(err) {
	case appErrors.CodeNotFound:
		status = http.StatusNotFound
	case appErrors.CodeUnauthorized:
		status = http.StatusForbidden
	case appErrors.CodeNotQualified:
		status = http.StatusForbidden
	case appErrors.CodeInvalidInput, appErrors.CodeInvalidState,
		appErrors.CodeInvalidOTP, appErrors.CodeValidation:
		status = http.StatusBadRequest
	}

	ErrorResponse(c, status, err.Error())
}
