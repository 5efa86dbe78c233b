package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/bondpulse/internal/domain/dto"
	"github.com/guttosm/bondpulse/internal/domain/errs"
)

// AbortWithError writes a standardized error response with the given
// status and stops the handler chain.
func AbortWithError(c *gin.Context, status int, message string, err error) {
	c.AbortWithStatusJSON(status, dto.NewErrorResponse(message, err))
}

// ErrorHandler is a Gin middleware that converts errors attached to the
// context by handlers into standardized JSON responses, mapping the
// pipeline's error taxonomy onto HTTP status codes:
//
//   - ValidationError     -> 400 Bad Request
//   - QueryExecutionError -> 502 Bad Gateway (surfaced verbatim, no retry)
//   - anything else       -> 500 Internal Server Error
//
// Handlers that already wrote a response are left alone.
func ErrorHandler(c *gin.Context) {
	c.Next()

	if len(c.Errors) == 0 || c.Writer.Written() {
		return
	}

	err := c.Errors.Last().Err

	var validation *errs.ValidationError
	if errors.As(err, &validation) {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse("invalid request", validation))
		return
	}

	var queryErr *errs.QueryExecutionError
	if errors.As(err, &queryErr) {
		c.JSON(http.StatusBadGateway, dto.NewErrorResponse("query execution failed", queryErr))
		return
	}

	c.JSON(http.StatusInternalServerError, dto.NewErrorResponse("internal error", err))
}
