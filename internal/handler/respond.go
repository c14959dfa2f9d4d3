package handler

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"taskboard/internal/middleware"
	"taskboard/internal/validation"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	msgMissingFields = "Missing required fields"
	msgInternal      = "Internal server error"
)

// ErrorResponse is the body of every non-2xx JSON answer.
type ErrorResponse struct {
	Error   string                  `json:"error"`
	Details []validation.FieldError `json:"details,omitempty"`
}

// MessageResponse confirms an operation that returns no row.
type MessageResponse struct {
	Message string `json:"message"`
}

func abortWithError(c *gin.Context, status int, msg string) {
	c.JSON(status, ErrorResponse{Error: msg})
}

// internalError logs err server-side and answers with a detail-free 500.
func internalError(c *gin.Context, log *zap.Logger, msg string, err error) {
	log.Error(msg,
		zap.Error(err),
		zap.String("request_id", c.GetString(middleware.RequestIDKey)),
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
	)
	abortWithError(c, http.StatusInternalServerError, msgInternal)
}

// bindAndValidate decodes the JSON body into req and checks its shape.
// On failure it writes the response and returns false.
func bindAndValidate(c *gin.Context, log *zap.Logger, req any, invalidMsg string) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		if errors.Is(err, io.EOF) {
			abortWithError(c, http.StatusBadRequest, msgMissingFields)
			return false
		}
		abortWithError(c, http.StatusBadRequest, invalidMsg)
		return false
	}

	err := validation.Struct(req)
	if err == nil {
		return true
	}

	var verr *validation.Error
	if !errors.As(err, &verr) {
		internalError(c, log, "validator failure", err)
		return false
	}
	if verr.MissingRequired() {
		abortWithError(c, http.StatusBadRequest, msgMissingFields)
		return false
	}
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: invalidMsg, Details: verr.Fields})
	return false
}

// idParam parses a positive integer path parameter.
func idParam(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		abortWithError(c, http.StatusBadRequest, "Invalid "+name)
		return 0, false
	}
	return id, true
}
