package v1

import (
	"errors"
	"net/http"

	"github.com/dmehra2102/prod-golang-projects/emergencykb/internal/domain/protocol"
	"github.com/dmehra2102/prod-golang-projects/emergencykb/internal/service"
	"github.com/dmehra2102/prod-golang-projects/emergencykb/pkg/errreport"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type APIResponse[T any] struct {
	Data    T      `json:"data"`
	Message string `json:"message,omitempty"`
}

type ListResponse[T any] struct {
	Data  []T `json:"data"`
	Count int `json:"count"`
}

type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

type ValidationErrorResponse struct {
	Error  string   `json:"error"`
	Fields []string `json:"fields"`
}

func respondOK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, APIResponse[any]{Data: data})
}

// respondList always renders a JSON array, never null.
func respondList[T any](c *gin.Context, items []T) {
	if items == nil {
		items = []T{}
	}
	c.JSON(http.StatusOK, ListResponse[T]{Data: items, Count: len(items)})
}

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, ErrorResponse{Error: message})
}

func (h *Handler) respondServiceError(c *gin.Context, err error) {
	var validErr *service.ValidationError
	if errors.As(err, &validErr) {
		c.JSON(http.StatusBadRequest, ValidationErrorResponse{
			Error:  "validation failed",
			Fields: validErr.Fields,
		})
		return
	}

	switch {
	case errors.Is(err, protocol.ErrProtocolNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error(), Code: "PROTOCOL_NOT_FOUND"})

	default:
		h.log.Error("unhandled service error",
			zap.Error(err),
			zap.String("request_id", requestID(c)),
		)
		errreport.Capture(c.Request.Context(), err, requestID(c))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
	}
}

func bindJSON(c *gin.Context, obj any) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request: " + err.Error()})
		return false
	}

	return true
}

func callerFrom(c *gin.Context) service.Caller {
	return service.Caller{RequestID: requestID(c), IPAddress: c.ClientIP()}
}
