package response

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// RequestIDKey is the gin context key holding the request id.
const RequestIDKey = "request_id"

type APIResponse[T any] struct {
	Status    int         `json:"status"`
	Timestamp time.Time   `json:"timestamp"`
	RequestID string      `json:"request_id"`
	Success   bool        `json:"success"`
	Message   string      `json:"message"`
	Data      T           `json:"data,omitempty"`
	Meta      interface{} `json:"meta,omitempty"`
	Error     interface{} `json:"error,omitempty"`
}

// Success writes a success envelope and returns it.
func Success[T any](ctx *gin.Context, status int, data T, message string, meta interface{}) APIResponse[T] {
	if status == 0 {
		status = http.StatusOK
	}
	resp := APIResponse[T]{
		Status:    status,
		Timestamp: time.Now(),
		RequestID: ctx.GetString(RequestIDKey),
		Success:   true,
		Message:   message,
		Data:      data,
		Meta:      meta,
	}
	ctx.JSON(status, resp)
	return resp
}

// Error writes an error envelope and returns it. Use Abort for middleware.
func Error[T any](ctx *gin.Context, status int, message string, err interface{}) APIResponse[T] {
	resp := build[T](ctx, status, message, err)
	ctx.JSON(resp.Status, resp)
	return resp
}

// Abort writes an error envelope and stops the handler chain.
func Abort(ctx *gin.Context, status int, message string, err interface{}) {
	resp := build[any](ctx, status, message, err)
	ctx.AbortWithStatusJSON(resp.Status, resp)
}

// NotFound answers unmatched routes with the error envelope.
func NotFound(ctx *gin.Context) {
	Abort(ctx, http.StatusNotFound, "route not found", map[string]string{"path": ctx.Request.URL.Path})
}

// MethodNotAllowed answers known paths requested with an unsupported method.
func MethodNotAllowed(ctx *gin.Context) {
	Abort(ctx, http.StatusMethodNotAllowed, "method not allowed", map[string]string{"method": ctx.Request.Method})
}

func build[T any](ctx *gin.Context, status int, message string, err interface{}) APIResponse[T] {
	if status == 0 {
		status = http.StatusBadRequest
	}
	return APIResponse[T]{
		Status:    status,
		Timestamp: time.Now(),
		RequestID: ctx.GetString(RequestIDKey),
		Success:   false,
		Message:   message,
		Error:     err,
	}
}
