package response

import (
	"github.com/gin-gonic/gin"
)

// ErrorBody is the uniform failure envelope: {"error": <description>}.
type ErrorBody struct {
	Error any `json:"error"`
}

// FieldError describes a rejected request field.
type FieldError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// Deleted is returned by successful DELETE requests.
type Deleted struct {
	Status string `json:"status"`
}

// JSON writes v as the response body.
func JSON(ctx *gin.Context, status int, v any) {
	ctx.JSON(status, v)
}

// Error aborts the chain and writes the failure envelope.
func Error(ctx *gin.Context, status int, description any) {
	ctx.AbortWithStatusJSON(status, ErrorBody{Error: description})
}
