// Package httputil holds helpers shared by the API packages.
package httputil

import "github.com/gin-gonic/gin"

// ErrorResponse is the JSON error envelope returned by every API.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

type ErrorDetail struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	Parameter string `json:"parameter,omitempty"`
}

// SendErrorResponse 发送错误响应（可被其他API模块使用）
func SendErrorResponse(c *gin.Context, statusCode int, errorCode, message string) {
	c.JSON(statusCode, ErrorResponse{
		Error: ErrorDetail{
			Code:    errorCode,
			Message: message,
		},
	})
}
