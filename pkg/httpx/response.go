package httpx

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Response 统一响应结构
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// WriteObject 写出成功或失败响应
func WriteObject(c *gin.Context, obj interface{}, err error) {
	if err != nil {
		WriteError(c, http.StatusBadRequest, err)
		return
	}
	c.JSON(http.StatusOK, Response{
		Success: true,
		Data:    obj,
	})
}

// WriteError 写出错误响应
func WriteError(c *gin.Context, status int, err error) {
	c.JSON(status, Response{
		Success: false,
		Message: err.Error(),
	})
}
