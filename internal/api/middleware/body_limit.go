package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// BodyLimit 全局请求体大小限制中间件
// maxBytes <= 0 时不限制；超限的请求在绑定时失败，由 Handler 返回 400
func BodyLimit(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if maxBytes > 0 && c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		}
		c.Next()
	}
}
