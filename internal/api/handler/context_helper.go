package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"decanat/pkg/jwt"
	"decanat/pkg/response"
)

// 上下文键，由 middleware.JWTAuth 注入
const (
	CtxUserID = "user_id"
	CtxRole   = "role"
	CtxClaims = "token_claims"
)

// MustGetUserID 从 Gin 上下文中安全提取 user_id。
// 如果 JWT 中间件未正确注入 user_id，返回 false 并写入 401 响应。
// 调用方应在 ok=false 时直接 return。
func MustGetUserID(c *gin.Context) (int, bool) {
	v, exists := c.Get(CtxUserID)
	if !exists {
		response.Unauthorized(c, 10002, "未认证")
		return 0, false
	}
	id, ok := v.(int)
	if !ok || id <= 0 {
		response.Unauthorized(c, 10002, "未认证")
		return 0, false
	}
	return id, true
}

// MustGetClaims 提取当前请求的 Token 声明
func MustGetClaims(c *gin.Context) (*jwt.Claims, bool) {
	v, exists := c.Get(CtxClaims)
	if !exists {
		response.Unauthorized(c, 10002, "未认证")
		return nil, false
	}
	claims, ok := v.(*jwt.Claims)
	if !ok || claims == nil {
		response.Unauthorized(c, 10002, "未认证")
		return nil, false
	}
	return claims, true
}

// ParseIDParam 解析路径中的正整数 ID，失败时写入 400 响应
func ParseIDParam(c *gin.Context, name string) (int, bool) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil || id <= 0 {
		response.BadRequest(c, 10001, "ID 无效")
		return 0, false
	}
	return id, true
}
