package middleware

import (
	"context"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"decanat/pkg/jwt"
	"decanat/pkg/response"
)

// 上下文键，与 handler.CtxUserID / CtxRole / CtxClaims 保持一致
const (
	ctxUserID    = "user_id"
	ctxRole      = "role"
	ctxProfileID = "profile_id"
	ctxClaims    = "token_claims"
)

// TokenChecker 查询 Token 是否已被注销
type TokenChecker interface {
	IsBlacklisted(ctx context.Context, jti string) (bool, error)
	// TokensRevokedAt 账号级失效时间点，早于它签发的 Token 一律拒绝；零值表示未设置
	TokensRevokedAt(ctx context.Context, userID int) (time.Time, error)
}

// JWTAuth JWT 认证中间件
// 从 Authorization: Bearer <token> 中提取并验证 Access Token
// blacklist 为 nil 时跳过黑名单检查；黑名单查询出错时降级放行
func JWTAuth(jwtMgr *jwt.Manager, blacklist TokenChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, 10002, "缺少认证头")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.Unauthorized(c, 10002, "认证头格式无效")
			c.Abort()
			return
		}

		claims, err := jwtMgr.ParseToken(parts[1])
		if err != nil {
			response.Unauthorized(c, 10002, "Token 无效或已过期")
			c.Abort()
			return
		}

		if blacklist != nil {
			if claims.ID != "" {
				revoked, err := blacklist.IsBlacklisted(c.Request.Context(), claims.ID)
				if err == nil && revoked {
					response.Unauthorized(c, 10002, "Token 已注销")
					c.Abort()
					return
				}
			}

			// 角色变更后旧 Token 失效，需重新登录
			revokedAt, err := blacklist.TokensRevokedAt(c.Request.Context(), claims.UserID)
			if err == nil && !revokedAt.IsZero() && claims.IssuedAt != nil && claims.IssuedAt.Time.Before(revokedAt) {
				response.Unauthorized(c, 10002, "账号权限已变更，请重新登录")
				c.Abort()
				return
			}
		}

		// 将用户信息注入上下文
		c.Set(ctxUserID, claims.UserID)
		c.Set(ctxRole, claims.Role)
		c.Set(ctxProfileID, claims.ProfileID)
		c.Set(ctxClaims, claims)

		c.Next()
	}
}

// RoleAuth 角色权限中间件
// 检查当前用户是否具有指定角色之一
func RoleAuth(allowedRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get(ctxRole)
		if !exists {
			response.Unauthorized(c, 10002, "未认证")
			c.Abort()
			return
		}

		userRole, _ := role.(string)
		for _, r := range allowedRoles {
			if userRole == r {
				c.Next()
				return
			}
		}

		response.Forbidden(c, 10003, "无权限访问")
		c.Abort()
	}
}
