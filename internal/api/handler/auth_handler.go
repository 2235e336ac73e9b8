package handler

import (
	"github.com/gin-gonic/gin"

	"decanat/internal/dto"
	"decanat/internal/service"
	"decanat/pkg/response"
)

// HeaderAccessToken 登录成功后下发 Access Token 的响应头
const HeaderAccessToken = "X-Access-Token"

// AuthHandler 认证模块 HTTP 处理器
type AuthHandler struct {
	authSvc service.AuthService
}

// NewAuthHandler 创建 AuthHandler
func NewAuthHandler(authSvc service.AuthService) *AuthHandler {
	return &AuthHandler{authSvc: authSvc}
}

// Login 用户登录
// POST /api/auth/login
// 响应体为 UserInfo，Token 通过 X-Access-Token 响应头下发
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.authSvc.Login(c.Request.Context(), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.Header(HeaderAccessToken, result.AccessToken)
	response.OK(c, result.User)
}

// Register 注册
// POST /api/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	info, err := h.authSvc.Register(c.Request.Context(), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.OK(c, info)
}

// Logout 用户登出
// POST /api/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	claims, ok := MustGetClaims(c)
	if !ok {
		return
	}

	if err := h.authSvc.Logout(c.Request.Context(), claims); err != nil {
		handleServiceError(c, err)
		return
	}

	response.NoContent(c)
}

// Me 当前账号信息
// GET /api/auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	info, err := h.authSvc.Me(c.Request.Context(), userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.OK(c, info)
}
