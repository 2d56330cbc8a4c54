package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"staff-form/backend/internal/dto"
	"staff-form/backend/internal/service"
	"staff-form/backend/pkg/response"
)

// AuthHandler 认证模块 HTTP 处理器
type AuthHandler struct {
	authSvc service.AuthService
}

// NewAuthHandler 创建 AuthHandler
func NewAuthHandler(authSvc service.AuthService) *AuthHandler {
	return &AuthHandler{authSvc: authSvc}
}

// SendOTP 发送注册验证码
// POST /api/v1/auth/otp/send
func (h *AuthHandler) SendOTP(c *gin.Context) {
	var req dto.SendOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.authSvc.SendOTP(c.Request.Context(), &req)
	if err != nil {
		h.handleAuthError(c, err)
		return
	}

	response.OK(c, result)
}

// VerifyOTP 校验验证码并建档
// POST /api/v1/auth/otp/verify
func (h *AuthHandler) VerifyOTP(c *gin.Context) {
	var req dto.VerifyOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.authSvc.VerifyOTP(c.Request.Context(), &req)
	if err != nil {
		h.handleAuthError(c, err)
		return
	}

	response.OK(c, result)
}

// CreatePassword 设置密码（OTP 验证通过后）
// POST /api/v1/auth/password
func (h *AuthHandler) CreatePassword(c *gin.Context) {
	var req dto.CreatePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.authSvc.CreatePassword(c.Request.Context(), &req)
	if err != nil {
		h.handleAuthError(c, err)
		return
	}

	response.Created(c, result)
}

// Login 手机号密码登录
// POST /api/v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.authSvc.Login(c.Request.Context(), &req)
	if err != nil {
		h.handleAuthError(c, err)
		return
	}

	response.OK(c, result)
}

// RefreshToken 刷新 Token 对（旧 refresh token 作废）
// POST /api/v1/auth/refresh
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var req dto.RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.authSvc.RefreshToken(c.Request.Context(), &req)
	if err != nil {
		h.handleAuthError(c, err)
		return
	}

	response.OK(c, result)
}

// Logout 用户登出（当前 token 拉黑至自然过期）
// POST /api/v1/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	claims, ok := MustGetClaims(c)
	if !ok {
		return
	}

	if err := h.authSvc.Logout(c.Request.Context(), claims); err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, nil)
}

// MarkDone 标记注册向导全部完成
// POST /api/v1/auth/done
func (h *AuthHandler) MarkDone(c *gin.Context) {
	var req dto.MarkDoneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	if err := h.authSvc.MarkDone(c.Request.Context(), &req); err != nil {
		h.handleAuthError(c, err)
		return
	}

	response.OK(c, nil)
}

// handleAuthError 统一处理认证模块业务错误
func (h *AuthHandler) handleAuthError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		response.Unauthorized(c, 11001, "手机号或密码错误")
	case errors.Is(err, service.ErrUserNotFound):
		response.NotFound(c, 11002, "用户不存在")
	case errors.Is(err, service.ErrOTPInvalid):
		response.BadRequest(c, 11003, "验证码错误或已过期")
	case errors.Is(err, service.ErrOTPRateLimited):
		response.Error(c, http.StatusTooManyRequests, 11004, "验证码发送过于频繁，请稍后再试")
	case errors.Is(err, service.ErrLoginRateLimited):
		response.Error(c, http.StatusTooManyRequests, 11005, "登录尝试过多，请稍后再试")
	case errors.Is(err, service.ErrPhoneNotVerified):
		response.Forbidden(c, 11006, "手机号未验证")
	case errors.Is(err, service.ErrPasswordTooWeak):
		response.BadRequest(c, 11007, "密码须包含大小写字母、数字和符号，且不少于 8 位")
	case errors.Is(err, service.ErrRefreshTokenNeeded):
		response.Unauthorized(c, 11008, "refresh token 无效或已作废")
	default:
		response.InternalError(c)
	}
}
