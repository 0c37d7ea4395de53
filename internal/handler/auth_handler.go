// Package handler 提供 HTTP 请求处理器
// 本文件处理认证相关的 API 请求
package handler

import (
	"github.com/gin-gonic/gin"

	"yunke_visitor_server/internal/dto/request"
	"yunke_visitor_server/internal/infrastructure/middleware"
	"yunke_visitor_server/internal/service"
)

// AuthHandler 认证 Handler
type AuthHandler struct {
	account service.AccountService
}

// NewAuthHandler 创建认证 Handler 实例
func NewAuthHandler(account service.AccountService) *AuthHandler {
	return &AuthHandler{account: account}
}

// MemberLogin 成员登录
// POST /auth/member/login
// 请求体: request.MemberLoginRequest
func (h *AuthHandler) MemberLogin(c *gin.Context) {
	var req request.MemberLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	rsp, err := h.account.MemberLogin(req)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, rsp)
}

// AdminLogin 管理员登录
// POST /auth/admin/login
// 请求体: request.AdminLoginRequest
func (h *AuthHandler) AdminLogin(c *gin.Context) {
	var req request.AdminLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	rsp, err := h.account.AdminLogin(req)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, rsp)
}

// RefreshToken 刷新 Access Token
// POST /auth/refresh
// 单点互踢：tokenID 与缓存中最新值不一致时拒绝刷新
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var req request.RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	rsp, err := h.account.RefreshToken(req)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, rsp)
}

// Logout 注销当前用户的 refresh token
// POST /auth/logout（需登录）
func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.account.Logout(c.GetString(middleware.CtxUserId)); err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, nil)
}

// SendVisitorSmsCode 给访客手机号下发查询验证码
// POST /auth/visitor/smsCode（公开）
// 请求体: request.SendSmsCodeRequest
func (h *AuthHandler) SendVisitorSmsCode(c *gin.Context) {
	var req request.SendSmsCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	if err := h.account.SendVisitorSmsCode(req.Telephone); err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, nil)
}
