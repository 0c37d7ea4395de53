// Package router 提供 HTTP 路由注册
// 本文件定义认证相关的路由
package router

import (
	"github.com/gin-gonic/gin"

	"yunke_visitor_server/internal/infrastructure/middleware"
)

// RegisterAuthRoutes 注册认证相关路由
func (rt *Router) RegisterAuthRoutes(r *gin.Engine) {
	authGroup := r.Group("/auth")
	{
		// POST /auth/member/login - 成员密码登录
		authGroup.POST("/member/login", rt.handlers.Auth.MemberLogin)
		// POST /auth/admin/login - 管理员密码登录
		authGroup.POST("/admin/login", rt.handlers.Auth.AdminLogin)
		// POST /auth/refresh - 刷新 Access Token
		authGroup.POST("/refresh", rt.handlers.Auth.RefreshToken)
		// POST /auth/visitor/smsCode - 访客状态查询验证码
		authGroup.POST("/visitor/smsCode", rt.handlers.Auth.SendVisitorSmsCode)
		// POST /auth/logout - 注销 refresh token
		authGroup.POST("/logout", middleware.JWTAuth(), rt.handlers.Auth.Logout)
	}
}
