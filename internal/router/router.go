// Package router 提供 HTTP 路由注册
// 本文件是路由注册的入口，聚合所有子模块的路由
package router

import (
	"github.com/gin-gonic/gin"

	"yunke_visitor_server/internal/handler"
)

// Router 路由管理器，持有 Handler 聚合实例
type Router struct {
	handlers *handler.Handlers
}

// NewRouter 创建路由管理器
func NewRouter(handlers *handler.Handlers) *Router {
	return &Router{handlers: handlers}
}

// RegisterRoutes 注册所有路由
// 在 http_server.Init() 中调用，按模块分别注册各个路由组
func (rt *Router) RegisterRoutes(r *gin.Engine) {
	rt.RegisterAuthRoutes(r)         // 认证路由（登录、Token 刷新、访客验证码）
	rt.RegisterVisitRequestRoutes(r) // 访问请求生命周期路由
	rt.RegisterAdminRoutes(r)        // 管理端路由（档案、代操作、审计）
	rt.RegisterWebSocketRoutes(r)    // WebSocket 订阅路由
}
