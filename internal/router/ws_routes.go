// Package router 提供 HTTP 路由注册
// 本文件定义 WebSocket 订阅相关的路由
package router

import (
	"github.com/gin-gonic/gin"

	"yunke_visitor_server/internal/infrastructure/middleware"
)

// RegisterWebSocketRoutes 注册 WebSocket 相关路由（需要认证）
func (rt *Router) RegisterWebSocketRoutes(r *gin.Engine) {
	// GET /ws - 实时事件订阅入口
	// 成员订阅自己的私有房间和所属公司房间；
	// 管理员通过 ?companyId=C... 订阅指定公司房间
	r.GET("/ws", middleware.JWTAuth(), rt.handlers.Ws.Subscribe)
}
