// Package router 提供 HTTP 路由注册
// 本文件定义访问请求生命周期相关的路由
package router

import (
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"yunke_visitor_server/internal/infrastructure/middleware"
	"yunke_visitor_server/pkg/constants"
	"yunke_visitor_server/pkg/enum/account/role_enum"
)

// RegisterVisitRequestRoutes 注册访问请求相关路由
// 公开入口（创建/排队视图/访客状态）不要求登录，创建接口按 IP 限流
func (rt *Router) RegisterVisitRequestRoutes(r *gin.Engine) {
	h := rt.handlers.VisitRequest

	requestGroup := r.Group("/requests")
	{
		// POST /requests - 访客提交拜访请求（限流：窗口期内每 IP 最多 N 次）
		createLimit := rate.Every(constants.CREATE_RATE_LIMIT_WINDOW / constants.CREATE_RATE_LIMIT_COUNT)
		requestGroup.POST("", middleware.RateLimiter(createLimit, constants.CREATE_RATE_LIMIT_COUNT), h.Create)

		// GET /requests/queue/:companyId - 企业实时排队视图
		requestGroup.GET("/queue/:companyId", h.GetQueueView)

		// POST /requests/visitorStatus - 访客凭验证码查询自己的请求
		requestGroup.POST("/visitorStatus", h.VisitorStatus)

		// 以下路由需要登录
		authed := requestGroup.Group("", middleware.JWTAuth())
		{
			// GET /requests/member - 当前成员名下的请求列表
			authed.GET("/member", middleware.RequireRole(role_enum.MEMBER), h.ListMine)
			// GET /requests/:id - 请求详情（成员/管理员）
			authed.GET("/:id", h.Get)
			// PUT /requests/:id/status - 成员响应（接受/拒绝/改期）
			authed.PUT("/:id/status", middleware.RequireRole(role_enum.MEMBER), h.Respond)
			// PUT /requests/:id/enter - 入场登记（管理员）
			authed.PUT("/:id/enter", middleware.RequireRole(role_enum.ADMIN), h.MarkEntered)
			// PUT /requests/:id/exit - 离场登记（管理员）
			authed.PUT("/:id/exit", middleware.RequireRole(role_enum.ADMIN), h.MarkExited)
			// PUT /requests/:id/cancel - 取消（成员本人或管理员）
			authed.PUT("/:id/cancel", middleware.RequireRole(role_enum.MEMBER, role_enum.ADMIN), h.Cancel)
		}
	}
}
