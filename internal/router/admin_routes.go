// Package router 提供 HTTP 路由注册
// 本文件定义管理端路由，全部要求管理员身份
package router

import (
	"github.com/gin-gonic/gin"

	"yunke_visitor_server/internal/infrastructure/middleware"
	"yunke_visitor_server/pkg/enum/account/role_enum"
)

// RegisterAdminRoutes 注册管理端路由
func (rt *Router) RegisterAdminRoutes(r *gin.Engine) {
	adminGroup := r.Group("/admin", middleware.JWTAuth(), middleware.RequireRole(role_enum.ADMIN))

	// 请求代操作与追溯
	requestGroup := adminGroup.Group("/requests")
	{
		// PUT /admin/requests/:id/forceAccept - 越过成员直接接受（需 force_accept 权限）
		requestGroup.PUT("/:id/forceAccept", rt.handlers.VisitRequest.ForceAccept)
		// POST /admin/requests/:id/resendNotification - 重发当前状态对应的通知
		requestGroup.POST("/:id/resendNotification", rt.handlers.VisitRequest.ResendNotification)
		// GET /admin/requests/:id/audit - 审计记录
		requestGroup.GET("/:id/audit", rt.handlers.VisitRequest.GetAuditTrail)
	}

	// 访客档案
	visitorGroup := adminGroup.Group("/visitors")
	{
		visitorGroup.POST("", rt.handlers.Directory.UpsertVisitor)
		visitorGroup.GET("", rt.handlers.Directory.GetVisitorList)
		visitorGroup.PUT("/:id/blacklist", rt.handlers.Directory.SetVisitorBlacklist)
		visitorGroup.DELETE("/:id", rt.handlers.Directory.DeleteVisitor)
	}

	// 成员档案
	memberGroup := adminGroup.Group("/members")
	{
		memberGroup.POST("", rt.handlers.Directory.UpsertMember)
		memberGroup.DELETE("/:id", rt.handlers.Directory.DeleteMember)
	}

	// 企业档案
	companyGroup := adminGroup.Group("/companies")
	{
		companyGroup.POST("", rt.handlers.Directory.UpsertCompany)
		companyGroup.GET("", rt.handlers.Directory.GetCompanyList)
		companyGroup.GET("/:id/members", rt.handlers.Directory.GetMembersByCompany)
		companyGroup.DELETE("/:id", rt.handlers.Directory.DeleteCompany)
	}
}
