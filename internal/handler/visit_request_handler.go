// Package handler 提供 HTTP 请求处理器
// 本文件处理访问请求生命周期相关的 API 请求
package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"yunke_visitor_server/internal/dto/request"
	"yunke_visitor_server/internal/infrastructure/middleware"
	"yunke_visitor_server/internal/service"
)

// VisitRequestHandler 访问请求 Handler
type VisitRequestHandler struct {
	lifecycle service.LifecycleService
	account   service.AccountService
}

// NewVisitRequestHandler 创建访问请求 Handler 实例
func NewVisitRequestHandler(lifecycle service.LifecycleService, account service.AccountService) *VisitRequestHandler {
	return &VisitRequestHandler{lifecycle: lifecycle, account: account}
}

// callerFrom 从上下文组装已认证的操作者身份
func callerFrom(c *gin.Context) service.Caller {
	return service.Caller{
		Role: c.GetString(middleware.CtxRole),
		Id:   c.GetString(middleware.CtxUserId),
	}
}

// metaFrom 提取请求元信息，用于审计
func metaFrom(c *gin.Context) service.OpMeta {
	return service.OpMeta{
		Ip:        c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
	}
}

// Create 访客提交拜访请求
// POST /requests（公开，按 IP 限流）
// 请求体: request.CreateVisitRequest
// 响应: 含创建时刻排队快照的完整请求视图
func (h *VisitRequestHandler) Create(c *gin.Context) {
	var req request.CreateVisitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	rsp, err := h.lifecycle.Create(req, metaFrom(c))
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, rsp)
}

// Get 查询单条请求详情
// GET /requests/:id（成员看自己名下，管理员看全部）
func (h *VisitRequestHandler) Get(c *gin.Context) {
	rsp, err := h.lifecycle.Get(c.Param("id"), callerFrom(c))
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, rsp)
}

// Respond 被访成员处理待定请求
// PUT /requests/:id/status
// 请求体: request.MemberRespondRequest
func (h *VisitRequestHandler) Respond(c *gin.Context) {
	var req request.MemberRespondRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	rsp, err := h.lifecycle.MemberRespond(c.Param("id"), callerFrom(c), req, metaFrom(c))
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, rsp)
}

// ForceAccept 管理员越过成员直接接受请求
// PUT /admin/requests/:id/forceAccept
func (h *VisitRequestHandler) ForceAccept(c *gin.Context) {
	rsp, err := h.lifecycle.ForceAccept(c.Param("id"), callerFrom(c), metaFrom(c))
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, rsp)
}

// MarkEntered 登记访客入场
// PUT /requests/:id/enter（仅管理员）
// 请求体: request.MarkEntryRequest
func (h *VisitRequestHandler) MarkEntered(c *gin.Context) {
	var req request.MarkEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	rsp, err := h.lifecycle.MarkEntered(c.Param("id"), callerFrom(c), req, metaFrom(c))
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, rsp)
}

// MarkExited 登记访客离场
// PUT /requests/:id/exit（仅管理员）
func (h *VisitRequestHandler) MarkExited(c *gin.Context) {
	rsp, err := h.lifecycle.MarkExited(c.Param("id"), callerFrom(c), metaFrom(c))
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, rsp)
}

// Cancel 取消请求
// PUT /requests/:id/cancel（被访成员本人或管理员）
func (h *VisitRequestHandler) Cancel(c *gin.Context) {
	rsp, err := h.lifecycle.Cancel(c.Param("id"), callerFrom(c), metaFrom(c))
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, rsp)
}

// GetQueueView 企业实时排队视图
// GET /requests/queue/:companyId（公开）
func (h *VisitRequestHandler) GetQueueView(c *gin.Context) {
	rsp, err := h.lifecycle.GetQueueView(c.Param("companyId"))
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, rsp)
}

// ListMine 当前登录成员名下的请求分页列表
// GET /requests/member?page=1&page_size=20
func (h *VisitRequestHandler) ListMine(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	rsp, err := h.lifecycle.ListByMember(c.GetString(middleware.CtxUserId), page, pageSize)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, rsp)
}

// VisitorStatus 访客凭手机验证码查询自己的请求
// POST /requests/visitorStatus（公开）
// 请求体: request.VisitorStatusRequest
func (h *VisitRequestHandler) VisitorStatus(c *gin.Context) {
	var req request.VisitorStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	if err := h.account.VerifyVisitorSmsCode(req.Telephone, req.Code); err != nil {
		HandleError(c, err)
		return
	}
	rsp, err := h.lifecycle.VisitorStatusList(req.Telephone)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, rsp)
}

// ResendNotification 重发当前状态对应的通知
// POST /admin/requests/:id/resendNotification（仅管理员）
func (h *VisitRequestHandler) ResendNotification(c *gin.Context) {
	rsp, err := h.lifecycle.ResendNotification(c.Param("id"), callerFrom(c), metaFrom(c))
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, rsp)
}

// GetAuditTrail 查询某条请求的审计记录
// GET /admin/requests/:id/audit（仅管理员）
func (h *VisitRequestHandler) GetAuditTrail(c *gin.Context) {
	rsp, err := h.lifecycle.GetAuditTrail(c.Param("id"), callerFrom(c))
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, rsp)
}
