// Package handler 提供 HTTP 请求处理器
// 本文件处理管理端档案相关的 API 请求（访客/成员/企业）
package handler

import (
	"github.com/gin-gonic/gin"

	"yunke_visitor_server/internal/dto/request"
	"yunke_visitor_server/internal/service"
)

// DirectoryHandler 档案管理 Handler
type DirectoryHandler struct {
	directory service.DirectoryService
}

// NewDirectoryHandler 创建档案管理 Handler 实例
func NewDirectoryHandler(directory service.DirectoryService) *DirectoryHandler {
	return &DirectoryHandler{directory: directory}
}

// pageFrom 解析分页参数，非法值交给 Repository 层钳制
func pageFrom(c *gin.Context) (int, int, error) {
	var req request.PageRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		return 0, 0, err
	}
	return req.Page, req.PageSize, nil
}

// UpsertVisitor 创建/更新访客档案
// POST /admin/visitors
func (h *DirectoryHandler) UpsertVisitor(c *gin.Context) {
	var req request.UpsertVisitorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	rsp, err := h.directory.UpsertVisitor(req)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, rsp)
}

// GetVisitorList 访客分页列表
// GET /admin/visitors?page=1&page_size=20
func (h *DirectoryHandler) GetVisitorList(c *gin.Context) {
	page, pageSize, err := pageFrom(c)
	if err != nil {
		HandleParamError(c, err)
		return
	}
	rsp, err := h.directory.GetVisitorList(page, pageSize)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, rsp)
}

// SetVisitorBlacklist 设置/解除访客黑名单
// PUT /admin/visitors/:id/blacklist
func (h *DirectoryHandler) SetVisitorBlacklist(c *gin.Context) {
	var req request.SetBlacklistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	if err := h.directory.SetVisitorBlacklist(c.Param("id"), req.Blacklisted == 1); err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, nil)
}

// DeleteVisitor 删除访客档案
// DELETE /admin/visitors/:id
func (h *DirectoryHandler) DeleteVisitor(c *gin.Context) {
	if err := h.directory.DeleteVisitor(c.Param("id")); err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, nil)
}

// UpsertMember 创建/更新成员档案
// POST /admin/members
func (h *DirectoryHandler) UpsertMember(c *gin.Context) {
	var req request.UpsertMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	rsp, err := h.directory.UpsertMember(req)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, rsp)
}

// GetMembersByCompany 公司成员列表
// GET /admin/companies/:id/members
func (h *DirectoryHandler) GetMembersByCompany(c *gin.Context) {
	rsp, err := h.directory.GetMembersByCompany(c.Param("id"))
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, rsp)
}

// DeleteMember 删除成员档案
// DELETE /admin/members/:id
func (h *DirectoryHandler) DeleteMember(c *gin.Context) {
	if err := h.directory.DeleteMember(c.Param("id")); err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, nil)
}

// UpsertCompany 创建/更新企业档案
// POST /admin/companies
func (h *DirectoryHandler) UpsertCompany(c *gin.Context) {
	var req request.UpsertCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	rsp, err := h.directory.UpsertCompany(req)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, rsp)
}

// GetCompanyList 企业分页列表
// GET /admin/companies?page=1&page_size=20
func (h *DirectoryHandler) GetCompanyList(c *gin.Context) {
	page, pageSize, err := pageFrom(c)
	if err != nil {
		HandleParamError(c, err)
		return
	}
	rsp, err := h.directory.GetCompanyList(page, pageSize)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, rsp)
}

// DeleteCompany 删除企业档案
// DELETE /admin/companies/:id
func (h *DirectoryHandler) DeleteCompany(c *gin.Context) {
	if err := h.directory.DeleteCompany(c.Param("id")); err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, nil)
}
