// Package service 定义业务层接口
// 本文件定义所有 Service 接口，供 Handler 层调用
// 接口设计遵循依赖倒置原则，便于测试和解耦
package service

import (
	"yunke_visitor_server/internal/dto/request"
	"yunke_visitor_server/internal/dto/respond"
)

// Caller 已认证的操作者身份
// 由 Handler 从 JWT 上下文组装，Service 层的权限判断只依赖它
type Caller struct {
	// Role 角色：role_enum.MEMBER / role_enum.ADMIN
	Role string
	// Id 操作者的业务 Uuid
	Id string
	// Permissions 管理员的权限点列表，成员为空
	Permissions []string
}

// HasPermission 判断操作者是否持有指定权限点
func (c Caller) HasPermission(perm string) bool {
	for _, p := range c.Permissions {
		if p == perm {
			return true
		}
	}
	return false
}

// OpMeta 一次操作的请求元信息，用于审计
type OpMeta struct {
	Ip        string
	UserAgent string
}

// LifecycleService 访客请求生命周期业务接口
// 覆盖请求的创建、响应、入场/离场、取消以及排队视图
type LifecycleService interface {
	// Create 访客提交拜访请求（匿名入口）
	Create(req request.CreateVisitRequest, meta OpMeta) (*respond.VisitRequestRespond, error)
	// Get 查询单条请求详情（按角色做可见性控制）
	Get(requestId string, caller Caller) (*respond.VisitRequestRespond, error)
	// MemberRespond 被访成员处理待定请求（接受/拒绝/改期）
	MemberRespond(requestId string, caller Caller, req request.MemberRespondRequest, meta OpMeta) (*respond.VisitRequestRespond, error)
	// ForceAccept 管理员越过成员直接接受请求，需要 force_accept 权限
	ForceAccept(requestId string, caller Caller, meta OpMeta) (*respond.VisitRequestRespond, error)
	// MarkEntered 登记访客入场（仅管理员）
	MarkEntered(requestId string, caller Caller, req request.MarkEntryRequest, meta OpMeta) (*respond.VisitRequestRespond, error)
	// MarkExited 登记访客离场（仅管理员）
	MarkExited(requestId string, caller Caller, meta OpMeta) (*respond.VisitRequestRespond, error)
	// Cancel 取消请求（被访成员本人或管理员）
	Cancel(requestId string, caller Caller, meta OpMeta) (*respond.VisitRequestRespond, error)
	// GetQueueView 公司当前待定队列的实时视图（公开）
	GetQueueView(companyId string) (*respond.QueueViewRespond, error)
	// ListByMember 成员名下的请求分页列表
	ListByMember(memberId string, page, pageSize int) (*respond.VisitRequestListRespond, error)
	// VisitorStatusList 访客凭手机号查询自己的请求（脱敏视图）
	VisitorStatusList(telephone string) ([]respond.PublicVisitRequestRespond, error)
	// ResendNotification 重发当前状态对应的通知（仅管理员）
	ResendNotification(requestId string, caller Caller, meta OpMeta) (*respond.NotificationReportRespond, error)
	// ExpireOverdue 将已过预约时间仍未处理的待定请求标记为过期，返回处理条数
	ExpireOverdue() (int, error)
	// GetAuditTrail 查询某条请求的审计记录（仅管理员）
	GetAuditTrail(requestId string, caller Caller) ([]respond.AuditLogRespond, error)
}

// AccountService 账号与认证业务接口
type AccountService interface {
	// MemberLogin 成员密码登录
	MemberLogin(req request.MemberLoginRequest) (*respond.LoginRespond, error)
	// AdminLogin 管理员密码登录
	AdminLogin(req request.AdminLoginRequest) (*respond.LoginRespond, error)
	// RefreshToken 用 refresh token 换取新的 access token
	RefreshToken(req request.RefreshTokenRequest) (*respond.RefreshTokenRespond, error)
	// Logout 注销 refresh token
	Logout(userId string) error
	// SendVisitorSmsCode 给访客手机号下发查询验证码
	SendVisitorSmsCode(telephone string) error
	// VerifyVisitorSmsCode 校验访客查询验证码
	VerifyVisitorSmsCode(telephone, code string) error
}

// DirectoryService 访客/成员/公司目录管理接口（仅管理员）
type DirectoryService interface {
	// UpsertVisitor 创建或更新访客档案
	UpsertVisitor(req request.UpsertVisitorRequest) (*respond.VisitorRespond, error)
	// GetVisitorList 访客分页列表
	GetVisitorList(page, pageSize int) (*respond.VisitorListRespond, error)
	// SetVisitorBlacklist 设置/解除访客黑名单
	SetVisitorBlacklist(visitorId string, blacklisted bool) error
	// DeleteVisitor 删除访客档案（软删除）
	DeleteVisitor(visitorId string) error
	// UpsertMember 创建或更新成员档案
	UpsertMember(req request.UpsertMemberRequest) (*respond.MemberRespond, error)
	// GetMembersByCompany 公司成员列表
	GetMembersByCompany(companyId string) ([]respond.MemberRespond, error)
	// DeleteMember 删除成员档案（软删除）
	DeleteMember(memberId string) error
	// UpsertCompany 创建或更新公司档案
	UpsertCompany(req request.UpsertCompanyRequest) (*respond.CompanyRespond, error)
	// GetCompanyList 公司分页列表
	GetCompanyList(page, pageSize int) (*respond.CompanyListRespond, error)
	// DeleteCompany 删除公司档案（软删除）
	DeleteCompany(companyId string) error
}
