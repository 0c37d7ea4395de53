// Package lifecycle 实现访问请求生命周期的核心业务
// guards.go
// 核心职责：状态迁移的前置校验
// 所有守卫都是 (操作者, 请求当前状态) 的纯函数，不触库、不产生副作用
package lifecycle

import (
	"yunke_visitor_server/internal/model"
	"yunke_visitor_server/internal/service"
	"yunke_visitor_server/pkg/constants"
	"yunke_visitor_server/pkg/enum/account/role_enum"
	"yunke_visitor_server/pkg/enum/visit/visit_status_enum"
	"yunke_visitor_server/pkg/errorx"
)

// guardMemberRespond 成员响应守卫
// 只有被访成员本人可以响应，且请求必须仍处于 pending
func guardMemberRespond(caller service.Caller, req *model.VisitRequest) error {
	if caller.Role != role_enum.MEMBER {
		return errorx.New(errorx.CodeForbidden, "只有被访成员可以响应请求")
	}
	if caller.Id != req.MemberId {
		return errorx.New(errorx.CodeForbidden, "只能响应自己名下的请求")
	}
	if req.Status != visit_status_enum.PENDING {
		return errorx.Newf(errorx.CodeConflict, "请求当前状态为 %s，无法响应", req.Status)
	}
	return nil
}

// guardForceAccept 管理员代接受守卫
// 需要 force_accept 权限点，且请求仍处于 pending
func guardForceAccept(caller service.Caller, req *model.VisitRequest) error {
	if caller.Role != role_enum.ADMIN {
		return errorx.New(errorx.CodeForbidden, "只有管理员可以执行该操作")
	}
	if !caller.HasPermission(constants.PERMISSION_FORCE_ACCEPT) {
		return errorx.New(errorx.CodeForbidden, "缺少 force_accept 权限")
	}
	if req.Status != visit_status_enum.PENDING {
		return errorx.Newf(errorx.CodeConflict, "请求当前状态为 %s，无法代为接受", req.Status)
	}
	return nil
}

// guardMarkEntered 入场登记守卫
// 仅管理员；请求必须已接受且尚未登记过入场
func guardMarkEntered(caller service.Caller, req *model.VisitRequest) error {
	if caller.Role != role_enum.ADMIN {
		return errorx.New(errorx.CodeForbidden, "只有管理员可以登记入场")
	}
	if req.Status != visit_status_enum.ACCEPTED {
		return errorx.Newf(errorx.CodeConflict, "请求当前状态为 %s，无法登记入场", req.Status)
	}
	if req.EnteredAt != nil {
		return errorx.New(errorx.CodeConflict, "该请求已登记过入场")
	}
	return nil
}

// guardMarkExited 离场登记守卫
// 仅管理员；必须先有入场记录，且不能重复离场
func guardMarkExited(caller service.Caller, req *model.VisitRequest) error {
	if caller.Role != role_enum.ADMIN {
		return errorx.New(errorx.CodeForbidden, "只有管理员可以登记离场")
	}
	if req.Status != visit_status_enum.IN_PROGRESS || req.EnteredAt == nil {
		return errorx.Newf(errorx.CodeConflict, "请求当前状态为 %s，无法登记离场", req.Status)
	}
	if req.ExitedAt != nil {
		return errorx.New(errorx.CodeConflict, "该请求已登记过离场")
	}
	return nil
}

// guardCancel 取消守卫
// 被访成员本人或任意管理员可以取消；已完成或已终态的请求不可取消
// 进行中的访问也不可取消：访客人在场内，唯一的出口是 MarkExited 离场登记
func guardCancel(caller service.Caller, req *model.VisitRequest) error {
	switch caller.Role {
	case role_enum.ADMIN:
		// 管理员可取消任意公司的请求
	case role_enum.MEMBER:
		if caller.Id != req.MemberId {
			return errorx.New(errorx.CodeForbidden, "只能取消自己名下的请求")
		}
	default:
		return errorx.New(errorx.CodeForbidden, "无权取消该请求")
	}
	if visit_status_enum.IsTerminal(req.Status) {
		return errorx.Newf(errorx.CodeConflict, "请求已处于终态 %s，无法取消", req.Status)
	}
	if req.Status == visit_status_enum.IN_PROGRESS {
		// 访客已在场内，应走离场流程而非取消
		return errorx.New(errorx.CodeConflict, "访客已入场，请改用离场登记")
	}
	return nil
}

// guardView 详情可见性守卫
// 成员只能看自己名下的请求，管理员可以看全部
func guardView(caller service.Caller, req *model.VisitRequest) error {
	switch caller.Role {
	case role_enum.ADMIN:
		return nil
	case role_enum.MEMBER:
		if caller.Id == req.MemberId {
			return nil
		}
		return errorx.New(errorx.CodeForbidden, "只能查看自己名下的请求")
	default:
		return errorx.New(errorx.CodeForbidden, "无权查看该请求")
	}
}
