// Package handler 提供 HTTP 请求处理器
// 本文件处理 WebSocket 订阅连接
package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"yunke_visitor_server/internal/dao/mysql/repository"
	"yunke_visitor_server/internal/infrastructure/middleware"
	"yunke_visitor_server/internal/service/broadcast"
	"yunke_visitor_server/pkg/enum/account/role_enum"
	"yunke_visitor_server/pkg/errorx"
)

// WsHandler WebSocket 订阅 Handler
type WsHandler struct {
	memberRepo repository.MemberRepository
}

// NewWsHandler 创建 WebSocket Handler 实例
func NewWsHandler(memberRepo repository.MemberRepository) *WsHandler {
	return &WsHandler{memberRepo: memberRepo}
}

// Subscribe 建立事件订阅连接
// GET /ws（需登录，支持成员与管理员）
//
// 房间授权规则：
//   - 成员：订阅自己的私有房间和所属公司的公共房间
//   - 管理员：订阅 companyId 查询参数指定的公司房间，未指定时不入任何房间
func (h *WsHandler) Subscribe(c *gin.Context) {
	userId := c.GetString(middleware.CtxUserId)
	role := c.GetString(middleware.CtxRole)

	var rooms []string
	switch role {
	case role_enum.MEMBER:
		member, err := h.memberRepo.FindByUuid(userId)
		if err != nil {
			HandleError(c, errorx.New(errorx.CodeNotFound, "成员不存在"))
			return
		}
		rooms = []string{
			broadcast.MemberRoom(member.Uuid),
			broadcast.CompanyRoom(member.CompanyId),
		}
	case role_enum.ADMIN:
		if companyId := c.Query("companyId"); companyId != "" {
			rooms = []string{broadcast.CompanyRoom(companyId)}
		}
	default:
		HandleError(c, errorx.ErrForbidden)
		return
	}

	// 同一用户多端连接各自独立，用随机 clientId 区分
	broadcast.NewSubscriberInit(c, uuid.NewString(), userId, rooms)
}
