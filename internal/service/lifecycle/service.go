// Package lifecycle 实现访问请求生命周期的核心业务
// service.go
// 核心职责：请求的创建、成员响应、入场/离场、取消、过期
// 副作用固定顺序：先持久化，再通知，再审计，再实时推送；
// 持久化成功后，任何副作用失败都不回滚状态
package lifecycle

import (
	"time"

	"go.uber.org/zap"

	"yunke_visitor_server/internal/dao/mysql/repository"
	myredis "yunke_visitor_server/internal/dao/redis"
	"yunke_visitor_server/internal/dto/request"
	"yunke_visitor_server/internal/dto/respond"
	"yunke_visitor_server/internal/infrastructure/audit"
	"yunke_visitor_server/internal/model"
	"yunke_visitor_server/internal/service"
	"yunke_visitor_server/internal/service/broadcast"
	"yunke_visitor_server/pkg/constants"
	"yunke_visitor_server/pkg/enum/account/account_status_enum"
	"yunke_visitor_server/pkg/enum/account/role_enum"
	"yunke_visitor_server/pkg/enum/visit/response_action_enum"
	"yunke_visitor_server/pkg/enum/visit/visit_purpose_enum"
	"yunke_visitor_server/pkg/enum/visit/visit_status_enum"
	"yunke_visitor_server/pkg/errorx"
	"yunke_visitor_server/pkg/util/random"
)

// VisitNotifier 生命周期通知接口
// notify.Notifier 是生产实现；测试中可注入 stub
type VisitNotifier interface {
	NotifyMemberNewRequest(member *model.Member, visitor *model.Visitor, req *model.VisitRequest) respond.NotificationReportRespond
	NotifyVisitorDecision(visitor *model.Visitor, member *model.Member, req *model.VisitRequest) respond.NotificationReportRespond
	NotifyVisitorCompleted(visitor *model.Visitor, req *model.VisitRequest) respond.NotificationReportRespond
}

// AuditRecorder 审计接口，audit.Sink 是生产实现
type AuditRecorder interface {
	Record(entry audit.Entry)
}

// lifecycleService LifecycleService 接口的实现
type lifecycleService struct {
	repos    *repository.Repositories
	cache    myredis.AsyncCacheService
	notifier VisitNotifier
	sink     AuditRecorder
}

// NewLifecycleService 创建生命周期 Service 实例
// cache/notifier/sink 允许为 nil，对应能力自动降级为 no-op
func NewLifecycleService(repos *repository.Repositories, cache myredis.AsyncCacheService,
	notifier VisitNotifier, sink AuditRecorder) service.LifecycleService {
	return &lifecycleService{repos: repos, cache: cache, notifier: notifier, sink: sink}
}

// newRequestUuid 生成请求 UUID：R + 6位日期 + 13位随机串
func newRequestUuid() string {
	return "R" + random.GetNowAndLenRandomString(13)
}

// Create 访客提交拜访请求
// 校验顺序：访客存在且未拉黑 -> 企业存在且启用 -> 成员存在且在职且属于该企业 ->
// 同三元组无 pending 重复，全部通过后计算排队快照并落库
// 停用的企业/成员与不存在同等对待，返回 NotFound
func (s *lifecycleService) Create(req request.CreateVisitRequest, meta service.OpMeta) (*respond.VisitRequestRespond, error) {
	if !visit_purpose_enum.IsValid(req.Purpose) {
		return nil, errorx.Newf(errorx.CodeInvalidParam, "无效的来访目的 %s", req.Purpose)
	}

	visitor, err := s.repos.Visitor.FindByUuid(req.VisitorId)
	if err != nil {
		if errorx.IsNotFound(err) {
			return nil, errorx.New(errorx.CodeNotFound, "访客不存在")
		}
		return nil, err
	}
	if visitor.IsBlacklisted == 1 {
		return nil, errorx.New(errorx.CodeForbidden, "该访客已被列入黑名单")
	}

	company, err := s.repos.Company.FindByUuid(req.CompanyId)
	if err != nil {
		if errorx.IsNotFound(err) {
			return nil, errorx.New(errorx.CodeNotFound, "企业不存在")
		}
		return nil, err
	}
	if company.Status != account_status_enum.NORMAL {
		return nil, errorx.New(errorx.CodeNotFound, "该企业已停用")
	}

	member, err := s.repos.Member.FindByUuid(req.MemberId)
	if err != nil {
		if errorx.IsNotFound(err) {
			return nil, errorx.New(errorx.CodeNotFound, "被访成员不存在")
		}
		return nil, err
	}
	if member.Status != account_status_enum.NORMAL {
		return nil, errorx.New(errorx.CodeNotFound, "被访成员已停用")
	}
	if member.CompanyId != req.CompanyId {
		return nil, errorx.New(errorx.CodeInvalidParam, "被访成员不属于该企业")
	}

	// 同一 (访客, 成员, 企业) 至多一条 pending
	// 查重与创建之间没有事务隔离，并发提交下可能漏判，靠复合索引兜底排查
	if _, err := s.repos.VisitRequest.FindPendingByTriple(req.VisitorId, req.MemberId, req.CompanyId); err == nil {
		return nil, errorx.New(errorx.CodeConflict, "已存在一条待处理的拜访请求")
	} else if !errorx.IsNotFound(err) {
		return nil, err
	}

	// 排队快照：序号 = 早于本请求创建的同企业 pending 数 + 1
	now := time.Now()
	ahead, err := s.repos.VisitRequest.CountPendingBefore(req.CompanyId, now)
	if err != nil {
		return nil, err
	}
	position := int(ahead) + 1

	visitReq := &model.VisitRequest{
		Uuid:                 newRequestUuid(),
		VisitorId:            req.VisitorId,
		CompanyId:            req.CompanyId,
		MemberId:             req.MemberId,
		Purpose:              req.Purpose,
		PurposeDesc:          req.PurposeDesc,
		DurationMinutes:      req.DurationMinutes,
		ScheduledTime:        req.ScheduledTime,
		Status:               visit_status_enum.PENDING,
		QueuePosition:        position,
		EstimatedWaitMinutes: (position - 1) * constants.WAIT_MINUTES_PER_SLOT,
		Tags:                 req.Tags,
		Notes:                req.Notes,
	}
	if err := s.repos.VisitRequest.Create(visitReq); err != nil {
		return nil, err
	}

	// 持久化成功，以下副作用失败不回滚
	report := s.notifyMemberWith(visitReq, member, visitor)
	s.audit(audit.Entry{
		Action:          "request.create",
		EntityType:      "visit_request",
		EntityId:        visitReq.Uuid,
		PerformedByRole: "visitor",
		PerformedBy:     visitor.Uuid,
		Details: map[string]any{
			"purpose": visitReq.Purpose, "queuePosition": position,
			"memberNotified": report.AnySuccess(),
		},
		Ip:        meta.Ip,
		UserAgent: meta.UserAgent,
	})
	broadcast.PublishEvent(broadcast.Event{
		Event:     broadcast.EventNewRequest,
		Subtype:   broadcast.SubtypeNew,
		Rooms:     requestRooms(visitReq),
		RequestId: visitReq.Uuid,
		Status:    visitReq.Status,
		Payload:   respond.NewVisitRequestRespond(visitReq),
	})
	s.invalidateQueueCache(visitReq.CompanyId)

	return respond.NewVisitRequestRespond(visitReq), nil
}

// Get 查询单条请求详情
func (s *lifecycleService) Get(requestId string, caller service.Caller) (*respond.VisitRequestRespond, error) {
	visitReq, err := s.findRequest(requestId)
	if err != nil {
		return nil, err
	}
	if err := guardView(caller, visitReq); err != nil {
		return nil, err
	}
	return respond.NewVisitRequestRespond(visitReq), nil
}

// MemberRespond 被访成员处理待定请求
// accept/decline 进入对应状态；reschedule 记录提议时间后仍保持 pending，可再次响应
func (s *lifecycleService) MemberRespond(requestId string, caller service.Caller,
	req request.MemberRespondRequest, meta service.OpMeta) (*respond.VisitRequestRespond, error) {

	visitReq, err := s.findRequest(requestId)
	if err != nil {
		return nil, err
	}
	if err := guardMemberRespond(caller, visitReq); err != nil {
		return nil, err
	}
	if req.Action == response_action_enum.RESCHEDULE && req.ProposedTime == nil {
		return nil, errorx.New(errorx.CodeInvalidParam, "改期响应必须提供提议时间")
	}

	now := time.Now()
	visitReq.ResponseAction = req.Action
	visitReq.ResponseMessage = req.Message
	visitReq.ResponseProposedTime = req.ProposedTime
	visitReq.RespondedAt = &now

	switch req.Action {
	case response_action_enum.ACCEPT:
		visitReq.Status = visit_status_enum.ACCEPTED
		visitReq.AllowedAt = &now
	case response_action_enum.DECLINE:
		visitReq.Status = visit_status_enum.DECLINED
	case response_action_enum.RESCHEDULE:
		// 状态保持 pending，预约时间改为提议时间，过期判定随之推后
		visitReq.ScheduledTime = req.ProposedTime
	default:
		return nil, errorx.Newf(errorx.CodeInvalidParam, "未知的响应动作 %s", req.Action)
	}

	if err := s.repos.VisitRequest.Update(visitReq); err != nil {
		return nil, err
	}

	s.notifyVisitorDecision(visitReq)
	s.audit(audit.Entry{
		Action:          "request." + req.Action,
		EntityType:      "visit_request",
		EntityId:        visitReq.Uuid,
		PerformedBy:     caller.Id,
		PerformedByRole: role_enum.MEMBER,
		Details:         map[string]any{"status": visitReq.Status, "message": req.Message},
		Ip:              meta.Ip,
		UserAgent:       meta.UserAgent,
	})
	s.broadcastUpdate(visitReq, broadcast.SubtypeStatusChange)
	s.invalidateQueueCache(visitReq.CompanyId)

	return respond.NewVisitRequestRespond(visitReq), nil
}

// ForceAccept 管理员越过成员直接接受请求
// 响应附言写入固定的管理员代操作文案，与成员本人的接受可区分
func (s *lifecycleService) ForceAccept(requestId string, caller service.Caller, meta service.OpMeta) (*respond.VisitRequestRespond, error) {
	visitReq, err := s.findRequest(requestId)
	if err != nil {
		return nil, err
	}
	// JWT 只携带身份，权限点需回源加载
	if caller.Role == role_enum.ADMIN && len(caller.Permissions) == 0 {
		if admin, err := s.repos.Admin.FindByUuid(caller.Id); err == nil {
			caller.Permissions = admin.PermissionList()
		}
	}
	if err := guardForceAccept(caller, visitReq); err != nil {
		return nil, err
	}

	now := time.Now()
	visitReq.Status = visit_status_enum.ACCEPTED
	visitReq.ResponseAction = response_action_enum.ACCEPT
	visitReq.ResponseMessage = constants.ADMIN_OVERRIDE_MESSAGE
	visitReq.RespondedAt = &now
	visitReq.AllowedAt = &now

	if err := s.repos.VisitRequest.Update(visitReq); err != nil {
		return nil, err
	}

	s.notifyVisitorDecision(visitReq)
	s.audit(audit.Entry{
		Action:          "request.force-accept",
		EntityType:      "visit_request",
		EntityId:        visitReq.Uuid,
		PerformedBy:     caller.Id,
		PerformedByRole: role_enum.ADMIN,
		Ip:              meta.Ip,
		UserAgent:       meta.UserAgent,
	})
	s.broadcastUpdate(visitReq, broadcast.SubtypeStatusChange)
	s.invalidateQueueCache(visitReq.CompanyId)

	return respond.NewVisitRequestRespond(visitReq), nil
}

// MarkEntered 登记访客入场，状态迁移 accepted -> in-progress
func (s *lifecycleService) MarkEntered(requestId string, caller service.Caller,
	req request.MarkEntryRequest, meta service.OpMeta) (*respond.VisitRequestRespond, error) {

	visitReq, err := s.findRequest(requestId)
	if err != nil {
		return nil, err
	}
	if err := guardMarkEntered(caller, visitReq); err != nil {
		return nil, err
	}

	now := time.Now()
	visitReq.Status = visit_status_enum.IN_PROGRESS
	visitReq.EnteredAt = &now
	visitReq.EntryGate = req.EntryGate
	visitReq.SecurityPersonnel = req.SecurityPersonnel

	if err := s.repos.VisitRequest.Update(visitReq); err != nil {
		return nil, err
	}

	s.audit(audit.Entry{
		Action:          "request.enter",
		EntityType:      "visit_request",
		EntityId:        visitReq.Uuid,
		PerformedBy:     caller.Id,
		PerformedByRole: role_enum.ADMIN,
		Details:         map[string]any{"entryGate": req.EntryGate, "securityPersonnel": req.SecurityPersonnel},
		Ip:              meta.Ip,
		UserAgent:       meta.UserAgent,
	})
	s.broadcastUpdate(visitReq, broadcast.SubtypeEntry)

	return respond.NewVisitRequestRespond(visitReq), nil
}

// MarkExited 登记访客离场，状态迁移 in-progress -> completed
func (s *lifecycleService) MarkExited(requestId string, caller service.Caller, meta service.OpMeta) (*respond.VisitRequestRespond, error) {
	visitReq, err := s.findRequest(requestId)
	if err != nil {
		return nil, err
	}
	if err := guardMarkExited(caller, visitReq); err != nil {
		return nil, err
	}

	now := time.Now()
	visitReq.Status = visit_status_enum.COMPLETED
	visitReq.ExitedAt = &now

	if err := s.repos.VisitRequest.Update(visitReq); err != nil {
		return nil, err
	}

	s.notifyVisitorCompleted(visitReq)
	duration, _ := visitReq.TotalDurationMinutes()
	s.audit(audit.Entry{
		Action:          "request.exit",
		EntityType:      "visit_request",
		EntityId:        visitReq.Uuid,
		PerformedBy:     caller.Id,
		PerformedByRole: role_enum.ADMIN,
		Details:         map[string]any{"totalDurationMinutes": duration},
		Ip:              meta.Ip,
		UserAgent:       meta.UserAgent,
	})
	s.broadcastUpdate(visitReq, broadcast.SubtypeExit)

	return respond.NewVisitRequestRespond(visitReq), nil
}

// Cancel 取消请求（pending/accepted 皆可取消）
func (s *lifecycleService) Cancel(requestId string, caller service.Caller, meta service.OpMeta) (*respond.VisitRequestRespond, error) {
	visitReq, err := s.findRequest(requestId)
	if err != nil {
		return nil, err
	}
	if err := guardCancel(caller, visitReq); err != nil {
		return nil, err
	}

	wasPending := visitReq.Status == visit_status_enum.PENDING
	visitReq.Status = visit_status_enum.CANCELLED

	if err := s.repos.VisitRequest.Update(visitReq); err != nil {
		return nil, err
	}

	s.audit(audit.Entry{
		Action:          "request.cancel",
		EntityType:      "visit_request",
		EntityId:        visitReq.Uuid,
		PerformedBy:     caller.Id,
		PerformedByRole: caller.Role,
		Ip:              meta.Ip,
		UserAgent:       meta.UserAgent,
	})
	s.broadcastUpdate(visitReq, broadcast.SubtypeCancelled)
	if wasPending {
		s.invalidateQueueCache(visitReq.CompanyId)
	}

	return respond.NewVisitRequestRespond(visitReq), nil
}

// ListByMember 成员名下的请求分页列表
func (s *lifecycleService) ListByMember(memberId string, page, pageSize int) (*respond.VisitRequestListRespond, error) {
	reqs, total, err := s.repos.VisitRequest.FindByMember(memberId, page, pageSize)
	if err != nil {
		return nil, err
	}
	list := make([]*respond.VisitRequestRespond, 0, len(reqs))
	for i := range reqs {
		list = append(list, respond.NewVisitRequestRespond(&reqs[i]))
	}
	return &respond.VisitRequestListRespond{Total: total, List: list}, nil
}

// VisitorStatusList 访客凭手机号查询自己的请求，返回脱敏视图
// 验证码校验由上层完成，这里只做数据组装
func (s *lifecycleService) VisitorStatusList(telephone string) ([]respond.PublicVisitRequestRespond, error) {
	visitor, err := s.repos.Visitor.FindByTelephone(telephone)
	if err != nil {
		if errorx.IsNotFound(err) {
			return []respond.PublicVisitRequestRespond{}, nil
		}
		return nil, err
	}
	reqs, _, err := s.repos.VisitRequest.FindByVisitor(visitor.Uuid, 1, 50)
	if err != nil {
		return nil, err
	}
	list := make([]respond.PublicVisitRequestRespond, 0, len(reqs))
	for i := range reqs {
		list = append(list, respond.NewPublicVisitRequestRespond(&reqs[i]))
	}
	return list, nil
}

// ResendNotification 按请求当前状态重发对应通知
func (s *lifecycleService) ResendNotification(requestId string, caller service.Caller, meta service.OpMeta) (*respond.NotificationReportRespond, error) {
	if caller.Role != role_enum.ADMIN {
		return nil, errorx.New(errorx.CodeForbidden, "只有管理员可以重发通知")
	}
	visitReq, err := s.findRequest(requestId)
	if err != nil {
		return nil, err
	}

	var report respond.NotificationReportRespond
	switch visitReq.Status {
	case visit_status_enum.PENDING:
		member, visitor, err := s.loadParties(visitReq)
		if err != nil {
			return nil, err
		}
		report = s.notifyMemberWith(visitReq, member, visitor)
	case visit_status_enum.ACCEPTED, visit_status_enum.DECLINED:
		report = s.notifyVisitorDecision(visitReq)
	case visit_status_enum.COMPLETED:
		report = s.notifyVisitorCompleted(visitReq)
	default:
		return nil, errorx.Newf(errorx.CodeConflict, "状态 %s 没有可重发的通知", visitReq.Status)
	}

	s.audit(audit.Entry{
		Action:          "request.notify-resend",
		EntityType:      "visit_request",
		EntityId:        visitReq.Uuid,
		PerformedBy:     caller.Id,
		PerformedByRole: role_enum.ADMIN,
		Details:         map[string]any{"status": visitReq.Status, "delivered": report.AnySuccess()},
		Ip:              meta.Ip,
		UserAgent:       meta.UserAgent,
	})
	return &report, nil
}

// ExpireOverdue 过期清理：预约时间已过仍未被处理的 pending 请求标记为 expired
// 由后台定时任务调用，返回本轮处理条数
func (s *lifecycleService) ExpireOverdue() (int, error) {
	reqs, err := s.repos.VisitRequest.FindOverduePending(time.Now())
	if err != nil {
		return 0, err
	}
	expired := 0
	companies := make(map[string]bool)
	for i := range reqs {
		visitReq := &reqs[i]
		visitReq.Status = visit_status_enum.EXPIRED
		if err := s.repos.VisitRequest.Update(visitReq); err != nil {
			zap.L().Error("过期标记失败", zap.String("requestId", visitReq.Uuid), zap.Error(err))
			continue
		}
		expired++
		companies[visitReq.CompanyId] = true
		s.audit(audit.Entry{
			Action:          "request.expire",
			EntityType:      "visit_request",
			EntityId:        visitReq.Uuid,
			PerformedByRole: "system",
		})
		s.broadcastUpdate(visitReq, broadcast.SubtypeStatusChange)
	}
	for companyId := range companies {
		s.invalidateQueueCache(companyId)
	}
	return expired, nil
}

// GetAuditTrail 查询某条请求的审计记录
func (s *lifecycleService) GetAuditTrail(requestId string, caller service.Caller) ([]respond.AuditLogRespond, error) {
	if caller.Role != role_enum.ADMIN {
		return nil, errorx.New(errorx.CodeForbidden, "只有管理员可以查看审计记录")
	}
	if _, err := s.findRequest(requestId); err != nil {
		return nil, err
	}
	logs, err := s.repos.AuditLog.FindByEntityId(requestId)
	if err != nil {
		return nil, err
	}
	list := make([]respond.AuditLogRespond, 0, len(logs))
	for i := range logs {
		list = append(list, respond.NewAuditLogRespond(&logs[i]))
	}
	return list, nil
}

// ==================== 内部辅助 ====================

func (s *lifecycleService) findRequest(requestId string) (*model.VisitRequest, error) {
	visitReq, err := s.repos.VisitRequest.FindByUuid(requestId)
	if err != nil {
		if errorx.IsNotFound(err) {
			return nil, errorx.New(errorx.CodeNotFound, "访问请求不存在")
		}
		return nil, err
	}
	return visitReq, nil
}

// loadParties 加载请求关联的成员与访客
func (s *lifecycleService) loadParties(visitReq *model.VisitRequest) (*model.Member, *model.Visitor, error) {
	member, err := s.repos.Member.FindByUuid(visitReq.MemberId)
	if err != nil {
		return nil, nil, err
	}
	visitor, err := s.repos.Visitor.FindByUuid(visitReq.VisitorId)
	if err != nil {
		return nil, nil, err
	}
	return member, visitor, nil
}

// notifyMemberWith 新请求到达时的成员通知
func (s *lifecycleService) notifyMemberWith(visitReq *model.VisitRequest, member *model.Member, visitor *model.Visitor) respond.NotificationReportRespond {
	if s.notifier == nil {
		return respond.NotificationReportRespond{}
	}
	report := s.notifier.NotifyMemberNewRequest(member, visitor, visitReq)
	if report.AnySuccess() {
		now := time.Now()
		visitReq.MemberNotifiedAt = &now
		if err := s.repos.VisitRequest.Update(visitReq); err != nil {
			zap.L().Error("通知簿记更新失败", zap.String("requestId", visitReq.Uuid), zap.Error(err))
		}
	}
	return report
}

// notifyVisitorDecision 成员响应后的访客通知
func (s *lifecycleService) notifyVisitorDecision(visitReq *model.VisitRequest) respond.NotificationReportRespond {
	if s.notifier == nil {
		return respond.NotificationReportRespond{}
	}
	member, visitor, err := s.loadParties(visitReq)
	if err != nil {
		zap.L().Error("通知关联实体加载失败", zap.String("requestId", visitReq.Uuid), zap.Error(err))
		return respond.NotificationReportRespond{}
	}
	report := s.notifier.NotifyVisitorDecision(visitor, member, visitReq)
	s.markVisitorNotified(visitReq, report)
	return report
}

// notifyVisitorCompleted 离场后的访客致谢通知
func (s *lifecycleService) notifyVisitorCompleted(visitReq *model.VisitRequest) respond.NotificationReportRespond {
	if s.notifier == nil {
		return respond.NotificationReportRespond{}
	}
	visitor, err := s.repos.Visitor.FindByUuid(visitReq.VisitorId)
	if err != nil {
		zap.L().Error("通知关联实体加载失败", zap.String("requestId", visitReq.Uuid), zap.Error(err))
		return respond.NotificationReportRespond{}
	}
	report := s.notifier.NotifyVisitorCompleted(visitor, visitReq)
	s.markVisitorNotified(visitReq, report)
	return report
}

func (s *lifecycleService) markVisitorNotified(visitReq *model.VisitRequest, report respond.NotificationReportRespond) {
	if !report.AnySuccess() {
		return
	}
	now := time.Now()
	visitReq.VisitorNotifiedAt = &now
	if err := s.repos.VisitRequest.Update(visitReq); err != nil {
		zap.L().Error("通知簿记更新失败", zap.String("requestId", visitReq.Uuid), zap.Error(err))
	}
}

// requestRooms 一条请求事件的目标房间：成员私有房间 + 公司公共房间
func requestRooms(visitReq *model.VisitRequest) []string {
	return []string{
		broadcast.MemberRoom(visitReq.MemberId),
		broadcast.CompanyRoom(visitReq.CompanyId),
	}
}

func (s *lifecycleService) broadcastUpdate(visitReq *model.VisitRequest, subtype string) {
	broadcast.PublishEvent(broadcast.Event{
		Event:     broadcast.EventRequestUpdate,
		Subtype:   subtype,
		Rooms:     requestRooms(visitReq),
		RequestId: visitReq.Uuid,
		Status:    visitReq.Status,
		Payload:   respond.NewVisitRequestRespond(visitReq),
	})
}

func (s *lifecycleService) audit(entry audit.Entry) {
	if s.sink != nil {
		s.sink.Record(entry)
	}
}
