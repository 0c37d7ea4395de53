package lifecycle

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"yunke_visitor_server/internal/dao/mysql"
	"yunke_visitor_server/internal/dao/mysql/repository"
	"yunke_visitor_server/internal/dto/request"
	"yunke_visitor_server/internal/dto/respond"
	"yunke_visitor_server/internal/infrastructure/audit"
	"yunke_visitor_server/internal/model"
	"yunke_visitor_server/internal/service"
	"yunke_visitor_server/pkg/constants"
	"yunke_visitor_server/pkg/enum/account/account_status_enum"
	"yunke_visitor_server/pkg/enum/account/role_enum"
	"yunke_visitor_server/pkg/enum/visit/response_action_enum"
	"yunke_visitor_server/pkg/enum/visit/visit_status_enum"
	"yunke_visitor_server/pkg/errorx"
)

// stubNotifier 记录通知调用，所有通道视为投递成功
type stubNotifier struct {
	memberCalls    int
	decisionCalls  int
	completedCalls int
}

func okReport() respond.NotificationReportRespond {
	return respond.NotificationReportRespond{
		Email: respond.ChannelResult{Attempted: true, Success: true, MessageId: "stub"},
	}
}

func (n *stubNotifier) NotifyMemberNewRequest(_ *model.Member, _ *model.Visitor, _ *model.VisitRequest) respond.NotificationReportRespond {
	n.memberCalls++
	return okReport()
}

func (n *stubNotifier) NotifyVisitorDecision(_ *model.Visitor, _ *model.Member, _ *model.VisitRequest) respond.NotificationReportRespond {
	n.decisionCalls++
	return okReport()
}

func (n *stubNotifier) NotifyVisitorCompleted(_ *model.Visitor, _ *model.VisitRequest) respond.NotificationReportRespond {
	n.completedCalls++
	return okReport()
}

// stubSink 同步记录审计事件，便于断言
type stubSink struct {
	entries []audit.Entry
}

func (s *stubSink) Record(entry audit.Entry) {
	s.entries = append(s.entries, entry)
}

func (s *stubSink) actions() []string {
	actions := make([]string, 0, len(s.entries))
	for _, e := range s.entries {
		actions = append(actions, e.Action)
	}
	return actions
}

type testEnv struct {
	repos    *repository.Repositories
	svc      service.LifecycleService
	notifier *stubNotifier
	sink     *stubSink

	company *model.Company
	member  *model.Member
	visitor *model.Visitor
	admin   *model.Admin
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, mysql.Migrate(db))

	repos := repository.NewRepositories(db)
	notifier := &stubNotifier{}
	sink := &stubSink{}

	env := &testEnv{
		repos:    repos,
		svc:      NewLifecycleService(repos, nil, notifier, sink),
		notifier: notifier,
		sink:     sink,
	}

	env.company = &model.Company{Uuid: "C100000000000000001", Name: "云科大厦"}
	require.NoError(t, repos.Company.Create(env.company))
	env.member = &model.Member{
		Uuid: "M100000000000000001", CompanyId: env.company.Uuid,
		Name: "李成员", Telephone: "13800000001", Password: "x", EmailOptIn: 1, SmsOptIn: 1,
	}
	require.NoError(t, repos.Member.Create(env.member))
	env.visitor = &model.Visitor{
		Uuid: "V100000000000000001", Name: "王访客", Telephone: "13900000001", EmailOptIn: 1, SmsOptIn: 1,
	}
	require.NoError(t, repos.Visitor.Create(env.visitor))
	env.admin = &model.Admin{
		Uuid: "A100000000000000001", Account: "frontdesk", Password: "x",
		Name: "前台", Permissions: constants.PERMISSION_FORCE_ACCEPT,
	}
	require.NoError(t, repos.Admin.Create(env.admin))
	return env
}

func (env *testEnv) memberCaller() service.Caller {
	return service.Caller{Role: role_enum.MEMBER, Id: env.member.Uuid}
}

func (env *testEnv) adminCaller() service.Caller {
	return service.Caller{Role: role_enum.ADMIN, Id: env.admin.Uuid}
}

func (env *testEnv) createRequest(t *testing.T) *respond.VisitRequestRespond {
	t.Helper()
	rsp, err := env.svc.Create(request.CreateVisitRequest{
		VisitorId:       env.visitor.Uuid,
		CompanyId:       env.company.Uuid,
		MemberId:        env.member.Uuid,
		Purpose:         "meeting",
		DurationMinutes: 60,
	}, service.OpMeta{Ip: "127.0.0.1"})
	require.NoError(t, err)
	return rsp
}

// newVisitor 追加一名访客，手机号不能重复
func (env *testEnv) newVisitor(t *testing.T, seq int) *model.Visitor {
	t.Helper()
	v := &model.Visitor{
		Uuid:       fmt.Sprintf("V20000000000000000%02d", seq),
		Name:       fmt.Sprintf("访客%d", seq),
		Telephone:  fmt.Sprintf("139000001%02d", seq),
		EmailOptIn: 1, SmsOptIn: 1,
	}
	require.NoError(t, env.repos.Visitor.Create(v))
	return v
}

func TestCreateVisitRequest(t *testing.T) {
	env := newTestEnv(t)

	rsp := env.createRequest(t)
	assert.Equal(t, visit_status_enum.PENDING, rsp.Status)
	assert.Equal(t, 1, rsp.QueuePosition)
	assert.Equal(t, 0, rsp.EstimatedWaitMinutes)
	assert.NotEmpty(t, rsp.RequestId)
	assert.Equal(t, 1, env.notifier.memberCalls)
	assert.Contains(t, env.sink.actions(), "request.create")

	// 成员通知成功后应有簿记
	stored, err := env.repos.VisitRequest.FindByUuid(rsp.RequestId)
	require.NoError(t, err)
	assert.NotNil(t, stored.MemberNotifiedAt)

	// 第二名访客进队：序号 2，等待 15 分钟
	v2 := env.newVisitor(t, 2)
	rsp2, err := env.svc.Create(request.CreateVisitRequest{
		VisitorId: v2.Uuid, CompanyId: env.company.Uuid, MemberId: env.member.Uuid,
		Purpose: "delivery", DurationMinutes: 15,
	}, service.OpMeta{})
	require.NoError(t, err)
	assert.Equal(t, 2, rsp2.QueuePosition)
	assert.Equal(t, constants.WAIT_MINUTES_PER_SLOT, rsp2.EstimatedWaitMinutes)
}

func TestCreateDuplicatePending(t *testing.T) {
	env := newTestEnv(t)
	env.createRequest(t)

	_, err := env.svc.Create(request.CreateVisitRequest{
		VisitorId: env.visitor.Uuid, CompanyId: env.company.Uuid, MemberId: env.member.Uuid,
		Purpose: "meeting", DurationMinutes: 30,
	}, service.OpMeta{})
	require.Error(t, err)
	assert.Equal(t, errorx.CodeConflict, errorx.GetCode(err))
}

func TestCreateBlacklistedVisitor(t *testing.T) {
	env := newTestEnv(t)
	env.visitor.IsBlacklisted = 1
	require.NoError(t, env.repos.Visitor.Update(env.visitor))

	_, err := env.svc.Create(request.CreateVisitRequest{
		VisitorId: env.visitor.Uuid, CompanyId: env.company.Uuid, MemberId: env.member.Uuid,
		Purpose: "meeting", DurationMinutes: 30,
	}, service.OpMeta{})
	require.Error(t, err)
	assert.Equal(t, errorx.CodeForbidden, errorx.GetCode(err))
}

func TestCreateMemberCompanyMismatch(t *testing.T) {
	env := newTestEnv(t)
	other := &model.Company{Uuid: "C100000000000000002", Name: "别的大厦"}
	require.NoError(t, env.repos.Company.Create(other))

	_, err := env.svc.Create(request.CreateVisitRequest{
		VisitorId: env.visitor.Uuid, CompanyId: other.Uuid, MemberId: env.member.Uuid,
		Purpose: "meeting", DurationMinutes: 30,
	}, service.OpMeta{})
	require.Error(t, err)
	assert.Equal(t, errorx.CodeInvalidParam, errorx.GetCode(err))
}

// 停用的成员/企业与不存在同等对待
func TestCreateInactivePartiesNotFound(t *testing.T) {
	env := newTestEnv(t)

	env.member.Status = account_status_enum.DISABLED
	require.NoError(t, env.repos.Member.Update(env.member))
	_, err := env.svc.Create(request.CreateVisitRequest{
		VisitorId: env.visitor.Uuid, CompanyId: env.company.Uuid, MemberId: env.member.Uuid,
		Purpose: "meeting", DurationMinutes: 30,
	}, service.OpMeta{})
	require.Error(t, err)
	assert.Equal(t, errorx.CodeNotFound, errorx.GetCode(err))

	env.member.Status = account_status_enum.NORMAL
	require.NoError(t, env.repos.Member.Update(env.member))
	env.company.Status = account_status_enum.DISABLED
	require.NoError(t, env.repos.Company.Update(env.company))
	_, err = env.svc.Create(request.CreateVisitRequest{
		VisitorId: env.visitor.Uuid, CompanyId: env.company.Uuid, MemberId: env.member.Uuid,
		Purpose: "meeting", DurationMinutes: 30,
	}, service.OpMeta{})
	require.Error(t, err)
	assert.Equal(t, errorx.CodeNotFound, errorx.GetCode(err))
}

// 企业校验先于成员校验：企业不存在时报 NotFound 而不是成员归属错误
func TestCreateValidationOrder(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.svc.Create(request.CreateVisitRequest{
		VisitorId: env.visitor.Uuid, CompanyId: "C999999999999999999", MemberId: env.member.Uuid,
		Purpose: "meeting", DurationMinutes: 30,
	}, service.OpMeta{})
	require.Error(t, err)
	assert.Equal(t, errorx.CodeNotFound, errorx.GetCode(err))
}

func TestCreateInvalidPurpose(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.svc.Create(request.CreateVisitRequest{
		VisitorId: env.visitor.Uuid, CompanyId: env.company.Uuid, MemberId: env.member.Uuid,
		Purpose: "loitering", DurationMinutes: 30,
	}, service.OpMeta{})
	require.Error(t, err)
	assert.Equal(t, errorx.CodeInvalidParam, errorx.GetCode(err))
}

func TestMemberRespondAccept(t *testing.T) {
	env := newTestEnv(t)
	created := env.createRequest(t)

	rsp, err := env.svc.MemberRespond(created.RequestId, env.memberCaller(),
		request.MemberRespondRequest{Action: response_action_enum.ACCEPT, Message: "欢迎"}, service.OpMeta{})
	require.NoError(t, err)
	assert.Equal(t, visit_status_enum.ACCEPTED, rsp.Status)
	require.NotNil(t, rsp.MemberResponse)
	assert.Equal(t, response_action_enum.ACCEPT, rsp.MemberResponse.Action)
	require.NotNil(t, rsp.EntryDetails)
	assert.NotNil(t, rsp.EntryDetails.AllowedAt)
	assert.Equal(t, 1, env.notifier.decisionCalls)
	assert.Contains(t, env.sink.actions(), "request.accept")
}

func TestMemberRespondDecline(t *testing.T) {
	env := newTestEnv(t)
	created := env.createRequest(t)

	rsp, err := env.svc.MemberRespond(created.RequestId, env.memberCaller(),
		request.MemberRespondRequest{Action: response_action_enum.DECLINE}, service.OpMeta{})
	require.NoError(t, err)
	assert.Equal(t, visit_status_enum.DECLINED, rsp.Status)
	assert.Nil(t, rsp.EntryDetails)
}

func TestMemberRespondReschedule(t *testing.T) {
	env := newTestEnv(t)
	created := env.createRequest(t)

	// 改期必须带提议时间
	_, err := env.svc.MemberRespond(created.RequestId, env.memberCaller(),
		request.MemberRespondRequest{Action: response_action_enum.RESCHEDULE}, service.OpMeta{})
	require.Error(t, err)
	assert.Equal(t, errorx.CodeInvalidParam, errorx.GetCode(err))

	proposed := time.Now().Add(24 * time.Hour)
	rsp, err := env.svc.MemberRespond(created.RequestId, env.memberCaller(),
		request.MemberRespondRequest{Action: response_action_enum.RESCHEDULE, ProposedTime: &proposed}, service.OpMeta{})
	require.NoError(t, err)
	// 改期后仍是 pending，可再次响应
	assert.Equal(t, visit_status_enum.PENDING, rsp.Status)
	require.NotNil(t, rsp.MemberResponse)
	assert.NotNil(t, rsp.MemberResponse.ProposedTime)

	// 预约时间同步改为提议时间，过期扫描按新时间判定
	stored, err := env.repos.VisitRequest.FindByUuid(created.RequestId)
	require.NoError(t, err)
	require.NotNil(t, stored.ScheduledTime)
	assert.WithinDuration(t, proposed, *stored.ScheduledTime, time.Second)

	rsp, err = env.svc.MemberRespond(created.RequestId, env.memberCaller(),
		request.MemberRespondRequest{Action: response_action_enum.ACCEPT}, service.OpMeta{})
	require.NoError(t, err)
	assert.Equal(t, visit_status_enum.ACCEPTED, rsp.Status)
}

func TestMemberRespondGuards(t *testing.T) {
	env := newTestEnv(t)
	created := env.createRequest(t)

	// 别的成员不能响应
	stranger := service.Caller{Role: role_enum.MEMBER, Id: "M999999999999999999"}
	_, err := env.svc.MemberRespond(created.RequestId, stranger,
		request.MemberRespondRequest{Action: response_action_enum.ACCEPT}, service.OpMeta{})
	require.Error(t, err)
	assert.Equal(t, errorx.CodeForbidden, errorx.GetCode(err))

	// 非 pending 状态不能再响应
	_, err = env.svc.MemberRespond(created.RequestId, env.memberCaller(),
		request.MemberRespondRequest{Action: response_action_enum.DECLINE}, service.OpMeta{})
	require.NoError(t, err)
	_, err = env.svc.MemberRespond(created.RequestId, env.memberCaller(),
		request.MemberRespondRequest{Action: response_action_enum.ACCEPT}, service.OpMeta{})
	require.Error(t, err)
	assert.Equal(t, errorx.CodeConflict, errorx.GetCode(err))
}

func TestForceAccept(t *testing.T) {
	env := newTestEnv(t)
	created := env.createRequest(t)

	rsp, err := env.svc.ForceAccept(created.RequestId, env.adminCaller(), service.OpMeta{})
	require.NoError(t, err)
	assert.Equal(t, visit_status_enum.ACCEPTED, rsp.Status)
	require.NotNil(t, rsp.MemberResponse)
	assert.Equal(t, constants.ADMIN_OVERRIDE_MESSAGE, rsp.MemberResponse.Message)
	assert.Contains(t, env.sink.actions(), "request.force-accept")
}

func TestForceAcceptWithoutPermission(t *testing.T) {
	env := newTestEnv(t)
	created := env.createRequest(t)

	// 没有 force_accept 权限点的管理员被拒
	plain := &model.Admin{Uuid: "A100000000000000002", Account: "guard", Password: "x"}
	require.NoError(t, env.repos.Admin.Create(plain))
	_, err := env.svc.ForceAccept(created.RequestId, service.Caller{Role: role_enum.ADMIN, Id: plain.Uuid}, service.OpMeta{})
	require.Error(t, err)
	assert.Equal(t, errorx.CodeForbidden, errorx.GetCode(err))

	// 成员更不行
	_, err = env.svc.ForceAccept(created.RequestId, env.memberCaller(), service.OpMeta{})
	require.Error(t, err)
	assert.Equal(t, errorx.CodeForbidden, errorx.GetCode(err))
}

func TestEntryAndExit(t *testing.T) {
	env := newTestEnv(t)
	created := env.createRequest(t)

	// pending 状态不能入场
	_, err := env.svc.MarkEntered(created.RequestId, env.adminCaller(),
		request.MarkEntryRequest{EntryGate: "东门"}, service.OpMeta{})
	require.Error(t, err)
	assert.Equal(t, errorx.CodeConflict, errorx.GetCode(err))

	_, err = env.svc.MemberRespond(created.RequestId, env.memberCaller(),
		request.MemberRespondRequest{Action: response_action_enum.ACCEPT}, service.OpMeta{})
	require.NoError(t, err)

	// 成员不能做入场登记
	_, err = env.svc.MarkEntered(created.RequestId, env.memberCaller(),
		request.MarkEntryRequest{}, service.OpMeta{})
	require.Error(t, err)
	assert.Equal(t, errorx.CodeForbidden, errorx.GetCode(err))

	rsp, err := env.svc.MarkEntered(created.RequestId, env.adminCaller(),
		request.MarkEntryRequest{EntryGate: "东门", SecurityPersonnel: "赵保安"}, service.OpMeta{})
	require.NoError(t, err)
	assert.Equal(t, visit_status_enum.IN_PROGRESS, rsp.Status)
	require.NotNil(t, rsp.EntryDetails)
	assert.Equal(t, "东门", rsp.EntryDetails.EntryGate)
	assert.NotNil(t, rsp.EntryDetails.EnteredAt)

	// 重复入场被拒
	_, err = env.svc.MarkEntered(created.RequestId, env.adminCaller(),
		request.MarkEntryRequest{}, service.OpMeta{})
	require.Error(t, err)
	assert.Equal(t, errorx.CodeConflict, errorx.GetCode(err))

	rsp, err = env.svc.MarkExited(created.RequestId, env.adminCaller(), service.OpMeta{})
	require.NoError(t, err)
	assert.Equal(t, visit_status_enum.COMPLETED, rsp.Status)
	require.NotNil(t, rsp.TotalDuration)
	assert.GreaterOrEqual(t, *rsp.TotalDuration, 0)
	assert.Equal(t, 1, env.notifier.completedCalls)

	// 重复离场被拒
	_, err = env.svc.MarkExited(created.RequestId, env.adminCaller(), service.OpMeta{})
	require.Error(t, err)
	assert.Equal(t, errorx.CodeConflict, errorx.GetCode(err))
}

func TestExitWithoutEntry(t *testing.T) {
	env := newTestEnv(t)
	created := env.createRequest(t)
	_, err := env.svc.MemberRespond(created.RequestId, env.memberCaller(),
		request.MemberRespondRequest{Action: response_action_enum.ACCEPT}, service.OpMeta{})
	require.NoError(t, err)

	_, err = env.svc.MarkExited(created.RequestId, env.adminCaller(), service.OpMeta{})
	require.Error(t, err)
	assert.Equal(t, errorx.CodeConflict, errorx.GetCode(err))
}

func TestCancelRules(t *testing.T) {
	env := newTestEnv(t)

	// 成员取消自己名下的 pending 请求
	created := env.createRequest(t)
	rsp, err := env.svc.Cancel(created.RequestId, env.memberCaller(), service.OpMeta{})
	require.NoError(t, err)
	assert.Equal(t, visit_status_enum.CANCELLED, rsp.Status)

	// 已取消（终态）不能再取消
	_, err = env.svc.Cancel(created.RequestId, env.adminCaller(), service.OpMeta{})
	require.Error(t, err)
	assert.Equal(t, errorx.CodeConflict, errorx.GetCode(err))

	// 管理员取消已接受的请求
	v2 := env.newVisitor(t, 2)
	created2, err := env.svc.Create(request.CreateVisitRequest{
		VisitorId: v2.Uuid, CompanyId: env.company.Uuid, MemberId: env.member.Uuid,
		Purpose: "interview", DurationMinutes: 45,
	}, service.OpMeta{})
	require.NoError(t, err)
	_, err = env.svc.MemberRespond(created2.RequestId, env.memberCaller(),
		request.MemberRespondRequest{Action: response_action_enum.ACCEPT}, service.OpMeta{})
	require.NoError(t, err)
	rsp, err = env.svc.Cancel(created2.RequestId, env.adminCaller(), service.OpMeta{})
	require.NoError(t, err)
	assert.Equal(t, visit_status_enum.CANCELLED, rsp.Status)

	// 访客在场内时不能取消，应走离场流程
	v3 := env.newVisitor(t, 3)
	created3, err := env.svc.Create(request.CreateVisitRequest{
		VisitorId: v3.Uuid, CompanyId: env.company.Uuid, MemberId: env.member.Uuid,
		Purpose: "casual", DurationMinutes: 30,
	}, service.OpMeta{})
	require.NoError(t, err)
	_, err = env.svc.MemberRespond(created3.RequestId, env.memberCaller(),
		request.MemberRespondRequest{Action: response_action_enum.ACCEPT}, service.OpMeta{})
	require.NoError(t, err)
	_, err = env.svc.MarkEntered(created3.RequestId, env.adminCaller(), request.MarkEntryRequest{}, service.OpMeta{})
	require.NoError(t, err)
	_, err = env.svc.Cancel(created3.RequestId, env.adminCaller(), service.OpMeta{})
	require.Error(t, err)
	assert.Equal(t, errorx.CodeConflict, errorx.GetCode(err))
}

func TestGetVisibility(t *testing.T) {
	env := newTestEnv(t)
	created := env.createRequest(t)

	// 本人与管理员可见
	_, err := env.svc.Get(created.RequestId, env.memberCaller())
	assert.NoError(t, err)
	_, err = env.svc.Get(created.RequestId, env.adminCaller())
	assert.NoError(t, err)

	// 其他成员不可见
	_, err = env.svc.Get(created.RequestId, service.Caller{Role: role_enum.MEMBER, Id: "M999999999999999999"})
	require.Error(t, err)
	assert.Equal(t, errorx.CodeForbidden, errorx.GetCode(err))

	// 不存在的请求
	_, err = env.svc.Get("R000000000000000000", env.adminCaller())
	require.Error(t, err)
	assert.Equal(t, errorx.CodeNotFound, errorx.GetCode(err))
}

func TestExpireOverdue(t *testing.T) {
	env := newTestEnv(t)
	past := time.Now().Add(-2 * time.Hour)
	future := time.Now().Add(2 * time.Hour)

	overdue, err := env.svc.Create(request.CreateVisitRequest{
		VisitorId: env.visitor.Uuid, CompanyId: env.company.Uuid, MemberId: env.member.Uuid,
		Purpose: "meeting", DurationMinutes: 30, ScheduledTime: &past,
	}, service.OpMeta{})
	require.NoError(t, err)

	v2 := env.newVisitor(t, 2)
	upcoming, err := env.svc.Create(request.CreateVisitRequest{
		VisitorId: v2.Uuid, CompanyId: env.company.Uuid, MemberId: env.member.Uuid,
		Purpose: "meeting", DurationMinutes: 30, ScheduledTime: &future,
	}, service.OpMeta{})
	require.NoError(t, err)

	n, err := env.svc.ExpireOverdue()
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	stored, err := env.repos.VisitRequest.FindByUuid(overdue.RequestId)
	require.NoError(t, err)
	assert.Equal(t, visit_status_enum.EXPIRED, stored.Status)
	stored, err = env.repos.VisitRequest.FindByUuid(upcoming.RequestId)
	require.NoError(t, err)
	assert.Equal(t, visit_status_enum.PENDING, stored.Status)
}

func TestVisitorStatusList(t *testing.T) {
	env := newTestEnv(t)
	env.createRequest(t)

	list, err := env.svc.VisitorStatusList(env.visitor.Telephone)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, visit_status_enum.PENDING, list[0].Status)

	// 未知手机号返回空列表而非错误
	list, err = env.svc.VisitorStatusList("13999999999")
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestGetAuditTrail(t *testing.T) {
	env := newTestEnv(t)
	created := env.createRequest(t)

	// 直接落两条审计记录（生产链路经异步 Sink）
	require.NoError(t, env.repos.AuditLog.Create(&model.AuditLog{
		Uuid: 1, Action: "request.create", EntityType: "visit_request",
		EntityId: created.RequestId, PerformedByRole: "visitor",
	}))
	require.NoError(t, env.repos.AuditLog.Create(&model.AuditLog{
		Uuid: 2, Action: "request.accept", EntityType: "visit_request",
		EntityId: created.RequestId, PerformedBy: env.member.Uuid, PerformedByRole: role_enum.MEMBER,
	}))

	logs, err := env.svc.GetAuditTrail(created.RequestId, env.adminCaller())
	require.NoError(t, err)
	require.Len(t, logs, 2)
	assert.Equal(t, "request.create", logs[0].Action)

	_, err = env.svc.GetAuditTrail(created.RequestId, env.memberCaller())
	require.Error(t, err)
	assert.Equal(t, errorx.CodeForbidden, errorx.GetCode(err))
}

func TestListByMember(t *testing.T) {
	env := newTestEnv(t)
	env.createRequest(t)
	v2 := env.newVisitor(t, 2)
	_, err := env.svc.Create(request.CreateVisitRequest{
		VisitorId: v2.Uuid, CompanyId: env.company.Uuid, MemberId: env.member.Uuid,
		Purpose: "other", DurationMinutes: 20,
	}, service.OpMeta{})
	require.NoError(t, err)

	list, err := env.svc.ListByMember(env.member.Uuid, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(2), list.Total)
	assert.Len(t, list.List, 2)
}
