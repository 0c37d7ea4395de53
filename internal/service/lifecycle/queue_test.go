package lifecycle

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"yunke_visitor_server/internal/dto/request"
	"yunke_visitor_server/internal/model"
	"yunke_visitor_server/internal/service"
	"yunke_visitor_server/pkg/constants"
	"yunke_visitor_server/pkg/enum/visit/visit_status_enum"
	"yunke_visitor_server/pkg/errorx"
)

func TestBuildQueueViewOrdering(t *testing.T) {
	base := time.Date(2026, 8, 30, 9, 0, 0, 0, time.Local)
	reqs := []model.VisitRequest{
		{Uuid: "R001", Priority: 0, QueuePosition: 1},
		{Uuid: "R002", Priority: 0, QueuePosition: 2},
		{Uuid: "R003", Priority: 5, QueuePosition: 3},
		{Uuid: "R004", Priority: 5, QueuePosition: 4},
	}
	// 创建时间与入参顺序一致，R003/R004 靠高优先级插队
	for i := range reqs {
		reqs[i].CreatedAt = base.Add(time.Duration(i) * time.Minute)
	}

	view := buildQueueView("C001", reqs)
	require.Equal(t, 4, view.Total)

	ids := make([]string, 0, len(view.Items))
	for _, item := range view.Items {
		ids = append(ids, item.RequestId)
	}
	// 高优先级在前，同优先级按创建时间先来先排
	assert.Equal(t, []string{"R003", "R004", "R001", "R002"}, ids)

	for i, item := range view.Items {
		assert.Equal(t, i+1, item.LivePosition)
		assert.Equal(t, i*constants.WAIT_MINUTES_PER_SLOT, item.EstimatedWaitMinutes)
	}
	// 创建时快照不随实时排序改变
	assert.Equal(t, 1, view.Items[2].QueuePosition)
	assert.Equal(t, 3, view.Items[0].QueuePosition)
}

func TestBuildQueueViewEmpty(t *testing.T) {
	view := buildQueueView("C001", nil)
	assert.Equal(t, 0, view.Total)
	assert.Empty(t, view.Items)
}

func TestGetQueueView(t *testing.T) {
	env := newTestEnv(t)
	first := env.createRequest(t)
	v2 := env.newVisitor(t, 2)
	second, err := env.svc.Create(request.CreateVisitRequest{
		VisitorId: v2.Uuid, CompanyId: env.company.Uuid, MemberId: env.member.Uuid,
		Purpose: "delivery", DurationMinutes: 15,
	}, service.OpMeta{})
	require.NoError(t, err)

	view, err := env.svc.GetQueueView(env.company.Uuid)
	require.NoError(t, err)
	require.Equal(t, 2, view.Total)
	assert.Equal(t, first.RequestId, view.Items[0].RequestId)
	assert.Equal(t, second.RequestId, view.Items[1].RequestId)
	assert.Equal(t, 0, view.Items[0].EstimatedWaitMinutes)
	assert.Equal(t, constants.WAIT_MINUTES_PER_SLOT, view.Items[1].EstimatedWaitMinutes)

	// 取消后退出 pending 集合，视图随之收缩
	_, err = env.svc.Cancel(first.RequestId, env.adminCaller(), service.OpMeta{})
	require.NoError(t, err)
	view, err = env.svc.GetQueueView(env.company.Uuid)
	require.NoError(t, err)
	require.Equal(t, 1, view.Total)
	assert.Equal(t, second.RequestId, view.Items[0].RequestId)
	assert.Equal(t, 1, view.Items[0].LivePosition)
}

func TestGetQueueViewUnknownCompany(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.svc.GetQueueView("C999999999999999999")
	require.Error(t, err)
	assert.Equal(t, errorx.CodeNotFound, errorx.GetCode(err))
}

func TestQueueExcludesNonPending(t *testing.T) {
	env := newTestEnv(t)
	created := env.createRequest(t)
	_, err := env.svc.MemberRespond(created.RequestId, env.memberCaller(),
		request.MemberRespondRequest{Action: "accept"}, service.OpMeta{})
	require.NoError(t, err)

	view, err := env.svc.GetQueueView(env.company.Uuid)
	require.NoError(t, err)
	assert.Equal(t, 0, view.Total)

	stored, err := env.repos.VisitRequest.FindByUuid(created.RequestId)
	require.NoError(t, err)
	assert.Equal(t, visit_status_enum.ACCEPTED, stored.Status)
}
