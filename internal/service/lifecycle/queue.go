// Package lifecycle 实现访问请求生命周期的核心业务
// queue.go
// 核心职责：企业实时排队视图
// 实时顺序按 (priority 降序, createdAt 升序) 计算，
// 与创建时落库的 queue_position 快照无关；视图经 Redis 做短时缓存
package lifecycle

import (
	"context"
	"encoding/json"
	"sort"
	"time"

	"go.uber.org/zap"

	"yunke_visitor_server/internal/dto/respond"
	"yunke_visitor_server/internal/model"
	"yunke_visitor_server/pkg/constants"
	"yunke_visitor_server/pkg/errorx"
)

// queueCacheKey 队列视图缓存键
func queueCacheKey(companyId string) string {
	return "queue_view_" + companyId
}

// GetQueueView 公司当前待定队列的实时视图
// 缓存命中直接返回；未命中则从库里取全部 pending 计算后回填
func (s *lifecycleService) GetQueueView(companyId string) (*respond.QueueViewRespond, error) {
	if _, err := s.repos.Company.FindByUuid(companyId); err != nil {
		if errorx.IsNotFound(err) {
			return nil, errorx.New(errorx.CodeNotFound, "企业不存在")
		}
		return nil, err
	}

	if cached := s.readQueueCache(companyId); cached != nil {
		return cached, nil
	}

	reqs, err := s.repos.VisitRequest.FindPendingByCompany(companyId)
	if err != nil {
		return nil, err
	}
	view := buildQueueView(companyId, reqs)
	s.writeQueueCache(companyId, view)
	return view, nil
}

// buildQueueView 计算实时排队视图
// 排序规则：priority 大者在前；同 priority 按创建时间先来先排
// 等待估算 = (实时序号-1) * 每槽位分钟数
func buildQueueView(companyId string, reqs []model.VisitRequest) *respond.QueueViewRespond {
	sort.SliceStable(reqs, func(i, j int) bool {
		if reqs[i].Priority != reqs[j].Priority {
			return reqs[i].Priority > reqs[j].Priority
		}
		return reqs[i].CreatedAt.Before(reqs[j].CreatedAt)
	})

	items := make([]respond.QueueItemRespond, 0, len(reqs))
	for i := range reqs {
		req := &reqs[i]
		items = append(items, respond.QueueItemRespond{
			RequestId:            req.Uuid,
			VisitorId:            req.VisitorId,
			MemberId:             req.MemberId,
			Purpose:              req.Purpose,
			Priority:             req.Priority,
			LivePosition:         i + 1,
			QueuePosition:        req.QueuePosition,
			EstimatedWaitMinutes: i * constants.WAIT_MINUTES_PER_SLOT,
			CreatedAt:            req.CreatedAt,
		})
	}
	return &respond.QueueViewRespond{
		CompanyId: companyId,
		Total:     len(items),
		Items:     items,
	}
}

func (s *lifecycleService) readQueueCache(companyId string) *respond.QueueViewRespond {
	if s.cache == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	data, err := s.cache.Get(ctx, queueCacheKey(companyId))
	if err != nil || data == "" {
		return nil
	}
	var view respond.QueueViewRespond
	if err := json.Unmarshal([]byte(data), &view); err != nil {
		zap.L().Warn("队列视图缓存解析失败", zap.String("companyId", companyId), zap.Error(err))
		return nil
	}
	return &view
}

func (s *lifecycleService) writeQueueCache(companyId string, view *respond.QueueViewRespond) {
	if s.cache == nil {
		return
	}
	data, err := json.Marshal(view)
	if err != nil {
		return
	}
	s.cache.SubmitTask(func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		if err := s.cache.Set(ctx, queueCacheKey(companyId), string(data),
			constants.REDIS_TIMEOUT*time.Minute); err != nil {
			zap.L().Warn("队列视图缓存写入失败", zap.String("companyId", companyId), zap.Error(err))
		}
	})
}

// invalidateQueueCache 任何影响 pending 集合的写操作之后调用
func (s *lifecycleService) invalidateQueueCache(companyId string) {
	if s.cache == nil {
		return
	}
	s.cache.SubmitTask(func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		if err := s.cache.Delete(ctx, queueCacheKey(companyId)); err != nil {
			zap.L().Warn("队列视图缓存失效失败", zap.String("companyId", companyId), zap.Error(err))
		}
	})
}
