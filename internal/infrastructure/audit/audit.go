// Package audit 提供操作审计落库能力
// 审计写入是尽力而为的：失败只记日志，绝不影响主流程
package audit

import (
	"encoding/json"

	"go.uber.org/zap"

	"yunke_visitor_server/internal/dao/mysql/repository"
	"yunke_visitor_server/internal/model"
	"yunke_visitor_server/pkg/constants"
	"yunke_visitor_server/pkg/util/snowflake"
)

// Entry 一条待记录的审计事件
type Entry struct {
	Action          string         // 如 request.create / request.accept
	EntityType      string         // 如 visit_request
	EntityId        string         // 业务 Uuid
	PerformedBy     string         // 操作者 Uuid，匿名操作为空
	PerformedByRole string         // member / admin / visitor / system
	Details         map[string]any // 变更明细，JSON 存储
	Ip              string
	UserAgent       string
}

// Sink 异步审计落库
// 通过带缓冲通道解耦业务与写库，通道满时丢弃并告警
type Sink struct {
	repo  repository.AuditLogRepository
	tasks chan Entry
}

// NewSink 创建审计 Sink 并启动后台写入协程
func NewSink(repo repository.AuditLogRepository) *Sink {
	s := &Sink{
		repo:  repo,
		tasks: make(chan Entry, constants.CHANNEL_SIZE),
	}
	go s.worker()
	return s
}

// Record 提交一条审计事件（非阻塞）
func (s *Sink) Record(entry Entry) {
	select {
	case s.tasks <- entry:
	default:
		zap.L().Warn("审计队列已满，丢弃审计事件",
			zap.String("action", entry.Action), zap.String("entityId", entry.EntityId))
	}
}

func (s *Sink) worker() {
	defer func() {
		if err := recover(); err != nil {
			zap.L().Error("审计写入协程 panic，正在重启", zap.Any("panic", err))
			go s.worker()
		}
	}()
	for entry := range s.tasks {
		s.write(entry)
	}
}

func (s *Sink) write(entry Entry) {
	details := ""
	if entry.Details != nil {
		if data, err := json.Marshal(entry.Details); err == nil {
			details = string(data)
		}
	}
	log := &model.AuditLog{
		Uuid:            snowflake.GenerateID(),
		Action:          entry.Action,
		EntityType:      entry.EntityType,
		EntityId:        entry.EntityId,
		PerformedBy:     entry.PerformedBy,
		PerformedByRole: entry.PerformedByRole,
		Details:         details,
		Ip:              entry.Ip,
		UserAgent:       entry.UserAgent,
	}
	if err := s.repo.Create(log); err != nil {
		zap.L().Error("审计落库失败", zap.String("action", entry.Action),
			zap.String("entityId", entry.EntityId), zap.Error(err))
	}
}
