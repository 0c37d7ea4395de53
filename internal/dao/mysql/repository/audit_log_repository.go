package repository

import (
	"yunke_visitor_server/internal/model"

	"gorm.io/gorm"
)

// auditLogRepository AuditLogRepository 接口的实现
type auditLogRepository struct {
	db *gorm.DB
}

// NewAuditLogRepository 创建 AuditLogRepository 实例
func NewAuditLogRepository(db *gorm.DB) AuditLogRepository {
	return &auditLogRepository{db: db}
}

// Create 追加一条审计记录
func (r *auditLogRepository) Create(log *model.AuditLog) error {
	if err := r.db.Create(log).Error; err != nil {
		return wrapDBError(err, "写入审计日志")
	}
	return nil
}

// FindByEntityId 查找某实体的全部审计记录，按时间正序
func (r *auditLogRepository) FindByEntityId(entityId string) ([]model.AuditLog, error) {
	var logs []model.AuditLog
	err := r.db.Where("entity_id = ?", entityId).Order("created_at ASC").Find(&logs).Error
	if err != nil {
		return nil, wrapDBErrorf(err, "查询审计日志 entity=%s", entityId)
	}
	return logs, nil
}
