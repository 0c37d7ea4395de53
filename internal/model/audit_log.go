// Package model 定义数据库实体模型
// 本文件定义审计日志模型，只追加，不更新不删除
package model

import "gorm.io/gorm"

// AuditLog 审计日志模型
// 对应数据库 audit_log 表
// 记录"谁在何时对哪条实体做了什么"，写入失败只记日志，不影响业务
type AuditLog struct {
	gorm.Model

	// Uuid 日志唯一标识
	// 使用雪花算法生成的 int64 类型 ID
	Uuid int64 `gorm:"column:uuid;uniqueIndex;type:bigint;not null;comment:日志雪花ID"`

	// Action 动作名，如 request.accept / request.cancel
	Action string `gorm:"column:action;index;type:varchar(50);not null;comment:动作"`

	// EntityType 实体类型，如 visit_request
	EntityType string `gorm:"column:entity_type;type:varchar(50);not null;comment:实体类型"`

	// EntityId 实体 UUID
	EntityId string `gorm:"column:entity_id;index;type:char(20);not null;comment:实体ID"`

	// PerformedBy 操作者 UUID
	PerformedBy string `gorm:"column:performed_by;index;type:char(20);comment:操作者ID"`

	// PerformedByRole 操作者角色：member / admin
	PerformedByRole string `gorm:"column:performed_by_role;type:varchar(20);comment:操作者角色"`

	// Details 附加信息，JSON 文本
	Details string `gorm:"column:details;type:TEXT;comment:附加信息"`

	// Ip 操作来源 IP
	Ip string `gorm:"column:ip;type:varchar(50);comment:来源IP"`

	// UserAgent 操作来源 UA
	UserAgent string `gorm:"column:user_agent;type:varchar(255);comment:来源UA"`
}

// TableName 指定表名
func (AuditLog) TableName() string {
	return "audit_log"
}
