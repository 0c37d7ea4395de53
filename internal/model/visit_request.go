// Package model 定义数据库实体模型
// 本文件定义访问请求模型，是整个系统的核心实体
package model

import (
	"time"

	"gorm.io/gorm"
)

// VisitRequest 访问请求模型
// 对应数据库 visit_request 表
// 记录一名访客对一家企业的一名成员发起的一次来访申请的完整生命周期
type VisitRequest struct {
	gorm.Model // 内嵌 GORM 模型，包含 ID、CreatedAt、UpdatedAt、DeletedAt

	// Uuid 请求唯一标识
	// 格式：R + 6位日期 + 随机字符串
	Uuid string `gorm:"column:uuid;uniqueIndex;type:char(20);not null;comment:请求id"`

	// VisitorId 访客 UUID，弱引用，不级联删除
	VisitorId string `gorm:"column:visitor_id;index;type:char(20);not null;index:idx_pending_pair,priority:1;comment:访客ID"`

	// CompanyId 企业 UUID
	CompanyId string `gorm:"column:company_id;index;type:char(20);not null;index:idx_pending_pair,priority:3;comment:企业ID"`

	// MemberId 被访成员 UUID
	MemberId string `gorm:"column:member_id;index;type:char(20);not null;index:idx_pending_pair,priority:2;comment:被访成员ID"`

	// Purpose 来访目的
	// 取值见 pkg/enum/visit/visit_purpose_enum
	Purpose string `gorm:"column:purpose;type:varchar(20);not null;comment:来访目的"`

	// PurposeDesc 来访目的补充说明，最长 200 字符
	PurposeDesc string `gorm:"column:purpose_desc;type:varchar(200);comment:目的说明"`

	// DurationMinutes 预计拜访时长（分钟），5-480
	DurationMinutes int `gorm:"column:duration_minutes;not null;comment:预计时长(分钟)"`

	// ScheduledTime 预约到访时间，可空
	ScheduledTime *time.Time `gorm:"column:scheduled_time;type:datetime;comment:预约到访时间"`

	// Status 请求状态
	// 取值见 pkg/enum/visit/visit_status_enum，默认 pending
	// 与 visitor_id/member_id/company_id 组成复合索引，
	// 用于"同一访客对同一成员至多一条 pending 请求"的查重
	Status string `gorm:"column:status;type:varchar(20);not null;default:pending;index:idx_pending_pair,priority:4;comment:请求状态"`

	// Priority 优先级，数值越大在实时队列视图中越靠前，默认 0
	Priority int `gorm:"column:priority;not null;default:0;comment:优先级"`

	// QueuePosition 创建时刻的排队序号（>=1）
	// 创建后不再重算：它是一份历史快照，随队列消化自然失真，
	// 实时排队顺序以队列视图接口的计算结果为准
	QueuePosition int `gorm:"column:queue_position;not null;comment:创建时排队序号"`

	// EstimatedWaitMinutes 创建时刻的等待估算（分钟），仅供参考
	EstimatedWaitMinutes int `gorm:"column:estimated_wait_minutes;not null;comment:创建时等待估算(分钟)"`

	// ---------- 成员响应子记录，首次响应前均为空 ----------

	// ResponseAction 响应动作：accept / decline / reschedule
	// accept/decline 一经记录不可更改；reschedule 响应后状态仍为 pending，可再次响应
	ResponseAction string `gorm:"column:response_action;type:varchar(20);comment:响应动作"`

	// ResponseMessage 响应附言
	ResponseMessage string `gorm:"column:response_message;type:varchar(200);comment:响应附言"`

	// ResponseProposedTime reschedule 时成员提议的新时间
	ResponseProposedTime *time.Time `gorm:"column:response_proposed_time;type:datetime;comment:提议时间"`

	// RespondedAt 最近一次响应时间
	RespondedAt *time.Time `gorm:"column:responded_at;type:datetime;comment:响应时间"`

	// ---------- 入场/离场子记录，由对应迁移填充 ----------

	// AllowedAt 请求被接受（允许入场）的时间
	AllowedAt *time.Time `gorm:"column:allowed_at;type:datetime;comment:放行时间"`

	// EnteredAt 实际入场时间，仅在状态到达 accepted 后可写且只写一次
	EnteredAt *time.Time `gorm:"column:entered_at;type:datetime;comment:入场时间"`

	// ExitedAt 实际离场时间，仅在 EnteredAt 已写后可写
	ExitedAt *time.Time `gorm:"column:exited_at;type:datetime;comment:离场时间"`

	// EntryGate 入场闸口
	EntryGate string `gorm:"column:entry_gate;type:varchar(50);comment:入场闸口"`

	// SecurityPersonnel 登记入场的安保人员
	SecurityPersonnel string `gorm:"column:security_personnel;type:varchar(50);comment:安保人员"`

	// ---------- 通知簿记，尽力而为，不作为权威数据 ----------

	// MemberNotifiedAt 成员侧通知发出时间
	MemberNotifiedAt *time.Time `gorm:"column:member_notified_at;type:datetime;comment:成员通知时间"`

	// VisitorNotifiedAt 访客侧通知发出时间
	VisitorNotifiedAt *time.Time `gorm:"column:visitor_notified_at;type:datetime;comment:访客通知时间"`

	// Tags 自由标签，逗号分隔
	Tags string `gorm:"column:tags;type:varchar(200);comment:标签"`

	// Notes 备注
	Notes string `gorm:"column:notes;type:varchar(500);comment:备注"`
}

// TableName 指定表名
func (VisitRequest) TableName() string {
	return "visit_request"
}

// TotalDurationMinutes 实际停留时长（分钟）
// 仅在入场和离场时间均已记录时有定义，否则返回 0 和 false
func (r *VisitRequest) TotalDurationMinutes() (int, bool) {
	if r.EnteredAt == nil || r.ExitedAt == nil {
		return 0, false
	}
	return int(r.ExitedAt.Sub(*r.EnteredAt) / time.Minute), true
}
