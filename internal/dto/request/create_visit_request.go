package request

import "time"

// CreateVisitRequest 公开提交访问请求
// POST /requests
type CreateVisitRequest struct {
	VisitorId       string     `json:"visitor_id" binding:"required"`                                            // 访客 UUID
	CompanyId       string     `json:"company_id" binding:"required"`                                            // 企业 UUID
	MemberId        string     `json:"member_id" binding:"required"`                                             // 被访成员 UUID
	Purpose         string     `json:"purpose" binding:"required,oneof=interview casual delivery meeting other"` // 来访目的
	PurposeDesc     string     `json:"purpose_desc" binding:"omitempty,max=200"`                                 // 目的补充说明
	DurationMinutes int        `json:"duration_minutes" binding:"required,min=5,max=480"`                        // 预计时长（分钟）
	ScheduledTime   *time.Time `json:"scheduled_time" binding:"omitempty"`                                       // 预约到访时间
	Tags            string     `json:"tags" binding:"omitempty,max=200"`                                         // 自由标签
	Notes           string     `json:"notes" binding:"omitempty,max=500"`                                        // 备注
}
