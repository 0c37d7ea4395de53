package request

import "time"

// MemberRespondRequest 成员响应访问请求
// PUT /requests/:id/status
// action=reschedule 时 proposed_time 必填，由 Service 层校验
type MemberRespondRequest struct {
	Action       string     `json:"action" binding:"required,oneof=accept decline reschedule"` // 响应动作
	Message      string     `json:"message" binding:"omitempty,max=200"`                       // 响应附言
	ProposedTime *time.Time `json:"proposed_time" binding:"omitempty"`                         // 提议的新时间
}
