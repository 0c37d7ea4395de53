package respond

import (
	"time"

	"yunke_visitor_server/internal/model"
)

// MemberResponseRespond 成员响应子记录
type MemberResponseRespond struct {
	Action       string     `json:"action"`                  // accept / decline / reschedule
	Message      string     `json:"message,omitempty"`       // 响应附言
	ProposedTime *time.Time `json:"proposed_time,omitempty"` // 提议的新时间
	RespondedAt  *time.Time `json:"responded_at,omitempty"`  // 响应时间
}

// EntryDetailsRespond 入场/离场子记录
type EntryDetailsRespond struct {
	AllowedAt         *time.Time `json:"allowed_at,omitempty"`         // 放行时间
	EnteredAt         *time.Time `json:"entered_at,omitempty"`         // 入场时间
	ExitedAt          *time.Time `json:"exited_at,omitempty"`          // 离场时间
	EntryGate         string     `json:"entry_gate,omitempty"`         // 入场闸口
	SecurityPersonnel string     `json:"security_personnel,omitempty"` // 安保人员
}

// NotificationsRespond 通知簿记子记录
type NotificationsRespond struct {
	MemberNotifiedAt  *time.Time `json:"member_notified_at,omitempty"`  // 成员通知时间
	VisitorNotifiedAt *time.Time `json:"visitor_notified_at,omitempty"` // 访客通知时间
}

// VisitRequestRespond 访问请求完整视图
type VisitRequestRespond struct {
	RequestId            string                 `json:"request_id"`
	VisitorId            string                 `json:"visitor_id"`
	CompanyId            string                 `json:"company_id"`
	MemberId             string                 `json:"member_id"`
	Purpose              string                 `json:"purpose"`
	PurposeDesc          string                 `json:"purpose_desc,omitempty"`
	DurationMinutes      int                    `json:"duration_minutes"`
	ScheduledTime        *time.Time             `json:"scheduled_time,omitempty"`
	Status               string                 `json:"status"`
	Priority             int                    `json:"priority"`
	QueuePosition        int                    `json:"queue_position"`
	EstimatedWaitMinutes int                    `json:"estimated_wait_minutes"`
	MemberResponse       *MemberResponseRespond `json:"member_response,omitempty"`
	EntryDetails         *EntryDetailsRespond   `json:"entry_details,omitempty"`
	Notifications        NotificationsRespond   `json:"notifications"`
	TotalDuration        *int                   `json:"total_duration,omitempty"` // 实际停留（分钟），入离场齐备时才有
	Tags                 string                 `json:"tags,omitempty"`
	Notes                string                 `json:"notes,omitempty"`
	CreatedAt            time.Time              `json:"created_at"`
	UpdatedAt            time.Time              `json:"updated_at"`
}

// NewVisitRequestRespond 从数据模型构建响应视图
func NewVisitRequestRespond(req *model.VisitRequest) *VisitRequestRespond {
	rsp := &VisitRequestRespond{
		RequestId:            req.Uuid,
		VisitorId:            req.VisitorId,
		CompanyId:            req.CompanyId,
		MemberId:             req.MemberId,
		Purpose:              req.Purpose,
		PurposeDesc:          req.PurposeDesc,
		DurationMinutes:      req.DurationMinutes,
		ScheduledTime:        req.ScheduledTime,
		Status:               req.Status,
		Priority:             req.Priority,
		QueuePosition:        req.QueuePosition,
		EstimatedWaitMinutes: req.EstimatedWaitMinutes,
		Notifications: NotificationsRespond{
			MemberNotifiedAt:  req.MemberNotifiedAt,
			VisitorNotifiedAt: req.VisitorNotifiedAt,
		},
		Tags:      req.Tags,
		Notes:     req.Notes,
		CreatedAt: req.CreatedAt,
		UpdatedAt: req.UpdatedAt,
	}
	if req.ResponseAction != "" {
		rsp.MemberResponse = &MemberResponseRespond{
			Action:       req.ResponseAction,
			Message:      req.ResponseMessage,
			ProposedTime: req.ResponseProposedTime,
			RespondedAt:  req.RespondedAt,
		}
	}
	if req.AllowedAt != nil || req.EnteredAt != nil {
		rsp.EntryDetails = &EntryDetailsRespond{
			AllowedAt:         req.AllowedAt,
			EnteredAt:         req.EnteredAt,
			ExitedAt:          req.ExitedAt,
			EntryGate:         req.EntryGate,
			SecurityPersonnel: req.SecurityPersonnel,
		}
	}
	if minutes, ok := req.TotalDurationMinutes(); ok {
		rsp.TotalDuration = &minutes
	}
	return rsp
}

// PublicVisitRequestRespond 访客状态页的受限视图
// 只暴露访客关心的字段，不含成员附言和安保细节
type PublicVisitRequestRespond struct {
	RequestId     string     `json:"request_id"`
	CompanyId     string     `json:"company_id"`
	Status        string     `json:"status"`
	ScheduledTime *time.Time `json:"scheduled_time,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

// NewPublicVisitRequestRespond 构建受限视图
func NewPublicVisitRequestRespond(req *model.VisitRequest) PublicVisitRequestRespond {
	return PublicVisitRequestRespond{
		RequestId:     req.Uuid,
		CompanyId:     req.CompanyId,
		Status:        req.Status,
		ScheduledTime: req.ScheduledTime,
		CreatedAt:     req.CreatedAt,
	}
}

// VisitRequestListRespond 分页列表
type VisitRequestListRespond struct {
	Total int64                  `json:"total"`
	List  []*VisitRequestRespond `json:"list"`
}
