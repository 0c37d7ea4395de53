package respond

import "time"

// QueueItemRespond 实时队列视图中的一项
// LivePosition 是按 (priority desc, createdAt asc) 排序后的 1 基序号，
// 与请求创建时落库的 queue_position 快照是两个概念：展示以本视图为准
type QueueItemRespond struct {
	RequestId            string    `json:"request_id"`
	VisitorId            string    `json:"visitor_id"`
	MemberId             string    `json:"member_id"`
	Purpose              string    `json:"purpose"`
	Priority             int       `json:"priority"`
	LivePosition         int       `json:"live_position"`
	QueuePosition        int       `json:"queue_position"` // 创建时快照，仅供参考
	EstimatedWaitMinutes int       `json:"estimated_wait_minutes"`
	CreatedAt            time.Time `json:"created_at"`
}

// QueueViewRespond 某企业的实时排队视图
type QueueViewRespond struct {
	CompanyId string             `json:"company_id"`
	Total     int                `json:"total"`
	Items     []QueueItemRespond `json:"items"`
}
