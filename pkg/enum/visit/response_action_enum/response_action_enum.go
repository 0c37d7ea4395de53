// Package response_action_enum 定义成员对访问请求的响应动作枚举
package response_action_enum

const (
	ACCEPT     = "accept"     // 接受来访
	DECLINE    = "decline"    // 拒绝来访
	RESCHEDULE = "reschedule" // 改期（状态保持 pending，更新预约时间）
)

// IsValid 判断是否为合法的响应动作
func IsValid(action string) bool {
	switch action {
	case ACCEPT, DECLINE, RESCHEDULE:
		return true
	}
	return false
}
