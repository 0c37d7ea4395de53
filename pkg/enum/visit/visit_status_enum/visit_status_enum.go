// Package visit_status_enum 定义访问请求的状态枚举
// 状态机：pending -> accepted/declined/cancelled/expired
//
//	accepted -> in-progress/cancelled
//	in-progress -> completed
//
// completed/declined/cancelled/expired 为终态，不允许再发生任何迁移
package visit_status_enum

const (
	PENDING     = "pending"     // 待成员处理
	ACCEPTED    = "accepted"    // 成员已接受，等待来访
	IN_PROGRESS = "in-progress" // 访客已入场
	COMPLETED   = "completed"   // 访客已离场，访问结束
	DECLINED    = "declined"    // 成员已拒绝
	CANCELLED   = "cancelled"   // 已取消
	EXPIRED     = "expired"     // 已过期
)

// IsTerminal 判断状态是否为终态
func IsTerminal(status string) bool {
	switch status {
	case COMPLETED, DECLINED, CANCELLED, EXPIRED:
		return true
	}
	return false
}

// IsValid 判断是否为合法状态值
func IsValid(status string) bool {
	switch status {
	case PENDING, ACCEPTED, IN_PROGRESS, COMPLETED, DECLINED, CANCELLED, EXPIRED:
		return true
	}
	return false
}
