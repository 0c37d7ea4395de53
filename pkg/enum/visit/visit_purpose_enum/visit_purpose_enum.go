// Package visit_purpose_enum 定义来访目的枚举
package visit_purpose_enum

const (
	INTERVIEW = "interview" // 面试
	CASUAL    = "casual"    // 私人拜访
	DELIVERY  = "delivery"  // 快递/送货
	MEETING   = "meeting"   // 商务会议
	OTHER     = "other"     // 其他
)

// IsValid 判断是否为合法的来访目的
func IsValid(purpose string) bool {
	switch purpose {
	case INTERVIEW, CASUAL, DELIVERY, MEETING, OTHER:
		return true
	}
	return false
}
