// Package account_status_enum 定义成员/企业账号状态枚举
package account_status_enum

const (
	NORMAL   int8 = 0 // 正常
	DISABLED int8 = 1 // 禁用/停用
)
