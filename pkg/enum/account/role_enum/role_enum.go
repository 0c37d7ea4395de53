// Package role_enum 定义登录主体的角色枚举
// 安保人员通过管理员账号操作入场/离场接口，不单设角色
package role_enum

const (
	MEMBER = "member" // 企业成员（被访人）
	ADMIN  = "admin"  // 管理员（含前台/安保）
)
