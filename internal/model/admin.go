package model

import (
	"strings"

	"gorm.io/gorm"
)

// Admin 管理员模型
// 对应数据库 admin 表
// 前台/安保人员共用管理员账号，通过 permissions 字段区分可执行的操作
type Admin struct {
	gorm.Model
	Uuid     string `gorm:"column:uuid;uniqueIndex;type:char(20);not null;comment:管理员id"`
	Account  string `gorm:"column:account;uniqueIndex;type:varchar(50);not null;comment:登录账号"`
	Password string `gorm:"column:password;type:varchar(100);not null;comment:bcrypt密码散列"`
	Name     string `gorm:"column:name;type:varchar(50);comment:姓名"`

	// Permissions 权限列表，逗号分隔
	// 例如 "force_accept,manage_directory"；空表示仅具备基础入场/离场登记权限
	Permissions string `gorm:"column:permissions;type:varchar(200);comment:权限列表"`

	Status int8 `gorm:"column:status;not null;default:0;comment:状态，0.正常，1.停用"`
}

func (Admin) TableName() string {
	return "admin"
}

// HasPermission 检查管理员是否具备指定权限
func (a *Admin) HasPermission(perm string) bool {
	for _, p := range a.PermissionList() {
		if p == perm {
			return true
		}
	}
	return false
}

// PermissionList 返回权限点切片
func (a *Admin) PermissionList() []string {
	if a.Permissions == "" {
		return nil
	}
	parts := strings.Split(a.Permissions, ",")
	perms := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			perms = append(perms, p)
		}
	}
	return perms
}
