// Package repository 提供 Repository 层聚合与构造
package repository

import (
	"gorm.io/gorm"
)

// Repositories 聚合所有 Repository 实例
// 作为依赖注入的入口，Service 层通过此结构访问数据层
type Repositories struct {
	db           *gorm.DB               // GORM 数据库实例
	VisitRequest VisitRequestRepository // 访问请求 Repository
	Visitor      VisitorRepository      // 访客 Repository
	Member       MemberRepository       // 成员 Repository
	Company      CompanyRepository      // 企业 Repository
	Admin        AdminRepository        // 管理员 Repository
	AuditLog     AuditLogRepository     // 审计日志 Repository
}

// NewRepositories 创建所有 Repository 实例
// 接收 GORM 数据库实例，初始化并返回 Repositories 聚合
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		db:           db,
		VisitRequest: NewVisitRequestRepository(db),
		Visitor:      NewVisitorRepository(db),
		Member:       NewMemberRepository(db),
		Company:      NewCompanyRepository(db),
		Admin:        NewAdminRepository(db),
		AuditLog:     NewAuditLogRepository(db),
	}
}

// Transaction 在数据库事务中执行函数
// 事务内的所有操作要么全部成功，要么全部回滚
// fn 接收事务内的 Repositories 实例
func (r *Repositories) Transaction(fn func(txRepos *Repositories) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		// 使用事务 db 创建新的 Repositories 实例
		return fn(NewRepositories(tx))
	})
}
