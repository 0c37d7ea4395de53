// Package repository 定义数据访问层接口和聚合结构
// 采用 Repository 模式将数据访问逻辑与业务逻辑分离
// 所有 Repository 接口在此文件定义，具体实现在各自的文件中
package repository

import (
	"time"

	"yunke_visitor_server/internal/model"
)

// ==================== Repository 接口定义 ====================

// VisitRequestRepository 访问请求数据访问接口
// 生命周期内的所有读写都经由此接口
type VisitRequestRepository interface {
	// FindByUuid 根据 UUID 查找请求
	FindByUuid(uuid string) (*model.VisitRequest, error)
	// FindPendingByTriple 查找同一 (访客, 成员, 企业) 组合下的 pending 请求
	// 用于"至多一条 pending"查重；不存在时返回 CodeNotFound 错误
	FindPendingByTriple(visitorId, memberId, companyId string) (*model.VisitRequest, error)
	// CountPendingBefore 统计同企业下创建时间严格早于 createdBefore 的 pending 请求数
	// 用于创建时刻的排队序号计算
	CountPendingBefore(companyId string, createdBefore time.Time) (int64, error)
	// FindPendingByCompany 查找企业的全部 pending 请求（实时队列视图的数据源）
	FindPendingByCompany(companyId string) ([]model.VisitRequest, error)
	// FindOverduePending 查找预约时间早于 before 且仍处于 pending 的请求
	// 供后台过期任务扫描
	FindOverduePending(before time.Time) ([]model.VisitRequest, error)
	// FindByMember 分页查找成员名下的请求
	FindByMember(memberId string, page, pageSize int) ([]model.VisitRequest, int64, error)
	// FindByVisitor 分页查找访客名下的请求
	FindByVisitor(visitorId string, page, pageSize int) ([]model.VisitRequest, int64, error)
	// Create 创建请求
	Create(req *model.VisitRequest) error
	// Update 全字段更新请求
	Update(req *model.VisitRequest) error
}

// VisitorRepository 访客数据访问接口
type VisitorRepository interface {
	// FindByUuid 根据 UUID 查找访客
	FindByUuid(uuid string) (*model.Visitor, error)
	// FindByTelephone 根据手机号查找访客
	FindByTelephone(telephone string) (*model.Visitor, error)
	// GetVisitorList 分页获取访客列表
	GetVisitorList(page, pageSize int) ([]model.Visitor, int64, error)
	// Create 创建访客
	Create(visitor *model.Visitor) error
	// Update 更新访客信息
	Update(visitor *model.Visitor) error
	// SoftDeleteByUuid 软删除访客
	SoftDeleteByUuid(uuid string) error
}

// MemberRepository 企业成员数据访问接口
type MemberRepository interface {
	// FindByUuid 根据 UUID 查找成员
	FindByUuid(uuid string) (*model.Member, error)
	// FindByTelephone 根据手机号查找成员（登录用）
	FindByTelephone(telephone string) (*model.Member, error)
	// FindByCompany 查找企业下的所有成员
	FindByCompany(companyId string) ([]model.Member, error)
	// Create 创建成员
	Create(member *model.Member) error
	// Update 更新成员信息
	Update(member *model.Member) error
	// SoftDeleteByUuid 软删除成员
	SoftDeleteByUuid(uuid string) error
}

// CompanyRepository 企业数据访问接口
type CompanyRepository interface {
	// FindByUuid 根据 UUID 查找企业
	FindByUuid(uuid string) (*model.Company, error)
	// GetCompanyList 分页获取企业列表
	GetCompanyList(page, pageSize int) ([]model.Company, int64, error)
	// Create 创建企业
	Create(company *model.Company) error
	// Update 更新企业信息
	Update(company *model.Company) error
	// SoftDeleteByUuid 软删除企业
	SoftDeleteByUuid(uuid string) error
}

// AdminRepository 管理员数据访问接口
type AdminRepository interface {
	// FindByUuid 根据 UUID 查找管理员
	FindByUuid(uuid string) (*model.Admin, error)
	// FindByAccount 根据登录账号查找管理员
	FindByAccount(account string) (*model.Admin, error)
	// Create 创建管理员
	Create(admin *model.Admin) error
}

// AuditLogRepository 审计日志数据访问接口
// 只追加；查询仅用于管理端追溯
type AuditLogRepository interface {
	// Create 追加一条审计记录
	Create(log *model.AuditLog) error
	// FindByEntityId 查找某实体的全部审计记录，按时间正序
	FindByEntityId(entityId string) ([]model.AuditLog, error)
}
