// Package repository 提供数据访问层的具体实现
// 本文件实现 VisitRequestRepository 接口，处理访问请求相关的数据库操作
package repository

import (
	"time"

	"yunke_visitor_server/internal/model"
	"yunke_visitor_server/pkg/enum/visit/visit_status_enum"

	"gorm.io/gorm"
)

// visitRequestRepository VisitRequestRepository 接口的实现
type visitRequestRepository struct {
	db *gorm.DB // GORM 数据库实例
}

// NewVisitRequestRepository 创建 VisitRequestRepository 实例
func NewVisitRequestRepository(db *gorm.DB) VisitRequestRepository {
	return &visitRequestRepository{db: db}
}

// FindByUuid 根据 UUID 查找请求
func (r *visitRequestRepository) FindByUuid(uuid string) (*model.VisitRequest, error) {
	var req model.VisitRequest
	if err := r.db.Where("uuid = ?", uuid).First(&req).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询访问请求 uuid=%s", uuid)
	}
	return &req, nil
}

// FindPendingByTriple 查找同一 (访客, 成员, 企业) 组合下的 pending 请求
// 用于创建前的查重检查；查重与创建之间没有事务隔离，并发提交下该检查是尽力而为的
func (r *visitRequestRepository) FindPendingByTriple(visitorId, memberId, companyId string) (*model.VisitRequest, error) {
	var req model.VisitRequest
	err := r.db.Where("visitor_id = ? AND member_id = ? AND company_id = ? AND status = ?",
		visitorId, memberId, companyId, visit_status_enum.PENDING).First(&req).Error
	if err != nil {
		return nil, wrapDBErrorf(err, "查询待处理请求 visitor=%s member=%s", visitorId, memberId)
	}
	return &req, nil
}

// CountPendingBefore 统计同企业下创建时间严格早于 createdBefore 的 pending 请求数
func (r *visitRequestRepository) CountPendingBefore(companyId string, createdBefore time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&model.VisitRequest{}).
		Where("company_id = ? AND status = ? AND created_at < ?",
			companyId, visit_status_enum.PENDING, createdBefore).
		Count(&count).Error
	if err != nil {
		return 0, wrapDBErrorf(err, "统计排队请求 company=%s", companyId)
	}
	return count, nil
}

// FindPendingByCompany 查找企业的全部 pending 请求
// 排序交由 Service 层的队列视图逻辑处理，这里只按创建时间正序取出
func (r *visitRequestRepository) FindPendingByCompany(companyId string) ([]model.VisitRequest, error) {
	var reqs []model.VisitRequest
	err := r.db.Where("company_id = ? AND status = ?", companyId, visit_status_enum.PENDING).
		Order("created_at ASC").Find(&reqs).Error
	if err != nil {
		return nil, wrapDBErrorf(err, "查询企业排队请求 company=%s", companyId)
	}
	return reqs, nil
}

// FindOverduePending 查找预约时间早于 before 且仍处于 pending 的请求
// 未填预约时间的请求不会过期
func (r *visitRequestRepository) FindOverduePending(before time.Time) ([]model.VisitRequest, error) {
	var reqs []model.VisitRequest
	err := r.db.Where("status = ? AND scheduled_time IS NOT NULL AND scheduled_time < ?",
		visit_status_enum.PENDING, before).Find(&reqs).Error
	if err != nil {
		return nil, wrapDBError(err, "查询过期待处理请求")
	}
	return reqs, nil
}

// FindByMember 分页查找成员名下的请求，按创建时间倒序
func (r *visitRequestRepository) FindByMember(memberId string, page, pageSize int) ([]model.VisitRequest, int64, error) {
	return r.findPaged("member_id = ?", memberId, page, pageSize)
}

// FindByVisitor 分页查找访客名下的请求，按创建时间倒序
func (r *visitRequestRepository) FindByVisitor(visitorId string, page, pageSize int) ([]model.VisitRequest, int64, error) {
	return r.findPaged("visitor_id = ?", visitorId, page, pageSize)
}

func (r *visitRequestRepository) findPaged(cond string, arg string, page, pageSize int) ([]model.VisitRequest, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	var total int64
	if err := r.db.Model(&model.VisitRequest{}).Where(cond, arg).Count(&total).Error; err != nil {
		return nil, 0, wrapDBError(err, "统计访问请求")
	}
	var reqs []model.VisitRequest
	err := r.db.Where(cond, arg).Order("created_at DESC").
		Offset((page - 1) * pageSize).Limit(pageSize).Find(&reqs).Error
	if err != nil {
		return nil, 0, wrapDBError(err, "分页查询访问请求")
	}
	return reqs, total, nil
}

// Create 创建请求
func (r *visitRequestRepository) Create(req *model.VisitRequest) error {
	if err := r.db.Create(req).Error; err != nil {
		return wrapDBError(err, "创建访问请求")
	}
	return nil
}

// Update 全字段更新请求
func (r *visitRequestRepository) Update(req *model.VisitRequest) error {
	if err := r.db.Save(req).Error; err != nil {
		return wrapDBErrorf(err, "更新访问请求 uuid=%s", req.Uuid)
	}
	return nil
}
