package repository

import (
	"yunke_visitor_server/internal/model"

	"gorm.io/gorm"
)

// visitorRepository VisitorRepository 接口的实现
type visitorRepository struct {
	db *gorm.DB
}

// NewVisitorRepository 创建 VisitorRepository 实例
func NewVisitorRepository(db *gorm.DB) VisitorRepository {
	return &visitorRepository{db: db}
}

// FindByUuid 根据 UUID 查找访客
func (r *visitorRepository) FindByUuid(uuid string) (*model.Visitor, error) {
	var visitor model.Visitor
	if err := r.db.Where("uuid = ?", uuid).First(&visitor).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询访客 uuid=%s", uuid)
	}
	return &visitor, nil
}

// FindByTelephone 根据手机号查找访客
func (r *visitorRepository) FindByTelephone(telephone string) (*model.Visitor, error) {
	var visitor model.Visitor
	if err := r.db.Where("telephone = ?", telephone).First(&visitor).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询访客 telephone=%s", telephone)
	}
	return &visitor, nil
}

// GetVisitorList 分页获取访客列表
func (r *visitorRepository) GetVisitorList(page, pageSize int) ([]model.Visitor, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	var total int64
	if err := r.db.Model(&model.Visitor{}).Count(&total).Error; err != nil {
		return nil, 0, wrapDBError(err, "统计访客")
	}
	var visitors []model.Visitor
	err := r.db.Order("created_at DESC").
		Offset((page - 1) * pageSize).Limit(pageSize).Find(&visitors).Error
	if err != nil {
		return nil, 0, wrapDBError(err, "分页查询访客")
	}
	return visitors, total, nil
}

// Create 创建访客
func (r *visitorRepository) Create(visitor *model.Visitor) error {
	if err := r.db.Create(visitor).Error; err != nil {
		return wrapDBError(err, "创建访客")
	}
	return nil
}

// Update 更新访客信息
func (r *visitorRepository) Update(visitor *model.Visitor) error {
	if err := r.db.Save(visitor).Error; err != nil {
		return wrapDBErrorf(err, "更新访客 uuid=%s", visitor.Uuid)
	}
	return nil
}

// SoftDeleteByUuid 软删除访客
func (r *visitorRepository) SoftDeleteByUuid(uuid string) error {
	if err := r.db.Where("uuid = ?", uuid).Delete(&model.Visitor{}).Error; err != nil {
		return wrapDBErrorf(err, "删除访客 uuid=%s", uuid)
	}
	return nil
}
