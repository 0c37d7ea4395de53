package repository

import (
	"yunke_visitor_server/internal/model"

	"gorm.io/gorm"
)

// companyRepository CompanyRepository 接口的实现
type companyRepository struct {
	db *gorm.DB
}

// NewCompanyRepository 创建 CompanyRepository 实例
func NewCompanyRepository(db *gorm.DB) CompanyRepository {
	return &companyRepository{db: db}
}

// FindByUuid 根据 UUID 查找企业
func (r *companyRepository) FindByUuid(uuid string) (*model.Company, error) {
	var company model.Company
	if err := r.db.Where("uuid = ?", uuid).First(&company).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询企业 uuid=%s", uuid)
	}
	return &company, nil
}

// GetCompanyList 分页获取企业列表
func (r *companyRepository) GetCompanyList(page, pageSize int) ([]model.Company, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	var total int64
	if err := r.db.Model(&model.Company{}).Count(&total).Error; err != nil {
		return nil, 0, wrapDBError(err, "统计企业")
	}
	var companies []model.Company
	err := r.db.Order("created_at DESC").
		Offset((page - 1) * pageSize).Limit(pageSize).Find(&companies).Error
	if err != nil {
		return nil, 0, wrapDBError(err, "分页查询企业")
	}
	return companies, total, nil
}

// Create 创建企业
func (r *companyRepository) Create(company *model.Company) error {
	if err := r.db.Create(company).Error; err != nil {
		return wrapDBError(err, "创建企业")
	}
	return nil
}

// Update 更新企业信息
func (r *companyRepository) Update(company *model.Company) error {
	if err := r.db.Save(company).Error; err != nil {
		return wrapDBErrorf(err, "更新企业 uuid=%s", company.Uuid)
	}
	return nil
}

// SoftDeleteByUuid 软删除企业
func (r *companyRepository) SoftDeleteByUuid(uuid string) error {
	if err := r.db.Where("uuid = ?", uuid).Delete(&model.Company{}).Error; err != nil {
		return wrapDBErrorf(err, "删除企业 uuid=%s", uuid)
	}
	return nil
}
