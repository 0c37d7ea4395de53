package repository

import (
	"yunke_visitor_server/internal/model"

	"gorm.io/gorm"
)

// adminRepository AdminRepository 接口的实现
type adminRepository struct {
	db *gorm.DB
}

// NewAdminRepository 创建 AdminRepository 实例
func NewAdminRepository(db *gorm.DB) AdminRepository {
	return &adminRepository{db: db}
}

// FindByUuid 根据 UUID 查找管理员
func (r *adminRepository) FindByUuid(uuid string) (*model.Admin, error) {
	var admin model.Admin
	if err := r.db.Where("uuid = ?", uuid).First(&admin).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询管理员 uuid=%s", uuid)
	}
	return &admin, nil
}

// FindByAccount 根据登录账号查找管理员
func (r *adminRepository) FindByAccount(account string) (*model.Admin, error) {
	var admin model.Admin
	if err := r.db.Where("account = ?", account).First(&admin).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询管理员 account=%s", account)
	}
	return &admin, nil
}

// Create 创建管理员
func (r *adminRepository) Create(admin *model.Admin) error {
	if err := r.db.Create(admin).Error; err != nil {
		return wrapDBError(err, "创建管理员")
	}
	return nil
}
