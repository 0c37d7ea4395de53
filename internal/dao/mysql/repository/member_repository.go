package repository

import (
	"yunke_visitor_server/internal/model"

	"gorm.io/gorm"
)

// memberRepository MemberRepository 接口的实现
type memberRepository struct {
	db *gorm.DB
}

// NewMemberRepository 创建 MemberRepository 实例
func NewMemberRepository(db *gorm.DB) MemberRepository {
	return &memberRepository{db: db}
}

// FindByUuid 根据 UUID 查找成员
func (r *memberRepository) FindByUuid(uuid string) (*model.Member, error) {
	var member model.Member
	if err := r.db.Where("uuid = ?", uuid).First(&member).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询成员 uuid=%s", uuid)
	}
	return &member, nil
}

// FindByTelephone 根据手机号查找成员
func (r *memberRepository) FindByTelephone(telephone string) (*model.Member, error) {
	var member model.Member
	if err := r.db.Where("telephone = ?", telephone).First(&member).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询成员 telephone=%s", telephone)
	}
	return &member, nil
}

// FindByCompany 查找企业下的所有成员
func (r *memberRepository) FindByCompany(companyId string) ([]model.Member, error) {
	var members []model.Member
	if err := r.db.Where("company_id = ?", companyId).Find(&members).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询企业成员 company=%s", companyId)
	}
	return members, nil
}

// Create 创建成员
func (r *memberRepository) Create(member *model.Member) error {
	if err := r.db.Create(member).Error; err != nil {
		return wrapDBError(err, "创建成员")
	}
	return nil
}

// Update 更新成员信息
func (r *memberRepository) Update(member *model.Member) error {
	if err := r.db.Save(member).Error; err != nil {
		return wrapDBErrorf(err, "更新成员 uuid=%s", member.Uuid)
	}
	return nil
}

// SoftDeleteByUuid 软删除成员
func (r *memberRepository) SoftDeleteByUuid(uuid string) error {
	if err := r.db.Where("uuid = ?", uuid).Delete(&model.Member{}).Error; err != nil {
		return wrapDBErrorf(err, "删除成员 uuid=%s", uuid)
	}
	return nil
}
