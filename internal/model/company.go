package model

import "gorm.io/gorm"

// Company 企业模型
// 对应数据库 company 表
type Company struct {
	gorm.Model
	Uuid    string `gorm:"column:uuid;uniqueIndex;type:char(20);not null;comment:企业id"`
	Name    string `gorm:"column:name;uniqueIndex;type:varchar(100);not null;comment:企业名称"`
	Address string `gorm:"column:address;type:varchar(200);comment:地址"`
	Status  int8   `gorm:"column:status;not null;default:0;comment:状态，0.正常，1.停用"`
}

func (Company) TableName() string {
	return "company"
}
