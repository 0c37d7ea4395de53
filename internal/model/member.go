package model

import "gorm.io/gorm"

// Member 企业成员模型（被访人）
// 对应数据库 member 表
type Member struct {
	gorm.Model
	Uuid       string `gorm:"column:uuid;uniqueIndex;type:char(20);not null;comment:成员id"`
	CompanyId  string `gorm:"column:company_id;index;type:char(20);not null;comment:所属企业id"`
	Name       string `gorm:"column:name;type:varchar(50);not null;comment:姓名"`
	Telephone  string `gorm:"column:telephone;uniqueIndex;type:char(20);not null;comment:手机号"`
	Email      string `gorm:"column:email;type:varchar(100);comment:邮箱"`
	Password   string `gorm:"column:password;type:varchar(100);not null;comment:bcrypt密码散列"`
	Department string `gorm:"column:department;type:varchar(50);comment:部门"`
	Position   string `gorm:"column:position;type:varchar(50);comment:职位"`
	Status     int8   `gorm:"column:status;not null;default:0;comment:状态，0.正常，1.停用"`
	EmailOptIn int8   `gorm:"column:email_opt_in;not null;default:1;comment:邮件通知开关"`
	SmsOptIn   int8   `gorm:"column:sms_opt_in;not null;default:1;comment:短信通知开关"`
}

func (Member) TableName() string {
	return "member"
}
