// Package model 定义数据库实体模型
// 本文件定义访客模型
package model

import (
	"gorm.io/gorm"
)

// Visitor 访客模型
// 对应数据库 visitor 表
// 访客是外部人员，不持有登录账号，通过手机验证码查询自己的请求状态
type Visitor struct {
	gorm.Model

	// Uuid 访客唯一标识
	// 格式：V + 6位日期 + 随机字符串
	Uuid string `gorm:"column:uuid;uniqueIndex;type:char(20);not null;comment:访客id"`

	// Name 姓名
	Name string `gorm:"column:name;type:varchar(50);not null;comment:姓名"`

	// Telephone 手机号，唯一
	Telephone string `gorm:"column:telephone;uniqueIndex;type:char(20);not null;comment:手机号"`

	// Email 邮箱，可空；为空时不尝试邮件通知
	Email string `gorm:"column:email;type:varchar(100);comment:邮箱"`

	// FromCompany 访客所属单位（自由填写）
	FromCompany string `gorm:"column:from_company;type:varchar(100);comment:来访单位"`

	// IdCardCipher 证件号密文
	// 使用 pkg/aes AES-GCM 加密后落库，明文不出服务进程
	IdCardCipher string `gorm:"column:id_card_cipher;type:varchar(255);comment:证件号密文"`

	// IsBlacklisted 是否被拉黑
	// 拉黑的访客不允许提交新的访问请求
	IsBlacklisted int8 `gorm:"column:is_blacklisted;not null;default:0;comment:拉黑标记，0.正常，1.拉黑"`

	// EmailOptIn 是否接收邮件通知
	EmailOptIn int8 `gorm:"column:email_opt_in;not null;default:1;comment:邮件通知开关"`

	// SmsOptIn 是否接收短信通知
	SmsOptIn int8 `gorm:"column:sms_opt_in;not null;default:1;comment:短信通知开关"`
}

// TableName 指定表名
func (Visitor) TableName() string {
	return "visitor"
}
