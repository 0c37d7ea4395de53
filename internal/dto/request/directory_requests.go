package request

// ==================== 档案管理（薄 CRUD，无业务不变量） ====================

// UpsertVisitorRequest 创建/更新访客档案
type UpsertVisitorRequest struct {
	Uuid        string `json:"uuid" binding:"omitempty"`                   // 更新时必填
	Name        string `json:"name" binding:"required,max=50"`             // 姓名
	Telephone   string `json:"telephone" binding:"required,len=11"`        // 手机号
	Email       string `json:"email" binding:"omitempty,email"`            // 邮箱
	FromCompany string `json:"from_company" binding:"omitempty,max=100"`   // 来访单位
	IdCard      string `json:"id_card" binding:"omitempty,max=30"`         // 证件号，落库前加密
	EmailOptIn  *int8  `json:"email_opt_in" binding:"omitempty,oneof=0 1"` // 邮件通知开关
	SmsOptIn    *int8  `json:"sms_opt_in" binding:"omitempty,oneof=0 1"`   // 短信通知开关
}

// UpsertMemberRequest 创建/更新成员档案
type UpsertMemberRequest struct {
	Uuid       string `json:"uuid" binding:"omitempty"`
	CompanyId  string `json:"company_id" binding:"required"`
	Name       string `json:"name" binding:"required,max=50"`
	Telephone  string `json:"telephone" binding:"required,len=11"`
	Email      string `json:"email" binding:"omitempty,email"`
	Password   string `json:"password" binding:"omitempty,min=8,max=50"` // 创建时必填
	Department string `json:"department" binding:"omitempty,max=50"`
	Position   string `json:"position" binding:"omitempty,max=50"`
}

// UpsertCompanyRequest 创建/更新企业档案
type UpsertCompanyRequest struct {
	Uuid    string `json:"uuid" binding:"omitempty"`
	Name    string `json:"name" binding:"required,max=100"`
	Address string `json:"address" binding:"omitempty,max=200"`
}

// SetBlacklistRequest 设置访客拉黑状态
type SetBlacklistRequest struct {
	Blacklisted int8 `json:"blacklisted" binding:"oneof=0 1"` // 1 拉黑，0 解除
}

// PageRequest 分页查询参数
type PageRequest struct {
	Page     int `form:"page" binding:"omitempty,min=1"`              // 页码，从 1 开始
	PageSize int `form:"page_size" binding:"omitempty,min=1,max=100"` // 每页条数
}
