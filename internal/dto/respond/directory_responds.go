package respond

import (
	"time"

	"yunke_visitor_server/internal/model"
)

// VisitorRespond 访客档案视图（证件号不回传）
type VisitorRespond struct {
	Uuid          string    `json:"uuid"`
	Name          string    `json:"name"`
	Telephone     string    `json:"telephone"`
	Email         string    `json:"email,omitempty"`
	FromCompany   string    `json:"from_company,omitempty"`
	IsBlacklisted int8      `json:"is_blacklisted"`
	EmailOptIn    int8      `json:"email_opt_in"`
	SmsOptIn      int8      `json:"sms_opt_in"`
	CreatedAt     time.Time `json:"created_at"`
}

// NewVisitorRespond 从数据模型构建访客视图
func NewVisitorRespond(v *model.Visitor) VisitorRespond {
	return VisitorRespond{
		Uuid:          v.Uuid,
		Name:          v.Name,
		Telephone:     v.Telephone,
		Email:         v.Email,
		FromCompany:   v.FromCompany,
		IsBlacklisted: v.IsBlacklisted,
		EmailOptIn:    v.EmailOptIn,
		SmsOptIn:      v.SmsOptIn,
		CreatedAt:     v.CreatedAt,
	}
}

// MemberRespond 成员档案视图
type MemberRespond struct {
	Uuid       string    `json:"uuid"`
	CompanyId  string    `json:"company_id"`
	Name       string    `json:"name"`
	Telephone  string    `json:"telephone"`
	Email      string    `json:"email,omitempty"`
	Department string    `json:"department,omitempty"`
	Position   string    `json:"position,omitempty"`
	Status     int8      `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
}

// NewMemberRespond 从数据模型构建成员视图
func NewMemberRespond(m *model.Member) MemberRespond {
	return MemberRespond{
		Uuid:       m.Uuid,
		CompanyId:  m.CompanyId,
		Name:       m.Name,
		Telephone:  m.Telephone,
		Email:      m.Email,
		Department: m.Department,
		Position:   m.Position,
		Status:     m.Status,
		CreatedAt:  m.CreatedAt,
	}
}

// CompanyRespond 企业档案视图
type CompanyRespond struct {
	Uuid      string    `json:"uuid"`
	Name      string    `json:"name"`
	Address   string    `json:"address,omitempty"`
	Status    int8      `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// NewCompanyRespond 从数据模型构建企业视图
func NewCompanyRespond(c *model.Company) CompanyRespond {
	return CompanyRespond{
		Uuid:      c.Uuid,
		Name:      c.Name,
		Address:   c.Address,
		Status:    c.Status,
		CreatedAt: c.CreatedAt,
	}
}

// VisitorListRespond 访客分页列表
type VisitorListRespond struct {
	Total int64            `json:"total"`
	List  []VisitorRespond `json:"list"`
}

// CompanyListRespond 企业分页列表
type CompanyListRespond struct {
	Total int64            `json:"total"`
	List  []CompanyRespond `json:"list"`
}
