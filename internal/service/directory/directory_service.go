// Package directory 实现访客/成员/企业档案管理
// 管理端的薄 CRUD，没有生命周期那样的状态机约束
package directory

import (
	"golang.org/x/crypto/bcrypt"

	"yunke_visitor_server/internal/config"
	"yunke_visitor_server/internal/dao/mysql/repository"
	"yunke_visitor_server/internal/dto/request"
	"yunke_visitor_server/internal/dto/respond"
	"yunke_visitor_server/internal/model"
	"yunke_visitor_server/internal/service"
	"yunke_visitor_server/pkg/aes"
	"yunke_visitor_server/pkg/errorx"
	"yunke_visitor_server/pkg/util/random"
)

// directoryService DirectoryService 接口的实现
type directoryService struct {
	repos *repository.Repositories
}

// NewDirectoryService 创建档案 Service 实例
func NewDirectoryService(repos *repository.Repositories) service.DirectoryService {
	return &directoryService{repos: repos}
}

// UpsertVisitor 创建或更新访客档案
// 证件号在落库前做 AES-GCM 加密，视图层永不回传
func (s *directoryService) UpsertVisitor(req request.UpsertVisitorRequest) (*respond.VisitorRespond, error) {
	var visitor *model.Visitor
	if req.Uuid != "" {
		found, err := s.repos.Visitor.FindByUuid(req.Uuid)
		if err != nil {
			if errorx.IsNotFound(err) {
				return nil, errorx.New(errorx.CodeNotFound, "访客不存在")
			}
			return nil, err
		}
		visitor = found
	} else {
		// 手机号唯一，同号复用既有档案
		if existing, err := s.repos.Visitor.FindByTelephone(req.Telephone); err == nil {
			visitor = existing
		} else if !errorx.IsNotFound(err) {
			return nil, err
		} else {
			visitor = &model.Visitor{Uuid: "V" + random.GetNowAndLenRandomString(13)}
		}
	}

	visitor.Name = req.Name
	visitor.Telephone = req.Telephone
	visitor.Email = req.Email
	visitor.FromCompany = req.FromCompany
	if req.IdCard != "" {
		key := []byte(config.GetConfig().SecretConfig.AesKey)
		cipher, err := aes.Encrypt([]byte(req.IdCard), key)
		if err != nil {
			return nil, errorx.Wrap(err, errorx.CodeServerBusy, "证件号加密失败")
		}
		visitor.IdCardCipher = cipher
	}
	if req.EmailOptIn != nil {
		visitor.EmailOptIn = *req.EmailOptIn
	}
	if req.SmsOptIn != nil {
		visitor.SmsOptIn = *req.SmsOptIn
	}

	var err error
	if visitor.ID == 0 {
		err = s.repos.Visitor.Create(visitor)
	} else {
		err = s.repos.Visitor.Update(visitor)
	}
	if err != nil {
		return nil, err
	}
	rsp := respond.NewVisitorRespond(visitor)
	return &rsp, nil
}

// GetVisitorList 访客分页列表
func (s *directoryService) GetVisitorList(page, pageSize int) (*respond.VisitorListRespond, error) {
	visitors, total, err := s.repos.Visitor.GetVisitorList(page, pageSize)
	if err != nil {
		return nil, err
	}
	list := make([]respond.VisitorRespond, 0, len(visitors))
	for i := range visitors {
		list = append(list, respond.NewVisitorRespond(&visitors[i]))
	}
	return &respond.VisitorListRespond{Total: total, List: list}, nil
}

// SetVisitorBlacklist 设置/解除访客黑名单
// 拉黑只拦截新请求，既有请求不受影响
func (s *directoryService) SetVisitorBlacklist(visitorId string, blacklisted bool) error {
	visitor, err := s.repos.Visitor.FindByUuid(visitorId)
	if err != nil {
		if errorx.IsNotFound(err) {
			return errorx.New(errorx.CodeNotFound, "访客不存在")
		}
		return err
	}
	if blacklisted {
		visitor.IsBlacklisted = 1
	} else {
		visitor.IsBlacklisted = 0
	}
	return s.repos.Visitor.Update(visitor)
}

// DeleteVisitor 软删除访客档案
func (s *directoryService) DeleteVisitor(visitorId string) error {
	return s.repos.Visitor.SoftDeleteByUuid(visitorId)
}

// UpsertMember 创建或更新成员档案
func (s *directoryService) UpsertMember(req request.UpsertMemberRequest) (*respond.MemberRespond, error) {
	if _, err := s.repos.Company.FindByUuid(req.CompanyId); err != nil {
		if errorx.IsNotFound(err) {
			return nil, errorx.New(errorx.CodeNotFound, "企业不存在")
		}
		return nil, err
	}

	var member *model.Member
	if req.Uuid != "" {
		found, err := s.repos.Member.FindByUuid(req.Uuid)
		if err != nil {
			if errorx.IsNotFound(err) {
				return nil, errorx.New(errorx.CodeNotFound, "成员不存在")
			}
			return nil, err
		}
		member = found
	} else {
		if req.Password == "" {
			return nil, errorx.New(errorx.CodeInvalidParam, "创建成员必须设置密码")
		}
		if _, err := s.repos.Member.FindByTelephone(req.Telephone); err == nil {
			return nil, errorx.New(errorx.CodeRecordExist, "该手机号已注册为成员")
		} else if !errorx.IsNotFound(err) {
			return nil, err
		}
		member = &model.Member{Uuid: "M" + random.GetNowAndLenRandomString(13)}
	}

	member.CompanyId = req.CompanyId
	member.Name = req.Name
	member.Telephone = req.Telephone
	member.Email = req.Email
	member.Department = req.Department
	member.Position = req.Position
	if req.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, errorx.Wrap(err, errorx.CodeServerBusy, "密码加密失败")
		}
		member.Password = string(hash)
	}

	var err error
	if member.ID == 0 {
		err = s.repos.Member.Create(member)
	} else {
		err = s.repos.Member.Update(member)
	}
	if err != nil {
		return nil, err
	}
	rsp := respond.NewMemberRespond(member)
	return &rsp, nil
}

// GetMembersByCompany 公司成员列表
func (s *directoryService) GetMembersByCompany(companyId string) ([]respond.MemberRespond, error) {
	members, err := s.repos.Member.FindByCompany(companyId)
	if err != nil {
		return nil, err
	}
	list := make([]respond.MemberRespond, 0, len(members))
	for i := range members {
		list = append(list, respond.NewMemberRespond(&members[i]))
	}
	return list, nil
}

// DeleteMember 软删除成员档案
func (s *directoryService) DeleteMember(memberId string) error {
	return s.repos.Member.SoftDeleteByUuid(memberId)
}

// UpsertCompany 创建或更新企业档案
func (s *directoryService) UpsertCompany(req request.UpsertCompanyRequest) (*respond.CompanyRespond, error) {
	var company *model.Company
	if req.Uuid != "" {
		found, err := s.repos.Company.FindByUuid(req.Uuid)
		if err != nil {
			if errorx.IsNotFound(err) {
				return nil, errorx.New(errorx.CodeNotFound, "企业不存在")
			}
			return nil, err
		}
		company = found
	} else {
		company = &model.Company{Uuid: "C" + random.GetNowAndLenRandomString(13)}
	}

	company.Name = req.Name
	company.Address = req.Address

	var err error
	if company.ID == 0 {
		err = s.repos.Company.Create(company)
	} else {
		err = s.repos.Company.Update(company)
	}
	if err != nil {
		return nil, err
	}
	rsp := respond.NewCompanyRespond(company)
	return &rsp, nil
}

// GetCompanyList 企业分页列表
func (s *directoryService) GetCompanyList(page, pageSize int) (*respond.CompanyListRespond, error) {
	companies, total, err := s.repos.Company.GetCompanyList(page, pageSize)
	if err != nil {
		return nil, err
	}
	list := make([]respond.CompanyRespond, 0, len(companies))
	for i := range companies {
		list = append(list, respond.NewCompanyRespond(&companies[i]))
	}
	return &respond.CompanyListRespond{Total: total, List: list}, nil
}

// DeleteCompany 软删除企业档案
func (s *directoryService) DeleteCompany(companyId string) error {
	return s.repos.Company.SoftDeleteByUuid(companyId)
}
