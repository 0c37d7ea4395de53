// Package account 实现账号认证业务
// 成员/管理员密码登录、令牌刷新、访客查询验证码
package account

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"yunke_visitor_server/internal/dao/mysql/repository"
	myredis "yunke_visitor_server/internal/dao/redis"
	"yunke_visitor_server/internal/dto/request"
	"yunke_visitor_server/internal/dto/respond"
	"yunke_visitor_server/internal/infrastructure/notify"
	"yunke_visitor_server/internal/service"
	"yunke_visitor_server/pkg/enum/account/account_status_enum"
	"yunke_visitor_server/pkg/enum/account/role_enum"
	"yunke_visitor_server/pkg/errorx"
	myjwt "yunke_visitor_server/pkg/util/jwt"
	"yunke_visitor_server/pkg/util/random"
)

// 验证码与刷新令牌的缓存键前缀
const (
	smsCodeKeyPrefix      = "visitor_sms_code_"
	smsThrottleKeyPrefix  = "visitor_sms_throttle_"
	refreshTokenKeyPrefix = "refresh_token_"

	smsCodeTTL      = 5 * time.Minute
	smsThrottleTTL  = time.Minute
	refreshTokenTTL = 7 * 24 * time.Hour
)

// accountService AccountService 接口的实现
type accountService struct {
	repos *repository.Repositories
	cache myredis.CacheService
	sms   notify.SmsSender
	// smsTemplateCode 验证码短信模板
	smsTemplateCode string
}

// NewAccountService 创建账号 Service 实例
func NewAccountService(repos *repository.Repositories, cache myredis.CacheService,
	sms notify.SmsSender, smsTemplateCode string) service.AccountService {
	return &accountService{repos: repos, cache: cache, sms: sms, smsTemplateCode: smsTemplateCode}
}

// MemberLogin 成员手机号 + 密码登录
func (s *accountService) MemberLogin(req request.MemberLoginRequest) (*respond.LoginRespond, error) {
	member, err := s.repos.Member.FindByTelephone(req.Telephone)
	if err != nil {
		if errorx.IsNotFound(err) {
			return nil, errorx.New(errorx.CodeRecordNotExist, "账号不存在")
		}
		return nil, err
	}
	if member.Status != account_status_enum.NORMAL {
		return nil, errorx.New(errorx.CodeForbidden, "账号已停用")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(member.Password), []byte(req.Password)); err != nil {
		return nil, errorx.New(errorx.CodeInvalidPassword, "密码错误")
	}
	return s.issueTokens(member.Uuid, member.Name, role_enum.MEMBER)
}

// AdminLogin 管理员账号 + 密码登录
func (s *accountService) AdminLogin(req request.AdminLoginRequest) (*respond.LoginRespond, error) {
	admin, err := s.repos.Admin.FindByAccount(req.Account)
	if err != nil {
		if errorx.IsNotFound(err) {
			return nil, errorx.New(errorx.CodeRecordNotExist, "账号不存在")
		}
		return nil, err
	}
	if admin.Status != account_status_enum.NORMAL {
		return nil, errorx.New(errorx.CodeForbidden, "账号已停用")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte(req.Password)); err != nil {
		return nil, errorx.New(errorx.CodeInvalidPassword, "密码错误")
	}
	return s.issueTokens(admin.Uuid, admin.Name, role_enum.ADMIN)
}

// issueTokens 签发双令牌并把 refresh tokenID 写入缓存（单点互踢）
func (s *accountService) issueTokens(userId, name, role string) (*respond.LoginRespond, error) {
	accessToken, err := myjwt.GenerateAccessToken(userId, role)
	if err != nil {
		return nil, errorx.Wrap(err, errorx.CodeServerBusy, "令牌签发失败")
	}
	refreshToken, tokenID, err := myjwt.GenerateRefreshToken(userId, role)
	if err != nil {
		return nil, errorx.Wrap(err, errorx.CodeServerBusy, "令牌签发失败")
	}
	if s.cache != nil {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		if err := s.cache.Set(ctx, refreshTokenKeyPrefix+userId, tokenID, refreshTokenTTL); err != nil {
			// 缓存不可用时放行登录，刷新接口会因校验不过要求重新登录
			zap.L().Warn("refresh token 缓存写入失败", zap.String("userId", userId), zap.Error(err))
		}
	}
	return &respond.LoginRespond{
		Uuid:         userId,
		Name:         name,
		Role:         role,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// RefreshToken 用 refresh token 换取新的 access token
// tokenID 必须与缓存中该用户的最新值一致，旧设备的 refresh token 自动失效
func (s *accountService) RefreshToken(req request.RefreshTokenRequest) (*respond.RefreshTokenRespond, error) {
	claims, err := myjwt.ParseToken(req.RefreshToken)
	if err != nil {
		return nil, errorx.New(errorx.CodeUnauthorized, "refresh token 无效或已过期")
	}
	if claims.Subject != "refresh_token" || claims.TokenID == "" {
		return nil, errorx.New(errorx.CodeUnauthorized, "refresh token 无效")
	}
	if s.cache != nil {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		stored, err := s.cache.GetOrError(ctx, refreshTokenKeyPrefix+claims.UserID)
		if err != nil || stored != claims.TokenID {
			return nil, errorx.New(errorx.CodeUnauthorized, "refresh token 已失效，请重新登录")
		}
	}
	accessToken, err := myjwt.GenerateAccessToken(claims.UserID, claims.Role)
	if err != nil {
		return nil, errorx.Wrap(err, errorx.CodeServerBusy, "令牌签发失败")
	}
	return &respond.RefreshTokenRespond{AccessToken: accessToken}, nil
}

// Logout 注销 refresh token
func (s *accountService) Logout(userId string) error {
	if s.cache == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := s.cache.Delete(ctx, refreshTokenKeyPrefix+userId); err != nil {
		return errorx.Wrap(err, errorx.CodeCacheError, "注销失败")
	}
	return nil
}

// SendVisitorSmsCode 给访客手机号下发查询验证码
// 同一手机号一分钟内只允许发送一次
func (s *accountService) SendVisitorSmsCode(telephone string) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	if v, _ := s.cache.Get(ctx, smsThrottleKeyPrefix+telephone); v != "" {
		return errorx.New(errorx.CodeTooManyRequest, "验证码发送过于频繁，请稍后再试")
	}

	code := strconv.Itoa(random.GetRandomInt(6))
	if _, err := s.sms.Send(telephone, s.smsTemplateCode, fmt.Sprintf(`{"code":"%s"}`, code)); err != nil {
		return errorx.Wrap(err, errorx.CodeServerBusy, "验证码发送失败")
	}

	if err := s.cache.Set(ctx, smsCodeKeyPrefix+telephone, code, smsCodeTTL); err != nil {
		return errorx.Wrap(err, errorx.CodeCacheError, "验证码保存失败")
	}
	if err := s.cache.Set(ctx, smsThrottleKeyPrefix+telephone, "1", smsThrottleTTL); err != nil {
		zap.L().Warn("验证码限流标记写入失败", zap.String("telephone", telephone), zap.Error(err))
	}
	return nil
}

// VerifyVisitorSmsCode 校验访客查询验证码，校验通过即作废
func (s *accountService) VerifyVisitorSmsCode(telephone, code string) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	stored, err := s.cache.GetOrError(ctx, smsCodeKeyPrefix+telephone)
	if err != nil || stored == "" {
		return errorx.New(errorx.CodeInvalidParam, "验证码不存在或已过期")
	}
	if stored != code {
		return errorx.New(errorx.CodeInvalidParam, "验证码错误")
	}
	if err := s.cache.Delete(ctx, smsCodeKeyPrefix+telephone); err != nil {
		zap.L().Warn("验证码作废失败", zap.String("telephone", telephone), zap.Error(err))
	}
	return nil
}
