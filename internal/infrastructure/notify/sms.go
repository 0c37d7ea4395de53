// Package notify 提供通知投递能力（短信/邮件）与生命周期通知模板
// 所有发送操作都以结果对象返回，从不向调用方抛出错误
package notify

import (
	"fmt"
	"os"
	"strings"

	openapi "github.com/alibabacloud-go/darabonba-openapi/v2/client"
	dysmsapi20170525 "github.com/alibabacloud-go/dysmsapi-20170525/v4/client"
	util "github.com/alibabacloud-go/tea-utils/v2/service"
	"github.com/alibabacloud-go/tea/tea"
	"go.uber.org/zap"

	"yunke_visitor_server/internal/config"
)

// SmsSender 短信发送接口
// 抽象短信发送操作，支持多种实现（阿里云、本地 mock 等）
type SmsSender interface {
	// Send 按模板发送短信，返回服务商消息 ID
	// templateParam 为模板变量的 JSON 字符串，如 {"code":"123456"}
	Send(telephone, templateCode, templateParam string) (messageId string, err error)
}

// aliyunSmsSender 阿里云短信实现
type aliyunSmsSender struct {
	client   *dysmsapi20170525.Client
	signName string
}

// mockSmsSender 本地 Mock 实现，打印到标准输出
// 未配置真实 AK 时默认启用，便于本机跑通提交/通知链路
type mockSmsSender struct{}

func (s *mockSmsSender) Send(telephone, templateCode, templateParam string) (string, error) {
	fmt.Printf("【MockSMS】手机号: %s, 模板: %s, 参数: %s\n", telephone, templateCode, templateParam)
	return "mock-" + telephone, nil
}

// shouldUseMock 判断是否启用 Mock 短信
func shouldUseMock(cfg config.SmsConfig) bool {
	mode := strings.ToLower(strings.TrimSpace(os.Getenv("YUNKE_SMS_MODE")))
	if mode == "mock" || mode == "local" || mode == "test" {
		return true
	}
	// configs/config.toml 默认是占位字符串；没配真实 AK 时走 mock
	ak := strings.ToLower(strings.TrimSpace(cfg.AccessKeyID))
	ask := strings.ToLower(strings.TrimSpace(cfg.AccessKeySecret))
	if ak == "" || ask == "" {
		return true
	}
	if strings.Contains(ak, "your accesskey") || strings.Contains(ask, "your accesskey") {
		return true
	}
	return false
}

// NewSmsSender 初始化短信发送器
// 根据配置返回阿里云实现或本地 Mock 实现
func NewSmsSender(cfg config.SmsConfig) (SmsSender, error) {
	if shouldUseMock(cfg) {
		zap.L().Warn("SMS 使用本地 Mock 模式（仅打印，不调用第三方短信）")
		return &mockSmsSender{}, nil
	}

	conf := &openapi.Config{
		AccessKeyId:     tea.String(cfg.AccessKeyID),
		AccessKeySecret: tea.String(cfg.AccessKeySecret),
	}
	conf.Endpoint = tea.String("dysmsapi.aliyuncs.com")
	client, err := dysmsapi20170525.NewClient(conf)
	if err != nil {
		zap.L().Error("Aliyun SMS Client Init Failed", zap.Error(err))
		return nil, err
	}

	signName := cfg.SignName
	if signName == "" {
		signName = "阿里云短信测试"
	}
	return &aliyunSmsSender{client: client, signName: signName}, nil
}

// Send 调用阿里云短信接口
func (s *aliyunSmsSender) Send(telephone, templateCode, templateParam string) (string, error) {
	sendSmsRequest := &dysmsapi20170525.SendSmsRequest{
		SignName:      tea.String(s.signName),
		TemplateCode:  tea.String(templateCode),
		PhoneNumbers:  tea.String(telephone),
		TemplateParam: tea.String(templateParam),
	}

	runtime := &util.RuntimeOptions{}
	rsp, err := s.client.SendSmsWithOptions(sendSmsRequest, runtime)
	if err != nil {
		zap.L().Error("调用阿里云短信接口发生系统级错误", zap.Error(err))
		return "", err
	}

	// 即使 err 为 nil，也需要看 rsp.Body.Code 是否为 "OK"
	if rsp.Body == nil || rsp.Body.Code == nil || *rsp.Body.Code != "OK" {
		zap.L().Error("短信发送业务失败", zap.String("response", *util.ToJSONString(rsp)))
		return "", fmt.Errorf("sms send failed: %s", tea.StringValue(rsp.Body.Message))
	}

	return tea.StringValue(rsp.Body.BizId), nil
}
