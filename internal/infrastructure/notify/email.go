package notify

import (
	"fmt"
	"net/smtp"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"yunke_visitor_server/internal/config"
)

// EmailSender 邮件发送接口
type EmailSender interface {
	// Send 发送 HTML 邮件，返回本地生成的消息 ID
	Send(to, subject, html string) (messageId string, err error)
}

// smtpEmailSender 基于 SMTP 的邮件实现
type smtpEmailSender struct {
	host     string
	port     int
	username string
	password string
	from     string
}

// mockEmailSender 本地 Mock 实现
type mockEmailSender struct{}

func (s *mockEmailSender) Send(to, subject, html string) (string, error) {
	fmt.Printf("【MockEmail】收件人: %s, 主题: %s\n", to, subject)
	return "mock-" + uuid.NewString(), nil
}

// NewEmailSender 初始化邮件发送器
// SMTP 未配置时返回本地 Mock 实现
func NewEmailSender(cfg config.EmailConfig) EmailSender {
	if strings.TrimSpace(cfg.SmtpHost) == "" {
		zap.L().Warn("Email 使用本地 Mock 模式（SMTP 未配置）")
		return &mockEmailSender{}
	}
	return &smtpEmailSender{
		host:     cfg.SmtpHost,
		port:     cfg.SmtpPort,
		username: cfg.Username,
		password: cfg.Password,
		from:     cfg.From,
	}
}

func (s *smtpEmailSender) Send(to, subject, html string) (string, error) {
	messageId := uuid.NewString()

	var b strings.Builder
	b.WriteString("From: " + s.from + "\r\n")
	b.WriteString("To: " + to + "\r\n")
	b.WriteString("Subject: " + subject + "\r\n")
	b.WriteString("Message-ID: <" + messageId + ">\r\n")
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/html; charset=UTF-8\r\n")
	b.WriteString("\r\n")
	b.WriteString(html)

	addr := fmt.Sprintf("%s:%d", s.host, s.port)
	auth := smtp.PlainAuth("", s.username, s.password, s.host)
	if err := smtp.SendMail(addr, auth, s.from, []string{to}, []byte(b.String())); err != nil {
		zap.L().Error("SMTP 邮件发送失败", zap.String("to", to), zap.Error(err))
		return "", err
	}
	return messageId, nil
}
