package notify

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"yunke_visitor_server/internal/config"
	"yunke_visitor_server/internal/model"
	"yunke_visitor_server/pkg/enum/visit/visit_status_enum"
)

type recordingEmail struct {
	sent []string
}

func (e *recordingEmail) Send(to, _, _ string) (string, error) {
	e.sent = append(e.sent, to)
	return "email-id", nil
}

type recordingSms struct {
	sent []string
}

func (s *recordingSms) Send(telephone, _, _ string) (string, error) {
	s.sent = append(s.sent, telephone)
	return "sms-id", nil
}

func newRecordingNotifier() (*Notifier, *recordingEmail, *recordingSms) {
	email := &recordingEmail{}
	sms := &recordingSms{}
	return NewNotifier(email, sms, config.SmsConfig{TemplateCode: "SMS_TEST"}), email, sms
}

// 访客通道策略：短信总是尝试，邮件只要档案里有邮箱就发，不看订阅开关
func TestNotifyVisitorIgnoresOptOut(t *testing.T) {
	n, email, sms := newRecordingNotifier()
	visitor := &model.Visitor{
		Name: "王访客", Telephone: "13900000001", Email: "wang@example.com",
		EmailOptIn: 0, SmsOptIn: 0,
	}
	member := &model.Member{Name: "李成员"}
	req := &model.VisitRequest{Uuid: "R001", Status: visit_status_enum.ACCEPTED}

	report := n.NotifyVisitorDecision(visitor, member, req)
	assert.True(t, report.Email.Attempted)
	assert.True(t, report.Email.Success)
	assert.True(t, report.Sms.Attempted)
	assert.True(t, report.Sms.Success)
	assert.Equal(t, []string{"wang@example.com"}, email.sent)
	assert.Equal(t, []string{"13900000001"}, sms.sent)
}

// 档案里没有邮箱时访客只收短信
func TestNotifyVisitorWithoutEmail(t *testing.T) {
	n, email, sms := newRecordingNotifier()
	visitor := &model.Visitor{Name: "王访客", Telephone: "13900000001"}
	req := &model.VisitRequest{Uuid: "R001"}

	report := n.NotifyVisitorCompleted(visitor, req)
	assert.False(t, report.Email.Attempted)
	assert.True(t, report.Sms.Attempted)
	assert.Empty(t, email.sent)
	assert.Equal(t, []string{"13900000001"}, sms.sent)
}

// 成员通道照常受订阅开关控制
func TestNotifyMemberHonorsOptOut(t *testing.T) {
	n, email, sms := newRecordingNotifier()
	member := &model.Member{
		Name: "李成员", Telephone: "13800000001", Email: "li@example.com",
		EmailOptIn: 0, SmsOptIn: 1,
	}
	visitor := &model.Visitor{Name: "王访客"}
	req := &model.VisitRequest{Uuid: "R001", Purpose: "meeting", DurationMinutes: 30}

	report := n.NotifyMemberNewRequest(member, visitor, req)
	assert.False(t, report.Email.Attempted)
	assert.True(t, report.Sms.Attempted)
	assert.Empty(t, email.sent)
	assert.Equal(t, []string{"13800000001"}, sms.sent)
}
