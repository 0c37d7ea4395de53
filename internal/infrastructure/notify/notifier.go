package notify

import (
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"yunke_visitor_server/internal/config"
	"yunke_visitor_server/internal/dto/respond"
	"yunke_visitor_server/internal/model"
	"yunke_visitor_server/pkg/enum/visit/visit_status_enum"
)

// Notifier 访客生命周期通知服务
// 每次通知同时尝试邮件和短信两个通道，分别返回各通道的投递结果
// 通知失败绝不影响主流程，调用方只拿到结果报告，不拿到错误
type Notifier struct {
	email        EmailSender
	sms          SmsSender
	templateCode string
}

// NewNotifier 组装通知服务
func NewNotifier(email EmailSender, sms SmsSender, cfg config.SmsConfig) *Notifier {
	return &Notifier{
		email:        email,
		sms:          sms,
		templateCode: cfg.TemplateCode,
	}
}

// sendToMember 按成员的订阅偏好投递邮件和短信
// emailOptIn/smsOptIn 为 0 时对应通道直接跳过（Attempted=false）
func (n *Notifier) sendToMember(member *model.Member, subject, html, smsParam string) respond.NotificationReportRespond {
	return n.deliver(member.Email, member.EmailOptIn == 1,
		member.Telephone, member.SmsOptIn == 1, subject, html, smsParam)
}

// sendToVisitor 访客通道策略与成员不同：
// 短信总是尝试投递，邮件只要档案里留了邮箱就投递，不看订阅开关
func (n *Notifier) sendToVisitor(visitor *model.Visitor, subject, html, smsParam string) respond.NotificationReportRespond {
	return n.deliver(visitor.Email, true, visitor.Telephone, true, subject, html, smsParam)
}

// deliver 向给定收件地址投递邮件和短信，通道开关由调用方决定
func (n *Notifier) deliver(email string, emailEnabled bool, telephone string, smsEnabled bool,
	subject, html, smsParam string) respond.NotificationReportRespond {

	var report respond.NotificationReportRespond

	if emailEnabled && email != "" {
		report.Email.Attempted = true
		messageId, err := n.email.Send(email, subject, html)
		if err != nil {
			report.Email.Error = err.Error()
		} else {
			report.Email.Success = true
			report.Email.MessageId = messageId
		}
	}

	if smsEnabled && telephone != "" {
		report.Sms.Attempted = true
		messageId, err := n.sms.Send(telephone, n.templateCode, smsParam)
		if err != nil {
			report.Sms.Error = err.Error()
		} else {
			report.Sms.Success = true
			report.Sms.MessageId = messageId
		}
	}

	if report.Email.Attempted && !report.Email.Success {
		zap.L().Warn("邮件通知投递失败", zap.String("to", email), zap.String("err", report.Email.Error))
	}
	if report.Sms.Attempted && !report.Sms.Success {
		zap.L().Warn("短信通知投递失败", zap.String("telephone", telephone), zap.String("err", report.Sms.Error))
	}
	return report
}

// smsParam 构造短信模板变量 JSON
func smsParam(content string) string {
	// 模板变量超长会被服务商拒绝，统一截断
	runes := []rune(content)
	if len(runes) > 20 {
		content = string(runes[:20])
	}
	data, _ := json.Marshal(map[string]string{"content": content})
	return string(data)
}

// NotifyMemberNewRequest 新访客请求到达时通知被访成员
func (n *Notifier) NotifyMemberNewRequest(member *model.Member, visitor *model.Visitor, req *model.VisitRequest) respond.NotificationReportRespond {
	subject := fmt.Sprintf("【访客通知】%s 请求拜访您", visitor.Name)
	html := fmt.Sprintf(
		"<p>%s 您好：</p><p>访客 <b>%s</b>（%s）提交了拜访请求。</p>"+
			"<p>来访事由：%s</p><p>预计时长：%d 分钟</p><p>请求编号：%s</p>"+
			"<p>请尽快登录系统处理。</p>",
		member.Name, visitor.Name, visitor.FromCompany, req.Purpose, req.DurationMinutes, req.Uuid)
	return n.sendToMember(member, subject, html, smsParam("新访客请求待处理"))
}

// NotifyVisitorDecision 成员响应后通知访客
// 根据请求当前状态区分接受/拒绝/改期三种文案
func (n *Notifier) NotifyVisitorDecision(visitor *model.Visitor, member *model.Member, req *model.VisitRequest) respond.NotificationReportRespond {
	var subject, body, short string
	switch req.Status {
	case visit_status_enum.ACCEPTED:
		subject = "【访客通知】您的拜访请求已被接受"
		body = fmt.Sprintf("您对 %s 的拜访请求已被接受，请按约定时间前往前台登记。", member.Name)
		short = "拜访请求已接受"
		if req.ResponseProposedTime != nil {
			body += fmt.Sprintf("建议到访时间：%s。", req.ResponseProposedTime.Format("2006-01-02 15:04"))
		}
	case visit_status_enum.DECLINED:
		subject = "【访客通知】您的拜访请求未被接受"
		body = fmt.Sprintf("很抱歉，您对 %s 的拜访请求未被接受。", member.Name)
		short = "拜访请求未通过"
	default:
		// reschedule 后仍是 pending
		subject = "【访客通知】对方建议改期"
		body = fmt.Sprintf("%s 建议调整拜访时间", member.Name)
		if req.ResponseProposedTime != nil {
			body += fmt.Sprintf("为 %s", req.ResponseProposedTime.Format("2006-01-02 15:04"))
		}
		body += "，请确认后重新安排。"
		short = "对方建议改期"
	}
	if req.ResponseMessage != "" {
		body += fmt.Sprintf("留言：%s", req.ResponseMessage)
	}
	html := fmt.Sprintf("<p>%s 您好：</p><p>%s</p><p>请求编号：%s</p>", visitor.Name, body, req.Uuid)
	return n.sendToVisitor(visitor, subject, html, smsParam(short))
}

// NotifyVisitorCompleted 访问结束后向访客发送致谢通知
func (n *Notifier) NotifyVisitorCompleted(visitor *model.Visitor, req *model.VisitRequest) respond.NotificationReportRespond {
	subject := "【访客通知】感谢您的来访"
	duration := ""
	if minutes, ok := req.TotalDurationMinutes(); ok {
		duration = fmt.Sprintf("<p>本次访问时长：%d 分钟</p>", minutes)
	}
	html := fmt.Sprintf("<p>%s 您好：</p><p>您的访问已结束，感谢光临。</p>%s<p>请求编号：%s</p>",
		visitor.Name, duration, req.Uuid)
	return n.sendToVisitor(visitor, subject, html, smsParam("感谢您的来访"))
}
