package respond

// ChannelResult 单个通知通道的投递结果
// 通知失败从不作为业务错误抛给调用方，只作为结果报告返回
type ChannelResult struct {
	Attempted bool   `json:"attempted"`            // 是否尝试了该通道
	Success   bool   `json:"success"`              // 是否投递成功
	MessageId string `json:"message_id,omitempty"` // 服务商返回的消息ID
	Error     string `json:"error,omitempty"`      // 失败原因
}

// NotificationReportRespond 一次通知动作的分通道报告
type NotificationReportRespond struct {
	Email ChannelResult `json:"email"` // 邮件通道
	Sms   ChannelResult `json:"sms"`   // 短信通道
}

// AnySuccess 任一通道投递成功即视为"已通知"
func (r *NotificationReportRespond) AnySuccess() bool {
	return r.Email.Success || r.Sms.Success
}
