package request

// SendSmsCodeRequest 发送手机验证码（访客状态页使用）
// POST /auth/visitor/smsCode
type SendSmsCodeRequest struct {
	Telephone string `json:"telephone" binding:"required,len=11"` // 手机号
}

// VisitorStatusRequest 访客查询自己的请求状态
// POST /requests/visitorStatus
// 验证码校验通过后返回该手机号名下的请求列表（公开受限视图）
type VisitorStatusRequest struct {
	Telephone string `json:"telephone" binding:"required,len=11"` // 手机号
	Code      string `json:"code" binding:"required,len=6"`       // 短信验证码
}
