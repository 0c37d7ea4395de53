package request

// MemberLoginRequest 成员密码登录
// POST /auth/member/login
type MemberLoginRequest struct {
	Telephone string `json:"telephone" binding:"required"` // 手机号
	Password  string `json:"password" binding:"required"`  // 密码
}

// AdminLoginRequest 管理员密码登录
// POST /auth/admin/login
type AdminLoginRequest struct {
	Account  string `json:"account" binding:"required"`  // 登录账号
	Password string `json:"password" binding:"required"` // 密码
}

// RefreshTokenRequest 刷新 Access Token
// POST /auth/refresh
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"` // Refresh Token
}
