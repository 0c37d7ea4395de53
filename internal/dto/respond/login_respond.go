package respond

// LoginRespond 登录结果
type LoginRespond struct {
	Uuid         string `json:"uuid"`          // 登录主体 UUID
	Name         string `json:"name"`          // 姓名
	Role         string `json:"role"`          // member / admin
	AccessToken  string `json:"access_token"`  // 短期令牌
	RefreshToken string `json:"refresh_token"` // 长期令牌
}

// RefreshTokenRespond 刷新令牌结果
type RefreshTokenRespond struct {
	AccessToken string `json:"access_token"`
}
