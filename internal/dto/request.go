package dto

// ChallengeRequest 登录挑战请求
type ChallengeRequest struct {
	Address string `json:"address" binding:"required"`
}

// ChallengeResponse 登录挑战响应
type ChallengeResponse struct {
	Address string `json:"address"` // 规范化后的小写地址
	Nonce   string `json:"nonce"`   // 本次挑战的随机值
	Message string `json:"message"` // 待签名消息原文
}

// LoginResponse 登录成功响应
type LoginResponse struct {
	Token string   `json:"token"`
	User  UserInfo `json:"user"`
}

// VerifyRequest 钱包签名验证请求
type VerifyRequest struct {
	Address   string `json:"address" binding:"required"`
	Message   string `json:"message" binding:"required"`
	Signature string `json:"signature" binding:"required"`
}

// LinkSubmitRequest LINK 任务提交 (表单或 JSON)
type LinkSubmitRequest struct {
	WalletAddress string `form:"wallet_address" json:"wallet_address"`
	Network       string `form:"network" json:"network"`
	PostURL       string `form:"post_url" json:"post_url"`
	Comment       string `form:"comment" json:"comment"`
}

// VisitSubmitRequest VISIT 任务提交 (表单或 JSON)
type VisitSubmitRequest struct {
	WalletAddress string `form:"wallet_address" json:"wallet_address"`
	Network       string `form:"network" json:"network"`
	VisitedURL    string `form:"visited_url" json:"visited_url"`
	CodeEntered   string `form:"code_entered" json:"code_entered"`
}

// ApplyRequest 客户活动申请
type ApplyRequest struct {
	Email              string `form:"email" json:"email" binding:"required,email"`
	Phone              string `form:"phone" json:"phone" binding:"required"`
	Country            string `form:"country" json:"country"`
	CampaignTitle      string `form:"campaign_title" json:"campaign_title"`
	WebsiteURL         string `form:"website_url" json:"website_url"`
	WebsiteDescription string `form:"website_description" json:"website_description"`
	WantsVisit         bool   `form:"wants_visit" json:"wants_visit"`
	WantsLink          bool   `form:"wants_link" json:"wants_link"`
	VisitCode          string `form:"visit_code" json:"visit_code"`
	RewardPoolUSDT     string `form:"reward_pool_usdt" json:"reward_pool_usdt"`
	PayoutPerTaskUSDT  string `form:"payout_per_task_usdt" json:"payout_per_task_usdt"`
	Currency           string `form:"currency" json:"currency"`
	StartDate          string `form:"start_date" json:"start_date"`
	EndDate            string `form:"end_date" json:"end_date"`
}

// UserInfo 钱包用户信息
type UserInfo struct {
	ID          int64  `json:"id"`
	Address     string `json:"address"`
	DisplayName string `json:"display_name"`
}
