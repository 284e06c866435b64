package dto

// CampaignCard 活动列表卡片
type CampaignCard struct {
	ID             int64  `json:"id"`
	Slug           string `json:"slug"`
	Title          string `json:"title"`
	Summary        string `json:"summary"`
	TaskType       string `json:"task_type"`
	ImageURL       string `json:"image_url"`
	FaviconURL     string `json:"favicon_url"`
	PoolUSDT       string `json:"pool_usdt"`
	PayoutUSDT     string `json:"payout_usdt"`
	Currency       string `json:"currency"`
	Start          string `json:"start"` // YYYY-MM-DD
	End            string `json:"end"`
	IsOpen         bool   `json:"is_open"`
	Participants   int64  `json:"participants"`
	ClaimedPercent int    `json:"claimed_percent"`
}

// CampaignDetail 活动详情
// 不含 visit_code, 验证码只在后台可见
type CampaignDetail struct {
	CampaignCard
	LongDescription  string `json:"long_description"`
	ClientSiteDomain string `json:"client_site_domain"`
	Rules            string `json:"rules"`
	CodeInstructions string `json:"code_instructions"`
	SEOKeywords      string `json:"seo_keywords"`

	AirdropEnabled       bool   `json:"airdrop_enabled"`
	AirdropFirstN        int    `json:"airdrop_first_n"`
	AirdropAmountPerUser string `json:"airdrop_amount_per_user"`
	AirdropTokenSymbol   string `json:"airdrop_token_symbol"`
	AirdropNetwork       string `json:"airdrop_network"`
	AirdropNote          string `json:"airdrop_note"`
}

// EventCard 公告列表条目
type EventCard struct {
	ID       int64  `json:"id"`
	Title    string `json:"title"`
	Slug     string `json:"slug"`
	Summary  string `json:"summary"`
	ThumbSrc string `json:"thumb_src"`
	Lang     string `json:"lang"`
	PostedAt int64  `json:"posted_at"`
}

// EventDetail 公告详情
type EventDetail struct {
	EventCard
	Body string `json:"body"`
}
