package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/puzzlecollector/LinkPepper/internal/dto"
	"github.com/puzzlecollector/LinkPepper/internal/model"
	"github.com/puzzlecollector/LinkPepper/internal/repository"
	"github.com/puzzlecollector/LinkPepper/pkg/logger"
)

// AdminService 后台运营服务: 活动与公告管理, 申请处理
type AdminService struct {
	campaigns    repository.CampaignRepository
	submissions  repository.SubmissionRepository
	events       repository.EventRepository
	applications repository.ApplicationRepository
	audits       repository.AuditLogRepository
}

// NewAdminService 创建后台运营服务
func NewAdminService(
	campaigns repository.CampaignRepository,
	submissions repository.SubmissionRepository,
	events repository.EventRepository,
	applications repository.ApplicationRepository,
	audits repository.AuditLogRepository,
) *AdminService {
	return &AdminService{
		campaigns:    campaigns,
		submissions:  submissions,
		events:       events,
		applications: applications,
		audits:       audits,
	}
}

// CampaignUpsertRequest 活动创建/更新请求
type CampaignUpsertRequest struct {
	Title            string `json:"title" binding:"required"`
	Summary          string `json:"summary"`
	LongDescription  string `json:"long_description"`
	TaskType         string `json:"task_type" binding:"required"`
	ClientSiteDomain string `json:"client_site_domain"`
	Rules            string `json:"rules"`
	CodeInstructions string `json:"code_instructions"`
	VisitCode        string `json:"visit_code"`
	SEOKeywords      string `json:"seo_keywords"`
	ImageURL         string `json:"image_url"`
	FaviconURL       string `json:"favicon_url"`

	PoolUSDT   string `json:"pool_usdt" binding:"required"`
	PayoutUSDT string `json:"payout_usdt" binding:"required"`
	Currency   string `json:"currency"`

	Start string `json:"start" binding:"required"` // YYYY-MM-DD
	End   string `json:"end" binding:"required"`

	AirdropEnabled       bool   `json:"airdrop_enabled"`
	AirdropFirstN        int    `json:"airdrop_first_n"`
	AirdropAmountPerUser string `json:"airdrop_amount_per_user"`
	AirdropTokenSymbol   string `json:"airdrop_token_symbol"`
	AirdropNetwork       string `json:"airdrop_network"`
	AirdropNote          string `json:"airdrop_note"`

	IsPublished bool `json:"is_published"`
	IsPaused    bool `json:"is_paused"`
}

// CreateCampaign 创建活动, slug 由标题生成并去重
func (s *AdminService) CreateCampaign(ctx context.Context, staff *StaffClaims, req *CampaignUpsertRequest) (*model.Campaign, error) {
	campaign, err := s.campaignFromRequest(req)
	if err != nil {
		return nil, err
	}

	campaign.Slug, err = s.uniqueSlug(ctx, campaign.Title)
	if err != nil {
		return nil, dto.ErrInternalError
	}

	if err := s.campaigns.Create(ctx, campaign); err != nil {
		logger.WithContext(ctx).Error("create campaign failed", zap.Error(err))
		return nil, dto.ErrInternalError
	}

	s.recordAudit(ctx, staff, model.AuditActionCampaignCreate, "campaign", campaign.Slug, campaign.Title)
	return campaign, nil
}

// UpdateCampaign 更新活动, slug 不变
func (s *AdminService) UpdateCampaign(ctx context.Context, staff *StaffClaims, id int64, req *CampaignUpsertRequest) (*model.Campaign, error) {
	existing, err := s.campaigns.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrCampaignNotFound) {
			return nil, dto.ErrCampaignNotFound
		}
		return nil, dto.ErrInternalError
	}

	campaign, err := s.campaignFromRequest(req)
	if err != nil {
		return nil, err
	}
	campaign.ID = existing.ID
	campaign.Slug = existing.Slug
	campaign.SourceApplicationID = existing.SourceApplicationID

	if err := s.campaigns.Update(ctx, campaign); err != nil {
		logger.WithContext(ctx).Error("update campaign failed",
			zap.Int64("campaign_id", id), zap.Error(err))
		return nil, dto.ErrInternalError
	}

	s.recordAudit(ctx, staff, model.AuditActionCampaignUpdate, "campaign", campaign.Slug, campaign.Title)
	return campaign, nil
}

// DeleteCampaign 删除活动
// 已有提交的活动不允许删除, 只能下线
func (s *AdminService) DeleteCampaign(ctx context.Context, staff *StaffClaims, id int64) error {
	participants, err := s.campaigns.CountParticipants(ctx, id)
	if err != nil {
		return dto.ErrInternalError
	}
	if participants > 0 {
		return dto.ErrInvalidParams.WithMessage("campaign has submissions, unpublish instead")
	}

	if err := s.campaigns.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrCampaignNotFound) {
			return dto.ErrCampaignNotFound
		}
		return dto.ErrInternalError
	}

	s.recordAudit(ctx, staff, model.AuditActionCampaignDelete, "campaign", fmt.Sprintf("%d", id), "")
	return nil
}

// SetCampaignPublished 发布/下线活动
func (s *AdminService) SetCampaignPublished(ctx context.Context, staff *StaffClaims, id int64, published bool) error {
	if err := s.campaigns.SetPublished(ctx, id, published); err != nil {
		if errors.Is(err, repository.ErrCampaignNotFound) {
			return dto.ErrCampaignNotFound
		}
		return dto.ErrInternalError
	}
	s.recordAudit(ctx, staff, model.AuditActionCampaignUpdate, "campaign",
		fmt.Sprintf("%d", id), fmt.Sprintf("published=%t", published))
	return nil
}

// SetCampaignPaused 暂停/恢复活动
func (s *AdminService) SetCampaignPaused(ctx context.Context, staff *StaffClaims, id int64, paused bool) error {
	if err := s.campaigns.SetPaused(ctx, id, paused); err != nil {
		if errors.Is(err, repository.ErrCampaignNotFound) {
			return dto.ErrCampaignNotFound
		}
		return dto.ErrInternalError
	}
	s.recordAudit(ctx, staff, model.AuditActionCampaignUpdate, "campaign",
		fmt.Sprintf("%d", id), fmt.Sprintf("paused=%t", paused))
	return nil
}

// ListCampaigns 后台活动全量列表 (含未发布)
func (s *AdminService) ListCampaigns(ctx context.Context, p *repository.Pagination) ([]*model.Campaign, error) {
	campaigns, err := s.campaigns.ListAll(ctx, p)
	if err != nil {
		logger.WithContext(ctx).Error("list campaigns failed", zap.Error(err))
		return nil, dto.ErrInternalError
	}
	return campaigns, nil
}

// GetCampaign 后台活动详情 (含 visit_code)
func (s *AdminService) GetCampaign(ctx context.Context, id int64) (*model.Campaign, error) {
	campaign, err := s.campaigns.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrCampaignNotFound) {
			return nil, dto.ErrCampaignNotFound
		}
		return nil, dto.ErrInternalError
	}
	return campaign, nil
}

// ListApplications 活动申请列表
func (s *AdminService) ListApplications(ctx context.Context, onlyUnhandled bool, p *repository.Pagination) ([]*model.CampaignApplication, error) {
	apps, err := s.applications.List(ctx, onlyUnhandled, p)
	if err != nil {
		logger.WithContext(ctx).Error("list applications failed", zap.Error(err))
		return nil, dto.ErrInternalError
	}
	return apps, nil
}

// GetApplication 申请详情
func (s *AdminService) GetApplication(ctx context.Context, id string) (*model.CampaignApplication, error) {
	app, err := s.applications.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrApplicationNotFound) {
			return nil, dto.ErrApplicationNotFound
		}
		return nil, dto.ErrInternalError
	}
	return app, nil
}

// CreateCampaignFromApplication 从申请预填创建草稿活动并标记申请已处理
// 新活动保持未发布, 运营补全内容后再上线
func (s *AdminService) CreateCampaignFromApplication(ctx context.Context, staff *StaffClaims, appID string) (*model.Campaign, error) {
	app, err := s.GetApplication(ctx, appID)
	if err != nil {
		return nil, err
	}

	taskType := model.TaskTypeLink
	if app.WantsVisit {
		taskType = model.TaskTypeVisit
	}

	campaign := &model.Campaign{
		Title:            app.CampaignTitle,
		TaskType:         taskType,
		ClientSiteDomain: app.WebsiteURL,
		LongDescription:  app.WebsiteDescription,
		VisitCode:        app.VisitCode,
		SEOKeywords:      app.ExpectedReviewKeywords,
		PoolUSDT:         app.RewardPoolUSDT,
		PayoutUSDT:       app.PayoutPerTaskUSDT,
		Currency:         app.Currency,
		IsPublished:      false,

		SourceApplicationID: &app.ID,
	}
	if campaign.Title == "" {
		campaign.Title = "Untitled Campaign"
	}

	if app.StartDate != nil {
		if start, err := time.Parse("2006-01-02", *app.StartDate); err == nil {
			campaign.Start = start
		}
	}
	if app.EndDate != nil {
		if end, err := time.Parse("2006-01-02", *app.EndDate); err == nil {
			campaign.End = end
		}
	}
	if campaign.Start.IsZero() {
		campaign.Start = time.Now().UTC().Truncate(24 * time.Hour)
	}
	if campaign.End.IsZero() {
		campaign.End = campaign.Start.AddDate(0, 1, 0)
	}

	campaign.Slug, err = s.uniqueSlug(ctx, campaign.Title)
	if err != nil {
		return nil, dto.ErrInternalError
	}

	if err := s.campaigns.Create(ctx, campaign); err != nil {
		logger.WithContext(ctx).Error("create campaign from application failed",
			zap.String("application_id", appID), zap.Error(err))
		return nil, dto.ErrInternalError
	}

	if err := s.applications.MarkHandled(ctx, appID); err != nil {
		logger.WithContext(ctx).Warn("mark application handled failed",
			zap.String("application_id", appID), zap.Error(err))
	}

	s.recordAudit(ctx, staff, model.AuditActionAppHandled, "application", appID, campaign.Slug)
	return campaign, nil
}

// MarkApplicationHandled 标记申请已处理 (不建活动)
func (s *AdminService) MarkApplicationHandled(ctx context.Context, staff *StaffClaims, id string) error {
	if err := s.applications.MarkHandled(ctx, id); err != nil {
		if errors.Is(err, repository.ErrApplicationNotFound) {
			return dto.ErrApplicationNotFound
		}
		return dto.ErrInternalError
	}
	s.recordAudit(ctx, staff, model.AuditActionAppHandled, "application", id, "")
	return nil
}

// EventUpsertRequest 公告创建/更新请求
type EventUpsertRequest struct {
	Title       string `json:"title" binding:"required"`
	Summary     string `json:"summary"`
	Body        string `json:"body"`
	ThumbSrc    string `json:"thumb_src"`
	Lang        string `json:"lang"`
	IsPublished bool   `json:"is_published"`
	PostedAt    int64  `json:"posted_at"`
}

// CreateEvent 创建公告
func (s *AdminService) CreateEvent(ctx context.Context, staff *StaffClaims, req *EventUpsertRequest) (*model.Event, error) {
	lang := req.Lang
	if !model.IsValidEventLang(lang) {
		lang = string(model.EventLangEN)
	}

	event := &model.Event{
		Title:       req.Title,
		Slug:        slugify(req.Title),
		Summary:     req.Summary,
		Body:        req.Body,
		ThumbSrc:    req.ThumbSrc,
		Lang:        model.EventLang(lang),
		IsPublished: req.IsPublished,
		PostedAt:    req.PostedAt,
	}
	if event.PostedAt == 0 {
		event.PostedAt = time.Now().UnixMilli()
	}
	// slug 冲突时附加时间戳, 公告 slug 不要求可读性
	if _, err := s.events.GetBySlug(ctx, event.Slug); err == nil {
		event.Slug = fmt.Sprintf("%s-%d", event.Slug, time.Now().Unix())
	}

	if err := s.events.Create(ctx, event); err != nil {
		logger.WithContext(ctx).Error("create event failed", zap.Error(err))
		return nil, dto.ErrInternalError
	}
	return event, nil
}

// UpdateEvent 更新公告
func (s *AdminService) UpdateEvent(ctx context.Context, staff *StaffClaims, id int64, req *EventUpsertRequest) error {
	lang := req.Lang
	if !model.IsValidEventLang(lang) {
		lang = string(model.EventLangEN)
	}

	event := &model.Event{
		ID:          id,
		Title:       req.Title,
		Summary:     req.Summary,
		Body:        req.Body,
		ThumbSrc:    req.ThumbSrc,
		Lang:        model.EventLang(lang),
		IsPublished: req.IsPublished,
		PostedAt:    req.PostedAt,
	}
	if event.PostedAt == 0 {
		event.PostedAt = time.Now().UnixMilli()
	}

	if err := s.events.Update(ctx, event); err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return dto.ErrEventNotFound
		}
		return dto.ErrInternalError
	}
	return nil
}

// DeleteEvent 删除公告
func (s *AdminService) DeleteEvent(ctx context.Context, staff *StaffClaims, id int64) error {
	if err := s.events.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return dto.ErrEventNotFound
		}
		return dto.ErrInternalError
	}
	return nil
}

// ListEvents 后台公告全量列表
func (s *AdminService) ListEvents(ctx context.Context, p *repository.Pagination) ([]*model.Event, error) {
	events, err := s.events.ListAll(ctx, p)
	if err != nil {
		logger.WithContext(ctx).Error("list events failed", zap.Error(err))
		return nil, dto.ErrInternalError
	}
	return events, nil
}

// ListAuditLogs 审计日志列表
func (s *AdminService) ListAuditLogs(ctx context.Context, filter *repository.AuditLogFilter, p *repository.Pagination) ([]*model.AuditLog, error) {
	logs, err := s.audits.List(ctx, filter, p)
	if err != nil {
		logger.WithContext(ctx).Error("list audit logs failed", zap.Error(err))
		return nil, dto.ErrInternalError
	}
	return logs, nil
}

// DashboardStats 仪表盘统计
type DashboardStats struct {
	SubmissionsByStatus map[model.SubmissionStatus]int64 `json:"submissions_by_status"`
}

// Dashboard 仪表盘统计
func (s *AdminService) Dashboard(ctx context.Context) (*DashboardStats, error) {
	counts, err := s.submissions.CountByStatus(ctx)
	if err != nil {
		logger.WithContext(ctx).Error("dashboard stats failed", zap.Error(err))
		return nil, dto.ErrInternalError
	}
	return &DashboardStats{SubmissionsByStatus: counts}, nil
}

// campaignFromRequest 校验并组装活动模型
func (s *AdminService) campaignFromRequest(req *CampaignUpsertRequest) (*model.Campaign, error) {
	taskType := model.TaskType(strings.ToUpper(req.TaskType)).Normalize()
	if taskType != model.TaskTypeVisit && taskType != model.TaskTypeLink {
		return nil, dto.ErrInvalidParams.WithMessage("task_type must be VISIT or LINK")
	}

	pool, err := decimal.NewFromString(req.PoolUSDT)
	if err != nil || !pool.IsPositive() {
		return nil, dto.ErrInvalidParams.WithMessage("invalid pool_usdt")
	}
	payout, err := decimal.NewFromString(req.PayoutUSDT)
	if err != nil || !payout.IsPositive() {
		return nil, dto.ErrInvalidParams.WithMessage("invalid payout_usdt")
	}

	start, err := time.Parse("2006-01-02", req.Start)
	if err != nil {
		return nil, dto.ErrInvalidParams.WithMessage("invalid start date")
	}
	end, err := time.Parse("2006-01-02", req.End)
	if err != nil {
		return nil, dto.ErrInvalidParams.WithMessage("invalid end date")
	}
	if end.Before(start) {
		return nil, dto.ErrInvalidParams.WithMessage("end before start")
	}

	currency := model.NetworkETH
	if req.Currency != "" {
		currency = model.Network(strings.ToUpper(req.Currency))
	}

	airdropAmount := decimal.Zero
	if req.AirdropAmountPerUser != "" {
		airdropAmount, err = decimal.NewFromString(req.AirdropAmountPerUser)
		if err != nil || airdropAmount.IsNegative() {
			return nil, dto.ErrInvalidParams.WithMessage("invalid airdrop_amount_per_user")
		}
	}

	return &model.Campaign{
		Title:            req.Title,
		Summary:          req.Summary,
		LongDescription:  req.LongDescription,
		TaskType:         taskType,
		ClientSiteDomain: req.ClientSiteDomain,
		Rules:            req.Rules,
		CodeInstructions: req.CodeInstructions,
		VisitCode:        req.VisitCode,
		SEOKeywords:      req.SEOKeywords,
		ImageURL:         req.ImageURL,
		FaviconURL:       req.FaviconURL,

		PoolUSDT:   pool,
		PayoutUSDT: payout,
		Currency:   currency,

		Start: start,
		End:   end,

		AirdropEnabled:       req.AirdropEnabled,
		AirdropFirstN:        req.AirdropFirstN,
		AirdropAmountPerUser: airdropAmount,
		AirdropTokenSymbol:   req.AirdropTokenSymbol,
		AirdropNetwork:       req.AirdropNetwork,
		AirdropNote:          req.AirdropNote,

		IsPublished: req.IsPublished,
		IsPaused:    req.IsPaused,
	}, nil
}

// uniqueSlug 由标题生成 slug, 冲突时追加序号
func (s *AdminService) uniqueSlug(ctx context.Context, title string) (string, error) {
	base := slugify(title)
	slug := base
	for i := 2; ; i++ {
		taken, err := s.campaigns.SlugExists(ctx, slug)
		if err != nil {
			return "", err
		}
		if !taken {
			return slug, nil
		}
		slug = fmt.Sprintf("%s-%d", base, i)
	}
}

// recordAudit 记录后台操作审计
func (s *AdminService) recordAudit(ctx context.Context, staff *StaffClaims, action model.AuditAction, resourceType, resourceID, detail string) {
	log := &model.AuditLog{
		AdminID:      staff.AdminID,
		Username:     staff.Username,
		Action:       action,
		ResourceType: resourceType,
		ResourceID:   resourceID,
		Detail:       detail,
	}
	if err := s.audits.Create(ctx, log); err != nil {
		logger.WithContext(ctx).Warn("write audit log failed", zap.Error(err))
	}
}

// slugify 将标题转为 URL slug
func slugify(title string) string {
	var b strings.Builder
	prevDash := false
	for _, r := range strings.ToLower(strings.TrimSpace(title)) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			prevDash = false
		case !prevDash && b.Len() > 0:
			b.WriteByte('-')
			prevDash = true
		}
	}
	slug := strings.Trim(b.String(), "-")
	if slug == "" {
		slug = fmt.Sprintf("campaign-%d", time.Now().Unix())
	}
	if len(slug) > 200 {
		slug = slug[:200]
	}
	return slug
}
