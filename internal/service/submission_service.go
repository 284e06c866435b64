package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/puzzlecollector/LinkPepper/internal/config"
	"github.com/puzzlecollector/LinkPepper/internal/dto"
	"github.com/puzzlecollector/LinkPepper/internal/model"
	"github.com/puzzlecollector/LinkPepper/internal/repository"
	"github.com/puzzlecollector/LinkPepper/pkg/ethsign"
	"github.com/puzzlecollector/LinkPepper/pkg/logger"
)

// SubmissionService 任务提交与活动申请服务
type SubmissionService struct {
	campaigns    repository.CampaignRepository
	submissions  repository.SubmissionRepository
	applications repository.ApplicationRepository
	cfg          *config.RewardsConfig
}

// NewSubmissionService 创建提交服务
func NewSubmissionService(
	campaigns repository.CampaignRepository,
	submissions repository.SubmissionRepository,
	applications repository.ApplicationRepository,
	cfg *config.RewardsConfig,
) *SubmissionService {
	return &SubmissionService{
		campaigns:    campaigns,
		submissions:  submissions,
		applications: applications,
		cfg:          cfg,
	}
}

// SubmitLink 提交 LINK 任务
// 同一钱包对同一活动重复提交静默忽略, 不暴露已有提交的存在
func (s *SubmissionService) SubmitLink(ctx context.Context, user *model.WalletUser, slug string, req *dto.LinkSubmitRequest) error {
	campaign, wallet, err := s.gateSubmission(ctx, slug, model.TaskTypeLink, req.WalletAddress, req.Network)
	if err != nil {
		return err
	}
	if req.PostURL == "" {
		return dto.ErrInvalidParams.WithMessage("post_url is required")
	}

	sub := &model.Submission{
		CampaignID:    campaign.ID,
		UserID:        &user.ID,
		WalletAddress: wallet,
		Network:       model.Network(req.Network),
		PostURL:       req.PostURL,
		Comment:       req.Comment,
		Status:        model.SubmissionStatusPending,
	}
	return s.create(ctx, sub)
}

// SubmitVisit 提交 VISIT 任务
// 输入的验证码原样入库, 由审核人员人工比对
func (s *SubmissionService) SubmitVisit(ctx context.Context, user *model.WalletUser, slug string, req *dto.VisitSubmitRequest) error {
	campaign, wallet, err := s.gateSubmission(ctx, slug, model.TaskTypeVisit, req.WalletAddress, req.Network)
	if err != nil {
		return err
	}
	if req.CodeEntered == "" {
		return dto.ErrInvalidParams.WithMessage("code_entered is required")
	}

	sub := &model.Submission{
		CampaignID:    campaign.ID,
		UserID:        &user.ID,
		WalletAddress: wallet,
		Network:       model.Network(req.Network),
		VisitedURL:    req.VisitedURL,
		CodeEntered:   req.CodeEntered,
		Status:        model.SubmissionStatusPending,
	}
	return s.create(ctx, sub)
}

// MySubmissions 当前用户钱包的全部提交
func (s *SubmissionService) MySubmissions(ctx context.Context, user *model.WalletUser, p *repository.Pagination) ([]*model.Submission, error) {
	subs, err := s.submissions.ListByWallet(ctx, user.Address, p)
	if err != nil {
		logger.WithContext(ctx).Error("list my submissions failed",
			zap.Int64("user_id", user.ID), zap.Error(err))
		return nil, dto.ErrInternalError
	}
	return subs, nil
}

// Apply 客户活动申请 (无需登录)
func (s *SubmissionService) Apply(ctx context.Context, req *dto.ApplyRequest) (string, error) {
	app := &model.CampaignApplication{
		ID:                 uuid.NewString(),
		Email:              req.Email,
		Phone:              req.Phone,
		Country:            req.Country,
		CampaignTitle:      req.CampaignTitle,
		WebsiteURL:         req.WebsiteURL,
		WebsiteDescription: req.WebsiteDescription,
		WantsVisit:         req.WantsVisit,
		WantsLink:          req.WantsLink,
		VisitCode:          req.VisitCode,
	}

	if req.Currency != "" {
		if !model.IsValidNetwork(req.Currency, s.cfg.SupportedNetworks) {
			return "", dto.ErrInvalidParams.WithMessage("unsupported currency")
		}
		app.Currency = model.Network(req.Currency)
	}

	if req.RewardPoolUSDT != "" {
		pool, err := decimal.NewFromString(req.RewardPoolUSDT)
		if err != nil || pool.IsNegative() {
			return "", dto.ErrInvalidParams.WithMessage("invalid reward_pool_usdt")
		}
		app.RewardPoolUSDT = pool
	}
	if req.PayoutPerTaskUSDT != "" {
		payout, err := decimal.NewFromString(req.PayoutPerTaskUSDT)
		if err != nil || payout.IsNegative() {
			return "", dto.ErrInvalidParams.WithMessage("invalid payout_per_task_usdt")
		}
		app.PayoutPerTaskUSDT = payout
	}

	if req.StartDate != "" {
		if _, err := time.Parse("2006-01-02", req.StartDate); err != nil {
			return "", dto.ErrInvalidParams.WithMessage("invalid start_date")
		}
		app.StartDate = &req.StartDate
	}
	if req.EndDate != "" {
		if _, err := time.Parse("2006-01-02", req.EndDate); err != nil {
			return "", dto.ErrInvalidParams.WithMessage("invalid end_date")
		}
		app.EndDate = &req.EndDate
	}

	if err := s.applications.Create(ctx, app); err != nil {
		logger.WithContext(ctx).Error("create application failed", zap.Error(err))
		return "", dto.ErrInternalError
	}

	logger.WithContext(ctx).Info("campaign application received",
		zap.String("application_id", app.ID))
	return app.ID, nil
}

// gateSubmission 提交前的公共校验
// 失败判定顺序固定: 活动不存在(含草稿) -> 任务类型不符 -> 活动未开放 -> 钱包信息缺失
func (s *SubmissionService) gateSubmission(ctx context.Context, slug string, taskType model.TaskType, wallet, network string) (*model.Campaign, string, error) {
	campaign, err := s.campaigns.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, repository.ErrCampaignNotFound) {
			return nil, "", dto.ErrCampaignNotFound
		}
		return nil, "", dto.ErrInternalError
	}
	// 草稿对外不存在, 与前台详情接口保持一致
	if !campaign.IsPublished {
		return nil, "", dto.ErrCampaignNotFound
	}

	taskOK := campaign.HasLink()
	if taskType == model.TaskTypeVisit {
		taskOK = campaign.HasVisit()
	}
	if !taskOK {
		return nil, "", dto.ErrWrongTaskType
	}

	if !campaign.IsOpenNow(time.Now()) {
		return nil, "", dto.ErrCampaignClosed
	}

	if wallet == "" || network == "" {
		return nil, "", dto.ErrMissingWalletInfo
	}
	if !model.IsValidNetwork(network, s.cfg.SupportedNetworks) {
		return nil, "", dto.ErrMissingWalletInfo
	}

	// ETH 系地址做格式校验并规范化, 其他网络原样接受
	normalized := wallet
	if network == string(model.NetworkETH) {
		normalized, err = ethsign.NormalizeAddress(wallet)
		if err != nil {
			return nil, "", dto.ErrMissingWalletInfo
		}
	}

	return campaign, normalized, nil
}

// create 入库, 重复提交静默成功
func (s *SubmissionService) create(ctx context.Context, sub *model.Submission) error {
	if err := s.submissions.Create(ctx, sub); err != nil {
		if errors.Is(err, repository.ErrDuplicateSubmission) {
			logger.WithContext(ctx).Info("duplicate submission ignored",
				zap.Int64("campaign_id", sub.CampaignID),
				zap.String("wallet", sub.WalletAddress))
			return nil
		}
		logger.WithContext(ctx).Error("create submission failed",
			zap.Int64("campaign_id", sub.CampaignID), zap.Error(err))
		return dto.ErrInternalError
	}
	return nil
}
