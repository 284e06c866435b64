package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/puzzlecollector/LinkPepper/internal/dto"
	"github.com/puzzlecollector/LinkPepper/internal/model"
	"github.com/puzzlecollector/LinkPepper/internal/repository"
	"github.com/puzzlecollector/LinkPepper/pkg/logger"
)

// CampaignService 活动与公告的公开读服务
type CampaignService struct {
	campaigns   repository.CampaignRepository
	submissions repository.SubmissionRepository
	events      repository.EventRepository
}

// NewCampaignService 创建活动服务
func NewCampaignService(
	campaigns repository.CampaignRepository,
	submissions repository.SubmissionRepository,
	events repository.EventRepository,
) *CampaignService {
	return &CampaignService{
		campaigns:   campaigns,
		submissions: submissions,
		events:      events,
	}
}

// ListCampaigns 已发布活动列表, 附带参与统计
func (s *CampaignService) ListCampaigns(ctx context.Context, p *repository.Pagination) ([]*dto.CampaignCard, error) {
	campaigns, err := s.campaigns.ListPublished(ctx, p)
	if err != nil {
		logger.WithContext(ctx).Error("list campaigns failed", zap.Error(err))
		return nil, dto.ErrInternalError
	}

	cards := make([]*dto.CampaignCard, 0, len(campaigns))
	for _, c := range campaigns {
		card, err := s.buildCard(ctx, c)
		if err != nil {
			return nil, dto.ErrInternalError
		}
		cards = append(cards, card)
	}
	return cards, nil
}

// GetCampaign 按 slug 获取活动详情
// 未发布的活动对外表现为不存在
func (s *CampaignService) GetCampaign(ctx context.Context, slug string) (*dto.CampaignDetail, error) {
	campaign, err := s.campaigns.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, repository.ErrCampaignNotFound) {
			return nil, dto.ErrCampaignNotFound
		}
		return nil, dto.ErrInternalError
	}
	if !campaign.IsPublished {
		return nil, dto.ErrCampaignNotFound
	}

	card, err := s.buildCard(ctx, campaign)
	if err != nil {
		return nil, dto.ErrInternalError
	}

	return &dto.CampaignDetail{
		CampaignCard:     *card,
		LongDescription:  campaign.LongDescription,
		ClientSiteDomain: campaign.ClientSiteDomain,
		Rules:            campaign.Rules,
		CodeInstructions: campaign.CodeInstructions,
		SEOKeywords:      campaign.SEOKeywords,

		AirdropEnabled:       campaign.AirdropEnabled,
		AirdropFirstN:        campaign.AirdropFirstN,
		AirdropAmountPerUser: campaign.AirdropAmountPerUser.String(),
		AirdropTokenSymbol:   campaign.AirdropTokenSymbol,
		AirdropNetwork:       campaign.AirdropNetwork,
		AirdropNote:          campaign.AirdropNote,
	}, nil
}

// Leaderboard 全站证明分排行
func (s *CampaignService) Leaderboard(ctx context.Context, limit int) ([]*repository.LeaderboardEntry, error) {
	entries, err := s.submissions.Leaderboard(ctx, 0, limit)
	if err != nil {
		logger.WithContext(ctx).Error("query leaderboard failed", zap.Error(err))
		return nil, dto.ErrInternalError
	}
	return entries, nil
}

// CampaignLeaderboard 单活动证明分排行
func (s *CampaignService) CampaignLeaderboard(ctx context.Context, slug string, limit int) ([]*repository.LeaderboardEntry, error) {
	campaign, err := s.campaigns.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, repository.ErrCampaignNotFound) {
			return nil, dto.ErrCampaignNotFound
		}
		return nil, dto.ErrInternalError
	}
	if !campaign.IsPublished {
		return nil, dto.ErrCampaignNotFound
	}

	entries, err := s.submissions.Leaderboard(ctx, campaign.ID, limit)
	if err != nil {
		logger.WithContext(ctx).Error("query campaign leaderboard failed",
			zap.String("slug", slug), zap.Error(err))
		return nil, dto.ErrInternalError
	}
	return entries, nil
}

// ListEvents 按语言列出已发布公告
func (s *CampaignService) ListEvents(ctx context.Context, lang string, p *repository.Pagination) ([]*dto.EventCard, error) {
	if !model.IsValidEventLang(lang) {
		lang = string(model.EventLangEN)
	}

	events, err := s.events.ListPublished(ctx, model.EventLang(lang), p)
	if err != nil {
		logger.WithContext(ctx).Error("list events failed", zap.Error(err))
		return nil, dto.ErrInternalError
	}

	cards := make([]*dto.EventCard, 0, len(events))
	for _, e := range events {
		cards = append(cards, eventCard(e))
	}
	return cards, nil
}

// GetEvent 按 slug 获取公告详情
func (s *CampaignService) GetEvent(ctx context.Context, slug string) (*dto.EventDetail, error) {
	event, err := s.events.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return nil, dto.ErrEventNotFound
		}
		return nil, dto.ErrInternalError
	}
	if !event.IsPublished {
		return nil, dto.ErrEventNotFound
	}

	return &dto.EventDetail{
		EventCard: *eventCard(event),
		Body:      event.Body,
	}, nil
}

// buildCard 组装活动卡片与统计
func (s *CampaignService) buildCard(ctx context.Context, c *model.Campaign) (*dto.CampaignCard, error) {
	participants, err := s.campaigns.CountParticipants(ctx, c.ID)
	if err != nil {
		logger.WithContext(ctx).Error("count participants failed",
			zap.Int64("campaign_id", c.ID), zap.Error(err))
		return nil, err
	}

	paidWallets, err := s.campaigns.CountPaidWallets(ctx, c.ID)
	if err != nil {
		logger.WithContext(ctx).Error("count paid wallets failed",
			zap.Int64("campaign_id", c.ID), zap.Error(err))
		return nil, err
	}

	return &dto.CampaignCard{
		ID:             c.ID,
		Slug:           c.Slug,
		Title:          c.Title,
		Summary:        c.Summary,
		TaskType:       string(c.TaskType.Normalize()),
		ImageURL:       c.ImageURL,
		FaviconURL:     c.FaviconURL,
		PoolUSDT:       c.PoolUSDT.String(),
		PayoutUSDT:     c.PayoutUSDT.String(),
		Currency:       string(c.Currency),
		Start:          c.Start.Format("2006-01-02"),
		End:            c.End.Format("2006-01-02"),
		IsOpen:         c.IsOpenNow(time.Now()),
		Participants:   participants,
		ClaimedPercent: c.ClaimedPercent(paidWallets),
	}, nil
}

func eventCard(e *model.Event) *dto.EventCard {
	return &dto.EventCard{
		ID:       e.ID,
		Title:    e.Title,
		Slug:     e.Slug,
		Summary:  e.Summary,
		ThumbSrc: e.ThumbSrc,
		Lang:     string(e.Lang),
		PostedAt: e.PostedAt,
	}
}
