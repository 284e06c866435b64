package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/puzzlecollector/LinkPepper/internal/dto"
	"github.com/puzzlecollector/LinkPepper/internal/metrics"
	"github.com/puzzlecollector/LinkPepper/internal/middleware"
	"github.com/puzzlecollector/LinkPepper/internal/service"
)

// RewardsHandler 活动与任务提交处理器
type RewardsHandler struct {
	campaignService   *service.CampaignService
	submissionService *service.SubmissionService
}

// NewRewardsHandler 创建活动处理器
func NewRewardsHandler(campaignService *service.CampaignService, submissionService *service.SubmissionService) *RewardsHandler {
	return &RewardsHandler{
		campaignService:   campaignService,
		submissionService: submissionService,
	}
}

// ListCampaigns 已发布活动列表
// GET /api/rewards/campaigns
func (h *RewardsHandler) ListCampaigns(c *gin.Context) {
	p := bindPagination(c)
	cards, err := h.campaignService.ListCampaigns(c.Request.Context(), p)
	if err != nil {
		Fail(c, err)
		return
	}
	SuccessPaged(c, cards, p)
}

// GetCampaign 活动详情
// GET /api/rewards/campaigns/:slug
func (h *RewardsHandler) GetCampaign(c *gin.Context) {
	detail, err := h.campaignService.GetCampaign(c.Request.Context(), c.Param("slug"))
	if err != nil {
		Fail(c, err)
		return
	}
	Success(c, detail)
}

// Leaderboard 全站排行榜
// GET /api/rewards/leaderboard
func (h *RewardsHandler) Leaderboard(c *gin.Context) {
	entries, err := h.campaignService.Leaderboard(c.Request.Context(), intQuery(c, "limit", 50))
	if err != nil {
		Fail(c, err)
		return
	}
	Success(c, entries)
}

// CampaignLeaderboard 单活动排行榜
// GET /api/rewards/campaigns/:slug/leaderboard
func (h *RewardsHandler) CampaignLeaderboard(c *gin.Context) {
	entries, err := h.campaignService.CampaignLeaderboard(
		c.Request.Context(), c.Param("slug"), intQuery(c, "limit", 50))
	if err != nil {
		Fail(c, err)
		return
	}
	Success(c, entries)
}

// SubmitLink LINK 任务提交
// POST /rewards/submit/link/:slug
func (h *RewardsHandler) SubmitLink(c *gin.Context) {
	var req dto.LinkSubmitRequest
	if err := c.ShouldBind(&req); err != nil {
		BadRequest(c, err)
		return
	}

	user := middleware.GetWalletUser(c)
	if err := h.submissionService.SubmitLink(c.Request.Context(), user, c.Param("slug"), &req); err != nil {
		metrics.SubmissionsTotal.WithLabelValues("LINK", "rejected").Inc()
		Fail(c, err)
		return
	}

	metrics.SubmissionsTotal.WithLabelValues("LINK", "accepted").Inc()
	Success(c, nil)
}

// SubmitVisit VISIT 任务提交
// POST /rewards/submit/visit/:slug
func (h *RewardsHandler) SubmitVisit(c *gin.Context) {
	var req dto.VisitSubmitRequest
	if err := c.ShouldBind(&req); err != nil {
		BadRequest(c, err)
		return
	}

	user := middleware.GetWalletUser(c)
	if err := h.submissionService.SubmitVisit(c.Request.Context(), user, c.Param("slug"), &req); err != nil {
		metrics.SubmissionsTotal.WithLabelValues("VISIT", "rejected").Inc()
		Fail(c, err)
		return
	}

	metrics.SubmissionsTotal.WithLabelValues("VISIT", "accepted").Inc()
	Success(c, nil)
}

// MySubmissions 当前钱包的提交记录
// GET /api/rewards/submissions
func (h *RewardsHandler) MySubmissions(c *gin.Context) {
	p := bindPagination(c)
	user := middleware.GetWalletUser(c)

	subs, err := h.submissionService.MySubmissions(c.Request.Context(), user, p)
	if err != nil {
		Fail(c, err)
		return
	}
	SuccessPaged(c, subs, p)
}

// Apply 客户活动申请
// POST /rewards/apply
func (h *RewardsHandler) Apply(c *gin.Context) {
	var req dto.ApplyRequest
	if err := c.ShouldBind(&req); err != nil {
		BadRequest(c, err)
		return
	}

	id, err := h.submissionService.Apply(c.Request.Context(), &req)
	if err != nil {
		Fail(c, err)
		return
	}

	metrics.ApplicationsTotal.Inc()
	Success(c, gin.H{"application_id": id})
}

// ListEvents 公告列表
// GET /api/events?lang=
func (h *RewardsHandler) ListEvents(c *gin.Context) {
	p := bindPagination(c)
	cards, err := h.campaignService.ListEvents(c.Request.Context(), c.Query("lang"), p)
	if err != nil {
		Fail(c, err)
		return
	}
	SuccessPaged(c, cards, p)
}

// GetEvent 公告详情
// GET /api/events/:slug
func (h *RewardsHandler) GetEvent(c *gin.Context) {
	detail, err := h.campaignService.GetEvent(c.Request.Context(), c.Param("slug"))
	if err != nil {
		Fail(c, err)
		return
	}
	Success(c, detail)
}
