package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/puzzlecollector/LinkPepper/internal/metrics"
	"github.com/puzzlecollector/LinkPepper/internal/middleware"
	"github.com/puzzlecollector/LinkPepper/internal/model"
	"github.com/puzzlecollector/LinkPepper/internal/repository"
	"github.com/puzzlecollector/LinkPepper/internal/service"
)

// ReviewHandler 提交审核与打款处理器
type ReviewHandler struct {
	reviewService *service.ReviewService
}

// NewReviewHandler 创建审核处理器
func NewReviewHandler(reviewService *service.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviewService: reviewService}
}

// ListSubmissions 提交列表
// GET /admin/v1/submissions?campaign_id=&wallet=&status=
func (h *ReviewHandler) ListSubmissions(c *gin.Context) {
	p := bindPagination(c)
	filter := &repository.SubmissionFilter{
		CampaignID:    int64Query(c, "campaign_id", 0),
		WalletAddress: c.Query("wallet"),
		Status:        model.SubmissionStatus(c.Query("status")),
	}

	subs, err := h.reviewService.ListSubmissions(c.Request.Context(), filter, p)
	if err != nil {
		Fail(c, err)
		return
	}
	SuccessPaged(c, subs, p)
}

// GetSubmission 提交详情
// GET /admin/v1/submissions/:id
func (h *ReviewHandler) GetSubmission(c *gin.Context) {
	id, err := int64Param(c, "id")
	if err != nil {
		BadRequest(c, err)
		return
	}

	sub, err := h.reviewService.GetSubmission(c.Request.Context(), id)
	if err != nil {
		Fail(c, err)
		return
	}
	Success(c, sub)
}

// Approve 通过提交
// PUT /admin/v1/submissions/:id/approve
func (h *ReviewHandler) Approve(c *gin.Context) {
	id, err := int64Param(c, "id")
	if err != nil {
		BadRequest(c, err)
		return
	}

	var req service.ApproveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err)
		return
	}

	if err := h.reviewService.Approve(c.Request.Context(), middleware.GetStaffClaims(c), id, &req); err != nil {
		Fail(c, err)
		return
	}

	metrics.ReviewsTotal.WithLabelValues("approve").Inc()
	Success(c, nil)
}

// Reject 驳回提交
// PUT /admin/v1/submissions/:id/reject
func (h *ReviewHandler) Reject(c *gin.Context) {
	id, err := int64Param(c, "id")
	if err != nil {
		BadRequest(c, err)
		return
	}

	var req service.RejectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err)
		return
	}

	if err := h.reviewService.Reject(c.Request.Context(), middleware.GetStaffClaims(c), id, &req); err != nil {
		Fail(c, err)
		return
	}

	metrics.ReviewsTotal.WithLabelValues("reject").Inc()
	Success(c, nil)
}

// RecordPayout 登记打款并终结提交
// POST /admin/v1/submissions/:id/payout
func (h *ReviewHandler) RecordPayout(c *gin.Context) {
	id, err := int64Param(c, "id")
	if err != nil {
		BadRequest(c, err)
		return
	}

	var req service.PayoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err)
		return
	}

	payout, err := h.reviewService.RecordPayout(c.Request.Context(), middleware.GetStaffClaims(c), id, &req)
	if err != nil {
		Fail(c, err)
		return
	}

	metrics.PayoutsTotal.Inc()
	amount, _ := payout.AmountUSDT.Float64()
	if amount > 0 {
		metrics.PayoutAmountTotal.Add(amount)
	}
	Success(c, payout)
}

// ListPayouts 打款记录列表
// GET /admin/v1/payouts?campaign_id=
func (h *ReviewHandler) ListPayouts(c *gin.Context) {
	p := bindPagination(c)
	payouts, err := h.reviewService.ListPayouts(c.Request.Context(), int64Query(c, "campaign_id", 0), p)
	if err != nil {
		Fail(c, err)
		return
	}
	SuccessPaged(c, payouts, p)
}
