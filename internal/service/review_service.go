package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/puzzlecollector/LinkPepper/internal/dto"
	"github.com/puzzlecollector/LinkPepper/internal/model"
	"github.com/puzzlecollector/LinkPepper/internal/repository"
	"github.com/puzzlecollector/LinkPepper/pkg/logger"
)

// ReviewService 提交审核与打款服务
// 状态机: PENDING -> APPROVED -> PAID, PENDING|APPROVED -> REJECTED
type ReviewService struct {
	tx          *repository.Repository
	campaigns   repository.CampaignRepository
	submissions repository.SubmissionRepository
	payouts     repository.PayoutRepository
	audits      repository.AuditLogRepository
}

// NewReviewService 创建审核服务
func NewReviewService(
	tx *repository.Repository,
	campaigns repository.CampaignRepository,
	submissions repository.SubmissionRepository,
	payouts repository.PayoutRepository,
	audits repository.AuditLogRepository,
) *ReviewService {
	return &ReviewService{
		tx:          tx,
		campaigns:   campaigns,
		submissions: submissions,
		payouts:     payouts,
		audits:      audits,
	}
}

// ApproveRequest 审核通过请求
type ApproveRequest struct {
	ProofScore *int   `json:"proof_score"`
	Note       string `json:"note"`
}

// RejectRequest 审核拒绝请求
type RejectRequest struct {
	Note string `json:"note"`
}

// PayoutRequest 打款登记请求
type PayoutRequest struct {
	Amount      string `json:"amount"` // 为空时取活动单任务奖励
	TokenSymbol string `json:"token_symbol"`
	TxHash      string `json:"tx_hash"`
	Note        string `json:"note"`
}

// ListSubmissions 后台提交列表
func (s *ReviewService) ListSubmissions(ctx context.Context, filter *repository.SubmissionFilter, p *repository.Pagination) ([]*model.Submission, error) {
	subs, err := s.submissions.List(ctx, filter, p)
	if err != nil {
		logger.WithContext(ctx).Error("list submissions failed", zap.Error(err))
		return nil, dto.ErrInternalError
	}
	return subs, nil
}

// GetSubmission 后台提交详情
func (s *ReviewService) GetSubmission(ctx context.Context, id int64) (*model.Submission, error) {
	sub, err := s.submissions.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrSubmissionNotFound) {
			return nil, dto.ErrSubmissionNotFound
		}
		return nil, dto.ErrInternalError
	}
	return sub, nil
}

// Approve 审核通过
// 带分数与备注, 守卫更新保证只有 PENDING 可通过
func (s *ReviewService) Approve(ctx context.Context, staff *StaffClaims, id int64, req *ApproveRequest) error {
	if req.ProofScore != nil && (*req.ProofScore < 0 || *req.ProofScore > 100) {
		return dto.ErrInvalidParams.WithMessage("proof_score must be 0..100")
	}

	now := time.Now().UnixMilli()
	err := s.submissions.MarkApproved(ctx, id, staff.AdminID, req.ProofScore, req.Note, now)
	if err != nil {
		if errors.Is(err, repository.ErrSubmissionStateConflict) {
			return s.mapStateConflict(ctx, id)
		}
		logger.WithContext(ctx).Error("approve submission failed",
			zap.Int64("submission_id", id), zap.Error(err))
		return dto.ErrInternalError
	}

	s.recordAudit(ctx, staff, model.AuditActionApprove, id, req.Note)
	return nil
}

// Reject 审核拒绝
// PENDING 与 APPROVED 都可拒绝, 已打款不可拒绝
func (s *ReviewService) Reject(ctx context.Context, staff *StaffClaims, id int64, req *RejectRequest) error {
	now := time.Now().UnixMilli()
	err := s.submissions.MarkRejected(ctx, id, staff.AdminID, req.Note, now)
	if err != nil {
		if errors.Is(err, repository.ErrSubmissionStateConflict) {
			return s.mapStateConflict(ctx, id)
		}
		logger.WithContext(ctx).Error("reject submission failed",
			zap.Int64("submission_id", id), zap.Error(err))
		return dto.ErrInternalError
	}

	s.recordAudit(ctx, staff, model.AuditActionReject, id, req.Note)
	return nil
}

// RecordPayout 登记打款
// 打款记录创建与提交状态翻转在同一事务内, submission_id
// 唯一约束保证同一提交至多打款一次
func (s *ReviewService) RecordPayout(ctx context.Context, staff *StaffClaims, id int64, req *PayoutRequest) (*model.Payout, error) {
	sub, err := s.submissions.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrSubmissionNotFound) {
			return nil, dto.ErrSubmissionNotFound
		}
		return nil, dto.ErrInternalError
	}
	if sub.Status != model.SubmissionStatusApproved {
		return nil, dto.ErrNotApproved
	}

	campaign, err := s.campaigns.GetByID(ctx, sub.CampaignID)
	if err != nil {
		return nil, dto.ErrInternalError
	}

	amount := campaign.PayoutUSDT
	if req.Amount != "" {
		amount, err = decimal.NewFromString(req.Amount)
		if err != nil || !amount.IsPositive() {
			return nil, dto.ErrInvalidParams.WithMessage("invalid amount")
		}
	}

	tokenSymbol := req.TokenSymbol
	if tokenSymbol == "" {
		tokenSymbol = "USDT"
	}

	payout := &model.Payout{
		SubmissionID: sub.ID,
		CampaignID:   sub.CampaignID,
		AmountUSDT:   amount,
		TokenSymbol:  tokenSymbol,
		Network:      model.Network(sub.Network),
		TxHash:       req.TxHash,
		PaidAt:       time.Now().UnixMilli(),
		PaidBy:       staff.AdminID,
		Note:         req.Note,
	}

	err = s.tx.Transaction(ctx, func(txCtx context.Context) error {
		if err := s.payouts.Create(txCtx, payout); err != nil {
			return err
		}
		return s.submissions.MarkPaid(txCtx, sub.ID)
	})
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrPayoutAlreadyExists):
			return nil, dto.ErrPayoutAlreadyExists
		case errors.Is(err, repository.ErrSubmissionStateConflict):
			return nil, dto.ErrInvalidTransition
		default:
			logger.WithContext(ctx).Error("record payout failed",
				zap.Int64("submission_id", id), zap.Error(err))
			return nil, dto.ErrInternalError
		}
	}

	s.recordAudit(ctx, staff, model.AuditActionPayout, id,
		fmt.Sprintf("amount=%s %s tx=%s", amount.String(), tokenSymbol, req.TxHash))

	logger.WithContext(ctx).Info("payout recorded",
		zap.Int64("submission_id", sub.ID),
		zap.Int64("campaign_id", sub.CampaignID),
		zap.String("amount", amount.String()))

	return payout, nil
}

// ListPayouts 打款列表
func (s *ReviewService) ListPayouts(ctx context.Context, campaignID int64, p *repository.Pagination) ([]*model.Payout, error) {
	payouts, err := s.payouts.ListByCampaign(ctx, campaignID, p)
	if err != nil {
		logger.WithContext(ctx).Error("list payouts failed", zap.Error(err))
		return nil, dto.ErrInternalError
	}
	return payouts, nil
}

// mapStateConflict 守卫更新失败时回读状态给出准确错误
func (s *ReviewService) mapStateConflict(ctx context.Context, id int64) error {
	if _, err := s.submissions.GetByID(ctx, id); err != nil {
		if errors.Is(err, repository.ErrSubmissionNotFound) {
			return dto.ErrSubmissionNotFound
		}
		return dto.ErrInternalError
	}
	return dto.ErrInvalidTransition
}

// recordAudit 记录审核审计
func (s *ReviewService) recordAudit(ctx context.Context, staff *StaffClaims, action model.AuditAction, submissionID int64, detail string) {
	log := &model.AuditLog{
		AdminID:      staff.AdminID,
		Username:     staff.Username,
		Action:       action,
		ResourceType: "submission",
		ResourceID:   fmt.Sprintf("%d", submissionID),
		Detail:       detail,
	}
	if err := s.audits.Create(ctx, log); err != nil {
		logger.WithContext(ctx).Warn("write audit log failed", zap.Error(err))
	}
}
