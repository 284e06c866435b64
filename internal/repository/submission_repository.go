package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/puzzlecollector/LinkPepper/internal/model"
)

var (
	// ErrSubmissionNotFound 提交不存在
	ErrSubmissionNotFound = errors.New("submission not found")
	// ErrDuplicateSubmission 该钱包在此活动已有提交
	ErrDuplicateSubmission = errors.New("duplicate submission")
	// ErrSubmissionStateConflict 提交状态与预期不符
	ErrSubmissionStateConflict = errors.New("submission state conflict")
)

// SubmissionFilter 后台列表过滤条件
type SubmissionFilter struct {
	CampaignID    int64
	WalletAddress string
	Status        model.SubmissionStatus
}

// LeaderboardEntry 排行榜条目
type LeaderboardEntry struct {
	WalletAddress string `json:"wallet_address"`
	TotalScore    int64  `json:"total_score"`
	Submissions   int64  `json:"submissions"`
}

// SubmissionRepository 提交仓储接口
type SubmissionRepository interface {
	// Create 创建提交
	// (campaign_id, wallet_address) 唯一约束是唯一的并发防线,
	// 冲突时返回 ErrDuplicateSubmission
	Create(ctx context.Context, sub *model.Submission) error

	// GetByID 按主键获取提交
	GetByID(ctx context.Context, id int64) (*model.Submission, error)

	// GetByCampaignWallet 获取某钱包在活动下的提交
	GetByCampaignWallet(ctx context.Context, campaignID int64, wallet string) (*model.Submission, error)

	// List 后台条件列表, 按主键倒序
	List(ctx context.Context, filter *SubmissionFilter, p *Pagination) ([]*model.Submission, error)

	// ListByWallet 某钱包的全部提交
	ListByWallet(ctx context.Context, wallet string, p *Pagination) ([]*model.Submission, error)

	// MarkApproved 守卫更新: PENDING -> APPROVED
	// 非空 note 换行追加到既有审核备注之后, 空 note 不改动备注列
	MarkApproved(ctx context.Context, id int64, reviewerID int64, score *int, note string, reviewedAt int64) error

	// MarkRejected 守卫更新: PENDING|APPROVED -> REJECTED, note 追加规则同 MarkApproved
	MarkRejected(ctx context.Context, id int64, reviewerID int64, note string, reviewedAt int64) error

	// MarkPaid 守卫更新: APPROVED -> PAID
	MarkPaid(ctx context.Context, id int64) error

	// Leaderboard 按钱包聚合已通过提交的证明分, campaignID 为 0 时全站聚合
	Leaderboard(ctx context.Context, campaignID int64, limit int) ([]*LeaderboardEntry, error)

	// CountByStatus 状态分布统计 (后台仪表盘)
	CountByStatus(ctx context.Context) (map[model.SubmissionStatus]int64, error)
}

// submissionRepository 提交仓储实现
type submissionRepository struct {
	*Repository
}

// NewSubmissionRepository 创建提交仓储
func NewSubmissionRepository(db *gorm.DB) SubmissionRepository {
	return &submissionRepository{Repository: NewRepository(db)}
}

// Create 创建提交
func (r *submissionRepository) Create(ctx context.Context, sub *model.Submission) error {
	result := r.DB(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "campaign_id"}, {Name: "wallet_address"}},
		DoNothing: true,
	}).Create(sub)

	if result.Error != nil {
		return fmt.Errorf("create submission failed: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrDuplicateSubmission
	}
	return nil
}

// GetByID 按主键获取提交
func (r *submissionRepository) GetByID(ctx context.Context, id int64) (*model.Submission, error) {
	var sub model.Submission
	result := r.DB(ctx).Where("id = ?", id).First(&sub)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrSubmissionNotFound
		}
		return nil, fmt.Errorf("get submission failed: %w", result.Error)
	}
	return &sub, nil
}

// GetByCampaignWallet 获取某钱包在活动下的提交
func (r *submissionRepository) GetByCampaignWallet(ctx context.Context, campaignID int64, wallet string) (*model.Submission, error) {
	var sub model.Submission
	result := r.DB(ctx).
		Where("campaign_id = ? AND wallet_address = ?", campaignID, wallet).
		First(&sub)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrSubmissionNotFound
		}
		return nil, fmt.Errorf("get submission failed: %w", result.Error)
	}
	return &sub, nil
}

// List 后台条件列表
func (r *submissionRepository) List(ctx context.Context, filter *SubmissionFilter, p *Pagination) ([]*model.Submission, error) {
	query := r.DB(ctx).Model(&model.Submission{})

	if filter != nil {
		if filter.CampaignID > 0 {
			query = query.Where("campaign_id = ?", filter.CampaignID)
		}
		if filter.WalletAddress != "" {
			query = query.Where("wallet_address = ?", filter.WalletAddress)
		}
		if filter.Status != "" {
			query = query.Where("status = ?", filter.Status)
		}
	}

	if err := query.Count(&p.Total).Error; err != nil {
		return nil, fmt.Errorf("count submissions failed: %w", err)
	}

	var subs []*model.Submission
	result := query.Order("id DESC").
		Offset(p.Offset()).
		Limit(p.Limit()).
		Find(&subs)

	if result.Error != nil {
		return nil, fmt.Errorf("list submissions failed: %w", result.Error)
	}
	return subs, nil
}

// ListByWallet 某钱包的全部提交
func (r *submissionRepository) ListByWallet(ctx context.Context, wallet string, p *Pagination) ([]*model.Submission, error) {
	return r.List(ctx, &SubmissionFilter{WalletAddress: wallet}, p)
}

// appendNoteExpr 审核备注追加写入, 历史备注保留, 以换行分隔
func appendNoteExpr(note string) clause.Expr {
	return gorm.Expr(
		"CASE WHEN COALESCE(reviewer_note, '') = '' THEN ? ELSE reviewer_note || ? END",
		note, "\n"+note)
}

// MarkApproved 守卫更新: PENDING -> APPROVED
func (r *submissionRepository) MarkApproved(ctx context.Context, id int64, reviewerID int64, score *int, note string, reviewedAt int64) error {
	updates := map[string]interface{}{
		"status":      model.SubmissionStatusApproved,
		"is_approved": true,
		"reviewed_by": reviewerID,
		"reviewed_at": reviewedAt,
	}
	if score != nil {
		updates["proof_score"] = *score
	}
	if note != "" {
		updates["reviewer_note"] = appendNoteExpr(note)
	}

	result := r.DB(ctx).Model(&model.Submission{}).
		Where("id = ? AND status = ?", id, model.SubmissionStatusPending).
		Updates(updates)

	if result.Error != nil {
		return fmt.Errorf("mark submission approved failed: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrSubmissionStateConflict
	}
	return nil
}

// MarkRejected 守卫更新: PENDING|APPROVED -> REJECTED
func (r *submissionRepository) MarkRejected(ctx context.Context, id int64, reviewerID int64, note string, reviewedAt int64) error {
	updates := map[string]interface{}{
		"status":      model.SubmissionStatusRejected,
		"is_approved": false,
		"reviewed_by": reviewerID,
		"reviewed_at": reviewedAt,
	}
	if note != "" {
		updates["reviewer_note"] = appendNoteExpr(note)
	}

	result := r.DB(ctx).Model(&model.Submission{}).
		Where("id = ? AND status IN ?", id, []model.SubmissionStatus{
			model.SubmissionStatusPending,
			model.SubmissionStatusApproved,
		}).
		Updates(updates)

	if result.Error != nil {
		return fmt.Errorf("mark submission rejected failed: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrSubmissionStateConflict
	}
	return nil
}

// MarkPaid 守卫更新: APPROVED -> PAID
func (r *submissionRepository) MarkPaid(ctx context.Context, id int64) error {
	result := r.DB(ctx).Model(&model.Submission{}).
		Where("id = ? AND status = ?", id, model.SubmissionStatusApproved).
		Updates(map[string]interface{}{
			"status":  model.SubmissionStatusPaid,
			"is_paid": true,
		})

	if result.Error != nil {
		return fmt.Errorf("mark submission paid failed: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrSubmissionStateConflict
	}
	return nil
}

// Leaderboard 按钱包聚合已通过提交的证明分
// 只计 APPROVED/PAID 且有评分的提交; campaignID 为 0 时全站聚合
func (r *submissionRepository) Leaderboard(ctx context.Context, campaignID int64, limit int) ([]*LeaderboardEntry, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}

	query := r.DB(ctx).Model(&model.Submission{}).
		Select("wallet_address, COALESCE(SUM(proof_score), 0) AS total_score, COUNT(*) AS submissions").
		Where("status IN ? AND proof_score IS NOT NULL", []model.SubmissionStatus{
			model.SubmissionStatusApproved,
			model.SubmissionStatusPaid,
		})
	if campaignID > 0 {
		query = query.Where("campaign_id = ?", campaignID)
	}

	var entries []*LeaderboardEntry
	result := query.
		Group("wallet_address").
		Order("total_score DESC").
		Limit(limit).
		Scan(&entries)

	if result.Error != nil {
		return nil, fmt.Errorf("query leaderboard failed: %w", result.Error)
	}
	return entries, nil
}

// CountByStatus 状态分布统计
func (r *submissionRepository) CountByStatus(ctx context.Context) (map[model.SubmissionStatus]int64, error) {
	type row struct {
		Status model.SubmissionStatus
		Count  int64
	}

	var rows []row
	result := r.DB(ctx).Model(&model.Submission{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows)

	if result.Error != nil {
		return nil, fmt.Errorf("count submissions by status failed: %w", result.Error)
	}

	counts := make(map[model.SubmissionStatus]int64, len(rows))
	for _, r := range rows {
		counts[r.Status] = r.Count
	}
	return counts, nil
}
