package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/puzzlecollector/LinkPepper/internal/model"
)

// submissionColumns 返回 submissions 表的所有列名
func submissionColumns() []string {
	return []string{
		"id", "campaign_id", "user_id", "wallet_address", "network",
		"post_url", "comment", "visited_url", "code_entered",
		"status", "proof_score", "reviewer_note", "admin_comment",
		"reviewed_by", "reviewed_at", "is_approved", "is_paid", "created_at",
	}
}

func TestSubmissionRepository_Create_Success(t *testing.T) {
	db, mock, cleanup := setupMockDB(t)
	defer cleanup()

	repo := NewSubmissionRepository(db)
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "submissions"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectCommit()

	sub := &model.Submission{
		CampaignID:    3,
		WalletAddress: testWallet,
		Network:       "ETH",
		PostURL:       "https://blog.example.com/review",
	}
	err := repo.Create(ctx, sub)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSubmissionRepository_Create_Duplicate(t *testing.T) {
	db, mock, cleanup := setupMockDB(t)
	defer cleanup()

	repo := NewSubmissionRepository(db)
	ctx := context.Background()

	// (campaign_id, wallet_address) 冲突, DO NOTHING 影响 0 行
	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "submissions"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectCommit()

	sub := &model.Submission{
		CampaignID:    3,
		WalletAddress: testWallet,
		Network:       "ETH",
	}
	err := repo.Create(ctx, sub)

	assert.ErrorIs(t, err, ErrDuplicateSubmission)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSubmissionRepository_GetByID_NotFound(t *testing.T) {
	db, mock, cleanup := setupMockDB(t)
	defer cleanup()

	repo := NewSubmissionRepository(db)
	ctx := context.Background()

	mock.ExpectQuery(`SELECT \* FROM "submissions" WHERE id = \$1`).
		WithArgs(int64(99), 1).
		WillReturnError(gorm.ErrRecordNotFound)

	sub, err := repo.GetByID(ctx, 99)

	assert.ErrorIs(t, err, ErrSubmissionNotFound)
	assert.Nil(t, sub)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSubmissionRepository_MarkApproved_Success(t *testing.T) {
	db, mock, cleanup := setupMockDB(t)
	defer cleanup()

	repo := NewSubmissionRepository(db)
	ctx := context.Background()
	score := 80

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "submissions" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.MarkApproved(ctx, 5, 1, &score, "looks good", time.Now().UnixMilli())

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSubmissionRepository_MarkApproved_StateConflict(t *testing.T) {
	db, mock, cleanup := setupMockDB(t)
	defer cleanup()

	repo := NewSubmissionRepository(db)
	ctx := context.Background()

	// 非 PENDING 状态, 守卫更新影响 0 行
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "submissions" SET`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	err := repo.MarkApproved(ctx, 5, 1, nil, "", time.Now().UnixMilli())

	assert.ErrorIs(t, err, ErrSubmissionStateConflict)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSubmissionRepository_MarkPaid_StateConflict(t *testing.T) {
	db, mock, cleanup := setupMockDB(t)
	defer cleanup()

	repo := NewSubmissionRepository(db)
	ctx := context.Background()

	// 未审核通过的提交不可打款
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "submissions" SET`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	err := repo.MarkPaid(ctx, 5)

	assert.ErrorIs(t, err, ErrSubmissionStateConflict)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSubmissionRepository_MarkRejected_DBError(t *testing.T) {
	db, mock, cleanup := setupMockDB(t)
	defer cleanup()

	repo := NewSubmissionRepository(db)
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "submissions" SET`).
		WillReturnError(errors.New("database error"))
	mock.ExpectRollback()

	err := repo.MarkRejected(ctx, 5, 1, "spam", time.Now().UnixMilli())

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "mark submission rejected failed")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSubmissionRepository_List_ByCampaignAndStatus(t *testing.T) {
	db, mock, cleanup := setupMockDB(t)
	defer cleanup()

	repo := NewSubmissionRepository(db)
	ctx := context.Background()
	now := time.Now().UnixMilli()

	mock.ExpectQuery(`SELECT count\(\*\) FROM "submissions"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	rows := sqlmock.NewRows(submissionColumns()).AddRow(
		5, 3, nil, testWallet, "ETH",
		"https://blog.example.com/review", "", "", "",
		model.SubmissionStatusPending, nil, "", "",
		nil, 0, false, false, now,
	)
	mock.ExpectQuery(`SELECT \* FROM "submissions" WHERE campaign_id = \$1 AND status = \$2`).
		WillReturnRows(rows)

	p := &Pagination{Page: 1, PageSize: 20}
	subs, err := repo.List(ctx, &SubmissionFilter{
		CampaignID: 3,
		Status:     model.SubmissionStatusPending,
	}, p)

	assert.NoError(t, err)
	assert.Len(t, subs, 1)
	assert.Equal(t, int64(1), p.Total)
	assert.Equal(t, model.SubmissionStatusPending, subs[0].Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSubmissionRepository_Leaderboard(t *testing.T) {
	db, mock, cleanup := setupMockDB(t)
	defer cleanup()

	repo := NewSubmissionRepository(db)
	ctx := context.Background()

	rows := sqlmock.NewRows([]string{"wallet_address", "total_score", "submissions"}).
		AddRow(testWallet, 150, 2).
		AddRow("0x1111111111111111111111111111111111111111", 90, 1)

	mock.ExpectQuery(`SELECT wallet_address, COALESCE\(SUM\(proof_score\), 0\) AS total_score, COUNT\(\*\) AS submissions FROM "submissions"`).
		WillReturnRows(rows)

	entries, err := repo.Leaderboard(ctx, 0, 10)

	assert.NoError(t, err)
	assert.Len(t, entries, 2)
	assert.Equal(t, testWallet, entries[0].WalletAddress)
	assert.Equal(t, int64(150), entries[0].TotalScore)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSubmissionRepository_Leaderboard_ByCampaign(t *testing.T) {
	db, mock, cleanup := setupMockDB(t)
	defer cleanup()

	repo := NewSubmissionRepository(db)
	ctx := context.Background()

	rows := sqlmock.NewRows([]string{"wallet_address", "total_score", "submissions"}).
		AddRow(testWallet, 80, 1)

	mock.ExpectQuery(`SELECT wallet_address, COALESCE\(SUM\(proof_score\), 0\) AS total_score, COUNT\(\*\) AS submissions FROM "submissions" WHERE \(status IN \(\$1,\$2\) AND proof_score IS NOT NULL\) AND campaign_id = \$3`).
		WillReturnRows(rows)

	entries, err := repo.Leaderboard(ctx, 42, 10)

	assert.NoError(t, err)
	assert.Len(t, entries, 1)
	assert.Equal(t, int64(80), entries[0].TotalScore)
	assert.NoError(t, mock.ExpectationsWereMet())
}
