package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}

	dialector := postgres.New(postgres.Config{
		Conn:       db,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open gorm db: %v", err)
	}

	cleanup := func() {
		db.Close()
	}

	return gormDB, mock, cleanup
}

// walletUserColumns 返回 wallet_users 表的所有列名
func walletUserColumns() []string {
	return []string{
		"id", "address", "display_name", "email", "nonce",
		"nonce_issued_at", "last_login", "is_admin", "created_at", "updated_at",
	}
}

const testWallet = "0xd8da6bf26964af9d7eed9e03e53415d37aa96045"

func TestWalletUserRepository_FetchOrCreate_New(t *testing.T) {
	db, mock, cleanup := setupMockDB(t)
	defer cleanup()

	repo := NewWalletUserRepository(db)
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "wallet_users"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectCommit()

	user, err := repo.FetchOrCreate(ctx, testWallet)

	assert.NoError(t, err)
	assert.Equal(t, int64(1), user.ID)
	assert.Equal(t, testWallet, user.Address)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWalletUserRepository_FetchOrCreate_Existing(t *testing.T) {
	db, mock, cleanup := setupMockDB(t)
	defer cleanup()

	repo := NewWalletUserRepository(db)
	ctx := context.Background()
	now := time.Now().UnixMilli()

	// ON CONFLICT DO NOTHING 未插入, 回读现有记录
	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "wallet_users"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectCommit()

	rows := sqlmock.NewRows(walletUserColumns()).AddRow(
		7, testWallet, "pepper", "", "", 0, now, false, now, now,
	)
	mock.ExpectQuery(`SELECT \* FROM "wallet_users" WHERE address = \$1`).
		WithArgs(testWallet, 1).
		WillReturnRows(rows)

	user, err := repo.FetchOrCreate(ctx, testWallet)

	assert.NoError(t, err)
	assert.Equal(t, int64(7), user.ID)
	assert.Equal(t, "pepper", user.DisplayName)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWalletUserRepository_GetByAddress_NotFound(t *testing.T) {
	db, mock, cleanup := setupMockDB(t)
	defer cleanup()

	repo := NewWalletUserRepository(db)
	ctx := context.Background()

	mock.ExpectQuery(`SELECT \* FROM "wallet_users" WHERE address = \$1`).
		WithArgs(testWallet, 1).
		WillReturnError(gorm.ErrRecordNotFound)

	user, err := repo.GetByAddress(ctx, testWallet)

	assert.ErrorIs(t, err, ErrWalletUserNotFound)
	assert.Nil(t, user)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWalletUserRepository_SetNonce_Success(t *testing.T) {
	db, mock, cleanup := setupMockDB(t)
	defer cleanup()

	repo := NewWalletUserRepository(db)
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "wallet_users" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.SetNonce(ctx, 7, "abc123", time.Now().UnixMilli())

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWalletUserRepository_ConsumeNonce_Success(t *testing.T) {
	db, mock, cleanup := setupMockDB(t)
	defer cleanup()

	repo := NewWalletUserRepository(db)
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "wallet_users" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.ConsumeNonce(ctx, 7, "abc123", time.Now().UnixMilli())

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWalletUserRepository_ConsumeNonce_AlreadyConsumed(t *testing.T) {
	db, mock, cleanup := setupMockDB(t)
	defer cleanup()

	repo := NewWalletUserRepository(db)
	ctx := context.Background()

	// nonce 条件不匹配, 守卫更新影响 0 行
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "wallet_users" SET`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	err := repo.ConsumeNonce(ctx, 7, "stale", time.Now().UnixMilli())

	assert.ErrorIs(t, err, ErrNonceConsumed)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWalletUserRepository_ConsumeNonce_DBError(t *testing.T) {
	db, mock, cleanup := setupMockDB(t)
	defer cleanup()

	repo := NewWalletUserRepository(db)
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "wallet_users" SET`).
		WillReturnError(errors.New("database error"))
	mock.ExpectRollback()

	err := repo.ConsumeNonce(ctx, 7, "abc123", time.Now().UnixMilli())

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "consume nonce failed")
	assert.NoError(t, mock.ExpectationsWereMet())
}
