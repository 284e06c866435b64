package service

import (
	"context"
	"crypto/ecdsa"
	"encoding/hex"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/puzzlecollector/LinkPepper/internal/cache"
	"github.com/puzzlecollector/LinkPepper/internal/config"
	"github.com/puzzlecollector/LinkPepper/internal/dto"
	"github.com/puzzlecollector/LinkPepper/internal/model"
	"github.com/puzzlecollector/LinkPepper/internal/repository"
	"github.com/puzzlecollector/LinkPepper/pkg/ethsign"
)

// 测试用数据库设置
func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&model.WalletUser{},
		&model.Campaign{},
		&model.Submission{},
		&model.Payout{},
		&model.CampaignApplication{},
		&model.Event{},
		&model.Admin{},
		&model.AuditLog{},
	)
	require.NoError(t, err)

	return db
}

func setupSessionStore(t *testing.T) *cache.SessionStore {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })
	return cache.NewSessionStore(rdb, time.Hour)
}

func newAuthService(t *testing.T, db *gorm.DB) (*AuthService, *config.AuthConfig) {
	cfg := &config.AuthConfig{
		NonceTTLSec:          600,
		SessionTTLSec:        3600,
		LoginMessageTemplate: config.DefaultLoginMessageTemplate,
	}
	svc := NewAuthService(repository.NewWalletUserRepository(db), setupSessionStore(t), cfg)
	return svc, cfg
}

// signMessage 用私钥对消息做 personal_sign
func signMessage(t *testing.T, key *ecdsa.PrivateKey, message string) string {
	hash := ethsign.PersonalHash([]byte(message))
	sig, err := crypto.Sign(hash, key)
	require.NoError(t, err)
	sig[64] += 27 // 钱包端惯例 v = 27/28
	return "0x" + hex.EncodeToString(sig)
}

func newTestKey(t *testing.T) (*ecdsa.PrivateKey, string) {
	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	// 混合大小写地址, 验证服务端规范化
	return key, crypto.PubkeyToAddress(key.PublicKey).Hex()
}

func TestAuthService_Challenge_RegistersNewUser(t *testing.T) {
	db := setupTestDB(t)
	svc, _ := newAuthService(t, db)
	ctx := context.Background()

	_, address := newTestKey(t)

	resp, err := svc.Challenge(ctx, address)
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Message)
	assert.NotEmpty(t, resp.Nonce)
	assert.Contains(t, resp.Message, "Nonce: "+resp.Nonce)

	// 地址小写入库
	var user model.WalletUser
	require.NoError(t, db.Where("address = ?", resp.Address).First(&user).Error)
	assert.True(t, user.HasPendingNonce())
}

func TestAuthService_Challenge_InvalidAddress(t *testing.T) {
	db := setupTestDB(t)
	svc, _ := newAuthService(t, db)
	ctx := context.Background()

	_, err := svc.Challenge(ctx, "not-an-address")
	assert.ErrorIs(t, err, dto.ErrInvalidAddress)

	_, err = svc.Challenge(ctx, "0x1234")
	assert.ErrorIs(t, err, dto.ErrInvalidAddress)
}

func TestAuthService_Challenge_OverwritesPrevious(t *testing.T) {
	db := setupTestDB(t)
	svc, _ := newAuthService(t, db)
	ctx := context.Background()

	_, address := newTestKey(t)

	first, err := svc.Challenge(ctx, address)
	require.NoError(t, err)
	second, err := svc.Challenge(ctx, address)
	require.NoError(t, err)

	assert.NotEqual(t, first.Message, second.Message)
}

func TestAuthService_Verify_FullFlow(t *testing.T) {
	db := setupTestDB(t)
	svc, _ := newAuthService(t, db)
	ctx := context.Background()

	key, address := newTestKey(t)

	challenge, err := svc.Challenge(ctx, address)
	require.NoError(t, err)

	resp, err := svc.Verify(ctx, &dto.VerifyRequest{
		Address:   address,
		Message:   challenge.Message,
		Signature: signMessage(t, key, challenge.Message),
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, challenge.Address, resp.User.Address)

	// 会话可解析
	user, err := svc.ResolveSession(ctx, resp.Token)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, user.ID)

	// 挑战已消费
	var stored model.WalletUser
	require.NoError(t, db.First(&stored, user.ID).Error)
	assert.False(t, stored.HasPendingNonce())
	assert.NotZero(t, stored.LastLogin)
}

func TestAuthService_Verify_UnknownIdentity(t *testing.T) {
	db := setupTestDB(t)
	svc, _ := newAuthService(t, db)
	ctx := context.Background()

	_, address := newTestKey(t)

	_, err := svc.Verify(ctx, &dto.VerifyRequest{
		Address:   address,
		Message:   "whatever",
		Signature: "0xdead",
	})
	assert.ErrorIs(t, err, dto.ErrUnknownIdentity)
}

func TestAuthService_Verify_NoPendingChallenge(t *testing.T) {
	db := setupTestDB(t)
	svc, _ := newAuthService(t, db)
	ctx := context.Background()

	key, address := newTestKey(t)

	challenge, err := svc.Challenge(ctx, address)
	require.NoError(t, err)

	req := &dto.VerifyRequest{
		Address:   address,
		Message:   challenge.Message,
		Signature: signMessage(t, key, challenge.Message),
	}
	_, err = svc.Verify(ctx, req)
	require.NoError(t, err)

	// 挑战单次有效, 重放同一签名被拒绝
	_, err = svc.Verify(ctx, req)
	assert.ErrorIs(t, err, dto.ErrNoPendingChallenge)
}

func TestAuthService_Verify_ExpiredNonce(t *testing.T) {
	db := setupTestDB(t)
	svc, cfg := newAuthService(t, db)
	cfg.NonceTTLSec = 1
	ctx := context.Background()

	key, address := newTestKey(t)

	challenge, err := svc.Challenge(ctx, address)
	require.NoError(t, err)

	// 回拨签发时间模拟过期
	normalized, _ := ethsign.NormalizeAddress(address)
	require.NoError(t, db.Model(&model.WalletUser{}).
		Where("address = ?", normalized).
		Update("nonce_issued_at", time.Now().Add(-time.Minute).UnixMilli()).Error)

	_, err = svc.Verify(ctx, &dto.VerifyRequest{
		Address:   address,
		Message:   challenge.Message,
		Signature: signMessage(t, key, challenge.Message),
	})
	assert.ErrorIs(t, err, dto.ErrNoPendingChallenge)
}

func TestAuthService_Verify_MessageMismatch(t *testing.T) {
	db := setupTestDB(t)
	svc, _ := newAuthService(t, db)
	ctx := context.Background()

	key, address := newTestKey(t)

	_, err := svc.Challenge(ctx, address)
	require.NoError(t, err)

	tampered := "tampered message"
	_, err = svc.Verify(ctx, &dto.VerifyRequest{
		Address:   address,
		Message:   tampered,
		Signature: signMessage(t, key, tampered),
	})
	assert.ErrorIs(t, err, dto.ErrMessageMismatch)
}

func TestAuthService_Verify_BadSignature(t *testing.T) {
	db := setupTestDB(t)
	svc, _ := newAuthService(t, db)
	ctx := context.Background()

	_, address := newTestKey(t)

	challenge, err := svc.Challenge(ctx, address)
	require.NoError(t, err)

	_, err = svc.Verify(ctx, &dto.VerifyRequest{
		Address:   address,
		Message:   challenge.Message,
		Signature: "0xzznothex",
	})
	assert.ErrorIs(t, err, dto.ErrBadSignature)
}

func TestAuthService_Verify_AddressMismatch(t *testing.T) {
	db := setupTestDB(t)
	svc, _ := newAuthService(t, db)
	ctx := context.Background()

	_, address := newTestKey(t)
	otherKey, _ := newTestKey(t)

	challenge, err := svc.Challenge(ctx, address)
	require.NoError(t, err)

	// 别人的私钥签名, 恢复出的地址对不上
	_, err = svc.Verify(ctx, &dto.VerifyRequest{
		Address:   address,
		Message:   challenge.Message,
		Signature: signMessage(t, otherKey, challenge.Message),
	})
	assert.ErrorIs(t, err, dto.ErrAddressMismatch)
}

func TestAuthService_Logout(t *testing.T) {
	db := setupTestDB(t)
	svc, _ := newAuthService(t, db)
	ctx := context.Background()

	key, address := newTestKey(t)

	challenge, err := svc.Challenge(ctx, address)
	require.NoError(t, err)

	resp, err := svc.Verify(ctx, &dto.VerifyRequest{
		Address:   address,
		Message:   challenge.Message,
		Signature: signMessage(t, key, challenge.Message),
	})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, resp.Token))

	_, err = svc.ResolveSession(ctx, resp.Token)
	assert.ErrorIs(t, err, dto.ErrUnauthorized)
}

func TestAuthService_ResolveSession_Invalid(t *testing.T) {
	db := setupTestDB(t)
	svc, _ := newAuthService(t, db)
	ctx := context.Background()

	_, err := svc.ResolveSession(ctx, "bogus")
	assert.ErrorIs(t, err, dto.ErrUnauthorized)

	_, err = svc.ResolveSession(ctx, "")
	assert.ErrorIs(t, err, dto.ErrUnauthorized)
}
