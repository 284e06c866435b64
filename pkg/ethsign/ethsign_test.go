package ethsign

import (
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeAddress(t *testing.T) {
	addr, err := NormalizeAddress("0xABCDEF0123456789000000000000000000000001")
	assert.NoError(t, err)
	assert.Equal(t, "0xabcdef0123456789000000000000000000000001", addr)

	_, err = NormalizeAddress("0x123")
	assert.Error(t, err)

	_, err = NormalizeAddress("abcdef0123456789000000000000000000000001")
	assert.Error(t, err)

	_, err = NormalizeAddress("0xZZZZEF0123456789000000000000000000000001")
	assert.Error(t, err)
}

func TestPersonalHash_KnownPrefix(t *testing.T) {
	msg := []byte("hello")
	want := crypto.Keccak256([]byte("\x19Ethereum Signed Message:\n5hello"))
	assert.Equal(t, want, PersonalHash(msg))
}

func TestRecoverAddress_RoundTrip(t *testing.T) {
	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	wallet := strings.ToLower(crypto.PubkeyToAddress(key.PublicKey).Hex())

	message := []byte("LinkPepper login challenge")
	sig, err := crypto.Sign(PersonalHash(message), key)
	require.NoError(t, err)
	sig[crypto.RecoveryIDOffset] += 27 // 模拟钱包返回的 v 值

	recovered, err := RecoverAddress(message, sig)
	require.NoError(t, err)
	assert.Equal(t, wallet, recovered)

	ok, err := VerifyPersonalSignature(wallet, message, sig)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestRecoverAddress_RawRecoveryID(t *testing.T) {
	// v = 0/1 的原始签名也要能恢复
	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	wallet := strings.ToLower(crypto.PubkeyToAddress(key.PublicKey).Hex())

	message := []byte("raw recovery id")
	sig, err := crypto.Sign(PersonalHash(message), key)
	require.NoError(t, err)

	recovered, err := RecoverAddress(message, sig)
	require.NoError(t, err)
	assert.Equal(t, wallet, recovered)
}

func TestVerifyPersonalSignature_WrongKey(t *testing.T) {
	key1, err := crypto.GenerateKey()
	require.NoError(t, err)
	key2, err := crypto.GenerateKey()
	require.NoError(t, err)
	wallet1 := strings.ToLower(crypto.PubkeyToAddress(key1.PublicKey).Hex())

	message := []byte("ownership check")
	sig, err := crypto.Sign(PersonalHash(message), key2)
	require.NoError(t, err)

	ok, err := VerifyPersonalSignature(wallet1, message, sig)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestDecodeSignature(t *testing.T) {
	raw := make([]byte, 65)
	raw[64] = 27
	hexSig := "0x" + strings.Repeat("00", 64) + "1b"

	decoded, err := DecodeSignature(hexSig)
	require.NoError(t, err)
	assert.Equal(t, raw, decoded)

	_, err = DecodeSignature("0xdeadbeef")
	assert.Error(t, err)

	_, err = DecodeSignature("not-hex")
	assert.Error(t, err)
}
