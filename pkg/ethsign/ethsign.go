// Package ethsign 提供 EIP-191 personal_sign 签名验证
package ethsign

import (
	"encoding/hex"
	"fmt"
	"regexp"
	"strings"

	"github.com/ethereum/go-ethereum/crypto"
)

// 钱包地址正则 (0x + 40 位十六进制)
var walletAddrRegex = regexp.MustCompile(`^0x[a-fA-F0-9]{40}$`)

// ErrInvalidAddress 地址格式错误
type ErrInvalidAddress struct {
	Address string
}

func (e *ErrInvalidAddress) Error() string {
	return fmt.Sprintf("invalid wallet address: %q", e.Address)
}

// NormalizeAddress 校验并规范化地址 (统一小写)
func NormalizeAddress(address string) (string, error) {
	address = strings.TrimSpace(address)
	if !walletAddrRegex.MatchString(address) {
		return "", &ErrInvalidAddress{Address: address}
	}
	return strings.ToLower(address), nil
}

// IsValidAddress 检查地址格式
func IsValidAddress(address string) bool {
	return walletAddrRegex.MatchString(strings.TrimSpace(address))
}

// PersonalHash 计算 EIP-191 personal message 哈希
// keccak256("\x19Ethereum Signed Message:\n" + len(message) + message)
func PersonalHash(message []byte) []byte {
	prefix := fmt.Sprintf("\x19Ethereum Signed Message:\n%d", len(message))
	return crypto.Keccak256([]byte(prefix), message)
}

// DecodeSignature 解析 hex 签名 (可带 0x 前缀, 必须为 65 字节)
func DecodeSignature(sig string) ([]byte, error) {
	sig = strings.TrimPrefix(strings.TrimSpace(sig), "0x")
	raw, err := hex.DecodeString(sig)
	if err != nil {
		return nil, fmt.Errorf("signature is not valid hex: %w", err)
	}
	if len(raw) != crypto.SignatureLength {
		return nil, fmt.Errorf("invalid signature length: %d", len(raw))
	}
	return raw, nil
}

// RecoverAddress 从 personal_sign 签名恢复签名者地址 (小写)
func RecoverAddress(message, signature []byte) (string, error) {
	if len(signature) != crypto.SignatureLength {
		return "", fmt.Errorf("invalid signature length: %d", len(signature))
	}

	// 钱包返回的 v 为 27/28, SigToPub 需要 0/1
	sig := make([]byte, crypto.SignatureLength)
	copy(sig, signature)
	if sig[crypto.RecoveryIDOffset] >= 27 {
		sig[crypto.RecoveryIDOffset] -= 27
	}

	pubKey, err := crypto.SigToPub(PersonalHash(message), sig)
	if err != nil {
		return "", fmt.Errorf("recover public key failed: %w", err)
	}

	return strings.ToLower(crypto.PubkeyToAddress(*pubKey).Hex()), nil
}

// VerifyPersonalSignature 验证签名是否由指定钱包对消息签出
func VerifyPersonalSignature(wallet string, message, signature []byte) (bool, error) {
	recovered, err := RecoverAddress(message, signature)
	if err != nil {
		return false, err
	}
	return strings.EqualFold(recovered, wallet), nil
}
