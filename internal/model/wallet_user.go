package model

// WalletUser 钱包用户
// 地址即身份, 通过签名服务端下发的 nonce 登录, 不存密码
// 对应数据库表 wallet_users
type WalletUser struct {
	ID          int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	Address     string `gorm:"type:varchar(42);uniqueIndex;not null" json:"address"` // 小写规范化后存储
	DisplayName string `gorm:"type:varchar(120)" json:"display_name"`
	Email       string `gorm:"type:varchar(254)" json:"email"`

	// Nonce 当前登录挑战, 验证成功后清空 (单次有效)
	Nonce         string `gorm:"type:varchar(180)" json:"-"`
	NonceIssuedAt int64  `gorm:"type:bigint" json:"-"` // 毫秒
	LastLogin     int64  `gorm:"type:bigint" json:"last_login"`

	IsAdmin bool `gorm:"not null;default:false" json:"is_admin"`

	CreatedAt int64 `gorm:"type:bigint;not null;autoCreateTime:milli" json:"created_at"`
	UpdatedAt int64 `gorm:"type:bigint;not null;autoUpdateTime:milli" json:"updated_at"`
}

// TableName 返回表名
func (WalletUser) TableName() string {
	return "wallet_users"
}

// HasPendingNonce 是否存在未消费的挑战
func (u *WalletUser) HasPendingNonce() bool {
	return u.Nonce != ""
}
