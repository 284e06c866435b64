package model

// Role 后台角色
type Role string

const (
	RoleSuperAdmin Role = "super_admin" // 全部权限
	RoleOperator   Role = "operator"    // 运营: 活动与审核
	RoleViewer     Role = "viewer"      // 只读查看
)

// AdminStatus 后台账号状态
type AdminStatus int

const (
	AdminStatusActive   AdminStatus = 1 // 活跃
	AdminStatusDisabled AdminStatus = 2 // 禁用
)

// Admin 后台管理员
// 对应数据库表 staff_admins
type Admin struct {
	ID            int64       `gorm:"primaryKey;autoIncrement" json:"id"`
	Username      string      `gorm:"type:varchar(50);uniqueIndex;not null" json:"username"`
	PasswordHash  string      `gorm:"type:varchar(100);not null" json:"-"`
	Nickname      string      `gorm:"type:varchar(50)" json:"nickname"`
	Email         string      `gorm:"type:varchar(100)" json:"email"`
	Role          Role        `gorm:"type:varchar(20);not null" json:"role"`
	Status        AdminStatus `gorm:"not null;default:1" json:"status"`
	LastLoginAt   *int64      `gorm:"type:bigint" json:"last_login_at"`
	LastLoginIP   string      `gorm:"type:varchar(45)" json:"last_login_ip"`
	LoginAttempts int         `gorm:"not null;default:0" json:"-"`
	LockedUntil   *int64      `gorm:"type:bigint" json:"-"`
	CreatedAt     int64       `gorm:"type:bigint;not null;autoCreateTime:milli" json:"created_at"`
	UpdatedAt     int64       `gorm:"type:bigint;not null;autoUpdateTime:milli" json:"updated_at"`
}

// TableName 返回表名
func (Admin) TableName() string {
	return "staff_admins"
}

// 权限常量
const (
	PermCampaignRead    = "campaign:read"
	PermCampaignWrite   = "campaign:write"
	PermSubmissionRead  = "submission:read"
	PermSubmissionWrite = "submission:write"
	PermPayoutRead      = "payout:read"
	PermPayoutWrite     = "payout:write"
	PermApplicationRead = "application:read"
	PermAuditRead       = "audit:read"
)

// RolePermissions 角色权限映射
var RolePermissions = map[Role][]string{
	RoleSuperAdmin: {
		PermCampaignRead, PermCampaignWrite,
		PermSubmissionRead, PermSubmissionWrite,
		PermPayoutRead, PermPayoutWrite,
		PermApplicationRead,
		PermAuditRead,
	},
	RoleOperator: {
		PermCampaignRead, PermCampaignWrite,
		PermSubmissionRead, PermSubmissionWrite,
		PermPayoutRead, PermPayoutWrite,
		PermApplicationRead,
	},
	RoleViewer: {
		PermCampaignRead,
		PermSubmissionRead,
		PermPayoutRead,
		PermApplicationRead,
	},
}
