package model

// AuditAction 审计动作
type AuditAction string

const (
	AuditActionLogin          AuditAction = "login"
	AuditActionLoginFailed    AuditAction = "login_failed"
	AuditActionCampaignCreate AuditAction = "campaign_create"
	AuditActionCampaignUpdate AuditAction = "campaign_update"
	AuditActionCampaignDelete AuditAction = "campaign_delete"
	AuditActionApprove        AuditAction = "submission_approve"
	AuditActionReject         AuditAction = "submission_reject"
	AuditActionPayout         AuditAction = "payout_record"
	AuditActionAppHandled     AuditAction = "application_handled"
)

// AuditLog 后台操作审计日志
type AuditLog struct {
	ID           int64       `gorm:"primaryKey;autoIncrement" json:"id"`
	AdminID      int64       `gorm:"index;not null" json:"admin_id"`
	Username     string      `gorm:"type:varchar(50)" json:"username"`
	Action       AuditAction `gorm:"type:varchar(40);index;not null" json:"action"`
	ResourceType string      `gorm:"type:varchar(40)" json:"resource_type"`
	ResourceID   string      `gorm:"type:varchar(64)" json:"resource_id"`
	Detail       string      `gorm:"type:text" json:"detail"`
	IP           string      `gorm:"type:varchar(45)" json:"ip"`
	CreatedAt    int64       `gorm:"type:bigint;not null;autoCreateTime:milli;index" json:"created_at"`
}

// TableName 返回表名
func (AuditLog) TableName() string {
	return "staff_audit_logs"
}
