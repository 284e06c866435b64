package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSubmissionStatusIsTerminal(t *testing.T) {
	assert.False(t, SubmissionStatusPending.IsTerminal())
	assert.False(t, SubmissionStatusApproved.IsTerminal())
	assert.True(t, SubmissionStatusRejected.IsTerminal())
	assert.True(t, SubmissionStatusPaid.IsTerminal())
}

func TestRolePermissions(t *testing.T) {
	// 超管拥有审计读取权限, 运营没有
	assert.Contains(t, RolePermissions[RoleSuperAdmin], PermAuditRead)
	assert.NotContains(t, RolePermissions[RoleOperator], PermAuditRead)

	// 只读角色不可写
	for _, p := range RolePermissions[RoleViewer] {
		assert.NotContains(t, []string{PermCampaignWrite, PermSubmissionWrite, PermPayoutWrite}, p)
	}
}
