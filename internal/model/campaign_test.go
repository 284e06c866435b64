package model

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestTaskTypeNormalize(t *testing.T) {
	assert.Equal(t, TaskTypeVisit, TaskTypeMixedLegacy.Normalize())
	assert.Equal(t, TaskTypeVisit, TaskTypeVisit.Normalize())
	assert.Equal(t, TaskTypeLink, TaskTypeLink.Normalize())
}

func TestIsValidNetwork(t *testing.T) {
	supported := []string{"ETH", "SOL", "BNB", "POL"}

	assert.True(t, IsValidNetwork("ETH", supported))
	assert.True(t, IsValidNetwork("POL", supported))
	assert.False(t, IsValidNetwork("eth", supported))
	assert.False(t, IsValidNetwork("DOGE", supported))
	assert.False(t, IsValidNetwork("", supported))
}

func TestCampaignTaskFlags(t *testing.T) {
	visit := &Campaign{TaskType: TaskTypeVisit}
	assert.True(t, visit.HasVisit())
	assert.False(t, visit.HasLink())

	link := &Campaign{TaskType: TaskTypeLink}
	assert.False(t, link.HasVisit())
	assert.True(t, link.HasLink())

	mixed := &Campaign{TaskType: TaskTypeMixedLegacy}
	assert.True(t, mixed.HasVisit())
	assert.True(t, mixed.HasLink())
}

func TestCampaignIsOpenNow(t *testing.T) {
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	c := &Campaign{
		IsPublished: true,
		Start:       start,
		End:         end,
	}

	// 窗口内
	assert.True(t, c.IsOpenNow(time.Date(2026, 3, 5, 12, 0, 0, 0, time.UTC)))
	// 边界日按日期粒度计入
	assert.True(t, c.IsOpenNow(time.Date(2026, 3, 1, 0, 0, 1, 0, time.UTC)))
	assert.True(t, c.IsOpenNow(time.Date(2026, 3, 10, 23, 59, 59, 0, time.UTC)))
	// 窗口外
	assert.False(t, c.IsOpenNow(time.Date(2026, 2, 28, 23, 0, 0, 0, time.UTC)))
	assert.False(t, c.IsOpenNow(time.Date(2026, 3, 11, 0, 0, 0, 0, time.UTC)))

	// 未发布或暂停一律关闭
	c.IsPublished = false
	assert.False(t, c.IsOpenNow(time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC)))
	c.IsPublished = true
	c.IsPaused = true
	assert.False(t, c.IsOpenNow(time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC)))
}

func TestCampaignClaimedPercent(t *testing.T) {
	c := &Campaign{
		PoolUSDT:   decimal.NewFromInt(1000),
		PayoutUSDT: decimal.NewFromInt(10),
	}

	assert.Equal(t, 0, c.ClaimedPercent(0))
	assert.Equal(t, 50, c.ClaimedPercent(50))
	assert.Equal(t, 100, c.ClaimedPercent(100))
	// 超发也封顶 100
	assert.Equal(t, 100, c.ClaimedPercent(150))
}

func TestCampaignClaimedPercentFloor(t *testing.T) {
	c := &Campaign{
		PoolUSDT:   decimal.NewFromInt(10000),
		PayoutUSDT: decimal.NewFromInt(1),
	}

	// 1/10000 = 0.01% -> 进度条显示 1
	assert.Equal(t, 1, c.ClaimedPercent(1))

	// 奖池未配置时恒为 0
	empty := &Campaign{}
	assert.Equal(t, 0, empty.ClaimedPercent(10))
}
