package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/puzzlecollector/LinkPepper/internal/middleware"
	"github.com/puzzlecollector/LinkPepper/internal/service"
)

// CampaignAdminHandler 后台活动管理处理器
type CampaignAdminHandler struct {
	adminService *service.AdminService
}

// NewCampaignAdminHandler 创建后台活动处理器
func NewCampaignAdminHandler(adminService *service.AdminService) *CampaignAdminHandler {
	return &CampaignAdminHandler{adminService: adminService}
}

// List 活动全量列表 (含未发布)
// GET /admin/v1/campaigns
func (h *CampaignAdminHandler) List(c *gin.Context) {
	p := bindPagination(c)
	campaigns, err := h.adminService.ListCampaigns(c.Request.Context(), p)
	if err != nil {
		Fail(c, err)
		return
	}
	SuccessPaged(c, campaigns, p)
}

// Get 活动详情 (含 visit_code)
// GET /admin/v1/campaigns/:id
func (h *CampaignAdminHandler) Get(c *gin.Context) {
	id, err := int64Param(c, "id")
	if err != nil {
		BadRequest(c, err)
		return
	}

	campaign, err := h.adminService.GetCampaign(c.Request.Context(), id)
	if err != nil {
		Fail(c, err)
		return
	}
	Success(c, campaign)
}

// Create 创建活动
// POST /admin/v1/campaigns
func (h *CampaignAdminHandler) Create(c *gin.Context) {
	var req service.CampaignUpsertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err)
		return
	}

	campaign, err := h.adminService.CreateCampaign(c.Request.Context(), middleware.GetStaffClaims(c), &req)
	if err != nil {
		Fail(c, err)
		return
	}
	Success(c, campaign)
}

// Update 更新活动
// PUT /admin/v1/campaigns/:id
func (h *CampaignAdminHandler) Update(c *gin.Context) {
	id, err := int64Param(c, "id")
	if err != nil {
		BadRequest(c, err)
		return
	}

	var req service.CampaignUpsertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err)
		return
	}

	campaign, err := h.adminService.UpdateCampaign(c.Request.Context(), middleware.GetStaffClaims(c), id, &req)
	if err != nil {
		Fail(c, err)
		return
	}
	Success(c, campaign)
}

// Delete 删除活动
// DELETE /admin/v1/campaigns/:id
func (h *CampaignAdminHandler) Delete(c *gin.Context) {
	id, err := int64Param(c, "id")
	if err != nil {
		BadRequest(c, err)
		return
	}

	if err := h.adminService.DeleteCampaign(c.Request.Context(), middleware.GetStaffClaims(c), id); err != nil {
		Fail(c, err)
		return
	}
	Success(c, nil)
}

// toggleRequest 发布/暂停切换请求
type toggleRequest struct {
	Value *bool `json:"value" binding:"required"`
}

// SetPublished 发布/下线活动
// PUT /admin/v1/campaigns/:id/publish
func (h *CampaignAdminHandler) SetPublished(c *gin.Context) {
	id, err := int64Param(c, "id")
	if err != nil {
		BadRequest(c, err)
		return
	}

	var req toggleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err)
		return
	}

	if err := h.adminService.SetCampaignPublished(c.Request.Context(), middleware.GetStaffClaims(c), id, *req.Value); err != nil {
		Fail(c, err)
		return
	}
	Success(c, nil)
}

// SetPaused 暂停/恢复活动
// PUT /admin/v1/campaigns/:id/pause
func (h *CampaignAdminHandler) SetPaused(c *gin.Context) {
	id, err := int64Param(c, "id")
	if err != nil {
		BadRequest(c, err)
		return
	}

	var req toggleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err)
		return
	}

	if err := h.adminService.SetCampaignPaused(c.Request.Context(), middleware.GetStaffClaims(c), id, *req.Value); err != nil {
		Fail(c, err)
		return
	}
	Success(c, nil)
}
