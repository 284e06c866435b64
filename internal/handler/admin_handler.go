package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/puzzlecollector/LinkPepper/internal/middleware"
	"github.com/puzzlecollector/LinkPepper/internal/model"
	"github.com/puzzlecollector/LinkPepper/internal/repository"
	"github.com/puzzlecollector/LinkPepper/internal/service"
)

// AdminHandler 后台申请/公告/审计处理器
type AdminHandler struct {
	adminService *service.AdminService
}

// NewAdminHandler 创建后台处理器
func NewAdminHandler(adminService *service.AdminService) *AdminHandler {
	return &AdminHandler{adminService: adminService}
}

// ListApplications 客户申请列表
// GET /admin/v1/applications?unhandled=true
func (h *AdminHandler) ListApplications(c *gin.Context) {
	p := bindPagination(c)
	onlyUnhandled := c.Query("unhandled") == "true"

	apps, err := h.adminService.ListApplications(c.Request.Context(), onlyUnhandled, p)
	if err != nil {
		Fail(c, err)
		return
	}
	SuccessPaged(c, apps, p)
}

// GetApplication 申请详情
// GET /admin/v1/applications/:id
func (h *AdminHandler) GetApplication(c *gin.Context) {
	app, err := h.adminService.GetApplication(c.Request.Context(), c.Param("id"))
	if err != nil {
		Fail(c, err)
		return
	}
	Success(c, app)
}

// MarkApplicationHandled 标记申请已处理
// PUT /admin/v1/applications/:id/handled
func (h *AdminHandler) MarkApplicationHandled(c *gin.Context) {
	if err := h.adminService.MarkApplicationHandled(c.Request.Context(), middleware.GetStaffClaims(c), c.Param("id")); err != nil {
		Fail(c, err)
		return
	}
	Success(c, nil)
}

// CreateCampaignFromApplication 从申请预填创建草稿活动
// POST /admin/v1/applications/:id/campaign
func (h *AdminHandler) CreateCampaignFromApplication(c *gin.Context) {
	campaign, err := h.adminService.CreateCampaignFromApplication(c.Request.Context(), middleware.GetStaffClaims(c), c.Param("id"))
	if err != nil {
		Fail(c, err)
		return
	}
	Success(c, campaign)
}

// ListEvents 公告全量列表
// GET /admin/v1/events
func (h *AdminHandler) ListEvents(c *gin.Context) {
	p := bindPagination(c)
	events, err := h.adminService.ListEvents(c.Request.Context(), p)
	if err != nil {
		Fail(c, err)
		return
	}
	SuccessPaged(c, events, p)
}

// CreateEvent 创建公告
// POST /admin/v1/events
func (h *AdminHandler) CreateEvent(c *gin.Context) {
	var req service.EventUpsertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err)
		return
	}

	event, err := h.adminService.CreateEvent(c.Request.Context(), middleware.GetStaffClaims(c), &req)
	if err != nil {
		Fail(c, err)
		return
	}
	Success(c, event)
}

// UpdateEvent 更新公告
// PUT /admin/v1/events/:id
func (h *AdminHandler) UpdateEvent(c *gin.Context) {
	id, err := int64Param(c, "id")
	if err != nil {
		BadRequest(c, err)
		return
	}

	var req service.EventUpsertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err)
		return
	}

	if err := h.adminService.UpdateEvent(c.Request.Context(), middleware.GetStaffClaims(c), id, &req); err != nil {
		Fail(c, err)
		return
	}
	Success(c, nil)
}

// DeleteEvent 删除公告
// DELETE /admin/v1/events/:id
func (h *AdminHandler) DeleteEvent(c *gin.Context) {
	id, err := int64Param(c, "id")
	if err != nil {
		BadRequest(c, err)
		return
	}

	if err := h.adminService.DeleteEvent(c.Request.Context(), middleware.GetStaffClaims(c), id); err != nil {
		Fail(c, err)
		return
	}
	Success(c, nil)
}

// ListAuditLogs 审计日志列表
// GET /admin/v1/audits?admin_id=&action=
func (h *AdminHandler) ListAuditLogs(c *gin.Context) {
	p := bindPagination(c)
	filter := &repository.AuditLogFilter{
		AdminID: int64Query(c, "admin_id", 0),
		Action:  model.AuditAction(c.Query("action")),
	}

	logs, err := h.adminService.ListAuditLogs(c.Request.Context(), filter, p)
	if err != nil {
		Fail(c, err)
		return
	}
	SuccessPaged(c, logs, p)
}

// Dashboard 仪表盘统计
// GET /admin/v1/dashboard
func (h *AdminHandler) Dashboard(c *gin.Context) {
	stats, err := h.adminService.Dashboard(c.Request.Context())
	if err != nil {
		Fail(c, err)
		return
	}
	Success(c, stats)
}
