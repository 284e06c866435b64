// Package router 注册 HTTP 路由
package router

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/puzzlecollector/LinkPepper/internal/handler"
	"github.com/puzzlecollector/LinkPepper/internal/middleware"
	"github.com/puzzlecollector/LinkPepper/internal/model"
)

// Handlers 所有处理器
type Handlers struct {
	Auth          *handler.AuthHandler
	Rewards       *handler.RewardsHandler
	StaffAuth     *handler.StaffAuthHandler
	CampaignAdmin *handler.CampaignAdminHandler
	Review        *handler.ReviewHandler
	Admin         *handler.AdminHandler
}

// SetupRouter 设置路由
func SetupRouter(r *gin.Engine, h *Handlers, walletAuth *middleware.WalletAuthMiddleware, staffAuth *middleware.StaffAuthMiddleware) {
	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Prometheus 指标
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// 前台 API
	api := r.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.GET("/nonce", h.Auth.Challenge)
			auth.POST("/nonce", h.Auth.Challenge)
			auth.POST("/verify", h.Auth.Verify)
			auth.POST("/logout", walletAuth.Required(), h.Auth.Logout)
			auth.GET("/me", walletAuth.Required(), h.Auth.Me)
		}

		rewards := api.Group("/rewards")
		{
			rewards.GET("/campaigns", h.Rewards.ListCampaigns)
			rewards.GET("/campaigns/:slug", h.Rewards.GetCampaign)
			rewards.GET("/campaigns/:slug/leaderboard", h.Rewards.CampaignLeaderboard)
			rewards.GET("/leaderboard", h.Rewards.Leaderboard)
			rewards.GET("/submissions", walletAuth.Required(), h.Rewards.MySubmissions)
		}

		api.GET("/events", h.Rewards.ListEvents)
		api.GET("/events/:slug", h.Rewards.GetEvent)
	}

	// 表单提交入口 (历史路径, 前台表单直接 POST)
	submit := r.Group("/rewards")
	{
		submit.POST("/apply", h.Rewards.Apply)
		submit.POST("/submit/link/:slug", walletAuth.Required(), h.Rewards.SubmitLink)
		submit.POST("/submit/visit/:slug", walletAuth.Required(), h.Rewards.SubmitVisit)
	}

	// 后台 API
	v1 := r.Group("/admin/v1")
	{
		auth := v1.Group("/auth")
		{
			auth.POST("/login", h.StaffAuth.Login)
		}

		authenticated := v1.Group("")
		authenticated.Use(staffAuth.Required())
		{
			authGroup := authenticated.Group("/auth")
			{
				authGroup.POST("/logout", h.StaffAuth.Logout)
				authGroup.GET("/profile", h.StaffAuth.Profile)
				authGroup.PUT("/password", h.StaffAuth.ChangePassword)
			}

			campaigns := authenticated.Group("/campaigns")
			{
				campaigns.GET("", middleware.RequirePermission(model.PermCampaignRead), h.CampaignAdmin.List)
				campaigns.GET("/:id", middleware.RequirePermission(model.PermCampaignRead), h.CampaignAdmin.Get)
				campaigns.POST("", middleware.RequirePermission(model.PermCampaignWrite), h.CampaignAdmin.Create)
				campaigns.PUT("/:id", middleware.RequirePermission(model.PermCampaignWrite), h.CampaignAdmin.Update)
				campaigns.DELETE("/:id", middleware.RequirePermission(model.PermCampaignWrite), h.CampaignAdmin.Delete)
				campaigns.PUT("/:id/publish", middleware.RequirePermission(model.PermCampaignWrite), h.CampaignAdmin.SetPublished)
				campaigns.PUT("/:id/pause", middleware.RequirePermission(model.PermCampaignWrite), h.CampaignAdmin.SetPaused)
			}

			submissions := authenticated.Group("/submissions")
			{
				submissions.GET("", middleware.RequirePermission(model.PermSubmissionRead), h.Review.ListSubmissions)
				submissions.GET("/:id", middleware.RequirePermission(model.PermSubmissionRead), h.Review.GetSubmission)
				submissions.PUT("/:id/approve", middleware.RequirePermission(model.PermSubmissionWrite), h.Review.Approve)
				submissions.PUT("/:id/reject", middleware.RequirePermission(model.PermSubmissionWrite), h.Review.Reject)
				submissions.POST("/:id/payout", middleware.RequirePermission(model.PermPayoutWrite), h.Review.RecordPayout)
			}

			authenticated.GET("/payouts", middleware.RequirePermission(model.PermPayoutRead), h.Review.ListPayouts)

			applications := authenticated.Group("/applications")
			{
				applications.GET("", middleware.RequirePermission(model.PermApplicationRead), h.Admin.ListApplications)
				applications.GET("/:id", middleware.RequirePermission(model.PermApplicationRead), h.Admin.GetApplication)
				applications.PUT("/:id/handled", middleware.RequirePermission(model.PermCampaignWrite), h.Admin.MarkApplicationHandled)
				applications.POST("/:id/campaign", middleware.RequirePermission(model.PermCampaignWrite), h.Admin.CreateCampaignFromApplication)
			}

			events := authenticated.Group("/events")
			{
				events.GET("", middleware.RequirePermission(model.PermCampaignRead), h.Admin.ListEvents)
				events.POST("", middleware.RequirePermission(model.PermCampaignWrite), h.Admin.CreateEvent)
				events.PUT("/:id", middleware.RequirePermission(model.PermCampaignWrite), h.Admin.UpdateEvent)
				events.DELETE("/:id", middleware.RequirePermission(model.PermCampaignWrite), h.Admin.DeleteEvent)
			}

			audits := authenticated.Group("/audits")
			audits.Use(middleware.RequirePermission(model.PermAuditRead))
			{
				audits.GET("", h.Admin.ListAuditLogs)
			}

			authenticated.GET("/dashboard", middleware.RequirePermission(model.PermSubmissionRead), h.Admin.Dashboard)
		}
	}
}
