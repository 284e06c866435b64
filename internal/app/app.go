// Package app 组装并运行 HTTP 服务
package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/puzzlecollector/LinkPepper/internal/cache"
	"github.com/puzzlecollector/LinkPepper/internal/config"
	"github.com/puzzlecollector/LinkPepper/internal/handler"
	"github.com/puzzlecollector/LinkPepper/internal/middleware"
	"github.com/puzzlecollector/LinkPepper/internal/repository"
	"github.com/puzzlecollector/LinkPepper/internal/router"
	"github.com/puzzlecollector/LinkPepper/internal/service"
	"github.com/puzzlecollector/LinkPepper/pkg/logger"
)

// App 应用
type App struct {
	cfg         *config.Config
	db          *gorm.DB
	redisClient *redis.Client
	httpServer  *http.Server
	engine      *gin.Engine
}

// New 创建应用
func New(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) *App {
	return &App{
		cfg:         cfg,
		db:          db,
		redisClient: redisClient,
	}
}

// Init 初始化应用
func (a *App) Init() error {
	if a.cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	a.engine = gin.New()
	a.engine.Use(gin.Recovery())
	a.engine.Use(middleware.Logger())
	a.engine.Use(middleware.Metrics())
	a.engine.Use(middleware.CORS())

	repos := a.initRepositories()
	services := a.initServices(repos)
	handlers := a.initHandlers(services)

	walletAuth := middleware.NewWalletAuthMiddleware(services.Auth)
	staffAuth := middleware.NewStaffAuthMiddleware(services.StaffAuth)

	router.SetupRouter(a.engine, handlers, walletAuth, staffAuth)

	a.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", a.cfg.Server.Port),
		Handler:      a.engine,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	logger.Info("app initialized",
		zap.Int("port", a.cfg.Server.Port),
		zap.String("mode", a.cfg.Server.Mode))

	return nil
}

// repositories 存储层
type repositories struct {
	Base        *repository.Repository
	WalletUsers repository.WalletUserRepository
	Campaigns   repository.CampaignRepository
	Submissions repository.SubmissionRepository
	Payouts     repository.PayoutRepository
	Apps        repository.ApplicationRepository
	Events      repository.EventRepository
	Admins      repository.AdminRepository
	Audits      repository.AuditLogRepository
}

// initRepositories 初始化存储层
func (a *App) initRepositories() *repositories {
	return &repositories{
		Base:        repository.NewRepository(a.db),
		WalletUsers: repository.NewWalletUserRepository(a.db),
		Campaigns:   repository.NewCampaignRepository(a.db),
		Submissions: repository.NewSubmissionRepository(a.db),
		Payouts:     repository.NewPayoutRepository(a.db),
		Apps:        repository.NewApplicationRepository(a.db),
		Events:      repository.NewEventRepository(a.db),
		Admins:      repository.NewAdminRepository(a.db),
		Audits:      repository.NewAuditLogRepository(a.db),
	}
}

// services 服务层
type services struct {
	Auth       *service.AuthService
	Campaign   *service.CampaignService
	Submission *service.SubmissionService
	StaffAuth  *service.StaffAuthService
	Review     *service.ReviewService
	Admin      *service.AdminService
}

// initServices 初始化服务层
func (a *App) initServices(repos *repositories) *services {
	sessions := cache.NewSessionStore(a.redisClient,
		time.Duration(a.cfg.Auth.SessionTTLSec)*time.Second)

	return &services{
		Auth:       service.NewAuthService(repos.WalletUsers, sessions, &a.cfg.Auth),
		Campaign:   service.NewCampaignService(repos.Campaigns, repos.Submissions, repos.Events),
		Submission: service.NewSubmissionService(repos.Campaigns, repos.Submissions, repos.Apps, &a.cfg.Rewards),
		StaffAuth:  service.NewStaffAuthService(repos.Admins, repos.Audits, a.cfg.JWT.Secret, a.cfg.JWT.ExpireHours),
		Review:     service.NewReviewService(repos.Base, repos.Campaigns, repos.Submissions, repos.Payouts, repos.Audits),
		Admin:      service.NewAdminService(repos.Campaigns, repos.Submissions, repos.Events, repos.Apps, repos.Audits),
	}
}

// initHandlers 初始化处理器
func (a *App) initHandlers(svcs *services) *router.Handlers {
	return &router.Handlers{
		Auth:          handler.NewAuthHandler(svcs.Auth),
		Rewards:       handler.NewRewardsHandler(svcs.Campaign, svcs.Submission),
		StaffAuth:     handler.NewStaffAuthHandler(svcs.StaffAuth),
		CampaignAdmin: handler.NewCampaignAdminHandler(svcs.Admin),
		Review:        handler.NewReviewHandler(svcs.Review),
		Admin:         handler.NewAdminHandler(svcs.Admin),
	}
}

// Run 运行应用
func (a *App) Run() error {
	logger.Info("starting HTTP server", zap.String("addr", a.httpServer.Addr))
	return a.httpServer.ListenAndServe()
}

// Shutdown 关闭应用
func (a *App) Shutdown(ctx context.Context) error {
	logger.Info("shutting down HTTP server")
	return a.httpServer.Shutdown(ctx)
}

// Engine 获取 Gin 引擎 (用于测试)
func (a *App) Engine() *gin.Engine {
	return a.engine
}
