package router

import (
	"time"

	"heartchain/config"
	"heartchain/internal/domain"
	"heartchain/internal/handler"
	"heartchain/internal/middleware"
	"heartchain/internal/queue"
	"heartchain/internal/repository"
	"heartchain/internal/service"
	"heartchain/pkg/cloudinary"
	"heartchain/pkg/payment"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

func Setup(cfg *config.Config, db *gorm.DB, rdb *redis.Client, cloud cloudinary.Client, publisher *queue.Publisher) *gin.Engine {
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.RateLimit(middleware.NewInMemoryRateLimiter(100, 60*time.Second)))

	// Repositories
	userRepo := repository.NewUserRepository(db)
	orphRepo := repository.NewOrphanageRepository(db)
	campaignRepo := repository.NewCampaignRepository(db)
	donationRepo := repository.NewDonationRepository(db)
	reportRepo := repository.NewReportRepository(db)
	txnRepo := repository.NewTransactionRepository(db)

	// Payment gateway: real Razorpay when keys are set, local HMAC
	// simulation otherwise. Both verify the same signature scheme.
	var gateway payment.Gateway
	if cfg.Razorpay.KeyID != "" {
		gateway = payment.NewRazorpayGateway(cfg.Razorpay.KeyID, cfg.Razorpay.KeySecret)
	} else {
		gateway = payment.NewSimulatedGateway(cfg.Razorpay.KeySecret)
	}

	// Services
	balanceSvc := service.NewBalanceService(db, rdb, cfg.Redis.CacheTTL)
	authSvc := service.NewAuthService(cfg, db, userRepo, orphRepo)
	orphSvc := service.NewOrphanageService(orphRepo)
	campaignSvc := service.NewCampaignService(campaignRepo, orphRepo)
	donationSvc := service.NewDonationService(db, donationRepo, campaignRepo, orphRepo, gateway, balanceSvc, publisher)
	reportSvc := service.NewReportService(reportRepo, campaignRepo, orphRepo)
	disbSvc := service.NewDisbursementService(db, campaignRepo, reportRepo, txnRepo, balanceSvc)
	summarySvc := service.NewSummaryService(orphRepo, campaignRepo, donationRepo, reportRepo, balanceSvc)

	// Handlers
	authHandler := handler.NewAuthHandler(authSvc)
	orphHandler := handler.NewOrphanageHandler(orphRepo, orphSvc, summarySvc, disbSvc)
	campaignHandler := handler.NewCampaignHandler(campaignRepo, campaignSvc)
	donationHandler := handler.NewDonationHandler(donationSvc, authSvc)
	reportHandler := handler.NewReportHandler(reportRepo, reportSvc)
	adminHandler := handler.NewAdminHandler(orphRepo, campaignRepo, donationRepo, reportRepo, orphSvc, campaignSvc, disbSvc)
	uploadHandler := handler.NewUploadHandler(cloud)
	webhookHandler := handler.NewPaymentWebhookHandler(donationSvc, &cfg.Razorpay)

	authMw := middleware.AuthRequired(&cfg.JWT)
	optAuthMw := middleware.OptionalAuth(&cfg.JWT)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := r.Group("/api/v1")
	{
		authGroup := api.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/register-orphanage", authHandler.RegisterOrphanage)
			authGroup.POST("/login", authHandler.Login)
			authGroup.GET("/me", authMw, authHandler.Me)
			authGroup.POST("/change-password", authMw, authHandler.ChangePassword)
			authGroup.POST("/refresh", authMw, authHandler.RefreshToken)
		}

		orphanages := api.Group("/orphanages")
		{
			orphanages.GET("", optAuthMw, orphHandler.List)
			orphanages.GET("/my", authMw, middleware.RequireRole(domain.RoleOrphanage), orphHandler.My)
			orphanages.GET("/my/summary", authMw, middleware.RequireRole(domain.RoleOrphanage), orphHandler.Summary)
			orphanages.GET("/my/payouts", authMw, middleware.RequireRole(domain.RoleOrphanage), orphHandler.Payouts)
			orphanages.GET("/:id", orphHandler.Get)
			orphanages.PUT("/:id", authMw, middleware.RequireRole(domain.RoleOrphanage), orphHandler.Update)
		}

		campaigns := api.Group("/campaigns")
		{
			campaigns.GET("", optAuthMw, campaignHandler.List)
			campaigns.GET("/public/active", campaignHandler.ListPublicActive)
			campaigns.GET("/my", authMw, middleware.RequireRole(domain.RoleOrphanage), campaignHandler.My)
			campaigns.GET("/:id", campaignHandler.Get)
			campaigns.POST("", authMw, middleware.RequireRole(domain.RoleOrphanage), campaignHandler.Create)
			campaigns.PUT("/:id", authMw, middleware.RequireRole(domain.RoleOrphanage), campaignHandler.Update)
			campaigns.DELETE("/:id", authMw, middleware.RequireRole(domain.RoleOrphanage, domain.RoleAdmin), campaignHandler.Delete)
		}

		// Gateway callback authenticates by body signature, not by JWT.
		api.POST("/donations/webhook", webhookHandler.Handle)

		donations := api.Group("/donations")
		donations.Use(authMw)
		{
			donations.POST("/create-order", donationHandler.CreateOrder)
			donations.POST("/verify-payment", donationHandler.VerifyPayment)
			donations.GET("/my-donations", donationHandler.MyDonations)
			donations.GET("/:id", donationHandler.Get)
		}

		reports := api.Group("/reports")
		{
			reports.GET("/public/recent", reportHandler.RecentVerified)
			reports.GET("/campaign/:id", reportHandler.ByCampaign)
			reports.POST("", authMw, middleware.RequireRole(domain.RoleOrphanage), reportHandler.Submit)
			reports.GET("", authMw, middleware.RequireRole(domain.RoleOrphanage, domain.RoleAdmin), reportHandler.List)
			reports.GET("/:id", authMw, reportHandler.Get)
			reports.POST("/:id/verify", authMw, middleware.AdminRequired(), reportHandler.Verify)
		}

		admin := api.Group("/admin")
		admin.Use(authMw, middleware.AdminRequired())
		{
			admin.POST("/orphanages/:id/verify", adminHandler.VerifyOrphanage)
			admin.POST("/campaigns/:id/approve", adminHandler.ApproveCampaign)
			admin.POST("/campaigns/:id/disburse", adminHandler.Disburse)
			admin.GET("/pending-verifications", adminHandler.PendingVerifications)
			admin.GET("/dashboard", adminHandler.Dashboard)
		}

		api.POST("/uploads/image", authMw, uploadHandler.UploadImage)
	}

	return r
}
