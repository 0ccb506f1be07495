package router

import (
	"time"

	"boskoback/internal/config"
	"boskoback/internal/handler"
	"boskoback/internal/infra"
	"boskoback/internal/middleware"
	"boskoback/internal/model"
	"boskoback/internal/repository"
	"boskoback/internal/service"
	"boskoback/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, google *infra.GoogleVerifier) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.Metrics())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Infrastructure ───────────────────────────────────────────────────────
	dispatcher := worker.NewDispatcher(rdb)
	cache := service.NewCatalogCache(rdb)

	// ── Repositories ─────────────────────────────────────────────────────────
	userRepo := repository.NewUserRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	productRepo := repository.NewProductRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	addressRepo := repository.NewAddressRepository(db)
	resetRepo := repository.NewPasswordResetRepository(db)
	activityRepo := repository.NewActivityRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	wishlistRepo := repository.NewWishlistRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	activitySvc := service.NewActivityService(activityRepo)
	authSvc := service.NewAuthService(userRepo, resetRepo, google, dispatcher, activitySvc, cfg)
	categorySvc := service.NewCategoryService(categoryRepo, cache)
	productSvc := service.NewProductService(productRepo, categoryRepo, cache)
	orderSvc := service.NewOrderService(orderRepo, productRepo, userRepo, activitySvc, dispatcher, cfg)
	accountSvc := service.NewAccountService(userRepo, orderRepo, activitySvc, cfg)
	addressSvc := service.NewAddressService(addressRepo)
	reviewSvc := service.NewReviewService(reviewRepo, productRepo)
	wishlistSvc := service.NewWishlistService(wishlistRepo, productRepo)
	userSvc := service.NewUserService(userRepo)
	reportSvc := service.NewReportService(orderRepo, userRepo, productRepo)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	categoriesH := handler.NewCategoriesHandler(categorySvc)
	productsH := handler.NewProductsHandler(productSvc)
	ordersH := handler.NewOrdersHandler(orderSvc)
	accountH := handler.NewAccountHandler(accountSvc)
	addressesH := handler.NewAddressesHandler(addressSvc)
	reviewsH := handler.NewReviewsHandler(reviewSvc)
	wishlistH := handler.NewWishlistHandler(wishlistSvc)
	usersH := handler.NewUsersHandler(userSvc)
	reportsH := handler.NewReportsHandler(reportSvc, activitySvc)
	notificationsH := handler.NewNotificationsHandler(activitySvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Ops surface
	r.GET("/health", handler.Health(db, rdb, google))
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.Static("/uploads", cfg.UploadDir)

	// Auth (public)
	auth := r.Group("/api/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
		auth.POST("/register", authH.Register)
		auth.POST("/google", middleware.LoginRateLimiter(), authH.GoogleLogin)
		auth.POST("/forgot-password", middleware.LoginRateLimiter(), authH.ForgotPassword)
		auth.POST("/reset-password", authH.ResetPassword)
	}

	// Public catalog
	r.GET("/api/categories", categoriesH.List)
	r.GET("/api/categories/:id", categoriesH.Get)
	r.GET("/api/products", productsH.List)
	r.GET("/api/products/:id", productsH.Get)
	r.GET("/api/products/:id/reviews", reviewsH.ListForProduct)

	// Authenticated routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	api := r.Group("/api", jwtMW)
	{
		account := api.Group("/account")
		{
			account.GET("/profile", accountH.Profile)
			account.PUT("/profile", accountH.UpdateProfile)
			account.PUT("/password", accountH.ChangePassword)
			account.GET("/preferences", accountH.Preferences)
			account.PUT("/preferences", accountH.UpdatePreferences)
			account.POST("/avatar", accountH.UploadAvatar)
		}
		api.DELETE("/account", accountH.Deactivate)

		addresses := api.Group("/addresses")
		{
			addresses.GET("", addressesH.List)
			addresses.POST("", addressesH.Create)
			addresses.PUT("/:id", addressesH.Update)
			addresses.DELETE("/:id", addressesH.Delete)
			addresses.PUT("/:id/default", addressesH.SetDefault)
		}

		orders := api.Group("/orders")
		{
			orders.GET("", ordersH.List)
			orders.POST("", ordersH.Create)
			orders.GET("/:id", ordersH.Get)
			orders.PUT("/:id", ordersH.Edit)
			orders.POST("/:id/cancel", ordersH.Cancel)
		}

		wishlist := api.Group("/wishlist")
		{
			wishlist.GET("", wishlistH.List)
			wishlist.POST("/:productId", wishlistH.Add)
			wishlist.DELETE("/:productId", wishlistH.Remove)
		}

		api.POST("/products/:id/reviews", reviewsH.Create)
		api.DELETE("/reviews/:id", reviewsH.Delete)

		api.GET("/notifications", notificationsH.List)
		api.PUT("/notifications/:id/read", notificationsH.MarkRead)
	}

	// Admin namespace — employees manage the catalog and orders, admins
	// additionally manage accounts and destructive operations.
	staff := middleware.RequireRole(model.RoleAdmin, model.RoleEmployee)
	adminOnly := middleware.RequireRole(model.RoleAdmin)
	admin := r.Group("/api/admin", jwtMW)
	{
		admin.POST("/categories", staff, categoriesH.Create)
		admin.PUT("/categories/:id", staff, categoriesH.Update)
		admin.DELETE("/categories/:id", adminOnly, categoriesH.Delete)

		admin.POST("/products", staff, productsH.Create)
		admin.PUT("/products/:id", staff, productsH.Update)
		admin.DELETE("/products/:id", adminOnly, productsH.Delete)

		admin.GET("/orders", staff, ordersH.AdminList)
		admin.PUT("/orders/:id/status", staff, ordersH.UpdateStatus)
		admin.POST("/orders/:id/cancel", staff, ordersH.AdminCancel)
		admin.GET("/orders/:id/invoice", staff, ordersH.Invoice)

		users := admin.Group("/users", adminOnly)
		{
			users.GET("", usersH.List)
			users.POST("", usersH.Create)
			users.PUT("/:id", usersH.Update)
			users.DELETE("/:id", usersH.Delete)
		}

		admin.GET("/stats", staff, reportsH.Stats)
		admin.GET("/charts/orders", staff, reportsH.OrdersChart)
		admin.GET("/activity", adminOnly, reportsH.Activity)
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
