package router

import (
	"catalog/config"
	"catalog/internal/auth"
	"catalog/internal/database"
	"catalog/internal/handler"
	"catalog/internal/logger"
	"catalog/internal/metrics"
	"catalog/internal/middleware"
	"catalog/internal/repository"
	"catalog/internal/service"
	"catalog/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Deps are the collaborators built at startup. Uploader and Alerter are
// optional; leave them nil (not a typed nil) to disable uploads or e-mail.
type Deps struct {
	Config         *config.Config
	DB             *database.Access
	Log            *zap.Logger
	Uploader       handler.Uploader
	Alerter        service.Alerter
	Verifier       auth.Verifier
	Hub            *ws.Hub
	EnquiryLimiter *middleware.InMemoryRateLimiter
}

func Setup(d Deps) *gin.Engine {
	cfg := d.Config
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	log := d.Log
	if log == nil {
		log = zap.NewNop()
	}
	if d.Verifier == nil {
		d.Verifier = auth.NewJWTVerifier(&cfg.JWT)
	}
	if d.Hub == nil {
		d.Hub = ws.NewHub()
	}
	if d.EnquiryLimiter == nil {
		d.EnquiryLimiter = middleware.NewInMemoryRateLimiter(cfg.RateLimit.EnquiryLimit, cfg.RateLimit.EnquiryWindow)
	}

	r := gin.New()
	if err := r.SetTrustedProxies(cfg.Server.TrustedProxies); err != nil {
		log.Error("invalid trusted proxies, trusting none", zap.Strings("proxies", cfg.Server.TrustedProxies), zap.Error(err))
		_ = r.SetTrustedProxies(nil)
	}
	r.Use(gin.Recovery(), middleware.RequestID(), logger.Middleware(log))
	if cfg.Metrics.Enabled {
		r.Use(metrics.Middleware())
		r.GET(cfg.Metrics.Path, gin.WrapH(promhttp.Handler()))
	}

	// Repositories: anonymous routes read through the public tier.
	publicRepos := repository.New(d.DB.Public)
	adminRepos := repository.New(d.DB.Admin)

	// Services
	notifSvc := service.NewNotificationService(adminRepos.Notifications, d.Hub)
	publicNavbars := service.NewNavbarCategoryService(publicRepos)
	publicCategories := service.NewCategoryService(publicRepos)
	publicSubs := service.NewSubCategoryService(publicRepos)
	publicProducts := service.NewProductService(publicRepos)
	publicEnquiries := service.NewEnquiryService(publicRepos, notifSvc, d.Alerter, log)

	adminNavbars := service.NewNavbarCategoryService(adminRepos)
	adminCategories := service.NewCategoryService(adminRepos)
	adminSubs := service.NewSubCategoryService(adminRepos)
	adminProducts := service.NewProductService(adminRepos)
	adminEnquiries := service.NewEnquiryService(adminRepos, nil, nil, log)

	// Handlers
	healthHandler := handler.NewHealthHandler(d.DB.Admin)
	publicNavbarHandler := handler.NewNavbarCategoryHandler(publicNavbars)
	publicCategoryHandler := handler.NewCategoryHandler(publicCategories, publicNavbars)
	publicSubHandler := handler.NewSubCategoryHandler(publicSubs, publicCategories)
	publicProductHandler := handler.NewProductHandler(publicProducts, publicCategories, publicSubs)
	publicEnquiryHandler := handler.NewEnquiryHandler(publicEnquiries)

	navbarHandler := handler.NewNavbarCategoryHandler(adminNavbars)
	categoryHandler := handler.NewCategoryHandler(adminCategories, adminNavbars)
	subHandler := handler.NewSubCategoryHandler(adminSubs, adminCategories)
	productHandler := handler.NewProductHandler(adminProducts, adminCategories, adminSubs)
	enquiryHandler := handler.NewEnquiryHandler(adminEnquiries)
	notificationHandler := handler.NewNotificationHandler(notifSvc)
	dashboardHandler := handler.NewDashboardHandler(service.NewDashboardService(adminRepos))
	uploadHandler := handler.NewUploadHandler(d.Uploader, cfg.Upload.Folder, cfg.Upload.MaxSizeBytes)
	authHandler := handler.NewAuthHandler(service.NewAuthService(cfg), cfg.IsProduction())

	adminMw := middleware.AdminRequired(d.Verifier)
	enquiryLimit := middleware.RateLimit(d.EnquiryLimiter)

	r.GET("/health", healthHandler.Health)

	api := r.Group("/api")
	{
		api.GET("/navbar-category", publicNavbarHandler.ListActive)
		api.GET("/category", publicCategoryHandler.ListActive)
		api.GET("/category/by-navbar/:slug", publicCategoryHandler.ByNavbar)
		api.GET("/subcategory", publicSubHandler.ListActive)
		api.GET("/subcategory/by-category/:slug", publicSubHandler.ByCategory)
		api.GET("/product", publicProductHandler.ListActive)
		api.GET("/product/by-slug/:slug", publicProductHandler.BySlug)
		api.GET("/product/by-category/:slug", publicProductHandler.ByCategory)
		api.GET("/product/by-subcategory/:slug", publicProductHandler.BySubCategory)
		api.POST("/contact-enquiry", enquiryLimit, publicEnquiryHandler.SubmitContact)
		api.POST("/product-enquiry", enquiryLimit, publicEnquiryHandler.SubmitProduct)

		api.POST("/admin/login", authHandler.Login)
		api.POST("/admin/logout", authHandler.Logout)

		admin := api.Group("/admin")
		admin.Use(adminMw)
		{
			admin.GET("/navbar-category", navbarHandler.List)
			admin.POST("/navbar-category", navbarHandler.Create)
			admin.GET("/navbar-category/:id", navbarHandler.Get)
			admin.PUT("/navbar-category/:id", navbarHandler.Update)
			admin.DELETE("/navbar-category/:id", navbarHandler.Delete)

			admin.GET("/category", categoryHandler.List)
			admin.POST("/category", categoryHandler.Create)
			admin.GET("/category/:id", categoryHandler.Get)
			admin.PUT("/category/:id", categoryHandler.Update)
			admin.DELETE("/category/:id", categoryHandler.Delete)

			admin.GET("/subcategory", subHandler.List)
			admin.POST("/subcategory", subHandler.Create)
			admin.GET("/subcategory/:id", subHandler.Get)
			admin.PUT("/subcategory/:id", subHandler.Update)
			admin.DELETE("/subcategory/:id", subHandler.Delete)

			admin.GET("/product", productHandler.List)
			admin.POST("/product", productHandler.Create)
			admin.GET("/product/:id", productHandler.Get)
			admin.PUT("/product/:id", productHandler.Update)
			admin.DELETE("/product/:id", productHandler.Delete)

			admin.GET("/contact-enquiry", enquiryHandler.ListContact)
			admin.GET("/contact-enquiry/:id", enquiryHandler.GetContact)
			admin.PUT("/contact-enquiry/:id", enquiryHandler.UpdateContact)
			admin.DELETE("/contact-enquiry/:id", enquiryHandler.DeleteContact)

			admin.GET("/product-enquiry", enquiryHandler.ListProduct)
			admin.GET("/product-enquiry/:id", enquiryHandler.GetProduct)
			admin.PUT("/product-enquiry/:id", enquiryHandler.UpdateProduct)
			admin.DELETE("/product-enquiry/:id", enquiryHandler.DeleteProduct)

			admin.GET("/notifications", notificationHandler.List)
			admin.POST("/notifications", notificationHandler.Create)
			admin.PUT("/notifications", notificationHandler.MarkAllRead)
			admin.DELETE("/notifications", notificationHandler.DeleteRead)
			admin.PUT("/notifications/:id/read", notificationHandler.MarkRead)

			admin.GET("/dashboard", dashboardHandler.Get)
			admin.POST("/upload", uploadHandler.UploadImage)
		}
	}

	r.GET("/ws/admin/notifications", ws.ServeAdminNotifications(d.Verifier, d.Hub, log))

	return r
}
