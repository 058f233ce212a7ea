// router.go
package main

import (
	"context"
	"io/fs"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"fest-registration/config"
	"fest-registration/controllers"
	"fest-registration/database"
	"fest-registration/logger"
	"fest-registration/metrics"
	"fest-registration/middleware"
	"fest-registration/notify"
	"fest-registration/services"
	"fest-registration/websocket"
)

// app holds everything the router needs.
type app struct {
	cfg        *config.Config
	db         *database.DB
	store      sessions.Store
	hub        *websocket.Hub
	notifier   notify.Publisher
	recorder   metrics.Recorder
	prometheus *metrics.Prometheus
	pages      fs.FS
}

// securityHeaders keeps the pages out of frames and stops MIME sniffing.
func securityHeaders(c *gin.Context) {
	c.Header("X-Frame-Options", "DENY")
	c.Header("X-Content-Type-Options", "nosniff")
	c.Next()
}

func newRouter(a *app) *gin.Engine {
	cfg := a.cfg
	if a.recorder == nil {
		a.recorder = metrics.Nop{}
	}
	if a.notifier == nil {
		a.notifier = notify.Nop{}
	}
	router := gin.New()
	if err := router.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		logger.Warn.Printf("Ignoring TRUSTED_PROXIES: %v", err)
		_ = router.SetTrustedProxies(nil)
	}
	router.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.RequestLogger(),
		middleware.Metrics(a.recorder),
		securityHeaders,
		sessions.Sessions(cfg.Session.Name, a.store),
	)

	deps := controllers.Deps{Notifier: a.notifier, Metrics: a.recorder}
	users := services.NewUserService(a.db)
	events := services.NewEventService(a.db)
	auth := services.NewAuthService(services.NewAdminService(a.db))

	registrationController := controllers.NewRegistrationController(users, deps)
	authController := controllers.NewAuthController(auth, deps)
	adminController := controllers.NewAdminController(users, deps)
	eventController := controllers.NewEventController(events, cfg.AppURL, deps)
	pageController := controllers.NewPageController(a.pages, func(ctx context.Context) error {
		return a.db.Probe(ctx, 2*time.Second)
	})
	limiter := middleware.NewLoginLimiter(cfg.Login.RatePerMinute, cfg.Login.Burst)
	ttl := cfg.Session.TTL

	// health and metrics
	router.GET("/health", controllers.Health)
	router.GET("/ready", pageController.Readiness)
	if a.prometheus != nil {
		router.GET("/metrics", gin.WrapH(a.prometheus.Handler()))
	}

	// public routes
	router.GET("/", pageController.Index)
	router.GET("/admin", pageController.AdminPage)
	router.POST("/register", registrationController.Register)
	router.GET("/events", eventController.PublicEvents)
	router.GET("/events/:id/qrcode", eventController.QRCode)
	router.POST("/admin/login", limiter.Handler(a.recorder), authController.Login)
	router.POST("/admin/logout", authController.Logout)
	router.GET("/admin/logout", authController.Logout)
	router.GET("/dashboard.html", middleware.PageAuthRequired(ttl), pageController.Dashboard)

	// admin routes
	admin := router.Group("/admin", middleware.AdminRequired(ttl))
	{
		admin.GET("/session", authController.Session)
		admin.GET("/users", adminController.ListUsers)
		admin.POST("/delete-user", adminController.DeleteUser)
		admin.DELETE("/users/:id", adminController.DeleteUserByID)
		admin.GET("/events", eventController.ListEvents)
		admin.POST("/add-event", eventController.AddEvent)
		admin.POST("/delete-event", eventController.DeleteEvent)
		admin.DELETE("/events/:id", eventController.DeleteEventByID)
		admin.GET("/live", controllers.LiveFeed(a.hub))
	}

	// everything else is a static page or 404
	router.NoRoute(pageController.Static)
	return router
}
