package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	complaintapp "github.com/shakwa/backend/internal/application/complaint"
	identityapp "github.com/shakwa/backend/internal/application/identity"
	"github.com/shakwa/backend/internal/infrastructure/auth"
	"github.com/shakwa/backend/internal/infrastructure/config"
	"github.com/shakwa/backend/internal/infrastructure/logger"
	"github.com/shakwa/backend/internal/infrastructure/persistence"
	"github.com/shakwa/backend/internal/interfaces/http/handler"
	"github.com/shakwa/backend/internal/interfaces/http/middleware"
	"github.com/shakwa/backend/internal/interfaces/http/router"
	"go.uber.org/zap"
	gormlogger "gorm.io/gorm/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting Shakwa Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Initialize database connection
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLogLevel(cfg.Log.Level))
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	// Redis-backed token blacklist for logout and token rotation
	blacklist, err := auth.NewRedisTokenBlacklist(cfg.Redis)
	if err != nil {
		log.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer func() {
		if err := blacklist.Close(); err != nil {
			log.Error("Error closing Redis client", zap.Error(err))
		}
	}()
	log.Info("Redis connected successfully")

	// JWT service
	jwtService := auth.NewJWTService(cfg.JWT)

	// Repositories
	citizenRepo := persistence.NewGormCitizenRepository(db.DB)
	employeeRepo := persistence.NewGormEmployeeRepository(db.DB)
	roleRepo := persistence.NewGormRoleRepository(db.DB)
	complaintRepo := persistence.NewGormComplaintRepository(db.DB, cfg.ComplaintLock.WaitTimeout)
	txManager := persistence.NewGormTxManager(db.DB)

	// Application services
	authService := identityapp.NewAuthService(citizenRepo, employeeRepo, roleRepo, jwtService, blacklist, log)
	employeeService := identityapp.NewEmployeeService(employeeRepo, roleRepo, log)
	complaintService := complaintapp.NewService(complaintRepo, txManager)

	// HTTP handlers
	authHandler := handler.NewAuthHandler(authService)
	employeeHandler := handler.NewEmployeeHandler(employeeService)
	complaintHandler := handler.NewComplaintHandler(complaintService)
	systemHandler := handler.NewSystemHandler()

	// Gin engine
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Fatal("Invalid trusted proxies configuration", zap.Error(err))
		}
	}

	// Register the catalog enum validators used by the request DTOs
	middleware.SetupValidator()

	// Middleware order: request ID first so every later log line carries it
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())
	engine.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	// Health check endpoint (outside API versioning)
	engine.GET("/health", healthHandler(db))

	// Versioned API routes behind JWT authentication
	r := router.NewRouter(engine, router.WithAPIVersion("v1"))
	r.Use(middleware.JWTAuthMiddlewareWithConfig(middleware.JWTMiddlewareConfig{
		JWTService:     jwtService,
		TokenBlacklist: blacklist,
		SkipPaths: []string{
			"/api/v1/auth/register",
			"/api/v1/auth/login",
			"/api/v1/auth/refresh",
		},
		Logger: log,
	}))

	authRoutes := router.NewDomainGroup("auth", "/auth")
	authRoutes.POST("/register", authHandler.Register)
	authRoutes.POST("/login", authHandler.Login)
	authRoutes.POST("/refresh", authHandler.Refresh)
	authRoutes.POST("/logout", authHandler.Logout)

	complaintRoutes := router.NewDomainGroup("complaints", "/complaints")
	complaintRoutes.POST("", complaintHandler.Create)
	complaintRoutes.GET("", complaintHandler.List)
	complaintRoutes.GET("/filter", complaintHandler.Filter)
	complaintRoutes.GET("/stats/count", complaintHandler.CountByStatus)
	complaintRoutes.GET("/citizen/:citizenId", complaintHandler.ListByCitizen)
	complaintRoutes.GET("/status/:status", complaintHandler.ListByStatus)
	complaintRoutes.GET("/type/:complaintType", complaintHandler.ListByType)
	complaintRoutes.GET("/governorate/:governorate", complaintHandler.ListByGovernorate)
	complaintRoutes.GET("/:id", complaintHandler.GetByID)
	complaintRoutes.PUT("/:id", complaintHandler.Update)
	complaintRoutes.PUT("/:id/respond", complaintHandler.Respond)
	complaintRoutes.DELETE("/:id", complaintHandler.Delete)

	employeeRoutes := router.NewDomainGroup("employees", "/employees")
	employeeRoutes.POST("", employeeHandler.Create)
	employeeRoutes.GET("", employeeHandler.List)
	employeeRoutes.GET("/:id", employeeHandler.GetByID)
	employeeRoutes.PUT("/:id", employeeHandler.Update)
	employeeRoutes.DELETE("/:id", employeeHandler.Delete)

	systemRoutes := router.NewDomainGroup("system", "/system")
	systemRoutes.GET("/info", systemHandler.GetSystemInfo)
	systemRoutes.GET("/ping", systemHandler.Ping)

	r.Register(authRoutes).
		Register(complaintRoutes).
		Register(employeeRoutes).
		Register(systemRoutes)
	r.Setup()

	// HTTP server with config-driven timeouts
	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

// gormLogLevel maps the application log level onto GORM's logger levels
func gormLogLevel(level string) gormlogger.LogLevel {
	switch level {
	case "debug":
		return gormlogger.Info
	case "warn", "warning":
		return gormlogger.Warn
	case "error":
		return gormlogger.Error
	default:
		return gormlogger.Silent
	}
}

// healthHandler returns a handler for health check endpoints
func healthHandler(db *persistence.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		reqLog := logger.GetGinLogger(c)
		if err := db.Ping(); err != nil {
			reqLog.Warn("Health check failed", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "unhealthy",
				"time":     time.Now().Format(time.RFC3339),
				"database": "error",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":   "healthy",
			"time":     time.Now().Format(time.RFC3339),
			"database": "ok",
		})
	}
}
