package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "taxcredit/api/swagger" // swagger docs
	"taxcredit/internal/config"
	"taxcredit/internal/database"
	"taxcredit/internal/handler"
	"taxcredit/internal/middleware"
	"taxcredit/internal/platform/logger"
	"taxcredit/internal/repository"
	"taxcredit/internal/service"
	"taxcredit/internal/websocket"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title           Tax Credit Assessment API
// @version         1.0
// @description     Evaluates Korean statutory tax-credit rules for registered companies and tax years.
// @host            localhost:8080
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, envLoaded := config.Load()

	log, err := logger.New(cfg.Env)
	if err != nil {
		panic("failed to build logger: " + err.Error())
	}
	defer log.Sync()

	if !envLoaded {
		log.Info("no configs/.env file found, using environment only")
	}

	db, err := database.NewConnection(cfg.DSN(), log)
	if err != nil {
		log.Fatal("database connection failed", "error", err)
	}
	log.Info("connected to postgres", "host", cfg.DBHost, "db", cfg.DBName)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	wsHub := websocket.NewHub(log)
	go wsHub.Run(ctx)

	// Repository -> Service -> Handler
	txManager := repository.NewTransactionManager(db)
	companyRepo := repository.NewCompanyRepository(db)
	inputRepo := repository.NewInputRepository(db)
	ruleRepo := repository.NewCreditRuleRepository(db)
	assessmentRepo := repository.NewAssessmentRepository(db)
	auditRepo := repository.NewAuditRepository(db)
	statisticsRepo := repository.NewStatisticsRepository(db)

	ruleService := service.NewRuleService(ruleRepo, auditRepo, txManager)
	catalog, err := ruleService.SyncCatalog(ctx)
	if err != nil {
		log.Fatal("failed to sync rule catalog", "error", err)
	}
	log.Info("rule catalog synced", "rules", len(catalog))

	companyService := service.NewCompanyService(companyRepo, auditRepo, txManager)
	inputService := service.NewInputService(companyRepo, inputRepo, auditRepo, txManager)
	assessmentService := service.NewAssessmentService(
		catalog, companyRepo, inputRepo, assessmentRepo, auditRepo, txManager,
		wsHub, log, cfg.BatchConcurrency,
	)
	auditService := service.NewAuditService(auditRepo)
	statisticsService := service.NewStatisticsService(statisticsRepo)

	router := gin.Default()

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = cfg.CORSOrigins
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept"}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "OPTIONS"}
	router.Use(cors.New(corsConfig))

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "OK", "rules": len(catalog)})
	})

	router.GET("/ws", func(c *gin.Context) {
		websocket.ServeWs(wsHub, c, middleware.GetJWTSecret())
	})

	api := router.Group("")
	handler.NewRuleHandler(ruleService).RegisterRoutes(api)
	handler.NewCompanyHandler(companyService).RegisterRoutes(api)
	handler.NewInputHandler(inputService).RegisterRoutes(api)
	handler.NewAssessmentHandler(assessmentService).RegisterRoutes(api)
	handler.NewAuditHandler(auditService).RegisterRoutes(api)
	handler.NewStatisticsHandler(statisticsService).RegisterRoutes(api)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("server listening", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
	}
}
