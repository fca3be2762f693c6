package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"roomledger/internal/config"
	"roomledger/internal/database"
	"roomledger/internal/middleware"
	"roomledger/internal/modules/auth"
	"roomledger/internal/modules/catalog"
	"roomledger/internal/modules/events"
	"roomledger/internal/modules/reservation"
	jwtsvc "roomledger/internal/pkg/jwt"
	"roomledger/internal/pkg/ledger"
	"roomledger/internal/pkg/logger"
	"roomledger/internal/pkg/timeout"
	"roomledger/internal/repository"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	zlog := logger.Init(cfg.AppEnv)
	defer func() { _ = zlog.Sync() }()

	db, err := database.Connect(cfg.DatabaseDSN)
	if err != nil {
		zlog.Fatal("database connect failed", zap.Error(err))
	}
	if err := repository.AutoMigrate(db); err != nil {
		zlog.Fatal("migration failed", zap.Error(err))
	}

	userRepo := repository.NewUserRepository(db)
	roomRepo := repository.NewRoomRepository(db)
	orderRepo := repository.NewOrderRepository(db)

	ledgerClient, err := ledger.NewHTTPClient(cfg.LedgerBaseURL, cfg.LedgerAPIToken)
	if err != nil {
		zlog.Fatal("ledger client init failed", zap.Error(err))
	}

	j := jwtsvc.New(cfg.JWTSecret, cfg.JWTAccessTTL)

	hub := events.NewHub(zlog)
	defer hub.Close()

	authService := auth.NewService(userRepo, j)
	authHandler := auth.NewHandler(authService)

	catalogService := catalog.NewService(roomRepo)
	catalogHandler := catalog.NewHandler(catalogService)

	reservationService := reservation.NewService(
		roomRepo,
		orderRepo,
		ledgerClient,
		timeout.NewTimerScheduler(),
		reservation.Config{
			HoldingFee:     cfg.HoldingFee,
			NightDuration:  cfg.NightDuration,
			GracePeriod:    cfg.GracePeriod,
			ServiceAddress: cfg.LedgerServiceAddress,
		},
		zlog,
		reservation.WithEventSink(hub),
	)
	reservationHandler := reservation.NewHandler(reservationService)

	eventsHandler := events.NewHandler(hub, zlog)

	if config.IsProdLike(cfg.AppEnv) {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(middleware.RequestLogger(zlog))
	r.Use(middleware.CORS())

	v1 := r.Group("/api/v1")
	{
		authHandler.RegisterRoutes(v1)
		catalogHandler.RegisterPublicRoutes(v1)
		reservationHandler.RegisterPublicRoutes(v1)

		protected := v1.Group("/")
		protected.Use(middleware.JWTAuth(j))
		{
			authHandler.RegisterProtectedRoutes(protected)
			catalogHandler.RegisterRoutes(protected)
			reservationHandler.RegisterRoutes(protected)
			eventsHandler.RegisterRoutes(protected)
		}
	}

	zlog.Info("listening", zap.String("addr", cfg.ListenAddr))
	if err := r.Run(cfg.ListenAddr); err != nil {
		zlog.Fatal("server stopped", zap.Error(err))
	}
}
