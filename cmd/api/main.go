package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/smiledesk/dental-api/internal/authz"
	"github.com/smiledesk/dental-api/internal/config"
	accounthandler "github.com/smiledesk/dental-api/internal/handler/account"
	appointmenthandler "github.com/smiledesk/dental-api/internal/handler/appointment"
	authhandler "github.com/smiledesk/dental-api/internal/handler/auth"
	patienthandler "github.com/smiledesk/dental-api/internal/handler/patient"
	treatmenthandler "github.com/smiledesk/dental-api/internal/handler/treatment"
	"github.com/smiledesk/dental-api/internal/middleware"
	"github.com/smiledesk/dental-api/internal/repository/postgres"
	"github.com/smiledesk/dental-api/internal/router"
	accountservice "github.com/smiledesk/dental-api/internal/service/account"
	appointmentservice "github.com/smiledesk/dental-api/internal/service/appointment"
	authservice "github.com/smiledesk/dental-api/internal/service/auth"
	notificationservice "github.com/smiledesk/dental-api/internal/service/notification"
	patientservice "github.com/smiledesk/dental-api/internal/service/patient"
	treatmentservice "github.com/smiledesk/dental-api/internal/service/treatment"
	"github.com/smiledesk/dental-api/pkg/auth"
	"github.com/smiledesk/dental-api/pkg/logger"
	"github.com/smiledesk/dental-api/pkg/messaging/redis"
	"github.com/smiledesk/dental-api/pkg/metrics"
	"github.com/smiledesk/dental-api/pkg/security"
)

func main() {
	appLog := logger.NewLogger(nil)

	cfg, err := config.LoadConfig()
	if err != nil {
		appLog.Fatal(err, "failed to load configuration")
	}

	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		appLog.Fatal(err, "failed to connect to database")
	}
	defer db.Close()

	m := metrics.NewMetrics("smiledesk", "api")

	broker, err := redis.NewRedisBroker(redis.Config{
		URL:          cfg.Redis.URL,
		PoolSize:     cfg.Redis.PoolSize,
		MinIdleConns: cfg.Redis.MinIdleConns,
	}, appLog.Zerolog())
	if err != nil {
		appLog.Fatal(err, "failed to connect to Redis")
	}
	defer broker.Close()

	userRepo := postgres.NewUserRepository(db)
	patientRepo := postgres.NewPatientRepository(db)
	appointmentRepo := postgres.NewAppointmentRepository(db)
	treatmentRepo := postgres.NewTreatmentRepository(db)

	jwtSvc := auth.NewJWTService(auth.Config{
		Secret:        cfg.JWT.Secret,
		RefreshSecret: cfg.JWT.RefreshSecret,
		Expiry:        cfg.JWT.Expiry(),
		RefreshExpiry: cfg.JWT.RefreshExpiry(),
	})
	hasher := security.NewBcryptHasher(0)

	notifier := notificationservice.NewService(broker, cfg.Email, m, appLog.Zerolog())
	authSvc := authservice.NewService(userRepo, jwtSvc, hasher)
	accountSvc := accountservice.NewService(userRepo)
	patientSvc := patientservice.NewService(patientRepo)
	appointmentSvc := appointmentservice.NewService(appointmentRepo, notifier)
	treatmentSvc := treatmentservice.NewService(treatmentRepo)

	resolver := authz.NewResolver(nil)
	authMiddleware := middleware.NewAuthMiddleware(authSvc, resolver).WithMetrics(m)

	go func() {
		for range time.Tick(15 * time.Second) {
			m.DatabaseConnections.Set(float64(db.Stats().OpenConnections))
		}
	}()

	r := router.NewRouter(
		authMiddleware,
		authhandler.NewHandler(authSvc),
		accounthandler.NewHandler(accountSvc),
		patienthandler.NewHandler(patientSvc),
		appointmenthandler.NewHandler(appointmentSvc),
		treatmenthandler.NewHandler(treatmentSvc),
		router.Config{
			RateLimitRPS:   float64(cfg.Server.RateLimitRPS),
			RateLimitBurst: cfg.Server.RateLimitBurst,
			Timeout:        time.Duration(cfg.Server.TimeoutSeconds) * time.Second,
			CORSConfig:     middleware.DefaultCORSConfig(),
			MetricsPrefix:  "smiledesk_api",
		},
	)
	r.Setup()

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: r.Engine(),
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLog.Fatal(err, "failed to start server")
		}
	}()
	appLog.Info("server started", "port", cfg.Server.Port)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLog.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		appLog.Fatal(err, "server forced to shutdown")
	}

	appLog.Info("server exited properly")
}
