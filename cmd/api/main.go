package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"golang.org/x/time/rate"

	"github.com/Marxcruz/hospital-api/internal/config"
	"github.com/Marxcruz/hospital-api/internal/email"
	appointmentHandler "github.com/Marxcruz/hospital-api/internal/handler/appointment"
	assistantHandler "github.com/Marxcruz/hospital-api/internal/handler/assistant"
	chatHandler "github.com/Marxcruz/hospital-api/internal/handler/chat"
	healthHandler "github.com/Marxcruz/hospital-api/internal/handler/health"
	messageHandler "github.com/Marxcruz/hospital-api/internal/handler/message"
	recordHandler "github.com/Marxcruz/hospital-api/internal/handler/record"
	userHandler "github.com/Marxcruz/hospital-api/internal/handler/user"
	"github.com/Marxcruz/hospital-api/internal/middleware"
	"github.com/Marxcruz/hospital-api/internal/repository/postgres"
	"github.com/Marxcruz/hospital-api/internal/router"
	appointmentService "github.com/Marxcruz/hospital-api/internal/service/appointment"
	assistantService "github.com/Marxcruz/hospital-api/internal/service/assistant"
	authService "github.com/Marxcruz/hospital-api/internal/service/auth"
	chatService "github.com/Marxcruz/hospital-api/internal/service/chat"
	messageService "github.com/Marxcruz/hospital-api/internal/service/message"
	recordService "github.com/Marxcruz/hospital-api/internal/service/record"
	userService "github.com/Marxcruz/hospital-api/internal/service/user"
	"github.com/Marxcruz/hospital-api/internal/storage"
	"github.com/Marxcruz/hospital-api/internal/ws"
	"github.com/Marxcruz/hospital-api/pkg/auth"
	"github.com/Marxcruz/hospital-api/pkg/logger"
	"github.com/Marxcruz/hospital-api/pkg/messaging"
	redisbroker "github.com/Marxcruz/hospital-api/pkg/messaging/redis"
	"github.com/Marxcruz/hospital-api/pkg/metrics"
	"github.com/Marxcruz/hospital-api/pkg/security"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(&logger.Config{
		Level:      parseLevel(cfg.Log.Level),
		TimeFormat: time.RFC3339,
		Output:     os.Stdout,
		Pretty:     cfg.Log.Pretty,
	})

	db, err := postgres.NewDB(cfg.Database.URL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	base := postgres.NewBaseRepository(db)
	userRepo := postgres.NewUserRepository(base)
	appointmentRepo := postgres.NewAppointmentRepository(base)
	messageRepo := postgres.NewMessageRepository(base)
	noteRepo := postgres.NewClinicalNoteRepository(base)
	prescriptionRepo := postgres.NewPrescriptionRepository(base)
	chatRepo := postgres.NewChatRepository(base)

	m := metrics.New("hospital_api")

	// Status events fan out over Redis when configured, otherwise stay
	// in-process. Single-instance deployments need no Redis at all.
	var broker messaging.Broker
	if cfg.Redis.URL != "" {
		broker, err = redisbroker.NewBroker(redisbroker.Config{URL: cfg.Redis.URL}, &log)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to Redis")
		}
	} else {
		broker = messaging.NewLocalBroker()
	}
	defer broker.Close()

	var emailSvc email.Service = email.NopService{}
	if cfg.SMTP.Host != "" {
		emailSvc = email.NewSMTPService(email.Config{
			Host:     cfg.SMTP.Host,
			Port:     cfg.SMTP.Port,
			Username: cfg.SMTP.Username,
			Password: cfg.SMTP.Password,
			From:     cfg.SMTP.From,
		})
	}

	images, err := storage.NewLocalStore(cfg.Upload.Dir, cfg.Upload.BaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to prepare upload directory")
	}

	tokens := auth.NewTokenService(cfg.JWT.Secret, cfg.TokenExpiry())
	hasher := security.NewBcryptHasher(0)

	authSvc := authService.NewService(userRepo, tokens, hasher)
	userSvc := userService.NewService(userRepo, hasher, images)
	appointmentSvc := appointmentService.NewService(appointmentRepo, userRepo, broker, emailSvc, m, log)
	messageSvc := messageService.NewService(messageRepo)
	recordSvc := recordService.NewService(noteRepo, prescriptionRepo)
	chatSvc := chatService.NewService(chatRepo)
	assistantSvc := assistantService.NewService(assistantService.Config{
		BaseURL: cfg.Ollama.URL,
		Model:   cfg.Ollama.Model,
		Timeout: time.Duration(cfg.Ollama.TimeoutSeconds) * time.Second,
	}, m, log)

	hub := ws.NewHub(ws.NewMemorySessionStore(), chatSvc, m, log)

	relayCtx, relayCancel := context.WithCancel(context.Background())
	defer relayCancel()
	go func() {
		if err := hub.RelayStatusEvents(relayCtx, broker); err != nil {
			log.Error().Err(err).Msg("status event relay stopped")
		}
	}()

	if err := middleware.RegisterValidations(); err != nil {
		log.Fatal().Err(err).Msg("failed to register validations")
	}

	authMiddleware := middleware.NewAuthMiddleware(authSvc)

	corsConfig := middleware.DefaultCORSConfig()
	if len(cfg.CORS.Origins) > 0 {
		corsConfig.AllowOrigins = cfg.CORS.Origins
	}

	r := router.NewRouter(
		authMiddleware,
		userHandler.NewHandler(userSvc, authSvc, cfg.CookieMaxAge(), cfg.Cookie.Secure),
		appointmentHandler.NewHandler(appointmentSvc),
		messageHandler.NewHandler(messageSvc),
		recordHandler.NewHandler(recordSvc),
		chatHandler.NewHandler(chatSvc),
		assistantHandler.NewHandler(assistantSvc),
		healthHandler.NewHandler(db),
		ws.NewHandler(hub),
		m,
		router.Config{
			RateLimit:  rate.Limit(cfg.RateLimit.RPS),
			RateBurst:  cfg.RateLimit.Burst,
			CORSConfig: corsConfig,
			UploadDir:  cfg.Upload.Dir,
			Timeout:    cfg.ServerTimeout(),
		},
	)
	r.Setup()

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: r.Engine(),
	}

	go func() {
		log.Info().Int("port", cfg.Server.Port).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exited properly")
}

func parseLevel(level string) logger.Level {
	switch strings.ToLower(level) {
	case "debug":
		return logger.DebugLevel
	case "warn":
		return logger.WarnLevel
	case "error":
		return logger.ErrorLevel
	default:
		return logger.InfoLevel
	}
}
