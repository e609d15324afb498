// @title           VaSa Platform API
// @version         1.0
// @description     Community employment platform: jobs, worker registry, points wallet, teams, AI matching, SOS safety alerts and a skills library.
//
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the JWT.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/vasaworks/vasa-api/docs"
	"github.com/vasaworks/vasa-api/internal/api"
	"github.com/vasaworks/vasa-api/internal/core/service"
	"github.com/vasaworks/vasa-api/internal/infrastructure/ai"
	mongodb "github.com/vasaworks/vasa-api/internal/infrastructure/db/mongo"
	redisdb "github.com/vasaworks/vasa-api/internal/infrastructure/db/redis"
	"github.com/vasaworks/vasa-api/internal/infrastructure/queue"
	"github.com/vasaworks/vasa-api/internal/pkg/config"
	"github.com/vasaworks/vasa-api/pkg/logger"
)

func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	docs.SwaggerInfo.BasePath = "/"

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- Datastores ---
	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongodb connection failed")
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = mongoClient.Disconnect(disconnectCtx)
	}()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer rdb.Close()

	// --- Repositories ---
	userRepo := mongodb.NewUserRepository(db)
	jobRepo := mongodb.NewJobRepository(db)
	workerRepo := mongodb.NewWorkerRepository(db)
	teamRepo := mongodb.NewTeamRepository(db)
	txnRepo := mongodb.NewTransactionRepository(db)
	sosRepo := mongodb.NewSOSRepository(db)
	learningRepo := mongodb.NewLearningRepository(db)

	for name, ensure := range map[string]func(context.Context) error{
		"users":        userRepo.EnsureIndexes,
		"jobs":         jobRepo.EnsureIndexes,
		"workers":      workerRepo.EnsureIndexes,
		"transactions": txnRepo.EnsureIndexes,
		"sos_alerts":   sosRepo.EnsureIndexes,
	} {
		if err := ensure(ctx); err != nil {
			log.Fatal().Err(err).Str("collection", name).Msg("index creation failed")
		}
	}

	// --- Model suggester (optional) ---
	var suggester service.Suggester
	if cfg.Gemini.APIKey != "" {
		gemini, err := ai.NewGeminiSuggester(ctx, cfg.Gemini.APIKey, cfg.Gemini.Model)
		if err != nil {
			log.Fatal().Err(err).Msg("gemini client init failed")
		}
		suggester = gemini
		log.Info().Str("model", cfg.Gemini.Model).Msg("gemini suggester enabled")
	} else {
		log.Info().Msg("no gemini api key, matching uses the local scorer only")
	}

	// --- SOS fanout ---
	dispatcher := queue.NewDispatcher(
		cfg.Dispatcher.Workers,
		cfg.Dispatcher.BufferSize,
		queue.NewLogSender(log),
		log,
	)
	dispatcher.Start(ctx)

	// --- Services ---
	authService := service.NewAuthService(userRepo, cfg.JWTSecret, cfg.JWTTTL)
	userService := service.NewUserService(userRepo, log)
	jobService := service.NewJobService(jobRepo, workerRepo, log)
	workerService := service.NewWorkerService(workerRepo, log)
	walletService := service.NewWalletService(userRepo, txnRepo, jobService,
		redisdb.NewPINLimiter(rdb), log)
	teamService := service.NewTeamService(teamRepo, log)
	verificationService := service.NewVerificationService(userRepo, log)
	matchingService := service.NewMatchingService(userRepo, jobRepo, teamRepo, suggester, log)
	sosService := service.NewSOSService(sosRepo, userRepo,
		redisdb.NewAlertDedup(rdb, cfg.SOS.DedupWindow), dispatcher, log)
	learningService := service.NewLearningService(learningRepo, log)

	if err := learningService.SeedDefault(ctx); err != nil {
		log.Fatal().Err(err).Msg("learning catalog seed failed")
	}

	// --- HTTP server ---
	e := api.NewRouter(api.Dependencies{
		Auth:         authService,
		Users:        userService,
		Jobs:         jobService,
		Workers:      workerService,
		Wallet:       walletService,
		Teams:        teamService,
		Verification: verificationService,
		Matching:     matchingService,
		SOS:          sosService,
		Learning:     learningService,
		Mongo:        db,
		Redis:        rdb,
		JWTSecret:    cfg.JWTSecret,
		Logger:       log,
	})

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("starting server")
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown failed")
	}
}
