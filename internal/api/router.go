package api

import (
	"context"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/vasaworks/vasa-api/internal/api/handler"
	apimiddleware "github.com/vasaworks/vasa-api/internal/api/middleware"
	"github.com/vasaworks/vasa-api/internal/core/domain"
	"github.com/vasaworks/vasa-api/internal/core/ports"
)

// Dependencies carries everything the router needs: built services plus the
// raw connections the health probes ping.
type Dependencies struct {
	Auth         ports.AuthService
	Users        ports.UserService
	Jobs         ports.JobService
	Workers      ports.WorkerService
	Wallet       ports.WalletService
	Teams        ports.TeamService
	Verification ports.VerificationService
	Matching     ports.MatchingService
	SOS          ports.SOSService
	Learning     ports.LearningService

	Mongo     *mongo.Database
	Redis     *redis.Client
	JWTSecret string
	Logger    zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("vasa"))

	auth := apimiddleware.Auth(deps.JWTSecret)

	// The document gate consults the verification service.
	gate := apimiddleware.Verified(apimiddleware.VerificationCheckerFunc(
		func(ctx context.Context, userID string) (bool, error) {
			status, err := deps.Verification.Status(ctx, userID)
			if err != nil {
				return false, err
			}
			return status.Verified, nil
		},
	))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(deps.Auth)
	userHandler := handler.NewUserHandler(deps.Users)
	jobHandler := handler.NewJobHandler(deps.Jobs)
	workerHandler := handler.NewWorkerHandler(deps.Workers)
	walletHandler := handler.NewWalletHandler(deps.Wallet)
	teamHandler := handler.NewTeamHandler(deps.Teams)
	verificationHandler := handler.NewVerificationHandler(deps.Verification)
	matchingHandler := handler.NewMatchingHandler(deps.Matching)
	sosHandler := handler.NewSOSHandler(deps.SOS)
	learningHandler := handler.NewLearningHandler(deps.Learning)

	// --- Auth routes (public) ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(deps.Mongo, deps.Redis)
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)

	// --- Observability and docs ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	// --- Authenticated API ---
	v1 := e.Group("/v1", auth)

	// Users.
	v1.GET("/users/me", userHandler.Me)
	v1.PUT("/users/me", userHandler.UpdateMe)
	v1.POST("/users/me/membership", userHandler.UpgradeMembership)
	v1.GET("/users", userHandler.List, apimiddleware.RBAC(domain.RoleAdmin))

	// Verification.
	v1.POST("/verification/pan", verificationHandler.SubmitPAN)
	v1.POST("/verification/aadhaar", verificationHandler.SubmitAadhaar)
	v1.GET("/verification/status", verificationHandler.Status)

	// Jobs. Posting requires a verified recruiter or panchayat account.
	v1.POST("/jobs", jobHandler.Create,
		apimiddleware.RBAC(domain.RoleRecruiter, domain.RolePanchayat, domain.RoleAdmin), gate)
	v1.GET("/jobs", jobHandler.List)
	v1.GET("/jobs/:reference", jobHandler.Get)
	v1.POST("/jobs/:reference/assign", jobHandler.Assign,
		apimiddleware.RBAC(domain.RoleRecruiter, domain.RolePanchayat, domain.RoleAdmin))
	v1.POST("/jobs/:reference/complete", jobHandler.Complete,
		apimiddleware.RBAC(domain.RoleRecruiter, domain.RolePanchayat, domain.RoleAdmin))

	// Worker registry. Writes are panchayat-only; search is open to all roles.
	v1.POST("/workers", workerHandler.Register,
		apimiddleware.RBAC(domain.RolePanchayat, domain.RoleAdmin))
	v1.PUT("/workers/:id", workerHandler.Update,
		apimiddleware.RBAC(domain.RolePanchayat, domain.RoleAdmin))
	v1.DELETE("/workers/:id", workerHandler.Delete,
		apimiddleware.RBAC(domain.RolePanchayat, domain.RoleAdmin))
	v1.GET("/workers", workerHandler.Search)

	// Wallet. Paying requires a verified account.
	v1.GET("/wallet", walletHandler.Get)
	v1.POST("/wallet/pin", walletHandler.SetPIN)
	v1.POST("/wallet/pay", walletHandler.Pay, gate)
	v1.POST("/wallet/redeem", walletHandler.Redeem)
	v1.GET("/wallet/rewards", walletHandler.Rewards)
	v1.GET("/wallet/transactions", walletHandler.Transactions)

	// Teams.
	v1.POST("/teams", teamHandler.Create)
	v1.GET("/teams", teamHandler.List)
	v1.GET("/teams/:id", teamHandler.Get)
	v1.POST("/teams/:id/join", teamHandler.Join)
	v1.POST("/teams/:id/leave", teamHandler.Leave)

	// Matching.
	v1.GET("/match/jobs", matchingHandler.MatchJobs)
	v1.GET("/match/teams", matchingHandler.SuggestTeams)
	v1.POST("/match/team-members", matchingHandler.SuggestTeamMembers)

	// SOS.
	v1.POST("/sos", sosHandler.Raise)
	v1.GET("/sos", sosHandler.List,
		apimiddleware.RBAC(domain.RolePanchayat, domain.RoleAdmin))

	// Learning.
	v1.GET("/learning/modules", learningHandler.List)
	v1.POST("/learning/modules/:id/progress", learningHandler.RecordProgress)

	return e
}
