package api

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/ndavault/nda-vault/internal/api/handler"
	"github.com/ndavault/nda-vault/internal/api/middleware"
	"github.com/ndavault/nda-vault/internal/auth"
	"github.com/ndavault/nda-vault/internal/core/domain"
	"github.com/ndavault/nda-vault/internal/core/service"
	"github.com/ndavault/nda-vault/internal/crypto"
	"github.com/ndavault/nda-vault/internal/infrastructure/config"
	mongoadapter "github.com/ndavault/nda-vault/internal/infrastructure/db/mongo"
	redisadapter "github.com/ndavault/nda-vault/internal/infrastructure/db/redis"
	"github.com/ndavault/nda-vault/internal/ledger"
)

// newLedgerClient selects the ledger transport for cfg.Network: "mock" runs
// entirely in-memory, any other value is treated as a Horizon-class HTTP
// endpoint reachable at that URL (§4.3).
func newLedgerClient(cfg config.LedgerConfig) *ledger.Client {
	var transport ledger.Transport
	if cfg.Network == "" || cfg.Network == "mock" {
		transport = ledger.NewFakeTransport()
	} else {
		transport = ledger.NewHorizonTransport(cfg.Network, http.DefaultClient)
	}
	return ledger.New(transport, 0)
}

// NewRouter builds the Echo instance with all routes registered and starts
// the revocation reaper against the same registry the auth middleware
// consults, ctx-scoped so it stops when the caller shuts down.
func NewRouter(ctx context.Context, cfg *config.Config, db *mongo.Database, rdb *redis.Client, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())

	// --- Dependencies ---
	users := mongoadapter.NewUserRepository(db)
	processes := mongoadapter.NewProcessRepository(db)
	shares := mongoadapter.NewShareRepository(db)
	accesses := mongoadapter.NewAccessRepository(db)

	processCache := redisadapter.NewProcessCache(rdb)
	cachedProcesses := redisadapter.NewCachedProcessRepository(processes, processCache)

	ledgerClient := newLedgerClient(cfg.Ledger)
	tokens := auth.NewTokenCore([]byte(cfg.Auth.TokenSigningSecret), cfg.Auth.AccessTokenLifetime, cfg.Auth.RefreshTokenLifetime)
	registry := auth.NewRegistry()
	reaper := auth.NewReaper(registry, cfg.Auth.SweepInterval, log)
	go reaper.Run(ctx)
	hasher := crypto.NewPasswordHasher(0)
	cipher := crypto.NewCipher()

	identity := service.NewIdentityService(users, ledgerClient, tokens, registry, hasher, log)
	processService := service.NewProcessService(cachedProcesses, shares, accesses, users, ledgerClient, cipher, log)
	auditService := service.NewAuditService(accesses, log)

	authHandler := handler.NewAuthHandler(identity)
	processHandler := handler.NewProcessHandler(processService)
	auditHandler := handler.NewAuditHandler(auditService)
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)

	authMiddleware := middleware.Auth(tokens, registry)
	clientOnly := middleware.RBAC(domain.RoleClient)
	partnerOnly := middleware.RBAC(domain.RolePartner)

	// --- Health probes and metrics (no auth required) ---
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthDepsHandler.Readiness)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/refresh", authHandler.Refresh)
	e.POST("/auth/logout", authHandler.Logout)
	e.POST("/auth/auto-login", authHandler.AutoLogin)

	// --- Process routes ---
	processGroup := e.Group("/processes", authMiddleware)
	processGroup.POST("", processHandler.Create, clientOnly)
	processGroup.GET("", processHandler.List, clientOnly)
	processGroup.POST("/:id/shares", processHandler.Share, clientOnly)
	processGroup.POST("/:id/access", processHandler.Access, partnerOnly)

	// --- Audit routes ---
	e.GET("/audit/accesses", auditHandler.List, authMiddleware, clientOnly)

	return e
}
