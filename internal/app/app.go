package app

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Richie1129/vibe-backtester/api"
	"github.com/Richie1129/vibe-backtester/internal/config"
	"github.com/Richie1129/vibe-backtester/internal/data"
	"github.com/Richie1129/vibe-backtester/internal/engine"
	"github.com/Richie1129/vibe-backtester/internal/infrastructure"
	"github.com/Richie1129/vibe-backtester/internal/quant"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// App defines the application structure and its dependencies
type App struct {
	Config     *config.Config
	Logger     *zap.Logger
	DB         *pgxpool.Pool
	DataSvc    *data.Service
	Store      *data.Store
	Runner     *engine.Runner
	Auth       *api.Auth
	HTTPServer *http.Server
}

// NewApp creates a new application instance
func NewApp() (*App, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	infrastructure.Init(cfg.LogLevel)
	logger := infrastructure.Logger

	return &App{
		Config: &cfg,
		Logger: logger,
	}, nil
}

// Init initializes all application components
func (a *App) Init(ctx context.Context) error {
	// 1. Database
	dbPool, err := pgxpool.Connect(ctx, a.Config.DBDSN)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	a.DB = dbPool

	if err := a.initDatabase(ctx); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}

	// 2. Market data layer
	provider := data.NewProvider(a.Config.DataAPIURL, a.Logger)
	a.Store = data.NewStore(a.DB)
	a.DataSvc = data.NewService(provider, a.Store, a.Logger)

	// 3. Backtest engine
	calc := quant.NewCalculator(quant.Params{
		TradingDaysPerYear: a.Config.TradingDays,
		RiskFreeRate:       a.Config.RiskFreeRate,
		MinStdDev:          quant.DefaultParams().MinStdDev,
	})
	a.Runner = engine.NewRunner(a.DataSvc, calc, a.Config.Workers, a.Logger)

	// 4. Auth
	a.Auth = api.NewAuth(a.Config.JWTSecret)

	return nil
}

// Run starts the HTTP server and blocks until shutdown
func (a *App) Run(ctx context.Context) error {
	a.HTTPServer = &http.Server{
		Addr:    ":" + a.Config.Port,
		Handler: a.setupRouter(),
	}

	go func() {
		a.Logger.Info("starting http server", zap.String("port", a.Config.Port))
		if err := a.HTTPServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			a.Logger.Fatal("http server failed", zap.Error(err))
		}
	}()

	return a.waitForShutdown()
}

// waitForShutdown handles graceful shutdown signals
func (a *App) waitForShutdown() error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	a.Logger.Info("shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := a.HTTPServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	a.DB.Close()

	return nil
}

// initDatabase runs the database initialization script
func (a *App) initDatabase(ctx context.Context) error {
	sqlFile := "scripts/init.sql"
	content, err := os.ReadFile(sqlFile)
	if err != nil {
		return fmt.Errorf("failed to read init script: %w", err)
	}

	_, err = a.DB.Exec(ctx, string(content))
	if err != nil {
		return fmt.Errorf("failed to execute init script: %w", err)
	}

	a.Logger.Info("database initialized successfully")
	return nil
}

// setupRouter configures the Gin router and its routes
func (a *App) setupRouter() *gin.Engine {
	r := gin.Default()

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy", "message": "backtest API is running"})
	})

	apiHandler := api.NewHandler(a.DB, a.DataSvc, a.Store, a.Runner, a.Auth, a.Logger)

	v1 := r.Group("/api/v1")
	{
		v1.POST("/register", apiHandler.Register)
		v1.POST("/login", apiHandler.Login)
		v1.GET("/stocks/search", apiHandler.SearchStocks)
		v1.GET("/stocks/:symbol", apiHandler.GetStock)
	}

	protected := r.Group("/api/v1")
	protected.Use(a.Auth.Middleware())
	{
		protected.POST("/backtest", apiHandler.RunBacktest)
	}

	return r
}
