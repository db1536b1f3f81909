package api

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/Richie1129/vibe-backtester/internal/data"
	"github.com/Richie1129/vibe-backtester/internal/engine"
	"github.com/Richie1129/vibe-backtester/internal/model"
	"github.com/Richie1129/vibe-backtester/internal/strategy"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v4/pgxpool"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const dateLayout = "2006-01-02"

type Handler struct {
	db     *pgxpool.Pool
	data   *data.Service
	store  *data.Store
	runner *engine.Runner
	auth   *Auth
	logger *zap.Logger
}

func NewHandler(db *pgxpool.Pool, dataSvc *data.Service, store *data.Store, runner *engine.Runner, auth *Auth, logger *zap.Logger) *Handler {
	return &Handler{
		db:     db,
		data:   dataSvc,
		store:  store,
		runner: runner,
		auth:   auth,
		logger: logger,
	}
}

// Account Handlers

type credentials struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

func (h *Handler) Register(c *gin.Context) {
	var creds credentials
	if err := c.ShouldBindJSON(&creds); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(creds.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not process password"})
		return
	}

	var userID int64
	err = h.db.QueryRow(c.Request.Context(),
		"INSERT INTO users (email, password_hash) VALUES ($1, $2) RETURNING id",
		creds.Email, string(hash)).Scan(&userID)
	if err != nil {
		h.logger.Warn("registration rejected", zap.String("email", creds.Email), zap.Error(err))
		c.JSON(http.StatusConflict, gin.H{"error": "email already registered"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": userID, "email": creds.Email})
}

func (h *Handler) Login(c *gin.Context) {
	var creds struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&creds); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var (
		userID int64
		hash   string
	)
	err := h.db.QueryRow(c.Request.Context(),
		"SELECT id, password_hash FROM users WHERE email = $1", creds.Email).Scan(&userID, &hash)
	if err == nil {
		err = bcrypt.CompareHashAndPassword([]byte(hash), []byte(creds.Password))
	}
	if err != nil {
		// Unknown email and wrong password get the same answer.
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}

	token, err := h.auth.GenerateToken(userID)
	if err != nil {
		h.logger.Error("token generation failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not issue token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token, "user_id": userID})
}

// Stock Handlers

func (h *Handler) SearchStocks(c *gin.Context) {
	query := c.Query("q")
	if strings.TrimSpace(query) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query parameter q is required"})
		return
	}
	c.JSON(http.StatusOK, h.data.Search(query))
}

func (h *Handler) GetStock(c *gin.Context) {
	symbol := strings.ToUpper(strings.TrimSpace(c.Param("symbol")))

	detail, err := h.data.GetDetail(c.Request.Context(), symbol)
	if err != nil {
		if errors.Is(err, data.ErrNoData) {
			c.JSON(http.StatusNotFound, gin.H{"error": "stock not found: " + symbol})
			return
		}
		h.logger.Error("failed to fetch stock detail", zap.String("symbol", symbol), zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "data provider unavailable"})
		return
	}

	c.JSON(http.StatusOK, detail)
}

// Backtest Handler

type investmentConfig struct {
	Amount    float64 `json:"amount" binding:"required,gt=0"`
	Frequency string  `json:"frequency" binding:"omitempty,oneof=monthly weekly"`
}

type backtestRequest struct {
	Stocks     []string         `json:"stocks" binding:"required,min=1,max=10"`
	StartDate  string           `json:"start_date" binding:"required"`
	EndDate    string           `json:"end_date" binding:"required"`
	Strategy   string           `json:"strategy" binding:"required,oneof=lump_sum dca"`
	Investment investmentConfig `json:"investment" binding:"required"`
}

type backtestResponse struct {
	Results    []model.BacktestResult `json:"results"`
	Comparison model.Comparison       `json:"comparison"`
}

func (h *Handler) RunBacktest(c *gin.Context) {
	var req backtestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	start, err := time.Parse(dateLayout, req.StartDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "start_date must be YYYY-MM-DD"})
		return
	}
	end, err := time.Parse(dateLayout, req.EndDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "end_date must be YYYY-MM-DD"})
		return
	}

	symbols := make([]string, 0, len(req.Stocks))
	for _, s := range req.Stocks {
		s = strings.ToUpper(strings.TrimSpace(s))
		if s != "" {
			symbols = append(symbols, s)
		}
	}

	cadence := strategy.CadenceMonthly
	if req.Investment.Frequency != "" {
		cadence = strategy.Cadence(req.Investment.Frequency)
	}

	engineReq := engine.Request{
		Symbols:  symbols,
		Strategy: req.Strategy,
		Amount:   req.Investment.Amount,
		Cadence:  cadence,
		Start:    start,
		End:      end,
	}

	results, comparison, err := h.runner.Run(c.Request.Context(), engineReq)
	if err != nil {
		var cfgErr *engine.InvalidConfigError
		var batchErr *engine.BatchError
		switch {
		case errors.As(err, &cfgErr):
			c.JSON(http.StatusBadRequest, gin.H{"error": cfgErr.Error()})
		case errors.As(err, &batchErr):
			c.JSON(http.StatusNotFound, gin.H{"error": batchErr.Error()})
		default:
			h.logger.Error("backtest failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		}
		return
	}

	h.saveRun(c, engineReq)

	c.JSON(http.StatusOK, backtestResponse{Results: results, Comparison: comparison})
}

// saveRun records the request for the requesting user; failures are
// logged, never surfaced, as the simulation itself already succeeded.
func (h *Handler) saveRun(c *gin.Context, req engine.Request) {
	userID := c.GetInt64("user_id")
	if userID == 0 || h.store == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	run := &model.BacktestRun{
		UserID:    userID,
		Strategy:  req.Strategy,
		Symbols:   req.Symbols,
		Amount:    req.Amount,
		StartDate: req.Start,
		EndDate:   req.End,
	}
	if err := h.store.SaveRun(ctx, run); err != nil {
		h.logger.Warn("failed to save backtest run", zap.Error(err))
	}
}
