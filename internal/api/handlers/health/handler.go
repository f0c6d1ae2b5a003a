package health

import (
	"context"
	"net/http"
	"time"

	"github.com/m04kA/PrismCRM/internal/api/handlers"
)

const (
	statusOnline   = "System is online"
	systemName     = "Prism CRM Unified Engine"
	dbConnected    = "Connected"
	dbUnavailable  = "Unavailable"
	defaultTimeout = 2 * time.Second
)

type Pinger interface {
	PingContext(ctx context.Context) error
}

type Logger interface {
	Warn(format string, v ...interface{})
}

// HealthResponse HTTP response model
type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
	System   string `json:"system"`
}

type Handler struct {
	db      Pinger
	timeout time.Duration
	logger  Logger
}

func NewHandler(db Pinger, logger Logger) *Handler {
	return &Handler{
		db:      db,
		timeout: defaultTimeout,
		logger:  logger,
	}
}

// Handle GET /
// Сервис отвечает 200, даже если БД недоступна
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	database := dbConnected
	if err := h.db.PingContext(ctx); err != nil {
		h.logger.Warn("GET / - Database ping failed: %v", err)
		database = dbUnavailable
	}

	handlers.RespondJSON(w, http.StatusOK, HealthResponse{
		Status:   statusOnline,
		Database: database,
		System:   systemName,
	})
}
