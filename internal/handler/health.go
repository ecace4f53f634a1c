package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/snnyvrz/shelfshare/apps/authors-api/internal/model"
	"gorm.io/gorm"
)

// HealthHandler reports liveness and whether the authors store can serve
// requests.
type HealthHandler struct {
	db      *gorm.DB
	log     zerolog.Logger
	started time.Time
	version string
}

func NewHealthHandler(db *gorm.DB, log zerolog.Logger, started time.Time, version string) *HealthHandler {
	return &HealthHandler{
		db:      db,
		log:     log.With().Str("component", "health").Logger(),
		started: started,
		version: version,
	}
}

func (h *HealthHandler) RegisterRoutes(e *gin.Engine) {
	e.GET("/health", h.Health)
	e.GET("/ready", h.Ready)
}

type dbStatus struct {
	Status string `json:"status"`
}

type healthBody struct {
	Status  string    `json:"status"`
	Version string    `json:"version,omitempty"`
	Uptime  int64     `json:"uptime,omitempty"`
	DB      *dbStatus `json:"db,omitempty"`
}

func (h *HealthHandler) body(status string) healthBody {
	return healthBody{
		Status:  status,
		Version: h.version,
		Uptime:  int64(time.Since(h.started).Seconds()),
	}
}

func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, h.body("ok"))
}

// Ready answers 200 only when the database responds and the authors table
// has been migrated.
func (h *HealthHandler) Ready(c *gin.Context) {
	sqlDB, err := h.db.DB()
	if err != nil {
		h.log.Error().Err(err).Msg("readiness: connection pool unavailable")
		c.JSON(http.StatusInternalServerError, healthBody{Status: "error"})
		return
	}

	down := func(reason string, err error) {
		h.log.Warn().Err(err).Msg("readiness: " + reason)
		out := h.body("unhealthy")
		out.DB = &dbStatus{Status: "down"}
		c.JSON(http.StatusServiceUnavailable, out)
	}

	if err := sqlDB.PingContext(c.Request.Context()); err != nil {
		down("ping failed", err)
		return
	}
	if !h.db.WithContext(c.Request.Context()).Migrator().HasTable(&model.Author{}) {
		down("authors table missing", nil)
		return
	}

	out := h.body("ready")
	out.DB = &dbStatus{Status: "up"}
	c.JSON(http.StatusOK, out)
}
