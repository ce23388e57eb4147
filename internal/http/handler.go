package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/tazhibayda/habits-service/internal/domain"
	"github.com/tazhibayda/habits-service/internal/log"
	"github.com/tazhibayda/habits-service/internal/metrics"
	"github.com/tazhibayda/habits-service/internal/queue"
	"github.com/tazhibayda/habits-service/internal/repo"
	"github.com/tazhibayda/habits-service/internal/security"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type Handler struct {
	Store     *repo.Store
	JWTSecret string
	TokenTTL  time.Duration
	Events    queue.Publisher
	Log       *zap.Logger
}

func NewHandler(store *repo.Store, jwtSecret string, tokenTTL time.Duration, pub queue.Publisher, logger *zap.Logger) *Handler {
	if pub == nil {
		pub = queue.NewNoop()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	registerValidators()
	return &Handler{
		Store:     store,
		JWTSecret: jwtSecret,
		TokenTTL:  tokenTTL,
		Events:    pub,
		Log:       logger,
	}
}

// respondError maps the error taxonomy onto HTTP statuses. Only 5xx causes are logged.
func (h *Handler) respondError(c *gin.Context, err error) {
	status, msg := http.StatusInternalServerError, "internal server error"
	switch {
	case errors.Is(err, domain.ErrInvalidID):
		status, msg = http.StatusBadRequest, "invalid id format"
	case errors.Is(err, domain.ErrInvalidDate):
		status, msg = http.StatusBadRequest, "invalid date"
	case errors.Is(err, security.ErrMissingToken):
		status, msg = http.StatusUnauthorized, "no token provided"
	case errors.Is(err, security.ErrInvalidToken):
		status, msg = http.StatusForbidden, "invalid or expired token"
	case errors.Is(err, repo.ErrDuplicate):
		status, msg = http.StatusConflict, "already exists"
	case errors.Is(err, repo.ErrNotFound):
		status, msg = http.StatusNotFound, "not found"
	}
	if status >= http.StatusInternalServerError {
		_ = c.Error(err)
		log.WithDD(c.Request.Context(), h.Log,
			zap.String("route", c.FullPath()),
			zap.String("request_id", c.GetString(requestIDKey)),
		).Error("request failed", zap.Error(err))
	}
	c.AbortWithStatusJSON(status, gin.H{"error": msg})
}

// pathID parses an ObjectID path parameter, answering 400 itself on failure.
func (h *Handler) pathID(c *gin.Context, name string) (primitive.ObjectID, bool) {
	id, err := domain.ParseID(c.Param(name))
	if err != nil {
		h.respondError(c, err)
		return primitive.NilObjectID, false
	}
	return id, true
}

func (h *Handler) pathDay(c *gin.Context) (time.Time, bool) {
	day, err := domain.ParseDay(c.Param("date"))
	if err != nil {
		h.respondError(c, err)
		return time.Time{}, false
	}
	return day, true
}

// publish hands an event to the broker without holding the response.
func (h *Handler) publish(c *gin.Context, key string, event any) {
	ctx := context.WithoutCancel(c.Request.Context())
	reqID := c.GetString(requestIDKey)
	go func() {
		if err := h.Events.Publish(ctx, key, event, reqID); err != nil {
			metrics.EventsPublished.WithLabelValues(key, "error").Inc()
			h.Log.Warn("publish event", zap.String("key", key), zap.String("request_id", reqID), zap.Error(err))
			return
		}
		metrics.EventsPublished.WithLabelValues(key, "ok").Inc()
	}()
}

// Healthz godoc
// @Summary Liveness and database reachability
// @Tags system
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 503 {object} map[string]string
// @Router /healthz [get]
func (h *Handler) Healthz(c *gin.Context) {
	if err := h.Store.Ping(c.Request.Context()); err != nil {
		log.WithDD(c.Request.Context(), h.Log).Warn("health check: mongo ping failed", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
