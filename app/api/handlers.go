package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jphmw/impbot/app/cfg"
	"github.com/jphmw/impbot/app/database"
)

// GatewayStatus reports the live Discord connection state.
type GatewayStatus interface {
	Connected() bool
	GuildCount() int
}

type Handler struct {
	follows   database.FollowStore
	birthdays database.BirthdayStore
	gateway   GatewayStatus
	started   time.Time
}

func NewHandler(follows database.FollowStore, birthdays database.BirthdayStore,
	gateway GatewayStatus) *Handler {
	return &Handler{
		follows:   follows,
		birthdays: birthdays,
		gateway:   gateway,
		started:   time.Now(),
	}
}

func (h *Handler) GetHealth(c *gin.Context) {
	health := map[string]interface{}{
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"gateway":   h.gateway.Connected(),
	}

	status := http.StatusOK
	if !h.gateway.Connected() {
		status = http.StatusServiceUnavailable
	}

	c.JSON(status, health)
}

func (h *Handler) GetStats(c *gin.Context) {
	stats := map[string]interface{}{
		"version": cfg.Get().Version,
		"uptime":  time.Since(h.started).Round(time.Second).String(),
		"guilds":  h.gateway.GuildCount(),
	}

	if count, err := h.follows.Count(); err == nil {
		stats["followed_profiles"] = count
	} else {
		slog.Error("Database error", "operation", "count_follows", "error", err)
	}

	if count, err := h.birthdays.Count(); err == nil {
		stats["birthdays"] = count
	} else {
		slog.Error("Database error", "operation", "count_birthdays", "error", err)
	}

	c.JSON(http.StatusOK, stats)
}
