package controllers

import (
	"context"
	"net/http"
	"time"

	"Gin_postgres_redis_inventory_ledger/app"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// GET /healthz
func (s *Srv) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	body := app.H{"ok": true}
	status := http.StatusOK
	for _, chk := range s.Checks {
		if err := chk.Ping(ctx); err != nil {
			log.Warn().Err(err).Str("check", chk.Name).Msg("health check failed")
			body[chk.Name] = "down"
			body["ok"] = false
			status = http.StatusServiceUnavailable
			continue
		}
		body[chk.Name] = "up"
	}
	c.JSON(status, body)
}
