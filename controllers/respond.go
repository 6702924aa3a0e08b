package controllers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"Gin_postgres_redis_inventory_ledger/app"
	"Gin_postgres_redis_inventory_ledger/models"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

func fail(c *gin.Context, status int, msg string) {
	c.JSON(status, app.H{"error": true, "message": msg})
}

// internalError 记录真实错误，对外只给通用消息
func internalError(c *gin.Context, err error, msg string) {
	log.Error().Err(err).
		Str("method", c.Request.Method).
		Str("path", c.FullPath()).
		Msg(msg)
	fail(c, http.StatusInternalServerError, msg)
}

// badInput reports a models.ValidationError as 400. It returns false for any
// other error.
func badInput(c *gin.Context, err error) bool {
	var ve *models.ValidationError
	if errors.As(err, &ve) {
		fail(c, http.StatusBadRequest, ve.Message)
		return true
	}
	return false
}

var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// parseDate 接受 ISO 日期或日期时间；不带时区按 UTC
func parseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

// endOfDay widens t to 23:59:59.999 of its UTC day.
func endOfDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, int(999*time.Millisecond), time.UTC)
}
