package app

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

func attemptsKey(ip string) string { return "inv:login:attempts:" + ip }

// LoginThrottle 按 IP 限制登录/注册次数（固定窗口）。Redis 出错时放行。
func LoginThrottle(rdb *redis.Client, limit int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if rdb == nil || limit <= 0 {
			c.Next()
			return
		}
		ctx := c.Request.Context()
		key := attemptsKey(c.ClientIP())

		// 同一事务里：不存在就带 TTL 建 0，再加一；计数器总有过期时间
		pipe := rdb.TxPipeline()
		pipe.SetNX(ctx, key, 0, window)
		incr := pipe.Incr(ctx, key)
		if _, err := pipe.Exec(ctx); err != nil {
			log.Warn().Err(err).Msg("login throttle unavailable")
			c.Next()
			return
		}
		if incr.Val() > int64(limit) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, H{
				"error":   true,
				"message": "Too many attempts, try again later",
			})
			return
		}
		c.Next()
	}
}
