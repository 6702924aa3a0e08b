package app

import (
	"context"
	"fmt"
	"time"

	"Gin_postgres_redis_inventory_ledger/config"
	"Gin_postgres_redis_inventory_ledger/db"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// 简化别名，便于 handlers 调用
type Ctx = gin.Context
type H = gin.H

// App 聚合各依赖
type App struct {
	Router *gin.Engine
	DB     *gorm.DB
	RDB    *redis.Client
	Config *config.Config
}

func MustNew(cfg *config.Config) *App {
	// --- DB: Postgres ---
	dbConn, err := db.Connect(cfg.DSN())
	if err != nil {
		log.Fatal().Err(err).Msg("postgres")
	}

	// --- Redis ---
	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPwd, DB: 0})
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Fatal().Err(err).Str("addr", cfg.RedisAddr).Msg("redis")
	}

	// --- Gin ---
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r, err := newRouter(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("router")
	}

	return &App{Router: r, DB: dbConn, RDB: rdb, Config: cfg}
}

// newRouter 只信任配置里的代理，X-Forwarded-For 不能伪造 ClientIP
func newRouter(cfg *config.Config) (*gin.Engine, error) {
	r := gin.New()
	if err := r.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		return nil, fmt.Errorf("trusted proxies: %w", err)
	}
	r.Use(Recovery(), RequestLogger())
	useCORS(r, cfg.WebOrigin)
	return r, nil
}

func (a *App) Close() {
	_ = a.RDB.Close()
	if sqlDB, err := a.DB.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
