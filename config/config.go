package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

// LoadEnv 读取 .env（可选，不存在就跳过）
func LoadEnv() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Warn().Err(err).Msg("failed to load .env")
	}
}

// Config is read once at startup and passed to constructors.
type Config struct {
	Port   int
	Env    string
	LogLvl string

	DatabaseURL string
	DBHost      string
	DBUser      string
	DBPassword  string
	DBName      string
	DBPort      string

	RedisAddr string
	RedisPwd  string

	TokenSecret string
	TokenTTL    time.Duration

	WebOrigin string
	// 空表示不信任任何代理，ClientIP 取 RemoteAddr
	TrustedProxies []string

	InventoryCacheTTL time.Duration
	LoginRateLimit    int
	LoginRateWindow   time.Duration
}

func Load() (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("PORT", 8000)
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("DB_HOST", "127.0.0.1")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("REDIS_ADDR", "127.0.0.1:6379")
	v.SetDefault("TOKEN_TTL_MINUTES", 36000)
	v.SetDefault("WEB_ORIGIN", "*")
	v.SetDefault("INVENTORY_CACHE_TTL_SECONDS", 300)
	v.SetDefault("LOGIN_RATE_LIMIT", 20)
	v.SetDefault("LOGIN_RATE_WINDOW_SECONDS", 60)

	cfg := &Config{
		Port:   v.GetInt("PORT"),
		Env:    v.GetString("APP_ENV"),
		LogLvl: v.GetString("LOG_LEVEL"),

		DatabaseURL: v.GetString("DATABASE_URL"),
		DBHost:      v.GetString("DB_HOST"),
		DBUser:      v.GetString("DB_USER"),
		DBPassword:  v.GetString("DB_PASSWORD"),
		DBName:      v.GetString("DB_NAME"),
		DBPort:      v.GetString("DB_PORT"),

		RedisAddr: v.GetString("REDIS_ADDR"),
		RedisPwd:  v.GetString("REDIS_PASSWORD"),

		TokenSecret: v.GetString("ACCESS_TOKEN_SECRET"),
		TokenTTL:    time.Duration(v.GetInt("TOKEN_TTL_MINUTES")) * time.Minute,

		WebOrigin:      strings.TrimSpace(v.GetString("WEB_ORIGIN")),
		TrustedProxies: splitList(v.GetString("TRUSTED_PROXIES")),

		InventoryCacheTTL: time.Duration(v.GetInt("INVENTORY_CACHE_TTL_SECONDS")) * time.Second,
		LoginRateLimit:    v.GetInt("LOGIN_RATE_LIMIT"),
		LoginRateWindow:   time.Duration(v.GetInt("LOGIN_RATE_WINDOW_SECONDS")) * time.Second,
	}

	if cfg.TokenSecret == "" {
		return nil, errors.New("ACCESS_TOKEN_SECRET is required")
	}
	if cfg.TokenTTL <= 0 {
		return nil, fmt.Errorf("TOKEN_TTL_MINUTES must be positive, got %s", v.GetString("TOKEN_TTL_MINUTES"))
	}
	return cfg, nil
}

func splitList(csv string) []string {
	var out []string
	for _, s := range strings.Split(csv, ",") {
		if t := strings.TrimSpace(s); t != "" {
			out = append(out, t)
		}
	}
	return out
}

func (c *Config) IsProduction() bool { return strings.EqualFold(c.Env, "production") }

// DSN 优先 DATABASE_URL，否则拼 DB_* 变量
func (c *Config) DSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort,
	)
}

func (c *Config) Addr() string { return fmt.Sprintf(":%d", c.Port) }
