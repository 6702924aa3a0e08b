// controllers/srv.go
package controllers

import (
	"context"
	"time"

	"Gin_postgres_redis_inventory_ledger/app"
	"Gin_postgres_redis_inventory_ledger/auth"
	"Gin_postgres_redis_inventory_ledger/cache"
	"Gin_postgres_redis_inventory_ledger/db"
	"Gin_postgres_redis_inventory_ledger/ledger"
	"Gin_postgres_redis_inventory_ledger/models"
)

type AccountStore interface {
	CreateUser(ctx context.Context, u *models.User) error
	FindUserByEmail(ctx context.Context, email string) (*models.User, error)
	FindUserByID(ctx context.Context, id string) (*models.User, error)
}

type CatalogStore interface {
	CreateItem(ctx context.Context, it *models.Item) error
	ListItems(ctx context.Context) ([]models.Item, error)
	FindItemBySerial(ctx context.Context, serialNo string) (*models.Item, error)
	MissingItems(ctx context.Context, ids []string) ([]string, error)
}

type MovementStore interface {
	CreateDelivery(ctx context.Context, d *models.Delivery) error
	CreateCheckout(ctx context.Context, co *models.Checkout) error
	DeliveryNumberExists(ctx context.Context, number string) (bool, error)
	CheckoutNumberExists(ctx context.Context, number string) (bool, error)
	DeliveriesCreatedBetween(ctx context.Context, start, end time.Time) ([]db.DeliveryReportRow, error)
	CheckoutsDatedBetween(ctx context.Context, start, end time.Time) ([]db.CheckoutReportRow, error)
}

type InventoryStore interface {
	ListInventory(ctx context.Context) ([]db.InventoryRow, error)
}

type LedgerApplier interface {
	Apply(ctx context.Context, dir ledger.Direction, lines []models.MovementLine) (int, error)
}

// InventoryCache never fails a request; implementations log and miss.
// Get reports the generation current before the read, even on a miss; Set
// must drop rows whose generation has since been invalidated.
type InventoryCache interface {
	Get(ctx context.Context) ([]db.InventoryRow, int64, bool)
	Set(ctx context.Context, gen int64, rows []db.InventoryRow)
	Invalidate(ctx context.Context)
}

type HealthCheck struct {
	Name string
	Ping func(ctx context.Context) error
}

type Srv struct {
	Accounts  AccountStore
	Catalog   CatalogStore
	Movements MovementStore
	Inventory InventoryStore
	Ledger    LedgerApplier
	Cache     InventoryCache
	Tokens    *auth.TokenIssuer
	Checks    []HealthCheck
}

func GetSrv(a *app.App) *Srv {
	repo := db.NewRepo(a.DB)
	return &Srv{
		Accounts:  repo,
		Catalog:   repo,
		Movements: repo,
		Inventory: repo,
		Ledger:    ledger.New(repo),
		Cache:     cache.NewInventoryCache(a.RDB, a.Config.InventoryCacheTTL),
		Tokens:    auth.NewTokenIssuer(a.Config.TokenSecret, a.Config.TokenTTL),
		Checks: []HealthCheck{
			{Name: "db", Ping: func(ctx context.Context) error {
				sqlDB, err := a.DB.DB()
				if err != nil {
					return err
				}
				return sqlDB.PingContext(ctx)
			}},
			{Name: "redis", Ping: func(ctx context.Context) error { return a.RDB.Ping(ctx).Err() }},
		},
	}
}

// 库存变动后清缓存
func (s *Srv) invalidateInventory(ctx context.Context) {
	if s.Cache != nil {
		s.Cache.Invalidate(ctx)
	}
}
