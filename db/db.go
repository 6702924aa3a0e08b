package db

import (
	"fmt"
	"time"

	"Gin_postgres_redis_inventory_ledger/models"

	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Connect opens the Postgres pool and brings the schema up to date.
func Connect(dsn string) (*gorm.DB, error) {
	conn, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true, // ErrDuplicatedKey / ErrForeignKeyViolated
		NowFunc:        func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	sqlDB, err := conn.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	if err := Migrate(conn); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	log.Info().Msg("database connected")
	return conn, nil
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.Item{},
		&models.InventoryEntry{},
		&models.Delivery{},
		&models.DeliveryLine{},
		&models.Checkout{},
		&models.CheckoutLine{},
	); err != nil {
		return err
	}

	// 报表按时间倒序
	if err := db.Exec(fmt.Sprintf(`
	  CREATE INDEX IF NOT EXISTS %s_created_at_desc
	  ON %s (created_at DESC);
	`, models.DeliveryTable, models.DeliveryTable)).Error; err != nil {
		return err
	}
	if err := db.Exec(fmt.Sprintf(`
	  CREATE INDEX IF NOT EXISTS %s_checkout_date_desc
	  ON %s (checkout_date DESC);
	`, models.CheckoutTable, models.CheckoutTable)).Error; err != nil {
		return err
	}

	// 每张单据内行号唯一
	for _, t := range []struct{ table, owner string }{
		{models.DeliveryLineTable, "delivery_id"},
		{models.CheckoutLineTable, "checkout_id"},
	} {
		if err := db.Exec(fmt.Sprintf(`
		  CREATE UNIQUE INDEX IF NOT EXISTS %s_position
		  ON %s (%s, position);
		`, t.table, t.table, t.owner)).Error; err != nil {
			return err
		}
	}
	return nil
}
