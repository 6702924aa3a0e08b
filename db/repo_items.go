package db

import (
	"context"
	"errors"
	"fmt"

	"Gin_postgres_redis_inventory_ledger/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CreateItem 原子操作 = 新建物品 + 零库存台账
func (r *Repo) CreateItem(ctx context.Context, it *models.Item) error {
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(it).Error; err != nil {
			return err
		}
		entry := &models.InventoryEntry{ID: uuid.NewString(), ItemID: it.ID, Quantity: 0}
		return tx.Create(entry).Error
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrItemExists
	}
	if err != nil {
		return fmt.Errorf("insert item: %w", err)
	}
	return nil
}

func (r *Repo) ListItems(ctx context.Context) ([]models.Item, error) {
	items := []models.Item{}
	err := r.DB.WithContext(ctx).Order("created_at ASC").Find(&items).Error
	return items, err
}

func (r *Repo) FindItemBySerial(ctx context.Context, serialNo string) (*models.Item, error) {
	var it models.Item
	if err := r.DB.WithContext(ctx).Where("serial_no = ?", serialNo).First(&it).Error; err != nil {
		return nil, notFound(err)
	}
	return &it, nil
}

// MissingItems returns the ids (in input order, deduplicated) that have no
// catalog row.
func (r *Repo) MissingItems(ctx context.Context, ids []string) ([]string, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var found []string
	if err := r.DB.WithContext(ctx).Model(&models.Item{}).
		Where("id IN ?", ids).
		Pluck("id", &found).Error; err != nil {
		return nil, err
	}
	known := make(map[string]bool, len(found))
	for _, id := range found {
		known[id] = true
	}
	var missing []string
	for _, id := range ids {
		if !known[id] {
			missing = append(missing, id)
			known[id] = true
		}
	}
	return missing, nil
}
