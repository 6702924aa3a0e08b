package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"Gin_postgres_redis_inventory_ledger/ledger"
	"Gin_postgres_redis_inventory_ledger/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var _ ledger.Store = (*Repo)(nil)

// AddStock 入库：没有台账就建一条，有就累加。单条 upsert，并发安全。
func (r *Repo) AddStock(ctx context.Context, itemID string, qty int) (int, error) {
	entry := models.InventoryEntry{ID: uuid.NewString(), ItemID: itemID, Quantity: qty}
	err := r.DB.WithContext(ctx).
		Clauses(
			clause.OnConflict{
				Columns: []clause.Column{{Name: "item_id"}},
				DoUpdates: clause.Assignments(map[string]any{
					"quantity":   gorm.Expr(models.InventoryTable + ".quantity + EXCLUDED.quantity"),
					"updated_at": gorm.Expr("EXCLUDED.updated_at"),
				}),
			},
			clause.Returning{Columns: []clause.Column{{Name: "quantity"}}},
		).
		Create(&entry).Error
	if err != nil {
		return 0, fmt.Errorf("add stock for %s: %w", itemID, err)
	}
	return entry.Quantity, nil
}

// RemoveStock 出库：只有库存足够时才扣减（条件 UPDATE），不会出现负数。
func (r *Repo) RemoveStock(ctx context.Context, itemID string, qty int) (int, error) {
	var entry models.InventoryEntry
	res := r.DB.WithContext(ctx).
		Model(&entry).
		Clauses(clause.Returning{Columns: []clause.Column{{Name: "quantity"}}}).
		Where("item_id = ? AND quantity >= ?", itemID, qty).
		UpdateColumns(map[string]any{
			"quantity":   gorm.Expr("quantity - ?", qty),
			"updated_at": time.Now().UTC(),
		})
	if res.Error != nil {
		return 0, fmt.Errorf("remove stock for %s: %w", itemID, res.Error)
	}
	if res.RowsAffected > 0 {
		return entry.Quantity, nil
	}

	// 没有命中：区分“没有台账”和“库存不足”
	current, err := r.StockOf(ctx, itemID)
	if errors.Is(err, ErrNotFound) {
		return 0, ledger.ErrNotInInventory
	}
	if err != nil {
		return 0, fmt.Errorf("remove stock for %s: %w", itemID, err)
	}
	return current, ledger.ErrInsufficientStock
}

// ListInventory joins every ledger entry with its catalog item.
func (r *Repo) ListInventory(ctx context.Context) ([]InventoryRow, error) {
	var flat []struct {
		ID         string
		Quantity   int
		UpdatedAt  time.Time
		ItemID     *string
		ItemType   *string
		ItemDesc   *string
		SizeSource *string
		SerialNo   *string
	}
	err := r.DB.WithContext(ctx).
		Table(models.InventoryTable + " v").
		Select(`
			v.id, v.quantity, v.updated_at,
			i.id AS item_id, i.item_type, i.item_desc, i.size_source, i.serial_no
		`).
		Joins("LEFT JOIN " + models.ItemTable + " i ON i.id = v.item_id").
		Order("i.created_at ASC").
		Scan(&flat).Error
	if err != nil {
		return nil, err
	}

	rows := make([]InventoryRow, 0, len(flat))
	for _, f := range flat {
		row := InventoryRow{ID: f.ID, Quantity: f.Quantity, UpdatedAt: f.UpdatedAt}
		if f.ItemID != nil {
			row.Item = &ItemSummary{
				ID:         *f.ItemID,
				ItemType:   deref(f.ItemType),
				ItemDesc:   deref(f.ItemDesc),
				SizeSource: deref(f.SizeSource),
				SerialNo:   deref(f.SerialNo),
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// StockOf returns the ledger quantity of one item.
func (r *Repo) StockOf(ctx context.Context, itemID string) (int, error) {
	var entry models.InventoryEntry
	if err := r.DB.WithContext(ctx).Where("item_id = ?", itemID).First(&entry).Error; err != nil {
		return 0, notFound(err)
	}
	return entry.Quantity, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
