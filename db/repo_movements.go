package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"Gin_postgres_redis_inventory_ledger/models"

	"gorm.io/gorm"
)

func (r *Repo) CreateDelivery(ctx context.Context, d *models.Delivery) error {
	err := r.DB.WithContext(ctx).Create(d).Error
	switch {
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrDeliveryExists
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return ErrUnknownItem
	case err != nil:
		return fmt.Errorf("insert delivery: %w", err)
	}
	return nil
}

func (r *Repo) CreateCheckout(ctx context.Context, co *models.Checkout) error {
	err := r.DB.WithContext(ctx).Create(co).Error
	switch {
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrCheckoutExists
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return ErrUnknownItem
	case err != nil:
		return fmt.Errorf("insert checkout: %w", err)
	}
	return nil
}

func (r *Repo) DeliveryNumberExists(ctx context.Context, number string) (bool, error) {
	var n int64
	err := r.DB.WithContext(ctx).Model(&models.Delivery{}).
		Where("delivery_number = ?", number).
		Count(&n).Error
	return n > 0, err
}

func (r *Repo) CheckoutNumberExists(ctx context.Context, number string) (bool, error) {
	var n int64
	err := r.DB.WithContext(ctx).Model(&models.Checkout{}).
		Where("checkout_number = ?", number).
		Count(&n).Error
	return n > 0, err
}

func orderedLines(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }

// DeliveriesCreatedBetween filters on created_at (not delivery_date), newest first.
func (r *Repo) DeliveriesCreatedBetween(ctx context.Context, start, end time.Time) ([]DeliveryReportRow, error) {
	var ds []models.Delivery
	err := r.DB.WithContext(ctx).
		Preload("Lines", orderedLines).
		Preload("Lines.Item").
		Where("created_at >= ? AND created_at <= ?", start, end).
		Order("created_at DESC").
		Find(&ds).Error
	if err != nil {
		return nil, err
	}
	rows := make([]DeliveryReportRow, 0, len(ds))
	for i := range ds {
		rows = append(rows, deliveryRow(&ds[i]))
	}
	return rows, nil
}

// CheckoutsDatedBetween filters on checkout_date, newest first.
func (r *Repo) CheckoutsDatedBetween(ctx context.Context, start, end time.Time) ([]CheckoutReportRow, error) {
	var cs []models.Checkout
	err := r.DB.WithContext(ctx).
		Preload("Lines", orderedLines).
		Preload("Lines.Item").
		Where("checkout_date >= ? AND checkout_date <= ?", start, end).
		Order("checkout_date DESC").
		Find(&cs).Error
	if err != nil {
		return nil, err
	}
	rows := make([]CheckoutReportRow, 0, len(cs))
	for i := range cs {
		rows = append(rows, checkoutRow(&cs[i]))
	}
	return rows, nil
}
