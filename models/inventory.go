package models

import "time"

const InventoryTable = "inv_inventory"

// InventoryEntry is the ledger row for one item. The quantity check and the
// unique item_id index are enforced by Postgres.
type InventoryEntry struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"_id"`
	ItemID    string    `gorm:"type:uuid;uniqueIndex;not null" json:"item"`
	Quantity  int       `gorm:"not null;default:0;check:chk_inv_inventory_quantity,quantity >= 0" json:"quantity"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Item *Item `gorm:"foreignKey:ItemID;constraint:OnDelete:RESTRICT" json:"-"`
}

func (InventoryEntry) TableName() string { return InventoryTable }
