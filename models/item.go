package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

const ItemTable = "inv_items"

// Item 目录条目，创建后不可修改。
type Item struct {
	ID         string    `gorm:"type:uuid;primaryKey" json:"_id"`
	ItemType   string    `gorm:"size:120;not null" json:"itemType"`
	ItemDesc   string    `gorm:"size:255;not null" json:"itemDesc"`
	SizeSource string    `gorm:"size:120;not null" json:"sizeSource"`
	SerialNo   string    `gorm:"size:120;uniqueIndex;not null" json:"serialNo"` // 唯一编号（条码）
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

func (Item) TableName() string { return ItemTable }

// NewItem builds a catalog item with a fresh identity. Every field is required.
func NewItem(itemType, itemDesc, sizeSource, serialNo string) (*Item, error) {
	it := &Item{
		ID:         uuid.NewString(),
		ItemType:   strings.TrimSpace(itemType),
		ItemDesc:   strings.TrimSpace(itemDesc),
		SizeSource: strings.TrimSpace(sizeSource),
		SerialNo:   strings.TrimSpace(serialNo),
	}
	switch {
	case it.ItemType == "":
		return nil, invalid("itemType", "Item Type is required")
	case it.ItemDesc == "":
		return nil, invalid("itemDesc", "Item Description is required")
	case it.SizeSource == "":
		return nil, invalid("sizeSource", "Size/Source is required")
	case it.SerialNo == "":
		return nil, invalid("serialNo", "Serial Number is required")
	}
	return it, nil
}
