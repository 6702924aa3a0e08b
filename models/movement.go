package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	DeliveryTable     = "inv_deliveries"
	DeliveryLineTable = "inv_delivery_lines"
	CheckoutTable     = "inv_checkouts"
	CheckoutLineTable = "inv_checkout_lines"
)

// MovementLine is one (item, quantity) pair of a delivery or checkout.
type MovementLine struct {
	ItemID   string
	Quantity int
}

type Delivery struct {
	ID             string         `gorm:"type:uuid;primaryKey" json:"_id"`
	DeliveryNumber string         `gorm:"size:120;uniqueIndex;not null" json:"deliveryNumber"`
	DeliveryDate   time.Time      `gorm:"not null" json:"deliveryDate"`
	Lines          []DeliveryLine `gorm:"foreignKey:DeliveryID;constraint:OnDelete:CASCADE" json:"items"`
	CreatedAt      time.Time      `gorm:"index" json:"createdAt"`
	UpdatedAt      time.Time      `json:"updatedAt"`
}

type DeliveryLine struct {
	ID         uint   `gorm:"primaryKey" json:"_id"`
	DeliveryID string `gorm:"type:uuid;index;not null" json:"-"`
	Position   int    `gorm:"not null" json:"-"`
	ItemID     string `gorm:"type:uuid;index;not null" json:"item"`
	Quantity   int    `gorm:"not null" json:"quantity"`

	Item *Item `gorm:"foreignKey:ItemID;constraint:OnDelete:RESTRICT" json:"-"`
}

type Checkout struct {
	ID             string         `gorm:"type:uuid;primaryKey" json:"_id"`
	CheckoutNumber string         `gorm:"size:120;uniqueIndex;not null" json:"checkoutNumber"`
	CheckoutDate   time.Time      `gorm:"index;not null" json:"checkoutDate"`
	Lines          []CheckoutLine `gorm:"foreignKey:CheckoutID;constraint:OnDelete:CASCADE" json:"items"`
	CreatedAt      time.Time      `json:"createdAt"`
	UpdatedAt      time.Time      `json:"updatedAt"`
}

type CheckoutLine struct {
	ID         uint   `gorm:"primaryKey" json:"_id"`
	CheckoutID string `gorm:"type:uuid;index;not null" json:"-"`
	Position   int    `gorm:"not null" json:"-"`
	ItemID     string `gorm:"type:uuid;index;not null" json:"item"`
	Quantity   int    `gorm:"not null" json:"quantity"`

	Item *Item `gorm:"foreignKey:ItemID;constraint:OnDelete:RESTRICT" json:"-"`
}

func (Delivery) TableName() string     { return DeliveryTable }
func (DeliveryLine) TableName() string { return DeliveryLineTable }
func (Checkout) TableName() string     { return CheckoutTable }
func (CheckoutLine) TableName() string { return CheckoutLineTable }

func NewDelivery(number string, date time.Time, lines []MovementLine) (*Delivery, error) {
	number = strings.TrimSpace(number)
	if number == "" {
		return nil, invalid("deliveryNumber", "Delivery number is required")
	}
	if date.IsZero() {
		return nil, invalid("deliveryDate", "Delivery date is required")
	}
	if err := checkLines(lines); err != nil {
		return nil, err
	}
	d := &Delivery{ID: uuid.NewString(), DeliveryNumber: number, DeliveryDate: date.UTC()}
	for i, l := range lines {
		d.Lines = append(d.Lines, DeliveryLine{DeliveryID: d.ID, Position: i, ItemID: l.ItemID, Quantity: l.Quantity})
	}
	return d, nil
}

func NewCheckout(number string, date time.Time, lines []MovementLine) (*Checkout, error) {
	number = strings.TrimSpace(number)
	if number == "" {
		return nil, invalid("checkoutNumber", "Checkout number is required")
	}
	if date.IsZero() {
		return nil, invalid("checkoutDate", "Checkout date is required")
	}
	if err := checkLines(lines); err != nil {
		return nil, err
	}
	co := &Checkout{ID: uuid.NewString(), CheckoutNumber: number, CheckoutDate: date.UTC()}
	for i, l := range lines {
		co.Lines = append(co.Lines, CheckoutLine{CheckoutID: co.ID, Position: i, ItemID: l.ItemID, Quantity: l.Quantity})
	}
	return co, nil
}

// MovementLines returns the lines in submission order.
func (d *Delivery) MovementLines() []MovementLine {
	out := make([]MovementLine, len(d.Lines))
	for i, l := range d.Lines {
		out[i] = MovementLine{ItemID: l.ItemID, Quantity: l.Quantity}
	}
	return out
}

func (co *Checkout) MovementLines() []MovementLine {
	out := make([]MovementLine, len(co.Lines))
	for i, l := range co.Lines {
		out[i] = MovementLine{ItemID: l.ItemID, Quantity: l.Quantity}
	}
	return out
}

func checkLines(lines []MovementLine) error {
	if len(lines) == 0 {
		return invalid("items", "Items are required")
	}
	for _, l := range lines {
		if strings.TrimSpace(l.ItemID) == "" {
			return invalid("item", "Item reference is required")
		}
		if l.Quantity <= 0 {
			return invalid("quantity", "Quantity must be greater than zero")
		}
	}
	return nil
}
