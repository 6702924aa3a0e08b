package db

import (
	"time"

	"Gin_postgres_redis_inventory_ledger/models"
)

// ItemSummary is the catalog detail joined into inventory and report rows.
type ItemSummary struct {
	ID         string `json:"_id"`
	ItemType   string `json:"itemType"`
	ItemDesc   string `json:"itemDesc"`
	SizeSource string `json:"sizeSource"`
	SerialNo   string `json:"serialNo"`
}

func summarize(it *models.Item) *ItemSummary {
	if it == nil {
		return nil
	}
	return &ItemSummary{
		ID:         it.ID,
		ItemType:   it.ItemType,
		ItemDesc:   it.ItemDesc,
		SizeSource: it.SizeSource,
		SerialNo:   it.SerialNo,
	}
}

type InventoryRow struct {
	ID        string       `json:"_id"`
	Item      *ItemSummary `json:"item"`
	Quantity  int          `json:"quantity"`
	UpdatedAt time.Time    `json:"updatedAt"`
}

type ReportLine struct {
	Item     *ItemSummary `json:"item"`
	Quantity int          `json:"quantity"`
}

type DeliveryReportRow struct {
	ID             string       `json:"_id"`
	DeliveryNumber string       `json:"deliveryNumber"`
	DeliveryDate   time.Time    `json:"deliveryDate"`
	Items          []ReportLine `json:"items"`
	CreatedAt      time.Time    `json:"createdAt"`
	UpdatedAt      time.Time    `json:"updatedAt"`
}

type CheckoutReportRow struct {
	ID             string       `json:"_id"`
	CheckoutNumber string       `json:"checkoutNumber"`
	CheckoutDate   time.Time    `json:"checkoutDate"`
	Items          []ReportLine `json:"items"`
	CreatedAt      time.Time    `json:"createdAt"`
	UpdatedAt      time.Time    `json:"updatedAt"`
}

func deliveryRow(d *models.Delivery) DeliveryReportRow {
	row := DeliveryReportRow{
		ID:             d.ID,
		DeliveryNumber: d.DeliveryNumber,
		DeliveryDate:   d.DeliveryDate,
		Items:          make([]ReportLine, 0, len(d.Lines)),
		CreatedAt:      d.CreatedAt,
		UpdatedAt:      d.UpdatedAt,
	}
	for _, l := range d.Lines {
		row.Items = append(row.Items, ReportLine{Item: summarize(l.Item), Quantity: l.Quantity})
	}
	return row
}

func checkoutRow(co *models.Checkout) CheckoutReportRow {
	row := CheckoutReportRow{
		ID:             co.ID,
		CheckoutNumber: co.CheckoutNumber,
		CheckoutDate:   co.CheckoutDate,
		Items:          make([]ReportLine, 0, len(co.Lines)),
		CreatedAt:      co.CreatedAt,
		UpdatedAt:      co.UpdatedAt,
	}
	for _, l := range co.Lines {
		row.Items = append(row.Items, ReportLine{Item: summarize(l.Item), Quantity: l.Quantity})
	}
	return row
}
