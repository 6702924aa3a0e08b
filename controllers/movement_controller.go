package controllers

import (
	"context"
	"errors"
	"net/http"

	"Gin_postgres_redis_inventory_ledger/app"
	"Gin_postgres_redis_inventory_ledger/db"
	"Gin_postgres_redis_inventory_ledger/ledger"
	"Gin_postgres_redis_inventory_ledger/models"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type MovementController struct{ *Srv }

func NewMovementController(s *Srv) *MovementController { return &MovementController{Srv: s} }

type lineReq struct {
	Item     string `json:"item" validate:"required,uuid"`
	Quantity int    `json:"quantity" validate:"required,gt=0"`
}

type deliveryReq struct {
	DeliveryNumber string    `json:"deliveryNumber" validate:"required"`
	DeliveryDate   string    `json:"deliveryDate" validate:"required"`
	Items          []lineReq `json:"items" validate:"required,min=1,dive"`
}

type checkoutReq struct {
	CheckoutNumber string    `json:"checkoutNumber" validate:"required"`
	CheckoutDate   string    `json:"checkoutDate" validate:"required"`
	Items          []lineReq `json:"items" validate:"required,min=1,dive"`
}

func toLines(in []lineReq) []models.MovementLine {
	out := make([]models.MovementLine, len(in))
	for i, l := range in {
		out[i] = models.MovementLine{ItemID: l.Item, Quantity: l.Quantity}
	}
	return out
}

// checkItems 写单据之前确认每个物品都在目录里
func (mc *MovementController) checkItems(ctx context.Context, lines []models.MovementLine) ([]string, error) {
	ids := make([]string, len(lines))
	for i, l := range lines {
		ids[i] = l.ItemID
	}
	return mc.Catalog.MissingItems(ctx, ids)
}

// POST /add-delivery
func (mc *MovementController) AddDelivery(c *gin.Context) {
	var req deliveryReq
	if !bindAndValidate(c, &req) {
		return
	}
	date, ok := parseDate(req.DeliveryDate)
	if !ok {
		fail(c, http.StatusBadRequest, "Invalid delivery date")
		return
	}
	d, err := models.NewDelivery(req.DeliveryNumber, date, toLines(req.Items))
	if err != nil {
		if !badInput(c, err) {
			internalError(c, err, "Failed to add delivery")
		}
		return
	}
	ctx := c.Request.Context()

	missing, err := mc.checkItems(ctx, d.MovementLines())
	if err != nil {
		internalError(c, err, "Failed to add delivery")
		return
	}
	if len(missing) > 0 {
		fail(c, http.StatusBadRequest, "Item not found: "+missing[0])
		return
	}

	if err := mc.Movements.CreateDelivery(ctx, d); err != nil {
		switch {
		case errors.Is(err, db.ErrDeliveryExists):
			fail(c, http.StatusConflict, "Delivery number already exists")
		case errors.Is(err, db.ErrUnknownItem):
			fail(c, http.StatusBadRequest, "Item not found")
		default:
			internalError(c, err, "Failed to add delivery")
		}
		return
	}

	// 单据已落库；逐行入库，失败的行之前的行保持生效
	applied, err := mc.Ledger.Apply(ctx, ledger.Inbound, d.MovementLines())
	mc.invalidateInventory(ctx)
	if err != nil {
		log.Error().Err(err).Str("delivery", d.DeliveryNumber).Int("applied", applied).Msg("delivery partially applied")
		internalError(c, err, "Failed to add delivery")
		return
	}

	c.JSON(http.StatusOK, app.H{
		"error":    false,
		"message":  "Delivery added successfully",
		"delivery": d,
	})
}

// POST /checkout
func (mc *MovementController) Checkout(c *gin.Context) {
	var req checkoutReq
	if !bindAndValidate(c, &req) {
		return
	}
	date, ok := parseDate(req.CheckoutDate)
	if !ok {
		fail(c, http.StatusBadRequest, "Invalid checkout date")
		return
	}
	co, err := models.NewCheckout(req.CheckoutNumber, date, toLines(req.Items))
	if err != nil {
		if !badInput(c, err) {
			internalError(c, err, "Failed to add checkout and update inventory")
		}
		return
	}
	ctx := c.Request.Context()

	missing, err := mc.checkItems(ctx, co.MovementLines())
	if err != nil {
		internalError(c, err, "Failed to add checkout and update inventory")
		return
	}
	if len(missing) > 0 {
		fail(c, http.StatusBadRequest, "Item not found in inventory: "+missing[0])
		return
	}

	if err := mc.Movements.CreateCheckout(ctx, co); err != nil {
		switch {
		case errors.Is(err, db.ErrCheckoutExists):
			fail(c, http.StatusConflict, "Checkout number already exists")
		case errors.Is(err, db.ErrUnknownItem):
			fail(c, http.StatusBadRequest, "Item not found in inventory")
		default:
			internalError(c, err, "Failed to add checkout and update inventory")
		}
		return
	}

	applied, err := mc.Ledger.Apply(ctx, ledger.Outbound, co.MovementLines())
	mc.invalidateInventory(ctx)
	if err != nil {
		var le *ledger.LineError
		if errors.As(err, &le) && ledger.IsStockError(err) {
			log.Warn().Str("checkout", co.CheckoutNumber).Int("applied", applied).Msg(le.Error())
			fail(c, http.StatusBadRequest, le.Error())
			return
		}
		internalError(c, err, "Failed to add checkout and update inventory")
		return
	}

	c.JSON(http.StatusOK, app.H{
		"error":    false,
		"message":  "Checkout and inventory update successful",
		"checkout": co,
	})
}

// GET /check-delivery-existence/:deliveryNumber
func (mc *MovementController) CheckDeliveryExistence(c *gin.Context) {
	number := c.Param("deliveryNumber")
	if number == "" {
		fail(c, http.StatusBadRequest, "Delivery number is required")
		return
	}
	exists, err := mc.Movements.DeliveryNumberExists(c.Request.Context(), number)
	if err != nil {
		internalError(c, err, "Error checking delivery existence")
		return
	}
	msg := "Delivery number does not exist"
	if exists {
		msg = "Delivery number already exists"
	}
	c.JSON(http.StatusOK, app.H{"exists": exists, "message": msg})
}

// GET /check-checkout-number/:checkoutNumber
func (mc *MovementController) CheckCheckoutNumber(c *gin.Context) {
	exists, err := mc.Movements.CheckoutNumberExists(c.Request.Context(), c.Param("checkoutNumber"))
	if err != nil {
		log.Error().Err(err).Msg("check checkout number")
		c.JSON(http.StatusInternalServerError, app.H{"message": "Server error"})
		return
	}
	c.JSON(http.StatusOK, app.H{"exists": exists})
}
