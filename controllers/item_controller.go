package controllers

import (
	"errors"
	"net/http"
	"strings"

	"Gin_postgres_redis_inventory_ledger/app"
	"Gin_postgres_redis_inventory_ledger/db"
	"Gin_postgres_redis_inventory_ledger/models"

	"github.com/gin-gonic/gin"
)

type ItemController struct{ *Srv }

func NewItemController(s *Srv) *ItemController { return &ItemController{Srv: s} }

type addItemReq struct {
	ItemType   string `json:"itemType" validate:"required"`
	ItemDesc   string `json:"itemDesc" validate:"required"`
	SizeSource string `json:"sizeSource" validate:"required"`
	SerialNo   string `json:"serialNo" validate:"required"`
}

type serialReq struct {
	SerialNo string `json:"serialNo" validate:"required"`
}

func itemExists(c *gin.Context) {
	c.JSON(http.StatusOK, app.H{"error": true, "message": "Item already exists"})
}

// POST /add-item
func (ic *ItemController) AddItem(c *gin.Context) {
	var req addItemReq
	if !bindAndValidate(c, &req) {
		return
	}
	it, err := models.NewItem(req.ItemType, req.ItemDesc, req.SizeSource, req.SerialNo)
	if err != nil {
		if !badInput(c, err) {
			internalError(c, err, "Failed to add item")
		}
		return
	}
	ctx := c.Request.Context()

	if _, err := ic.Catalog.FindItemBySerial(ctx, it.SerialNo); err == nil {
		itemExists(c)
		return
	} else if !errors.Is(err, db.ErrNotFound) {
		internalError(c, err, "Failed to add item")
		return
	}

	if err := ic.Catalog.CreateItem(ctx, it); err != nil {
		if errors.Is(err, db.ErrItemExists) {
			itemExists(c)
			return
		}
		internalError(c, err, "Failed to add item")
		return
	}
	ic.invalidateInventory(ctx)

	c.JSON(http.StatusOK, app.H{"error": false, "message": "Item added successfully", "item": it})
}

// GET /get-items
func (ic *ItemController) ListItems(c *gin.Context) {
	items, err := ic.Catalog.ListItems(c.Request.Context())
	if err != nil {
		internalError(c, err, "Failed to retrieve items")
		return
	}
	c.JSON(http.StatusOK, app.H{"error": false, "items": items})
}

// POST /get-item-by-serial（扫码）
func (ic *ItemController) GetBySerial(c *gin.Context) {
	var req serialReq
	if !bindAndValidate(c, &req) {
		return
	}
	it, err := ic.Catalog.FindItemBySerial(c.Request.Context(), strings.TrimSpace(req.SerialNo))
	if errors.Is(err, db.ErrNotFound) {
		fail(c, http.StatusNotFound, "Item not found")
		return
	}
	if err != nil {
		internalError(c, err, "Failed to retrieve item")
		return
	}
	c.JSON(http.StatusOK, app.H{"error": false, "item": it})
}
