package controllers

import (
	"net/http"

	"Gin_postgres_redis_inventory_ledger/cache"

	"github.com/gin-gonic/gin"
)

type InventoryController struct{ *Srv }

func NewInventoryController(s *Srv) *InventoryController { return &InventoryController{Srv: s} }

// GET /get-inventory 返回裸数组（不包 error/message）
func (ic *InventoryController) GetInventory(c *gin.Context) {
	ctx := c.Request.Context()
	gen := cache.NoGeneration
	if ic.Cache != nil {
		rows, g, ok := ic.Cache.Get(ctx)
		if ok {
			c.JSON(http.StatusOK, rows)
			return
		}
		gen = g
	}

	// 代号在读库之前取得；期间有出入库的话回写作废
	rows, err := ic.Inventory.ListInventory(ctx)
	if err != nil {
		internalError(c, err, "Error fetching inventory data")
		return
	}
	if ic.Cache != nil {
		ic.Cache.Set(ctx, gen, rows)
	}
	c.JSON(http.StatusOK, rows)
}
