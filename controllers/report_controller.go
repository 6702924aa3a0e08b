package controllers

import (
	"net/http"
	"time"

	"Gin_postgres_redis_inventory_ledger/app"

	"github.com/gin-gonic/gin"
)

type ReportController struct{ *Srv }

func NewReportController(s *Srv) *ReportController { return &ReportController{Srv: s} }

type reportReq struct {
	StartDate string `json:"startDate" validate:"required"`
	EndDate   string `json:"endDate" validate:"required"`
}

// window 解析日期范围，结束日期扩到当天最后一毫秒
func window(c *gin.Context) (time.Time, time.Time, bool) {
	var req reportReq
	if !bindAndValidate(c, &req) {
		return time.Time{}, time.Time{}, false
	}
	start, ok1 := parseDate(req.StartDate)
	end, ok2 := parseDate(req.EndDate)
	if !ok1 || !ok2 {
		fail(c, http.StatusBadRequest, "Invalid start or end date")
		return time.Time{}, time.Time{}, false
	}
	return start, endOfDay(end), true
}

// POST /generate-report-with-delivery-number
// 按录入时间（createdAt）筛选，不是 deliveryDate
func (rc *ReportController) DeliveryReport(c *gin.Context) {
	start, end, ok := window(c)
	if !ok {
		return
	}
	rows, err := rc.Movements.DeliveriesCreatedBetween(c.Request.Context(), start, end)
	if err != nil {
		internalError(c, err, "Failed to generate report")
		return
	}
	c.JSON(http.StatusOK, app.H{
		"error":      false,
		"message":    "Report generated successfully",
		"deliveries": rows,
	})
}

// POST /generate-report-with-invoice-number
func (rc *ReportController) CheckoutReport(c *gin.Context) {
	start, end, ok := window(c)
	if !ok {
		return
	}
	rows, err := rc.Movements.CheckoutsDatedBetween(c.Request.Context(), start, end)
	if err != nil {
		internalError(c, err, "Failed to generate report")
		return
	}
	c.JSON(http.StatusOK, app.H{
		"error":     false,
		"message":   "Report generated successfully",
		"checkouts": rows,
	})
}
