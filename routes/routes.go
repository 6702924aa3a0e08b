package routes

import (
	"Gin_postgres_redis_inventory_ledger/app"
	"Gin_postgres_redis_inventory_ledger/controllers"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine, a *app.App) {
	s := controllers.GetSrv(a)
	throttle := app.LoginThrottle(a.RDB, a.Config.LoginRateLimit, a.Config.LoginRateWindow)
	Register(r, s, throttle)
}

// Register 挂载全部接口。throttle 只作用于注册和登录，可以为 nil。
func Register(r *gin.Engine, s *controllers.Srv, throttle gin.HandlerFunc) {
	// 控制器
	accounts := controllers.GetAccountController(s)
	items := controllers.NewItemController(s)
	movements := controllers.NewMovementController(s)
	inventory := controllers.NewInventoryController(s)
	reports := controllers.NewReportController(s)

	// 复用的中间件
	authMW := app.BearerAuth(s.Tokens)

	r.GET("/healthz", s.Health)

	// ------------------------------
	// 账号
	// ------------------------------
	entry := r.Group("")
	if throttle != nil {
		entry.Use(throttle)
	}
	{
		entry.POST("/create-account", accounts.CreateAccount)
		entry.POST("/login", accounts.Login)
	}
	r.GET("/get-user", authMW, accounts.GetUser)

	// ------------------------------
	// 物品目录
	// ------------------------------
	r.POST("/add-item", items.AddItem)
	r.GET("/get-items", items.ListItems)
	r.POST("/get-item-by-serial", items.GetBySerial)

	// ------------------------------
	// 出入库（需要登录）
	// ------------------------------
	r.POST("/add-delivery", authMW, movements.AddDelivery)
	r.POST("/checkout", authMW, movements.Checkout)
	r.GET("/check-delivery-existence/:deliveryNumber", movements.CheckDeliveryExistence)
	r.GET("/check-checkout-number/:checkoutNumber", movements.CheckCheckoutNumber)

	// 库存 & 报表
	r.GET("/get-inventory", inventory.GetInventory)
	r.POST("/generate-report-with-delivery-number", reports.DeliveryReport)
	r.POST("/generate-report-with-invoice-number", reports.CheckoutReport)
}
