package details

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"isp392_backend/internals/constants"
	invoiceController "isp392_backend/internals/features/orders/invoices/controller"
	tableController "isp392_backend/internals/features/orders/tables/controller"
	authMiddleware "isp392_backend/internals/middlewares/auth"
)

// PaymentWebhookRoutes mounts the gateway callback. No auth: the gateway
// posts here directly.
func PaymentWebhookRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := invoiceController.NewInvoiceController(db)
	r.Post("/invoices/notification", ctrl.HandleNotification)
}

func OrdersRoutes(r fiber.Router, db *gorm.DB) {
	invoices := invoiceController.NewInvoiceController(db)
	tables := tableController.NewTableController(db)

	managerOnly := authMiddleware.OnlyRoles(
		fmt.Sprintf(constants.ErrOnlyManagersCanAccess, "table management"),
		constants.RoleAdmin, constants.RoleManager,
	)

	r.Get("/tables", tables.ListTables)
	r.Post("/tables", managerOnly, tables.CreateTable)
	r.Patch("/tables/:id", managerOnly, tables.UpdateTable)
	r.Delete("/tables/:id", managerOnly, tables.DeleteTable)

	r.Post("/invoices", invoices.CreateInvoice)
	r.Get("/invoices/today", invoices.ListToday)
	r.Get("/invoices/:id", invoices.GetInvoice)
	r.Post("/invoices/:id/pay", invoices.PayInvoice)
	r.Patch("/invoices/:id/settle", invoices.SettleInvoice)
}
