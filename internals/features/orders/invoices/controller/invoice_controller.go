package controller

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	planModel "isp392_backend/internals/features/kitchen/daily_plans/model"
	dishModel "isp392_backend/internals/features/menu/dishes/model"
	"isp392_backend/internals/features/orders/invoices/dto"
	"isp392_backend/internals/features/orders/invoices/model"
	"isp392_backend/internals/features/orders/invoices/service"
	tableModel "isp392_backend/internals/features/orders/tables/model"
	helper "isp392_backend/internals/helpers"
)

type InvoiceController struct {
	DB *gorm.DB
}

func NewInvoiceController(db *gorm.DB) *InvoiceController {
	return &InvoiceController{DB: db}
}

// CreateInvoice opens a bill for a table. Prices and names are snapshotted
// from the dishes table; today's approved daily plans lose remaining stock
// for each ordered dish.
func (ctrl *InvoiceController) CreateInvoice(c *fiber.Ctx) error {
	staffID, err := localStaffID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	var req dto.CreateInvoiceRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid input format")
	}
	if fieldErrs := helper.ValidateStruct(req); fieldErrs != nil {
		return helper.JsonValidationError(c, fieldErrs)
	}
	tableID, err := uuid.Parse(req.TableID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid table ID")
	}

	dishIDs := make([]uuid.UUID, 0, len(req.Items))
	qtyByDish := make(map[uuid.UUID]int, len(req.Items))
	for _, item := range req.Items {
		did, err := uuid.Parse(item.DishID)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Invalid dish ID: "+item.DishID)
		}
		if _, dup := qtyByDish[did]; dup {
			return helper.JsonError(c, fiber.StatusBadRequest, "Duplicate dish in order: "+item.DishID)
		}
		dishIDs = append(dishIDs, did)
		qtyByDish[did] = item.Quantity
	}

	var dishes []dishModel.DishModel
	if err := ctrl.DB.Where("dish_id IN ?", dishIDs).Find(&dishes).Error; err != nil {
		log.Println("[ERROR] load dishes for invoice:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load dishes")
	}
	if len(dishes) != len(dishIDs) {
		return helper.JsonError(c, fiber.StatusBadRequest, "One or more dishes do not exist")
	}

	invoice := model.InvoiceModel{
		InvoiceOrderID: newOrderID(),
		InvoiceTableID: tableID,
		InvoiceStaffID: staffID,
		InvoiceStatus:  model.InvoiceStatusPending,
	}
	items := make([]model.InvoiceItemModel, 0, len(dishes))
	for _, d := range dishes {
		qty := qtyByDish[d.DishID]
		sub := d.DishPrice * int64(qty)
		invoice.InvoiceTotal += sub
		items = append(items, model.InvoiceItemModel{
			InvoiceItemDishID:   d.DishID,
			InvoiceItemName:     d.DishName,
			InvoiceItemQuantity: qty,
			InvoiceItemPrice:    d.DishPrice,
			InvoiceItemSubtotal: sub,
		})
	}

	today := helper.TodayICT()
	err = ctrl.DB.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&tableModel.TableModel{}).
			Where("table_id = ?", tableID).
			Update("table_status", tableModel.TableStatusOccupied)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return fiber.NewError(fiber.StatusNotFound, "Table not found")
		}

		if err := tx.Create(&invoice).Error; err != nil {
			return err
		}
		for i := range items {
			items[i].InvoiceItemInvoiceID = invoice.InvoiceID
		}
		if err := tx.Create(&items).Error; err != nil {
			return err
		}

		// Stock bookkeeping; floor at zero, never block the sale.
		for did, qty := range qtyByDish {
			if err := tx.Model(&planModel.DailyPlanModel{}).
				Where("daily_plan_item_id = ? AND daily_plan_date = ? AND daily_plan_status = TRUE", did, today).
				Update("daily_plan_remaining_quantity",
					gorm.Expr("GREATEST(daily_plan_remaining_quantity - ?, 0)", qty)).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if fe, ok := err.(*fiber.Error); ok {
			return helper.JsonError(c, fe.Code, fe.Message)
		}
		log.Println("[ERROR] create invoice:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create invoice")
	}

	invoice.Items = items
	return helper.JsonCreated(c, "Invoice created", invoice)
}

// ListToday returns invoices opened during the current Indochina day.
func (ctrl *InvoiceController) ListToday(c *fiber.Ctx) error {
	start := helper.StartOfDayICT(time.Now())
	end := start.Add(24 * time.Hour)

	q := ctrl.DB.Preload("Items").
		Where("created_at >= ? AND created_at < ?", start, end)
	if status := strings.ToUpper(c.Query("status")); status != "" {
		q = q.Where("invoice_status = ?", status)
	}

	var invoices []model.InvoiceModel
	if err := q.Order("created_at DESC").Find(&invoices).Error; err != nil {
		log.Println("[ERROR] list today invoices:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to list invoices")
	}
	return helper.JsonOK(c, "Today's invoices", invoices)
}

func (ctrl *InvoiceController) GetInvoice(c *fiber.Ctx) error {
	invoiceID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid invoice ID")
	}

	var invoice model.InvoiceModel
	if err := ctrl.DB.Preload("Items").First(&invoice, "invoice_id = ?", invoiceID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Invoice not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch invoice")
	}
	return helper.JsonOK(c, "Invoice detail", invoice)
}

// PayInvoice returns a Snap token for a pending invoice so the client can
// open the gateway's payment page.
func (ctrl *InvoiceController) PayInvoice(c *fiber.Ctx) error {
	invoiceID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid invoice ID")
	}

	var invoice model.InvoiceModel
	if err := ctrl.DB.First(&invoice, "invoice_id = ?", invoiceID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Invoice not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch invoice")
	}
	if invoice.InvoiceStatus != model.InvoiceStatusPending {
		return helper.JsonError(c, fiber.StatusConflict, "Invoice is not payable")
	}

	customer, _ := c.Locals("username").(string)
	token, err := service.GenerateSnapToken(invoice, customer)
	if err != nil {
		log.Println("[ERROR] snap token:", err)
		return helper.JsonError(c, fiber.StatusBadGateway, "Payment gateway is unavailable")
	}

	if err := ctrl.DB.Model(&invoice).
		Update("invoice_method", model.PaymentMethodGateway).Error; err != nil {
		log.Println("[WARN] record payment method:", err)
	}
	return helper.JsonOK(c, "Payment token created", fiber.Map{
		"invoice_id": invoice.InvoiceID,
		"order_id":   invoice.InvoiceOrderID,
		"snap_token": token,
	})
}

// SettleInvoice marks a pending invoice paid at the counter and frees the
// table. Gateway payments go through the webhook instead.
func (ctrl *InvoiceController) SettleInvoice(c *fiber.Ctx) error {
	invoiceID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid invoice ID")
	}

	var req dto.SettleInvoiceRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid input format")
	}
	if fieldErrs := helper.ValidateStruct(req); fieldErrs != nil {
		return helper.JsonValidationError(c, fieldErrs)
	}

	var invoice model.InvoiceModel
	err = ctrl.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&invoice, "invoice_id = ?", invoiceID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Invoice not found")
			}
			return err
		}
		if invoice.InvoiceStatus != model.InvoiceStatusPending {
			return fiber.NewError(fiber.StatusConflict, "Invoice is not payable")
		}
		return ctrl.markPaid(tx, &invoice, strings.ToUpper(req.Method))
	})
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonUpdated(c, "Invoice settled", invoice)
}

// HandleNotification is the gateway webhook. It is unauthenticated by
// contract, keyed on the order id we issued.
func (ctrl *InvoiceController) HandleNotification(c *fiber.Ctx) error {
	var body map[string]any
	if err := c.BodyParser(&body); err != nil {
		return c.SendStatus(fiber.StatusBadRequest)
	}
	orderID, _ := body["order_id"].(string)
	txStatus, _ := body["transaction_status"].(string)
	if orderID == "" || txStatus == "" {
		return c.SendStatus(fiber.StatusBadRequest)
	}
	log.Printf("[INFO] payment notification: order=%s status=%s", orderID, txStatus)

	err := ctrl.DB.Transaction(func(tx *gorm.DB) error {
		var invoice model.InvoiceModel
		if err := tx.First(&invoice, "invoice_order_id = ?", orderID).Error; err != nil {
			return err
		}

		switch txStatus {
		case "settlement", "capture", "success":
			return ctrl.markPaid(tx, &invoice, model.PaymentMethodGateway)
		case "deny", "cancel", "expire", "failure":
			return tx.Model(&invoice).
				Update("invoice_status", model.InvoiceStatusFailed).Error
		default:
			// pending and friends: nothing to record yet
			return nil
		}
	})
	if err != nil {
		log.Println("[ERROR] payment notification:", err)
		return c.SendStatus(fiber.StatusInternalServerError)
	}
	return c.SendStatus(fiber.StatusOK)
}

// markPaid flips the invoice and releases its table when no other open
// invoice remains on it.
func (ctrl *InvoiceController) markPaid(tx *gorm.DB, invoice *model.InvoiceModel, method string) error {
	now := time.Now()
	if err := tx.Model(invoice).Updates(map[string]any{
		"invoice_status":  model.InvoiceStatusPaid,
		"invoice_method":  method,
		"invoice_paid_at": now,
	}).Error; err != nil {
		return err
	}
	invoice.InvoiceStatus = model.InvoiceStatusPaid
	invoice.InvoiceMethod = method
	invoice.InvoicePaidAt = &now

	var open int64
	if err := tx.Model(&model.InvoiceModel{}).
		Where("invoice_table_id = ? AND invoice_status = ?", invoice.InvoiceTableID, model.InvoiceStatusPending).
		Count(&open).Error; err != nil {
		return err
	}
	if open == 0 {
		return tx.Model(&tableModel.TableModel{}).
			Where("table_id = ?", invoice.InvoiceTableID).
			Update("table_status", tableModel.TableStatusAvailable).Error
	}
	return nil
}

func newOrderID() string {
	return fmt.Sprintf("INV-%s", strings.ToUpper(uuid.NewString()[:13]))
}

func localStaffID(c *fiber.Ctx) (uuid.UUID, error) {
	raw, _ := c.Locals("staff_id").(string)
	return uuid.Parse(raw)
}
