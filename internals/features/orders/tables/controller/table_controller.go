package controller

import (
	"errors"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"isp392_backend/internals/features/orders/tables/dto"
	"isp392_backend/internals/features/orders/tables/model"
	helper "isp392_backend/internals/helpers"
)

type TableController struct {
	DB *gorm.DB
}

func NewTableController(db *gorm.DB) *TableController {
	return &TableController{DB: db}
}

func (ctrl *TableController) ListTables(c *fiber.Ctx) error {
	q := ctrl.DB.Model(&model.TableModel{})
	if status := strings.ToUpper(c.Query("status")); status != "" {
		if !model.IsValidTableStatus(status) {
			return helper.JsonError(c, fiber.StatusBadRequest, "Invalid table status")
		}
		q = q.Where("table_status = ?", status)
	}

	var tables []model.TableModel
	if err := q.Order("table_number").Find(&tables).Error; err != nil {
		log.Println("[ERROR] list tables:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to list tables")
	}
	return helper.JsonOK(c, "Table list", tables)
}

func (ctrl *TableController) CreateTable(c *fiber.Ctx) error {
	var req dto.CreateTableRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid input format")
	}
	if fieldErrs := helper.ValidateStruct(req); fieldErrs != nil {
		return helper.JsonValidationError(c, fieldErrs)
	}
	if req.Seats == 0 {
		req.Seats = 4
	}

	table := model.TableModel{
		TableNumber: req.Number,
		TableSeats:  req.Seats,
		TableStatus: model.TableStatusAvailable,
	}
	if err := ctrl.DB.Create(&table).Error; err != nil {
		low := strings.ToLower(err.Error())
		if strings.Contains(low, "duplicate key") || strings.Contains(low, "unique") {
			return helper.JsonError(c, fiber.StatusConflict, "A table with this number already exists")
		}
		log.Println("[ERROR] create table:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create table")
	}
	return helper.JsonCreated(c, "Table created", table)
}

func (ctrl *TableController) UpdateTable(c *fiber.Ctx) error {
	tableID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid table ID")
	}

	var req dto.UpdateTableRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid input format")
	}
	if fieldErrs := helper.ValidateStruct(req); fieldErrs != nil {
		return helper.JsonValidationError(c, fieldErrs)
	}

	var table model.TableModel
	if err := ctrl.DB.First(&table, "table_id = ?", tableID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Table not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch table")
	}

	updates := map[string]any{}
	if req.Number != nil {
		updates["table_number"] = *req.Number
	}
	if req.Seats != nil {
		updates["table_seats"] = *req.Seats
	}
	if req.Status != nil {
		updates["table_status"] = strings.ToUpper(*req.Status)
	}
	if len(updates) == 0 {
		return helper.JsonError(c, fiber.StatusBadRequest, "Nothing to update")
	}

	if err := ctrl.DB.Model(&table).Updates(updates).Error; err != nil {
		low := strings.ToLower(err.Error())
		if strings.Contains(low, "duplicate key") || strings.Contains(low, "unique") {
			return helper.JsonError(c, fiber.StatusConflict, "A table with this number already exists")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update table")
	}
	return helper.JsonUpdated(c, "Table updated", table)
}

func (ctrl *TableController) DeleteTable(c *fiber.Ctx) error {
	tableID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid table ID")
	}

	res := ctrl.DB.Delete(&model.TableModel{}, "table_id = ?", tableID)
	if res.Error != nil {
		log.Println("[ERROR] delete table:", res.Error)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to delete table")
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Table not found")
	}
	return helper.JsonDeleted(c, "Table deleted", fiber.Map{"table_id": tableID})
}
