package controller

import (
	"errors"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"isp392_backend/internals/constants"
	"isp392_backend/internals/features/users/staff/dto"
	"isp392_backend/internals/features/users/staff/model"
	helper "isp392_backend/internals/helpers"
)

type StaffController struct {
	DB *gorm.DB
}

func NewStaffController(db *gorm.DB) *StaffController {
	return &StaffController{DB: db}
}

// ListStaff returns a page of accounts. ?exclude_roles=ADMIN matches what the
// manager dashboard asks for.
func (ctrl *StaffController) ListStaff(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 6, 100)

	q := ctrl.DB.Model(&model.StaffModel{})
	if raw := strings.TrimSpace(c.Query("exclude_roles")); raw != "" {
		excluded := strings.Split(strings.ToUpper(raw), ",")
		q = q.Where("staff_role NOT IN ?", excluded)
	}
	if role := strings.ToUpper(strings.TrimSpace(c.Query("role"))); role != "" {
		q = q.Where("staff_role = ?", role)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		log.Println("[ERROR] count staff:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to list staff")
	}

	var staffs []model.StaffModel
	if err := q.Order("created_at DESC").
		Offset(paging.Offset).Limit(paging.Limit).
		Find(&staffs).Error; err != nil {
		log.Println("[ERROR] list staff:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to list staff")
	}

	return helper.JsonList(c, "Staff list",
		dto.ToStaffResponses(staffs),
		helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage))
}

// FindByUsername backs the dashboard's profile lookup.
func (ctrl *StaffController) FindByUsername(c *fiber.Ctx) error {
	username := strings.TrimSpace(c.Params("username"))
	if username == "" {
		return helper.JsonError(c, fiber.StatusBadRequest, "Username is required")
	}

	var staff model.StaffModel
	if err := ctrl.DB.Where("staff_user_name = ?", username).First(&staff).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Staff not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch staff")
	}
	return helper.JsonOK(c, "Staff detail", dto.ToStaffResponse(staff))
}

func (ctrl *StaffController) CreateStaff(c *fiber.Ctx) error {
	var req dto.CreateStaffRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid input format")
	}
	if fieldErrs := helper.ValidateStruct(req); fieldErrs != nil {
		return helper.JsonValidationError(c, fieldErrs)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to hash password")
	}

	staff := model.StaffModel{
		StaffUserName: strings.TrimSpace(req.UserName),
		StaffFullName: strings.TrimSpace(req.FullName),
		StaffEmail:    req.Email,
		StaffPhone:    req.Phone,
		StaffPassword: string(hashed),
		StaffRole:     strings.ToUpper(req.Role),
		StaffIsActive: true,
	}
	if err := ctrl.DB.Create(&staff).Error; err != nil {
		low := strings.ToLower(err.Error())
		if strings.Contains(low, "duplicate key") || strings.Contains(low, "unique") {
			return helper.JsonError(c, fiber.StatusConflict, "Username or email already registered")
		}
		log.Println("[ERROR] create staff:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create staff")
	}

	return helper.JsonCreated(c, "Staff created", dto.ToStaffResponse(staff))
}

func (ctrl *StaffController) UpdateStaff(c *fiber.Ctx) error {
	staffID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid staff ID")
	}

	var req dto.UpdateStaffRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid input format")
	}
	if fieldErrs := helper.ValidateStruct(req); fieldErrs != nil {
		return helper.JsonValidationError(c, fieldErrs)
	}

	var staff model.StaffModel
	if err := ctrl.DB.First(&staff, "staff_id = ?", staffID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Staff not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch staff")
	}

	// ADMIN accounts are not editable through the dashboard
	if staff.StaffRole == constants.RoleAdmin {
		return helper.JsonError(c, fiber.StatusForbidden, "Admin accounts cannot be modified")
	}

	updates := map[string]any{}
	if req.FullName != nil {
		updates["staff_full_name"] = strings.TrimSpace(*req.FullName)
	}
	if req.Email != nil {
		updates["staff_email"] = req.Email
	}
	if req.Phone != nil {
		updates["staff_phone"] = req.Phone
	}
	if req.Role != nil {
		updates["staff_role"] = strings.ToUpper(*req.Role)
	}
	if req.IsActive != nil {
		updates["staff_is_active"] = *req.IsActive
	}
	if len(updates) == 0 {
		return helper.JsonError(c, fiber.StatusBadRequest, "Nothing to update")
	}

	if err := ctrl.DB.Model(&staff).Updates(updates).Error; err != nil {
		low := strings.ToLower(err.Error())
		if strings.Contains(low, "duplicate key") || strings.Contains(low, "unique") {
			return helper.JsonError(c, fiber.StatusConflict, "Email already registered")
		}
		log.Println("[ERROR] update staff:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update staff")
	}

	return helper.JsonUpdated(c, "Staff updated", dto.ToStaffResponse(staff))
}

func (ctrl *StaffController) DeleteStaff(c *fiber.Ctx) error {
	staffID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid staff ID")
	}

	var staff model.StaffModel
	if err := ctrl.DB.First(&staff, "staff_id = ?", staffID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Staff not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch staff")
	}
	if staff.StaffRole == constants.RoleAdmin {
		return helper.JsonError(c, fiber.StatusForbidden, "Admin accounts cannot be deleted")
	}

	if err := ctrl.DB.Delete(&staff).Error; err != nil {
		log.Println("[ERROR] delete staff:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to delete staff")
	}
	return helper.JsonDeleted(c, "Staff deleted", fiber.Map{"staff_id": staffID})
}
