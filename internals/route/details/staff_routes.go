package details

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"isp392_backend/internals/constants"
	staffController "isp392_backend/internals/features/users/staff/controller"
	authMiddleware "isp392_backend/internals/middlewares/auth"
)

func StaffRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := staffController.NewStaffController(db)

	staff := r.Group("/staff", authMiddleware.OnlyRoles(
		fmt.Sprintf(constants.ErrOnlyManagersCanAccess, "staff management"),
		constants.RoleAdmin, constants.RoleManager,
	))
	staff.Get("/", ctrl.ListStaff)
	staff.Get("/by-username/:username", ctrl.FindByUsername)
	staff.Post("/", ctrl.CreateStaff)
	staff.Patch("/:id", ctrl.UpdateStaff)
	staff.Delete("/:id", ctrl.DeleteStaff)
}
