package details

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"isp392_backend/internals/constants"
	dishToppingController "isp392_backend/internals/features/menu/dish_toppings/controller"
	dishController "isp392_backend/internals/features/menu/dishes/controller"
	toppingController "isp392_backend/internals/features/menu/toppings/controller"
	authMiddleware "isp392_backend/internals/middlewares/auth"
)

// PublicMenuRoutes exposes the customer-facing menu without auth.
func PublicMenuRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := dishController.NewDishController(db)
	r.Get("/menu", ctrl.ListMenu)
}

func MenuRoutes(r fiber.Router, db *gorm.DB) {
	dishes := dishController.NewDishController(db)
	toppings := toppingController.NewToppingController(db)
	links := dishToppingController.NewDishToppingController(db)

	managerOnly := authMiddleware.OnlyRoles(
		fmt.Sprintf(constants.ErrOnlyManagersCanAccess, "menu management"),
		constants.RoleAdmin, constants.RoleManager,
	)

	// Reads are open to any signed-in staff (chefs pick dishes to plan).
	r.Get("/dishes", dishes.ListDishes)
	r.Get("/dishes/:id", dishes.GetDish)
	r.Get("/toppings", toppings.ListToppings)

	r.Post("/dishes", managerOnly, dishes.CreateDish)
	r.Patch("/dishes/:id", managerOnly, dishes.UpdateDish)
	r.Patch("/dishes/:id/visibility", managerOnly, dishes.SetVisibility)
	r.Post("/dishes/:id/image", managerOnly, dishes.UploadImage)
	r.Delete("/dishes/:id", managerOnly, dishes.DeleteDish)
	r.Put("/dishes/:id/toppings", managerOnly, links.ReplaceBatch)

	r.Post("/toppings", managerOnly, toppings.CreateTopping)
	r.Patch("/toppings/:id", managerOnly, toppings.UpdateTopping)
	r.Delete("/toppings/:id", managerOnly, toppings.DeleteTopping)
}
