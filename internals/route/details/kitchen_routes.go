package details

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"isp392_backend/internals/constants"
	planController "isp392_backend/internals/features/kitchen/daily_plans/controller"
	planRepository "isp392_backend/internals/features/kitchen/daily_plans/repository"
	planService "isp392_backend/internals/features/kitchen/daily_plans/service"
	authMiddleware "isp392_backend/internals/middlewares/auth"
)

func KitchenRoutes(r fiber.Router, db *gorm.DB) {
	workflow := planService.NewWorkflow(planRepository.NewDailyPlanRepository(db))
	ctrl := planController.NewDailyPlanController(workflow, planRepository.NewDishNameResolver(db))

	// Chef and manager share the /daily-plans prefix, so the role guards sit
	// on each route rather than on the group.
	chefOnly := authMiddleware.OnlyRoles(
		fmt.Sprintf(constants.ErrOnlyChefsCanAccess, "daily planning"),
		constants.RoleChef,
	)
	managerOnly := authMiddleware.OnlyRoles(
		fmt.Sprintf(constants.ErrOnlyManagersCanAccess, "daily plan review"),
		constants.RoleAdmin, constants.RoleManager,
	)

	plans := r.Group("/daily-plans")
	plans.Post("/", chefOnly, ctrl.SubmitPlan)
	plans.Get("/today", chefOnly, ctrl.TodayPlans)
	plans.Patch("/:id", chefOnly, ctrl.RevisePlan)

	plans.Get("/pending", managerOnly, ctrl.PendingPlans)
	plans.Patch("/:id/approve", managerOnly, ctrl.ApprovePlan)
	plans.Delete("/:id", managerOnly, ctrl.RejectPlan)
}
