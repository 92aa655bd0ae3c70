package controller

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	authService "isp392_backend/internals/features/users/auth/service"
)

type AuthController struct {
	DB *gorm.DB
}

func NewAuthController(db *gorm.DB) *AuthController {
	return &AuthController{DB: db}
}

func (ctrl *AuthController) Login(c *fiber.Ctx) error {
	return authService.Login(ctrl.DB, c)
}

func (ctrl *AuthController) LoginGoogle(c *fiber.Ctx) error {
	return authService.LoginGoogle(ctrl.DB, c)
}

func (ctrl *AuthController) Refresh(c *fiber.Ctx) error {
	return authService.Refresh(ctrl.DB, c)
}

func (ctrl *AuthController) Logout(c *fiber.Ctx) error {
	return authService.Logout(ctrl.DB, c)
}
