package controller

import (
	"passkey_ms/dtos/request"
	"passkey_ms/services"

	"github.com/gofiber/fiber/v2"
)

type IAuthController interface {
	Login(c *fiber.Ctx) error
	RefreshToken(c *fiber.Ctx) error
}

type AuthController struct {
	userService services.IUserService
}

func NewAuthController(userService services.IUserService) IAuthController {
	return &AuthController{userService: userService}
}

func (ac *AuthController) Login(c *fiber.Ctx) error {
	req := c.Locals("body").(*request.LoginRequest)

	tokens, err := ac.userService.LoginLocal(req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(tokens)
}

func (ac *AuthController) RefreshToken(c *fiber.Ctx) error {
	req := c.Locals("body").(*request.RefreshTokenRequest)

	tokens, err := ac.userService.RefreshToken(req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(tokens)
}
