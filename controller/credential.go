package controller

import (
	"strconv"

	"passkey_ms/domain"
	"passkey_ms/dtos/request"
	"passkey_ms/services"

	"github.com/gofiber/fiber/v2"
)

type ICredentialController interface {
	List(c *fiber.Ctx) error
	Update(c *fiber.Ctx) error
	Delete(c *fiber.Ctx) error
}

type CredentialController struct {
	service services.ICredentialService
}

func NewCredentialController(service services.ICredentialService) ICredentialController {
	return &CredentialController{service: service}
}

func credentialParam(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return 0, domain.ErrInvalidInput
	}
	return uint(id), nil
}

func (cc *CredentialController) List(c *fiber.Ctx) error {
	resp, err := cc.service.List(currentUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

func (cc *CredentialController) Update(c *fiber.Ctx) error {
	credentialID, err := credentialParam(c)
	if err != nil {
		return respondError(c, err)
	}
	req := c.Locals("body").(*request.UpdateCredentialRequest)

	resp, err := cc.service.Rename(currentUserID(c), credentialID, req.Nickname)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

func (cc *CredentialController) Delete(c *fiber.Ctx) error {
	credentialID, err := credentialParam(c)
	if err != nil {
		return respondError(c, err)
	}

	if err := cc.service.Revoke(currentUserID(c), credentialID); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "message": "Passkey removed successfully"})
}
