package controller

import (
	"passkey_ms/dtos/request"
	"passkey_ms/dtos/response"
	"passkey_ms/services"
	"passkey_ms/util"

	"github.com/gofiber/fiber/v2"
)

// ceremonyCookie carries the opaque id the challenge store keys on. One
// outstanding challenge per browser session; a new begin overwrites it.
const ceremonyCookie = "webauthn_ceremony"

type IPasskeyController interface {
	CheckRegistered(c *fiber.Ctx) error
	BeginRegistration(c *fiber.Ctx) error
	VerifyRegistration(c *fiber.Ctx) error
	BeginAuthentication(c *fiber.Ctx) error
	VerifyAuthentication(c *fiber.Ctx) error
}

type PasskeyController struct {
	service services.IPasskeyService
}

func NewPasskeyController(service services.IPasskeyService) IPasskeyController {
	return &PasskeyController{service: service}
}

func ceremonySession(c *fiber.Ctx) (string, error) {
	if id := c.Cookies(ceremonyCookie); id != "" {
		return id, nil
	}
	id, err := util.GenerateCeremonyID()
	if err != nil {
		return "", err
	}
	c.Cookie(&fiber.Cookie{
		Name:     ceremonyCookie,
		Value:    id,
		HTTPOnly: true,
		SameSite: "Strict",
		MaxAge:   300,
	})
	return id, nil
}

func currentUserID(c *fiber.Ctx) uint {
	userID, _ := c.Locals("userId").(uint)
	return userID
}

func (pc *PasskeyController) CheckRegistered(c *fiber.Ctx) error {
	req := c.Locals("body").(*request.CheckRegisteredRequest)

	resp, err := pc.service.CheckRegistered(req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

func (pc *PasskeyController) BeginRegistration(c *fiber.Ctx) error {
	ceremonyID, err := ceremonySession(c)
	if err != nil {
		return respondError(c, err)
	}

	options, err := pc.service.RegisterStart(currentUserID(c), ceremonyID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(response.CeremonyOptionsResponse{Options: options, Message: "Registration options generated"})
}

func (pc *PasskeyController) VerifyRegistration(c *fiber.Ctx) error {
	ceremonyID, err := ceremonySession(c)
	if err != nil {
		return respondError(c, err)
	}
	req := c.Locals("body").(*request.VerifyRegistrationRequest)

	resp, err := pc.service.RegisterFinish(ceremonyID, currentUserID(c), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

func (pc *PasskeyController) BeginAuthentication(c *fiber.Ctx) error {
	ceremonyID, err := ceremonySession(c)
	if err != nil {
		return respondError(c, err)
	}
	req := c.Locals("body").(*request.BeginAuthenticationRequest)

	options, err := pc.service.LoginStart(req.Email, ceremonyID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(response.CeremonyOptionsResponse{Options: options, Message: "Authentication options generated"})
}

func (pc *PasskeyController) VerifyAuthentication(c *fiber.Ctx) error {
	ceremonyID, err := ceremonySession(c)
	if err != nil {
		return respondError(c, err)
	}
	req := c.Locals("body").(*request.VerifyAuthenticationRequest)

	resp, err := pc.service.LoginFinish(ceremonyID, req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}
