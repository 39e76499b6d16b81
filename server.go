package main

import (
	"time"

	"passkey_ms/config"
	"passkey_ms/controller"
	"passkey_ms/dtos/request"
	"passkey_ms/middleware"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type Server struct {
	AuthController       controller.IAuthController
	PasskeyController    controller.IPasskeyController
	CredentialController controller.ICredentialController
	Logger               *zap.Logger
}

// NOTE: Server Constructor
func NewServer(
	AuthController controller.IAuthController,
	PasskeyController controller.IPasskeyController,
	CredentialController controller.ICredentialController,
	Logger *zap.Logger,
) *Server {
	return &Server{
		AuthController:       AuthController,
		PasskeyController:    PasskeyController,
		CredentialController: CredentialController,
		Logger:               Logger,
	}
}

// NOTE: Start Fiber Server
func (s *Server) Start() *fiber.App {
	app := fiber.New()

	app.Use(middleware.RecoveryMiddleware())
	app.Use(middleware.LoggingMiddleware(s.Logger))

	// NOTE: Define API paths (context path and grouping by version)
	contextPath := app.Group(config.Conf.Application.Server.ContextPath)
	apiVersion := contextPath.Group(config.Conf.Application.Server.ApiVersion)

	authGroup := apiVersion.Group("/auth")
	authGroup.Post("/login", middleware.RouteRateLimiter(10, 30*time.Second), middleware.ValidateBody[request.LoginRequest](), s.AuthController.Login)
	authGroup.Post("/refresh-token", middleware.ValidateBody[request.RefreshTokenRequest](), s.AuthController.RefreshToken)

	webauthnGroup := apiVersion.Group("/webauthn")
	webauthnGroup.Post("/check-registered", middleware.ValidateBody[request.CheckRegisteredRequest](), s.PasskeyController.CheckRegistered)
	webauthnGroup.Post("/begin-registration", middleware.AuthMiddleware(), s.PasskeyController.BeginRegistration)
	webauthnGroup.Post("/verify-registration", middleware.OptionalAuthMiddleware(), middleware.ValidateBody[request.VerifyRegistrationRequest](), s.PasskeyController.VerifyRegistration)
	webauthnGroup.Post("/begin-authentication", middleware.RouteRateLimiter(10, 30*time.Second), middleware.ValidateBody[request.BeginAuthenticationRequest](), s.PasskeyController.BeginAuthentication)
	webauthnGroup.Post("/verify-authentication", middleware.ValidateBody[request.VerifyAuthenticationRequest](), s.PasskeyController.VerifyAuthentication)
	webauthnGroup.Get("/credentials", middleware.AuthMiddleware(), s.CredentialController.List)
	webauthnGroup.Patch("/credentials/:id", middleware.AuthMiddleware(), middleware.ValidateBody[request.UpdateCredentialRequest](), s.CredentialController.Update)
	webauthnGroup.Delete("/credentials/:id", middleware.AuthMiddleware(), s.CredentialController.Delete)

	return app
}
