package controller

import (
	"github.com/gofiber/fiber/v2"

	"rentapp_backend/internal/middleware"
	"rentapp_backend/internal/model"
	"rentapp_backend/internal/serializer"
	"rentapp_backend/internal/service"
)

func registerInput(req *serializer.RegisterRequest) service.RegisterInput {
	return service.RegisterInput{
		Username:    req.Username,
		Email:       req.Email,
		Password:    req.Password,
		Role:        req.Role,
		PhoneNumber: req.PhoneNumber,
	}
}

// Register creates a broker or customer account and logs it in.
func (h *Handler) Register(c *fiber.Ctx) error {
	req := new(serializer.RegisterRequest)
	if err := bind(c, req, withServerManaged("password_hash")...); err != nil {
		return err
	}
	if req.Role == model.RoleAdmin {
		return model.NewForbiddenError("Admin accounts cannot be self-registered")
	}

	user, err := h.auth.Register(c.UserContext(), registerInput(req))
	if err != nil {
		return err
	}

	token, err := h.auth.IssueToken(user)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"token": token,
		"user":  user.GetPublicProfile(),
	})
}

func (h *Handler) Login(c *fiber.Ctx) error {
	req := new(serializer.LoginRequest)
	if err := bind(c, req); err != nil {
		return err
	}

	token, user, err := h.auth.Authenticate(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"token": token,
		"user":  user.GetPublicProfile(),
	})
}

// GetMe returns the caller's own account.
func (h *Handler) GetMe(c *fiber.Ctx) error {
	identity := middleware.CurrentIdentity(c)
	return respond(c, fiber.StatusOK, identity.User)
}
