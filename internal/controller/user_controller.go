package controller

import (
	"github.com/gofiber/fiber/v2"

	"rentapp_backend/internal/middleware"
	"rentapp_backend/internal/model"
	"rentapp_backend/internal/serializer"
	"rentapp_backend/internal/service"
)

func (h *Handler) ListUsers(c *fiber.Ctx) error {
	users, err := h.repos.Users.List(c.UserContext())
	if err != nil {
		return err
	}
	return respondList(c, users)
}

func (h *Handler) loadUser(c *fiber.Ctx) (*model.User, error) {
	id, err := parseID(c, "id", "user")
	if err != nil {
		return nil, err
	}
	user, err := h.repos.Users.GetByID(c.UserContext(), id)
	if err != nil {
		if model.AsAppError(err).Code == model.CodeNotFound {
			return nil, model.NewNotFoundError("User", id)
		}
		return nil, err
	}
	return user, nil
}

func (h *Handler) GetUser(c *fiber.Ctx) error {
	user, err := h.loadUser(c)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, user)
}

// CreateUser lets an admin create an account of any role.
func (h *Handler) CreateUser(c *fiber.Ctx) error {
	req := new(serializer.RegisterRequest)
	if err := bind(c, req, withServerManaged("password_hash")...); err != nil {
		return err
	}

	user, err := h.auth.Register(c.UserContext(), registerInput(req))
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusCreated, user)
}

// UpdateUser applies a partial update. Only admins may change a role.
func (h *Handler) UpdateUser(c *fiber.Ctx) error {
	identity := middleware.CurrentIdentity(c)
	user, err := h.loadUser(c)
	if err != nil {
		return err
	}
	if err := middleware.Authorize(identity, nil, &user.ID); err != nil {
		return err
	}

	req := new(serializer.UserUpdateRequest)
	if err := bind(c, req, serializer.UserUpdateRejected()...); err != nil {
		return err
	}
	if req.Role != nil && !identity.IsAdmin() {
		return model.NewForbiddenError("Only an admin can change a user's role")
	}

	if req.Email != nil {
		email := service.NormalizeEmail(*req.Email)
		req.Email = &email
	}

	ctx := c.UserContext()
	if req.Email != nil && *req.Email != user.Email {
		existing, err := h.repos.Users.GetByEmail(ctx, *req.Email)
		if err != nil {
			return err
		}
		if existing != nil {
			return service.ErrDuplicateEmail
		}
	}
	if req.Username != nil && *req.Username != user.Username {
		existing, err := h.repos.Users.GetByUsername(ctx, *req.Username)
		if err != nil {
			return err
		}
		if existing != nil {
			return service.ErrDuplicateUsername
		}
	}

	updated, err := h.repos.Users.Update(ctx, user.ID, req.Updates())
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, updated)
}

// DeleteUser removes an account and everything it owns.
func (h *Handler) DeleteUser(c *fiber.Ctx) error {
	user, err := h.loadUser(c)
	if err != nil {
		return err
	}
	if err := middleware.Authorize(middleware.CurrentIdentity(c), nil, &user.ID); err != nil {
		return err
	}

	if err := h.repos.Users.Delete(c.UserContext(), user.ID); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
