package controller

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"rentapp_backend/internal/middleware"
	"rentapp_backend/internal/model"
)

var errAlreadyLiked = model.NewConflictError("You have already liked this property")

func (h *Handler) ListLikes(c *fiber.Ctx) error {
	property, err := h.loadProperty(c)
	if err != nil {
		return err
	}
	likes, err := h.repos.Likes.ListByProperty(c.UserContext(), property.ID)
	if err != nil {
		return err
	}
	return respondList(c, likes)
}

// CreateLike adds the caller's like. A second like from the same user is a conflict,
// including when two requests race past the existence check.
func (h *Handler) CreateLike(c *fiber.Ctx) error {
	identity := middleware.CurrentIdentity(c)
	property, err := h.loadProperty(c)
	if err != nil {
		return err
	}

	var body struct{}
	if err := bind(c, &body, withServerManaged("property_id", "user_id")...); err != nil {
		return err
	}

	ctx := c.UserContext()
	exists, err := h.repos.Likes.Exists(ctx, property.ID, identity.UserID)
	if err != nil {
		return err
	}
	if exists {
		return errAlreadyLiked
	}

	like := &model.Like{PropertyID: property.ID, UserID: identity.UserID}
	if err := h.repos.Likes.Create(ctx, like); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errAlreadyLiked
		}
		return err
	}
	return respond(c, fiber.StatusCreated, like)
}

// DeleteLike removes the caller's own like.
func (h *Handler) DeleteLike(c *fiber.Ctx) error {
	identity := middleware.CurrentIdentity(c)
	property, err := h.loadProperty(c)
	if err != nil {
		return err
	}

	if err := h.repos.Likes.Delete(c.UserContext(), property.ID, identity.UserID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &model.AppError{Code: model.CodeNotFound, Message: "You have not liked this property"}
		}
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
