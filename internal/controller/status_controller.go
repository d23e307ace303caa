package controller

import (
	"github.com/gofiber/fiber/v2"

	"rentapp_backend/internal/middleware"
	"rentapp_backend/internal/model"
	"rentapp_backend/internal/serializer"
)

func (h *Handler) GetStatus(c *fiber.Ctx) error {
	property, err := h.loadProperty(c)
	if err != nil {
		return err
	}
	if property.Status == nil {
		return &model.AppError{
			Code:    model.CodeNotFound,
			Message: "Property has no status yet",
		}
	}
	return respond(c, fiber.StatusOK, property.Status)
}

// UpdateStatus creates the status on first use and overwrites it afterwards.
func (h *Handler) UpdateStatus(c *fiber.Ctx) error {
	property := middleware.CurrentProperty(c)

	req := new(serializer.StatusRequest)
	if err := bind(c, req, withServerManaged("property_id")...); err != nil {
		return err
	}

	status, err := h.repos.Statuses.Upsert(c.UserContext(), property.ID, req.Status)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, status)
}
