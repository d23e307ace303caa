package controller

import (
	"context"
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"rentapp_backend/internal/middleware"
	"rentapp_backend/internal/model"
	"rentapp_backend/internal/serializer"
)

func (h *Handler) ListProperties(c *fiber.Ctx) error {
	properties, err := h.repos.Properties.List(c.UserContext())
	if err != nil {
		return err
	}
	return respondList(c, properties)
}

func (h *Handler) GetProperty(c *fiber.Ctx) error {
	property, err := h.loadProperty(c)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, property)
}

// resolveBroker checks an admin-chosen broker_id.
func (h *Handler) resolveBroker(ctx context.Context, id uint) error {
	user, err := h.repos.Users.GetByID(ctx, id)
	if err != nil {
		if model.AsAppError(err).Code == model.CodeNotFound {
			return model.NewValidationError("broker_id", "broker_id must reference an existing broker")
		}
		return err
	}
	if user.Role != model.RoleBroker {
		return model.NewValidationError("broker_id", "broker_id must reference an existing broker")
	}
	return nil
}

// CreateProperty lists a new property owned by the caller. An admin may list
// it on behalf of another broker.
func (h *Handler) CreateProperty(c *fiber.Ctx) error {
	identity := middleware.CurrentIdentity(c)

	rejected := withServerManaged()
	if !identity.IsAdmin() {
		rejected = append(rejected, "broker_id")
	}
	req := new(serializer.PropertyRequest)
	if err := bind(c, req, rejected...); err != nil {
		return err
	}

	brokerID := identity.UserID
	if req.BrokerID != nil {
		if err := h.resolveBroker(c.UserContext(), *req.BrokerID); err != nil {
			return err
		}
		brokerID = *req.BrokerID
	}

	property := req.Model(brokerID)
	if err := h.repos.Properties.Create(c.UserContext(), property); err != nil {
		return err
	}

	h.logger.InfoContext(c.UserContext(), "property created",
		slog.Uint64("property_id", uint64(property.ID)),
		slog.Uint64("broker_id", uint64(brokerID)),
	)
	return respond(c, fiber.StatusCreated, property)
}

// UpdateProperty runs behind CheckPropertyOwnership.
func (h *Handler) UpdateProperty(c *fiber.Ctx) error {
	identity := middleware.CurrentIdentity(c)
	property := middleware.CurrentProperty(c)

	rejected := withServerManaged()
	if !identity.IsAdmin() {
		rejected = append(rejected, "broker_id")
	}
	req := new(serializer.PropertyUpdateRequest)
	if err := bind(c, req, rejected...); err != nil {
		return err
	}
	if req.BrokerID != nil {
		if err := h.resolveBroker(c.UserContext(), *req.BrokerID); err != nil {
			return err
		}
	}

	updated, err := h.repos.Properties.Update(c.UserContext(), property.ID, req.Updates())
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, updated)
}

// DeleteProperty runs behind CheckPropertyOwnership. Uploaded photo objects are
// removed from the bucket on a best-effort basis.
func (h *Handler) DeleteProperty(c *fiber.Ctx) error {
	property := middleware.CurrentProperty(c)

	if err := h.repos.Properties.Delete(c.UserContext(), property.ID); err != nil {
		return err
	}

	for _, photo := range property.Photos {
		h.removeObject(c.UserContext(), photo.PhotoURL)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *Handler) removeObject(ctx context.Context, url string) {
	if h.storage == nil || !h.storage.OwnsURL(url) {
		return
	}
	if err := h.storage.Delete(ctx, url); err != nil {
		h.logger.WarnContext(ctx, "could not delete stored photo",
			slog.String("url", url),
			slog.Any("error", err),
		)
	}
}
