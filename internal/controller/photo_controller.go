package controller

import (
	"github.com/gofiber/fiber/v2"

	"rentapp_backend/internal/middleware"
	"rentapp_backend/internal/model"
	"rentapp_backend/internal/serializer"
)

func (h *Handler) ListPhotos(c *fiber.Ctx) error {
	property, err := h.loadProperty(c)
	if err != nil {
		return err
	}
	photos, err := h.repos.Photos.ListByProperty(c.UserContext(), property.ID)
	if err != nil {
		return err
	}
	return respondList(c, photos)
}

// CreatePhoto attaches an already uploaded URL to the property.
func (h *Handler) CreatePhoto(c *fiber.Ctx) error {
	property := middleware.CurrentProperty(c)

	req := new(serializer.PhotoRequest)
	if err := bind(c, req, withServerManaged("property_id")...); err != nil {
		return err
	}

	photo := &model.PropertyPhoto{PropertyID: property.ID, PhotoURL: req.PhotoURL}
	if err := h.repos.Photos.Create(c.UserContext(), photo); err != nil {
		return err
	}
	return respond(c, fiber.StatusCreated, photo)
}

// DeletePhoto only deletes a photo that belongs to the property in the path.
func (h *Handler) DeletePhoto(c *fiber.Ctx) error {
	property := middleware.CurrentProperty(c)
	photoID, err := parseID(c, "photoId", "photo")
	if err != nil {
		return err
	}

	photo, err := h.repos.Photos.GetForProperty(c.UserContext(), property.ID, photoID)
	if err != nil {
		if model.AsAppError(err).Code == model.CodeNotFound {
			return model.NewNotFoundError("Photo", photoID)
		}
		return err
	}

	if err := h.repos.Photos.Delete(c.UserContext(), photo.ID); err != nil {
		return err
	}
	h.removeObject(c.UserContext(), photo.PhotoURL)

	return c.SendStatus(fiber.StatusNoContent)
}
