package controller

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"rentapp_backend/internal/middleware"
	"rentapp_backend/internal/model"
	"rentapp_backend/pkg/utils/image"
	"rentapp_backend/pkg/utils/storage"
)

// UploadPhoto stores an image in the bucket and returns its public URL. The
// URL is then attached to a listing through POST /properties/:id/photos.
func (h *Handler) UploadPhoto(c *fiber.Ctx) error {
	if h.storage == nil {
		return model.NewUpstreamError(model.CodeUpstreamUnavailable, "Object storage is not configured", nil)
	}
	identity := middleware.CurrentIdentity(c)

	file, err := c.FormFile("file")
	if err != nil {
		return model.NewValidationError("file", "No file uploaded")
	}

	processed, err := image.ProcessImage(file)
	if err != nil {
		switch {
		case errors.Is(err, image.ErrFileSize):
			return &model.AppError{Code: model.CodePayloadTooLarge, Message: err.Error(), Field: "file"}
		case errors.Is(err, image.ErrFileType), errors.Is(err, image.ErrFileRequired):
			return model.NewValidationError("file", err.Error())
		default:
			return err
		}
	}

	key := storage.ObjectKey(identity.User.Username, processed.Extension)
	url, err := h.storage.Upload(c.UserContext(), key, processed.Body, processed.ContentType)
	if err != nil {
		if errors.Is(err, storage.ErrAccessDenied) {
			return model.NewUpstreamError(model.CodeUpstreamForbidden, "Object storage rejected the upload credentials", err)
		}
		return model.NewUpstreamError(model.CodeUpstreamError, "Could not upload file", err)
	}

	h.logger.InfoContext(c.UserContext(), "photo uploaded",
		slog.Uint64("user_id", uint64(identity.UserID)),
		slog.String("key", key),
	)
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"url": url})
}
