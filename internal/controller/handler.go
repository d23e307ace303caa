package controller

import (
	"context"
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"rentapp_backend/internal/model"
	"rentapp_backend/internal/repository"
	"rentapp_backend/internal/serializer"
	"rentapp_backend/internal/service"
	"rentapp_backend/pkg/email"
	"rentapp_backend/pkg/utils/storage"
)

// Deps are the collaborators a Handler needs. Storage and Mailer are optional.
type Deps struct {
	Repos       *repository.Repositories
	Auth        *service.AuthService
	Storage     storage.ObjectStore
	Mailer      email.Notifier
	Logger      *slog.Logger
	HealthCheck func(ctx context.Context) error
}

type Handler struct {
	repos       *repository.Repositories
	auth        *service.AuthService
	storage     storage.ObjectStore
	mailer      email.Notifier
	logger      *slog.Logger
	healthCheck func(ctx context.Context) error
}

func NewHandler(deps Deps) *Handler {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		repos:       deps.Repos,
		auth:        deps.Auth,
		storage:     deps.Storage,
		mailer:      deps.Mailer,
		logger:      logger,
		healthCheck: deps.HealthCheck,
	}
}

// FiberConfig is shared by the server and the handler tests.
func FiberConfig() fiber.Config {
	return fiber.Config{
		AppName:      "rentapp",
		ErrorHandler: model.RespondWithError,
		// multipart overhead on top of the 10MB image cap
		BodyLimit: 11 * 1024 * 1024,
	}
}

func parseID(c *fiber.Ctx, param, resource string) (uint, error) {
	id, err := c.ParamsInt(param)
	if err != nil || id <= 0 {
		return 0, model.NewValidationError(param, "Invalid "+resource+" ID")
	}
	return uint(id), nil
}

// loadProperty returns the property named by :id or a 404.
func (h *Handler) loadProperty(c *fiber.Ctx) (*model.Property, error) {
	id, err := parseID(c, "id", "property")
	if err != nil {
		return nil, err
	}
	property, err := h.repos.Properties.GetByID(c.UserContext(), id)
	if err != nil {
		if model.AsAppError(err).Code == model.CodeNotFound {
			return nil, model.NewNotFoundError("Property", id)
		}
		return nil, err
	}
	return property, nil
}

func respond(c *fiber.Ctx, status int, v interface{}, exclude ...string) error {
	doc, err := serializer.Present(v, exclude...)
	if err != nil {
		return err
	}
	return c.Status(status).JSON(doc)
}

func respondList[T any](c *fiber.Ctx, items []T, exclude ...string) error {
	docs, err := serializer.PresentList(items, exclude...)
	if err != nil {
		return err
	}
	return c.JSON(docs)
}

// bind decodes and validates the body, refusing any of the rejected keys.
func bind(c *fiber.Ctx, v interface{}, rejected ...string) error {
	raw, err := serializer.Bind(c.Body(), v)
	if err != nil {
		return err
	}
	if err := serializer.RejectFields(raw, rejected...); err != nil {
		return err
	}
	return serializer.Validate(v)
}

func withServerManaged(keys ...string) []string {
	return append(append([]string{}, serializer.ServerManagedFields...), keys...)
}

func (h *Handler) Health(c *fiber.Ctx) error {
	if h.healthCheck != nil {
		if err := h.healthCheck(c.UserContext()); err != nil {
			h.logger.WarnContext(c.UserContext(), "health check failed", slog.Any("error", err))
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "unavailable"})
		}
	}
	return c.JSON(fiber.Map{"status": "ok"})
}
