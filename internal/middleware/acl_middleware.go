package middleware

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"

	"rentapp_backend/internal/model"
	"rentapp_backend/internal/repository"
	"rentapp_backend/internal/service"
)

const propertyLocalsKey = "property"

// Authorize checks role membership and, when ownerID is given, ownership.
// An empty role list admits any authenticated role. Admins pass every ownership check.
func Authorize(identity *service.Identity, allowedRoles []model.Role, ownerID *uint) error {
	if identity == nil {
		return model.NewUnauthenticatedError("Authentication required")
	}
	if len(allowedRoles) > 0 && !hasRole(identity.Role, allowedRoles) {
		return model.NewForbiddenError(fmt.Sprintf("This action requires one of the roles: %s", joinRoles(allowedRoles)))
	}
	if ownerID != nil && *ownerID != identity.UserID && !identity.IsAdmin() {
		return model.NewForbiddenError("You don't have permission to access this resource")
	}
	return nil
}

func hasRole(role model.Role, allowed []model.Role) bool {
	for _, r := range allowed {
		if r == role {
			return true
		}
	}
	return false
}

func joinRoles(roles []model.Role) string {
	names := make([]string, len(roles))
	for i, r := range roles {
		names[i] = string(r)
	}
	return strings.Join(names, ", ")
}

// RequireRoles is the route-level form of the role check.
func RequireRoles(roles ...model.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := Authorize(CurrentIdentity(c), roles, nil); err != nil {
			return err
		}
		return c.Next()
	}
}

// CheckPropertyOwnership loads the property named by :id and lets only its
// broker or an admin continue. The loaded property is available via CurrentProperty.
func CheckPropertyOwnership(properties repository.PropertyRepository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return model.NewValidationError("id", "Invalid property ID")
		}

		property, err := properties.GetByID(c.UserContext(), uint(id))
		if err != nil {
			if model.AsAppError(err).Code == model.CodeNotFound {
				return model.NewNotFoundError("Property", id)
			}
			return err
		}

		if err := Authorize(CurrentIdentity(c), nil, &property.BrokerID); err != nil {
			return err
		}

		c.Locals(propertyLocalsKey, property)
		return c.Next()
	}
}

// CurrentProperty returns the property loaded by CheckPropertyOwnership.
func CurrentProperty(c *fiber.Ctx) *model.Property {
	property, _ := c.Locals(propertyLocalsKey).(*model.Property)
	return property
}
