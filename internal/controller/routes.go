package controller

import (
	"github.com/gofiber/fiber/v2"

	"rentapp_backend/internal/middleware"
	"rentapp_backend/internal/model"
)

// RegisterRoutes mounts every endpoint. authLimiter guards register and login.
func RegisterRoutes(app fiber.Router, h *Handler, authLimiter fiber.Handler) {
	public := middleware.Public()
	auth := middleware.RequireAuth()
	brokers := middleware.RequireRoles(model.RoleBroker, model.RoleAdmin)
	customers := middleware.RequireRoles(model.RoleCustomer, model.RoleAdmin)
	admins := middleware.RequireRoles(model.RoleAdmin)
	owner := middleware.CheckPropertyOwnership(h.repos.Properties)

	app.Get("/health", h.Health)

	app.Post("/register", authLimiter, public, h.Register)
	app.Post("/login", authLimiter, public, h.Login)
	app.Get("/me", auth, h.GetMe)

	app.Get("/users", public, h.ListUsers)
	app.Post("/users", auth, admins, h.CreateUser)
	app.Get("/users/:id", public, h.GetUser)
	app.Put("/users/:id", auth, h.UpdateUser)
	app.Delete("/users/:id", auth, h.DeleteUser)

	app.Get("/properties", public, h.ListProperties)
	app.Post("/properties", auth, brokers, h.CreateProperty)
	app.Get("/properties/:id", public, h.GetProperty)
	app.Put("/properties/:id", auth, owner, h.UpdateProperty)
	app.Delete("/properties/:id", auth, owner, h.DeleteProperty)

	app.Get("/properties/:id/photos", public, h.ListPhotos)
	app.Post("/properties/:id/photos", auth, owner, h.CreatePhoto)
	app.Delete("/properties/:id/photos/:photoId", auth, owner, h.DeletePhoto)

	app.Get("/properties/:id/status", public, h.GetStatus)
	app.Put("/properties/:id/status", auth, owner, h.UpdateStatus)

	app.Get("/properties/:id/inquiries", public, h.ListInquiries)
	app.Post("/properties/:id/inquiries", auth, customers, h.CreateInquiry)

	app.Get("/properties/:id/likes", public, h.ListLikes)
	app.Post("/properties/:id/likes", auth, h.CreateLike)
	app.Delete("/properties/:id/likes", auth, h.DeleteLike)

	app.Get("/properties/:id/comments", public, h.ListComments)
	app.Post("/properties/:id/comments", auth, h.CreateComment)
	app.Put("/properties/:id/comments/:commentId", auth, h.UpdateComment)
	app.Delete("/properties/:id/comments/:commentId", auth, h.DeleteComment)

	app.Post("/upload-photo", auth, brokers, h.UploadPhoto)
}
