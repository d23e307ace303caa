package controller

import (
	"github.com/gofiber/fiber/v2"

	"rentapp_backend/internal/middleware"
	"rentapp_backend/internal/model"
	"rentapp_backend/internal/serializer"
)

func (h *Handler) ListComments(c *fiber.Ctx) error {
	property, err := h.loadProperty(c)
	if err != nil {
		return err
	}
	comments, err := h.repos.Comments.ListByProperty(c.UserContext(), property.ID)
	if err != nil {
		return err
	}
	return respondList(c, comments)
}

func (h *Handler) CreateComment(c *fiber.Ctx) error {
	identity := middleware.CurrentIdentity(c)
	property, err := h.loadProperty(c)
	if err != nil {
		return err
	}

	req := new(serializer.CommentRequest)
	if err := bind(c, req, withServerManaged("property_id", "user_id")...); err != nil {
		return err
	}

	comment := &model.Comment{
		PropertyID: property.ID,
		UserID:     identity.UserID,
		Content:    req.Content,
	}
	if err := h.repos.Comments.Create(c.UserContext(), comment); err != nil {
		return err
	}
	return respond(c, fiber.StatusCreated, comment)
}

// loadOwnComment finds :commentId under :id and checks the caller wrote it or is an admin.
func (h *Handler) loadOwnComment(c *fiber.Ctx) (*model.Comment, error) {
	property, err := h.loadProperty(c)
	if err != nil {
		return nil, err
	}
	commentID, err := parseID(c, "commentId", "comment")
	if err != nil {
		return nil, err
	}

	comment, err := h.repos.Comments.GetForProperty(c.UserContext(), property.ID, commentID)
	if err != nil {
		if model.AsAppError(err).Code == model.CodeNotFound {
			return nil, model.NewNotFoundError("Comment", commentID)
		}
		return nil, err
	}

	if err := middleware.Authorize(middleware.CurrentIdentity(c), nil, &comment.UserID); err != nil {
		return nil, err
	}
	return comment, nil
}

func (h *Handler) UpdateComment(c *fiber.Ctx) error {
	comment, err := h.loadOwnComment(c)
	if err != nil {
		return err
	}

	req := new(serializer.CommentRequest)
	if err := bind(c, req, withServerManaged("property_id", "user_id")...); err != nil {
		return err
	}

	if err := h.repos.Comments.UpdateContent(c.UserContext(), comment, req.Content); err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, comment)
}

func (h *Handler) DeleteComment(c *fiber.Ctx) error {
	comment, err := h.loadOwnComment(c)
	if err != nil {
		return err
	}

	if err := h.repos.Comments.Delete(c.UserContext(), comment.ID); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
