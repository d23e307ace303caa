package controller

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"rentapp_backend/internal/middleware"
	"rentapp_backend/internal/model"
	"rentapp_backend/internal/serializer"
	"rentapp_backend/pkg/email"
)

func (h *Handler) ListInquiries(c *fiber.Ctx) error {
	property, err := h.loadProperty(c)
	if err != nil {
		return err
	}
	inquiries, err := h.repos.Inquiries.ListByProperty(c.UserContext(), property.ID)
	if err != nil {
		return err
	}
	return respondList(c, inquiries)
}

// CreateInquiry records a customer's question. The customer is always the caller.
func (h *Handler) CreateInquiry(c *fiber.Ctx) error {
	identity := middleware.CurrentIdentity(c)
	property, err := h.loadProperty(c)
	if err != nil {
		return err
	}

	req := new(serializer.InquiryRequest)
	if err := bind(c, req, withServerManaged("property_id", "customer_id")...); err != nil {
		return err
	}

	inquiry := &model.Inquiry{
		PropertyID: property.ID,
		CustomerID: identity.UserID,
		Message:    req.Message,
	}
	if err := h.repos.Inquiries.Create(c.UserContext(), inquiry); err != nil {
		return err
	}

	h.notifyBroker(c, property, identity.User, inquiry)
	return respond(c, fiber.StatusCreated, inquiry)
}

// notifyBroker e-mails the listing's broker. Failures are logged only.
func (h *Handler) notifyBroker(c *fiber.Ctx, property *model.Property, customer *model.User, inquiry *model.Inquiry) {
	if h.mailer == nil {
		return
	}
	ctx := c.UserContext()

	broker, err := h.repos.Users.GetByID(ctx, property.BrokerID)
	if err != nil {
		h.logger.WarnContext(ctx, "could not load broker for inquiry notification",
			slog.Uint64("property_id", uint64(property.ID)),
			slog.Any("error", err),
		)
		return
	}

	err = h.mailer.SendInquiryNotification(ctx, broker.Email, email.InquiryNotificationData{
		PropertyID:    property.ID,
		PropertyTitle: property.Title,
		CustomerName:  customer.Username,
		CustomerEmail: customer.Email,
		CustomerPhone: customer.PhoneNumber,
		Message:       inquiry.Message,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "could not send inquiry notification",
			slog.Uint64("inquiry_id", uint64(inquiry.ID)),
			slog.Any("error", err),
		)
	}
}
