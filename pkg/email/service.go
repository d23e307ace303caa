package email

import "context"

// Notifier tells a broker that a customer asked about one of their listings.
type Notifier interface {
	SendInquiryNotification(ctx context.Context, brokerEmail string, data InquiryNotificationData) error
}

var _ Notifier = (*EmailService)(nil)
