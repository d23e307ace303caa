package email

import (
	"bytes"
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"io"
	"log/slog"
	"net/http"
	"time"
)

const defaultBaseURL = "https://api.resend.com"

//go:embed templates/*.html
var templateFS embed.FS

var ErrMissingAPIKey = errors.New("resend API key is required")

type EmailService struct {
	apiKey     string
	from       string
	baseURL    string
	httpClient *http.Client
	templates  *template.Template
	logger     *slog.Logger
}

type EmailData struct {
	From    string `json:"from"`
	To      string `json:"to"`
	Subject string `json:"subject"`
	Html    string `json:"html"`
}

// InquiryNotificationData fills the broker notification template.
type InquiryNotificationData struct {
	PropertyID    uint
	PropertyTitle string
	CustomerName  string
	CustomerEmail string
	CustomerPhone string
	Message       string
}

type Option func(*EmailService)

// WithBaseURL points the service at another Resend-compatible endpoint.
func WithBaseURL(url string) Option {
	return func(s *EmailService) { s.baseURL = url }
}

func WithHTTPClient(client *http.Client) Option {
	return func(s *EmailService) { s.httpClient = client }
}

func NewEmailService(apiKey, from string, logger *slog.Logger, opts ...Option) (*EmailService, error) {
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	templates, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("error loading email templates: %w", err)
	}

	s := &EmailService{
		apiKey:     apiKey,
		from:       from,
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		templates:  templates,
		logger:     logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

func (s *EmailService) sendTemplateEmail(ctx context.Context, to, subject, templateName string, data interface{}) error {
	var body bytes.Buffer
	if err := s.templates.ExecuteTemplate(&body, templateName, data); err != nil {
		return fmt.Errorf("template execution error: %w", err)
	}

	jsonData, err := json.Marshal(EmailData{
		From:    s.from,
		To:      to,
		Subject: subject,
		Html:    body.String(),
	})
	if err != nil {
		return fmt.Errorf("error marshaling email data: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/emails", bytes.NewReader(jsonData))
	if err != nil {
		return fmt.Errorf("error creating request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("error sending email: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	if err != nil {
		return fmt.Errorf("error reading response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return fmt.Errorf("resend API error: status %d: %s", resp.StatusCode, string(respBody))
	}

	s.logger.InfoContext(ctx, "email sent",
		slog.String("template", templateName),
		slog.Int("status", resp.StatusCode),
	)
	return nil
}

func (s *EmailService) SendInquiryNotification(ctx context.Context, brokerEmail string, data InquiryNotificationData) error {
	subject := fmt.Sprintf("New inquiry for %s", data.PropertyTitle)
	return s.sendTemplateEmail(ctx, brokerEmail, subject, "inquiry_notification.html", data)
}
