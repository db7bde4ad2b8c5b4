package services

import (
	"context"
	"fmt"
	"os"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"github.com/vitalink-health/vitalink-backend/internal/logger"
)

type EmailService interface {
	SendEmail(ctx context.Context, toEmail string, subject string, plainText string, htmlContent string, emailType string) error
}

type emailService struct {
	log              *logger.Logger
	client           *sendgrid.Client
	fromSupportEmail string
	fromReminderEmail string
}

func NewEmailService(log *logger.Logger) (EmailService, error) {
	serviceLog := log.With("service", "EmailService")
	apiKey := os.Getenv("SENDGRID_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("missing SENDGRID_API_KEY environment variable")
	}
	fromSupport := os.Getenv("SENDGRID_SUPPORT_EMAIL")
	if fromSupport == "" {
		serviceLog.Warn("SENDGRID_SUPPORT_EMAIL not set; using fallback no-reply@vitalink.health")
		fromSupport = "no-reply@vitalink.health"
	}
	fromReminder := os.Getenv("SENDGRID_REMINDER_EMAIL")
	if fromReminder == "" {
		serviceLog.Warn("SENDGRID_REMINDER_EMAIL not set; using fallback reminders@vitalink.health")
		fromReminder = "reminders@vitalink.health"
	}
	client := sendgrid.NewSendClient(apiKey)

	return &emailService{
		log:               serviceLog,
		client:            client,
		fromSupportEmail:  fromSupport,
		fromReminderEmail: fromReminder,
	}, nil
}

func (es *emailService) SendEmail(ctx context.Context, toEmail string, subject string, plainText string, htmlContent string, emailType string) error {
	var fromName = "Vitalink"
	var fromEmail = es.fromSupportEmail
	switch emailType {
	case "reminder":
		fromName = "Vitalink Reminders"
		fromEmail = es.fromReminderEmail
	case "support":
		fromName = "Vitalink Support"
		fromEmail = es.fromSupportEmail
	default:

	}
	from := mail.NewEmail(fromName, fromEmail)
	to := mail.NewEmail("", toEmail)
	message := mail.NewSingleEmail(from, subject, to, plainText, htmlContent)
	response, err := es.client.SendWithContext(ctx, message)
	if err != nil {
		es.log.Warn("Sendgrid email send failed", "error", err)
		return err
	}
	es.log.Info("Email sent", "to", toEmail, "statusCode", response.StatusCode)
	return nil
}
