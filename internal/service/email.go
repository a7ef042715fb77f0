package service

import (
	"context"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"samedayramps-backend/internal/domain"
	"samedayramps-backend/internal/logger"
)

type sendGridEmailService struct {
	apiKey    string
	fromEmail string
	fromName  string
}

func NewSendGridEmailService(apiKey, fromEmail, fromName string) EmailService {
	return &sendGridEmailService{
		apiKey:    apiKey,
		fromEmail: fromEmail,
		fromName:  fromName,
	}
}

func (s *sendGridEmailService) Send(ctx context.Context, to, subject, html string) error {
	from := mail.NewEmail(s.fromName, s.fromEmail)
	recipient := mail.NewEmail("", to)
	message := mail.NewSingleEmail(from, subject, recipient, "", html)

	client := sendgrid.NewSendClient(s.apiKey)
	logger.ExternalServiceCall("sendgrid", "send", "to", to, "subject", subject)
	response, err := client.SendWithContext(ctx, message)
	if err != nil {
		logger.ExternalServiceResult("sendgrid", "send", err)
		return fmt.Errorf("failed to send email: %w", err)
	}
	if response.StatusCode >= 400 {
		err := fmt.Errorf("sendgrid error: status %d, body: %s", response.StatusCode, response.Body)
		logger.ExternalServiceResult("sendgrid", "send", err)
		return err
	}
	logger.ExternalServiceResult("sendgrid", "send", nil, "status", response.StatusCode)
	return nil
}

func (s *sendGridEmailService) SendQuoteEmail(ctx context.Context, job *domain.Job) error {
	return s.Send(ctx, job.CustomerEmail(), "Your Wheelchair Ramp Rental Quote", job.QuoteHTML)
}

func (s *sendGridEmailService) SendInstallationConfirmation(ctx context.Context, job *domain.Job) error {
	html := scheduleEmailHTML(job, "Installation Scheduled",
		"Your wheelchair ramp installation has been scheduled.", job.InstallationSchedule)
	return s.Send(ctx, job.CustomerEmail(), "Your Ramp Installation is Scheduled", html)
}

func (s *sendGridEmailService) SendRemovalConfirmation(ctx context.Context, job *domain.Job) error {
	html := scheduleEmailHTML(job, "Removal Scheduled",
		"Your wheelchair ramp removal has been scheduled.", job.RemovalSchedule)
	return s.Send(ctx, job.CustomerEmail(), "Your Ramp Removal is Scheduled", html)
}

func (s *sendGridEmailService) SendCompletionEmail(ctx context.Context, job *domain.Job) error {
	html := simpleEmailHTML(job, "Thank You!",
		"Your wheelchair ramp rental is now complete. Thank you for choosing Same Day Ramps. "+
			"We hope the ramp served you well.")
	return s.Send(ctx, job.CustomerEmail(), "Your Ramp Rental is Complete", html)
}

func (s *sendGridEmailService) SendQuoteFollowUp(ctx context.Context, job *domain.Job) error {
	html := simpleEmailHTML(job, "Following Up on Your Quote",
		"We recently sent you a quote for a wheelchair ramp rental and wanted to check in. "+
			"If you have any questions, just reply to this email.")
	return s.Send(ctx, job.CustomerEmail(), "Following Up on Your Ramp Rental Quote", html)
}

func (s *sendGridEmailService) SendInstallationReminder(ctx context.Context, job *domain.Job) error {
	html := scheduleEmailHTML(job, "Installation Reminder",
		"This is a reminder that your wheelchair ramp installation is coming up.", job.InstallationSchedule)
	return s.Send(ctx, job.CustomerEmail(), "Reminder: Your Ramp Installation is Tomorrow", html)
}

func simpleEmailHTML(job *domain.Job, heading, body string) string {
	name := "Customer"
	if job.CustomerInfo != nil && job.CustomerInfo.FullName() != "" {
		name = job.CustomerInfo.FullName()
	}
	return fmt.Sprintf(`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">`+
		`<h1 style="color: #2c5282;">%s</h1>`+
		`<p>Dear %s,</p><p>%s</p><p>Same Day Ramps</p></div>`,
		heading, name, body)
}

func scheduleEmailHTML(job *domain.Job, heading, body string, schedule *domain.Schedule) string {
	detail := body
	if schedule != nil {
		detail = fmt.Sprintf("%s<br><br><strong>Date:</strong> %s<br><strong>Time:</strong> %s",
			body, schedule.Date.Format("Monday, January 2, 2006"), schedule.TimeSlot)
	}
	if job.CustomerInfo != nil && job.CustomerInfo.InstallAddress != "" {
		detail += fmt.Sprintf("<br><strong>Address:</strong> %s", job.CustomerInfo.InstallAddress)
	}
	return simpleEmailHTML(job, heading, detail)
}
