package utils

import (
	"fmt"
	"log"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// Mailer sends transactional email through SendGrid. With no API key it
// degrades to logging, so local development works without credentials.
type Mailer struct {
	apiKey string
	from   string
}

func NewMailer(apiKey, from string) *Mailer {
	return &Mailer{apiKey: apiKey, from: from}
}

func (m *Mailer) Send(toEmail, toName, subject, htmlBody string) error {
	if m.apiKey == "" {
		log.Printf("[EMAIL] SendGrid not configured, skipping '%s' to %s", subject, toEmail)
		return nil
	}

	from := mail.NewEmail("Vibe Coding", m.from)
	to := mail.NewEmail(toName, toEmail)
	message := mail.NewSingleEmail(from, subject, to, "", htmlBody)

	client := sendgrid.NewSendClient(m.apiKey)
	resp, err := client.Send(message)
	if err != nil {
		log.Printf("[EMAIL] Error sending '%s' to %s: %v", subject, toEmail, err)
		return err
	}
	if resp.StatusCode >= 400 {
		log.Printf("[EMAIL] SendGrid rejected '%s' to %s: status %d", subject, toEmail, resp.StatusCode)
		return fmt.Errorf("sendgrid returned status %d", resp.StatusCode)
	}

	return nil
}

func emailTemplate(title, bodyContent string) string {
	return fmt.Sprintf(`
	<!DOCTYPE html>
	<html>
	<head>
		<style>
			body { font-family: 'Helvetica Neue', Helvetica, Arial, sans-serif; background-color: #F6F6F6; margin: 0; padding: 0; }
			.container { max-width: 600px; margin: 40px auto; background: #FFFFFF; border-radius: 8px; overflow: hidden; box-shadow: 0 4px 15px rgba(0,0,0,0.05); }
			.header { background-color: #0F172A; padding: 30px; text-align: center; }
			.header h1 { color: #FFFFFF; margin: 0; font-size: 24px; letter-spacing: 1px; }
			.content { padding: 40px 30px; color: #0F172A; line-height: 1.6; }
			.content h2 { color: #0F172A; margin-top: 0; }
			.footer { background-color: #F6F6F6; padding: 20px; text-align: center; font-size: 12px; color: #666666; border-top: 1px solid #E0E0E0; }
			.btn { display: inline-block; padding: 12px 24px; background-color: #7C3AED; color: #FFFFFF; text-decoration: none; border-radius: 4px; font-weight: bold; margin-top: 20px; }
			.info-box { background: #EDE9FE; padding: 15px; border-radius: 4px; border-left: 4px solid #7C3AED; margin: 20px 0; }
		</style>
	</head>
	<body>
		<div class="container">
			<div class="header">
				<h1>VIBE CODING</h1>
			</div>
			<div class="content">
				<h2>%s</h2>
				%s
			</div>
			<div class="footer">
				&copy; 2026 Vibe Coding. All rights reserved.
			</div>
		</div>
	</body>
	</html>
	`, title, bodyContent)
}

// SendEnrollmentEmail confirms a new course enrollment.
func (m *Mailer) SendEnrollmentEmail(toEmail, name, courseTitle string) error {
	subject := "Enrollment Confirmed: " + courseTitle
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>You are now enrolled in <strong>%s</strong>.</p>
		<p>Your progress is tracked automatically as you complete lessons.</p>
		<div class="info-box">
			<strong>Next Steps:</strong> Open your dashboard and start the first lesson.
		</div>
	`, name, courseTitle)

	return m.Send(toEmail, name, subject, emailTemplate("Enrollment Successful", body))
}

// SendWebinarConfirmation confirms a paid webinar seat.
func (m *Mailer) SendWebinarConfirmation(name, toEmail string) error {
	subject := "Your Webinar Seat is Confirmed"
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Your payment was received and your seat is reserved.</p>
		<p>Joining details will be sent to this address before the session starts.</p>
	`, name)

	return m.Send(toEmail, name, subject, emailTemplate("Seat Confirmed", body))
}
