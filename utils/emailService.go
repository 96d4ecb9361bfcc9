package utils

import (
	"fmt"
	"log"

	"loanlink/config"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// SendEmail delivers one message through SendGrid. A missing API key
// only logs; notifications are best effort and never block a request.
func SendEmail(toEmail, toName, subject, plainText, htmlContent string) error {
	if config.AppConfig.SendGridKey == "" {
		log.Printf("SendGrid not configured, skipping email to %s (%s)", toEmail, subject)
		return nil
	}

	from := mail.NewEmail(config.AppConfig.EmailSenderName, config.AppConfig.EmailSender)
	recipient := mail.NewEmail(toName, toEmail)
	message := mail.NewSingleEmail(from, subject, recipient, plainText, htmlContent)

	client := sendgrid.NewSendClient(config.AppConfig.SendGridKey)
	response, err := client.Send(message)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("sendgrid error: status %d, body: %s", response.StatusCode, response.Body)
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
			.container { max-width: 600px; margin: 40px auto; background: #FFFFFF; border-radius: 8px; overflow: hidden; }
			.header { background-color: #1E3A8A; padding: 30px; text-align: center; }
			.header h1 { color: #FFFFFF; margin: 0; font-size: 24px; letter-spacing: 1px; }
			.content { padding: 40px 30px; color: #111827; line-height: 1.6; }
			.footer { background-color: #F6F6F6; padding: 20px; text-align: center; font-size: 12px; color: #666666; }
			.badge { display: inline-block; padding: 4px 10px; border-radius: 4px; font-size: 13px; font-weight: bold; color: white; }
		</style>
	</head>
	<body>
		<div class="container">
			<div class="header"><h1>LOANLINK</h1></div>
			<div class="content">
				<h2>%s</h2>
				%s
			</div>
			<div class="footer">
				&copy; LoanLink. All rights reserved.<br>
				Borrowing involves obligations. Please read all loan documents carefully.
			</div>
		</div>
	</body>
	</html>
	`, title, bodyContent)
}

// SendApplicationDecisionEmail notifies a borrower that a manager
// decided their application.
func SendApplicationDecisionEmail(email, name, loanTitle, status string, feePaid bool) {
	var subject, body string
	switch status {
	case "approved":
		subject = "Your loan application has been approved"
		body = fmt.Sprintf(`<p>Dear %s,</p>
			<p>Your application for <b>%s</b> has been <span class="badge" style="background:#16A34A">APPROVED</span>.</p>
			<p>Our team will contact you shortly with the disbursement schedule.</p>`, name, loanTitle)
	case "rejected":
		subject = "Update on your loan application"
		body = fmt.Sprintf(`<p>Dear %s,</p>
			<p>We are sorry to inform you that your application for <b>%s</b> has been <span class="badge" style="background:#DC2626">REJECTED</span>.</p>`, name, loanTitle)
		if feePaid {
			body += `<p>The application processing fee is non-refundable and covers the administrative verification of your documents.</p>`
		}
	default:
		return
	}

	if err := SendEmail(email, name, subject, subject, emailTemplate(subject, body)); err != nil {
		log.Printf("Failed to send decision email to %s: %v", email, err)
	}
}

// SendPaymentReceiptEmail confirms a processing-fee charge.
func SendPaymentReceiptEmail(email, name, loanTitle, transactionID string, amountCents int64) {
	subject := "Processing fee received"
	body := fmt.Sprintf(`<p>Dear %s,</p>
		<p>We received your application processing fee of <b>$%.2f</b> for <b>%s</b>.</p>
		<p>Transaction reference: <code>%s</code></p>
		<p>Your application now proceeds to review.</p>`,
		name, float64(amountCents)/100, loanTitle, transactionID)

	if err := SendEmail(email, name, subject, subject, emailTemplate(subject, body)); err != nil {
		log.Printf("Failed to send payment receipt to %s: %v", email, err)
	}
}
