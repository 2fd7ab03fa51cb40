package services

import (
	"fmt"
	"log"
	"strings"

	"barangay_portal_go/config"

	"github.com/resend/resend-go/v2"
)

// Email represents an email message
type Email struct {
	To       []string
	Subject  string
	HTMLBody string
	TextBody string
}

// SendEmail sends an email using Resend API
func SendEmail(cfg *config.Config, email *Email) error {
	// In development mode, log the email instead of sending
	if cfg.EmailTestMode {
		logEmailToConsole(email)
		return nil
	}

	if cfg.ResendAPIKey == "" {
		return fmt.Errorf("RESEND_API_KEY not configured")
	}

	client := resend.NewClient(cfg.ResendAPIKey)

	fromAddress := fmt.Sprintf("%s <%s>", cfg.EmailFromName, cfg.EmailFrom)

	params := &resend.SendEmailRequest{
		From:    fromAddress,
		To:      email.To,
		Subject: email.Subject,
	}
	if email.HTMLBody != "" {
		params.Html = email.HTMLBody
	}
	if email.TextBody != "" {
		params.Text = email.TextBody
	}
	if params.Html == "" && params.Text == "" {
		return fmt.Errorf("email must have either HTMLBody or TextBody")
	}

	sent, err := client.Emails.Send(params)
	if err != nil {
		return fmt.Errorf("failed to send email via Resend: %v", err)
	}

	log.Printf("Email sent successfully via Resend (ID: %s) to: %v", sent.Id, email.To)
	return nil
}

// SendEmailAsync sends an email in a goroutine so handlers never block on
// the mail provider.
func SendEmailAsync(cfg *config.Config, email *Email) {
	emailCopy := &Email{
		To:       append([]string{}, email.To...),
		Subject:  email.Subject,
		HTMLBody: email.HTMLBody,
		TextBody: email.TextBody,
	}

	go func() {
		if err := SendEmail(cfg, emailCopy); err != nil {
			log.Printf("Error sending async email: %v", err)
		}
	}()
}

// logEmailToConsole logs email details to console in development mode
func logEmailToConsole(email *Email) {
	separator := strings.Repeat("=", 80)
	log.Printf("\n%s\nEMAIL (Development Mode - Not Actually Sent)\n%s", separator, separator)
	log.Printf("To: %v", email.To)
	log.Printf("Subject: %s", email.Subject)
	log.Printf("\n--- TEXT BODY ---\n%s", email.TextBody)
	log.Printf("%s\n", separator)
}

// BuildAccountVerifiedEmail tells a resident their account has been verified.
func BuildAccountVerifiedEmail(cfg *config.Config, residentEmail, residentName string) *Email {
	text := fmt.Sprintf(`Hello %s,

Your Barangay Portal account has been verified. You can now log in and file complaints or request assistance.

%s

Thank you,
%s`, residentName, cfg.AppURL, cfg.EmailFromName)

	html := fmt.Sprintf(`<p>Hello %s,</p>
<p>Your Barangay Portal account has been verified. You can now log in and file complaints or request assistance.</p>
<p><a href="%s">Open the portal</a></p>
<p>Thank you,<br>%s</p>`, residentName, cfg.AppURL, cfg.EmailFromName)

	return &Email{
		To:       []string{residentEmail},
		Subject:  "Your Barangay Portal account has been verified",
		TextBody: text,
		HTMLBody: html,
	}
}

// BuildFeedbackResponseEmail carries an admin's reply to submitted feedback.
func BuildFeedbackResponseEmail(cfg *config.Config, toEmail, toName, subject, response string) *Email {
	text := fmt.Sprintf(`Hello %s,

Thank you for your feedback regarding "%s". Here is our response:

%s

Thank you,
%s`, toName, subject, response, cfg.EmailFromName)

	html := fmt.Sprintf(`<p>Hello %s,</p>
<p>Thank you for your feedback regarding &quot;%s&quot;. Here is our response:</p>
<blockquote>%s</blockquote>
<p>Thank you,<br>%s</p>`, toName, subject, response, cfg.EmailFromName)

	return &Email{
		To:       []string{toEmail},
		Subject:  fmt.Sprintf("Re: %s", subject),
		TextBody: text,
		HTMLBody: html,
	}
}
