package utils

import (
	"fmt"
	"log"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"waypoint/config"
)

// sendEmail delivers a single HTML message through SendGrid. When no API key
// is configured the message is logged and dropped so mutation flows never
// block on mail delivery.
func sendEmail(toEmail, toName, subject, html string) error {
	if config.AppConfig.SendgridKey == "" {
		log.Printf("[EMAIL] SendGrid not configured, skipping %q to %s", subject, toEmail)
		return nil
	}

	from := mail.NewEmail(config.AppConfig.AppName, config.AppConfig.EmailSender)
	to := mail.NewEmail(toName, toEmail)
	message := mail.NewSingleEmail(from, subject, to, "", html)

	client := sendgrid.NewSendClient(config.AppConfig.SendgridKey)
	resp, err := client.Send(message)
	if err != nil {
		log.Printf("[EMAIL] Error sending %q to %s: %v", subject, toEmail, err)
		return err
	}
	if resp.StatusCode >= 400 {
		log.Printf("[EMAIL] SendGrid rejected %q to %s: %d", subject, toEmail, resp.StatusCode)
		return fmt.Errorf("sendgrid returned %d", resp.StatusCode)
	}
	return nil
}

// SendEnrollmentEmail sends an email notification when a user enrolls in a course
func SendEnrollmentEmail(email, userName, courseTitle string) error {
	subject := "Course Enrollment Confirmation"
	body := fmt.Sprintf(`
		<html>
			<body style="font-family: Arial, sans-serif; padding: 20px;">
				<h2>Enrollment confirmed</h2>
				<p>Dear %s,</p>
				<p>You are now enrolled in:</p>
				<h3>%s</h3>
				<p>Open your dashboard to start with the first lesson and track your weekly progress.</p>
			</body>
		</html>
	`, userName, courseTitle)

	return sendEmail(email, userName, subject, body)
}

// SendCertificateEmail sends a notification when a certificate is issued
func SendCertificateEmail(email, userName, courseTitle, verificationCode string) error {
	subject := "Your Certificate Has Been Issued"
	body := fmt.Sprintf(`
		<html>
			<body style="font-family: Arial, sans-serif; padding: 20px;">
				<h2>Congratulations, %s!</h2>
				<p>Your certificate for <strong>%s</strong> has been issued.</p>
				<p>Verification code: <code>%s</code></p>
				<p>Anyone can confirm its validity at /verify/%s.</p>
			</body>
		</html>
	`, userName, courseTitle, verificationCode, verificationCode)

	return sendEmail(email, userName, subject, body)
}
