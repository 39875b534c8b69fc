package services

import (
	"crypto/rand"
	"fmt"
	"log"
	"math/big"
	"os"

	"github.com/resend/resend-go/v2"
)

type EmailService struct {
	Client *resend.Client
	From   string
}

func NewEmailService() *EmailService {
	apiKey := os.Getenv("RESEND_API_KEY")
	fromEmail := os.Getenv("FROM_EMAIL")

	log.Printf("📧 Email Service Initialized (Resend)")
	log.Printf("   - From Email: %s", fromEmail)
	log.Printf("   - API Key: %s", maskAPIKey(apiKey))

	if apiKey == "" {
		log.Printf("⚠️  WARNING: RESEND_API_KEY is empty!")
	}
	if fromEmail == "" {
		log.Printf("⚠️  WARNING: FROM_EMAIL is empty!")
		fromEmail = "onboarding@resend.dev" // Resend's default test email
	}

	client := resend.NewClient(apiKey)

	return &EmailService{
		Client: client,
		From:   fromEmail,
	}
}

// Helper function to mask API key for logging
func maskAPIKey(key string) string {
	if len(key) == 0 {
		return "❌ EMPTY"
	}
	if len(key) < 8 {
		return "***"
	}
	return key[:4] + "****" + key[len(key)-4:]
}

// GenerateOTP generates a 6-digit OTP
func GenerateOTP() (string, error) {
	max := big.NewInt(1000000)
	n, err := rand.Int(rand.Reader, max)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

// Send relays an arbitrary email. from falls back to the configured sender.
// Exactly one of html or text must be non-empty; the caller validates that.
func (es *EmailService) Send(to, subject, html, text, from string) (string, error) {
	if from == "" {
		from = es.From
	}

	params := &resend.SendEmailRequest{
		From:    from,
		To:      []string{to},
		Subject: subject,
	}
	if html != "" {
		params.Html = html
	} else {
		params.Text = text
	}

	sent, err := es.Client.Emails.Send(params)
	if err != nil {
		log.Printf("❌ Resend error: %v", err)
		return "", fmt.Errorf("failed to send email: %w", err)
	}

	log.Printf("✅ Email sent successfully to: %s", to)
	return sent.Id, nil
}

// SendOTPEmail sends OTP via email using Resend
func (es *EmailService) SendOTPEmail(to, otp, purpose string) error {
	log.Printf("📨 Attempting to send %s OTP to %s", purpose, to)

	var subject, htmlBody string

	if purpose == "signup" {
		subject = "Welcome to DealDoor - Verify Your Email"
		htmlBody = fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head>
    <style>
        body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
        .container { max-width: 600px; margin: 0 auto; padding: 20px; }
        .otp-box { background-color: #f4f4f4; border: 2px dashed #007bff; padding: 20px; text-align: center; margin: 20px 0; border-radius: 5px; }
        .otp-code { font-size: 32px; font-weight: bold; color: #007bff; letter-spacing: 5px; }
        .footer { margin-top: 30px; font-size: 12px; color: #666; }
    </style>
</head>
<body>
    <div class="container">
        <h2>Welcome to DealDoor!</h2>
        <p>Thank you for signing up. Please use the following OTP to verify your email address:</p>
        <div class="otp-box">
            <div class="otp-code">%s</div>
        </div>
        <p>This OTP will expire in <strong>10 minutes</strong>.</p>
        <p>If you didn't request this, please ignore this email.</p>
        <div class="footer">
            <p>This is an automated message, please do not reply.</p>
        </div>
    </div>
</body>
</html>
        `, otp)
	} else {
		subject = "DealDoor - Password Reset Request"
		htmlBody = fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head>
    <style>
        body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
        .container { max-width: 600px; margin: 0 auto; padding: 20px; }
        .otp-box { background-color: #f4f4f4; border: 2px dashed #dc3545; padding: 20px; text-align: center; margin: 20px 0; border-radius: 5px; }
        .otp-code { font-size: 32px; font-weight: bold; color: #dc3545; letter-spacing: 5px; }
        .footer { margin-top: 30px; font-size: 12px; color: #666; }
    </style>
</head>
<body>
    <div class="container">
        <h2>Password Reset Request</h2>
        <p>We received a request to reset your DealDoor account password. Use the following OTP:</p>
        <div class="otp-box">
            <div class="otp-code">%s</div>
        </div>
        <p>This OTP will expire in <strong>10 minutes</strong>.</p>
        <p>If you didn't request this, please ignore this email and your password will remain unchanged.</p>
        <div class="footer">
            <p>This is an automated message, please do not reply.</p>
        </div>
    </div>
</body>
</html>
        `, otp)
	}

	_, err := es.Send(to, subject, htmlBody, "", "")
	return err
}

// SendWaitlistDecisionEmail tells a requester whether their contact request
// on a listing was accepted
func (es *EmailService) SendWaitlistDecisionEmail(to, listingTitle string, accepted bool) error {
	var subject, htmlBody string

	if accepted {
		subject = "DealDoor - Contact Request Approved"
		htmlBody = fmt.Sprintf(`
<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333;">
    <div style="max-width: 600px; margin: 0 auto; padding: 20px;">
        <h2>You're in!</h2>
        <p>The seller approved your contact request for <strong>%s</strong>.</p>
        <p>Open the listing in DealDoor to see the seller's contact details and start the conversation.</p>
        <p style="margin-top: 30px; font-size: 12px; color: #666;">This is an automated message, please do not reply.</p>
    </div>
</body>
</html>
        `, listingTitle)
	} else {
		subject = "DealDoor - Contact Request Update"
		htmlBody = fmt.Sprintf(`
<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333;">
    <div style="max-width: 600px; margin: 0 auto; padding: 20px;">
        <h2>Contact request declined</h2>
        <p>The seller declined your contact request for <strong>%s</strong>.</p>
        <p>You can keep browsing other below-market deals on DealDoor.</p>
        <p style="margin-top: 30px; font-size: 12px; color: #666;">This is an automated message, please do not reply.</p>
    </div>
</body>
</html>
        `, listingTitle)
	}

	_, err := es.Send(to, subject, htmlBody, "", "")
	return err
}
