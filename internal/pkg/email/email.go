package email

import (
	"crypto/tls"
	"fmt"
	"net/smtp"
	"strconv"
	"time"

	"github.com/rs/zerolog"
)

// Sender defines the interface for outbound email operations
type Sender interface {
	SendOTPEmail(toEmail, code string) error
	SendCredentialsEmail(toEmail, toName, password string) error
	SendInterviewInviteEmail(toEmail, toName string, scheduledAt time.Time, meetingLink string) error
	SendRejectionEmail(toEmail, toName string) error
	SendApplicationLinkEmail(toEmail, link string) error
	SendMessageEmail(toEmail, subject, body string) error
}

// SMTPConfig holds configuration for SMTP server
type SMTPConfig struct {
	Host      string
	Port      int
	Username  string
	Password  string
	FromName  string
	FromEmail string
	UseTLS    bool
	BaseURL   string // Base URL for the application
}

// SMTPSender implements Sender over plain SMTP
type SMTPSender struct {
	config SMTPConfig
	logger zerolog.Logger
}

// NewSMTPSender creates a new SMTPSender
func NewSMTPSender(config SMTPConfig, logger zerolog.Logger) *SMTPSender {
	return &SMTPSender{
		config: config,
		logger: logger,
	}
}

// SendOTPEmail sends the one-time verification code used before registration
func (s *SMTPSender) SendOTPEmail(toEmail, code string) error {
	if s.devFallback("otp", toEmail, code) {
		return nil
	}

	subject := "Your InternHub Verification Code"
	body := fmt.Sprintf(`
		<html>
		<body>
			<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
				<h2 style="color: #333;">Email Verification</h2>
				<p>Your one-time verification code is:</p>
				<div style="text-align: center; margin: 30px 0;">
					<span style="font-size: 32px; letter-spacing: 8px; font-weight: bold;">%s</span>
				</div>
				<p>The code expires in 2 minutes. If you did not request it, please ignore this email.</p>
				<p>Best regards,<br>The InternHub Team</p>
			</div>
		</body>
		</html>
	`, code)

	return s.sendHTMLEmail(toEmail, subject, body)
}

// SendCredentialsEmail sends the initial login credentials to a hired applicant
func (s *SMTPSender) SendCredentialsEmail(toEmail, toName, password string) error {
	if s.devFallback("credentials", toEmail, "") {
		return nil
	}

	subject := "Welcome to InternHub - Your Account Details"
	body := fmt.Sprintf(`
		<html>
		<body>
			<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
				<h2 style="color: #333;">Congratulations, %s!</h2>
				<p>Your application has been accepted and your intern account is ready.</p>
				<p>Log in with your email address and this temporary password:</p>
				<div style="text-align: center; margin: 30px 0;">
					<span style="font-size: 20px; font-weight: bold;">%s</span>
				</div>
				<p>Please change your password after your first login.</p>
				<p>Best regards,<br>The InternHub Team</p>
			</div>
		</body>
		</html>
	`, toName, password)

	return s.sendHTMLEmail(toEmail, subject, body)
}

// SendInterviewInviteEmail sends an interview invitation with date and meeting link
func (s *SMTPSender) SendInterviewInviteEmail(toEmail, toName string, scheduledAt time.Time, meetingLink string) error {
	if s.devFallback("interview-invite", toEmail, meetingLink) {
		return nil
	}

	subject := "Interview Invitation - InternHub"
	body := fmt.Sprintf(`
		<html>
		<body>
			<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
				<h2 style="color: #333;">Interview Invitation</h2>
				<p>Hello %s,</p>
				<p>We would like to invite you to an interview on <strong>%s</strong>.</p>
				<div style="text-align: center; margin: 30px 0;">
					<a href="%s" style="background-color: #4a86e8; color: white; padding: 12px 24px; text-decoration: none; border-radius: 4px; font-weight: bold;">Join Interview</a>
				</div>
				<p>Best regards,<br>The InternHub Team</p>
			</div>
		</body>
		</html>
	`, toName, scheduledAt.Format("Monday, 2 January 2006 15:04"), meetingLink)

	return s.sendHTMLEmail(toEmail, subject, body)
}

// SendRejectionEmail informs an applicant that their application was not successful
func (s *SMTPSender) SendRejectionEmail(toEmail, toName string) error {
	if s.devFallback("rejection", toEmail, "") {
		return nil
	}

	subject := "Your InternHub Application"
	body := fmt.Sprintf(`
		<html>
		<body>
			<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
				<h2 style="color: #333;">Application Update</h2>
				<p>Hello %s,</p>
				<p>Thank you for your interest in our internship program. After careful review, we
				regret to inform you that we will not be moving forward with your application.</p>
				<p>We appreciate the time you invested and wish you success in your future endeavors.</p>
				<p>Best regards,<br>The InternHub Team</p>
			</div>
		</body>
		</html>
	`, toName)

	return s.sendHTMLEmail(toEmail, subject, body)
}

// SendApplicationLinkEmail sends a tokenized application submission link
func (s *SMTPSender) SendApplicationLinkEmail(toEmail, link string) error {
	if s.devFallback("application-link", toEmail, link) {
		return nil
	}

	subject := "Your InternHub Application Link"
	body := fmt.Sprintf(`
		<html>
		<body>
			<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
				<h2 style="color: #333;">Apply to InternHub</h2>
				<p>You have been invited to submit an internship application.</p>
				<div style="text-align: center; margin: 30px 0;">
					<a href="%s" style="background-color: #4a86e8; color: white; padding: 12px 24px; text-decoration: none; border-radius: 4px; font-weight: bold;">Start Application</a>
				</div>
				<p>The link is valid for a single submission.</p>
				<p>Best regards,<br>The InternHub Team</p>
			</div>
		</body>
		</html>
	`, link)

	return s.sendHTMLEmail(toEmail, subject, body)
}

// SendMessageEmail delivers a free-form message composed by an admin
func (s *SMTPSender) SendMessageEmail(toEmail, subject, body string) error {
	if s.devFallback("message", toEmail, subject) {
		return nil
	}

	htmlBody := fmt.Sprintf(`
		<html>
		<body>
			<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
				<p>%s</p>
				<p>Best regards,<br>The InternHub Team</p>
			</div>
		</body>
		</html>
	`, body)

	return s.sendHTMLEmail(toEmail, subject, htmlBody)
}

// devFallback logs instead of sending when SMTP credentials are not
// configured. Returns true when the send should be skipped.
func (s *SMTPSender) devFallback(kind, toEmail, detail string) bool {
	if s.config.Username != "" && s.config.Password != "" {
		return false
	}
	s.logger.Warn().
		Str("kind", kind).
		Str("toEmail", toEmail).
		Str("detail", detail).
		Msg("SMTP credentials not configured - email not sent, payload logged for testing")
	return true
}

// sendHTMLEmail sends an HTML email
func (s *SMTPSender) sendHTMLEmail(toEmail, subject, htmlBody string) error {
	auth := smtp.PlainAuth(
		"",
		s.config.Username,
		s.config.Password,
		s.config.Host,
	)

	headers := map[string]string{
		"From":         fmt.Sprintf("%s <%s>", s.config.FromName, s.config.FromEmail),
		"To":           toEmail,
		"Subject":      subject,
		"MIME-Version": "1.0",
		"Content-Type": "text/html; charset=UTF-8",
	}

	message := ""
	for key, value := range headers {
		message += fmt.Sprintf("%s: %s\r\n", key, value)
	}
	message += "\r\n" + htmlBody

	serverAddress := s.config.Host + ":" + strconv.Itoa(s.config.Port)

	if s.config.UseTLS {
		tlsConfig := &tls.Config{
			InsecureSkipVerify: true,
			ServerName:         s.config.Host,
		}

		conn, err := tls.Dial("tcp", serverAddress, tlsConfig)
		if err != nil {
			s.logger.Error().Err(err).Str("server", serverAddress).Msg("Failed to connect to SMTP server")
			return fmt.Errorf("failed to connect to SMTP server: %w", err)
		}
		defer conn.Close()

		client, err := smtp.NewClient(conn, s.config.Host)
		if err != nil {
			s.logger.Error().Err(err).Msg("Failed to create SMTP client")
			return fmt.Errorf("failed to create SMTP client: %w", err)
		}
		defer client.Quit()

		if err = client.Auth(auth); err != nil {
			s.logger.Error().Err(err).Msg("SMTP authentication failed")
			return fmt.Errorf("SMTP authentication failed: %w", err)
		}

		if err = client.Mail(s.config.FromEmail); err != nil {
			return fmt.Errorf("failed to set sender: %w", err)
		}
		if err = client.Rcpt(toEmail); err != nil {
			return fmt.Errorf("failed to set recipient: %w", err)
		}

		w, err := client.Data()
		if err != nil {
			return fmt.Errorf("failed to get data writer: %w", err)
		}
		if _, err = w.Write([]byte(message)); err != nil {
			return fmt.Errorf("failed to write email message: %w", err)
		}
		if err = w.Close(); err != nil {
			return fmt.Errorf("failed to close data writer: %w", err)
		}

		return nil
	}

	err := smtp.SendMail(
		serverAddress,
		auth,
		s.config.FromEmail,
		[]string{toEmail},
		[]byte(message),
	)
	if err != nil {
		s.logger.Error().Err(err).Str("server", serverAddress).Msg("Failed to send email")
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}
