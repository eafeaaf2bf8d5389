package mailer

import (
	"context"
	"errors"
	"fmt"
	"net/smtp"
	"time"

	"distributor-be/internal/config"
	"distributor-be/internal/logger"

	"go.uber.org/zap"
)

// ErrSendFailed wraps any SMTP failure so callers can map it to a
// downstream-unavailable response.
var ErrSendFailed = errors.New("failed to send verification otp")

// Mailer delivers transactional email for the distributor app.
type Mailer interface {
	SendVerificationOTP(ctx context.Context, toEmail, name, otp string) error
}

// SMTPMailer sends over a plain-auth SMTP relay.
type SMTPMailer struct {
	host     string
	port     string
	username string
	password string
	from     string
	otpTTL   time.Duration
}

func NewSMTP(cfg *config.Config) *SMTPMailer {
	from := cfg.SMTPFrom
	if from == "" {
		from = cfg.SMTPUsername
	}

	return &SMTPMailer{
		host:     cfg.SMTPHost,
		port:     cfg.SMTPPort,
		username: cfg.SMTPUsername,
		password: cfg.SMTPPassword,
		from:     from,
		otpTTL:   cfg.OTPTTL,
	}
}

func (m *SMTPMailer) SendVerificationOTP(ctx context.Context, toEmail, name, otp string) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "mailer"),
		zap.String("to", toEmail),
	)

	msg := buildVerificationMessage(m.from, toEmail, name, otp, m.otpTTL)

	auth := smtp.PlainAuth("", m.username, m.password, m.host)
	addr := m.host + ":" + m.port

	if err := smtp.SendMail(addr, auth, m.from, []string{toEmail}, msg); err != nil {
		log.Error("smtp send failed", zap.Error(err))
		return fmt.Errorf("%w: %v", ErrSendFailed, err)
	}

	log.Info("verification otp sent")
	return nil
}

func buildVerificationMessage(from, to, name, otp string, ttl time.Duration) []byte {
	minutes := int(ttl.Minutes())
	if minutes <= 0 {
		minutes = 10
	}

	subject := "Distributor App: Your One-Time Verification Code (OTP)"
	body := fmt.Sprintf(`<h2>Welcome, %s!</h2>
<p>Thank you for registering. Please use the following One-Time Password (OTP) to verify your email address and activate your account:</p>
<div style="font-size: 24px; font-weight: bold;">%s</div>
<p>This code expires in %d minutes. Do not share it with anyone.</p>`, name, otp, minutes)

	msg := fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/html; charset=UTF-8\r\n\r\n%s",
		from, to, subject, body,
	)
	return []byte(msg)
}

// Noop logs the OTP instead of sending it. Used in development when SMTP
// is not configured.
type Noop struct{}

func (Noop) SendVerificationOTP(ctx context.Context, toEmail, name, otp string) error {
	logger.FromCtx(ctx).Info("dev mode: skipping otp email",
		zap.String("to", toEmail),
		zap.String("otp", otp),
	)
	return nil
}
