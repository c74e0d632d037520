package notify

import (
	"context"
	"fmt"
	"log"
	"net/smtp"
	"net/url"
	"strings"
)

// Mailer delivers transactional email. Implementations must be safe for
// concurrent use; callers treat delivery as best effort.
type Mailer interface {
	SendVerificationEmail(ctx context.Context, to, name, token string) error
	SendPasswordResetEmail(ctx context.Context, to, name, token string) error
	SendBookingReceipt(ctx context.Context, to string, ev BookingConfirmedEvent) error
}

// SMTPConfig holds the settings for the SMTP mailer.
type SMTPConfig struct {
	Addr        string // host:port
	From        string
	Username    string
	Password    string
	FrontendURL string // base URL for links embedded in emails
}

// SMTPMailer sends email through a plain SMTP relay.
type SMTPMailer struct {
	cfg SMTPConfig
}

func NewSMTPMailer(cfg SMTPConfig) *SMTPMailer {
	return &SMTPMailer{cfg: cfg}
}

func (m *SMTPMailer) SendVerificationEmail(ctx context.Context, to, name, token string) error {
	link := fmt.Sprintf("%s/verify-email?token=%s", m.cfg.FrontendURL, url.QueryEscape(token))
	body := fmt.Sprintf(
		"Hi %s,\r\n\r\nWelcome to TurfBook! Please verify your email address to start booking grounds:\r\n\r\n%s\r\n\r\nThis link will expire in 24 hours.\r\n",
		name, link,
	)
	return m.send(to, "Verify Your Email - TurfBook", body)
}

func (m *SMTPMailer) SendPasswordResetEmail(ctx context.Context, to, name, token string) error {
	link := fmt.Sprintf("%s/reset-password?token=%s", m.cfg.FrontendURL, url.QueryEscape(token))
	body := fmt.Sprintf(
		"Hi %s,\r\n\r\nYou requested to reset your password. Use the link below to choose a new one:\r\n\r\n%s\r\n\r\nThis link will expire in 1 hour. If you didn't request this, please ignore this email.\r\n",
		name, link,
	)
	return m.send(to, "Reset Your Password - TurfBook", body)
}

func (m *SMTPMailer) SendBookingReceipt(ctx context.Context, to string, ev BookingConfirmedEvent) error {
	body := fmt.Sprintf(
		"Hi %s,\r\n\r\nYour booking at %s on %s is confirmed.\r\n\r\nSlots: %s\r\nTotal: %.2f\r\n\r\nSee you on the ground!\r\n",
		ev.UserName, ev.GroundName, ev.Date, strings.Join(ev.TimeSlots, ", "), ev.TotalAmount,
	)
	return m.send(to, "Booking Confirmed - TurfBook", body)
}

func (m *SMTPMailer) send(to, subject, body string) error {
	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/plain; charset=utf-8\r\n\r\n%s",
		m.cfg.From, to, subject, body)

	host := m.cfg.Addr
	if i := strings.IndexByte(host, ':'); i >= 0 {
		host = host[:i]
	}

	var a smtp.Auth
	if m.cfg.Username != "" {
		a = smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, host)
	}

	if err := smtp.SendMail(m.cfg.Addr, a, m.cfg.From, []string{to}, []byte(msg)); err != nil {
		return fmt.Errorf("smtp send to %s failed: %w", to, err)
	}
	return nil
}

// LogMailer writes emails to the log instead of delivering them. Used in
// development and tests when no SMTP relay is configured.
type LogMailer struct{}

func NewLogMailer() *LogMailer {
	return &LogMailer{}
}

func (m *LogMailer) SendVerificationEmail(ctx context.Context, to, name, token string) error {
	log.Printf("[mail] verification email to %s (token %s)", to, token)
	return nil
}

func (m *LogMailer) SendPasswordResetEmail(ctx context.Context, to, name, token string) error {
	log.Printf("[mail] password reset email to %s (token %s)", to, token)
	return nil
}

func (m *LogMailer) SendBookingReceipt(ctx context.Context, to string, ev BookingConfirmedEvent) error {
	log.Printf("[mail] booking receipt to %s for booking %s", to, ev.BookingID)
	return nil
}
