package mailer

import (
	"context"
	"fmt"
	"log/slog"
	"net/smtp"

	"expensetracker/internal"
)

// SMTPMailer sends password-reset emails through a plain SMTP relay.
type SMTPMailer struct {
	cfg    internal.MailerConfig
	send   func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
	logger *slog.Logger
}

func NewSMTPMailer(cfg internal.MailerConfig, logger *slog.Logger) *SMTPMailer {
	return &SMTPMailer{
		cfg:    cfg,
		send:   smtp.SendMail,
		logger: logger,
	}
}

func (m *SMTPMailer) SendPasswordReset(ctx context.Context, to, resetToken string) error {
	resetURL := fmt.Sprintf("%s/reset-password?token=%s", m.cfg.FrontendURL, resetToken)

	body := fmt.Sprintf(
		"From: Support <%s>\r\n"+
			"To: %s\r\n"+
			"Subject: Reset Your Password\r\n"+
			"MIME-Version: 1.0\r\n"+
			"Content-Type: text/html; charset=UTF-8\r\n"+
			"\r\n"+
			"<p>You requested a password reset.</p>"+
			"<p>Click <a href=\"%s\">here</a> to reset your password.</p>"+
			"<p>This link expires in 1 hour.</p>\r\n",
		m.cfg.From, to, resetURL)

	addr := fmt.Sprintf("%s:%d", m.cfg.SMTPHost, m.cfg.SMTPPort)

	var a smtp.Auth
	if m.cfg.Username != "" {
		a = smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.SMTPHost)
	}

	m.logger.Info("sending password reset email", "to", to)

	if err := m.send(addr, a, m.cfg.From, []string{to}, []byte(body)); err != nil {
		return fmt.Errorf("send reset email: %w", err)
	}
	return nil
}
