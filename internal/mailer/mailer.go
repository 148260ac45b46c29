// package mailer delivers outbound mail. The service layer depends only
// on the Sender contract; delivery failures are surfaced, never retried.
package mailer

import (
	"fmt"
	"net/smtp"

	"github.com/a2sv-g68/admissions-service/internal/config"
)

type Sender interface {
	Send(to, subject, body string) error
}

type SMTPSender struct {
	cfg config.Mail
}

func NewSMTPSender(cfg config.Mail) *SMTPSender {
	return &SMTPSender{cfg: cfg}
}

func (s *SMTPSender) Send(to, subject, body string) error {
	msg := fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/html; charset=\"UTF-8\"\r\n\r\n%s",
		s.cfg.From, to, subject, body,
	)

	addr := s.cfg.Host + ":" + s.cfg.Port
	auth := smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)

	if err := smtp.SendMail(addr, auth, s.cfg.From, []string{to}, []byte(msg)); err != nil {
		return fmt.Errorf("failed to send mail to %s: %w", to, err)
	}

	return nil
}

// PasswordResetBody renders the reset mail for the given link.
func PasswordResetBody(resetURL string, expiresMinutes int) string {
	return fmt.Sprintf(`<html><body>
<p>Hello,</p>
<p>You requested to reset your password. Please click the link below to proceed:</p>
<p><a href="%s">Reset Password</a></p>
<p>This link will expire in %d minutes.</p>
<p>If you did not request a password reset, please ignore this email.</p>
</body></html>`, resetURL, expiresMinutes)
}
