package service

import (
	"fmt"

	"radlab-backoffice/config"

	"github.com/sirupsen/logrus"
	"gopkg.in/gomail.v2"
)

// Mailer sends transactional email.
type Mailer interface {
	SendPasswordReset(to string, name string, token string) error
}

type mailer struct {
	cfg *config.Config
	log *logrus.Logger
}

func NewMailer(cfg *config.Config, log *logrus.Logger) Mailer {
	return &mailer{cfg: cfg, log: log}
}

// SendPasswordReset emails a reset link built from the frontend base URL.
func (m *mailer) SendPasswordReset(to string, name string, token string) error {
	resetURL := fmt.Sprintf("%s/reset-password?token=%s", m.cfg.App.FrontendURL, token)

	body := fmt.Sprintf(`<p>Hello %s,</p>
<p>We received a request to reset your password. Click the link below to choose a new one. The link expires in 1 hour.</p>
<p><a href="%s">Reset your password</a></p>
<p>If you did not request this, you can safely ignore this email.</p>`, name, resetURL)

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.cfg.SMTP.User)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", "Password Reset Request")
	msg.SetBody("text/html", body)

	dialer := gomail.NewDialer(m.cfg.SMTP.Host, m.cfg.SMTP.Port, m.cfg.SMTP.User, m.cfg.SMTP.Password)
	if err := dialer.DialAndSend(msg); err != nil {
		m.log.Warnf("Failed to send password reset email to %s: %+v", to, err)
		return err
	}
	return nil
}
