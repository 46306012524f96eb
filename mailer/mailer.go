package mailer

import (
	"fmt"

	"machcrm/config"

	"gopkg.in/gomail.v2"
)

// Mailer sends the CRM's plain-text notification mail over SMTP. Sending is
// best-effort everywhere: callers log errors and move on.
type Mailer struct {
	dialer     *gomail.Dialer
	sender     string
	recipients []string
}

func New(cfg config.Configuration) *Mailer {
	return &Mailer{
		dialer:     gomail.NewDialer(cfg.Smtp.Host, cfg.Smtp.Port, cfg.Smtp.Sender, cfg.Smtp.Password),
		sender:     cfg.Smtp.Sender,
		recipients: cfg.Smtp.Recipients,
	}
}

// Send delivers one message. An empty recipient targets the configured group.
func (m *Mailer) Send(recipient, subject, body string) error {
	to := m.recipients
	if recipient != "" {
		to = []string{recipient}
	}
	if len(to) == 0 {
		return fmt.Errorf("no recipients configured")
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.sender)
	msg.SetHeader("To", to...)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	return m.dialer.DialAndSend(msg)
}

// OTPBody is the out-of-band message carrying a freshly issued code.
func OTPBody(code string) string {
	return fmt.Sprintf("Your OTP is: %s", code)
}
