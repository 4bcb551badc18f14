package mail

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

// SMTPMailer はリセットメールをSMTPで送る。
type SMTPMailer struct {
	dialer *gomail.Dialer
	from   string
}

func NewSMTPMailer(host string, port int, user string, pass string, from string) *SMTPMailer {
	return &SMTPMailer{
		dialer: gomail.NewDialer(host, port, user, pass),
		from:   from,
	}
}

func (m *SMTPMailer) SendPasswordReset(to string, resetURL string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", "Password Reset")

	body := fmt.Sprintf(`<p>You requested a password reset.</p>
<p>Click this <a href=%q>link</a> to set a new password. The link expires in one hour.</p>
<p>If you did not request a reset, you can ignore this mail.</p>`, resetURL)

	msg.SetBody("text/html", body)

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}
