package email

import (
	"gopkg.in/gomail.v2"
)

// Sender delivers an HTML email
type Sender interface {
	Send(to, subject, body string) error
}

// dialer is the part of gomail.Dialer SMTPSender needs
type dialer interface {
	DialAndSend(m ...*gomail.Message) error
}

// SMTPSender sends mail through an SMTP server
type SMTPSender struct {
	from   string
	dialer dialer
}

func NewSMTPSender(host string, port int, user, password, from string) *SMTPSender {
	return &SMTPSender{
		from:   from,
		dialer: gomail.NewDialer(host, port, user, password),
	}
}

// Send sends an HTML email.
// It returns an error if the email could not be sent.
func (s *SMTPSender) Send(to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)
	return s.dialer.DialAndSend(m)
}
