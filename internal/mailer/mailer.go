package mailer

import (
	"io"
	"time"

	mail "github.com/go-mail/mail/v2"
)

// Mailer delivers notifications with an optional binary attachment. It is a
// best-effort collaborator: callers must treat a failed send as non-fatal.
type Mailer interface {
	SendWithAttachment(recipient, subject, body string, attachment []byte, filename string) error
}

type SMTPMailer struct {
	dialer *mail.Dialer
	sender string
}

func NewSMTPMailer(host string, port int, username, password, sender string) *SMTPMailer {
	dialer := mail.NewDialer(host, port, username, password)
	dialer.Timeout = 5 * time.Second

	return &SMTPMailer{
		dialer: dialer,
		sender: sender,
	}
}

func (m *SMTPMailer) SendWithAttachment(recipient, subject, body string, attachment []byte, filename string) error {
	msg := mail.NewMessage()
	msg.SetHeader("To", recipient)
	msg.SetHeader("From", m.sender)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	if len(attachment) > 0 {
		msg.Attach(filename, mail.SetCopyFunc(func(w io.Writer) error {
			_, err := w.Write(attachment)
			return err
		}))
	}

	var err error

	// Transient SMTP hiccups are common enough to warrant a couple of
	// retries before giving up.
	for i := 1; i <= 3; i++ {
		err = m.dialer.DialAndSend(msg)
		if err == nil {
			return nil
		}

		time.Sleep(500 * time.Millisecond)
	}

	return err
}
