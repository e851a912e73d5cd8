package mail

import (
	"github.com/rs/zerolog/log"
	"gopkg.in/gomail.v2"
)

// Message is the structured payload accepted by the mailer. Text and HTML are
// alternative bodies, both optional but at least one should be set.
type Message struct {
	From    string
	To      string
	Subject string
	Text    string
	HTML    string
}

// Sender delivers a single message. Delivery is best-effort; callers must not
// treat a failure as fatal to the request that produced it.
type Sender interface {
	Send(m Message) error
}

// SMTPSender sends through a plain SMTP relay (Gmail in production).
type SMTPSender struct {
	dialer *gomail.Dialer
	from   string
}

func NewSMTPSender(host string, port int, user, pass string) *SMTPSender {
	return &SMTPSender{
		dialer: gomail.NewDialer(host, port, user, pass),
		from:   user,
	}
}

func (s *SMTPSender) Send(m Message) error {
	msg := gomail.NewMessage()
	from := m.From
	if from == "" {
		from = s.from
	}
	msg.SetHeader("From", from)
	msg.SetHeader("To", m.To)
	msg.SetHeader("Subject", m.Subject)
	msg.SetBody("text/plain", m.Text)
	if m.HTML != "" {
		msg.AddAlternative("text/html", m.HTML)
	}
	return s.dialer.DialAndSend(msg)
}

// SendAsync fires the message on its own goroutine. Failures are logged and
// never reach the caller.
func SendAsync(s Sender, m Message) {
	if s == nil {
		return
	}
	go func() {
		if err := s.Send(m); err != nil {
			log.Error().Err(err).Str("to", m.To).Str("subject", m.Subject).Msg("falha ao enviar e-mail")
			return
		}
		log.Info().Str("to", m.To).Str("subject", m.Subject).Msg("e-mail enviado")
	}()
}
