package mailer

import (
	"fmt"
	"net/smtp"
	"sync"

	"go.uber.org/zap"

	"github.com/Beyond-Company/Ticketing-backend/internal/config"
)

// Message is a single outbound email. Kind selects the template pair and
// Lang selects the recipient's language, falling back to English.
type Message struct {
	To   string
	Kind Kind
	Lang string
	Vars map[string]any
}

// Mailer delivers templated emails over SMTP. Enqueue hands a message to a
// background worker; SendNow delivers inline for flows that must confirm
// delivery before responding.
type Mailer struct {
	cfg    config.MailConfig
	logger *zap.Logger

	queue chan Message
	done  chan struct{}
	wg    sync.WaitGroup

	// send is swappable in tests.
	send func(msg Message) error
}

func NewMailer(cfg config.MailConfig, logger *zap.Logger) *Mailer {
	size := cfg.QueueSize
	if size <= 0 {
		size = 64
	}
	m := &Mailer{
		cfg:    cfg,
		logger: logger,
		queue:  make(chan Message, size),
		done:   make(chan struct{}),
	}
	m.send = m.deliver
	return m
}

// Start launches the delivery worker. Delivery failures are logged and
// dropped; ticket state never depends on email succeeding.
func (m *Mailer) Start() {
	m.wg.Add(1)
	go func() {
		defer m.wg.Done()
		for {
			select {
			case msg := <-m.queue:
				if err := m.send(msg); err != nil {
					m.logger.Error("email delivery failed",
						zap.String("to", msg.To),
						zap.String("kind", string(msg.Kind)),
						zap.Error(err))
				}
			case <-m.done:
				return
			}
		}
	}()
}

// Stop signals the worker and waits for it to exit. Queued messages that
// were not picked up yet are discarded.
func (m *Mailer) Stop() {
	close(m.done)
	m.wg.Wait()
}

// Enqueue never blocks the caller. When the queue is saturated the message
// is dropped and logged.
func (m *Mailer) Enqueue(msg Message) {
	select {
	case m.queue <- msg:
	default:
		m.logger.Warn("email queue full, dropping message",
			zap.String("to", msg.To),
			zap.String("kind", string(msg.Kind)))
	}
}

// SendNow delivers synchronously. Used for login codes, where the caller
// must report upstream failures to the client.
func (m *Mailer) SendNow(msg Message) error {
	return m.send(msg)
}

func (m *Mailer) deliver(msg Message) error {
	subject, body, err := Render(msg.Kind, msg.Lang, msg.Vars)
	if err != nil {
		return err
	}

	raw := "From: " + m.cfg.From + "\r\n" +
		"To: " + msg.To + "\r\n" +
		"Subject: " + subject + "\r\n" +
		"MIME-Version: 1.0\r\n" +
		"Content-Type: text/plain; charset=UTF-8\r\n" +
		"\r\n" + body

	var auth smtp.Auth
	if m.cfg.Username != "" {
		auth = smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.SMTPHost)
	}

	addr := fmt.Sprintf("%s:%d", m.cfg.SMTPHost, m.cfg.SMTPPort)
	if err := smtp.SendMail(addr, auth, m.cfg.From, []string{msg.To}, []byte(raw)); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}
