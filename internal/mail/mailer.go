package mail

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gopkg.in/gomail.v2"

	"github.com/Domenick1991/airtickets/config"
)

type Message struct {
	To      string
	Subject string
	HTML    string
}

// Receipt records an accepted delivery. SMTP acks carry no payload, so the
// id is generated locally and travels with the audit event.
type Receipt struct {
	ID     string    `json:"id"`
	To     string    `json:"to"`
	SentAt time.Time `json:"sent_at"`
}

type Dispatcher interface {
	Send(ctx context.Context, msg Message) (*Receipt, error)
}

// SMTPDispatcher delivers over SMTP with bounded retries. Mail transports
// are flaky enough that a single transient failure should not surface to
// the caller.
type SMTPDispatcher struct {
	from     string
	attempts int
	backoff  time.Duration
	log      *zap.Logger

	// sendFn is swapped in tests; defaults to dialer.DialAndSend.
	sendFn func(*gomail.Message) error
}

func NewSMTPDispatcher(cfg config.SMTPConfig, log *zap.Logger) *SMTPDispatcher {
	dialer := gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password)
	return &SMTPDispatcher{
		from:     cfg.From,
		attempts: cfg.RetryAttempts,
		backoff:  cfg.RetryBackoff(),
		log:      log,
		sendFn:   func(m *gomail.Message) error { return dialer.DialAndSend(m) },
	}
}

func (d *SMTPDispatcher) Send(ctx context.Context, msg Message) (*Receipt, error) {
	m := gomail.NewMessage()
	m.SetHeader("From", d.from)
	m.SetHeader("To", msg.To)
	m.SetHeader("Subject", msg.Subject)
	m.SetBody("text/html", msg.HTML)

	attempts := d.attempts
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	for i := 0; i < attempts; i++ {
		if i > 0 {
			// gomail is not context-aware; honor cancellation between attempts.
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(time.Duration(i) * d.backoff):
			}
		}

		if lastErr = d.sendFn(m); lastErr == nil {
			return &Receipt{ID: uuid.NewString(), To: msg.To, SentAt: time.Now()}, nil
		}
		d.log.Warn("mail delivery attempt failed",
			zap.Int("attempt", i+1),
			zap.String("to", msg.To),
			zap.Error(lastErr))
	}

	return nil, fmt.Errorf("send after %d attempts: %w", attempts, lastErr)
}

var _ Dispatcher = (*SMTPDispatcher)(nil)
