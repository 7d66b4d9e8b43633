package notify

import (
	"context"

	"donation_server/config"
	"donation_server/model"

	"github.com/mailgun/mailgun-go/v4"
)

// Mailgun sends notification emails through the Mailgun messages API.
type Mailgun struct {
	cfg    config.MailgunConfig
	client *mailgun.MailgunImpl
}

func NewMailgun(cfg config.MailgunConfig) *Mailgun {
	return &Mailgun{
		cfg:    cfg,
		client: mailgun.NewMailgun(cfg.Domain, cfg.APIKey),
	}
}

func (m *Mailgun) Send(ctx context.Context, event model.NotificationEvent) error {
	msg := m.client.NewMessage(m.cfg.From, event.Subject, event.Body, m.cfg.To)
	_, _, err := m.client.Send(ctx, msg)
	return err
}
