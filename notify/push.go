package notify

import (
	"context"

	"donation_server/config"
	"donation_server/model"

	"github.com/gregdel/pushover"
)

// Pushover sends push notifications through the Pushover messages API.
// The client library manages its own HTTP timeout, so the dispatcher
// context is not consulted here.
type Pushover struct {
	cfg       config.PushoverConfig
	app       *pushover.Pushover
	recipient *pushover.Recipient
}

func NewPushover(cfg config.PushoverConfig) *Pushover {
	return &Pushover{
		cfg:       cfg,
		app:       pushover.New(cfg.AppToken),
		recipient: pushover.NewRecipient(cfg.UserKey),
	}
}

func (p *Pushover) Send(_ context.Context, event model.NotificationEvent) error {
	msg := pushover.NewMessageWithTitle(event.Body, event.Subject)
	msg.DeviceName = p.cfg.Device
	_, err := p.app.SendMessage(msg, p.recipient)
	return err
}
