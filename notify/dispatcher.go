package notify

import (
	"context"
	"sync"
	"time"

	"donation_server/config"
	"donation_server/logger"
	"donation_server/metrics"
	"donation_server/model"

	"github.com/sirupsen/logrus"
)

// Channel delivers a single notification event to one provider.
type Channel interface {
	Send(ctx context.Context, event model.NotificationEvent) error
}

// Dispatcher decides whether an event actually goes out and delivers it.
// Delivery is best-effort: a single attempt per event, failures are logged
// and counted but never returned to the caller.
type Dispatcher struct {
	cfg     *config.ServiceConfig
	email   Channel
	push    Channel
	log     *logger.Logger
	metrics *metrics.Metrics
	timeout time.Duration
}

func NewDispatcher(cfg *config.ServiceConfig, email, push Channel, log *logger.Logger, m *metrics.Metrics) *Dispatcher {
	return &Dispatcher{
		cfg:     cfg,
		email:   email,
		push:    push,
		log:     log,
		metrics: m,
		timeout: 10 * time.Second,
	}
}

// Broadcast builds one email and one push event for the outcome kind and
// attempts both concurrently. It returns once both attempts finished.
func (d *Dispatcher) Broadcast(ctx context.Context, kind model.EventKind, subject, body string) {
	var wg sync.WaitGroup
	for _, channel := range []model.NotificationChannel{model.ChannelEmail, model.ChannelPush} {
		event := model.NotificationEvent{Channel: channel, Kind: kind, Subject: subject, Body: body}
		wg.Add(1)
		go func() {
			defer wg.Done()
			d.Dispatch(ctx, event)
		}()
	}
	wg.Wait()
}

// Dispatch delivers a single event if its channel is configured and the
// toggle for the event kind is enabled.
func (d *Dispatcher) Dispatch(ctx context.Context, event model.NotificationEvent) {
	var target Channel
	switch event.Channel {
	case model.ChannelEmail:
		if !d.emailEnabled(event.Kind) {
			return
		}
		target = d.email
	case model.ChannelPush:
		if !d.pushEnabled(event.Kind) {
			return
		}
		target = d.push
	default:
		return
	}

	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	if err := target.Send(ctx, event); err != nil {
		d.metrics.Notifications.WithLabelValues(string(event.Channel), "error").Inc()
		d.log.WithFields(logrus.Fields{
			"channel": string(event.Channel),
			"kind":    string(event.Kind),
		}).WithError(err).Error("notification delivery failed")
		return
	}
	d.metrics.Notifications.WithLabelValues(string(event.Channel), "ok").Inc()
}

func (d *Dispatcher) emailEnabled(kind model.EventKind) bool {
	if d.email == nil || !d.cfg.Mailgun.Configured() {
		return false
	}
	if kind == model.EventSuccess {
		return d.cfg.EmailOnSuccess
	}
	return d.cfg.EmailOnFailure
}

func (d *Dispatcher) pushEnabled(kind model.EventKind) bool {
	if d.push == nil || !d.cfg.Pushover.Configured() {
		return false
	}
	if kind == model.EventSuccess {
		return d.cfg.PushOnSuccess
	}
	return d.cfg.PushOnFailure
}
