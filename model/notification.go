package model

type NotificationChannel string

const (
	ChannelEmail NotificationChannel = "email"
	ChannelPush  NotificationChannel = "push"
)

type EventKind string

const (
	EventSuccess EventKind = "success"
	EventFailure EventKind = "failure"
)

// NotificationEvent is consumed once by the dispatcher and discarded.
type NotificationEvent struct {
	Channel NotificationChannel
	Kind    EventKind
	Subject string
	Body    string
}
