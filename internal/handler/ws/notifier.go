package ws

import (
	"context"

	"TrainBoard/internal/domain/models"
	xlogger "TrainBoard/pkg/logger"
)

// Notifier delivers alerts to connected dashboards and to the log.
type Notifier struct {
	hub    *Hub
	logger *xlogger.Logger
}

func NewNotifier(hub *Hub, logger *xlogger.Logger) *Notifier {
	if logger == nil {
		logger = xlogger.Nop()
	}
	return &Notifier{hub: hub, logger: logger}
}

func (n *Notifier) Notify(_ context.Context, msg models.Notification) {
	n.logger.Warn("alert",
		xlogger.String("source", msg.Source),
		xlogger.String("title", msg.Title),
		xlogger.String("message", msg.Message),
	)
	n.hub.Broadcast(Event{Type: EventAlert, Data: msg})
}
