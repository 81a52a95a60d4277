package events

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// RegisterAuditLogger subscribes an audit trail for ticket lifecycle
// events. Each event is stamped with an id and timestamp at publish time
// when the service left them empty.
func RegisterAuditLogger(dispatcher Dispatcher, logger *zap.Logger) {
	handler := func(_ context.Context, event Event) error {
		if event.ID == "" {
			event.ID = uuid.NewString()
		}
		if event.Timestamp.IsZero() {
			event.Timestamp = time.Now().UTC()
		}
		logger.Info("ticket event",
			zap.String("event_id", event.ID),
			zap.String("type", string(event.Type)),
			zap.Int64("chamado_id", event.TicketID),
			zap.String("actor_user_id", event.ActorUserID),
			zap.Any("payload", event.Payload),
		)
		return nil
	}

	dispatcher.Subscribe(EventTicketCreated, handler)
	dispatcher.Subscribe(EventTicketStatusChanged, handler)
}
