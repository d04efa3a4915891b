package handlers

import (
	"github.com/sirupsen/logrus"

	"github.com/amadeus-works/koechel/modules/catalog/domain/entry"
	"github.com/amadeus-works/koechel/pkg/eventbus"
)

// RegisterLogHandlers subscribes audit-style log handlers for catalog events.
func RegisterLogHandlers(bus eventbus.EventBus, logger *logrus.Logger) {
	bus.Subscribe(func(event entry.ReorderedEvent) {
		logger.WithFields(logrus.Fields{
			"kind":      event.Kind,
			"year":      event.Year,
			"moved-id":  event.MovedID,
			"new-index": event.NewIndex,
			"group-len": len(event.Group),
		}).Info("catalog year group reordered")
	})

	bus.Subscribe(func(event entry.CreatedEvent) {
		logger.WithFields(logrus.Fields{
			"id":   event.Entry.ID(),
			"kind": event.Entry.Kind(),
			"year": event.Entry.Year(),
		}).Info("catalog entry created")
	})

	bus.Subscribe(func(event entry.DeletedEvent) {
		logger.WithFields(logrus.Fields{
			"id":   event.ID,
			"kind": event.Kind,
			"year": event.Year,
		}).Info("catalog entry deleted")
	})

	bus.Subscribe(func(event entry.UpdatedEvent) {
		logger.WithFields(logrus.Fields{
			"id":   event.Entry.ID(),
			"kind": event.Entry.Kind(),
			"year": event.Entry.Year(),
		}).Info("catalog entry updated")
	})
}
