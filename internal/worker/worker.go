package worker

import (
	"context"
	"log"

	"donly-service/internal/broker"
	"donly-service/internal/models"
	"donly-service/internal/redisclient"
)

// InvalidationWorker consumes entity mutation events and drops the cached
// reconciliation snapshots they invalidate. Other service instances learn
// about writes this way; the local instance invalidates inline as well, so
// handling its own events again is harmless.
type InvalidationWorker struct {
	consumer     *broker.Consumer
	eventHandler *broker.EventHandler
	cache        *redisclient.Client
}

// NewInvalidationWorker creates a new invalidation worker
func NewInvalidationWorker(consumer *broker.Consumer, cache *redisclient.Client) *InvalidationWorker {
	w := &InvalidationWorker{
		consumer: consumer,
		cache:    cache,
	}

	eventHandler := broker.NewEventHandler()
	eventHandler.OnEntityChanged(w.handleEntityChanged)
	w.eventHandler = eventHandler

	return w
}

// Start starts the worker
func (w *InvalidationWorker) Start(ctx context.Context) error {
	log.Println("Starting invalidation worker...")
	return w.consumer.StartConsuming(ctx, w.eventHandler.HandleMessage)
}

// Stop stops the worker
func (w *InvalidationWorker) Stop() error {
	log.Println("Stopping invalidation worker...")
	return w.consumer.Close()
}

func (w *InvalidationWorker) handleEntityChanged(ctx context.Context, eventType string) error {
	for _, entity := range entitiesFor(eventType) {
		if err := w.cache.InvalidateSnapshot(ctx, entity); err != nil {
			log.Printf("Failed to invalidate %s snapshot: %v", entity, err)
			return err
		}
	}
	return nil
}

// entitiesFor maps an event type to the snapshot entities it stales. A new
// campaign also changes which products are purchasable, so product listings
// are dropped alongside.
func entitiesFor(eventType string) []string {
	switch eventType {
	case models.EventTypeCategoryCreated:
		return []string{"categories"}
	case models.EventTypeCampaignCreated, models.EventTypeFundsWithdrawn:
		return []string{"campaigns"}
	case models.EventTypeProductListed:
		return []string{"products"}
	case models.EventTypeProductPurchased:
		return []string{"products", "campaigns"}
	default:
		return nil
	}
}
