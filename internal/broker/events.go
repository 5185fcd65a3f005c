package broker

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/segmentio/kafka-go"

	"donly-service/internal/models"
)

// EventPublisher handles publishing domain events
type EventPublisher struct {
	producer *Producer
}

// NewEventPublisher creates a new event publisher
func NewEventPublisher(producer *Producer) *EventPublisher {
	return &EventPublisher{producer: producer}
}

// PublishCategoryCreated publishes CategoryCreated event
func (ep *EventPublisher) PublishCategoryCreated(ctx context.Context, event *models.CategoryCreatedEvent) error {
	key := fmt.Sprintf("category-%d", event.BlockchainID)
	return ep.producer.PublishEvent(ctx, key, event)
}

// PublishCampaignCreated publishes CampaignCreated event
func (ep *EventPublisher) PublishCampaignCreated(ctx context.Context, event *models.CampaignCreatedEvent) error {
	key := fmt.Sprintf("campaign-%d", event.BlockchainID)
	return ep.producer.PublishEvent(ctx, key, event)
}

// PublishProductListed publishes ProductListed event
func (ep *EventPublisher) PublishProductListed(ctx context.Context, event *models.ProductListedEvent) error {
	key := fmt.Sprintf("product-%d", event.BlockchainID)
	return ep.producer.PublishEvent(ctx, key, event)
}

// PublishProductPurchased publishes ProductPurchased event
func (ep *EventPublisher) PublishProductPurchased(ctx context.Context, event *models.ProductPurchasedEvent) error {
	key := fmt.Sprintf("product-%d", event.BlockchainID)
	return ep.producer.PublishEvent(ctx, key, event)
}

// PublishFundsWithdrawn publishes FundsWithdrawn event
func (ep *EventPublisher) PublishFundsWithdrawn(ctx context.Context, event *models.FundsWithdrawnEvent) error {
	key := fmt.Sprintf("campaign-%d", event.CampaignID)
	return ep.producer.PublishEvent(ctx, key, event)
}

// EventHandler routes incoming entity events to registered callbacks.
type EventHandler struct {
	onEntityChanged func(ctx context.Context, eventType string) error
}

// NewEventHandler creates a new event handler
func NewEventHandler() *EventHandler {
	return &EventHandler{}
}

// OnEntityChanged registers a handler invoked for every entity mutation
// event, with the concrete event type as argument.
func (eh *EventHandler) OnEntityChanged(handler func(ctx context.Context, eventType string) error) {
	eh.onEntityChanged = handler
}

// HandleMessage routes messages to appropriate handlers
func (eh *EventHandler) HandleMessage(ctx context.Context, msg kafka.Message) error {
	var baseEvent models.BaseEvent
	if err := json.Unmarshal(msg.Value, &baseEvent); err != nil {
		return fmt.Errorf("failed to unmarshal base event: %w", err)
	}

	log.Printf("Handling event: type=%s, id=%s", baseEvent.EventType, baseEvent.EventID)

	switch baseEvent.EventType {
	case models.EventTypeCategoryCreated,
		models.EventTypeCampaignCreated,
		models.EventTypeProductListed,
		models.EventTypeProductPurchased,
		models.EventTypeFundsWithdrawn:
		if eh.onEntityChanged != nil {
			return eh.onEntityChanged(ctx, baseEvent.EventType)
		}
	default:
		log.Printf("Unhandled event type: %s", baseEvent.EventType)
	}

	return nil
}
