package crm

import (
	"github.com/crm/backend/internal/domain/shared"
)

// Aggregate type constant for Client
const AggregateTypeClient = "Client"

// Client domain event types
const (
	EventTypeClientCreated = "ClientCreated"
)

// ClientCreatedEvent is published when a client is created
type ClientCreatedEvent struct {
	shared.BaseDomainEvent
	CompanyName string `json:"company_name"`
}

// NewClientCreatedEvent creates a new ClientCreatedEvent
func NewClientCreatedEvent(client *Client) *ClientCreatedEvent {
	return &ClientCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeClientCreated, AggregateTypeClient, client.ID),
		CompanyName:     client.CompanyName,
	}
}
