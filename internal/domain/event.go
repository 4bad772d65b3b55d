package domain

import (
	"time"

	"github.com/google/uuid"
)

// Event types published after successful commands.
const (
	EventEstateUpserted  = "estate.upserted"
	EventMerchantAdded   = "merchant.added"
	EventMerchantUpdated = "merchant.updated"
	EventMerchantRemoved = "merchant.removed"
	EventMerchantDeposit = "merchant.deposit"
	EventOperatorCreated = "operator.created"
	EventOperatorUpdated = "operator.updated"
	EventOperatorRemoved = "operator.removed"
	EventContractCreated = "contract.created"
	EventContractUpdated = "contract.updated"
	EventContractRemoved = "contract.removed"
	EventStoreReset      = "store.reset"
)

// Event describes a change to an estate. An Event with a nil EstateID
// concerns every estate.
type Event struct {
	Type       string    `json:"type"`
	EstateID   uuid.UUID `json:"estate_id"`
	EntityID   uuid.UUID `json:"entity_id"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Broadcast reports whether the event targets every estate.
func (e Event) Broadcast() bool {
	return e.EstateID == uuid.Nil
}
