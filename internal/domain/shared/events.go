// Package shared holds types used by more than one aggregate
package shared

import "time"

// DomainEvent is something an aggregate records about itself. Events are
// collected on the aggregate and published after the write is committed.
type DomainEvent interface {
	EventName() string
	AggregateID() string
	OccurredAt() time.Time
}
