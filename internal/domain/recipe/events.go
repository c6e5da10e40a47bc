package recipe

import (
	"time"

	"github.com/google/uuid"
)

// Event names, used as dispatcher routing keys.
const (
	EventCreated = "recipe.created"
	EventUpdated = "recipe.updated"
	EventDeleted = "recipe.deleted"
)

// RecipeCreatedEvent carries the author so subscribers need not load the recipe.
type RecipeCreatedEvent struct {
	RecipeID    uuid.UUID
	CreatorID   uuid.UUID
	Title       string
	AIGenerated bool
	CreatedAt   time.Time
}

func (e RecipeCreatedEvent) EventName() string     { return EventCreated }
func (e RecipeCreatedEvent) AggregateID() string   { return e.RecipeID.String() }
func (e RecipeCreatedEvent) OccurredAt() time.Time { return e.CreatedAt }

type RecipeUpdatedEvent struct {
	RecipeID  uuid.UUID
	UpdatedAt time.Time
}

func (e RecipeUpdatedEvent) EventName() string     { return EventUpdated }
func (e RecipeUpdatedEvent) AggregateID() string   { return e.RecipeID.String() }
func (e RecipeUpdatedEvent) OccurredAt() time.Time { return e.UpdatedAt }

type RecipeDeletedEvent struct {
	RecipeID  uuid.UUID
	DeletedAt time.Time
}

func (e RecipeDeletedEvent) EventName() string     { return EventDeleted }
func (e RecipeDeletedEvent) AggregateID() string   { return e.RecipeID.String() }
func (e RecipeDeletedEvent) OccurredAt() time.Time { return e.DeletedAt }
