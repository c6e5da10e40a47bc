package events

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alchemorsel/recipe-assistant/internal/domain/recipe"
	"github.com/alchemorsel/recipe-assistant/internal/domain/shared"
	"github.com/alchemorsel/recipe-assistant/test/testutils"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type countingMetrics struct {
	names []string
}

func (c *countingMetrics) DomainEvent(name string) {
	c.names = append(c.names, name)
}

func TestDispatcher_Publish(t *testing.T) {
	ctx := context.Background()
	counter := &countingMetrics{}
	d := NewDispatcher(counter, zap.NewNop())

	var handled []string
	d.Register("recipe.created", func(_ context.Context, e shared.DomainEvent) error {
		handled = append(handled, "first:"+e.EventName())
		return errors.New("boom")
	})
	d.Register("recipe.created", func(_ context.Context, e shared.DomainEvent) error {
		handled = append(handled, "second:"+e.EventName())
		return nil
	})

	d.Publish(ctx,
		recipe.RecipeCreatedEvent{RecipeID: uuid.New(), CreatedAt: time.Now()},
		recipe.RecipeDeletedEvent{RecipeID: uuid.New(), DeletedAt: time.Now()},
	)

	assert.Equal(t, []string{"first:recipe.created", "second:recipe.created"}, handled)
	assert.Equal(t, []string{"recipe.created", "recipe.deleted"}, counter.names)
}

func TestDispatcher_NilCounter(t *testing.T) {
	d := NewDispatcher(nil, zap.NewNop())
	d.Register("recipe.updated", AuditLog(zap.NewNop()))

	assert.NotPanics(t, func() {
		d.Publish(context.Background(), recipe.RecipeUpdatedEvent{RecipeID: uuid.New()})
	})
}

type invalidatorFunc func(ctx context.Context, prefix string) (int, error)

func (f invalidatorFunc) Invalidate(ctx context.Context, prefix string) (int, error) {
	return f(ctx, prefix)
}

func TestInvalidateCache(t *testing.T) {
	ctx := context.Background()
	cache := testutils.NewMapCache()
	require.NoError(t, cache.Set(ctx, "recipe:a", []byte("1"), time.Hour))
	require.NoError(t, cache.Set(ctx, "translate:a", []byte("2"), time.Hour))
	target := invalidatorFunc(cache.DeleteByPrefix)

	err := InvalidateCache(target, "recipe:")(ctx, recipe.RecipeDeletedEvent{})
	require.NoError(t, err)

	exists, _ := cache.Exists(ctx, "recipe:a")
	assert.False(t, exists)
	exists, _ = cache.Exists(ctx, "translate:a")
	assert.True(t, exists)
}

func TestInvalidateCache_PropagatesError(t *testing.T) {
	target := invalidatorFunc(func(context.Context, string) (int, error) {
		return 0, errors.New("cache down")
	})

	err := InvalidateCache(target, "assistance:")(context.Background(), recipe.RecipeUpdatedEvent{})
	assert.EqualError(t, err, "cache down")
}
