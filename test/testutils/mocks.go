package testutils

import (
	"context"
	"sync"
	"time"

	"github.com/alchemorsel/recipe-assistant/internal/domain/ai"
	"github.com/alchemorsel/recipe-assistant/internal/domain/recipe"
	"github.com/alchemorsel/recipe-assistant/internal/domain/shared"
	"github.com/alchemorsel/recipe-assistant/internal/domain/user"
	"github.com/alchemorsel/recipe-assistant/internal/ports/outbound"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockRecipeRepository provides a mock implementation of RecipeRepository
type MockRecipeRepository struct {
	mock.Mock
}

var _ outbound.RecipeRepository = (*MockRecipeRepository)(nil)

func (m *MockRecipeRepository) Create(ctx context.Context, r *recipe.Recipe) error {
	return m.Called(ctx, r).Error(0)
}

func (m *MockRecipeRepository) Update(ctx context.Context, r *recipe.Recipe) error {
	return m.Called(ctx, r).Error(0)
}

func (m *MockRecipeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockRecipeRepository) FindByID(ctx context.Context, id uuid.UUID) (*recipe.Recipe, error) {
	args := m.Called(ctx, id)
	r, _ := args.Get(0).(*recipe.Recipe)
	return r, args.Error(1)
}

func (m *MockRecipeRepository) FindByCreator(ctx context.Context, creatorID uuid.UUID) ([]*recipe.Recipe, error) {
	args := m.Called(ctx, creatorID)
	rs, _ := args.Get(0).([]*recipe.Recipe)
	return rs, args.Error(1)
}

// MockUserRepository provides a mock implementation of UserRepository
type MockUserRepository struct {
	mock.Mock
}

var _ outbound.UserRepository = (*MockUserRepository)(nil)

func (m *MockUserRepository) Create(ctx context.Context, u *user.User) error {
	return m.Called(ctx, u).Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, u *user.User) error {
	return m.Called(ctx, u).Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	args := m.Called(ctx, id)
	u, _ := args.Get(0).(*user.User)
	return u, args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	args := m.Called(ctx, email)
	u, _ := args.Get(0).(*user.User)
	return u, args.Error(1)
}

func (m *MockUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

// MockAIClient provides a mock implementation of AIClient
type MockAIClient struct {
	mock.Mock
	ProviderName string
}

var _ outbound.AIClient = (*MockAIClient)(nil)

// NewMockAIClient creates a mock provider with the given name
func NewMockAIClient(name string) *MockAIClient {
	return &MockAIClient{ProviderName: name}
}

func (m *MockAIClient) Name() string {
	return m.ProviderName
}

func (m *MockAIClient) Generate(ctx context.Context, prompt ai.Prompt) (string, error) {
	args := m.Called(ctx, prompt)
	return args.String(0), args.Error(1)
}

func (m *MockAIClient) HealthCheck(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

// MockTokenIssuer provides a mock implementation of TokenIssuer
type MockTokenIssuer struct {
	mock.Mock
}

var _ outbound.TokenIssuer = (*MockTokenIssuer)(nil)

func (m *MockTokenIssuer) IssueTokens(ctx context.Context, userID uuid.UUID, email string) (*outbound.TokenPair, error) {
	args := m.Called(ctx, userID, email)
	pair, _ := args.Get(0).(*outbound.TokenPair)
	return pair, args.Error(1)
}

func (m *MockTokenIssuer) ParseToken(ctx context.Context, token string, kind outbound.TokenKind) (*outbound.TokenClaims, error) {
	args := m.Called(ctx, token, kind)
	claims, _ := args.Get(0).(*outbound.TokenClaims)
	return claims, args.Error(1)
}

func (m *MockTokenIssuer) RevokeToken(ctx context.Context, claims *outbound.TokenClaims) error {
	return m.Called(ctx, claims).Error(0)
}

// RecordingPublisher collects published events for assertions
type RecordingPublisher struct {
	mu     sync.Mutex
	events []shared.DomainEvent
}

var _ outbound.EventPublisher = (*RecordingPublisher)(nil)

func (p *RecordingPublisher) Publish(_ context.Context, events ...shared.DomainEvent) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, events...)
}

// Names returns the names of all published events in order
func (p *RecordingPublisher) Names() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	names := make([]string, len(p.events))
	for i, e := range p.events {
		names[i] = e.EventName()
	}
	return names
}

// MapCache is a minimal CacheRepository for service tests
type MapCache struct {
	mu    sync.Mutex
	items map[string][]byte
	TTLs  map[string]time.Duration
}

var _ outbound.CacheRepository = (*MapCache)(nil)

// NewMapCache creates an empty MapCache
func NewMapCache() *MapCache {
	return &MapCache{items: map[string][]byte{}, TTLs: map[string]time.Duration{}}
}

func (c *MapCache) Get(_ context.Context, key string) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.items[key]
	if !ok {
		return nil, outbound.ErrCacheMiss
	}
	return v, nil
}

func (c *MapCache) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[key] = value
	c.TTLs[key] = ttl
	return nil
}

func (c *MapCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.items, key)
	return nil
}

func (c *MapCache) Exists(_ context.Context, key string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.items[key]
	return ok, nil
}

func (c *MapCache) DeleteByPrefix(_ context.Context, prefix string) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for k := range c.items {
		if len(k) >= len(prefix) && k[:len(prefix)] == prefix {
			delete(c.items, k)
			n++
		}
	}
	return n, nil
}
