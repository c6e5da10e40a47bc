// Package ai implements the assistant use cases: recipe generation,
// cooking questions and translation, with reply caching and provider
// fallback
package ai

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"strings"
	"time"

	"github.com/alchemorsel/recipe-assistant/internal/domain/ai"
	"github.com/alchemorsel/recipe-assistant/internal/ports/inbound"
	"github.com/alchemorsel/recipe-assistant/internal/ports/outbound"
	"github.com/alchemorsel/recipe-assistant/pkg/errors"
	"github.com/alchemorsel/recipe-assistant/pkg/markup"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// offlineProvider names replies produced without a model
const offlineProvider = "offline"

var errEmptyResponse = stderrors.New("provider returned an empty response")

// Metrics receives assistant measurements
type Metrics interface {
	AIRequest(operation, provider, status string, duration time.Duration)
	AICacheLookup(operation string, hit bool)
	Render(duration time.Duration, outputBytes int)
}

// Options tune caching and fallback behaviour
type Options struct {
	EnableCache     bool
	CacheTTL        time.Duration
	OfflineFallback bool
}

// AssistantService implements inbound.AssistantService
type AssistantService struct {
	primary   outbound.AIClient
	secondary outbound.AIClient
	cache     outbound.CacheRepository
	metrics   Metrics
	tracer    trace.Tracer
	opts      Options
	logger    *zap.Logger
}

var _ inbound.AssistantService = (*AssistantService)(nil)

// NewAssistantService creates the assistant. secondary, cache and metrics
// may be nil.
func NewAssistantService(
	primary outbound.AIClient,
	secondary outbound.AIClient,
	cache outbound.CacheRepository,
	metrics Metrics,
	opts Options,
	logger *zap.Logger,
) *AssistantService {
	if opts.CacheTTL <= 0 {
		opts.CacheTTL = time.Hour
	}
	if metrics == nil {
		metrics = nopMetrics{}
	}

	namedLogger := logger.Named("assistant-service")
	fields := []zap.Field{zap.Bool("cache", opts.EnableCache && cache != nil)}
	if primary != nil {
		fields = append(fields, zap.String("primary_provider", primary.Name()))
	}
	if secondary != nil {
		fields = append(fields, zap.String("fallback_provider", secondary.Name()))
	}
	namedLogger.Info("Assistant service initialized", fields...)

	return &AssistantService{
		primary:   primary,
		secondary: secondary,
		cache:     cache,
		metrics:   metrics,
		tracer:    otel.Tracer("github.com/alchemorsel/recipe-assistant/internal/application/ai"),
		opts:      opts,
		logger:    namedLogger,
	}
}

// GenerateRecipe asks the model for a recipe built from the ingredients
func (s *AssistantService) GenerateRecipe(ctx context.Context, req ai.RecipeRequest) (*inbound.Reply, error) {
	return s.ask(ctx, req)
}

// CookingAssistance answers a cooking question. When every provider fails
// and offline fallback is enabled a canned answer is returned.
func (s *AssistantService) CookingAssistance(ctx context.Context, req ai.AssistanceRequest) (*inbound.Reply, error) {
	return s.ask(ctx, req)
}

// Translate translates recipe text into the target language
func (s *AssistantService) Translate(ctx context.Context, req ai.TranslationRequest) (*inbound.Reply, error) {
	return s.ask(ctx, req)
}

// Invalidate drops cached replies whose key starts with prefix
func (s *AssistantService) Invalidate(ctx context.Context, prefix string) (int, error) {
	if s.cache == nil {
		return 0, nil
	}
	n, err := s.cache.DeleteByPrefix(ctx, prefix)
	if err != nil {
		return 0, errors.NewInternalError("failed to invalidate cache").WithCause(err)
	}
	s.logger.Info("Cache invalidated", zap.String("prefix", prefix), zap.Int("keys", n))
	return n, nil
}

// cachedReply is the stored form of a model answer
type cachedReply struct {
	Text     string `json:"text"`
	Provider string `json:"provider"`
}

func (s *AssistantService) ask(ctx context.Context, req ai.Request) (*inbound.Reply, error) {
	kind := string(req.Kind())
	ctx, span := s.tracer.Start(ctx, "assistant."+kind)
	defer span.End()

	if err := req.Validate(); err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	key := req.CacheKey()
	if cached, ok := s.lookup(ctx, kind, key); ok {
		span.SetAttributes(attribute.Bool("ai.cached", true))
		return s.reply(req.Kind(), cached.Text, cached.Provider, true, false), nil
	}

	text, provider, err := s.generate(ctx, kind, req.Prompt())
	if err != nil {
		span.RecordError(err)

		if assist, ok := req.(ai.AssistanceRequest); ok && s.opts.OfflineFallback {
			s.logger.Warn("All providers failed, answering offline", zap.Error(err))
			span.SetAttributes(attribute.Bool("ai.fallback", true))
			return s.reply(req.Kind(), ai.FallbackAnswer(assist.Question), offlineProvider, false, true), nil
		}

		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	s.store(ctx, key, cachedReply{Text: text, Provider: provider})
	span.SetAttributes(attribute.String("ai.provider", provider))
	return s.reply(req.Kind(), text, provider, false, false), nil
}

// generate tries the primary provider, then the secondary one
func (s *AssistantService) generate(ctx context.Context, kind string, prompt ai.Prompt) (string, string, error) {
	if s.primary == nil {
		return "", "", errors.NewAIUnavailableError(stderrors.New("no AI provider configured"))
	}

	text, err := s.call(ctx, s.primary, kind, prompt)
	if err == nil {
		return text, s.primary.Name(), nil
	}
	s.logger.Warn("Primary AI provider failed",
		zap.String("provider", s.primary.Name()),
		zap.String("operation", kind),
		zap.Error(err),
	)

	if s.secondary == nil {
		return "", "", errors.NewExternalServiceError(s.primary.Name(), err)
	}

	text, fallbackErr := s.call(ctx, s.secondary, kind, prompt)
	if fallbackErr == nil {
		s.logger.Info("Fallback AI provider succeeded", zap.String("provider", s.secondary.Name()))
		return text, s.secondary.Name(), nil
	}
	s.logger.Warn("Fallback AI provider failed",
		zap.String("provider", s.secondary.Name()),
		zap.Error(fallbackErr),
	)

	return "", "", errors.NewExternalServiceError(s.secondary.Name(),
		fmt.Errorf("%s: %v; %s: %w", s.primary.Name(), err, s.secondary.Name(), fallbackErr))
}

func (s *AssistantService) call(ctx context.Context, client outbound.AIClient, kind string, prompt ai.Prompt) (string, error) {
	start := time.Now()
	text, err := client.Generate(ctx, prompt)
	if err == nil && strings.TrimSpace(text) == "" {
		err = errEmptyResponse
	}

	status := "success"
	if err != nil {
		status = "error"
	}
	s.metrics.AIRequest(kind, client.Name(), status, time.Since(start))
	return text, err
}

func (s *AssistantService) lookup(ctx context.Context, kind, key string) (cachedReply, bool) {
	var cached cachedReply
	if !s.cacheEnabled() {
		return cached, false
	}

	data, err := s.cache.Get(ctx, key)
	if err != nil {
		if !stderrors.Is(err, outbound.ErrCacheMiss) {
			s.logger.Warn("Cache read failed", zap.Error(err))
		}
		s.metrics.AICacheLookup(kind, false)
		return cached, false
	}
	if err := json.Unmarshal(data, &cached); err != nil || cached.Text == "" {
		s.logger.Warn("Discarding unreadable cache entry", zap.String("key", key))
		s.metrics.AICacheLookup(kind, false)
		return cached, false
	}

	s.metrics.AICacheLookup(kind, true)
	return cached, true
}

func (s *AssistantService) store(ctx context.Context, key string, entry cachedReply) {
	if !s.cacheEnabled() {
		return
	}
	data, err := json.Marshal(entry)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, key, data, s.opts.CacheTTL); err != nil {
		s.logger.Warn("Cache write failed", zap.Error(err))
	}
}

func (s *AssistantService) cacheEnabled() bool {
	return s.opts.EnableCache && s.cache != nil
}

func (s *AssistantService) reply(kind ai.Kind, text, provider string, cached, fallback bool) *inbound.Reply {
	start := time.Now()
	html := markup.Render(text)
	s.metrics.Render(time.Since(start), len(html))

	return &inbound.Reply{
		Kind:     kind,
		Text:     text,
		HTML:     html,
		Provider: provider,
		Cached:   cached,
		Fallback: fallback,
	}
}

type nopMetrics struct{}

func (nopMetrics) AIRequest(string, string, string, time.Duration) {}
func (nopMetrics) AICacheLookup(string, bool) {}
func (nopMetrics) Render(time.Duration, int) {}
