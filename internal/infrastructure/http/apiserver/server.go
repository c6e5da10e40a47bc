// Package apiserver wires the JSON API routes onto a chi router and runs
// the HTTP server
package apiserver

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strconv"

	"github.com/alchemorsel/recipe-assistant/internal/infrastructure/config"
	"github.com/alchemorsel/recipe-assistant/internal/infrastructure/http/handlers"
	"github.com/alchemorsel/recipe-assistant/internal/infrastructure/http/middleware"
	"github.com/alchemorsel/recipe-assistant/internal/infrastructure/http/response"
	"github.com/alchemorsel/recipe-assistant/internal/infrastructure/monitoring"
	"github.com/alchemorsel/recipe-assistant/internal/infrastructure/security"
	"github.com/alchemorsel/recipe-assistant/internal/ports/inbound"
	"github.com/alchemorsel/recipe-assistant/internal/ports/outbound"
	apperrors "github.com/alchemorsel/recipe-assistant/pkg/errors"
	"github.com/alchemorsel/recipe-assistant/pkg/healthcheck"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"
)

// Params are the server's dependencies
type Params struct {
	fx.In

	Config    *config.Config
	Logger    *zap.Logger
	Recipes   inbound.RecipeService
	Users     inbound.UserService
	Assistant inbound.AssistantService
	Tokens    outbound.TokenIssuer
	Validator *security.Validator
	Metrics   *monitoring.MetricsCollector
	Health    *healthcheck.HealthCheck
}

// Server is the JSON API HTTP server
type Server struct {
	config  *config.Config
	logger  *zap.Logger
	server  *http.Server
	router  *chi.Mux
	limiter *middleware.RateLimiter
}

// NewServer creates a new API server instance
func NewServer(p Params) *Server {
	s := &Server{
		config: p.Config,
		logger: p.Logger.Named("apiserver"),
	}

	if p.Config.RateLimit.Enable {
		s.limiter = middleware.NewRateLimiter(p.Config.RateLimit, p.Metrics, p.Logger)
	}
	s.router = s.setupRoutes(p)

	var handler http.Handler = s.router
	if p.Config.Monitoring.EnableTracing {
		handler = otelhttp.NewHandler(handler, "alchemorsel-api")
	}
	if p.Config.Server.EnableH2C {
		handler = h2c.NewHandler(handler, &http2.Server{IdleTimeout: p.Config.Server.IdleTimeout})
	}

	s.server = &http.Server{
		Addr:           net.JoinHostPort(p.Config.Server.Host, strconv.Itoa(p.Config.Server.Port)),
		Handler:        handler,
		ReadTimeout:    p.Config.Server.ReadTimeout,
		WriteTimeout:   p.Config.Server.WriteTimeout,
		IdleTimeout:    p.Config.Server.IdleTimeout,
		MaxHeaderBytes: p.Config.Server.MaxHeaderBytes,
		ErrorLog:       zap.NewStdLog(s.logger),
	}

	return s
}

func (s *Server) setupRoutes(p Params) *chi.Mux {
	cfg := p.Config
	r := chi.NewRouter()

	healthPath := cfg.Monitoring.HealthCheckPath

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger(p.Logger.Named("http"), healthPath, healthPath+"/live", healthPath+"/ready"))
	r.Use(chimiddleware.Recoverer)
	if cfg.Monitoring.EnableMetrics {
		r.Use(middleware.Metrics(p.Metrics))
	}
	r.Use(middleware.Security())
	if cfg.Server.EnableCORS {
		r.Use(middleware.CORS(cfg.Server.AllowedOrigins))
	}
	if cfg.Server.EnableCompression {
		r.Use(chimiddleware.Compress(5, "application/json"))
	}

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		response.Error(w, r, s.logger, apperrors.NewNotFoundError("route"))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		response.Error(w, r, s.logger, apperrors.NewAppError(apperrors.CodeMethodNotAllowed, "Method not allowed", r.Method))
	})

	r.Get(healthPath, p.Health.Handler())
	r.Get(healthPath+"/live", p.Health.LivenessHandler())
	r.Get(healthPath+"/ready", p.Health.ReadinessHandler())
	if cfg.Monitoring.EnableMetrics {
		r.Method(http.MethodGet, cfg.Monitoring.MetricsPath, p.Metrics.Handler())
	}

	r.Route("/api/v1", func(r chi.Router) {
		if cfg.Server.RequestTimeout > 0 {
			r.Use(chimiddleware.Timeout(cfg.Server.RequestTimeout))
		}
		if cfg.Server.MaxBodyBytes > 0 {
			r.Use(chimiddleware.RequestSize(cfg.Server.MaxBodyBytes))
		}
		r.Use(middleware.JSONOnly(s.logger))

		s.setupAPIV1Routes(r, p)
	})

	return r
}

func (s *Server) setupAPIV1Routes(r chi.Router, p Params) {
	recipeH := handlers.NewRecipeHandlers(p.Recipes, p.Validator, p.Logger)
	authH := handlers.NewAuthHandlers(p.Users, p.Validator, p.Logger)
	aiH := handlers.NewAIHandlers(p.Assistant, p.Validator, p.Logger)
	renderH := handlers.NewRenderHandler(p.Metrics, p.Validator, p.Logger)

	authenticate := middleware.AuthenticateAPI(p.Tokens, s.logger)

	r.Get("/openapi.yaml", serveOpenAPI(s.logger))
	r.Post("/render", renderH.Render)

	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", authH.Register)
		r.Post("/login", authH.Login)
		r.Post("/refresh", authH.RefreshToken)

		r.Group(func(r chi.Router) {
			r.Use(authenticate)
			r.Get("/profile", authH.GetProfile)
			r.Put("/profile", authH.UpdateProfile)
		})
	})

	r.Route("/recipes", func(r chi.Router) {
		r.Use(authenticate)
		r.Get("/", recipeH.ListRecipes)
		r.Post("/", recipeH.CreateRecipe)
		r.Get("/{id}", recipeH.GetRecipe)
		r.Put("/{id}", recipeH.UpdateRecipe)
		r.Delete("/{id}", recipeH.DeleteRecipe)
	})

	r.Route("/ai", func(r chi.Router) {
		r.Use(authenticate)
		if s.limiter != nil {
			r.Use(s.limiter.Middleware)
		}
		r.Post("/generate-recipe", aiH.GenerateRecipe)
		r.Post("/cooking-assistant", aiH.CookingAssistance)
		r.Post("/translate", aiH.Translate)
	})
}

// Handler returns the root handler, for tests
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

// Addr returns the listen address
func (s *Server) Addr() string {
	return s.server.Addr
}

// Start serves until Shutdown is called
func (s *Server) Start() error {
	s.logger.Info("Starting API server",
		zap.String("address", s.server.Addr),
		zap.Bool("h2c", s.config.Server.EnableH2C),
	)

	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Serve serves on an existing listener until Shutdown is called
func (s *Server) Serve(l net.Listener) error {
	if err := s.server.Serve(l); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down API server")
	if s.limiter != nil {
		s.limiter.Close()
	}
	return s.server.Shutdown(ctx)
}
