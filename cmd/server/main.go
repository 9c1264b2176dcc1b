package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	_ "github.com/danielgtaylor/huma/v2/formats/cbor"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/leadbotio/leadbot/internal/config"
	"github.com/leadbotio/leadbot/internal/http/api/routes"
	"github.com/leadbotio/leadbot/internal/http/health"
	"github.com/leadbotio/leadbot/internal/loghub"
	"github.com/leadbotio/leadbot/internal/platform/auth"
	"github.com/leadbotio/leadbot/internal/platform/firebase"
	applog "github.com/leadbotio/leadbot/internal/platform/logging"
	appmiddleware "github.com/leadbotio/leadbot/internal/platform/middleware"
	"github.com/leadbotio/leadbot/internal/platform/respond"
	"github.com/leadbotio/leadbot/internal/runner"
	assistantsvc "github.com/leadbotio/leadbot/internal/service/assistant"
	historysvc "github.com/leadbotio/leadbot/internal/service/history"
	reviewsvc "github.com/leadbotio/leadbot/internal/service/review"
)

// Version can be overridden at build time: -ldflags "-X main.Version=1.2.3"
var Version = "dev"

func main() {
	defer func() {
		if err := applog.Sync(); err != nil {
			applog.LogError(context.Background(), "logger sync error", err)
		}
	}()
	if err := applog.Err(); err != nil {
		applog.LogError(context.Background(), "logger init error", err)
	}

	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		applog.LogFatal(ctx, "configuration error", err)
	}

	var fbClients *firebase.Clients
	if !cfg.AuthDisabled || cfg.HistoryBackend == "firestore" {
		fbClients, err = firebase.InitializeClients(ctx, firebase.Config{
			ProjectID:                    cfg.FirebaseProjectID,
			GoogleApplicationCredentials: cfg.GoogleApplicationCredentials,
		})
		if err != nil {
			applog.LogFatal(ctx, "firebase initialization failed", err)
		}
		defer func() {
			if err := fbClients.Close(); err != nil {
				applog.LogError(context.Background(), "firebase client close error", err)
			}
		}()
	}

	var verifier auth.Verifier
	if cfg.AuthDisabled {
		applog.LogWarn(ctx, "authentication disabled, using local identity")
		verifier = &auth.MockVerifier{User: auth.LocalUser()}
	} else {
		verifier = auth.NewFirebaseVerifier(fbClients.Auth)
	}

	var historyStore historysvc.Service
	switch cfg.HistoryBackend {
	case "firestore":
		historyStore = historysvc.NewFirestoreStore(fbClients.Firestore)
	default:
		historyStore = historysvc.NewFileStore(cfg.HistoryFile)
	}

	hub := loghub.New(1000)
	run := runner.New(runner.Config{BotDir: cfg.BotDir, Entry: cfg.BotEntry}, hub, historyStore)
	run.RestoreState(ctx)

	assistantService := assistantsvc.WithSystemDefault(buildAssistant(ctx, cfg), cfg.ChatSystemPrompt)
	reviewQueue := reviewsvc.NewFileQueue(cfg.ReviewQueueFile, buildExporter(ctx, cfg))

	respond.Install()

	router := chi.NewRouter()
	router.NotFound(respond.NotFoundHandler())
	router.MethodNotAllowed(respond.MethodNotAllowedHandler())

	// Base middleware stack
	router.Use(
		appmiddleware.Security("/api-docs"),
		appmiddleware.Vary(),
		appmiddleware.CORS(),
		appmiddleware.RequestID(),
		// RealIP extracts client IP from X-Real-IP or X-Forwarded-For headers.
		// SECURITY: Only use behind a trusted reverse proxy (e.g., Cloud Run, nginx).
		// Without a trusted proxy, clients can spoof their IP address.
		chimiddleware.RealIP,
		// RequestSize limits request body size to prevent memory exhaustion from large payloads.
		chimiddleware.RequestSize(1<<20), // 1 MB limit
		applog.RequestLogger(),
		applog.AccessLogger(),
		respond.Recoverer(),
	)

	router.Get("/health", health.Handler(run.EnvReady))

	humaCfg := huma.DefaultConfig("Leadbot Launcher API", Version)
	humaCfg.DocsPath = "/api-docs"
	api := humachi.New(router, humaCfg)

	// Add CBOR content type to OpenAPI requests and responses
	api.OpenAPI().OnAddOperation = append(api.OpenAPI().OnAddOperation,
		func(_ *huma.OpenAPI, op *huma.Operation) {
			if op.RequestBody != nil && op.RequestBody.Content != nil {
				if jsonContent, ok := op.RequestBody.Content["application/json"]; ok {
					op.RequestBody.Content["application/cbor"] = jsonContent
				}
			}
			for _, resp := range op.Responses {
				if resp.Content == nil {
					continue
				}
				if jsonContent, ok := resp.Content["application/json"]; ok {
					resp.Content["application/cbor"] = jsonContent
				}
			}
		},
	)

	// Register routes
	routes.Register(
		huma.NewGroup(api, routes.BasePath),
		verifier,
		run,
		hub,
		historyStore,
		assistantService,
		reviewQueue,
	)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadTimeout:       5 * time.Second,
		ReadHeaderTimeout: 2 * time.Second,
		// The SSE log stream holds its response open indefinitely, so the
		// server-wide write deadline stays off.
		WriteTimeout:   0,
		IdleTimeout:    60 * time.Second,
		MaxHeaderBytes: 64 << 10, // 64 KB
	}

	listenErr := make(chan error, 1)
	go func() {
		applog.LogInfo(context.Background(), "server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			listenErr <- err
		}
	}()

	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-listenErr:
		applog.LogError(context.Background(), "listen failed", err, zap.String("addr", srv.Addr))
		os.Exit(1)
	case <-stop:
		applog.LogInfo(context.Background(), "shutdown signal received")
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if run.Stop(shutdownCtx) {
		applog.LogInfo(shutdownCtx, "active bot run stopped")
	}
	if err := srv.Shutdown(shutdownCtx); err != nil {
		applog.LogError(shutdownCtx, "server shutdown error", err)
	}
	applog.LogInfo(context.Background(), "server exited")
}

func buildAssistant(ctx context.Context, cfg *config.Config) assistantsvc.Service {
	httpClient := &http.Client{Timeout: 60 * time.Second}

	switch cfg.ChatProvider {
	case "gemini":
		if cfg.GeminiAPIKey == "" {
			applog.LogWarn(ctx, "GEMINI_API_KEY not set, chat disabled")
			return assistantsvc.Unconfigured{}
		}
		client, err := assistantsvc.NewGeminiClient(ctx, cfg.GeminiAPIKey, cfg.ChatModel)
		if err != nil {
			applog.LogFatal(ctx, "gemini client initialization failed", err)
		}
		return client
	default:
		opts := []assistantsvc.OpenAIOption{}
		if cfg.OpenAIBaseURL != "" {
			opts = append(opts, assistantsvc.WithOpenAIBaseURL(cfg.OpenAIBaseURL))
		}
		if cfg.ChatModel != "" {
			opts = append(opts, assistantsvc.WithOpenAIModel(cfg.ChatModel))
		}
		if cfg.OpenAIAPIKey == "" {
			applog.LogWarn(ctx, "OPENAI_API_KEY not set, chat disabled")
		}
		return assistantsvc.NewOpenAIClient(httpClient, cfg.OpenAIAPIKey, opts...)
	}
}

func buildExporter(ctx context.Context, cfg *config.Config) reviewsvc.Exporter {
	if !cfg.ExportEnabled {
		return nil
	}
	if cfg.ExportWebhookURL == "" {
		applog.LogWarn(ctx, "EXPORT_ENABLED set without EXPORT_WEBHOOK_URL, export disabled")
		return nil
	}
	return reviewsvc.NewWebhookExporter(&http.Client{Timeout: 30 * time.Second}, cfg.ExportWebhookURL)
}
