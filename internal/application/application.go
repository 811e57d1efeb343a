package application

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/errgroup"

	"emergency_response/internal/config"
	"emergency_response/internal/domain/service/dispatch"
	"emergency_response/internal/domain/service/locator"
	"emergency_response/internal/domain/service/pipeline"
	"emergency_response/internal/domain/service/triage"
	"emergency_response/internal/infrastructure/llm"
	"emergency_response/internal/infrastructure/places"
	"emergency_response/internal/infrastructure/telephony"
	"emergency_response/internal/observability"
	"emergency_response/internal/server"
	"emergency_response/internal/usage"
	"emergency_response/pkg/application/modules"
	"emergency_response/pkg/contextx"
	"emergency_response/pkg/httpx"
	"emergency_response/pkg/logx"
	"emergency_response/pkg/middlewarex"
)

const (
	appName    = "emergency-response"
	appVersion = "1.0.0"

	logFieldMaxLen = 2048
)

func Run(ctx context.Context, log *slog.Logger) error {
	ctx = contextx.WithLogger(ctx, log)

	// 1. Config
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config.Load: %w", err)
	}

	// 2. Usage guard: every outbound call is admitted through it
	guard := usage.NewGuard(usage.Limits{
		LLMRequests:      cfg.LLM.MaxDailyRequests,
		MapsRequests:     cfg.Maps.MaxDailyRequests,
		TelephonyCalls:   cfg.Telephony.MaxDailyCalls,
		TelephonyMinutes: cfg.Telephony.MaxDailyMinutes,
	}).
		WithFile(ctx, cfg.Usage.File).
		WithDemoMode(cfg.Usage.DemoMode)

	if cfg.Usage.DemoMode {
		log.Info("demo mode on, all providers degrade to fallbacks")
	}

	metrics := observability.NewMetrics()

	masker := logx.NewSensitiveDataMasker()
	transport := httpx.NewLoggingRoundTripper(
		http.DefaultTransport,
		httpx.WithLogFieldMaxLen(logFieldMaxLen),
		httpx.WithSensitiveDataMasker(masker),
	)

	// 3. Domain services. A provider that is disabled or missing its
	// credential stays detached and its stage serves fallback data.
	classifier := triage.NewClassifier(guard, metrics)
	switch {
	case !cfg.LLM.Enabled:
		log.Info("llm disabled, severity is rule-based")
	case cfg.LLM.APIKey == "":
		log.Warn("llm enabled but ANTHROPIC_API_KEY is empty, severity is rule-based")
	default:
		classifier = classifier.WithModel(
			llm.NewAnthropicClient(cfg.LLM.APIKey, cfg.LLM.Model, cfg.LLM.MaxTokens, cfg.LLM.Timeout),
		)
	}

	facilityLocator := locator.NewLocator(guard, metrics, cfg.Maps.SearchRadiusMeters, cfg.Maps.CacheTTL)
	switch {
	case !cfg.Maps.Enabled:
		log.Info("maps disabled, serving static facilities")
	case cfg.Maps.APIKey == "":
		log.Warn("maps enabled but GOOGLE_MAPS_API_KEY is empty, serving static facilities")
	default:
		facilityLocator = facilityLocator.WithProvider(
			places.NewClient(cfg.Maps.APIKey, cfg.Maps.Timeout, transport),
		)
	}

	dispatcher := dispatch.NewDispatcher(guard, metrics)
	switch {
	case !cfg.Telephony.Enabled:
		log.Info("telephony disabled, notifications are skipped")
	case cfg.Telephony.AccountSID == "" || cfg.Telephony.AuthToken == "" || cfg.Telephony.FromNumber == "":
		log.Warn("telephony enabled but twilio credentials are incomplete, notifications are skipped")
	default:
		dispatcher = dispatcher.WithCaller(telephony.NewClient(
			cfg.Telephony.AccountSID,
			cfg.Telephony.AuthToken,
			cfg.Telephony.FromNumber,
			cfg.Telephony.Timeout,
			transport,
		))
	}

	casePipeline := pipeline.NewPipeline(classifier, facilityLocator, dispatcher, metrics, cfg.Pipeline.StageTimeout)

	// 4. HTTP surface
	router := chi.NewRouter()
	router.Use(
		middlewarex.TraceID,
		middlewarex.Logger,
		middlewarex.Recovery,
		middlewarex.RequestLogging(masker, logFieldMaxLen),
		middlewarex.ResponseLogging(masker, logFieldMaxLen),
	)

	server.NewServer(
		server.NewCaseServer(casePipeline),
		server.NewUsageServer(guard),
	).RegisterRoutes(router)

	// 5. Modules
	g, ctx := errgroup.WithContext(ctx)

	modules.HTTPServer{ShutdownTimeout: cfg.HTTP.ShutdownTimeout}.Run(ctx, g, &http.Server{
		Addr:    cfg.HTTP.ListenAddress,
		Handler: router,
	})
	modules.ProbeServer{
		Name:          appName,
		Version:       appVersion,
		ListenAddress: cfg.HTTP.ProbeListenAddress,
	}.Run(ctx, g)
	modules.MetricServer{ListenAddress: cfg.HTTP.MetricsListenAddress}.Run(ctx, g)

	if err := g.Wait(); err != nil {
		return fmt.Errorf("g.Wait: %w", err)
	}

	return nil
}
