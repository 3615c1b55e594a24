package di

import (
	"context"
	"fmt"

	"agent-feasibility/internal/adapter/modelcaller"
	"agent-feasibility/internal/application/port/input"
	"agent-feasibility/internal/application/port/output"
	"agent-feasibility/internal/config"
	"agent-feasibility/internal/infrastructure/httpapi"
	"agent-feasibility/internal/infrastructure/llm/langchain"
	"agent-feasibility/internal/infrastructure/llm/openaicompat"
	"agent-feasibility/internal/infrastructure/logger"
	"agent-feasibility/internal/infrastructure/storage/sqlstore"
	"agent-feasibility/internal/usecase/evaluator"
	"agent-feasibility/internal/usecase/submission"
)

type Container struct {
	Config    *config.Config
	Logger    output.LoggerPort
	LLM       output.LLMPort
	Evaluator *evaluator.Evaluator
	Store     *sqlstore.Store
	Service   input.EvaluationService
	Server    *httpapi.Server
}

// NewEvaluatorContainer wires only the scoring pipeline. Nothing is persisted.
func NewEvaluatorContainer(cfg *config.Config) (*Container, error) {
	log, err := logger.NewLoggerAdapter(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	c := &Container{Config: cfg, Logger: log}

	if cfg.HasLLMCredential() {
		llm, err := newLLM(cfg, log)
		if err != nil {
			c.Close()
			return nil, fmt.Errorf("failed to create LLM client: %w", err)
		}
		c.LLM = llm
	} else {
		log.Warn("No LLM credential configured, evaluations use the heuristic estimate")
	}

	agg, err := evaluator.NewAggregator(cfg.Weights)
	if err != nil {
		c.Close()
		return nil, fmt.Errorf("failed to create aggregator: %w", err)
	}

	caller := modelcaller.New(c.LLM, log, modelcaller.DefaultConfig(c.LLM != nil))
	c.Evaluator = evaluator.New(caller, log,
		evaluator.WithAggregator(agg),
		evaluator.WithEstimator(evaluator.NewEstimator(evaluator.WithDerivedZone(cfg.FallbackDeriveZone))),
		evaluator.WithCallTimeout(cfg.LLMTimeout),
	)
	return c, nil
}

// NewContainer wires the full service: pipeline, migrated store, use case and
// HTTP server.
func NewContainer(ctx context.Context, cfg *config.Config) (*Container, error) {
	c, err := NewEvaluatorContainer(cfg)
	if err != nil {
		return nil, err
	}

	store, err := OpenStore(ctx, cfg)
	if err != nil {
		c.Close()
		return nil, err
	}
	c.Store = store

	c.Service = submission.NewService(store, c.Evaluator, c.Logger, submission.Config{
		DefaultModelID: cfg.DefaultModelID,
		UserID:         submission.DefaultUserID,
	})

	httpCfg := httpapi.DefaultConfig()
	httpCfg.Addr = cfg.HTTPAddr
	httpCfg.AllowedOrigins = cfg.AllowedOrigins
	httpCfg.AccessLogJSON = cfg.LogFormat != "console"
	c.Server = httpapi.NewServer(httpCfg, c.Service, store, c.Logger)

	return c, nil
}

// OpenStore opens the configured database and brings its schema up to date.
func OpenStore(ctx context.Context, cfg *config.Config) (*sqlstore.Store, error) {
	store, err := sqlstore.Open(ctx, sqlstore.Config{Driver: cfg.DBDriver, DSN: cfg.DBDSN})
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}
	if err := store.Migrate(ctx); err != nil {
		store.Close()
		return nil, fmt.Errorf("failed to migrate store: %w", err)
	}
	return store, nil
}

func newLLM(cfg *config.Config, log output.LoggerPort) (output.LLMPort, error) {
	switch cfg.LLMProvider {
	case config.ProviderLangchain:
		return langchain.NewAdapter(langchain.Config{
			APIKey:  cfg.LLMAPIKey,
			Model:   cfg.LLMModel,
			BaseURL: cfg.LLMBaseURL,
		})
	default:
		llmCfg := openaicompat.DefaultConfig(cfg.LLMAPIKey, cfg.LLMModel)
		llmCfg.BaseURL = cfg.LLMBaseURL
		llmCfg.Logger = log
		return openaicompat.NewAdapter(llmCfg), nil
	}
}

func (c *Container) Close() {
	if c.Store != nil {
		c.Store.Close()
	}
	if c.Logger != nil {
		c.Logger.Close()
	}
}
