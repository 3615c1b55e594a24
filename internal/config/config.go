package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"agent-feasibility/internal/application/port/output"
	"agent-feasibility/internal/usecase/evaluator"

	"gopkg.in/yaml.v3"
)

const (
	ProviderOpenAI    = "openai"
	ProviderLangchain = "langchain"

	DriverSQLite = "sqlite"
	DriverMySQL  = "mysql"
)

type Config struct {
	HTTPAddr       string
	AllowedOrigins []string

	LLMProvider string
	LLMAPIKey   string
	LLMBaseURL  string
	LLMModel    string
	LLMTimeout  time.Duration

	DBDriver string
	DBDSN    string

	DefaultModelID     string
	FallbackDeriveZone bool
	Weights            evaluator.Weights

	LogLevel  string
	LogFormat string
}

var defaultOrigins = []string{
	"http://localhost:3000",
	"https://zhiji.ai",
	"https://*.zhiji.pages.dev",
}

// Load reads the service configuration. It fails on unknown providers or
// drivers and on scoring weights that do not sum to 1.
func Load(env output.ConfigPort) (*Config, error) {
	cfg := &Config{
		HTTPAddr:           env.GetWithDefault("HTTP_ADDR", ":8787"),
		AllowedOrigins:     splitList(env.Get("ALLOWED_ORIGINS")),
		LLMProvider:        strings.ToLower(env.GetWithDefault("LLM_PROVIDER", ProviderOpenAI)),
		LLMAPIKey:          env.GetWithDefault("LLM_API_KEY", env.Get("DEEPSEEK_API_KEY")),
		LLMBaseURL:         env.GetWithDefault("LLM_BASE_URL", "https://api.deepseek.com/v1"),
		LLMModel:           env.GetWithDefault("LLM_MODEL", "deepseek-chat"),
		LLMTimeout:         env.GetDuration("LLM_TIMEOUT", 60*time.Second),
		DBDriver:           strings.ToLower(env.GetWithDefault("DB_DRIVER", DriverSQLite)),
		DBDSN:              env.GetWithDefault("DB_DSN", "data/feasibility.db"),
		DefaultModelID:     env.GetWithDefault("DEFAULT_MODEL_ID", "gpt-5"),
		FallbackDeriveZone: env.GetBool("FALLBACK_DERIVE_ZONE", false),
		Weights:            evaluator.DefaultWeights(),
		LogLevel:           env.GetWithDefault("LOG_LEVEL", "info"),
		LogFormat:          env.GetWithDefault("LOG_FORMAT", "json"),
	}
	if len(cfg.AllowedOrigins) == 0 {
		cfg.AllowedOrigins = defaultOrigins
	}

	if path := env.Get("SCORING_WEIGHTS_FILE"); path != "" {
		w, err := LoadWeights(path)
		if err != nil {
			return nil, err
		}
		cfg.Weights = w
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	switch c.LLMProvider {
	case ProviderOpenAI, ProviderLangchain:
	default:
		return fmt.Errorf("config: unknown LLM_PROVIDER %q", c.LLMProvider)
	}

	switch c.DBDriver {
	case DriverSQLite, DriverMySQL:
	default:
		return fmt.Errorf("config: unknown DB_DRIVER %q", c.DBDriver)
	}

	if c.LLMTimeout <= 0 {
		return fmt.Errorf("config: LLM_TIMEOUT must be positive, got %s", c.LLMTimeout)
	}

	if err := c.Weights.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// HasLLMCredential reports whether upstream model calls should be attempted.
func (c *Config) HasLLMCredential() bool {
	return c.LLMAPIKey != "" && c.LLMAPIKey != "mock-api-key"
}

type weightsFile struct {
	Weights evaluator.Weights `yaml:"weights"`
}

// LoadWeights reads scoring weights from a YAML file of the form
//
//	weights:
//	  clarity: 0.20
//	  capability: 0.30
//	  objectivity: 0.15
//	  data: 0.20
//	  tolerance: 0.15
func LoadWeights(path string) (evaluator.Weights, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return evaluator.Weights{}, fmt.Errorf("config: read weights file: %w", err)
	}

	var f weightsFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return evaluator.Weights{}, fmt.Errorf("config: parse weights file: %w", err)
	}
	if err := f.Weights.Validate(); err != nil {
		return evaluator.Weights{}, fmt.Errorf("config: %s: %w", path, err)
	}
	return f.Weights, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
