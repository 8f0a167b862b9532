package main

import (
	"context"
	"fmt"

	"github.com/jonathan/career-readiness/internal/config"
	"github.com/jonathan/career-readiness/internal/llm"
	"github.com/jonathan/career-readiness/internal/logging"
	"github.com/jonathan/career-readiness/internal/readiness"
	"go.uber.org/zap"
)

// loadRuntime reads the configuration and builds the logger every command shares.
func loadRuntime() (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, err
	}
	logger, err := logging.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return nil, nil, err
	}
	return cfg, logger, nil
}

// llmConfig applies configured model overrides to the provider defaults.
func llmConfig(cfg *config.Config) *llm.Config {
	out := llm.ConfigFor(llm.Provider(cfg.LLM.Provider))
	for tier, model := range cfg.LLM.Models {
		if model != "" {
			out = out.WithModel(llm.ModelTier(tier), model)
		}
	}
	return out
}

// newPipelines connects to the configured provider. Callers close the returned client.
func newPipelines(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*readiness.Service, llm.Client, error) {
	if cfg.LLM.APIKey == "" {
		return nil, nil, fmt.Errorf("API key is required (set GEMINI_API_KEY or OPENAI_API_KEY, or %s_LLM_API_KEY)", config.EnvPrefix)
	}

	client, err := llm.NewClient(ctx, llmConfig(cfg), cfg.LLM.APIKey)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create LLM client: %w", err)
	}

	svc := readiness.NewService(client,
		readiness.WithTimeout(cfg.LLM.Timeout),
		readiness.WithLogger(logger),
	)
	return svc, client, nil
}
