package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/spigell/hire-assessor/internal/ai"
	"github.com/spigell/hire-assessor/internal/ai/claude"
	"github.com/spigell/hire-assessor/internal/ai/gemini"
	"github.com/spigell/hire-assessor/internal/document"
	"github.com/spigell/hire-assessor/internal/fetch"
	"github.com/spigell/hire-assessor/internal/logger"
	"github.com/spigell/hire-assessor/internal/pipeline"
	"github.com/spigell/hire-assessor/internal/profile"
	"github.com/spigell/hire-assessor/internal/secrets"

	"go.uber.org/zap"
)

func newFetchClient(cfg *FetchConfig, log *zap.Logger) *fetch.Client {
	opts := fetch.Options{}
	if cfg != nil {
		opts = fetch.Options{
			Timeout:   cfg.Timeout,
			UserAgent: cfg.UserAgent,
			MaxBytes:  cfg.MaxBytes,
		}
	}
	return fetch.New(log, opts)
}

func newAnalyzer(ctx context.Context, config *Config, log *zap.Logger) (*pipeline.Analyzer, error) {
	client := newFetchClient(config.Fetch, log)

	assessor, err := newAssessor(ctx, config.AI, log)
	if err != nil {
		return nil, fmt.Errorf("building ai assessor: %w", err)
	}

	opts := pipeline.Options{Policy: config.Pipeline}
	if config.AI != nil {
		opts.AssessTimeout = config.AI.Timeout
	}

	return pipeline.New(pipeline.Deps{
		Resumes:  document.NewReader(client, log),
		Profiles: profile.NewScraper(client, profile.GitHubSchema, log),
		Assessor: assessor,
		Logger:   log,
	}, opts)
}

func newAssessor(ctx context.Context, cfg *AIConfig, log *zap.Logger) (ai.Assessor, error) {
	if cfg == nil {
		return nil, errors.New("ai configuration is required")
	}

	provider, err := ai.NormalizeProvider(cfg.Provider)
	if err != nil {
		return nil, err
	}

	var (
		generator    ai.Generator
		maxLogLength int
	)

	switch provider {
	case ai.ProviderClaude:
		if cfg.Claude == nil {
			cfg.Claude = &ClaudeConfig{}
		}

		apiKey, err := secrets.Load(secrets.Source{
			Name:  "claude api key",
			Value: cfg.Claude.APIKey,
			Env:   "CLAUDE_API_KEY",
			File:  cfg.Claude.APIKeyFile,
		})
		if err != nil {
			return nil, fmt.Errorf("%w (set ai.claude.api-key-file, CLAUDE_API_KEY_FILE or CLAUDE_API_KEY)", err)
		}

		client, err := claude.New(apiKey, claude.Options{
			BaseURL:   cfg.Claude.BaseURL,
			Model:     cfg.Claude.Model,
			MaxTokens: cfg.Claude.MaxTokens,
			Timeout:   cfg.Timeout,
		}, logger.WithFields(log, logger.ProviderFields(provider, cfg.Claude.Model)...))
		if err != nil {
			return nil, err
		}

		generator = client
		maxLogLength = cfg.Claude.MaxLogLength
	default:
		if cfg.Gemini == nil {
			cfg.Gemini = &GeminiConfig{}
		}

		apiKey, err := secrets.Load(secrets.Source{
			Name:  "gemini api key",
			Value: cfg.Gemini.APIKey,
			Env:   "GEMINI_API_KEY",
			File:  cfg.Gemini.APIKeyFile,
		})
		if err != nil {
			return nil, fmt.Errorf("%w (set ai.gemini.api-key-file, GEMINI_API_KEY_FILE or GEMINI_API_KEY)", err)
		}

		genLogger := logger.WithFields(log, logger.ProviderFields(provider, cfg.Gemini.Model)...).
			With(zap.Int("ai_retry_attempts", cfg.Gemini.MaxRetries))

		client, err := gemini.NewGenerator(ctx, apiKey, cfg.Gemini.Model, cfg.Gemini.MaxRetries, genLogger)
		if err != nil {
			return nil, err
		}

		generator = client
		maxLogLength = cfg.Gemini.MaxLogLength
	}

	assessorLogger := logger.WithFields(log, logger.ProviderFields(provider, generator.Model())...)

	return ai.NewAssessor(generator, cfg.SystemInstruction, maxLogLength, assessorLogger), nil
}
