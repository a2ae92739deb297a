package ai

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/spigell/hire-assessor/internal/utils"
	"go.uber.org/zap"
)

const defaultMaxLogLength = 200

// Generator is a provider backend able to answer a single prompt.
type Generator interface {
	GenerateContent(ctx context.Context, system, message string) (string, error)
	Model() string
}

// ProviderAssessor sends assessment prompts to a Generator.
type ProviderAssessor struct {
	generator Generator
	system    string
	logger    *zap.Logger
	maxLogLen int
}

func NewAssessor(generator Generator, system string, maxLogLength int, logger *zap.Logger) *ProviderAssessor {
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}

	if strings.TrimSpace(system) == "" {
		system = DefaultSystemInstruction
	}

	if logger == nil {
		logger = zap.NewNop()
	}

	return &ProviderAssessor{
		generator: generator,
		system:    system,
		logger:    logger,
		maxLogLen: maxLogLength,
	}
}

func (a *ProviderAssessor) Assess(ctx context.Context, prompt string) (string, error) {
	if a.generator == nil {
		return "", errors.New("ai generator is not configured")
	}

	if strings.TrimSpace(prompt) == "" {
		return "", errors.New("prompt must not be empty")
	}

	a.logger.Debug("generate content request",
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
		zap.String("prompt_preview", utils.TruncateForLog(prompt, a.maxLogLen)),
	)

	raw, err := a.generator.GenerateContent(ctx, a.system, prompt)
	if err != nil {
		return "", err
	}

	a.logger.Debug("generate content response",
		zap.Int("response_length", utf8.RuneCountInString(raw)),
		zap.String("response_preview", utils.TruncateForLog(raw, a.maxLogLen)),
	)

	return strings.TrimSpace(raw), nil
}
