package ai

import (
	"context"
	"fmt"
	"strings"
)

const (
	ProviderGemini = "gemini"
	ProviderClaude = "claude"
)

// DefaultSystemInstruction frames every assessment request.
const DefaultSystemInstruction = "You are an experienced technical recruiter. " +
	"Assess candidates objectively against the job description and company context, " +
	"cite evidence from the provided material, and say so when information is missing."

// Assessor turns an assembled prompt into a hiring assessment.
type Assessor interface {
	Assess(ctx context.Context, prompt string) (string, error)
}

// AssessorFunc adapts a function to the Assessor interface.
type AssessorFunc func(ctx context.Context, prompt string) (string, error)

func (f AssessorFunc) Assess(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}

// NormalizeProvider lowercases provider and applies the default.
func NormalizeProvider(provider string) (string, error) {
	p := strings.TrimSpace(strings.ToLower(provider))
	switch p {
	case "":
		return ProviderGemini, nil
	case ProviderGemini, ProviderClaude:
		return p, nil
	default:
		return "", fmt.Errorf("unsupported ai provider: %s", provider)
	}
}
