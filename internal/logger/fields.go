package logger

import (
	"strings"

	"go.uber.org/zap"
)

const (
	FieldProvider   = "ai_provider"
	FieldModel      = "ai_model"
	FieldInvocation = "invocation_id"
	FieldResumeURL  = "resume_url"
	FieldProfileURL = "profile_url"
	FieldStage      = "stage"
)

// StringField describes a string-valued structured logging field.
type StringField struct {
	Key   string
	Value string
}

// StringFields converts key/value pairs into zap fields. Entries with an empty
// key or value are dropped and the rest are trimmed.
func StringFields(fields ...StringField) []zap.Field {
	result := make([]zap.Field, 0, len(fields))
	for _, field := range fields {
		key := strings.TrimSpace(field.Key)
		if key == "" {
			continue
		}

		value := strings.TrimSpace(field.Value)
		if value == "" {
			continue
		}

		result = append(result, zap.String(key, value))
	}

	return result
}

// WithFields attaches fields to logger, falling back to a no-op logger when nil.
func WithFields(logger *zap.Logger, fields ...zap.Field) *zap.Logger {
	if logger == nil {
		logger = zap.NewNop()
	}

	if len(fields) == 0 {
		return logger
	}

	return logger.With(fields...)
}

// ProviderFields describe the AI backend serving an assessment.
func ProviderFields(provider, model string) []zap.Field {
	return StringFields(
		StringField{Key: FieldProvider, Value: provider},
		StringField{Key: FieldModel, Value: model},
	)
}

// InvocationFields describe a single candidate analysis.
func InvocationFields(invocationID, resumeURL, profileURL string) []zap.Field {
	return StringFields(
		StringField{Key: FieldInvocation, Value: invocationID},
		StringField{Key: FieldResumeURL, Value: resumeURL},
		StringField{Key: FieldProfileURL, Value: profileURL},
	)
}
