package pipeline

import (
	"fmt"
	"strings"
)

// FailureMode decides what happens when fetching one input fails.
type FailureMode string

const (
	// Degrade keeps going with a placeholder value and records a warning.
	Degrade FailureMode = "degrade"
	// Abort stops the invocation and returns the error.
	Abort FailureMode = "abort"
)

// Policy holds the failure mode for each fetched field.
type Policy struct {
	Resume  FailureMode `mapstructure:"resume-failure" json:"resume_failure"`
	Profile FailureMode `mapstructure:"profile-failure" json:"profile_failure"`
}

func DefaultPolicy() Policy {
	return Policy{Resume: Degrade, Profile: Degrade}
}

// ParseFailureMode accepts "degrade" or "abort" in any case. An empty value
// means Degrade.
func ParseFailureMode(s string) (FailureMode, error) {
	switch mode := FailureMode(strings.ToLower(strings.TrimSpace(s))); mode {
	case "":
		return Degrade, nil
	case Degrade, Abort:
		return mode, nil
	default:
		return "", fmt.Errorf("unknown failure mode %q (expected %s or %s)", s, Degrade, Abort)
	}
}

// Normalize returns a copy of p with each mode parsed and defaulted.
func (p Policy) Normalize() (Policy, error) {
	resume, err := ParseFailureMode(string(p.Resume))
	if err != nil {
		return Policy{}, fmt.Errorf("resume: %w", err)
	}

	prof, err := ParseFailureMode(string(p.Profile))
	if err != nil {
		return Policy{}, fmt.Errorf("profile: %w", err)
	}

	return Policy{Resume: resume, Profile: prof}, nil
}
