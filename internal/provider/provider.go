// Package provider defines the AI generation abstraction. A Provider drafts
// conventional-commit candidates from a changeset analysis; implementations
// must emit the same Message schema the rule-based suggester uses, so the
// personalizer can treat AI-sourced and heuristic candidates identically.
// New backends are added as new conforming implementations.
package provider

import (
	"context"

	"github.com/papapumpkin/comet/internal/analyze"
	"github.com/papapumpkin/comet/internal/message"
)

// Provider generates commit-message candidates from an analysis.
type Provider interface {
	// Name identifies the provider in output and telemetry.
	Name() string

	// Generate returns up to n candidates, best first. Any error means the
	// caller should fall back to the rule-based suggester.
	Generate(ctx context.Context, a analyze.Analysis, n int) ([]message.Message, error)
}
