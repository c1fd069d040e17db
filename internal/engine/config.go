package engine

import "fmt"

// Config carries the engine's tuning knobs. The similarity thresholds
// come from calibration against the historical meeting data and are
// deliberately configuration, not constants.
type Config struct {
	// ExactDateRequired controls whether canonical keys require a date.
	// When false, identities with both names but no date are bucketed by
	// name alone, which can merge distinct meetings that share a
	// counterpart.
	ExactDateRequired bool

	// HighConfidenceSimilarity is the name-similarity score at or above
	// which an undated or unkeyed record joins an instance on the name
	// match alone.
	HighConfidenceSimilarity float64

	// LowConfidenceSimilarity is the threshold for the combined score
	// (mean of name similarity and raw-text token overlap).
	LowConfidenceSimilarity float64

	// RequiredArtifacts is the artifact set an instance must have for the
	// gap analyzer to consider it complete.
	RequiredArtifacts []ArtifactKind
}

// DefaultConfig returns the production defaults: dated keys only,
// 0.8/0.6 similarity tiers, and every artifact kind required.
func DefaultConfig() Config {
	return Config{
		ExactDateRequired:        true,
		HighConfidenceSimilarity: 0.8,
		LowConfidenceSimilarity:  0.6,
		RequiredArtifacts:        AllArtifactKinds(),
	}
}

// Validate checks the configuration for structural mistakes.
func (c Config) Validate() error {
	if c.HighConfidenceSimilarity < 0 || c.HighConfidenceSimilarity > 1 {
		return fmt.Errorf("high confidence similarity %v outside [0,1]", c.HighConfidenceSimilarity)
	}
	if c.LowConfidenceSimilarity < 0 || c.LowConfidenceSimilarity > 1 {
		return fmt.Errorf("low confidence similarity %v outside [0,1]", c.LowConfidenceSimilarity)
	}
	if c.LowConfidenceSimilarity > c.HighConfidenceSimilarity {
		return fmt.Errorf("low confidence similarity %v above high confidence similarity %v",
			c.LowConfidenceSimilarity, c.HighConfidenceSimilarity)
	}
	for _, k := range c.RequiredArtifacts {
		if !k.Valid() {
			return fmt.Errorf("%w: %d", ErrInvalidArtifactKind, int(k))
		}
	}
	return nil
}

// Engine is the reconciliation engine. It is purely computational: no
// I/O, no logging, no shared state between invocations.
type Engine struct {
	cfg Config
}

// New builds an engine from cfg.
func New(cfg Config) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("engine config: %w", err)
	}
	return &Engine{cfg: cfg}, nil
}

// Config returns the engine's configuration.
func (e *Engine) Config() Config {
	return e.cfg
}
