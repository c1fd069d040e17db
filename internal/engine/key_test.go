package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		in, out string
	}{
		{"  Louise ", "louise"},
		{"Louise's", "louise"},
		{"Mary   Ann", "mary ann"},
		{"Irvy.", "irvy"},
		{"JOANNE-", "joanne"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.out, normalizeName(tt.in), "normalizeName(%q)", tt.in)
	}
}

func TestBuildKey(t *testing.T) {
	e, err := New(DefaultConfig())
	require.NoError(t, err)

	date := NewDate(2025, time.December, 4)

	t.Run("exact identity gets dated key", func(t *testing.T) {
		id := Identity{Date: date, PrimaryPerson: "louise", CounterpartPerson: "irvy", Confidence: ConfidenceExact}
		key, ok := e.buildKey(id)
		require.True(t, ok)
		assert.Equal(t, CanonicalKey{Date: date, Name: "irvy"}, key)
	})

	t.Run("partial identity with date keyed on best name", func(t *testing.T) {
		id := Identity{Date: date, CounterpartPerson: "jep", Confidence: ConfidencePartial}
		key, ok := e.buildKey(id)
		require.True(t, ok)
		assert.Equal(t, CanonicalKey{Date: date, Name: "jep"}, key)
	})

	t.Run("primary name used when counterpart missing", func(t *testing.T) {
		id := Identity{Date: date, PrimaryPerson: "louise", Confidence: ConfidencePartial}
		key, ok := e.buildKey(id)
		require.True(t, ok)
		assert.Equal(t, "louise", key.Name)
	})

	t.Run("no date means no key by default", func(t *testing.T) {
		id := Identity{PrimaryPerson: "louise", CounterpartPerson: "irvy", Confidence: ConfidencePartial}
		_, ok := e.buildKey(id)
		assert.False(t, ok)
	})

	t.Run("unresolved identity never keyed", func(t *testing.T) {
		id := Identity{Date: date, Confidence: ConfidenceUnresolved}
		_, ok := e.buildKey(id)
		assert.False(t, ok)
	})
}

func TestBuildKeyWithoutDateRequirement(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ExactDateRequired = false
	e, err := New(cfg)
	require.NoError(t, err)

	id := Identity{PrimaryPerson: "louise", CounterpartPerson: "irvy", Confidence: ConfidencePartial}
	key, ok := e.buildKey(id)
	require.True(t, ok)
	assert.True(t, key.Date.IsZero())
	assert.Equal(t, "irvy", key.Name)
}

func TestConfigValidate(t *testing.T) {
	cfg := DefaultConfig()
	assert.NoError(t, cfg.Validate())

	bad := DefaultConfig()
	bad.HighConfidenceSimilarity = 1.5
	assert.Error(t, bad.Validate())

	inverted := DefaultConfig()
	inverted.LowConfidenceSimilarity = 0.9
	assert.Error(t, inverted.Validate())

	badKind := DefaultConfig()
	badKind.RequiredArtifacts = []ArtifactKind{ArtifactKind(42)}
	assert.ErrorIs(t, badKind.Validate(), ErrInvalidArtifactKind)
}
