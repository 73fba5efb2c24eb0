package budget

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, DefaultCharLimit, cfg.CharLimit)
	assert.Equal(t, DefaultSafetyRatio, cfg.SafetyRatio)
	assert.Equal(t, 0, cfg.ExtraOverhead)
	assert.True(t, cfg.TruncateLastIfNeeded)
}

func TestConfig_EffectiveBudget(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want int
	}{
		{"full ratio", Config{CharLimit: 100, SafetyRatio: 1.0}, 100},
		{"headroom applied", Config{CharLimit: 100, SafetyRatio: 0.87}, 87},
		{"floor of scaled limit", Config{CharLimit: 10, SafetyRatio: 0.87}, 8},
		{"overhead subtracted", Config{CharLimit: 100, SafetyRatio: 1.0, ExtraOverhead: 30}, 70},
		{"negative overhead ignored", Config{CharLimit: 100, SafetyRatio: 1.0, ExtraOverhead: -5}, 100},
		{"overhead exceeding limit goes negative", Config{CharLimit: 10, SafetyRatio: 1.0, ExtraOverhead: 50}, -40},
		{"zero limit", Config{CharLimit: 0, SafetyRatio: 0.87}, 0},
		{"negative limit", Config{CharLimit: -100, SafetyRatio: 1.0}, -100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.cfg.EffectiveBudget())
		})
	}
}
