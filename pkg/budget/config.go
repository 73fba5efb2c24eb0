package budget

// DefaultCharLimit is the advertised input cap of the provider this
// package was originally tuned for.
const DefaultCharLimit = 1_088_000

// DefaultSafetyRatio leaves ~13% headroom below the advertised limit,
// since providers may count hidden or system text the caller never sees.
const DefaultSafetyRatio = 0.87

// Config holds the character budget policy for a single trim.
// No validation happens on construction: a zero or negative CharLimit,
// a SafetyRatio outside (0,1], or an oversized ExtraOverhead simply
// drive EffectiveBudget toward zero, which downstream code treats as
// "no room" rather than an error.
type Config struct {
	// CharLimit is the provider's advertised input cap in characters.
	CharLimit int
	// SafetyRatio discounts CharLimit to absorb provider-side overhead.
	SafetyRatio float64
	// ExtraOverhead reserves characters for content added after
	// trimming (tool output, injected system text).
	ExtraOverhead int
	// TruncateLastIfNeeded allows the boundary message to be partially
	// included when even it alone does not fit.
	TruncateLastIfNeeded bool
}

// DefaultConfig returns the policy used when the caller supplies none.
func DefaultConfig() Config {
	return Config{
		CharLimit:            DefaultCharLimit,
		SafetyRatio:          DefaultSafetyRatio,
		ExtraOverhead:        0,
		TruncateLastIfNeeded: true,
	}
}

// EffectiveBudget returns the usable character budget:
// floor(CharLimit*SafetyRatio) - max(ExtraOverhead, 0).
// The result may be zero or negative.
func (c Config) EffectiveBudget() int {
	overhead := c.ExtraOverhead
	if overhead < 0 {
		overhead = 0
	}
	return int(float64(c.CharLimit)*c.SafetyRatio) - overhead
}
