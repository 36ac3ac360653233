// Package ranges keeps the operand ranges valid under user edits.
package ranges

import "github.com/verte-zerg/timestable/internal/model"

// Config holds the operand ranges. Every setter clamps its input so that
// min <= max holds for both operands and all values stay inside the bounds.
type Config struct {
	bounds model.Bounds
	r      model.Ranges
}

// New returns a Config with the initial ranges clamped into validity.
func New(bounds model.Bounds, initial model.Ranges) *Config {
	if bounds.Max < bounds.Min {
		bounds.Max = bounds.Min
	}
	c := &Config{
		bounds: bounds,
		r: model.Ranges{
			FirstMin:  bounds.Min,
			FirstMax:  bounds.Max,
			SecondMin: bounds.Min,
			SecondMax: bounds.Max,
		},
	}
	c.SetFirstMin(initial.FirstMin)
	c.SetFirstMax(initial.FirstMax)
	c.SetSecondMin(initial.SecondMin)
	c.SetSecondMax(initial.SecondMax)
	return c
}

// Bounds returns the global limits.
func (c *Config) Bounds() model.Bounds {
	return c.bounds
}

// Snapshot returns a copy of the current ranges.
func (c *Config) Snapshot() model.Ranges {
	return c.r
}

// SetFirstMin stores v clamped to [bounds.Min, FirstMax].
func (c *Config) SetFirstMin(v int) (int, bool) {
	return set(&c.r.FirstMin, clamp(v, c.bounds.Min, c.r.FirstMax))
}

// SetFirstMax stores v clamped to [FirstMin, bounds.Max].
func (c *Config) SetFirstMax(v int) (int, bool) {
	return set(&c.r.FirstMax, clamp(v, c.r.FirstMin, c.bounds.Max))
}

// SetSecondMin stores v clamped to [bounds.Min, SecondMax].
func (c *Config) SetSecondMin(v int) (int, bool) {
	return set(&c.r.SecondMin, clamp(v, c.bounds.Min, c.r.SecondMax))
}

// SetSecondMax stores v clamped to [SecondMin, bounds.Max].
func (c *Config) SetSecondMax(v int) (int, bool) {
	return set(&c.r.SecondMax, clamp(v, c.r.SecondMin, c.bounds.Max))
}

func set(target *int, v int) (int, bool) {
	changed := *target != v
	*target = v
	return v, changed
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
