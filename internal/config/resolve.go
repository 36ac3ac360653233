package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/verte-zerg/timestable/internal/generator"
	"github.com/verte-zerg/timestable/internal/model"
)

// Defaults used when neither the config file nor flags set a value.
const (
	DefaultTitle          = "Times Table Trainer"
	DefaultMinMultiplier  = 1
	DefaultMaxMultiplier  = 20
	DefaultRangeMin       = 2
	DefaultRangeMax       = 12
	DefaultCorrectDelay   = 300 * time.Millisecond
	DefaultIncorrectDelay = 700 * time.Millisecond
	DefaultTickInterval   = 100 * time.Millisecond
)

// DefaultCorrectFeedback is the pool of messages shown after a correct answer.
var DefaultCorrectFeedback = []string{
	"Correct!",
	"Nice work!",
	"Spot on!",
	"Well done!",
	"Exactly right!",
}

// DefaultIncorrectFeedback is the pool of messages shown after a wrong answer.
var DefaultIncorrectFeedback = []string{
	"Not quite.",
	"Close, keep going.",
	"Oops!",
	"Try the next one.",
}

// Defaults returns the built-in practice configuration.
func Defaults() model.Config {
	return model.Config{
		Title:  DefaultTitle,
		Bounds: model.Bounds{Min: DefaultMinMultiplier, Max: DefaultMaxMultiplier},
		Ranges: model.Ranges{
			FirstMin:  DefaultRangeMin,
			FirstMax:  DefaultRangeMax,
			SecondMin: DefaultRangeMin,
			SecondMax: DefaultRangeMax,
		},
		CorrectFeedback:   append([]string(nil), DefaultCorrectFeedback...),
		IncorrectFeedback: append([]string(nil), DefaultIncorrectFeedback...),
		CorrectDelay:      DefaultCorrectDelay,
		IncorrectDelay:    DefaultIncorrectDelay,
		TickInterval:      DefaultTickInterval,
		RetryLimit:        generator.DefaultRetryLimit,
	}
}

// Resolve applies file values over Defaults and validates the result.
// Ranges are not checked against the bounds here; they are clamped when
// the range editor is built.
func Resolve(file FileConfig) (model.Config, error) {
	cfg := Defaults()
	applyInt(&cfg.Bounds.Min, file.Limits.Min)
	applyInt(&cfg.Bounds.Max, file.Limits.Max)
	applyInt(&cfg.Ranges.FirstMin, file.Practice.FirstMin)
	applyInt(&cfg.Ranges.FirstMax, file.Practice.FirstMax)
	applyInt(&cfg.Ranges.SecondMin, file.Practice.SecondMin)
	applyInt(&cfg.Ranges.SecondMax, file.Practice.SecondMax)
	applyInt(&cfg.RetryLimit, file.Practice.RetryLimit)
	if file.Display.Title != nil {
		cfg.Title = strings.TrimSpace(*file.Display.Title)
	}
	if len(file.Display.CorrectFeedback) > 0 {
		cfg.CorrectFeedback = file.Display.CorrectFeedback
	}
	if len(file.Display.IncorrectFeedback) > 0 {
		cfg.IncorrectFeedback = file.Display.IncorrectFeedback
	}
	if err := applyDuration(&cfg.CorrectDelay, file.Practice.CorrectDelay, "correct-delay"); err != nil {
		return model.Config{}, err
	}
	if err := applyDuration(&cfg.IncorrectDelay, file.Practice.IncorrectDelay, "incorrect-delay"); err != nil {
		return model.Config{}, err
	}
	if err := Validate(cfg); err != nil {
		return model.Config{}, err
	}
	return cfg, nil
}

// Validate checks settings that cannot be clamped into validity.
func Validate(cfg model.Config) error {
	if cfg.Bounds.Min > cfg.Bounds.Max {
		return fmt.Errorf("limits.min (%d) must be <= limits.max (%d)", cfg.Bounds.Min, cfg.Bounds.Max)
	}
	if cfg.CorrectDelay <= 0 {
		return fmt.Errorf("correct-delay must be > 0")
	}
	if cfg.IncorrectDelay <= 0 {
		return fmt.Errorf("incorrect-delay must be > 0")
	}
	if cfg.TickInterval <= 0 {
		return fmt.Errorf("tick interval must be > 0")
	}
	if cfg.RetryLimit < 1 {
		return fmt.Errorf("retry-limit must be >= 1")
	}
	return nil
}

// Template returns the commented config file written by the config command.
func Template() string {
	return fmt.Sprintf(`# timestable configuration
# Uncomment a value to enable it. CLI flags override config values.

[limits]
# min = %d                    # Smallest operand allowed anywhere
# max = %d                   # Largest operand allowed anywhere

[practice]
# first-min = %d              # First operand range
# first-max = %d
# second-min = %d             # Second operand range
# second-max = %d
# correct-delay = %q       # Pause after a correct answer
# incorrect-delay = %q     # Pause after a wrong answer
# retry-limit = %d           # Redraws to avoid repeating the previous question

[display]
# title = %q
# correct-feedback = ["Correct!", "Nice work!"]
# incorrect-feedback = ["Not quite.", "Oops!"]
`,
		DefaultMinMultiplier,
		DefaultMaxMultiplier,
		DefaultRangeMin,
		DefaultRangeMax,
		DefaultRangeMin,
		DefaultRangeMax,
		DefaultCorrectDelay.String(),
		DefaultIncorrectDelay.String(),
		generator.DefaultRetryLimit,
		DefaultTitle,
	)
}

func applyInt(target, value *int) {
	if value == nil {
		return
	}
	*target = *value
}

func applyDuration(target *time.Duration, value *string, key string) error {
	if value == nil {
		return nil
	}
	d, err := time.ParseDuration(strings.TrimSpace(*value))
	if err != nil {
		return fmt.Errorf("invalid %s: %w", key, err)
	}
	*target = d
	return nil
}
