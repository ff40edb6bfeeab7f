package settings

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

const (
	DefaultHalfLengthSeconds  = 18 * 60
	DefaultSubIntervalSeconds = 4 * 60
	DefaultSubWarningSeconds  = 30

	MinHalfLengthSeconds  = 60
	MaxHalfLengthSeconds  = 3600
	MinSubIntervalSeconds = 60
	MaxSubIntervalSeconds = 3600
)

// Settings holds the period lengths a game runs with. The minute fields are the
// legacy representation and are only read when the matching seconds field is zero.
// A zero sub warning means unset; Normalize replaces it with the default.
type Settings struct {
	HalfLengthSeconds   int  `json:"halfLengthSeconds" validate:"gte=60,lte=3600"`
	SubIntervalSeconds  int  `json:"subIntervalSeconds" validate:"gte=60,lte=3600"`
	SubWarningSeconds   int  `json:"subWarningSeconds" validate:"gte=1,ltefield=SubIntervalSeconds"`
	QuarterBreakSeconds int  `json:"quarterBreakSeconds" validate:"gte=0,ltfield=HalfLengthSeconds"`
	QuarterBreakEnabled bool `json:"quarterBreakEnabled"`

	HalfLengthMinutes  int `json:"halfLengthMinutes,omitempty" validate:"-"`
	SubIntervalMinutes int `json:"subIntervalMinutes,omitempty" validate:"-"`
}

var settingsValidator = validator.New()

// Defaults returns the settings used when the store has nothing saved.
func Defaults() Settings {
	return Normalize(Settings{QuarterBreakEnabled: true})
}

// Normalize fills defaults, converts legacy minutes and clamps every value into range.
func Normalize(s Settings) Settings {
	half := s.HalfLengthSeconds
	if half <= 0 && s.HalfLengthMinutes > 0 {
		half = s.HalfLengthMinutes * 60
	}
	if half <= 0 {
		half = DefaultHalfLengthSeconds
	}
	half = clamp(half, MinHalfLengthSeconds, MaxHalfLengthSeconds)

	interval := s.SubIntervalSeconds
	if interval <= 0 && s.SubIntervalMinutes > 0 {
		interval = s.SubIntervalMinutes * 60
	}
	if interval <= 0 {
		interval = DefaultSubIntervalSeconds
	}
	interval = clamp(interval, MinSubIntervalSeconds, MaxSubIntervalSeconds)

	warning := s.SubWarningSeconds
	if warning <= 0 {
		warning = DefaultSubWarningSeconds
	}
	warning = clamp(warning, 0, interval)

	quarter := 0
	if s.QuarterBreakEnabled {
		quarter = s.QuarterBreakSeconds
		if quarter <= 0 {
			quarter = QuarterBreakFromHalf(half)
		}
		quarter = clamp(quarter, 0, half-1)
	}

	return Settings{
		HalfLengthSeconds:   half,
		SubIntervalSeconds:  interval,
		SubWarningSeconds:   warning,
		QuarterBreakSeconds: quarter,
		QuarterBreakEnabled: s.QuarterBreakEnabled && quarter > 0,
	}
}

// QuarterBreakFromHalf maps a half length to the clock value at which the
// mid-half quarter break fires: half the whole minutes, stepped down to an even
// minute when that exceeds five (a half of 14 minutes or more).
func QuarterBreakFromHalf(halfSeconds int) int {
	minutes := halfSeconds / 60
	if minutes < 2 {
		return halfSeconds / 2
	}
	quarter := minutes / 2
	if quarter > 5 && quarter%2 == 1 {
		quarter--
	}
	return quarter * 60
}

func (s Settings) Validate() error {
	if err := settingsValidator.Struct(s); err != nil {
		return fmt.Errorf("invalid settings: %w", err)
	}
	return nil
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
