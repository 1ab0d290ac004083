package model

import "fmt"

// Refresh interval bounds in seconds. The remote service rate-limits the
// artifact endpoint, so anything faster than 5s is rejected outright.
const (
	MinRefreshIntervalSeconds     = 5
	MaxRefreshIntervalSeconds     = 300
	DefaultRefreshIntervalSeconds = 15
)

// Scale factor bounds for the rendered pass image.
const (
	MinScaleFactor     = 0.5
	MaxScaleFactor     = 3.0
	DefaultScaleFactor = 1.0
)

// StartupView selects which surface the user lands on first.
type StartupView string

const (
	StartupViewAccess  StartupView = "access"
	StartupViewUtility StartupView = "utility"
	StartupViewProfile StartupView = "profile"
	StartupViewAbout   StartupView = "about"
)

// Valid reports whether the startup view is supported.
func (v StartupView) Valid() bool {
	switch v {
	case StartupViewAccess, StartupViewUtility, StartupViewProfile, StartupViewAbout:
		return true
	default:
		return false
	}
}

// ColorMode selects the display color scheme.
type ColorMode string

const (
	ColorModeSystem ColorMode = "system"
	ColorModeLight  ColorMode = "light"
	ColorModeDark   ColorMode = "dark"
)

// Valid reports whether the color mode is supported.
func (m ColorMode) Valid() bool {
	switch m {
	case ColorModeSystem, ColorModeLight, ColorModeDark:
		return true
	default:
		return false
	}
}

// Preferences holds the user-editable settings that take effect
// immediately. All setters reject out-of-range values and leave the
// previous value in place, so a persisted Preferences is always valid.
type Preferences struct {
	ScaleFactor            float64     `json:"scale_factor"`
	RefreshIntervalSeconds int         `json:"refresh_interval_seconds"`
	StartupView            StartupView `json:"startup_view"`
	ColorMode              ColorMode   `json:"color_mode"`
}

// DefaultPreferences returns the preferences used for a freshly created
// settings record.
func DefaultPreferences() Preferences {
	return Preferences{
		ScaleFactor:            DefaultScaleFactor,
		RefreshIntervalSeconds: DefaultRefreshIntervalSeconds,
		StartupView:            StartupViewAccess,
		ColorMode:              ColorModeSystem,
	}
}

// SetRefreshInterval updates the refresh interval, rejecting values
// outside [MinRefreshIntervalSeconds, MaxRefreshIntervalSeconds].
func (p *Preferences) SetRefreshInterval(seconds int) error {
	if seconds < MinRefreshIntervalSeconds || seconds > MaxRefreshIntervalSeconds {
		return fmt.Errorf("refresh interval %ds out of range [%d, %d]",
			seconds, MinRefreshIntervalSeconds, MaxRefreshIntervalSeconds)
	}
	p.RefreshIntervalSeconds = seconds
	return nil
}

// SetScaleFactor updates the display scale factor, rejecting values
// outside [MinScaleFactor, MaxScaleFactor].
func (p *Preferences) SetScaleFactor(factor float64) error {
	if factor < MinScaleFactor || factor > MaxScaleFactor {
		return fmt.Errorf("scale factor %.2f out of range [%.1f, %.1f]",
			factor, MinScaleFactor, MaxScaleFactor)
	}
	p.ScaleFactor = factor
	return nil
}

// SetStartupView updates the startup view, rejecting unknown values.
func (p *Preferences) SetStartupView(v StartupView) error {
	if !v.Valid() {
		return fmt.Errorf("unknown startup view %q", v)
	}
	p.StartupView = v
	return nil
}

// SetColorMode updates the color mode, rejecting unknown values.
func (p *Preferences) SetColorMode(m ColorMode) error {
	if !m.Valid() {
		return fmt.Errorf("unknown color mode %q", m)
	}
	p.ColorMode = m
	return nil
}

// Normalize repairs a preferences struct loaded from an older or
// hand-edited record so downstream code never sees out-of-range values.
func (p *Preferences) Normalize() {
	if p.RefreshIntervalSeconds < MinRefreshIntervalSeconds || p.RefreshIntervalSeconds > MaxRefreshIntervalSeconds {
		p.RefreshIntervalSeconds = DefaultRefreshIntervalSeconds
	}
	if p.ScaleFactor < MinScaleFactor || p.ScaleFactor > MaxScaleFactor {
		p.ScaleFactor = DefaultScaleFactor
	}
	if !p.StartupView.Valid() {
		p.StartupView = StartupViewAccess
	}
	if !p.ColorMode.Valid() {
		p.ColorMode = ColorModeSystem
	}
}
