package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultPreferences(t *testing.T) {
	p := DefaultPreferences()

	assert.Equal(t, DefaultRefreshIntervalSeconds, p.RefreshIntervalSeconds)
	assert.Equal(t, DefaultScaleFactor, p.ScaleFactor)
	assert.Equal(t, StartupViewAccess, p.StartupView)
	assert.Equal(t, ColorModeSystem, p.ColorMode)
}

func TestPreferences_SetRefreshInterval(t *testing.T) {
	p := DefaultPreferences()

	require.NoError(t, p.SetRefreshInterval(60))
	assert.Equal(t, 60, p.RefreshIntervalSeconds)

	// Out-of-range values are rejected and the previous value stays.
	err := p.SetRefreshInterval(4)
	require.Error(t, err)
	assert.Equal(t, 60, p.RefreshIntervalSeconds)

	err = p.SetRefreshInterval(301)
	require.Error(t, err)
	assert.Equal(t, 60, p.RefreshIntervalSeconds)

	// Boundaries are inclusive.
	require.NoError(t, p.SetRefreshInterval(MinRefreshIntervalSeconds))
	require.NoError(t, p.SetRefreshInterval(MaxRefreshIntervalSeconds))
}

func TestPreferences_SetScaleFactor(t *testing.T) {
	p := DefaultPreferences()

	require.NoError(t, p.SetScaleFactor(2.0))
	assert.Equal(t, 2.0, p.ScaleFactor)

	err := p.SetScaleFactor(0.4)
	require.Error(t, err)
	assert.Equal(t, 2.0, p.ScaleFactor)

	err = p.SetScaleFactor(3.5)
	require.Error(t, err)
	assert.Equal(t, 2.0, p.ScaleFactor)

	require.NoError(t, p.SetScaleFactor(MinScaleFactor))
	require.NoError(t, p.SetScaleFactor(MaxScaleFactor))
}

func TestPreferences_SetStartupView(t *testing.T) {
	p := DefaultPreferences()

	require.NoError(t, p.SetStartupView(StartupViewUtility))
	assert.Equal(t, StartupViewUtility, p.StartupView)

	err := p.SetStartupView(StartupView("dashboard"))
	require.Error(t, err)
	assert.Equal(t, StartupViewUtility, p.StartupView)
}

func TestPreferences_SetColorMode(t *testing.T) {
	p := DefaultPreferences()

	require.NoError(t, p.SetColorMode(ColorModeDark))
	assert.Equal(t, ColorModeDark, p.ColorMode)

	err := p.SetColorMode(ColorMode("sepia"))
	require.Error(t, err)
	assert.Equal(t, ColorModeDark, p.ColorMode)
}

func TestPreferences_Normalize(t *testing.T) {
	p := Preferences{
		ScaleFactor:            99,
		RefreshIntervalSeconds: 0,
		StartupView:            "bogus",
		ColorMode:              "",
	}
	p.Normalize()

	assert.Equal(t, DefaultPreferences(), p)

	// Valid values survive untouched.
	p = Preferences{
		ScaleFactor:            1.5,
		RefreshIntervalSeconds: 30,
		StartupView:            StartupViewProfile,
		ColorMode:              ColorModeLight,
	}
	p.Normalize()
	assert.Equal(t, 1.5, p.ScaleFactor)
	assert.Equal(t, 30, p.RefreshIntervalSeconds)
	assert.Equal(t, StartupViewProfile, p.StartupView)
	assert.Equal(t, ColorModeLight, p.ColorMode)
}
