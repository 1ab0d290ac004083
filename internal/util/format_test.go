package util

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatBalance(t *testing.T) {
	assert.Equal(t, "12.50", FormatBalance(12.5))
	assert.Equal(t, "12.00", FormatBalance(12))
	assert.Equal(t, "0.00", FormatBalance(0))
	assert.Equal(t, "-3.20", FormatBalance(-3.2))
	assert.Equal(t, "3.14", FormatBalance(3.14159))
}

func TestFormatCycleDuration(t *testing.T) {
	assert.Equal(t, "—", FormatCycleDuration(0))
	assert.Equal(t, "—", FormatCycleDuration(-time.Second))
	assert.Equal(t, "250µs", FormatCycleDuration(250*time.Microsecond))
	assert.Equal(t, "1.234s", FormatCycleDuration(1234*time.Millisecond+567*time.Microsecond))
}
