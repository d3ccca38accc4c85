package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultUserSettings(t *testing.T) {
	defaults := DefaultUserSettings("u1")
	require.NotNil(t, defaults)

	// Seeding works off a copy of the returned defaults.
	settings := *defaults
	assert.Equal(t, "u1", settings.UserID)
	assert.Equal(t, 3, settings.PathQuestionsPerDay)
	assert.Equal(t, "standard", settings.ReviewIntervalMode)
	assert.False(t, settings.ReviewRandomized)
	assert.False(t, settings.PathRandomized)
}
