package notfpref

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNotfLevel_TotalOrder(t *testing.T) {
	levels := AllLevels()
	assert.Equal(t, []NotfLevel{
		LevelMuted,
		LevelHushed,
		LevelNormal,
		LevelTracking,
		LevelWatchingFirst,
		LevelTopicSolved,
		LevelTopicProgress,
		LevelWatchingAll,
		LevelEveryPostAllEdits,
	}, levels)

	// Strictly ascending and transitive: every later level is more eager
	// than every earlier one.
	for i := range levels {
		for j := range levels {
			assert.Equal(t, i < j, levels[j].MoreEagerThan(levels[i]),
				"MoreEagerThan(%v, %v)", levels[j], levels[i])
		}
	}
}

func TestNotfLevel_IsValid(t *testing.T) {
	for _, l := range AllLevels() {
		assert.True(t, l.IsValid())
	}
	assert.False(t, NotfLevel(0).IsValid())
	assert.False(t, NotfLevel(10).IsValid())
	assert.False(t, NotfLevel(-1).IsValid())
}

func TestNotfLevel_Labels(t *testing.T) {
	for _, l := range AllLevels() {
		assert.NotEqual(t, "unknown", l.String())
		assert.NotEmpty(t, l.Description())
	}
	assert.Equal(t, "unknown", NotfLevel(42).String())
}
