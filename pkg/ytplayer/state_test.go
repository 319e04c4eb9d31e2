package ytplayer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParsePlayerState(t *testing.T) {
	state, ok := ParsePlayerState("1")
	assert.True(t, ok)
	assert.Equal(t, StatePlaying, state)

	state, ok = ParsePlayerState("5")
	assert.True(t, ok)
	assert.Equal(t, StateQueued, state)

	_, ok = ParsePlayerState("99")
	assert.False(t, ok, "unrecognized raw value must not parse")

	_, ok = ParsePlayerState("")
	assert.False(t, ok)
}

func TestParsePlaybackQuality(t *testing.T) {
	quality, ok := ParsePlaybackQuality("hd720")
	assert.True(t, ok)
	assert.Equal(t, QualityHD720, quality)

	_, ok = ParsePlaybackQuality("4k")
	assert.False(t, ok, "unrecognized raw value must not parse")
}

func TestPlayerStateString(t *testing.T) {
	assert.Equal(t, "playing", StatePlaying.String())
	assert.Equal(t, "unknown", PlayerState("42").String())
}
