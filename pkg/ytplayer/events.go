package ytplayer

// Events holds the observer callbacks. Every slot is optional; a nil slot is
// a no-op, so callers wire only what they need.
type Events struct {
	// OnReady fires when the embedded player is ready to accept commands.
	OnReady func()

	// OnStateChange fires after a successfully decoded state change.
	OnStateChange func(state PlayerState)

	// OnQualityChange fires after a successfully decoded quality change.
	OnQualityChange func(quality PlaybackQuality)
}

func (e Events) notifyReady() {
	if e.OnReady != nil {
		e.OnReady()
	}
}

func (e Events) notifyStateChange(state PlayerState) {
	if e.OnStateChange != nil {
		e.OnStateChange(state)
	}
}

func (e Events) notifyQualityChange(quality PlaybackQuality) {
	if e.OnQualityChange != nil {
		e.OnQualityChange(quality)
	}
}
