package ytplayer

// PlayerState holds the raw state value reported by the iframe API.
type PlayerState string

const (
	StateUnstarted PlayerState = "-1"
	StateEnded     PlayerState = "0"
	StatePlaying   PlayerState = "1"
	StatePaused    PlayerState = "2"
	StateBuffering PlayerState = "3"
	StateQueued    PlayerState = "5"
)

// ParsePlayerState decodes a raw wire value. Unrecognized values report !ok
// so the caller can keep its previous state.
func ParsePlayerState(raw string) (PlayerState, bool) {
	switch PlayerState(raw) {
	case StateUnstarted, StateEnded, StatePlaying, StatePaused, StateBuffering, StateQueued:
		return PlayerState(raw), true
	}

	return "", false
}

func (s PlayerState) String() string {
	switch s {
	case StateUnstarted:
		return "unstarted"
	case StateEnded:
		return "ended"
	case StatePlaying:
		return "playing"
	case StatePaused:
		return "paused"
	case StateBuffering:
		return "buffering"
	case StateQueued:
		return "queued"
	default:
		return "unknown"
	}
}

// PlaybackQuality holds the raw quality value reported by the iframe API.
type PlaybackQuality string

const (
	QualitySmall   PlaybackQuality = "small"
	QualityMedium  PlaybackQuality = "medium"
	QualityLarge   PlaybackQuality = "large"
	QualityHD720   PlaybackQuality = "hd720"
	QualityHD1080  PlaybackQuality = "hd1080"
	QualityHighRes PlaybackQuality = "highres"
)

// ParsePlaybackQuality decodes a raw wire value. Unrecognized values report
// !ok so the caller can keep its previous quality.
func ParsePlaybackQuality(raw string) (PlaybackQuality, bool) {
	switch PlaybackQuality(raw) {
	case QualitySmall, QualityMedium, QualityLarge, QualityHD720, QualityHD1080, QualityHighRes:
		return PlaybackQuality(raw), true
	}

	return "", false
}

func (q PlaybackQuality) String() string {
	return string(q)
}
