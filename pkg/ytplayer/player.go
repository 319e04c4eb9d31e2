package ytplayer

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"
)

// NavigationScheme is the reserved scheme the embedded page uses to signal
// events back to the host. Navigations to it are always cancelled.
const NavigationScheme = "ytplayer"

// Event host names the embedded page navigates to.
const (
	eventIframeAPIReady = "onYouTubeIframeAPIReady"
	eventReady          = "onReady"
	eventStateChange    = "onStateChange"
	eventQualityChange  = "onPlaybackQualityChange"
)

// ErrNoVideoID is returned when no video id could be extracted from a URL.
var ErrNoVideoID = errors.New("no video id found in url")

const defaultOriginURL = "about:blank"

type Config struct {
	// OriginURL is passed to the surface as the document base URL. It is
	// used for origin purposes only and defaults to an inert placeholder.
	OriginURL string
	Events    Events
	Logger    *slog.Logger
}

// Player drives one embedded iframe player through a Surface it owns
// exclusively. Commands flow host to page as script evaluations; events flow
// page to host as intercepted ytplayer:// navigations. All state is mutated
// from the surface's delivery goroutine only.
type Player struct {
	surface   Surface
	originURL string
	events    Events
	logger    *slog.Logger

	state    PlayerState
	quality  PlaybackQuality
	apiReady bool
}

func New(surface Surface, cfg *Config) *Player {
	if cfg == nil {
		cfg = &Config{}
	}

	originURL := cfg.OriginURL
	if originURL == "" {
		originURL = defaultOriginURL
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Player{
		surface:   surface,
		originURL: originURL,
		events:    cfg.Events,
		logger:    logger,
		state:     StateUnstarted,
		quality:   QualitySmall,
	}
}

// State reports the last state decoded from the page.
func (p *Player) State() PlayerState {
	return p.state
}

// Quality reports the last playback quality decoded from the page.
func (p *Player) Quality() PlaybackQuality {
	return p.quality
}

// Ready reports whether the iframe API has signalled readiness.
func (p *Player) Ready() bool {
	return p.apiReady
}

// LoadVideoURL extracts a video id from a watch, embed or short-link URL and
// loads it. Returns ErrNoVideoID when no id can be found.
func (p *Player) LoadVideoURL(rawURL string, vars PlayerVars) error {
	videoID, ok := ExtractVideoID(rawURL)
	if !ok {
		p.logger.Warn("no video id in url", "url", rawURL)
		return ErrNoVideoID
	}

	return p.LoadVideoID(videoID, vars)
}

// LoadVideoID renders the player page for a single video.
func (p *Player) LoadVideoID(videoID string, vars PlayerVars) error {
	params := playerParameters(normalizeVars(vars))
	params["videoId"] = videoID

	return p.load(params)
}

// LoadPlaylistID renders the player page for a playlist. The playlist is
// addressed through player vars, not a video id.
func (p *Player) LoadPlaylistID(playlistID string, vars PlayerVars) error {
	merged := normalizeVars(vars)
	merged["listType"] = "playlist"
	merged["list"] = playlistID

	return p.load(playerParameters(merged))
}

func normalizeVars(vars PlayerVars) PlayerVars {
	merged := make(PlayerVars, len(vars)+2)
	for key, value := range vars {
		merged[key] = value
	}

	return merged
}

func (p *Player) load(params map[string]any) error {
	serialized, err := serializeParameters(params)
	if err != nil {
		p.logger.Warn("load aborted", "error", err)
		return err
	}

	html, err := renderPlayerHTML(serialized)
	if err != nil {
		p.logger.Warn("load aborted", "error", err)
		return err
	}

	if err := p.surface.LoadHTML(html, p.originURL); err != nil {
		return fmt.Errorf("failed to load player html: %w", err)
	}

	return nil
}

// CommandFunc receives the result of one player command. A nil raw message
// means the command returned nothing or its evaluation failed; evaluation
// failures are logged, never surfaced as errors.
type CommandFunc func(result json.RawMessage)

// Command wraps a fragment of player-control syntax ("playVideo()") into a
// fully-qualified call against the embedded player object and submits it for
// asynchronous evaluation. Exactly one completion is delivered per call; a
// nil done discards the result.
func (p *Player) Command(fragment string, done CommandFunc) {
	script := fmt.Sprintf("player.%s;", fragment)

	p.surface.Evaluate(script, func(result json.RawMessage, err error) {
		if err != nil && !errors.Is(err, ErrNoScriptResult) {
			p.logger.Warn("player command failed", "command", fragment, "error", err)
			result = nil
		} else if err != nil {
			// Benign: the command legitimately returned nothing.
			result = nil
		}

		if done != nil {
			done(result)
		}
	})
}

func (p *Player) Play()          { p.Command("playVideo()", nil) }
func (p *Player) Pause()         { p.Command("pauseVideo()", nil) }
func (p *Player) Stop()          { p.Command("stopVideo()", nil) }
func (p *Player) Clear()         { p.Command("clearVideo()", nil) }
func (p *Player) Mute()          { p.Command("mute()", nil) }
func (p *Player) Unmute()        { p.Command("unMute()", nil) }
func (p *Player) NextVideo()     { p.Command("nextVideo()", nil) }
func (p *Player) PreviousVideo() { p.Command("previousVideo()", nil) }

// SeekTo jumps to seconds. allowSeekAhead lets the player seek into
// unbuffered parts of the video.
func (p *Player) SeekTo(seconds float64, allowSeekAhead bool) {
	p.Command(fmt.Sprintf("seekTo(%s, %t)", formatSeconds(seconds), allowSeekAhead), nil)
}

func (p *Player) SetVolume(volume int) {
	p.Command(fmt.Sprintf("setVolume(%d)", volume), nil)
}

// Duration asks the page for the video duration in seconds. ok is false when
// the command failed or reported nothing.
func (p *Player) Duration(done func(seconds float64, ok bool)) {
	p.commandFloat("getDuration()", done)
}

// CurrentTime asks the page for the playback position in seconds.
func (p *Player) CurrentTime(done func(seconds float64, ok bool)) {
	p.commandFloat("getCurrentTime()", done)
}

// Volume asks the page for the current volume (0-100).
func (p *Player) Volume(done func(volume int, ok bool)) {
	p.Command("getVolume()", func(result json.RawMessage) {
		var volume int
		if result == nil || json.Unmarshal(result, &volume) != nil {
			done(0, false)
			return
		}

		done(volume, true)
	})
}

func (p *Player) commandFloat(fragment string, done func(float64, bool)) {
	p.Command(fragment, func(result json.RawMessage) {
		var seconds float64
		if result == nil || json.Unmarshal(result, &seconds) != nil {
			done(0, false)
			return
		}

		done(seconds, true)
	})
}

// RefreshAudioKeepalive reissues an inaudible looping audio element into the
// page. Hosts call it on foreground transitions to work around platform
// audio-session quirks.
func (p *Player) RefreshAudioKeepalive() {
	p.surface.Evaluate(keepaliveScript, nil)
}

const keepaliveScript = `(function () {
    var a = document.getElementById('__keepalive');
    if (!a) {
        a = document.createElement('audio');
        a.id = '__keepalive';
        a.loop = true;
        a.muted = true;
        document.body.appendChild(a);
    }
    a.play();
})();`

// InterceptNavigation decides one navigation attempt from the embedded page.
// Navigations to the reserved scheme are decoded as events and cancelled
// (returns false); everything else is allowed to proceed.
func (p *Player) InterceptNavigation(rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil || u.Scheme != NavigationScheme {
		return true
	}

	p.handleEvent(u.Host, ParseQueryString(u.RawQuery)["data"])

	return false
}

func (p *Player) handleEvent(name, data string) {
	switch name {
	case eventIframeAPIReady:
		p.apiReady = true

	case eventReady:
		p.logger.Debug("player ready")
		p.events.notifyReady()

	case eventStateChange:
		state, ok := ParsePlayerState(data)
		if !ok {
			p.logger.Debug("unrecognized player state", "data", data)
			return
		}

		p.state = state
		p.events.notifyStateChange(state)

	case eventQualityChange:
		quality, ok := ParsePlaybackQuality(data)
		if !ok {
			p.logger.Debug("unrecognized playback quality", "data", data)
			return
		}

		p.quality = quality
		p.events.notifyQualityChange(quality)

	default:
		p.logger.Debug("ignoring player event", "event", name)
	}
}

func formatSeconds(seconds float64) string {
	return strconv.FormatFloat(seconds, 'f', -1, 64)
}
