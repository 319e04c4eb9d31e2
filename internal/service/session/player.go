package session

import (
	"context"
	"fmt"

	"github.com/tubebridge/server/pkg/ytplayer"
)

// ControlOp is a player command with no arguments and no result.
type ControlOp string

const (
	OpPlay     ControlOp = "play"
	OpPause    ControlOp = "pause"
	OpStop     ControlOp = "stop"
	OpClear    ControlOp = "clear"
	OpMute     ControlOp = "mute"
	OpUnmute   ControlOp = "unmute"
	OpNext     ControlOp = "next"
	OpPrevious ControlOp = "previous"
)

func (s *service) playerFor(sessionID string) (*ytplayer.Player, error) {
	sess, err := s.sessionRepo.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	player, ok := sess.Player()
	if !ok {
		return nil, ErrNotAttached
	}

	return player, nil
}

type LoadVideoParams struct {
	SessionID  string
	VideoURL   string
	VideoID    string
	PlaylistID string
	Vars       ytplayer.PlayerVars
}

// LoadVideo loads from exactly one source: a full URL, a video id or a
// playlist id. The controller validates exclusivity; the first non-empty
// source wins here.
func (s *service) LoadVideo(ctx context.Context, params *LoadVideoParams) error {
	player, err := s.playerFor(params.SessionID)
	if err != nil {
		return err
	}

	switch {
	case params.VideoURL != "":
		err = player.LoadVideoURL(params.VideoURL, params.Vars)
	case params.VideoID != "":
		err = player.LoadVideoID(params.VideoID, params.Vars)
	case params.PlaylistID != "":
		err = player.LoadPlaylistID(params.PlaylistID, params.Vars)
	default:
		return fmt.Errorf("no video source provided")
	}
	if err != nil {
		return fmt.Errorf("failed to load video: %w", err)
	}

	return nil
}

func (s *service) Control(ctx context.Context, sessionID string, op ControlOp) error {
	player, err := s.playerFor(sessionID)
	if err != nil {
		return err
	}

	switch op {
	case OpPlay:
		player.Play()
	case OpPause:
		player.Pause()
	case OpStop:
		player.Stop()
	case OpClear:
		player.Clear()
	case OpMute:
		player.Mute()
	case OpUnmute:
		player.Unmute()
	case OpNext:
		player.NextVideo()
	case OpPrevious:
		player.PreviousVideo()
	default:
		return fmt.Errorf("unknown control op: %s", op)
	}

	return nil
}

type SeekParams struct {
	SessionID      string
	Seconds        float64
	AllowSeekAhead bool
}

func (s *service) Seek(ctx context.Context, params *SeekParams) error {
	player, err := s.playerFor(params.SessionID)
	if err != nil {
		return err
	}

	player.SeekTo(params.Seconds, params.AllowSeekAhead)

	return nil
}

func (s *service) SetVolume(ctx context.Context, sessionID string, volume int) error {
	player, err := s.playerFor(sessionID)
	if err != nil {
		return err
	}

	player.SetVolume(volume)

	return nil
}

// Duration bridges the player's asynchronous getter to a synchronous call,
// bounded by ctx. A command that never replies simply blocks until ctx
// expires.
func (s *service) Duration(ctx context.Context, sessionID string) (float64, error) {
	player, err := s.playerFor(sessionID)
	if err != nil {
		return 0, err
	}

	return s.awaitFloat(ctx, player.Duration)
}

func (s *service) CurrentTime(ctx context.Context, sessionID string) (float64, error) {
	player, err := s.playerFor(sessionID)
	if err != nil {
		return 0, err
	}

	return s.awaitFloat(ctx, player.CurrentTime)
}

func (s *service) Volume(ctx context.Context, sessionID string) (int, error) {
	player, err := s.playerFor(sessionID)
	if err != nil {
		return 0, err
	}

	type outcome struct {
		volume int
		ok     bool
	}
	results := make(chan outcome, 1)
	player.Volume(func(volume int, ok bool) {
		results <- outcome{volume: volume, ok: ok}
	})

	select {
	case result := <-results:
		if !result.ok {
			return 0, ErrNoPlayerResult
		}
		return result.volume, nil
	case <-ctx.Done():
		return 0, ctx.Err()
	}
}

func (s *service) awaitFloat(ctx context.Context, get func(func(float64, bool))) (float64, error) {
	type outcome struct {
		seconds float64
		ok      bool
	}
	results := make(chan outcome, 1)
	get(func(seconds float64, ok bool) {
		results <- outcome{seconds: seconds, ok: ok}
	})

	select {
	case result := <-results:
		if !result.ok {
			return 0, ErrNoPlayerResult
		}
		return result.seconds, nil
	case <-ctx.Done():
		return 0, ctx.Err()
	}
}
