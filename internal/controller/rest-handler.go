package controller

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	sessionrepo "github.com/tubebridge/server/internal/repository/session"
	"github.com/tubebridge/server/internal/service/session"
	"github.com/tubebridge/server/pkg/rest"
	"github.com/tubebridge/server/pkg/videodata"
	"github.com/tubebridge/server/pkg/ytplayer"
)

var controlOps = map[string]session.ControlOp{
	"play":     session.OpPlay,
	"pause":    session.OpPause,
	"stop":     session.OpStop,
	"clear":    session.OpClear,
	"mute":     session.OpMute,
	"unmute":   session.OpUnmute,
	"next":     session.OpNext,
	"previous": session.OpPrevious,
}

func (c controller) CreateSession(w http.ResponseWriter, r *http.Request) {
	createResp, err := c.sessionService.CreateSession(r.Context())
	if err != nil {
		c.writeServiceError(w, "CreateSession", err)
		return
	}

	rest.WriteJSON(w, http.StatusCreated, rest.Envelope{"data": map[string]string{
		"session_id": createResp.SessionID,
	}})
}

func (c controller) RemoveSession(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "session-id")

	if err := c.sessionService.RemoveSession(r.Context(), sessionID); err != nil {
		c.writeServiceError(w, "RemoveSession", err)
		return
	}

	rest.WriteJSON(w, http.StatusOK, rest.Envelope{"data": "ok"})
}

func (c controller) GetSession(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "session-id")

	snapshot, err := c.sessionService.Snapshot(r.Context(), sessionID)
	if err != nil {
		c.writeServiceError(w, "GetSession", err)
		return
	}

	rest.WriteJSON(w, http.StatusOK, rest.Envelope{"data": map[string]any{
		"state":         snapshot.State.String(),
		"quality":       snapshot.Quality.String(),
		"ready":         snapshot.Ready,
		"last_event_at": snapshot.LastEventAt,
	}})
}

type loadVideoInput struct {
	VideoURL   string         `json:"video_url" validate:"omitempty,url"`
	VideoID    string         `json:"video_id" validate:"omitempty,min=8,max=16"`
	PlaylistID string         `json:"playlist_id" validate:"omitempty,min=8,max=64"`
	PlayerVars map[string]any `json:"player_vars"`
}

func (c controller) LoadVideo(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "session-id")

	var input loadVideoInput
	if err := rest.ReadJSON(r, &input); err != nil {
		c.logger.Info("LoadVideo", "read json err", err)
		rest.WriteJSON(w, http.StatusUnprocessableEntity, rest.Envelope{"error": err.Error()})
		return
	}

	if validationErrors, ok := c.validate.Validate(input); !ok {
		c.logger.Info("LoadVideo", "validate err", validationErrors)
		rest.WriteJSON(w, http.StatusBadRequest, rest.Envelope{"errors": validationErrors})
		return
	}

	sources := 0
	for _, source := range []string{input.VideoURL, input.VideoID, input.PlaylistID} {
		if source != "" {
			sources++
		}
	}
	if sources != 1 {
		rest.WriteJSON(w, http.StatusBadRequest, rest.Envelope{"error": "exactly one of video_url, video_id, playlist_id is required"})
		return
	}

	err := c.sessionService.LoadVideo(r.Context(), &session.LoadVideoParams{
		SessionID:  sessionID,
		VideoURL:   input.VideoURL,
		VideoID:    input.VideoID,
		PlaylistID: input.PlaylistID,
		Vars:       ytplayer.PlayerVars(input.PlayerVars),
	})
	if err != nil {
		if errors.Is(err, ytplayer.ErrNoVideoID) {
			rest.WriteJSON(w, http.StatusUnprocessableEntity, rest.Envelope{"error": "no video id found in url"})
			return
		}
		c.writeServiceError(w, "LoadVideo", err)
		return
	}

	rest.WriteJSON(w, http.StatusOK, rest.Envelope{"data": "ok"})
}

func (c controller) Control(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "session-id")

	op, ok := controlOps[chi.URLParam(r, "op")]
	if !ok {
		rest.WriteJSON(w, http.StatusNotFound, rest.Envelope{"error": "unknown command"})
		return
	}

	if err := c.sessionService.Control(r.Context(), sessionID, op); err != nil {
		c.writeServiceError(w, "Control", err)
		return
	}

	rest.WriteJSON(w, http.StatusOK, rest.Envelope{"data": "ok"})
}

type seekInput struct {
	Seconds        float64 `json:"seconds" validate:"gte=0"`
	AllowSeekAhead bool    `json:"allow_seek_ahead"`
}

func (c controller) Seek(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "session-id")

	var input seekInput
	if err := rest.ReadJSON(r, &input); err != nil {
		c.logger.Info("Seek", "read json err", err)
		rest.WriteJSON(w, http.StatusUnprocessableEntity, rest.Envelope{"error": err.Error()})
		return
	}

	if validationErrors, ok := c.validate.Validate(input); !ok {
		rest.WriteJSON(w, http.StatusBadRequest, rest.Envelope{"errors": validationErrors})
		return
	}

	err := c.sessionService.Seek(r.Context(), &session.SeekParams{
		SessionID:      sessionID,
		Seconds:        input.Seconds,
		AllowSeekAhead: input.AllowSeekAhead,
	})
	if err != nil {
		c.writeServiceError(w, "Seek", err)
		return
	}

	rest.WriteJSON(w, http.StatusOK, rest.Envelope{"data": "ok"})
}

type setVolumeInput struct {
	Volume int `json:"volume" validate:"gte=0,lte=100"`
}

func (c controller) SetVolume(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "session-id")

	var input setVolumeInput
	if err := rest.ReadJSON(r, &input); err != nil {
		c.logger.Info("SetVolume", "read json err", err)
		rest.WriteJSON(w, http.StatusUnprocessableEntity, rest.Envelope{"error": err.Error()})
		return
	}

	if validationErrors, ok := c.validate.Validate(input); !ok {
		rest.WriteJSON(w, http.StatusBadRequest, rest.Envelope{"errors": validationErrors})
		return
	}

	if err := c.sessionService.SetVolume(r.Context(), sessionID, input.Volume); err != nil {
		c.writeServiceError(w, "SetVolume", err)
		return
	}

	rest.WriteJSON(w, http.StatusOK, rest.Envelope{"data": "ok"})
}

func (c controller) GetVolume(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "session-id")

	ctx, cancel := context.WithTimeout(r.Context(), getterTimeout)
	defer cancel()

	volume, err := c.sessionService.Volume(ctx, sessionID)
	if err != nil {
		c.writeServiceError(w, "GetVolume", err)
		return
	}

	rest.WriteJSON(w, http.StatusOK, rest.Envelope{"data": map[string]int{"volume": volume}})
}

func (c controller) GetDuration(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "session-id")

	ctx, cancel := context.WithTimeout(r.Context(), getterTimeout)
	defer cancel()

	seconds, err := c.sessionService.Duration(ctx, sessionID)
	if err != nil {
		c.writeServiceError(w, "GetDuration", err)
		return
	}

	rest.WriteJSON(w, http.StatusOK, rest.Envelope{"data": map[string]float64{"duration": seconds}})
}

func (c controller) GetCurrentTime(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "session-id")

	ctx, cancel := context.WithTimeout(r.Context(), getterTimeout)
	defer cancel()

	seconds, err := c.sessionService.CurrentTime(ctx, sessionID)
	if err != nil {
		c.writeServiceError(w, "GetCurrentTime", err)
		return
	}

	rest.WriteJSON(w, http.StatusOK, rest.Envelope{"data": map[string]float64{"current_time": seconds}})
}

func (c controller) GetVideoData(w http.ResponseWriter, r *http.Request) {
	videoID := chi.URLParam(r, "video-id")

	data, err := c.videoData.Get(r.Context(), videoID)
	if err != nil {
		if errors.Is(err, videodata.ErrVideoNotFound) {
			rest.WriteJSON(w, http.StatusNotFound, rest.Envelope{"error": "video not found"})
			return
		}
		c.logger.Info("GetVideoData", "err", err)
		rest.WriteJSON(w, http.StatusBadGateway, rest.Envelope{"error": "failed to get video data"})
		return
	}

	rest.WriteJSON(w, http.StatusOK, rest.Envelope{"data": data})
}

func (c controller) writeServiceError(w http.ResponseWriter, handler string, err error) {
	c.logger.Info(handler, "err", err)

	switch {
	case errors.Is(err, sessionrepo.ErrNotFound):
		rest.WriteJSON(w, http.StatusNotFound, rest.Envelope{"error": "session not found"})
	case errors.Is(err, session.ErrNotAttached):
		rest.WriteJSON(w, http.StatusConflict, rest.Envelope{"error": "no surface attached"})
	case errors.Is(err, session.ErrSessionsLimitReached):
		rest.WriteJSON(w, http.StatusConflict, rest.Envelope{"error": "sessions limit reached"})
	case errors.Is(err, session.ErrNoPlayerResult):
		rest.WriteJSON(w, http.StatusBadGateway, rest.Envelope{"error": "player reported no result"})
	case errors.Is(err, context.DeadlineExceeded):
		rest.WriteJSON(w, http.StatusGatewayTimeout, rest.Envelope{"error": "player did not reply in time"})
	default:
		rest.WriteJSON(w, http.StatusInternalServerError, rest.Envelope{"error": err.Error()})
	}
}
