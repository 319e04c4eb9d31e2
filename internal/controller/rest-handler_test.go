package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sessionrepo "github.com/tubebridge/server/internal/repository/session"
	"github.com/tubebridge/server/internal/service/session"
	"github.com/tubebridge/server/pkg/videodata"
	"github.com/tubebridge/server/pkg/wsbridge"
	"github.com/tubebridge/server/pkg/ytplayer"
)

type stubSessionService struct {
	loads    []session.LoadVideoParams
	controls []session.ControlOp
	seeks    []session.SeekParams
	err      error
}

func (s *stubSessionService) CreateSession(context.Context) (session.CreateSessionResponse, error) {
	return session.CreateSessionResponse{SessionID: "sess-1"}, s.err
}

func (s *stubSessionService) RemoveSession(_ context.Context, sessionID string) error {
	return s.err
}

func (s *stubSessionService) Snapshot(_ context.Context, sessionID string) (sessionrepo.Snapshot, error) {
	return sessionrepo.Snapshot{
		State:   ytplayer.StatePlaying,
		Quality: ytplayer.QualityHD720,
		Ready:   true,
	}, s.err
}

func (s *stubSessionService) AttachSurface(context.Context, *session.AttachSurfaceParams) (*wsbridge.Bridge, error) {
	return nil, s.err
}

func (s *stubSessionService) DetachSurface(_ context.Context, sessionID string) error {
	return s.err
}

func (s *stubSessionService) LoadVideo(_ context.Context, params *session.LoadVideoParams) error {
	s.loads = append(s.loads, *params)
	return s.err
}

func (s *stubSessionService) Control(_ context.Context, sessionID string, op session.ControlOp) error {
	s.controls = append(s.controls, op)
	return s.err
}

func (s *stubSessionService) Seek(_ context.Context, params *session.SeekParams) error {
	s.seeks = append(s.seeks, *params)
	return s.err
}

func (s *stubSessionService) SetVolume(_ context.Context, sessionID string, volume int) error {
	return s.err
}

func (s *stubSessionService) Duration(_ context.Context, sessionID string) (float64, error) {
	return 212.6, s.err
}

func (s *stubSessionService) CurrentTime(_ context.Context, sessionID string) (float64, error) {
	return 42.1, s.err
}

func (s *stubSessionService) Volume(_ context.Context, sessionID string) (int, error) {
	return 80, s.err
}

type stubVideoData struct {
	err error
}

func (s *stubVideoData) Get(context.Context, string) (*videodata.VideoData, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &videodata.VideoData{Title: "T", AuthorName: "A"}, nil
}

func newTestMux(svc *stubSessionService) http.Handler {
	return NewController(svc, &stubVideoData{}, nil).Mux()
}

func doRequest(t *testing.T, mux http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		serialized, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(serialized)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func TestCreateAndGetSession(t *testing.T) {
	svc := &stubSessionService{}
	mux := newTestMux(svc)

	rec := doRequest(t, mux, http.MethodPost, "/api/sessions", nil)
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), "sess-1")

	rec = doRequest(t, mux, http.MethodGet, "/api/sessions/sess-1", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"state":"playing"`)
	assert.Contains(t, rec.Body.String(), `"quality":"hd720"`)
}

func TestLoadVideoValidation(t *testing.T) {
	svc := &stubSessionService{}
	mux := newTestMux(svc)

	// No source at all.
	rec := doRequest(t, mux, http.MethodPost, "/api/sessions/sess-1/load", map[string]any{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// Two sources at once.
	rec = doRequest(t, mux, http.MethodPost, "/api/sessions/sess-1/load", map[string]any{
		"video_id":    "dQw4w9WgXcQ",
		"playlist_id": "PLabcdefgh",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, svc.loads)

	// A valid single source.
	rec = doRequest(t, mux, http.MethodPost, "/api/sessions/sess-1/load", map[string]any{
		"video_id":    "dQw4w9WgXcQ",
		"player_vars": map[string]any{"autoplay": 1},
	})
	assert.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, svc.loads, 1)
	assert.Equal(t, "dQw4w9WgXcQ", svc.loads[0].VideoID)
	assert.Equal(t, "sess-1", svc.loads[0].SessionID)
}

func TestControlRoutes(t *testing.T) {
	svc := &stubSessionService{}
	mux := newTestMux(svc)

	for _, op := range []string{"play", "pause", "mute", "next"} {
		rec := doRequest(t, mux, http.MethodPost, "/api/sessions/sess-1/"+op, nil)
		assert.Equal(t, http.StatusOK, rec.Code, op)
	}
	assert.Equal(t, []session.ControlOp{session.OpPlay, session.OpPause, session.OpMute, session.OpNext}, svc.controls)

	rec := doRequest(t, mux, http.MethodPost, "/api/sessions/sess-1/warp", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSeekValidation(t *testing.T) {
	svc := &stubSessionService{}
	mux := newTestMux(svc)

	rec := doRequest(t, mux, http.MethodPost, "/api/sessions/sess-1/seek", map[string]any{
		"seconds":          12.5,
		"allow_seek_ahead": true,
	})
	assert.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, svc.seeks, 1)
	assert.Equal(t, 12.5, svc.seeks[0].Seconds)
	assert.True(t, svc.seeks[0].AllowSeekAhead)

	rec = doRequest(t, mux, http.MethodPost, "/api/sessions/sess-1/seek", map[string]any{
		"seconds": -1,
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Len(t, svc.seeks, 1)
}

func TestVolumeValidation(t *testing.T) {
	svc := &stubSessionService{}
	mux := newTestMux(svc)

	rec := doRequest(t, mux, http.MethodPost, "/api/sessions/sess-1/volume", map[string]any{"volume": 150})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doRequest(t, mux, http.MethodPost, "/api/sessions/sess-1/volume", map[string]any{"volume": 80})
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, mux, http.MethodGet, "/api/sessions/sess-1/volume", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"volume":80`)
}

func TestGetters(t *testing.T) {
	svc := &stubSessionService{}
	mux := newTestMux(svc)

	rec := doRequest(t, mux, http.MethodGet, "/api/sessions/sess-1/duration", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "212.6")

	rec = doRequest(t, mux, http.MethodGet, "/api/sessions/sess-1/current-time", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "42.1")
}

func TestServiceErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"not found", sessionrepo.ErrNotFound, http.StatusNotFound},
		{"not attached", session.ErrNotAttached, http.StatusConflict},
		{"no result", session.ErrNoPlayerResult, http.StatusBadGateway},
		{"timeout", context.DeadlineExceeded, http.StatusGatewayTimeout},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mux := newTestMux(&stubSessionService{err: tt.err})
			rec := doRequest(t, mux, http.MethodGet, "/api/sessions/sess-1/duration", nil)
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}

func TestGetVideoData(t *testing.T) {
	mux := NewController(&stubSessionService{}, &stubVideoData{}, nil).Mux()

	rec := doRequest(t, mux, http.MethodGet, "/api/videos/dQw4w9WgXcQ", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"title":"T"`)

	mux = NewController(&stubSessionService{}, &stubVideoData{err: videodata.ErrVideoNotFound}, nil).Mux()
	rec = doRequest(t, mux, http.MethodGet, "/api/videos/missing", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestPlayerPage(t *testing.T) {
	mux := newTestMux(&stubSessionService{})

	rec := doRequest(t, mux, http.MethodGet, "/player/sess-1", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, rec.Body.String(), "/ws/sessions/")
}
