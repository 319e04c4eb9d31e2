package controller

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	sessionrepo "github.com/tubebridge/server/internal/repository/session"
	"github.com/tubebridge/server/internal/service/session"
	"github.com/tubebridge/server/pkg/validator"
	"github.com/tubebridge/server/pkg/videodata"
	"github.com/tubebridge/server/pkg/wsbridge"
)

// How long a REST getter waits for the page to reply.
const getterTimeout = 5 * time.Second

type iSessionService interface {
	CreateSession(context.Context) (session.CreateSessionResponse, error)
	RemoveSession(ctx context.Context, sessionID string) error
	Snapshot(ctx context.Context, sessionID string) (sessionrepo.Snapshot, error)
	AttachSurface(context.Context, *session.AttachSurfaceParams) (*wsbridge.Bridge, error)
	DetachSurface(ctx context.Context, sessionID string) error
	LoadVideo(context.Context, *session.LoadVideoParams) error
	Control(ctx context.Context, sessionID string, op session.ControlOp) error
	Seek(context.Context, *session.SeekParams) error
	SetVolume(ctx context.Context, sessionID string, volume int) error
	Duration(ctx context.Context, sessionID string) (float64, error)
	CurrentTime(ctx context.Context, sessionID string) (float64, error)
	Volume(ctx context.Context, sessionID string) (int, error)
}

type iVideoData interface {
	Get(ctx context.Context, videoID string) (*videodata.VideoData, error)
}

type controller struct {
	sessionService iSessionService
	videoData      iVideoData
	upgrader       websocket.Upgrader
	validate       *validator.Validator
	logger         *slog.Logger
}

func NewController(sessionService iSessionService, videoData iVideoData, logger *slog.Logger) *controller {
	if logger == nil {
		logger = slog.Default()
	}

	return &controller{
		sessionService: sessionService,
		videoData:      videoData,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
		validate: validator.NewValidator(),
		logger:   logger,
	}
}
