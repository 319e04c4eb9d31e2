package controller

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	sessionrepo "github.com/tubebridge/server/internal/repository/session"
	"github.com/tubebridge/server/internal/service/session"
)

// ConnectSurface upgrades the page client's connection and serves it as the
// session's rendering surface until it goes away.
func (c controller) ConnectSurface(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "session-id")

	conn, err := c.upgrader.Upgrade(w, r, nil)
	if err != nil {
		c.logger.Info("ConnectSurface", "upgrade err", err)
		return
	}

	bridge, err := c.sessionService.AttachSurface(r.Context(), &session.AttachSurfaceParams{
		SessionID: sessionID,
		Conn:      conn,
	})
	if err != nil {
		c.logger.Info("ConnectSurface", "attach err", err)
		closeCode := websocket.ClosePolicyViolation
		if errors.Is(err, sessionrepo.ErrNotFound) {
			closeCode = websocket.CloseNormalClosure
		}
		conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(closeCode, err.Error()))
		conn.Close()
		return
	}

	defer func() {
		if err := c.sessionService.DetachSurface(r.Context(), sessionID); err != nil {
			c.logger.Info("ConnectSurface", "detach err", err)
		}
	}()

	if err := bridge.ServeConn(r.Context()); err != nil {
		c.logger.Debug("surface connection closed", "sessionID", sessionID, "err", err)
	}
}
