// Package wsbridge implements an embedded rendering surface backed by a
// browser page talking to the host over one websocket connection. The page
// renders documents pushed by the host and evaluates scripts on request; it
// reports script results, intercepted navigations and lifecycle events back
// as JSON messages.
package wsbridge

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/tubebridge/server/pkg/ytplayer"
)

// ErrSurfaceClosed completes every evaluation still pending when the
// connection goes away.
var ErrSurfaceClosed = errors.New("surface connection closed")

// Message types on the wire.
const (
	msgLoad       = "load"       // host -> page: render a document
	msgEval       = "eval"       // host -> page: evaluate a script
	msgResult     = "result"     // page -> host: script evaluation outcome
	msgNavigate   = "navigate"   // page -> host: navigation attempt
	msgNavigation = "navigation" // host -> page: navigation decision
	msgLifecycle  = "lifecycle"  // page -> host: visibility transition
)

// Result codes reported by the page client.
const codeNoResult = "no-result"

type message struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type loadPayload struct {
	HTML    string `json:"html"`
	BaseURL string `json:"base_url"`
}

type evalPayload struct {
	ID     string `json:"id"`
	Script string `json:"script"`
}

type resultPayload struct {
	ID     string          `json:"id"`
	Result json.RawMessage `json:"result"`
	Error  string          `json:"error"`
	Code   string          `json:"code"`
}

type navigatePayload struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

type navigationPayload struct {
	ID    string `json:"id"`
	Allow bool   `json:"allow"`
}

type lifecyclePayload struct {
	Event string `json:"event"`
}

// Bridge owns one websocket connection and implements ytplayer.Surface over
// it. Evaluations may be submitted from any goroutine; results, navigations
// and lifecycle events are delivered from the single ServeConn read loop, in
// the order the page issued them.
type Bridge struct {
	conn   *websocket.Conn
	logger *slog.Logger

	onNavigate  func(rawURL string) bool
	onLifecycle func(event string)

	mu      sync.Mutex
	pending map[string]ytplayer.ResultFunc
	closed  bool
}

func New(conn *websocket.Conn, logger *slog.Logger) *Bridge {
	if logger == nil {
		logger = slog.Default()
	}

	return &Bridge{
		conn:    conn,
		logger:  logger,
		pending: make(map[string]ytplayer.ResultFunc),
	}
}

// OnNavigate installs the navigation decision hook. It must be set before
// ServeConn; a bridge without one allows every navigation.
func (b *Bridge) OnNavigate(fn func(rawURL string) bool) {
	b.onNavigate = fn
}

// OnLifecycle installs the lifecycle event hook.
func (b *Bridge) OnLifecycle(fn func(event string)) {
	b.onLifecycle = fn
}

// LoadHTML pushes a document to the page client for rendering.
func (b *Bridge) LoadHTML(html string, baseURL string) error {
	if err := b.write(msgLoad, loadPayload{HTML: html, BaseURL: baseURL}); err != nil {
		return fmt.Errorf("failed to send load message: %w", err)
	}

	return nil
}

// Evaluate submits a script to the page client. done fires exactly once:
// with the page's result, with ErrNoScriptResult for void commands, or with
// an error when the message cannot be sent or the connection closes first.
func (b *Bridge) Evaluate(script string, done ytplayer.ResultFunc) {
	id := uuid.NewString()

	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		if done != nil {
			done(nil, ErrSurfaceClosed)
		}
		return
	}
	if done != nil {
		b.pending[id] = done
	}
	b.mu.Unlock()

	if err := b.write(msgEval, evalPayload{ID: id, Script: script}); err != nil {
		b.logger.Warn("failed to send eval message", "error", err)
		if done := b.takePending(id); done != nil {
			done(nil, fmt.Errorf("failed to send eval message: %w", err))
		}
	}
}

// ServeConn reads page messages until the connection fails or ctx is done.
// It always releases pending evaluations on the way out.
func (b *Bridge) ServeConn(ctx context.Context) error {
	defer b.close()

	context.AfterFunc(ctx, func() {
		b.conn.Close()
	})

	for {
		var msg message
		if err := b.conn.ReadJSON(&msg); err != nil {
			return err
		}

		switch msg.Type {
		case msgResult:
			b.handleResult(msg.Payload)
		case msgNavigate:
			b.handleNavigate(msg.Payload)
		case msgLifecycle:
			b.handleLifecycle(msg.Payload)
		default:
			b.logger.Debug("unknown surface message", "type", msg.Type)
		}
	}
}

func (b *Bridge) handleResult(payload json.RawMessage) {
	var result resultPayload
	if err := json.Unmarshal(payload, &result); err != nil {
		b.logger.Warn("malformed result payload", "error", err)
		return
	}

	done := b.takePending(result.ID)
	if done == nil {
		return
	}

	switch {
	case result.Code == codeNoResult:
		done(nil, ytplayer.ErrNoScriptResult)
	case result.Error != "":
		done(nil, errors.New(result.Error))
	default:
		done(result.Result, nil)
	}
}

func (b *Bridge) handleNavigate(payload json.RawMessage) {
	var navigate navigatePayload
	if err := json.Unmarshal(payload, &navigate); err != nil {
		b.logger.Warn("malformed navigate payload", "error", err)
		return
	}

	allow := true
	if b.onNavigate != nil {
		allow = b.onNavigate(navigate.URL)
	}

	if err := b.write(msgNavigation, navigationPayload{ID: navigate.ID, Allow: allow}); err != nil {
		b.logger.Warn("failed to send navigation decision", "error", err)
	}
}

func (b *Bridge) handleLifecycle(payload json.RawMessage) {
	var lifecycle lifecyclePayload
	if err := json.Unmarshal(payload, &lifecycle); err != nil {
		b.logger.Warn("malformed lifecycle payload", "error", err)
		return
	}

	if b.onLifecycle != nil {
		b.onLifecycle(lifecycle.Event)
	}
}

func (b *Bridge) takePending(id string) ytplayer.ResultFunc {
	b.mu.Lock()
	defer b.mu.Unlock()

	done, ok := b.pending[id]
	if !ok {
		return nil
	}
	delete(b.pending, id)

	return done
}

func (b *Bridge) close() {
	b.mu.Lock()
	b.closed = true
	pending := b.pending
	b.pending = make(map[string]ytplayer.ResultFunc)
	b.mu.Unlock()

	b.conn.Close()

	for _, done := range pending {
		done(nil, ErrSurfaceClosed)
	}
}

func (b *Bridge) write(messageType string, payload any) error {
	serialized, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	// gorilla allows one concurrent writer only.
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return ErrSurfaceClosed
	}

	return b.conn.WriteJSON(message{Type: messageType, Payload: serialized})
}
