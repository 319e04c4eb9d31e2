package ytplayer

import (
	"encoding/json"
	"errors"
)

// ErrNoScriptResult is the benign evaluation outcome for commands that
// legitimately return nothing (play, pause, ...). Surfaces must report it
// instead of a generic error so the dispatcher can treat it as success.
var ErrNoScriptResult = errors.New("script evaluation produced no result")

// ResultFunc receives the outcome of one script evaluation. It is invoked
// exactly once per evaluation, with either a raw JSON result or an error.
type ResultFunc func(result json.RawMessage, err error)

// Surface is the embedded rendering surface the player owns exclusively:
// something able to render an HTML document and evaluate scripts inside it.
// Evaluation is asynchronous; the done callback fires later on the surface's
// delivery goroutine. Implementations must deliver intercepted navigations
// in the order the page issues them.
type Surface interface {
	// LoadHTML renders the document. baseURL is used for origin purposes
	// only.
	LoadHTML(html string, baseURL string) error

	// Evaluate submits a script for asynchronous evaluation. done may be
	// nil when the caller does not care about the result.
	Evaluate(script string, done ResultFunc)
}
