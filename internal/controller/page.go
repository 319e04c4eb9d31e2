package controller

import (
	_ "embed"
	"net/http"
)

//go:embed surface.html
var surfacePage []byte

// PlayerPage serves the surface client. The page derives its session id from
// the path and connects back over the websocket endpoint.
func (c controller) PlayerPage(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(surfacePage)
}
