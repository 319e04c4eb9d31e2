package controller

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (c controller) Mux() http.Handler {
	r := chi.NewRouter()

	r.Post("/api/sessions", c.CreateSession)
	r.Route("/api/sessions/{session-id}", func(r chi.Router) {
		r.Get("/", c.GetSession)
		r.Delete("/", c.RemoveSession)
		r.Post("/load", c.LoadVideo)
		r.Post("/seek", c.Seek)
		r.Get("/volume", c.GetVolume)
		r.Post("/volume", c.SetVolume)
		r.Get("/duration", c.GetDuration)
		r.Get("/current-time", c.GetCurrentTime)
		r.Post("/{op}", c.Control)
	})
	r.Get("/api/videos/{video-id}", c.GetVideoData)

	r.HandleFunc("/ws/sessions/{session-id}", c.ConnectSurface)
	r.Get("/player/{session-id}", c.PlayerPage)

	return r
}
