package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"emergency_response/pkg/httpx/reply"
)

func (s Server) RegisterRoutes(r chi.Router) {
	r.Route("/", func(r chi.Router) {
		r.Route("/v1", func(r chi.Router) {
			r.Post("/cases", handler(s.postV1Cases))

			r.Get("/usage", handler(s.getV1Usage))

			r.Route("/demo-mode", func(r chi.Router) {
				r.Get("/", handler(s.getV1DemoMode))
				r.Post("/enable", handler(s.postV1DemoModeEnable))
				r.Post("/disable", handler(s.postV1DemoModeDisable))
			})
		})
	})
}

func handler(f func(http.ResponseWriter, *http.Request) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := f(w, r); err != nil {
			reply.Error(r.Context(), w, err)
		}
	}
}
