package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"nycschools/pkg/httpx/reply"
)

// RegisterRoutes вешает маршруты /v1 на переданный роутер.
func (s Server) RegisterRoutes(r chi.Router) {
	r.Route("/v1", func(r chi.Router) {
		r.Route("/schools", func(r chi.Router) {
			r.Get("/", handler(s.getV1Schools))
			r.Post("/refresh", handler(s.postV1SchoolsRefresh))
			r.Post("/more", handler(s.postV1SchoolsMore))
			r.Get("/{id}/sat", handler(s.getV1SchoolSAT))
			r.Get("/{id}/favorite", handler(s.getV1SchoolFavorite))
			r.Post("/{id}/favorite", handler(s.postV1SchoolFavorite))
		})
		r.Get("/favorites", handler(s.getV1Favorites))
	})
}

// handler отдаёт ошибку обработчика в reply.Error.
func handler(f func(http.ResponseWriter, *http.Request) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := f(w, r); err != nil {
			reply.Error(r.Context(), w, err)
		}
	}
}
