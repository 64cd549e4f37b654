package habit

import (
	"net/http"

	"github.com/dstasiak/habitflow/internal/community"
	"github.com/go-chi/chi/v5"
)

func Routes(h *Handler, communityHandler *community.Handler) http.Handler {
	r := chi.NewRouter()

	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Get("/overview", h.Overview)
	r.Get("/popular", h.Popular)
	r.Mount("/community", community.Routes(communityHandler))

	r.Get("/{id}", h.Get)
	r.Put("/{id}", h.Update)
	r.Delete("/{id}", h.Delete)
	r.Post("/{id}/check", h.Check)
	r.Delete("/{id}/check", h.Uncheck)
	r.Put("/{id}/note", h.SaveNote)
	r.Get("/{id}/calendar", h.Calendar)

	return r
}
