package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/dstasiak/habitflow/internal/auth"
	"github.com/dstasiak/habitflow/internal/community"
	"github.com/dstasiak/habitflow/internal/habit"
	"github.com/dstasiak/habitflow/internal/middlewares"
	"github.com/dstasiak/habitflow/internal/user"
)

type RouterConfig struct {
	UserHandler      *user.Handler
	HabitHandler     *habit.Handler
	CommunityHandler *community.Handler
}

func New(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middlewares.CorsMiddleware)
	r.Use(middlewares.MetricsMiddleware)

	r.Get("/swagger/*", httpSwagger.WrapHandler)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", cfg.UserHandler.Register)
		r.Post("/login", cfg.UserHandler.Login)
	})

	r.Group(func(r chi.Router) {
		r.Use(auth.AuthMiddleware)

		r.Mount("/users", user.Routes(cfg.UserHandler))
		r.Mount("/habits", habit.Routes(cfg.HabitHandler, cfg.CommunityHandler))
	})
	return r
}
