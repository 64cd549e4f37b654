package main

import (
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/dstasiak/habitflow/internal/config"
	"github.com/dstasiak/habitflow/internal/container"
	"github.com/dstasiak/habitflow/internal/router"
)

func main() {
	c := container.New()

	r := router.New(router.RouterConfig{
		UserHandler:      c.UserContainer.Handler,
		HabitHandler:     c.HabitContainer.Handler,
		CommunityHandler: c.CommunityContainer.Handler,
	})

	addr := ":" + config.Getenv("PORT", "8080")
	logrus.WithField("addr", addr).Info("Starting HTTP server")
	if err := http.ListenAndServe(addr, r); err != nil {
		logrus.WithError(err).Fatal("HTTP server stopped")
	}
}
