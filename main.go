package main

import (
	"os"

	"auction-web/internal/apiclient"
	"auction-web/internal/config"
	"auction-web/internal/server"
	"auction-web/internal/session"
	"auction-web/utils"
)

func main() {
	cfg := config.Load()
	utils.SetLevel(cfg.LogLevel)

	api := apiclient.New(cfg.APIBaseURL)
	sessions := session.NewCookieStore(cfg.SessionCookie)

	router := server.SetupRouter(api, sessions, "web/templates/*.tmpl")

	utils.Info("starting auction web frontend", map[string]any{
		"addr":    cfg.Addr(),
		"api_url": cfg.APIBaseURL,
	})
	if err := router.Run(cfg.Addr()); err != nil {
		utils.Error("server stopped", map[string]any{"error": err.Error()})
		os.Exit(1)
	}
}
