package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"auction-web/internal/session"
	"auction-web/services/web/handler"
	"auction-web/services/web/helpers"
)

// SetupRouter configures all Gin routes for the application. templateGlob
// points at the page templates, relative to the working directory.
func SetupRouter(api handler.AuctionAPI, sessions session.Store, templateGlob string) *gin.Engine {
	router := gin.New() // New router without default middleware for full control over middleware and logging

	router.Use(gin.Recovery())          // recover from panics
	router.Use(RequestIDMiddleware)     // request id for log correlation
	router.Use(RequestLoggerMiddleware) // custom request logging

	router.SetFuncMap(helpers.TemplateFuncs())
	router.LoadHTMLGlob(templateGlob)

	pages := handler.NewPageHandler(api, sessions)

	router.GET("/", pages.HomeHandler)
	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	auctions := router.Group("/auctions")
	{
		auctions.GET("/new", pages.NewAuctionFormHandler)
		auctions.POST("", pages.CreateAuctionHandler)
		auctions.GET("/:auction_id", pages.AuctionDetailHandler)
		auctions.POST("/:auction_id/bids", pages.PlaceBidHandler)
	}

	router.GET("/search", pages.SearchHandler)

	router.GET("/login", pages.LoginPageHandler)
	router.POST("/login", pages.LoginHandler)
	router.POST("/signup", pages.SignupHandler)
	router.POST("/logout", pages.LogoutHandler)

	return router
}
