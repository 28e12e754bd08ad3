package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"cardreg.backend/internal/config"
	"cardreg.backend/internal/interfaces/http/handlers"
	"cardreg.backend/internal/interfaces/http/middleware"
	"cardreg.backend/internal/metrics"
)

type routeDeps struct {
	registrationHandler *handlers.RegistrationHandler
	documentHandler     *handlers.DocumentHandler
	confirmationHandler *handlers.ConfirmationHandler
	optionsHandler      *handlers.OptionsHandler
}

func buildRouter(cfg *config.Config, m *metrics.Metrics, d routeDeps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.LoggerMiddleware())
	r.Use(middleware.MetricsMiddleware(m))

	registerHealthRoute(r)
	r.GET("/metrics", gin.WrapH(m.Handler()))

	registerWizardRoutes(r, cfg, d)
	registerAPIV1Routes(r, d)
	return r
}

func registerHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}

func registerWizardRoutes(r *gin.Engine, cfg *config.Config, d routeDeps) {
	secureCookies := cfg.Server.Env == "production"
	wizard := r.Group("/register")
	wizard.Use(middleware.SessionMiddleware(cfg.Session.TTL, secureCookies))
	{
		wizard.GET("", d.registrationHandler.Show)
		wizard.POST("", d.registrationHandler.Submit)
		wizard.GET("/document", d.documentHandler.Show)
		wizard.POST("/document", d.documentHandler.Submit)
		wizard.GET("/confirm", d.confirmationHandler.Show)
		wizard.POST("/confirm", d.confirmationHandler.Confirm)
		wizard.GET("/success", d.confirmationHandler.Success)
	}
}

func registerAPIV1Routes(r *gin.Engine, d routeDeps) {
	v1 := r.Group("/api/v1")
	{
		options := v1.Group("/options")
		{
			options.GET("/:group", d.optionsHandler.ListByGroup)
		}
	}
}
