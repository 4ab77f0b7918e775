package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"pokemon-api/internal/http/landing"
)

// NewRouter registers HTTP routes and returns the engine with middleware.
// The gin mode is process-wide and is set by the caller before this runs.
func NewRouter(app *App) *gin.Engine {
	r := gin.New()
	r.HandleMethodNotAllowed = true
	r.Use(gin.Recovery(), WithRequestID(), WithLogging(app.Log), WithSecurityHeaders(), WithCORS())

	r.SetHTMLTemplate(landing.Templates())
	r.StaticFS("/static", landing.Static())
	r.GET("/", app.indexHandler)

	api := r.Group("/api")
	{
		api.GET("/general", app.generalHandler)
		api.GET("/pokemon/:id", app.getPokemonHandler)
		api.POST("/pokemon/:id", app.updatePokemonHandler)
	}

	r.GET("/healthz", app.healthHandler)
	r.GET("/openapi.yaml", app.openapiHandler)
	r.GET("/docs", app.docsHandler)

	r.NoRoute(func(c *gin.Context) {
		WriteJSONError(c, http.StatusNotFound, "not found")
	})
	r.NoMethod(func(c *gin.Context) {
		WriteJSONError(c, http.StatusMethodNotAllowed, "method not allowed")
	})
	return r
}
