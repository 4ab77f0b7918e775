package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"pokemon-api/internal/config"
	"pokemon-api/internal/http/landing"
	httpopenapi "pokemon-api/internal/http/openapi"
	"pokemon-api/internal/model"
	"pokemon-api/internal/pokemon"
	"pokemon-api/internal/upstream"
)

const (
	apiTitle   = "Pokemon API"
	apiVersion = "1.0.0"
)

// Fetcher retrieves a raw upstream pokemon payload.
type Fetcher interface {
	Fetch(ctx context.Context, identifier string) ([]byte, error)
}

// App wires the handlers to their collaborators. It keeps no request state.
type App struct {
	Cfg      config.Config
	Upstream Fetcher
	Log      *zap.Logger
}

type generalQuery struct {
	Name string `form:"name" binding:"required"`
}

type pokemonURI struct {
	ID string `uri:"id" binding:"required"`
}

func NewApp(cfg config.Config, up Fetcher, log *zap.Logger) *App {
	if log == nil {
		log = zap.NewNop()
	}
	return &App{Cfg: cfg, Upstream: up, Log: log}
}

func (a *App) generalHandler(c *gin.Context) {
	var q generalQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		WriteJSONError(c, http.StatusBadRequest, "query parameter name is required")
		return
	}
	raw, ok := a.lookup(c, q.Name)
	if !ok {
		return
	}
	ref, err := pokemon.ToRef(raw)
	if err != nil {
		a.writeError(c, q.Name, err)
		return
	}
	c.JSON(http.StatusOK, ref)
}

func (a *App) getPokemonHandler(c *gin.Context) {
	var uri pokemonURI
	if err := c.ShouldBindUri(&uri); err != nil {
		WriteJSONError(c, http.StatusBadRequest, "path parameter id is required")
		return
	}
	raw, ok := a.lookup(c, uri.ID)
	if !ok {
		return
	}
	detail, err := pokemon.ToDetail(raw)
	if err != nil {
		a.writeError(c, uri.ID, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

func (a *App) updatePokemonHandler(c *gin.Context) {
	var uri pokemonURI
	if err := c.ShouldBindUri(&uri); err != nil {
		WriteJSONError(c, http.StatusBadRequest, "path parameter id is required")
		return
	}
	var req model.PokemonUpdateRequest
	if err := c.ShouldBindBodyWithJSON(&req); err != nil {
		WriteJSONError(c, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
		return
	}
	if !singleJSONObject(c) {
		WriteJSONError(c, http.StatusBadRequest, "invalid request body: expected one JSON object")
		return
	}
	raw, ok := a.lookup(c, uri.ID)
	if !ok {
		return
	}
	detail, err := pokemon.ApplyOverrides(raw, req)
	if err != nil {
		a.writeError(c, uri.ID, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

// singleJSONObject reports whether the body cached by the JSON binding is
// exactly one object. The binding decoder stops after the first value.
func singleJSONObject(c *gin.Context) bool {
	v, ok := c.Get(gin.BodyBytesKey)
	if !ok {
		return false
	}
	body, _ := v.([]byte)
	return json.Valid(body) && bytes.HasPrefix(bytes.TrimSpace(body), []byte("{"))
}

// lookup performs the single upstream call for a request. On failure the
// error response has already been written.
func (a *App) lookup(c *gin.Context, id string) (pokemon.Raw, bool) {
	body, err := a.Upstream.Fetch(c.Request.Context(), id)
	if err != nil {
		a.writeError(c, id, err)
		return pokemon.Raw{}, false
	}
	raw, err := pokemon.Decode(body)
	if err != nil {
		a.writeError(c, id, err)
		return pokemon.Raw{}, false
	}
	return raw, true
}

func (a *App) writeError(c *gin.Context, id string, err error) {
	var se *upstream.StatusError
	status, detail := http.StatusBadGateway, upstream.FailureMessage
	switch {
	case errors.As(err, &se):
		status, detail = se.StatusCode, se.Message()
	case errors.Is(err, pokemon.ErrMalformed):
		status, detail = http.StatusInternalServerError, pokemon.ErrMalformed.Error()
	}
	a.Log.Warn("lookup_failed",
		zap.String("identifier", id),
		zap.Int("status", status),
		zap.String("request_id", RequestIDFromContext(c)),
		zap.Error(err),
	)
	WriteJSONError(c, status, detail)
}

func (a *App) indexHandler(c *gin.Context) {
	c.HTML(http.StatusOK, landing.IndexTemplate, landing.Page{Title: apiTitle, Version: apiVersion})
}

func (a *App) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (a *App) openapiHandler(c *gin.Context) {
	c.Data(http.StatusOK, "application/yaml", httpopenapi.YAML)
}

func (a *App) docsHandler(c *gin.Context) {
	html := `<!doctype html>
<html>
  <head>
    <meta charset="utf-8" />
    <title>` + apiTitle + ` docs</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5/swagger-ui.css" />
  </head>
  <body>
    <div id="swagger-ui"></div>
    <script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
    <script>
      window.ui = SwaggerUIBundle({
        url: '/openapi.yaml',
        dom_id: '#swagger-ui'
      });
    </script>
  </body>
</html>`
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(html))
}
