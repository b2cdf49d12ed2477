package middleware

import (
	"errors"
	"net/http"

	"github.com/AmiraAbdelhalim/fyyur/internal/view"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// pageCatalog is implemented by renderers that can list their pages, such
// as *view.Renderer.
type pageCatalog interface {
	Has(name string) bool
}

func canRender(r echo.Renderer, page string) bool {
	if r == nil {
		return false
	}
	if pc, ok := r.(pageCatalog); ok {
		return pc.Has(page)
	}
	return true
}

// ErrorHandler renders the 404 and 500 pages and falls back to a JSON body
// for other codes or when no renderer is available.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	msg := http.StatusText(code)

	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
		if m, ok := he.Message.(string); ok {
			msg = m
		}
	}

	if code >= http.StatusInternalServerError {
		log.Error().Err(err).
			Str("request_id", c.Response().Header().Get(echo.HeaderXRequestID)).
			Str("method", c.Request().Method).
			Str("uri", c.Request().RequestURI).
			Msg("unhandled error")
	}

	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(code)
		return
	}

	var page string
	switch {
	case code == http.StatusNotFound:
		page = "errors/404.html"
	case code >= http.StatusInternalServerError:
		page = "errors/500.html"
	}

	if page != "" && canRender(c.Echo().Renderer, page) {
		rerr := c.Render(code, page, view.Page{Flashes: PopFlashes(c)})
		if rerr == nil {
			return
		}
		log.Error().Err(rerr).Str("template", page).Msg("render error page")
	}

	_ = c.JSON(code, map[string]string{"message": msg})
}
