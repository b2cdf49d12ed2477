package handler

import (
	"net/http"
	"strconv"

	"github.com/AmiraAbdelhalim/fyyur/internal/middleware"
	"github.com/AmiraAbdelhalim/fyyur/internal/view"
	"github.com/labstack/echo/v4"
)

// render wraps data in a view.Page and attaches any pending flash messages.
func render(c echo.Context, code int, name, title string, data any) error {
	return c.Render(code, name, view.Page{
		Title:   title,
		Flashes: middleware.PopFlashes(c),
		Data:    data,
	})
}

// parseID reads the :id path param. Anything that is not a positive integer
// is treated as an unknown page.
func parseID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, echo.NewHTTPError(http.StatusNotFound, "not found")
	}
	return uint(id), nil
}

func redirect(c echo.Context, to string) error {
	return c.Redirect(http.StatusSeeOther, to)
}

func flashSuccess(c echo.Context, msg string) {
	middleware.AddFlash(c, view.FlashSuccess, msg)
}

func flashError(c echo.Context, msg string) {
	middleware.AddFlash(c, view.FlashError, msg)
}
