package handler

import (
	"errors"
	"net/http"

	"github.com/AmiraAbdelhalim/fyyur/internal/dto"
	"github.com/AmiraAbdelhalim/fyyur/internal/service"
	"github.com/AmiraAbdelhalim/fyyur/internal/view"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

type ShowHandler struct {
	svc service.ShowService
}

func NewShowHandler(svc service.ShowService) *ShowHandler {
	return &ShowHandler{svc: svc}
}

func (h *ShowHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/shows")
	g.GET("", h.ListShows)
	g.GET("/create", h.CreateShowForm)
	g.POST("/create", h.CreateShow)
}

func (h *ShowHandler) ListShows(c echo.Context) error {
	shows, err := h.svc.ListShows(c.Request().Context())
	if err != nil {
		return err
	}
	return render(c, http.StatusOK, "pages/shows.html", "Shows", shows)
}

func (h *ShowHandler) CreateShowForm(c echo.Context) error {
	return h.renderForm(c, http.StatusOK, dto.ShowForm{}, "")
}

func (h *ShowHandler) CreateShow(c echo.Context) error {
	var form dto.ShowForm
	if err := c.Bind(&form); err != nil {
		return h.renderForm(c, http.StatusBadRequest, form, "artist_id and venue_id must be numeric ids")
	}
	if err := c.Validate(&form); err != nil {
		return h.renderForm(c, http.StatusBadRequest, form, err.Error())
	}

	show, err := form.NewShow()
	if err != nil {
		return h.renderForm(c, http.StatusBadRequest, form, err.Error())
	}

	if err := h.svc.CreateShow(c.Request().Context(), show); err != nil {
		if !errors.Is(err, service.ErrPersistence) {
			return err
		}
		log.Error().Err(err).Uint("venue_id", form.VenueID).Uint("artist_id", form.ArtistID).Msg("create show")
		flashError(c, "An error occurred. Show could not be listed.")
		return redirect(c, "/")
	}

	flashSuccess(c, "Show was successfully listed!")
	return redirect(c, "/")
}

func (h *ShowHandler) renderForm(c echo.Context, code int, form dto.ShowForm, formErr string) error {
	opts, err := h.svc.FormOptions(c.Request().Context())
	if err != nil {
		return err
	}
	return render(c, code, "forms/show.html", "New show", view.FormData{Form: form, Options: opts, Error: formErr})
}
