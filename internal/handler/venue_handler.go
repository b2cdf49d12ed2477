package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/AmiraAbdelhalim/fyyur/internal/dto"
	"github.com/AmiraAbdelhalim/fyyur/internal/service"
	"github.com/AmiraAbdelhalim/fyyur/internal/view"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

type VenueHandler struct {
	svc service.VenueService
}

func NewVenueHandler(svc service.VenueService) *VenueHandler {
	return &VenueHandler{svc: svc}
}

func (h *VenueHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/venues")
	g.GET("", h.ListVenues)
	g.POST("/search", h.SearchVenues)
	g.GET("/create", h.CreateVenueForm)
	g.POST("/create", h.CreateVenue)
	g.GET("/:id", h.GetVenue)
	g.DELETE("/:id", h.DeleteVenue)
	g.POST("/:id/delete", h.DeleteVenue)
	g.GET("/:id/edit", h.EditVenueForm)
	g.POST("/:id/edit", h.UpdateVenue)
}

func (h *VenueHandler) ListVenues(c echo.Context) error {
	areas, err := h.svc.ListVenues(c.Request().Context())
	if err != nil {
		return err
	}
	return render(c, http.StatusOK, "pages/venues.html", "Venues", areas)
}

func (h *VenueHandler) SearchVenues(c echo.Context) error {
	var req dto.SearchRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid search form")
	}

	results, err := h.svc.SearchVenues(c.Request().Context(), req.SearchTerm)
	if err != nil {
		return err
	}
	return render(c, http.StatusOK, "pages/search.html", "Search venues", view.SearchData{
		Kind:       "venue",
		SearchTerm: req.SearchTerm,
		Results:    results,
	})
}

func (h *VenueHandler) GetVenue(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	venue, err := h.svc.GetVenue(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrVenueNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		return err
	}
	return render(c, http.StatusOK, "pages/show_venue.html", venue.Name, venue)
}

func (h *VenueHandler) CreateVenueForm(c echo.Context) error {
	return render(c, http.StatusOK, "forms/venue.html", "New venue", view.FormData{Form: dto.NewVenueForm()})
}

func (h *VenueHandler) CreateVenue(c echo.Context) error {
	var form dto.VenueForm
	if err := c.Bind(&form); err != nil {
		return render(c, http.StatusBadRequest, "forms/venue.html", "New venue", view.FormData{Form: form, Error: "the form could not be read"})
	}
	if err := c.Validate(&form); err != nil {
		return render(c, http.StatusBadRequest, "forms/venue.html", "New venue", view.FormData{Form: form, Error: err.Error()})
	}

	venue := form.NewVenue()
	if err := h.svc.CreateVenue(c.Request().Context(), venue); err != nil {
		if !errors.Is(err, service.ErrPersistence) {
			return err
		}
		log.Error().Err(err).Str("venue", form.Name).Msg("create venue")
		flashError(c, "An error occurred. Venue "+form.Name+" could not be listed.")
		return redirect(c, "/")
	}

	flashSuccess(c, "Venue "+venue.Name+" was successfully listed!")
	return redirect(c, "/")
}

func (h *VenueHandler) EditVenueForm(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	venue, err := h.svc.GetVenueForEdit(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrVenueNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		return err
	}
	return render(c, http.StatusOK, "forms/venue.html", "Edit venue", view.FormData{ID: id, Form: dto.VenueFormFrom(venue)})
}

func (h *VenueHandler) UpdateVenue(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	var form dto.VenueForm
	if err := c.Bind(&form); err != nil {
		return h.rejectEdit(c, id, form, "the form could not be read")
	}
	if err := c.Validate(&form); err != nil {
		return h.rejectEdit(c, id, form, err.Error())
	}

	detail := venuePath(id)
	venue, err := h.svc.UpdateVenue(c.Request().Context(), id, form.ApplyTo)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrVenueNotFound):
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrPersistence):
			log.Error().Err(err).Uint("venue_id", id).Msg("update venue")
			flashError(c, "An error occurred. Venue "+form.Name+" could not be updated.")
			return redirect(c, detail)
		default:
			return err
		}
	}

	flashSuccess(c, "Venue "+venue.Name+" was successfully updated!")
	return redirect(c, detail)
}

// rejectEdit re-renders an invalid edit form, unless the venue is gone, in
// which case the request is a 404 like any other edit of an unknown id.
func (h *VenueHandler) rejectEdit(c echo.Context, id uint, form dto.VenueForm, msg string) error {
	if _, err := h.svc.GetVenueForEdit(c.Request().Context(), id); err != nil {
		if errors.Is(err, service.ErrVenueNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		return err
	}
	return render(c, http.StatusBadRequest, "forms/venue.html", "Edit venue", view.FormData{ID: id, Form: form, Error: msg})
}

// DeleteVenue serves both DELETE /venues/:id and the HTML form fallback.
func (h *VenueHandler) DeleteVenue(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	if err := h.svc.DeleteVenue(c.Request().Context(), id); err != nil {
		if !errors.Is(err, service.ErrPersistence) {
			return err
		}
		log.Error().Err(err).Uint("venue_id", id).Msg("delete venue")
		flashError(c, "An error occurred. Venue could not be deleted.")
		return redirect(c, venuePath(id))
	}

	flashSuccess(c, "Venue was successfully deleted!")
	return redirect(c, "/")
}

func venuePath(id uint) string {
	return "/venues/" + strconv.FormatUint(uint64(id), 10)
}
