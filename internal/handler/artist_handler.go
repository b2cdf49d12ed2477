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

type ArtistHandler struct {
	svc service.ArtistService
}

func NewArtistHandler(svc service.ArtistService) *ArtistHandler {
	return &ArtistHandler{svc: svc}
}

func (h *ArtistHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/artists")
	g.GET("", h.ListArtists)
	g.POST("/search", h.SearchArtists)
	g.GET("/create", h.CreateArtistForm)
	g.POST("/create", h.CreateArtist)
	g.GET("/:id", h.GetArtist)
	g.GET("/:id/edit", h.EditArtistForm)
	g.POST("/:id/edit", h.UpdateArtist)
}

func (h *ArtistHandler) ListArtists(c echo.Context) error {
	artists, err := h.svc.ListArtists(c.Request().Context())
	if err != nil {
		return err
	}
	return render(c, http.StatusOK, "pages/artists.html", "Artists", artists)
}

func (h *ArtistHandler) SearchArtists(c echo.Context) error {
	var req dto.SearchRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid search form")
	}

	results, err := h.svc.SearchArtists(c.Request().Context(), req.SearchTerm)
	if err != nil {
		return err
	}
	return render(c, http.StatusOK, "pages/search.html", "Search artists", view.SearchData{
		Kind:       "artist",
		SearchTerm: req.SearchTerm,
		Results:    results,
	})
}

func (h *ArtistHandler) GetArtist(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	artist, err := h.svc.GetArtist(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrArtistNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		return err
	}
	return render(c, http.StatusOK, "pages/show_artist.html", artist.Name, artist)
}

func (h *ArtistHandler) CreateArtistForm(c echo.Context) error {
	return render(c, http.StatusOK, "forms/artist.html", "New artist", view.FormData{Form: dto.NewArtistForm()})
}

func (h *ArtistHandler) CreateArtist(c echo.Context) error {
	var form dto.ArtistForm
	if err := c.Bind(&form); err != nil {
		return render(c, http.StatusBadRequest, "forms/artist.html", "New artist", view.FormData{Form: form, Error: "the form could not be read"})
	}
	if err := c.Validate(&form); err != nil {
		return render(c, http.StatusBadRequest, "forms/artist.html", "New artist", view.FormData{Form: form, Error: err.Error()})
	}

	artist := form.NewArtist()
	if err := h.svc.CreateArtist(c.Request().Context(), artist); err != nil {
		if !errors.Is(err, service.ErrPersistence) {
			return err
		}
		log.Error().Err(err).Str("artist", form.Name).Msg("create artist")
		flashError(c, "An error occurred. Artist "+form.Name+" could not be listed.")
		return redirect(c, "/")
	}

	flashSuccess(c, "Artist "+artist.Name+" was successfully listed!")
	return redirect(c, "/")
}

func (h *ArtistHandler) EditArtistForm(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	artist, err := h.svc.GetArtistForEdit(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrArtistNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		return err
	}
	return render(c, http.StatusOK, "forms/artist.html", "Edit artist", view.FormData{ID: id, Form: dto.ArtistFormFrom(artist)})
}

func (h *ArtistHandler) UpdateArtist(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	var form dto.ArtistForm
	if err := c.Bind(&form); err != nil {
		return h.rejectEdit(c, id, form, "the form could not be read")
	}
	if err := c.Validate(&form); err != nil {
		return h.rejectEdit(c, id, form, err.Error())
	}

	detail := "/artists/" + strconv.FormatUint(uint64(id), 10)
	artist, err := h.svc.UpdateArtist(c.Request().Context(), id, form.ApplyTo)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrArtistNotFound):
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrPersistence):
			log.Error().Err(err).Uint("artist_id", id).Msg("update artist")
			flashError(c, "An error occurred. Artist "+form.Name+" could not be updated.")
			return redirect(c, detail)
		default:
			return err
		}
	}

	flashSuccess(c, "Artist "+artist.Name+" was successfully updated!")
	return redirect(c, detail)
}

func (h *ArtistHandler) rejectEdit(c echo.Context, id uint, form dto.ArtistForm, msg string) error {
	if _, err := h.svc.GetArtistForEdit(c.Request().Context(), id); err != nil {
		if errors.Is(err, service.ErrArtistNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		return err
	}
	return render(c, http.StatusBadRequest, "forms/artist.html", "Edit artist", view.FormData{ID: id, Form: form, Error: msg})
}
