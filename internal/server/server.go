package server

import (
	"github.com/AmiraAbdelhalim/fyyur/internal/dto"
	"github.com/AmiraAbdelhalim/fyyur/internal/handler"
	"github.com/AmiraAbdelhalim/fyyur/internal/middleware"
	"github.com/AmiraAbdelhalim/fyyur/internal/service"
	"github.com/labstack/echo/v4"
	echoMw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Services struct {
	Venues  service.VenueService
	Artists service.ArtistService
	Shows   service.ShowService
	Home    service.HomeService
}

// New assembles the echo instance: middleware, error pages, every route
// and the Prometheus endpoint.
func New(svcs Services, renderer echo.Renderer, flasher *middleware.Flasher) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Renderer = renderer
	e.Validator = dto.NewValidator()
	e.HTTPErrorHandler = middleware.ErrorHandler

	e.Use(middleware.RequestID())
	e.Use(middleware.RequestLogger())
	e.Use(echoMw.Recover())
	e.Use(middleware.Flashes(flasher))

	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	handler.NewHomeHandler(svcs.Home).RegisterRoutes(e)
	handler.NewVenueHandler(svcs.Venues).RegisterRoutes(e)
	handler.NewArtistHandler(svcs.Artists).RegisterRoutes(e)
	handler.NewShowHandler(svcs.Shows).RegisterRoutes(e)

	return e
}
