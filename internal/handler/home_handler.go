package handler

import (
	"net/http"

	"github.com/AmiraAbdelhalim/fyyur/internal/service"
	"github.com/labstack/echo/v4"
)

type HomeHandler struct {
	svc service.HomeService
}

func NewHomeHandler(svc service.HomeService) *HomeHandler {
	return &HomeHandler{svc: svc}
}

func (h *HomeHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/", h.Home)
	e.GET("/health", h.Health)
}

func (h *HomeHandler) Home(c echo.Context) error {
	page, err := h.svc.Home(c.Request().Context())
	if err != nil {
		return err
	}
	return render(c, http.StatusOK, "pages/home.html", "Fyyur", page)
}

func (h *HomeHandler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok", "service": "fyyur"})
}
