package handler

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"

	"github.com/AmiraAbdelhalim/fyyur/internal/dto"
	"github.com/AmiraAbdelhalim/fyyur/internal/middleware"
	"github.com/AmiraAbdelhalim/fyyur/internal/models"
	"github.com/AmiraAbdelhalim/fyyur/internal/view"
	"github.com/labstack/echo/v4"
)

// --- Recording renderer ---

type renderCall struct {
	name string
	page view.Page
}

type recordingRenderer struct {
	calls []renderCall
}

func (r *recordingRenderer) Render(w io.Writer, name string, data any, c echo.Context) error {
	page, _ := data.(view.Page)
	r.calls = append(r.calls, renderCall{name: name, page: page})
	_, err := io.WriteString(w, name)
	return err
}

func (r *recordingRenderer) last() renderCall {
	if len(r.calls) == 0 {
		return renderCall{}
	}
	return r.calls[len(r.calls)-1]
}

// --- Test harness ---

type testEnv struct {
	e        *echo.Echo
	renderer *recordingRenderer
	flasher  *middleware.Flasher
}

func newTestEnv() *testEnv {
	e := echo.New()
	r := &recordingRenderer{}
	e.Renderer = r
	e.Validator = dto.NewValidator()
	return &testEnv{e: e, renderer: r, flasher: middleware.NewFlasher(nil, nil)}
}

// call runs h for one request. id, when given, fills the :id path param.
func (env *testEnv) call(h echo.HandlerFunc, method, target string, form url.Values, id ...string) (*httptest.ResponseRecorder, error) {
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	req := httptest.NewRequest(method, target, body)
	if form != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	}
	rec := httptest.NewRecorder()
	c := env.e.NewContext(req, rec)
	if len(id) > 0 {
		c.SetParamNames("id")
		c.SetParamValues(id[0])
	}
	err := middleware.Flashes(env.flasher)(h)(c)
	return rec, err
}

// flashes decodes the flash cookie set on rec, as the next request would see it.
func (env *testEnv) flashes(rec *httptest.ResponseRecorder) []view.Flash {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, ck := range rec.Result().Cookies() {
		req.AddCookie(ck)
	}
	return env.flasher.Peek(req)
}

func httpCode(err error) int {
	if he, ok := err.(*echo.HTTPError); ok {
		return he.Code
	}
	return 0
}

// --- Mock VenueService ---

type mockVenueService struct {
	listFn    func(ctx context.Context) ([]dto.Area, error)
	searchFn  func(ctx context.Context, term string) (dto.SearchResult, error)
	getFn     func(ctx context.Context, id uint) (*dto.VenueDetail, error)
	getEditFn func(ctx context.Context, id uint) (*models.Venue, error)
	createFn  func(ctx context.Context, venue *models.Venue) error
	updateFn  func(ctx context.Context, id uint, apply func(*models.Venue)) (*models.Venue, error)
	deleteFn  func(ctx context.Context, id uint) error
}

func (m *mockVenueService) ListVenues(ctx context.Context) ([]dto.Area, error) {
	return m.listFn(ctx)
}
func (m *mockVenueService) SearchVenues(ctx context.Context, term string) (dto.SearchResult, error) {
	return m.searchFn(ctx, term)
}
func (m *mockVenueService) GetVenue(ctx context.Context, id uint) (*dto.VenueDetail, error) {
	return m.getFn(ctx, id)
}
func (m *mockVenueService) GetVenueForEdit(ctx context.Context, id uint) (*models.Venue, error) {
	return m.getEditFn(ctx, id)
}
func (m *mockVenueService) CreateVenue(ctx context.Context, venue *models.Venue) error {
	return m.createFn(ctx, venue)
}
func (m *mockVenueService) UpdateVenue(ctx context.Context, id uint, apply func(*models.Venue)) (*models.Venue, error) {
	return m.updateFn(ctx, id, apply)
}
func (m *mockVenueService) DeleteVenue(ctx context.Context, id uint) error {
	return m.deleteFn(ctx, id)
}

// --- Mock ArtistService ---

type mockArtistService struct {
	listFn    func(ctx context.Context) ([]dto.Summary, error)
	searchFn  func(ctx context.Context, term string) (dto.SearchResult, error)
	getFn     func(ctx context.Context, id uint) (*dto.ArtistDetail, error)
	getEditFn func(ctx context.Context, id uint) (*models.Artist, error)
	createFn  func(ctx context.Context, artist *models.Artist) error
	updateFn  func(ctx context.Context, id uint, apply func(*models.Artist)) (*models.Artist, error)
}

func (m *mockArtistService) ListArtists(ctx context.Context) ([]dto.Summary, error) {
	return m.listFn(ctx)
}
func (m *mockArtistService) SearchArtists(ctx context.Context, term string) (dto.SearchResult, error) {
	return m.searchFn(ctx, term)
}
func (m *mockArtistService) GetArtist(ctx context.Context, id uint) (*dto.ArtistDetail, error) {
	return m.getFn(ctx, id)
}
func (m *mockArtistService) GetArtistForEdit(ctx context.Context, id uint) (*models.Artist, error) {
	return m.getEditFn(ctx, id)
}
func (m *mockArtistService) CreateArtist(ctx context.Context, artist *models.Artist) error {
	return m.createFn(ctx, artist)
}
func (m *mockArtistService) UpdateArtist(ctx context.Context, id uint, apply func(*models.Artist)) (*models.Artist, error) {
	return m.updateFn(ctx, id, apply)
}

// --- Mock ShowService ---

type mockShowService struct {
	listFn    func(ctx context.Context) ([]dto.ShowListing, error)
	optionsFn func(ctx context.Context) (*dto.ShowFormOptions, error)
	createFn  func(ctx context.Context, show *models.Show) error
}

func (m *mockShowService) ListShows(ctx context.Context) ([]dto.ShowListing, error) {
	return m.listFn(ctx)
}
func (m *mockShowService) FormOptions(ctx context.Context) (*dto.ShowFormOptions, error) {
	return m.optionsFn(ctx)
}
func (m *mockShowService) CreateShow(ctx context.Context, show *models.Show) error {
	return m.createFn(ctx, show)
}

// --- Mock HomeService ---

type mockHomeService struct {
	homeFn func(ctx context.Context) (*dto.HomePage, error)
}

func (m *mockHomeService) Home(ctx context.Context) (*dto.HomePage, error) {
	return m.homeFn(ctx)
}
