package service

import (
	"context"

	"github.com/AmiraAbdelhalim/fyyur/internal/models"
	"gorm.io/gorm"
)

// --- Transactor ---

// passTransactor runs fn with a nil handle; the mock repositories ignore it.
type passTransactor struct {
	calls int
}

func (p *passTransactor) Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	p.calls++
	return fn(nil)
}

// --- Publisher ---

type publishedEvent struct {
	routingKey string
	payload    any
}

type recordingPublisher struct {
	events []publishedEvent
	err    error
}

func (p *recordingPublisher) Publish(routingKey string, payload any) error {
	p.events = append(p.events, publishedEvent{routingKey: routingKey, payload: payload})
	return p.err
}

// --- Mock VenueRepository ---

type mockVenueRepo struct {
	createFn        func(ctx context.Context, tx *gorm.DB, venue *models.Venue) error
	saveFn          func(ctx context.Context, tx *gorm.DB, venue *models.Venue) error
	deleteByIDFn    func(ctx context.Context, tx *gorm.DB, id uint) (int64, error)
	incrementFn     func(ctx context.Context, tx *gorm.DB, id uint, upcoming bool) error
	findByIDFn      func(ctx context.Context, tx *gorm.DB, id uint) (*models.Venue, error)
	findWithShowsFn func(ctx context.Context, id uint) (*models.Venue, error)
	findAllFn       func(ctx context.Context) ([]models.Venue, error)
	searchByNameFn  func(ctx context.Context, term string) ([]models.Venue, error)
	findRecentFn    func(ctx context.Context, limit int) ([]models.Venue, error)
}

func (m *mockVenueRepo) Create(ctx context.Context, tx *gorm.DB, venue *models.Venue) error {
	return m.createFn(ctx, tx, venue)
}
func (m *mockVenueRepo) Save(ctx context.Context, tx *gorm.DB, venue *models.Venue) error {
	return m.saveFn(ctx, tx, venue)
}
func (m *mockVenueRepo) DeleteByID(ctx context.Context, tx *gorm.DB, id uint) (int64, error) {
	return m.deleteByIDFn(ctx, tx, id)
}
func (m *mockVenueRepo) IncrementShowCount(ctx context.Context, tx *gorm.DB, id uint, upcoming bool) error {
	return m.incrementFn(ctx, tx, id, upcoming)
}
func (m *mockVenueRepo) FindByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Venue, error) {
	return m.findByIDFn(ctx, tx, id)
}
func (m *mockVenueRepo) FindWithShows(ctx context.Context, id uint) (*models.Venue, error) {
	return m.findWithShowsFn(ctx, id)
}
func (m *mockVenueRepo) FindAll(ctx context.Context) ([]models.Venue, error) {
	return m.findAllFn(ctx)
}
func (m *mockVenueRepo) SearchByName(ctx context.Context, term string) ([]models.Venue, error) {
	return m.searchByNameFn(ctx, term)
}
func (m *mockVenueRepo) FindRecent(ctx context.Context, limit int) ([]models.Venue, error) {
	return m.findRecentFn(ctx, limit)
}

// --- Mock ArtistRepository ---

type mockArtistRepo struct {
	createFn        func(ctx context.Context, tx *gorm.DB, artist *models.Artist) error
	saveFn          func(ctx context.Context, tx *gorm.DB, artist *models.Artist) error
	incrementFn     func(ctx context.Context, tx *gorm.DB, id uint, upcoming bool) error
	findByIDFn      func(ctx context.Context, tx *gorm.DB, id uint) (*models.Artist, error)
	findWithShowsFn func(ctx context.Context, id uint) (*models.Artist, error)
	findAllFn       func(ctx context.Context) ([]models.Artist, error)
	searchByNameFn  func(ctx context.Context, term string) ([]models.Artist, error)
	findRecentFn    func(ctx context.Context, limit int) ([]models.Artist, error)
}

func (m *mockArtistRepo) Create(ctx context.Context, tx *gorm.DB, artist *models.Artist) error {
	return m.createFn(ctx, tx, artist)
}
func (m *mockArtistRepo) Save(ctx context.Context, tx *gorm.DB, artist *models.Artist) error {
	return m.saveFn(ctx, tx, artist)
}
func (m *mockArtistRepo) IncrementShowCount(ctx context.Context, tx *gorm.DB, id uint, upcoming bool) error {
	return m.incrementFn(ctx, tx, id, upcoming)
}
func (m *mockArtistRepo) FindByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Artist, error) {
	return m.findByIDFn(ctx, tx, id)
}
func (m *mockArtistRepo) FindWithShows(ctx context.Context, id uint) (*models.Artist, error) {
	return m.findWithShowsFn(ctx, id)
}
func (m *mockArtistRepo) FindAll(ctx context.Context) ([]models.Artist, error) {
	return m.findAllFn(ctx)
}
func (m *mockArtistRepo) SearchByName(ctx context.Context, term string) ([]models.Artist, error) {
	return m.searchByNameFn(ctx, term)
}
func (m *mockArtistRepo) FindRecent(ctx context.Context, limit int) ([]models.Artist, error) {
	return m.findRecentFn(ctx, limit)
}

// --- Mock ShowRepository ---

type mockShowRepo struct {
	createFn  func(ctx context.Context, tx *gorm.DB, show *models.Show) error
	findAllFn func(ctx context.Context) ([]models.Show, error)
}

func (m *mockShowRepo) Create(ctx context.Context, tx *gorm.DB, show *models.Show) error {
	return m.createFn(ctx, tx, show)
}
func (m *mockShowRepo) FindAll(ctx context.Context) ([]models.Show, error) {
	return m.findAllFn(ctx)
}

// --- Mock ActivityRepository ---

type mockActivityRepo struct {
	recordFn     func(ctx context.Context, activity *models.Activity) error
	findRecentFn func(ctx context.Context, limit int) ([]models.Activity, error)
}

func (m *mockActivityRepo) Record(ctx context.Context, activity *models.Activity) error {
	return m.recordFn(ctx, activity)
}
func (m *mockActivityRepo) FindRecent(ctx context.Context, limit int) ([]models.Activity, error) {
	return m.findRecentFn(ctx, limit)
}
