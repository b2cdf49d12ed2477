package middleware

import (
	"net/http"
	"strings"

	"github.com/AmiraAbdelhalim/fyyur/internal/view"
	"github.com/gorilla/securecookie"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

const (
	flashCookie = "_flash"
	flasherKey  = "flasher"
	pendingKey  = "flashes.pending"
)

// Flasher keeps one-shot messages in a signed, encrypted cookie so they
// survive the redirect that follows a form submission.
type Flasher struct {
	sc *securecookie.SecureCookie
}

// NewFlasher uses random keys when hashKey or blockKey is empty. Random
// keys do not survive a restart, which only drops pending messages.
func NewFlasher(hashKey, blockKey []byte) *Flasher {
	if len(hashKey) == 0 {
		hashKey = securecookie.GenerateRandomKey(32)
	}
	if len(blockKey) == 0 {
		blockKey = securecookie.GenerateRandomKey(32)
	}
	return &Flasher{sc: securecookie.New(hashKey, blockKey)}
}

// Flashes makes f available to AddFlash and PopFlashes.
func Flashes(f *Flasher) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set(flasherKey, f)
			return next(c)
		}
	}
}

// Peek decodes the messages carried by r without consuming them. A
// tampered or stale cookie reads as empty.
func (f *Flasher) Peek(r *http.Request) []view.Flash {
	cookie, err := r.Cookie(flashCookie)
	if err != nil {
		return nil
	}
	var flashes []view.Flash
	if err := f.sc.Decode(flashCookie, cookie.Value, &flashes); err != nil {
		return nil
	}
	return flashes
}

func (f *Flasher) add(c echo.Context, flash view.Flash) error {
	pending, ok := c.Get(pendingKey).([]view.Flash)
	if !ok {
		pending = f.Peek(c.Request())
	}
	pending = append(pending, flash)

	encoded, err := f.sc.Encode(flashCookie, pending)
	if err != nil {
		return err
	}
	c.Set(pendingKey, pending)
	replaceCookie(c, &http.Cookie{
		Name:     flashCookie,
		Value:    encoded,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

func (f *Flasher) pop(c echo.Context) []view.Flash {
	flashes, ok := c.Get(pendingKey).([]view.Flash)
	if !ok {
		flashes = f.Peek(c.Request())
	}
	if len(flashes) == 0 {
		return nil
	}
	c.Set(pendingKey, []view.Flash{})
	replaceCookie(c, &http.Cookie{
		Name:     flashCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
	return flashes
}

// replaceCookie drops any Set-Cookie already queued for ck.Name so the
// response carries a single flash cookie.
func replaceCookie(c echo.Context, ck *http.Cookie) {
	h := c.Response().Header()
	var kept []string
	for _, v := range h.Values(echo.HeaderSetCookie) {
		if !strings.HasPrefix(v, ck.Name+"=") {
			kept = append(kept, v)
		}
	}
	h.Del(echo.HeaderSetCookie)
	for _, v := range kept {
		h.Add(echo.HeaderSetCookie, v)
	}
	c.SetCookie(ck)
}

// AddFlash queues a message for the next rendered page. It is a no-op when
// the Flashes middleware is not installed.
func AddFlash(c echo.Context, category, message string) {
	f, ok := c.Get(flasherKey).(*Flasher)
	if !ok {
		return
	}
	if err := f.add(c, view.Flash{Category: category, Message: message}); err != nil {
		log.Error().Err(err).Msg("encode flash cookie")
	}
}

// PopFlashes returns and clears the queued messages.
func PopFlashes(c echo.Context) []view.Flash {
	f, ok := c.Get(flasherKey).(*Flasher)
	if !ok {
		return nil
	}
	return f.pop(c)
}
