package routes

import (
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/marks/internal/httpserver/deps"
	"github.com/MrSnakeDoc/marks/internal/httpserver/handlers"
	"github.com/MrSnakeDoc/marks/internal/httpserver/mw"
)

// RateLimit settings are injected through Configure before server.New
// runs RegisterAll; zero values leave the limiter disabled.
var rateLimitCfg mw.RateLimitConfig

// Configure sets the per-route middleware knobs that come from config.
func Configure(burst, perMin int) {
	rateLimitCfg = mw.RateLimitConfig{
		Burst:        burst,
		RefillPerMin: perMin,
		IdleTTL:      15 * time.Minute,
	}
}

func init() { Register(registerBookmarks) }

func registerBookmarks(r chi.Router, d deps.Deps) {
	r.Get("/bookmarks", handlers.ListBookmarks(d))

	limited := r.With(mw.RateLimit(rateLimitCfg))
	limited.Post("/bookmarks", handlers.CreateBookmark(d))
	limited.Delete("/bookmarks/{id}", handlers.DeleteBookmark(d))
}
