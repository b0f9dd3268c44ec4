package httpapi

import (
	stdhttp "net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"dreamreel/internal/http/handlers"
	"dreamreel/internal/infra/geoip"
	"dreamreel/internal/middleware"
)

// Options carries the router's cross-cutting configuration.
type Options struct {
	AllowedOrigins  []string
	RateLimitPerMin int
	Countries       geoip.CountryResolver
	// StaticDir, when set, is served under /static so filesystem-stored
	// uploads resolve at their public URLs.
	StaticDir string
}

func NewRouter(app *handlers.App, opts Options) stdhttp.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, chimw.RealIP, chimw.Recoverer)
	r.Use(middleware.Logger(app.Logger, opts.Countries))
	r.Use(middleware.CORS(opts.AllowedOrigins))
	if opts.RateLimitPerMin > 0 {
		r.Use(middleware.RateLimit(opts.RateLimitPerMin, time.Minute))
	}

	r.Get("/v1/healthz", app.Health)

	if opts.StaticDir != "" {
		fs := stdhttp.StripPrefix("/static/", stdhttp.FileServer(stdhttp.Dir(opts.StaticDir)))
		r.Handle("/static/*", fs)
	}

	r.Route("/v1/dreams", func(r chi.Router) {
		r.Get("/current", app.DreamCurrent)
		r.Post("/", app.DreamCreate)
		r.Put("/{id}", app.DreamUpdate)
		r.Delete("/{id}", app.DreamDelete)
	})

	return r
}
