package httpapi

import (
	"net/http"
	"time"

	"promptgate/internal/http/handlers"
	"promptgate/internal/middleware"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

// RouterOptions holds the cross-cutting settings of the HTTP surface.
type RouterOptions struct {
	CORSOrigins     []string
	RateLimitPerMin int
}

func NewRouter(app *handlers.App, opts RouterOptions) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.RequestID,
		chimw.RealIP,
		middleware.Logger(app.Logger),
		chimw.Recoverer,
		middleware.CORS(opts.CORSOrigins),
	)
	r.NotFound(app.NotFound)
	r.MethodNotAllowed(app.MethodNotAllowed)

	r.Get("/health", app.Health)

	r.Route("/api", func(r chi.Router) {
		r.Post("/adapt/{model}", app.Adapt)
		r.Get("/providers", app.Providers)
		r.Get("/vocabulary", app.Vocabulary)
		r.Get("/schema/base-prompt", app.BasePromptSchema)
		r.Get("/schema/z-image-prompt", app.ZImagePromptSchema)
		r.Post("/assemble-prompt", app.AssemblePrompt)

		// Model-backed endpoints, limited per client IP.
		r.Group(func(r chi.Router) {
			r.Use(middleware.RateLimit(opts.RateLimitPerMin, time.Minute, app.RateLimited))
			r.Post("/text-to-base", app.TextToBase)
			r.Post("/image-to-base", app.ImageToBase)
			r.Post("/text-to-prompt", app.TextToPrompt)
			r.Post("/image-to-json", app.ImageToJSON)
		})

		r.Route("/library/{kind}", func(r chi.Router) {
			r.Get("/", app.LibraryList)
			r.Post("/", app.LibraryCreate)
			r.Get("/{id}", app.LibraryGet)
			r.Delete("/{id}", app.LibraryDelete)
		})
	})

	return r
}
