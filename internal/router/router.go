package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"drive-file-copy/internal/config"
	"drive-file-copy/internal/handler"
	"drive-file-copy/internal/middleware"
)

type Handlers struct {
	Auth    *handler.AuthHandler
	Catalog *handler.CatalogHandler
	Files   *handler.FilesHandler
	Copy    *handler.CopyHandler
	Events  *handler.EventsHandler
	Health  *handler.HealthHandler
}

// New assembles the HTTP surface. authMiddleware is nil when no operator
// passphrase is configured; the API then runs open.
func New(cfg *config.Config, authMiddleware *middleware.AuthMiddleware, h Handlers) http.Handler {
	r := chi.NewRouter()
	rateLimitMiddleware := middleware.NewRateLimitMiddleware(cfg.RateLimitRPM, cfg.AuthRateLimitRPM)

	r.Use(middleware.Recovery)
	r.Use(middleware.Logging)
	r.Use(middleware.CORS(cfg.CORSOrigins))
	r.Use(rateLimitMiddleware.Handler)

	r.Get("/health", h.Health.Health)

	guard := func(next http.Handler) http.Handler { return next }
	if authMiddleware != nil {
		guard = authMiddleware.RequireAuth
	}

	r.Route("/api/v1", func(api chi.Router) {
		if h.Auth != nil {
			api.With(middleware.Timeout(cfg.RequestTimeout)).Post("/auth/login", h.Auth.Login)
		}

		// Content downloads and the event stream are long-lived and must not
		// pass through the buffering timeout handler.
		api.Group(func(stream chi.Router) {
			stream.Use(guard)
			stream.With(middleware.StreamingTimeout(cfg.StreamMaxDuration, cfg.StreamIdleTimeout)).
				Get("/files/{fileID}/content", h.Files.GetContent)
			stream.Get("/events", h.Events.Stream)
		})

		api.Group(func(g chi.Router) {
			g.Use(middleware.Timeout(cfg.RequestTimeout))
			g.Use(guard)

			g.Get("/catalog", h.Catalog.GetCatalog)
			g.Get("/folders/{folderID}/files", h.Files.ListFiles)
			g.Post("/folders/{folderID}/resolve", h.Files.ResolveNames)
			g.Get("/files/{fileID}/meta", h.Files.GetMetadata)
			g.Post("/copies", h.Copy.StartCopy)
			g.Get("/copies", h.Copy.ListBatches)
			g.Get("/copies/{batchID}", h.Copy.GetBatch)
		})
	})

	return r
}
