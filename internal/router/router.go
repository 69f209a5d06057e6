package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/sbilibin2017/filmtrack/internal/handlers"
	"github.com/sbilibin2017/filmtrack/internal/middlewares"
	httpSwagger "github.com/swaggo/http-swagger"
)

// Handlers groups the HTTP handlers mounted by New.
type Handlers struct {
	Register      http.HandlerFunc
	Login         http.HandlerFunc
	Me            http.HandlerFunc
	Logout        http.HandlerFunc
	CreateMovie   http.HandlerFunc
	ListMovies    http.HandlerFunc
	GetMovie      http.HandlerFunc
	UpdateMovie   http.HandlerFunc
	DeleteMovie   http.HandlerFunc
	ToggleWatched http.HandlerFunc
}

// Options configures the router.
type Options struct {
	// AllowedOrigins for CORS; empty means any origin.
	AllowedOrigins []string
	// SwaggerURL is the location of doc.json served to the Swagger UI.
	SwaggerURL string
}

// New builds the application router. Everything except registration, login,
// health and the API docs sits behind auth.
func New(h Handlers, auth func(http.Handler) http.Handler, opts Options) http.Handler {
	origins := opts.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)
	r.Use(middlewares.LoggingMiddleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Public routes
	r.Get("/health", handlers.NewHealthHandler())
	r.Post("/auth/register", h.Register)
	r.Post("/auth/login", h.Login)
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL(opts.SwaggerURL)))

	// Protected routes
	r.Group(func(r chi.Router) {
		r.Use(auth)

		r.Get("/auth/me", h.Me)
		r.Post("/auth/logout", h.Logout)

		r.Route("/movies", func(r chi.Router) {
			r.Post("/", h.CreateMovie)
			r.Get("/", h.ListMovies)
			r.Get("/{id}", h.GetMovie)
			r.Put("/{id}", h.UpdateMovie)
			r.Delete("/{id}", h.DeleteMovie)
			r.Put("/{id}/toggle-watched", h.ToggleWatched)
		})
	})

	return r
}
