package http

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
	"github.com/talkweave/forum-backend-go/internal/handler/http/middleware"
	"github.com/talkweave/forum-backend-go/internal/pkg/jwt"
)

func NewRouter(
	jwtService jwt.Service,
	frontendURL string,
	env string,
	authHandler AuthHandler,
	pageHandler PageHandler,
	categoryHandler CategoryHandler,
	notfPrefHandler NotfPrefHandler,
	memberHandler MemberHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "forum-backend"),
		slog.String("version", "v1.0.0"),
		slog.String("env", env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{frontendURL},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authHandler.Register)
			r.Post("/refresh", authHandler.RefreshToken)
			r.Post("/logout", authHandler.Logout)
			r.Route("/oauth/callback", func(r chi.Router) {
				r.Get("/google", authHandler.OAuthCallbackGoogle)
			})

			r.Route("/login", func(r chi.Router) {
				r.Post("/", authHandler.Login)
				r.Route("/oauth", func(r chi.Router) {
					r.Get("/google", authHandler.LoginWithGoogle)
				})
			})
		})

		// Public reads
		r.Get("/notf-levels", notfPrefHandler.ListLevels)
		r.Get("/categories", categoryHandler.List)
		r.Get("/categories/{slug}", categoryHandler.GetBySlug)

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Route("/pages", func(r chi.Router) {
				r.Get("/", pageHandler.ListPages)
				r.Post("/", pageHandler.CreatePage)

				r.Route("/{pageID}", func(r chi.Router) {
					r.Get("/", pageHandler.GetPage)
					r.Post("/posts", pageHandler.Reply)
					r.Put("/posts/{postID}", pageHandler.EditPost)
					r.Delete("/posts/{postID}", pageHandler.DeletePost)

					r.Get("/notf-pref", notfPrefHandler.ResolveForPage)

					// Admin only
					r.Group(func(r chi.Router) {
						r.Use(middleware.AdminOnly)
						r.Post("/posts/{postID}/approve", pageHandler.ApprovePost)
						r.Delete("/", pageHandler.DeletePage)
						r.Post("/restore", pageHandler.RestorePage)
					})
				})
			})

			r.Get("/me", memberHandler.Me)
			r.Get("/groups", memberHandler.ListGroups)

			r.Route("/me/notf-prefs", func(r chi.Router) {
				r.Get("/", notfPrefHandler.ListPreferences)
				r.Put("/", notfPrefHandler.SetPreference)
				r.Delete("/", notfPrefHandler.RemovePreference)
				r.Get("/effective", notfPrefHandler.ResolveForPages)
				r.Get("/site", notfPrefHandler.ResolveForSite)
			})

			// Admin only
			r.Group(func(r chi.Router) {
				r.Use(middleware.AdminOnly)
				r.Post("/categories", categoryHandler.Create)
			})
		})
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok\n"))
	})

	return r
}
