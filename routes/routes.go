package routes

import (
	"net/http"

	"github.com/ImVadimush/brawl-stars-tournament-bot/handlers"
	"github.com/ImVadimush/brawl-stars-tournament-bot/middleware"
	"github.com/ImVadimush/brawl-stars-tournament-bot/models"
	"github.com/ImVadimush/brawl-stars-tournament-bot/services"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"
)

func SetupRoutes(
	router *chi.Mux,
	auth services.AuthService,
	authHandler *handlers.AuthHandler,
	playerHandler *handlers.PlayerHandler,
	tournamentHandler *handlers.TournamentHandler,
	scheduleHandler *handlers.ScheduleHandler,
	webSocketHandler *handlers.WebSocketHandler,
) {
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status": "ok"}`))
	})

	router.Post("/auth/token", authHandler.IssueToken)

	router.Get("/ws", webSocketHandler.ServeWs)

	router.Get("/swagger/doc.json", handlers.SwaggerDoc)
	router.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	// Публичные чтения.
	router.Get("/leaderboard/{category}", playerHandler.Leaderboard)
	router.Get("/stats", playerHandler.Totals)

	router.Route("/players/{id}", func(r chi.Router) {
		r.Get("/", playerHandler.Profile)

		r.Group(func(r chi.Router) {
			r.Use(middleware.Authenticate(auth))
			r.Post("/trophies", playerHandler.SetTrophies)
			r.Post("/clan", playerHandler.SetClan)

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireRole(models.RoleOwner))
				r.Post("/role", playerHandler.GrantRole)
			})
		})
	})

	router.Route("/chats/{chatID}", func(r chi.Router) {
		r.Get("/tournaments/current", tournamentHandler.Current)
		r.Get("/tournaments/current/bracket", tournamentHandler.Bracket)
		r.Get("/tournaments/current/matches", tournamentHandler.ActiveMatches)

		r.Group(func(r chi.Router) {
			r.Use(middleware.Authenticate(auth))

			r.Post("/tournaments/current/join", tournamentHandler.Join)
			r.Post("/tournaments/current/leave", tournamentHandler.Leave)
			r.Post("/tournaments/current/start", tournamentHandler.Start)
			r.Post("/schedules/{id}/vote", scheduleHandler.Vote)

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireRole(models.RoleModerator))
				r.Post("/tournaments/current/matches/{matchID}/winner", tournamentHandler.RecordWin)
			})

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireRole(models.RoleAdmin))
				r.Post("/tournaments", tournamentHandler.Create)
				r.Post("/schedules", scheduleHandler.Create)
			})
		})
	})
}
