package routes

import (
	"net/http"

	_ "github.com/Dosada05/matchup-generator/docs" // swagger spec
	"github.com/Dosada05/matchup-generator/handlers"
	"github.com/Dosada05/matchup-generator/middleware"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware" // Alias to avoid conflict
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Handlers struct {
	Health    *handlers.HealthHandler
	Team      *handlers.TeamHandler
	Player    *handlers.PlayerHandler
	Settings  *handlers.SettingsHandler
	Matchup   *handlers.MatchupHandler
	Match     *handlers.MatchHandler
	WebSocket *handlers.WebSocketHandler
	// MCP is optional; nil disables /mcp
	MCP http.Handler
}

type Options struct {
	AllowedOrigins []string
	SecureCookies  bool
}

func SetupRoutes(router chi.Router, h Handlers, opts Options) {
	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.RealIP)
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)

	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "Mcp-Session-Id"},
		ExposedHeaders:   []string{"Mcp-Session-Id"},
		AllowCredentials: true, // cookie сессии
		MaxAge:           300,
	}))

	router.Handle("/metrics", promhttp.Handler())
	router.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))
	if h.MCP != nil {
		router.Handle("/mcp", h.MCP)
	}

	router.Route("/api", func(r chi.Router) {
		r.Get("/health", h.Health.Health)
		r.Get("/ready", h.Health.Ready)

		// Каталог и история общие для всех, сессия не нужна
		r.Get("/teams", h.Team.ListTeams)
		r.Put("/teams/{teamID}/logo", h.Team.UploadLogo)

		r.Route("/players", func(r chi.Router) {
			r.Get("/", h.Player.ListPlayers)
			r.Post("/", h.Player.CreatePlayer)
			r.Patch("/{playerID}", h.Player.RenamePlayer)
		})

		r.Route("/matches", func(r chi.Router) {
			r.Get("/today", h.Match.TodayMatches)
			r.Post("/", h.Match.RecordMatch)
			r.Post("/refresh", h.Match.RefreshHistory)
			r.Put("/{matchID}/score", h.Match.UpdateScore)
			r.Delete("/{matchID}", h.Match.DeleteMatch)
		})

		r.Get("/standings/today", h.Match.TodayStandings)
		r.Get("/ws", h.WebSocket.ServeWs)

		// Настройки и текущая пара живут в сессии браузера
		r.Group(func(r chi.Router) {
			r.Use(middleware.Session(opts.SecureCookies))

			r.Get("/teams/search", h.Team.SearchTeams)
			r.Get("/teams/leagues", h.Team.ListLeagues)

			r.Get("/settings", h.Settings.GetSettings)
			r.Put("/settings", h.Settings.SaveSettings)

			r.Route("/matchup", func(r chi.Router) {
				r.Get("/", h.Matchup.GetMatchup)
				r.Post("/generate", h.Matchup.GenerateMatchup)
				r.Put("/sides/{side}", h.Matchup.EditSide)
			})
		})
	})
}
