package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	coachhandler "github.com/zhouzirui/speakit/backend/internal/handler/coach"
	"github.com/zhouzirui/speakit/backend/internal/handler/live"
	sessionhandler "github.com/zhouzirui/speakit/backend/internal/handler/session"
	middlewarePkg "github.com/zhouzirui/speakit/backend/internal/middleware"
	sessionmodel "github.com/zhouzirui/speakit/backend/internal/model/session"
	"github.com/zhouzirui/speakit/backend/internal/service/analyzer"
	coachservice "github.com/zhouzirui/speakit/backend/internal/service/coach"
	"github.com/zhouzirui/speakit/backend/pkg/utils"
)

// NewRouter wires HTTP routes to core services.
func NewRouter(store sessionmodel.Store, provider analyzer.Provider, quick analyzer.QuickProvider, coachSvc *coachservice.Service) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middlewarePkg.CORS)

	// Create handlers
	sessionHandler := sessionhandler.New(store, provider)
	coachHandler := coachhandler.New(coachSvc)
	liveHandler := live.New(quick)

	r.Route("/api", func(api chi.Router) {
		api.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
			utils.RespondJSON(w, http.StatusOK, map[string]string{
				"status":  "OK",
				"message": "SpeakIt backend is running",
			})
		})

		// Register session and progress routes
		sessionHandler.RegisterRoutes(api)

		// Register coaching routes
		coachHandler.RegisterRoutes(api)

		// Register realtime feedback websocket
		liveHandler.RegisterRoutes(api)
	})

	return r
}
