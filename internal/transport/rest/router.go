package rest

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	_ "surveyform/docs"
	"surveyform/internal/service"
	"surveyform/internal/transport/rest/handler"
	"surveyform/internal/transport/rest/middleware"
	"surveyform/internal/transport/ws"
)

// LocalSurveysPath is where the in-memory survey store is mounted
const LocalSurveysPath = "/v1" + localSurveysPrefix

const localSurveysPrefix = "/local/surveys"

// Container holds all dependencies for the router
type Container struct {
	AuthService          *service.AuthService
	SurveyService        *service.SurveyService
	ResponseService      *service.ResponseService
	LocalSurveyService   *service.SurveyService
	LocalResponseService *service.ResponseService
	WSHub                *ws.Hub
	Logger               *zap.Logger

	StorageBackend string
	StorePing      func(ctx context.Context) error
	StoreTimeout   time.Duration
	CORSOrigins    string
}

// NewRouter creates the API router with all endpoints
func NewRouter(c *Container) http.Handler {
	r := mux.NewRouter()

	// Initialize handlers
	authHandler := handler.NewAuthHandler(c.AuthService, c.Logger)
	surveyHandler := handler.NewSurveyHandler(c.SurveyService, c.ResponseService, c.Logger, LocalSurveysPath)
	healthHandler := handler.NewHealthHandler(c.StorageBackend, c.StorePing)
	docsHandler := handler.NewDocsHandler(c.Logger)

	// Initialize middleware
	authMW := middleware.NewAuthMiddleware(c.AuthService, c.Logger)

	// CORS middleware (apply first)
	r.Use(corsMiddleware(c.CORSOrigins))
	r.Use(middleware.Logging(c.Logger))

	r.HandleFunc("/health", healthHandler.Health).Methods("GET")
	r.HandleFunc("/swagger/doc.json", docsHandler.Swagger).Methods("GET")

	// API v1 routes
	v1 := r.PathPrefix("/v1").Subrouter()
	v1.Use(middleware.Timeout(c.StoreTimeout))

	// Public routes
	v1.HandleFunc("/auth/register", authHandler.Register).Methods("POST", "OPTIONS")
	v1.HandleFunc("/auth/login", authHandler.Login).Methods("POST", "OPTIONS")

	// Authenticated routes
	userRoutes := v1.NewRoute().Subrouter()
	userRoutes.Use(authMW.RequireUser)
	userRoutes.HandleFunc("/auth/logout", authHandler.Logout).Methods("POST", "OPTIONS")
	userRoutes.HandleFunc("/auth/me", authHandler.Me).Methods("GET", "OPTIONS")

	mountSurveys(v1.PathPrefix("/surveys").Subrouter(), authMW, surveyHandler)

	if c.LocalSurveyService != nil && c.LocalResponseService != nil {
		localHandler := handler.NewSurveyHandler(c.LocalSurveyService, c.LocalResponseService, c.Logger, "")
		mountSurveys(v1.PathPrefix(localSurveysPrefix).Subrouter(), authMW, localHandler)
	}

	// WebSocket feed (token in query param)
	if c.WSHub != nil {
		wsHandler := ws.NewHandler(c.WSHub, c.AuthService, c.SurveyService, c.Logger)
		v1.HandleFunc("/ws/surveys/{surveyId}", wsHandler.SurveyFeed).Methods("GET")
	}

	return r
}

// mountSurveys registers the survey endpoints on a subrouter rooted at a surveys prefix
func mountSurveys(sr *mux.Router, authMW *middleware.AuthMiddleware, h *handler.SurveyHandler) {
	// Public routes
	sr.HandleFunc("", h.List).Methods("GET", "OPTIONS")
	sr.HandleFunc("/samples", h.Samples).Methods("GET", "OPTIONS")
	sr.HandleFunc("/{surveyId}", h.Get).Methods("GET", "OPTIONS")
	sr.HandleFunc("/{surveyId}/responses", h.SubmitResponse).Methods("POST", "OPTIONS")

	// Author routes (require a live session)
	authored := sr.NewRoute().Subrouter()
	authored.Use(authMW.RequireUser)
	authored.HandleFunc("", h.Create).Methods("POST", "OPTIONS")
	authored.HandleFunc("/{surveyId}", h.Update).Methods("PUT", "OPTIONS")
	authored.HandleFunc("/{surveyId}", h.Delete).Methods("DELETE", "OPTIONS")
	authored.HandleFunc("/{surveyId}/responses", h.ListResponses).Methods("GET", "OPTIONS")
}

func corsMiddleware(allowedOrigins string) mux.MiddlewareFunc {
	if allowedOrigins == "" {
		allowedOrigins = "*"
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", allowedOrigins)
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

			if r.Method == "OPTIONS" {
				w.WriteHeader(http.StatusOK)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
