package rest

import (
	"net/http"
	"os"

	"github.com/gorilla/mux"

	"github.com/tarundeepakjain/Quintz/internal/service"
	"github.com/tarundeepakjain/Quintz/internal/transport/rest/handler"
	"github.com/tarundeepakjain/Quintz/internal/transport/rest/middleware"
	"github.com/tarundeepakjain/Quintz/internal/transport/ws"
)

// Container holds all dependencies for the router
type Container struct {
	AuthService       *service.AuthService
	QuestionPool      *service.QuestionPool
	QuizCatalog       *service.QuizCatalog
	SubmissionService *service.SubmissionService
	Tracker           *service.PerformanceTracker
	WSHub             *ws.Hub
}

// NewRouter creates the API router with all endpoints
func NewRouter(c *Container) http.Handler {
	r := mux.NewRouter()

	// Initialize handlers
	authHandler := handler.NewAuthHandler(c.AuthService)
	userHandler := handler.NewUserHandler(c.AuthService, c.Tracker)
	questionHandler := handler.NewQuestionHandler(c.QuestionPool)
	quizHandler := handler.NewQuizHandler(c.QuizCatalog, c.AuthService)
	resultHandler := handler.NewResultHandler(c.SubmissionService, c.QuizCatalog, c.AuthService)
	wsHandler := ws.NewHandler(c.WSHub, c.AuthService, c.QuizCatalog)

	authMW := middleware.NewAuthMiddleware(c.AuthService)

	r.Use(corsMiddleware)

	// Public routes
	r.HandleFunc("/signup", authHandler.Signup).Methods("POST", "OPTIONS")
	r.HandleFunc("/login", authHandler.Login).Methods("POST", "OPTIONS")

	// WebSocket route (token in query param)
	r.HandleFunc("/ws/quizzes/{quizId}", wsHandler.WatchQuiz).Methods("GET")

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	// Authenticated routes
	authed := r.NewRoute().Subrouter()
	authed.Use(authMW.RequireAuth)

	authed.HandleFunc("/profile", userHandler.Profile).Methods("GET", "OPTIONS")
	authed.HandleFunc("/edit-profile", userHandler.EditProfile).Methods("POST", "OPTIONS")
	authed.HandleFunc("/change-password", userHandler.ChangePassword).Methods("POST", "OPTIONS")

	authed.HandleFunc("/add-questions", questionHandler.AddQuestions).Methods("POST", "OPTIONS")
	authed.HandleFunc("/tags", questionHandler.Tags).Methods("GET", "OPTIONS")

	authed.HandleFunc("/create-quiz", quizHandler.Create).Methods("POST", "OPTIONS")
	authed.HandleFunc("/quizzes", quizHandler.List).Methods("GET", "OPTIONS")
	authed.HandleFunc("/past-quizzes", quizHandler.PastQuizzes).Methods("GET", "OPTIONS")
	authed.HandleFunc("/quiz/submit", resultHandler.Submit).Methods("POST", "OPTIONS")
	authed.HandleFunc("/quiz/{quizId}", quizHandler.Get).Methods("GET", "OPTIONS")
	authed.HandleFunc("/quiz/{quizId}", quizHandler.Edit).Methods("PUT", "OPTIONS")
	authed.HandleFunc("/quiz/{quizId}", quizHandler.Delete).Methods("DELETE", "OPTIONS")
	authed.HandleFunc("/quiz-results/{quizId}", resultHandler.Results).Methods("GET", "OPTIONS")

	return r
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowedOrigins := os.Getenv("CORS_ALLOWED_ORIGINS")
		if allowedOrigins == "" {
			allowedOrigins = "*"
		}

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
