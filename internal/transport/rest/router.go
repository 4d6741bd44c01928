package rest

import (
	"net/http"
	"os"

	"forcepulse/internal/service"
	"forcepulse/internal/transport/rest/handler"

	"github.com/gorilla/mux"
)

// Container holds all dependencies for the router
type Container struct {
	SurveyService     *service.SurveyService
	AnalysisService   *service.AnalysisService
	MapperService     *service.MapperService
	ValidatorService  *service.ValidatorService
	AggregatorService *service.AggregatorService
	Distributions     handler.DistributionReader
}

// NewRouter creates the API router with all endpoints
func NewRouter(c *Container) http.Handler {
	r := mux.NewRouter()

	surveyHandler := handler.NewSurveyHandler(c.SurveyService)
	analysisHandler := handler.NewAnalysisHandler(c.AnalysisService, c.MapperService, c.ValidatorService, c.AggregatorService, c.Distributions)

	r.Use(corsMiddleware)

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	v1 := r.PathPrefix("/v1").Subrouter()

	// Surveys and questions
	v1.HandleFunc("/surveys", surveyHandler.Create).Methods("POST", "OPTIONS")
	v1.HandleFunc("/surveys", surveyHandler.List).Methods("GET", "OPTIONS")
	v1.HandleFunc("/surveys/{surveyId}", surveyHandler.Get).Methods("GET", "OPTIONS")
	v1.HandleFunc("/surveys/{surveyId}/questions", surveyHandler.ListQuestions).Methods("GET", "OPTIONS")
	v1.HandleFunc("/surveys/{surveyId}/questions", surveyHandler.AddQuestion).Methods("POST", "OPTIONS")

	// Response ingest (classify + validate + refresh analytics)
	v1.HandleFunc("/surveys/{surveyId}/responses", analysisHandler.SubmitResponse).Methods("POST", "OPTIONS")

	// Force analysis
	v1.HandleFunc("/questions/{questionId}/mapping", analysisHandler.GetMapping).Methods("GET", "OPTIONS")
	v1.HandleFunc("/questions/{questionId}/validate", analysisHandler.ValidateResponse).Methods("POST", "OPTIONS")
	v1.HandleFunc("/surveys/{surveyId}/questions/{questionId}/distribution", analysisHandler.GetDistribution).Methods("GET", "OPTIONS")
	v1.HandleFunc("/surveys/{surveyId}/aggregate", analysisHandler.GetAggregate).Methods("GET", "OPTIONS")
	v1.HandleFunc("/surveys/{surveyId}/aggregate", analysisHandler.RecomputeAggregate).Methods("POST", "OPTIONS")
	v1.HandleFunc("/surveys/{surveyId}/completion", analysisHandler.GetCompletion).Methods("GET", "OPTIONS")

	return r
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowedOrigins := os.Getenv("CORS_ALLOWED_ORIGINS")
		if allowedOrigins == "" {
			allowedOrigins = "*"
		}

		allowedMethods := os.Getenv("CORS_ALLOWED_METHODS")
		if allowedMethods == "" {
			allowedMethods = "GET, POST, PUT, DELETE, OPTIONS"
		}

		allowedHeaders := os.Getenv("CORS_ALLOWED_HEADERS")
		if allowedHeaders == "" {
			allowedHeaders = "Content-Type, Authorization"
		}

		w.Header().Set("Access-Control-Allow-Origin", allowedOrigins)
		w.Header().Set("Access-Control-Allow-Methods", allowedMethods)
		w.Header().Set("Access-Control-Allow-Headers", allowedHeaders)

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
