package handler

import (
	"encoding/json"
	"net/http"

	"forcepulse/internal/model"
	"forcepulse/internal/service"

	"github.com/gorilla/mux"
)

// SurveyHandler handles survey and question endpoints
type SurveyHandler struct {
	surveySvc *service.SurveyService
}

// NewSurveyHandler creates a new survey handler
func NewSurveyHandler(surveySvc *service.SurveyService) *SurveyHandler {
	return &SurveyHandler{surveySvc: surveySvc}
}

// CreateSurveyRequest is the request body for creating a survey
type CreateSurveyRequest struct {
	OrgID       string            `json:"orgId"`
	Title       string            `json:"title"`
	Description string            `json:"description,omitempty"`
	Questions   []*model.Question `json:"questions,omitempty"`
}

// Create handles POST /v1/surveys
func (h *SurveyHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateSurveyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.OrgID == "" || req.Title == "" {
		writeError(w, http.StatusBadRequest, "orgId and title are required")
		return
	}

	survey := &model.Survey{
		OrgID:       req.OrgID,
		Title:       req.Title,
		Description: req.Description,
	}
	created, err := h.surveySvc.CreateSurvey(r.Context(), survey, req.Questions)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

// List handles GET /v1/surveys?orgId=...
func (h *SurveyHandler) List(w http.ResponseWriter, r *http.Request) {
	orgID := r.URL.Query().Get("orgId")
	if orgID == "" {
		writeError(w, http.StatusBadRequest, "orgId query parameter is required")
		return
	}

	surveys, err := h.surveySvc.ListSurveys(r.Context(), orgID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"surveys": surveys})
}

// Get handles GET /v1/surveys/{surveyId}
func (h *SurveyHandler) Get(w http.ResponseWriter, r *http.Request) {
	surveyID := mux.Vars(r)["surveyId"]

	survey, err := h.surveySvc.GetSurvey(r.Context(), surveyID)
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, survey)
}

// ListQuestions handles GET /v1/surveys/{surveyId}/questions
func (h *SurveyHandler) ListQuestions(w http.ResponseWriter, r *http.Request) {
	surveyID := mux.Vars(r)["surveyId"]

	questions, err := h.surveySvc.ListQuestions(r.Context(), surveyID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"questions": questions})
}

// AddQuestionRequest is the request body for adding a question
type AddQuestionRequest struct {
	Text     string `json:"text"`
	Category string `json:"category,omitempty"`
}

// AddQuestion handles POST /v1/surveys/{surveyId}/questions
func (h *SurveyHandler) AddQuestion(w http.ResponseWriter, r *http.Request) {
	surveyID := mux.Vars(r)["surveyId"]

	var req AddQuestionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Text == "" {
		writeError(w, http.StatusBadRequest, "text is required")
		return
	}

	question, err := h.surveySvc.AddQuestion(r.Context(), surveyID, &model.Question{
		Text:     req.Text,
		Category: req.Category,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, question)
}
