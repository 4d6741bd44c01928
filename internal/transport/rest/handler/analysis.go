package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"forcepulse/internal/model"
	"forcepulse/internal/service"

	"github.com/gorilla/mux"
)

// DistributionReader reads stored force distributions. Satisfied by
// repository.AnalysisRepo.
type DistributionReader interface {
	GetDistribution(ctx context.Context, surveyID, questionID string) (*model.ForceDistribution, error)
}

// AnalysisHandler handles response ingest and force-analysis endpoints
type AnalysisHandler struct {
	analysisSvc   *service.AnalysisService
	mapperSvc     *service.MapperService
	validatorSvc  *service.ValidatorService
	aggregatorSvc *service.AggregatorService
	distributions DistributionReader
}

// NewAnalysisHandler creates a new analysis handler
func NewAnalysisHandler(
	analysisSvc *service.AnalysisService,
	mapperSvc *service.MapperService,
	validatorSvc *service.ValidatorService,
	aggregatorSvc *service.AggregatorService,
	distributions DistributionReader,
) *AnalysisHandler {
	return &AnalysisHandler{
		analysisSvc:   analysisSvc,
		mapperSvc:     mapperSvc,
		validatorSvc:  validatorSvc,
		aggregatorSvc: aggregatorSvc,
		distributions: distributions,
	}
}

// SubmitResponseRequest is the request body for submitting a response
type SubmitResponseRequest struct {
	QuestionID   string `json:"questionId"`
	OrgID        string `json:"orgId,omitempty"`
	RespondentID string `json:"respondentId,omitempty"`
	Text         string `json:"text"`
}

// SubmitResponse handles POST /v1/surveys/{surveyId}/responses
func (h *AnalysisHandler) SubmitResponse(w http.ResponseWriter, r *http.Request) {
	surveyID := mux.Vars(r)["surveyId"]

	var req SubmitResponseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.QuestionID == "" || req.Text == "" {
		writeError(w, http.StatusBadRequest, "questionId and text are required")
		return
	}

	analysis, err := h.analysisSvc.IngestResponse(r.Context(), &model.SurveyResponse{
		SurveyID:     surveyID,
		QuestionID:   req.QuestionID,
		OrgID:        req.OrgID,
		RespondentID: req.RespondentID,
		Text:         req.Text,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, analysis)
}

// GetMapping handles GET /v1/questions/{questionId}/mapping
func (h *AnalysisHandler) GetMapping(w http.ResponseWriter, r *http.Request) {
	questionID := mux.Vars(r)["questionId"]

	mapping, err := h.mapperSvc.LookupMapping(r.Context(), questionID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if mapping == nil {
		writeError(w, http.StatusNotFound, "question has not been mapped yet")
		return
	}

	writeJSON(w, http.StatusOK, mapping)
}

// ValidateResponseRequest is the request body for validating a response
type ValidateResponseRequest struct {
	Text           string                        `json:"text"`
	Classification *model.ResponseClassification `json:"classification"`
}

// ValidateResponse handles POST /v1/questions/{questionId}/validate
func (h *AnalysisHandler) ValidateResponse(w http.ResponseWriter, r *http.Request) {
	questionID := mux.Vars(r)["questionId"]

	var req ValidateResponseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Classification == nil {
		writeError(w, http.StatusBadRequest, "classification is required")
		return
	}

	result, err := h.validatorSvc.ValidateResponse(r.Context(), questionID, req.Text, req.Classification)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// GetDistribution handles GET /v1/surveys/{surveyId}/questions/{questionId}/distribution
func (h *AnalysisHandler) GetDistribution(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	dist, err := h.distributions.GetDistribution(r.Context(), vars["surveyId"], vars["questionId"])
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if dist == nil {
		writeError(w, http.StatusNotFound, "no distribution computed for this question yet")
		return
	}

	writeJSON(w, http.StatusOK, dist)
}

// GetAggregate handles GET /v1/surveys/{surveyId}/aggregate
func (h *AnalysisHandler) GetAggregate(w http.ResponseWriter, r *http.Request) {
	surveyID := mux.Vars(r)["surveyId"]

	agg, err := h.aggregatorSvc.GetAggregate(r.Context(), surveyID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if agg == nil {
		writeError(w, http.StatusNotFound, "no aggregate computed for this survey yet")
		return
	}

	writeJSON(w, http.StatusOK, agg)
}

// RecomputeAggregate handles POST /v1/surveys/{surveyId}/aggregate
func (h *AnalysisHandler) RecomputeAggregate(w http.ResponseWriter, r *http.Request) {
	surveyID := mux.Vars(r)["surveyId"]
	orgID := r.URL.Query().Get("orgId")

	agg, err := h.analysisSvc.RefreshSurveyAggregate(r.Context(), orgID, surveyID)
	if err != nil {
		if errors.Is(err, service.ErrNoResponses) {
			writeError(w, http.StatusConflict, "survey has no classified responses yet")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, agg)
}

// GetCompletion handles GET /v1/surveys/{surveyId}/completion
func (h *AnalysisHandler) GetCompletion(w http.ResponseWriter, r *http.Request) {
	surveyID := mux.Vars(r)["surveyId"]

	report, err := h.analysisSvc.CheckSurveyCompletion(r.Context(), surveyID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, report)
}
