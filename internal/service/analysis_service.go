package service

import (
	"context"
	"fmt"

	"forcepulse/internal/model"
	"forcepulse/internal/repository"

	"github.com/google/uuid"
)

// Classifier produces force classifications for responses. Satisfied by
// ClassifierService; tests substitute a deterministic fake.
type Classifier interface {
	ClassifyResponse(ctx context.Context, questionText, responseText string) (*model.ResponseClassification, error)
}

// AnalysisService runs the ingest pipeline: classify a submitted response,
// validate it against its question's rules, then refresh the question's
// distribution and the survey's aggregate.
type AnalysisService struct {
	questions    repository.QuestionRepo
	responses    repository.ResponseRepo
	mapper       *MapperService
	classifier   Classifier
	validator    *ValidatorService
	distribution *DistributionService
	aggregator   *AggregatorService
	completion   *CompletionService
}

// NewAnalysisService creates a new analysis service
func NewAnalysisService(
	questions repository.QuestionRepo,
	responses repository.ResponseRepo,
	mapper *MapperService,
	classifier Classifier,
	validator *ValidatorService,
	distribution *DistributionService,
	aggregator *AggregatorService,
	completion *CompletionService,
) *AnalysisService {
	return &AnalysisService{
		questions:    questions,
		responses:    responses,
		mapper:       mapper,
		classifier:   classifier,
		validator:    validator,
		distribution: distribution,
		aggregator:   aggregator,
		completion:   completion,
	}
}

// ResponseAnalysis bundles what the ingest pipeline produced for one
// response
type ResponseAnalysis struct {
	Response   *model.SurveyResponse   `json:"response"`
	Validation *model.ValidationResult `json:"validation"`
}

// IngestResponse classifies and stores one submitted response, validates it,
// and recomputes the affected distribution and aggregate. Each persistence
// step is an independent idempotent upsert, so retrying the whole call after
// a partial failure is safe and convergent.
func (s *AnalysisService) IngestResponse(ctx context.Context, response *model.SurveyResponse) (*ResponseAnalysis, error) {
	question, err := s.questions.GetByID(ctx, response.QuestionID)
	if err != nil {
		return nil, err
	}
	if question == nil {
		return nil, fmt.Errorf("question %s not found", response.QuestionID)
	}

	// Mapping is created lazily on first analysis of the question
	if _, err := s.mapper.MapQuestionToForce(ctx, question); err != nil {
		return nil, err
	}

	classification, err := s.classifier.ClassifyResponse(ctx, question.Text, response.Text)
	if err != nil {
		return nil, err
	}

	if response.ID == "" {
		response.ID = uuid.NewString()
	}
	if response.SurveyID == "" {
		response.SurveyID = question.SurveyID
	}
	response.Classification = classification
	if err := s.responses.Create(ctx, response); err != nil {
		return nil, err
	}

	validation, err := s.validator.ValidateResponse(ctx, question.ID, response.Text, classification)
	if err != nil {
		return nil, err
	}

	if _, err := s.RefreshQuestionDistribution(ctx, response.SurveyID, question.ID); err != nil {
		return nil, err
	}
	if _, err := s.RefreshSurveyAggregate(ctx, response.OrgID, response.SurveyID); err != nil {
		return nil, err
	}

	return &ResponseAnalysis{Response: response, Validation: validation}, nil
}

// RefreshQuestionDistribution recomputes and upserts the force distribution
// for one question from all of its classified responses
func (s *AnalysisService) RefreshQuestionDistribution(ctx context.Context, surveyID, questionID string) (*model.ForceDistribution, error) {
	responses, err := s.responses.GetByQuestionID(ctx, surveyID, questionID)
	if err != nil {
		return nil, err
	}
	return s.distribution.CalculateForceDistribution(ctx, surveyID, questionID, classifiedResponses(responses))
}

// RefreshSurveyAggregate recomputes and upserts the survey-level aggregate
// from all of the survey's classified responses
func (s *AnalysisService) RefreshSurveyAggregate(ctx context.Context, orgID, surveyID string) (*model.AggregateForceScore, error) {
	responses, err := s.responses.GetBySurveyID(ctx, surveyID)
	if err != nil {
		return nil, err
	}
	return s.aggregator.AggregateForceScores(ctx, orgID, surveyID, classifiedResponses(responses))
}

// CheckSurveyCompletion rates how well the survey's question set covers the
// five forces
func (s *AnalysisService) CheckSurveyCompletion(ctx context.Context, surveyID string) (*model.ForceCompletionReport, error) {
	questions, err := s.questions.GetBySurveyID(ctx, surveyID)
	if err != nil {
		return nil, err
	}
	return s.completion.ValidateForceCompletion(ctx, questions)
}

// classifiedResponses filters to responses the classifier has processed
func classifiedResponses(responses []*model.SurveyResponse) []model.ClassifiedResponse {
	classified := make([]model.ClassifiedResponse, 0, len(responses))
	for _, r := range responses {
		if r.Classification == nil {
			continue
		}
		classified = append(classified, model.ClassifiedResponse{
			ResponseID:     r.ID,
			Classification: *r.Classification,
		})
	}
	return classified
}
