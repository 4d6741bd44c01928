package service

import (
	"context"
	"fmt"

	"forcepulse/internal/model"
	"forcepulse/internal/repository"

	"github.com/google/uuid"
)

// SurveyService handles survey and question management
type SurveyService struct {
	surveys   repository.SurveyRepo
	questions repository.QuestionRepo
}

// NewSurveyService creates a new survey service
func NewSurveyService(surveys repository.SurveyRepo, questions repository.QuestionRepo) *SurveyService {
	return &SurveyService{
		surveys:   surveys,
		questions: questions,
	}
}

// CreateSurvey stores a new survey with its questions
func (s *SurveyService) CreateSurvey(ctx context.Context, survey *model.Survey, questions []*model.Question) (*model.Survey, error) {
	if survey.ID == "" {
		survey.ID = uuid.NewString()
	}
	if survey.Status == "" {
		survey.Status = model.SurveyStatusDraft
	}
	if err := s.surveys.Create(ctx, survey); err != nil {
		return nil, err
	}

	for i, q := range questions {
		if q.ID == "" {
			q.ID = uuid.NewString()
		}
		q.SurveyID = survey.ID
		q.OrgID = survey.OrgID
		q.TemplateID = survey.TemplateID
		q.Position = i + 1
		if err := s.questions.Create(ctx, q); err != nil {
			return nil, err
		}
	}
	return survey, nil
}

// GetSurvey returns one survey by ID
func (s *SurveyService) GetSurvey(ctx context.Context, id string) (*model.Survey, error) {
	survey, err := s.surveys.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if survey == nil {
		return nil, fmt.Errorf("survey %s not found", id)
	}
	return survey, nil
}

// ListSurveys returns all surveys for an organization
func (s *SurveyService) ListSurveys(ctx context.Context, orgID string) ([]*model.Survey, error) {
	return s.surveys.GetByOrgID(ctx, orgID)
}

// ListQuestions returns a survey's questions in position order
func (s *SurveyService) ListQuestions(ctx context.Context, surveyID string) ([]*model.Question, error) {
	return s.questions.GetBySurveyID(ctx, surveyID)
}

// AddQuestion appends one question to a survey
func (s *SurveyService) AddQuestion(ctx context.Context, surveyID string, question *model.Question) (*model.Question, error) {
	survey, err := s.GetSurvey(ctx, surveyID)
	if err != nil {
		return nil, err
	}

	existing, err := s.questions.GetBySurveyID(ctx, surveyID)
	if err != nil {
		return nil, err
	}

	if question.ID == "" {
		question.ID = uuid.NewString()
	}
	question.SurveyID = survey.ID
	question.OrgID = survey.OrgID
	question.TemplateID = survey.TemplateID
	question.Position = len(existing) + 1
	if err := s.questions.Create(ctx, question); err != nil {
		return nil, err
	}
	return question, nil
}
