package model

import "time"

// SurveyStatus tracks a survey through its lifecycle
type SurveyStatus string

const (
	SurveyStatusDraft  SurveyStatus = "draft"
	SurveyStatusActive SurveyStatus = "active"
	SurveyStatusClosed SurveyStatus = "closed"
)

// Survey is an AI-readiness survey owned by an organization
type Survey struct {
	ID          string       `json:"id" bson:"_id,omitempty"`
	OrgID       string       `json:"orgId" bson:"orgId"`
	TemplateID  string       `json:"templateId,omitempty" bson:"templateId,omitempty"`
	Title       string       `json:"title" bson:"title"`
	Description string       `json:"description,omitempty" bson:"description,omitempty"`
	Status      SurveyStatus `json:"status" bson:"status"`
	CreatedAt   time.Time    `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt" bson:"updatedAt"`
}

// Question is a free-text survey question. Its expected force lives in the
// question's QuestionForceMapping, created on first analysis.
type Question struct {
	ID         string    `json:"id" bson:"_id,omitempty"`
	SurveyID   string    `json:"surveyId" bson:"surveyId"`
	OrgID      string    `json:"orgId,omitempty" bson:"orgId,omitempty"`
	TemplateID string    `json:"templateId,omitempty" bson:"templateId,omitempty"`
	Text       string    `json:"text" bson:"text"`
	Category   string    `json:"category,omitempty" bson:"category,omitempty"`
	Position   int       `json:"position" bson:"position"`
	CreatedAt  time.Time `json:"createdAt" bson:"createdAt"`
}
