package model

import "time"

// ValidationRules describes what a good response to a question looks like.
// Generated from per-force templates when the question is first mapped.
type ValidationRules struct {
	RequiredKeywords  []string  `json:"requiredKeywords,omitempty" bson:"requiredKeywords,omitempty"`
	ExpectedSentiment Sentiment `json:"expectedSentiment,omitempty" bson:"expectedSentiment,omitempty"`
	MinResponseLength int       `json:"minResponseLength" bson:"minResponseLength"` // characters
	MaxResponseLength int       `json:"maxResponseLength" bson:"maxResponseLength"` // characters
	DomainRules       []string  `json:"domainRules,omitempty" bson:"domainRules,omitempty"`
}

// QuestionForceMapping binds a question to its expected JTBD force.
// Created lazily the first time a question is analyzed and reused afterwards.
type QuestionForceMapping struct {
	ID              string          `json:"id" bson:"_id,omitempty"`
	QuestionID      string          `json:"questionId" bson:"questionId"`
	OrgID           string          `json:"orgId,omitempty" bson:"orgId,omitempty"`
	TemplateID      string          `json:"templateId,omitempty" bson:"templateId,omitempty"`
	ExpectedForce   Force           `json:"expectedForce" bson:"expectedForce"`
	ConfidenceLevel int             `json:"confidenceLevel" bson:"confidenceLevel"` // 1-5
	Rationale       string          `json:"rationale" bson:"rationale"`
	ValidationRules ValidationRules `json:"validationRules" bson:"validationRules"`
	CreatedAt       time.Time       `json:"createdAt" bson:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt" bson:"updatedAt"`
}
