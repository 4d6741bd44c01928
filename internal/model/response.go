package model

import "time"

// ResponseClassification is the LLM classifier's verdict for one response.
// The analysis pipeline treats it as an immutable input value.
type ResponseClassification struct {
	PrimaryForce       Force     `json:"primaryForce" bson:"primaryForce"`
	SecondaryForces    []Force   `json:"secondaryForces,omitempty" bson:"secondaryForces,omitempty"`
	ForceStrengthScore int       `json:"forceStrengthScore" bson:"forceStrengthScore"` // 1-5
	Confidence         int       `json:"confidence" bson:"confidence"`                 // 1-5
	Sentiment          Sentiment `json:"sentiment" bson:"sentiment"`
	Themes             []string  `json:"themes,omitempty" bson:"themes,omitempty"`
	Summary            string    `json:"summary,omitempty" bson:"summary,omitempty"`
}

// MatchesForce reports whether force is the primary or one of the secondary
// classifications
func (c *ResponseClassification) MatchesForce(force Force) bool {
	if c.PrimaryForce == force {
		return true
	}
	for _, f := range c.SecondaryForces {
		if f == force {
			return true
		}
	}
	return false
}

// SurveyResponse is a single submitted answer, with its classification once
// the classifier has run
type SurveyResponse struct {
	ID             string                  `json:"id" bson:"_id,omitempty"`
	SurveyID       string                  `json:"surveyId" bson:"surveyId"`
	QuestionID     string                  `json:"questionId" bson:"questionId"`
	OrgID          string                  `json:"orgId,omitempty" bson:"orgId,omitempty"`
	RespondentID   string                  `json:"respondentId,omitempty" bson:"respondentId,omitempty"`
	Text           string                  `json:"text" bson:"text"`
	Classification *ResponseClassification `json:"classification,omitempty" bson:"classification,omitempty"`
	SubmittedAt    time.Time               `json:"submittedAt" bson:"submittedAt"`
}

// ClassifiedResponse is the scoring input: a response ID plus its
// classification
type ClassifiedResponse struct {
	ResponseID     string                 `json:"responseId" bson:"responseId"`
	Classification ResponseClassification `json:"classification" bson:"classification"`
}
