package model

import "time"

// ForceScoreResult is the rollup for one force over a set of classified
// responses. Derived on demand, never cached across calls.
type ForceScoreResult struct {
	AverageScore   float64       `json:"averageScore" bson:"averageScore"`     // 1-5, 0 when no responses
	TotalResponses int           `json:"totalResponses" bson:"totalResponses"` // responses matching the force
	Confidence     float64       `json:"confidence" bson:"confidence"`         // 1-5, 0 when no responses
	Strength       ForceStrength `json:"strength" bson:"strength"`
}

// ForceDeviation is one unexpected force that showed up strongly in a
// question's responses
type ForceDeviation struct {
	Force             Force    `json:"force" bson:"force"`
	Percentage        int      `json:"percentage" bson:"percentage"`
	SampleResponseIDs []string `json:"sampleResponseIds,omitempty" bson:"sampleResponseIds,omitempty"`
}

// DeviationAnalysis explains where and why responses drifted from the
// expected force
type DeviationAnalysis struct {
	PrimaryDeviations []ForceDeviation `json:"primaryDeviations,omitempty" bson:"primaryDeviations,omitempty"`
	Reasons           []string         `json:"reasons,omitempty" bson:"reasons,omitempty"`
	Recommendations   []string         `json:"recommendations,omitempty" bson:"recommendations,omitempty"`
}

// ForceDistribution is the per-question spread of classified primary forces.
// Percentages are rounded independently per force and are not guaranteed to
// sum to exactly 100.
type ForceDistribution struct {
	SurveyID           string            `json:"surveyId" bson:"surveyId"`
	QuestionID         string            `json:"questionId" bson:"questionId"`
	ExpectedForce      Force             `json:"expectedForce" bson:"expectedForce"`
	ActualDistribution map[Force]int     `json:"actualDistribution" bson:"actualDistribution"` // percent, 0-100
	TotalResponses     int               `json:"totalResponses" bson:"totalResponses"`
	AccuracyScore      int               `json:"accuracyScore" bson:"accuracyScore"` // 0-100
	DeviationAnalysis  DeviationAnalysis `json:"deviationAnalysis" bson:"deviationAnalysis"`
	UpdatedAt          time.Time         `json:"updatedAt" bson:"updatedAt"`
}

// ForceBalance splits the survey's force scores into push, resistance and
// neutral components
type ForceBalance struct {
	PushForces       float64 `json:"pushForces" bson:"pushForces"`             // avg of pain_of_old and pull_of_new
	ResistanceForces float64 `json:"resistanceForces" bson:"resistanceForces"` // avg of anchors_to_old and anxiety_of_new
	NeutralForces    float64 `json:"neutralForces" bson:"neutralForces"`       // demographic
}

// AggregateForceScore is the survey-level force rollup, one row per survey
type AggregateForceScore struct {
	SurveyID      string                     `json:"surveyId" bson:"surveyId"`
	OrgID         string                     `json:"orgId,omitempty" bson:"orgId,omitempty"`
	OverallScores map[Force]ForceScoreResult `json:"overallScores" bson:"overallScores"`
	TopThemes     map[Force][]string         `json:"topThemes,omitempty" bson:"topThemes,omitempty"`
	DominantForce Force                      `json:"dominantForce" bson:"dominantForce"`
	ForceBalance  ForceBalance               `json:"forceBalance" bson:"forceBalance"`
	Insights      []string                   `json:"insights" bson:"insights"`
	UpdatedAt     time.Time                  `json:"updatedAt" bson:"updatedAt"`
}

// ForceCoverage describes how one force is covered by a survey's questions
type ForceCoverage struct {
	QuestionCount   int             `json:"questionCount" bson:"questionCount"`
	QuestionIDs     []string        `json:"questionIds,omitempty" bson:"questionIds,omitempty"`
	CoverageQuality CoverageQuality `json:"coverageQuality" bson:"coverageQuality"`
}

// ForceCompletionReport checks that a survey's question set covers all five
// forces adequately
type ForceCompletionReport struct {
	AllForcesCovered bool                    `json:"allForcesCovered"`
	MissingForces    []Force                 `json:"missingForces,omitempty"`
	ForceCoverage    map[Force]ForceCoverage `json:"forceCoverage"`
	BalanceScore     int                     `json:"balanceScore"` // 0-100, 100 = even split
	Recommendations  []string                `json:"recommendations,omitempty"`
}

// ValidationResult is the outcome of checking one response against its
// question's validation rules
type ValidationResult struct {
	IsValid         bool     `json:"isValid"`
	ValidationScore int      `json:"validationScore"` // 0-100
	Violations      []string `json:"violations,omitempty"`
	Recommendations []string `json:"recommendations,omitempty"`
}
