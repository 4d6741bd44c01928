package model

// Force is one of the five Jobs-to-be-Done forces used to classify
// survey questions and responses
type Force string

const (
	ForcePainOfOld    Force = "pain_of_old"    // Push: frustration with the current approach
	ForcePullOfNew    Force = "pull_of_new"    // Pull: attraction to a new approach
	ForceAnchorsToOld Force = "anchors_to_old" // Resistance: attachment to the current approach
	ForceAnxietyOfNew Force = "anxiety_of_new" // Resistance: fear of the new approach
	ForceDemographic  Force = "demographic"    // Neutral: background information
)

// Forces is the canonical force order. Scoring ties resolve to the earliest
// force in this slice, so iteration over forces must always use it rather
// than a map.
var Forces = []Force{
	ForcePainOfOld,
	ForcePullOfNew,
	ForceAnchorsToOld,
	ForceAnxietyOfNew,
	ForceDemographic,
}

// IsValid reports whether f is one of the five known forces
func (f Force) IsValid() bool {
	switch f {
	case ForcePainOfOld, ForcePullOfNew, ForceAnchorsToOld, ForceAnxietyOfNew, ForceDemographic:
		return true
	}
	return false
}

// ForceStrength is the qualitative bucket for an average force score
type ForceStrength string

const (
	StrengthWeak       ForceStrength = "weak"        // avg < 2.5
	StrengthModerate   ForceStrength = "moderate"    // avg >= 2.5
	StrengthStrong     ForceStrength = "strong"      // avg >= 3.5
	StrengthVeryStrong ForceStrength = "very_strong" // avg >= 4.5
)

// CoverageQuality rates how well a survey's questions cover one force
type CoverageQuality string

const (
	CoveragePoor      CoverageQuality = "poor"
	CoverageFair      CoverageQuality = "fair"
	CoverageGood      CoverageQuality = "good"
	CoverageExcellent CoverageQuality = "excellent"
)

// Sentiment is the classifier's coarse sentiment label for a response
type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNegative Sentiment = "negative"
	SentimentNeutral  Sentiment = "neutral"
	SentimentMixed    Sentiment = "mixed"
)
