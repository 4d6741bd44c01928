package service

import "forcepulse/internal/model"

// forceProfile is the static classification profile for one force: the
// keyword list used to map questions, the base confidence of that mapping,
// and the validation-rule template applied to responses.
type forceProfile struct {
	Keywords          []string
	BaseConfidence    int // 1-5
	RequiredKeywords  []string
	ExpectedSentiment model.Sentiment
	MinResponseLength int
	MaxResponseLength int
}

// forceProfiles is tuning data, not control flow. Keyword matching is
// case-insensitive substring search over question text plus category.
var forceProfiles = map[model.Force]forceProfile{
	model.ForcePainOfOld: {
		Keywords: []string{
			"manual", "slow", "tedious", "difficult", "struggle",
			"inefficient", "waste", "workaround", "bottleneck", "error-prone",
		},
		BaseConfidence:    4,
		RequiredKeywords:  []string{"problem", "time", "manual"},
		ExpectedSentiment: model.SentimentNegative,
		MinResponseLength: 30,
		MaxResponseLength: 2000,
	},
	model.ForcePullOfNew: {
		Keywords: []string{
			"new", "better", "improve", "faster", "easier",
			"automat", "opportunity", "modern", "benefit", "excite",
		},
		BaseConfidence:    4,
		RequiredKeywords:  []string{"better", "new", "help"},
		ExpectedSentiment: model.SentimentPositive,
		MinResponseLength: 30,
		MaxResponseLength: 2000,
	},
	model.ForceAnchorsToOld: {
		Keywords: []string{
			"current", "existing", "familiar", "comfortable", "habit",
			"invested", "always", "keep", "proven", "stay",
		},
		BaseConfidence:    3,
		RequiredKeywords:  []string{"current", "already", "works"},
		ExpectedSentiment: model.SentimentNeutral,
		MinResponseLength: 20,
		MaxResponseLength: 2000,
	},
	model.ForceAnxietyOfNew: {
		Keywords: []string{
			"worry", "concern", "risk", "afraid", "fear",
			"uncertain", "hesitant", "doubt", "trust", "secure",
		},
		BaseConfidence:    3,
		RequiredKeywords:  []string{"concern", "risk", "worry"},
		ExpectedSentiment: model.SentimentNegative,
		MinResponseLength: 20,
		MaxResponseLength: 2000,
	},
	model.ForceDemographic: {
		Keywords: []string{
			"role", "age", "department", "team", "years",
			"title", "industry", "experience", "location", "company size",
		},
		BaseConfidence:    5,
		MinResponseLength: 10,
		MaxResponseLength: 500,
	},
}

// forceLabels are the human-readable names used in insights and
// recommendations
var forceLabels = map[model.Force]string{
	model.ForcePainOfOld:    "pain of the old",
	model.ForcePullOfNew:    "pull of the new",
	model.ForceAnchorsToOld: "anchors to the old",
	model.ForceAnxietyOfNew: "anxiety of the new",
	model.ForceDemographic:  "demographic",
}

// Strength-tier thresholds on the weighted average score
const (
	veryStrongThreshold = 4.5
	strongThreshold     = 3.5
	moderateThreshold   = 2.5
)

// strengthTier buckets an average score into its qualitative tier
func strengthTier(averageScore float64) model.ForceStrength {
	switch {
	case averageScore >= veryStrongThreshold:
		return model.StrengthVeryStrong
	case averageScore >= strongThreshold:
		return model.StrengthStrong
	case averageScore >= moderateThreshold:
		return model.StrengthModerate
	default:
		return model.StrengthWeak
	}
}
