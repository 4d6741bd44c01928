package service

import (
	"context"
	"fmt"
	"strings"

	"forcepulse/internal/model"
)

// Validation penalties per violated rule type
const (
	penaltyForceMismatch     = 30
	penaltyMissingKeyword    = 25
	penaltyTooShort          = 20
	penaltySentimentMismatch = 15
	penaltyTooLong           = 10
)

// ValidatorService checks a classified response against its question's
// validation rules
type ValidatorService struct {
	mapper *MapperService
}

// NewValidatorService creates a new validator service
func NewValidatorService(mapper *MapperService) *ValidatorService {
	return &ValidatorService{mapper: mapper}
}

// ValidateResponse scores one response against the rules of its question's
// mapping. Unmapped questions validate open: there are no rules to violate.
// Validity is decided by violation count, not by the score.
func (s *ValidatorService) ValidateResponse(ctx context.Context, questionID, responseText string, classification *model.ResponseClassification) (*model.ValidationResult, error) {
	mapping, err := s.mapper.LookupMapping(ctx, questionID)
	if err != nil {
		return nil, err
	}
	if mapping == nil {
		return &model.ValidationResult{IsValid: true, ValidationScore: 100}, nil
	}

	result := &model.ValidationResult{ValidationScore: 100}
	rules := mapping.ValidationRules

	// A mismatch only counts when the expected force shows up neither as
	// primary nor as a secondary classification.
	if !classification.MatchesForce(mapping.ExpectedForce) {
		result.ValidationScore -= penaltyForceMismatch
		result.Violations = append(result.Violations,
			fmt.Sprintf("response expresses %s instead of the expected %s",
				forceLabels[classification.PrimaryForce], forceLabels[mapping.ExpectedForce]))
		result.Recommendations = append(result.Recommendations,
			"rephrase the question to prompt the expected force more directly")
	}

	if len(responseText) < rules.MinResponseLength {
		result.ValidationScore -= penaltyTooShort
		result.Violations = append(result.Violations,
			fmt.Sprintf("response is %d characters, below the minimum of %d",
				len(responseText), rules.MinResponseLength))
		result.Recommendations = append(result.Recommendations,
			"ask respondents to elaborate with a concrete example")
	} else if rules.MaxResponseLength > 0 && len(responseText) > rules.MaxResponseLength {
		result.ValidationScore -= penaltyTooLong
		result.Violations = append(result.Violations,
			fmt.Sprintf("response is %d characters, above the maximum of %d",
				len(responseText), rules.MaxResponseLength))
		result.Recommendations = append(result.Recommendations,
			"split the question so answers stay focused")
	}

	if len(rules.RequiredKeywords) > 0 && !containsAnyKeyword(responseText, rules.RequiredKeywords) {
		result.ValidationScore -= penaltyMissingKeyword
		result.Violations = append(result.Violations,
			fmt.Sprintf("response mentions none of the expected terms: %s",
				strings.Join(rules.RequiredKeywords, ", ")))
		result.Recommendations = append(result.Recommendations,
			"add context to the question that anchors the expected vocabulary")
	}

	if rules.ExpectedSentiment != "" && classification.Sentiment != rules.ExpectedSentiment {
		result.ValidationScore -= penaltySentimentMismatch
		result.Violations = append(result.Violations,
			fmt.Sprintf("response sentiment is %s, expected %s",
				classification.Sentiment, rules.ExpectedSentiment))
		result.Recommendations = append(result.Recommendations,
			"review whether the question framing matches its intended force")
	}

	if result.ValidationScore < 0 {
		result.ValidationScore = 0
	}
	result.IsValid = len(result.Violations) == 0
	return result, nil
}

func containsAnyKeyword(text string, keywords []string) bool {
	lowered := strings.ToLower(text)
	for _, kw := range keywords {
		if strings.Contains(lowered, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}
