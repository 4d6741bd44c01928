package service

import (
	"context"
	"strings"
	"testing"

	"forcepulse/internal/model"
)

// mapPainQuestion creates a pain_of_old mapping for questionID and returns
// the wired validator
func mapPainQuestion(t *testing.T, questionID string) *ValidatorService {
	t.Helper()

	mapper, _, _ := newTestMapper()
	question := &model.Question{
		ID:       questionID,
		Text:     "What frustrates you about your current manual reporting process?",
		Category: "pain points",
	}
	if _, err := mapper.MapQuestionToForce(context.Background(), question); err != nil {
		t.Fatalf("MapQuestionToForce: %v", err)
	}
	return NewValidatorService(mapper)
}

func TestValidateResponseFailOpen(t *testing.T) {
	t.Parallel()

	mapper, _, _ := newTestMapper()
	validator := NewValidatorService(mapper)

	classification := &model.ResponseClassification{
		PrimaryForce:       model.ForceDemographic,
		ForceStrengthScore: 1,
		Sentiment:          model.SentimentMixed,
	}

	result, err := validator.ValidateResponse(context.Background(), "never-mapped", "x", classification)
	if err != nil {
		t.Fatalf("ValidateResponse: %v", err)
	}

	if !result.IsValid {
		t.Fatalf("IsValid got false want true for unmapped question")
	}
	if result.ValidationScore != 100 {
		t.Fatalf("ValidationScore got %d want 100", result.ValidationScore)
	}
	if len(result.Violations) != 0 {
		t.Fatalf("Violations got %v want none", result.Violations)
	}
}

func TestValidateResponseClean(t *testing.T) {
	t.Parallel()

	validator := mapPainQuestion(t, "q1")
	classification := &model.ResponseClassification{
		PrimaryForce:       model.ForcePainOfOld,
		ForceStrengthScore: 4,
		Sentiment:          model.SentimentNegative,
	}
	text := "The manual exports are a real problem and waste hours of my time every single week."

	result, err := validator.ValidateResponse(context.Background(), "q1", text, classification)
	if err != nil {
		t.Fatalf("ValidateResponse: %v", err)
	}

	if !result.IsValid {
		t.Fatalf("IsValid got false want true, violations: %v", result.Violations)
	}
	if result.ValidationScore != 100 {
		t.Fatalf("ValidationScore got %d want 100", result.ValidationScore)
	}
}

func TestValidateResponseForceMismatch(t *testing.T) {
	t.Parallel()

	validator := mapPainQuestion(t, "q1")
	classification := &model.ResponseClassification{
		PrimaryForce:       model.ForcePullOfNew,
		ForceStrengthScore: 4,
		Sentiment:          model.SentimentNegative,
	}
	text := "The manual exports are a real problem and waste hours of my time every single week."

	result, err := validator.ValidateResponse(context.Background(), "q1", text, classification)
	if err != nil {
		t.Fatalf("ValidateResponse: %v", err)
	}

	if result.IsValid {
		t.Fatalf("IsValid got true want false")
	}
	if result.ValidationScore != 70 {
		t.Fatalf("ValidationScore got %d want 70", result.ValidationScore)
	}
	if len(result.Violations) != 1 {
		t.Fatalf("Violations got %d want 1: %v", len(result.Violations), result.Violations)
	}
}

func TestValidateResponseSecondaryForceSuppressesMismatch(t *testing.T) {
	t.Parallel()

	validator := mapPainQuestion(t, "q1")
	classification := &model.ResponseClassification{
		PrimaryForce:       model.ForcePullOfNew,
		SecondaryForces:    []model.Force{model.ForcePainOfOld},
		ForceStrengthScore: 4,
		Sentiment:          model.SentimentNegative,
	}
	text := "The manual exports are a real problem and waste hours of my time every single week."

	result, err := validator.ValidateResponse(context.Background(), "q1", text, classification)
	if err != nil {
		t.Fatalf("ValidateResponse: %v", err)
	}

	if !result.IsValid {
		t.Fatalf("IsValid got false want true, violations: %v", result.Violations)
	}
}

func TestValidateResponseStackedPenaltiesFloorAtZero(t *testing.T) {
	t.Parallel()

	validator := mapPainQuestion(t, "q1")
	// Wrong force, too short, no required keyword, wrong sentiment:
	// 100 - 30 - 20 - 25 - 15 = 10
	classification := &model.ResponseClassification{
		PrimaryForce:       model.ForceDemographic,
		ForceStrengthScore: 1,
		Sentiment:          model.SentimentPositive,
	}

	result, err := validator.ValidateResponse(context.Background(), "q1", "nice", classification)
	if err != nil {
		t.Fatalf("ValidateResponse: %v", err)
	}

	if result.IsValid {
		t.Fatalf("IsValid got true want false")
	}
	if result.ValidationScore != 10 {
		t.Fatalf("ValidationScore got %d want 10", result.ValidationScore)
	}
	if len(result.Violations) != 4 {
		t.Fatalf("Violations got %d want 4: %v", len(result.Violations), result.Violations)
	}
	if len(result.Recommendations) != len(result.Violations) {
		t.Fatalf("Recommendations got %d want %d (one per violation)",
			len(result.Recommendations), len(result.Violations))
	}
	if result.ValidationScore < 0 || result.ValidationScore > 100 {
		t.Fatalf("ValidationScore %d outside [0,100]", result.ValidationScore)
	}
}

func TestValidateResponseTooLong(t *testing.T) {
	t.Parallel()

	validator := mapPainQuestion(t, "q1")
	classification := &model.ResponseClassification{
		PrimaryForce:       model.ForcePainOfOld,
		ForceStrengthScore: 4,
		Sentiment:          model.SentimentNegative,
	}
	text := "The manual process is a problem. " + strings.Repeat("It keeps happening over and over again. ", 60)

	result, err := validator.ValidateResponse(context.Background(), "q1", text, classification)
	if err != nil {
		t.Fatalf("ValidateResponse: %v", err)
	}

	if result.IsValid {
		t.Fatalf("IsValid got true want false")
	}
	if result.ValidationScore != 90 {
		t.Fatalf("ValidationScore got %d want 90", result.ValidationScore)
	}
}
