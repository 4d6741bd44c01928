package service

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"forcepulse/internal/model"
)

func newTestCompletion() (*CompletionService, *fakeMappingRepo) {
	mapper, repo, _ := newTestMapper()
	return NewCompletionService(mapper), repo
}

func completionQuestion(id, text string) *model.Question {
	return &model.Question{ID: id, SurveyID: "s1", OrgID: "org1", Text: text}
}

func TestValidateForceCompletionNoQuestions(t *testing.T) {
	t.Parallel()

	svc, _ := newTestCompletion()

	report, err := svc.ValidateForceCompletion(context.Background(), nil)
	if err != nil {
		t.Fatalf("ValidateForceCompletion: %v", err)
	}

	if report.AllForcesCovered {
		t.Fatalf("AllForcesCovered got true want false")
	}
	if len(report.MissingForces) != len(model.Forces) {
		t.Fatalf("MissingForces got %d want %d", len(report.MissingForces), len(model.Forces))
	}
	if report.BalanceScore != 0 {
		t.Fatalf("BalanceScore got %d want 0", report.BalanceScore)
	}
	for _, force := range model.Forces {
		if q := report.ForceCoverage[force].CoverageQuality; q != model.CoveragePoor {
			t.Fatalf("%s CoverageQuality got %s want %s", force, q, model.CoveragePoor)
		}
	}
}

func TestValidateForceCompletionEvenSplit(t *testing.T) {
	t.Parallel()

	svc, _ := newTestCompletion()

	questions := []*model.Question{
		completionQuestion("q1", "What manual steps slow you down today?"),
		completionQuestion("q2", "What would a faster, easier process unlock?"),
		completionQuestion("q3", "Which familiar tools do you want to keep?"),
		completionQuestion("q4", "What risks worry you about adopting AI?"),
		completionQuestion("q5", "What is your role and department?"),
	}

	report, err := svc.ValidateForceCompletion(context.Background(), questions)
	if err != nil {
		t.Fatalf("ValidateForceCompletion: %v", err)
	}

	if !report.AllForcesCovered {
		t.Fatalf("AllForcesCovered got false want true, missing %v", report.MissingForces)
	}
	if report.BalanceScore != 100 {
		t.Fatalf("BalanceScore got %d want 100", report.BalanceScore)
	}
	for _, force := range model.Forces {
		coverage := report.ForceCoverage[force]
		if coverage.QuestionCount != 1 {
			t.Fatalf("%s QuestionCount got %d want 1", force, coverage.QuestionCount)
		}
		if coverage.CoverageQuality != model.CoverageGood {
			t.Fatalf("%s CoverageQuality got %s want %s", force, coverage.CoverageQuality, model.CoverageGood)
		}
	}

	// Five questions is below the recommended minimum; that should be the
	// only recommendation for an even, fully covered split.
	if len(report.Recommendations) != 1 {
		t.Fatalf("Recommendations got %d want 1: %v", len(report.Recommendations), report.Recommendations)
	}
	if !strings.Contains(report.Recommendations[0], "only 5 questions") {
		t.Fatalf("unexpected recommendation: %q", report.Recommendations[0])
	}
}

func TestValidateForceCompletionMissingForces(t *testing.T) {
	t.Parallel()

	svc, _ := newTestCompletion()

	questions := []*model.Question{
		completionQuestion("q1", "What manual steps slow you down today?"),
		completionQuestion("q2", "Where does tedious, inefficient work pile up?"),
	}

	report, err := svc.ValidateForceCompletion(context.Background(), questions)
	if err != nil {
		t.Fatalf("ValidateForceCompletion: %v", err)
	}

	if report.AllForcesCovered {
		t.Fatalf("AllForcesCovered got true want false")
	}
	if len(report.MissingForces) != 4 {
		t.Fatalf("MissingForces got %v want four forces", report.MissingForces)
	}
	if q := report.ForceCoverage[model.ForcePainOfOld].CoverageQuality; q != model.CoverageExcellent {
		t.Fatalf("pain_of_old CoverageQuality got %s want %s", q, model.CoverageExcellent)
	}
	if !strings.Contains(report.Recommendations[0], "pull of the new") {
		t.Fatalf("first recommendation should target the first missing force: %q", report.Recommendations[0])
	}
}

func TestValidateForceCompletionSkewedBalance(t *testing.T) {
	t.Parallel()

	svc, _ := newTestCompletion()

	questions := []*model.Question{
		completionQuestion("q1", "What would a faster, easier process unlock?"),
		completionQuestion("q2", "Which familiar tools do you want to keep?"),
		completionQuestion("q3", "What risks worry you about adopting AI?"),
		completionQuestion("q4", "What is your role and department?"),
	}
	for i := 0; i < 6; i++ {
		questions = append(questions,
			completionQuestion(fmt.Sprintf("p%d", i), "What manual steps slow you down today?"))
	}

	report, err := svc.ValidateForceCompletion(context.Background(), questions)
	if err != nil {
		t.Fatalf("ValidateForceCompletion: %v", err)
	}

	if !report.AllForcesCovered {
		t.Fatalf("AllForcesCovered got false want true, missing %v", report.MissingForces)
	}
	// counts 6,1,1,1,1 over 10 questions: variance 4, score 100-40=60
	if report.BalanceScore != 60 {
		t.Fatalf("BalanceScore got %d want 60", report.BalanceScore)
	}
	if len(report.Recommendations) != 1 || !strings.Contains(report.Recommendations[0], "skewed") {
		t.Fatalf("want a single skew recommendation, got %v", report.Recommendations)
	}
}

func TestValidateForceCompletionFairCoverage(t *testing.T) {
	t.Parallel()

	svc, repo := newTestCompletion()

	// A pre-existing low-confidence mapping is reused as-is, dragging the
	// force's mean confidence below the good threshold.
	seeded := &model.QuestionForceMapping{
		ID:              "m1",
		QuestionID:      "q1",
		ExpectedForce:   model.ForceAnchorsToOld,
		ConfidenceLevel: 2,
	}
	if err := repo.Upsert(context.Background(), seeded); err != nil {
		t.Fatalf("Upsert: %v", err)
	}

	questions := []*model.Question{completionQuestion("q1", "Tell us about your setup.")}

	report, err := svc.ValidateForceCompletion(context.Background(), questions)
	if err != nil {
		t.Fatalf("ValidateForceCompletion: %v", err)
	}

	coverage := report.ForceCoverage[model.ForceAnchorsToOld]
	if coverage.CoverageQuality != model.CoverageFair {
		t.Fatalf("CoverageQuality got %s want %s", coverage.CoverageQuality, model.CoverageFair)
	}

	var found bool
	for _, rec := range report.Recommendations {
		if strings.Contains(rec, "strengthen anchors to the old coverage") {
			found = true
		}
	}
	if !found {
		t.Fatalf("want a strengthen recommendation, got %v", report.Recommendations)
	}
}
