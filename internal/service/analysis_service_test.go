package service

import (
	"context"
	"errors"
	"testing"

	"forcepulse/internal/model"
)

type analysisFixture struct {
	svc          *AnalysisService
	questions    *fakeQuestionRepo
	responses    *fakeResponseRepo
	mappingRepo  *fakeMappingRepo
	analysisRepo *fakeAnalysisRepo
	classifier   *fakeClassifier
}

func newTestAnalysis(classifier *fakeClassifier, questions ...*model.Question) *analysisFixture {
	mapper, mappingRepo, _ := newTestMapper()
	questionRepo := newFakeQuestionRepo(questions...)
	responseRepo := &fakeResponseRepo{}
	analysisRepo := newFakeAnalysisRepo()
	aggregateCache := newFakeAggregateCache()

	svc := NewAnalysisService(
		questionRepo,
		responseRepo,
		mapper,
		classifier,
		NewValidatorService(mapper),
		NewDistributionService(mapper, analysisRepo),
		NewAggregatorService(analysisRepo, aggregateCache),
		NewCompletionService(mapper),
	)
	return &analysisFixture{
		svc:          svc,
		questions:    questionRepo,
		responses:    responseRepo,
		mappingRepo:  mappingRepo,
		analysisRepo: analysisRepo,
		classifier:   classifier,
	}
}

func TestIngestResponsePipeline(t *testing.T) {
	t.Parallel()

	question := &model.Question{
		ID:       "q1",
		SurveyID: "s1",
		OrgID:    "org1",
		Text:     "What frustrates you about your current manual reporting process?",
		Category: "pain points",
	}
	classifier := &fakeClassifier{result: &model.ResponseClassification{
		PrimaryForce:       model.ForcePainOfOld,
		ForceStrengthScore: 4,
		Confidence:         4,
		Sentiment:          model.SentimentNegative,
		Themes:             []string{"manual work"},
	}}
	f := newTestAnalysis(classifier, question)

	analysis, err := f.svc.IngestResponse(context.Background(), &model.SurveyResponse{
		QuestionID: "q1",
		OrgID:      "org1",
		Text:       "I spend hours every week copying numbers between spreadsheets because of a problem with our manual exports.",
	})
	if err != nil {
		t.Fatalf("IngestResponse: %v", err)
	}

	if analysis.Response.ID == "" {
		t.Fatalf("response ID was not assigned")
	}
	if analysis.Response.SurveyID != "s1" {
		t.Fatalf("SurveyID got %q want s1", analysis.Response.SurveyID)
	}
	if analysis.Response.Classification == nil {
		t.Fatalf("classification was not attached to the stored response")
	}
	if !analysis.Validation.IsValid {
		t.Fatalf("validation failed unexpectedly: %+v", analysis.Validation)
	}

	// Ingest lazily creates the question's mapping.
	if f.mappingRepo.upsertCalls != 1 {
		t.Fatalf("mapping upserts got %d want 1", f.mappingRepo.upsertCalls)
	}

	dist, err := f.analysisRepo.GetDistribution(context.Background(), "s1", "q1")
	if err != nil {
		t.Fatalf("GetDistribution: %v", err)
	}
	if dist == nil || dist.TotalResponses != 1 {
		t.Fatalf("distribution not refreshed: %+v", dist)
	}
	agg, err := f.analysisRepo.GetAggregate(context.Background(), "s1")
	if err != nil {
		t.Fatalf("GetAggregate: %v", err)
	}
	if agg == nil || agg.DominantForce != model.ForcePainOfOld {
		t.Fatalf("aggregate not refreshed: %+v", agg)
	}
}

func TestIngestResponseUnknownQuestion(t *testing.T) {
	t.Parallel()

	f := newTestAnalysis(&fakeClassifier{})

	_, err := f.svc.IngestResponse(context.Background(), &model.SurveyResponse{QuestionID: "missing"})
	if err == nil {
		t.Fatalf("want error for unknown question")
	}
	if len(f.responses.responses) != 0 {
		t.Fatalf("no response should be stored, got %d", len(f.responses.responses))
	}
}

func TestIngestResponseClassifierFailure(t *testing.T) {
	t.Parallel()

	question := &model.Question{ID: "q1", SurveyID: "s1", Text: "What manual steps slow you down?"}
	classifierErr := errors.New("model unavailable")
	f := newTestAnalysis(&fakeClassifier{err: classifierErr}, question)

	_, err := f.svc.IngestResponse(context.Background(), &model.SurveyResponse{QuestionID: "q1", Text: "hi"})
	if !errors.Is(err, classifierErr) {
		t.Fatalf("error got %v want %v", err, classifierErr)
	}
	if len(f.responses.responses) != 0 {
		t.Fatalf("failed classification must not store the response, got %d", len(f.responses.responses))
	}
}

func TestCheckSurveyCompletion(t *testing.T) {
	t.Parallel()

	f := newTestAnalysis(&fakeClassifier{},
		&model.Question{ID: "q1", SurveyID: "s1", Text: "What manual steps slow you down today?"},
		&model.Question{ID: "q2", SurveyID: "other", Text: "What is your role and department?"},
	)

	report, err := f.svc.CheckSurveyCompletion(context.Background(), "s1")
	if err != nil {
		t.Fatalf("CheckSurveyCompletion: %v", err)
	}

	coverage := report.ForceCoverage[model.ForcePainOfOld]
	if coverage.QuestionCount != 1 {
		t.Fatalf("pain_of_old QuestionCount got %d want 1", coverage.QuestionCount)
	}
	if report.AllForcesCovered {
		t.Fatalf("AllForcesCovered got true want false")
	}
}
