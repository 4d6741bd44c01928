package service

import (
	"context"
	"fmt"
	"math"

	"forcepulse/internal/model"
)

// Coverage-quality and balance thresholds
const (
	excellentQuestionCount  = 2
	excellentMeanConfidence = 4.0
	goodMeanConfidence      = 3.0
	lowBalanceThreshold     = 70
	minRecommendedQuestions = 10
	maxRecommendedQuestions = 25
	balanceVariancePenalty  = 10
)

// CompletionService checks that a survey's question set covers all five
// forces adequately. It runs purely over the question set, independent of
// response collection.
type CompletionService struct {
	mapper *MapperService
}

// NewCompletionService creates a new completion service
func NewCompletionService(mapper *MapperService) *CompletionService {
	return &CompletionService{mapper: mapper}
}

// ValidateForceCompletion maps every question (creating mappings as needed),
// groups them by expected force and rates per-force coverage plus an overall
// balance score.
func (s *CompletionService) ValidateForceCompletion(ctx context.Context, questions []*model.Question) (*model.ForceCompletionReport, error) {
	report := &model.ForceCompletionReport{
		ForceCoverage: make(map[model.Force]model.ForceCoverage, len(model.Forces)),
	}

	if len(questions) == 0 {
		report.MissingForces = append(report.MissingForces, model.Forces...)
		for _, force := range model.Forces {
			report.ForceCoverage[force] = model.ForceCoverage{CoverageQuality: model.CoveragePoor}
		}
		report.Recommendations = append(report.Recommendations,
			"survey has no questions yet; add questions covering all five forces")
		return report, nil
	}

	questionIDs := make(map[model.Force][]string, len(model.Forces))
	confidenceSum := make(map[model.Force]int, len(model.Forces))
	for _, q := range questions {
		mapping, err := s.mapper.MapQuestionToForce(ctx, q)
		if err != nil {
			return nil, err
		}
		questionIDs[mapping.ExpectedForce] = append(questionIDs[mapping.ExpectedForce], q.ID)
		confidenceSum[mapping.ExpectedForce] += mapping.ConfidenceLevel
	}

	for _, force := range model.Forces {
		ids := questionIDs[force]
		count := len(ids)

		var meanConfidence float64
		if count > 0 {
			meanConfidence = float64(confidenceSum[force]) / float64(count)
		}

		report.ForceCoverage[force] = model.ForceCoverage{
			QuestionCount:   count,
			QuestionIDs:     ids,
			CoverageQuality: coverageQuality(count, meanConfidence),
		}
		if count == 0 {
			report.MissingForces = append(report.MissingForces, force)
		}
	}
	report.AllForcesCovered = len(report.MissingForces) == 0
	report.BalanceScore = balanceScore(questionIDs, len(questions))
	report.Recommendations = completionRecommendations(report, len(questions))

	return report, nil
}

// coverageQuality rates one force's coverage from question count and mean
// mapping confidence
func coverageQuality(count int, meanConfidence float64) model.CoverageQuality {
	switch {
	case count == 0:
		return model.CoveragePoor
	case count >= excellentQuestionCount && meanConfidence >= excellentMeanConfidence:
		return model.CoverageExcellent
	case meanConfidence >= goodMeanConfidence:
		return model.CoverageGood
	default:
		return model.CoverageFair
	}
}

// balanceScore is 100 for an even question split across the five forces and
// drops with the variance of per-force counts around total/5
func balanceScore(questionIDs map[model.Force][]string, totalQuestions int) int {
	expected := float64(totalQuestions) / float64(len(model.Forces))

	var sqDiff float64
	for _, force := range model.Forces {
		d := float64(len(questionIDs[force])) - expected
		sqDiff += d * d
	}
	variance := sqDiff / float64(len(model.Forces))

	return clampInt(int(math.Round(100-balanceVariancePenalty*variance)), 0, 100)
}

func completionRecommendations(report *model.ForceCompletionReport, totalQuestions int) []string {
	var recs []string
	for _, force := range report.MissingForces {
		recs = append(recs,
			fmt.Sprintf("add at least one question targeting %s", forceLabels[force]))
	}
	for _, force := range model.Forces {
		coverage := report.ForceCoverage[force]
		if coverage.QuestionCount > 0 && coverage.CoverageQuality == model.CoverageFair {
			recs = append(recs,
				fmt.Sprintf("strengthen %s coverage with clearer, more targeted questions", forceLabels[force]))
		}
	}
	if report.BalanceScore < lowBalanceThreshold {
		recs = append(recs,
			"question distribution across forces is skewed; rebalance toward an even split")
	}
	if totalQuestions < minRecommendedQuestions {
		recs = append(recs,
			fmt.Sprintf("survey has only %d questions; add more for reliable force analysis", totalQuestions))
	} else if totalQuestions > maxRecommendedQuestions {
		recs = append(recs,
			fmt.Sprintf("survey has %d questions and may be too long; consider trimming", totalQuestions))
	}
	return recs
}
