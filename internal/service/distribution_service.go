package service

import (
	"context"
	"fmt"
	"math"

	"forcepulse/internal/model"
	"forcepulse/internal/repository"
)

// Deviation-analysis thresholds
const (
	deviationPercentThreshold = 10 // unexpected force share worth reporting
	lowAccuracyThreshold      = 70
	broadQuestionDeviations   = 2  // more than this many deviations
	demographicDriftThreshold = 50 // demographic share on a behavioral question
	deviationSampleLimit      = 3
)

// DistributionService compares a question's actual response classifications
// against its expected force
type DistributionService struct {
	mapper   *MapperService
	analysis repository.AnalysisRepo
}

// NewDistributionService creates a new distribution service
func NewDistributionService(mapper *MapperService, analysis repository.AnalysisRepo) *DistributionService {
	return &DistributionService{
		mapper:   mapper,
		analysis: analysis,
	}
}

// CalculateForceDistribution computes the per-force percentage spread of a
// question's responses, the accuracy against the expected force, and the
// deviation analysis, then upserts the result keyed by (survey, question).
// Percentages are rounded per force independently and may not sum to 100.
func (s *DistributionService) CalculateForceDistribution(ctx context.Context, surveyID, questionID string, responses []model.ClassifiedResponse) (*model.ForceDistribution, error) {
	if len(responses) == 0 {
		return nil, fmt.Errorf("distribution for question %s: %w", questionID, ErrNoResponses)
	}

	// An unmapped question is analyzed against the demographic baseline
	// rather than rejected.
	expectedForce := model.ForceDemographic
	mapping, err := s.mapper.LookupMapping(ctx, questionID)
	if err != nil {
		return nil, err
	}
	if mapping != nil {
		expectedForce = mapping.ExpectedForce
	}

	counts := make(map[model.Force]int, len(model.Forces))
	samples := make(map[model.Force][]string, len(model.Forces))
	for _, r := range responses {
		force := r.Classification.PrimaryForce
		counts[force]++
		if len(samples[force]) < deviationSampleLimit {
			samples[force] = append(samples[force], r.ResponseID)
		}
	}

	total := len(responses)
	distribution := make(map[model.Force]int, len(model.Forces))
	for _, force := range model.Forces {
		distribution[force] = roundPercent(counts[force], total)
	}
	accuracy := roundPercent(counts[expectedForce], total)

	dist := &model.ForceDistribution{
		SurveyID:           surveyID,
		QuestionID:         questionID,
		ExpectedForce:      expectedForce,
		ActualDistribution: distribution,
		TotalResponses:     total,
		AccuracyScore:      accuracy,
		DeviationAnalysis:  analyzeDeviations(expectedForce, distribution, accuracy, samples),
	}

	if err := s.analysis.UpsertDistribution(ctx, dist); err != nil {
		return nil, err
	}
	return dist, nil
}

// analyzeDeviations reports unexpected forces above the share threshold and
// derives reasons and recommendations from fixed cutoffs
func analyzeDeviations(expected model.Force, distribution map[model.Force]int, accuracy int, samples map[model.Force][]string) model.DeviationAnalysis {
	var analysis model.DeviationAnalysis

	for _, force := range model.Forces {
		if force == expected || distribution[force] < deviationPercentThreshold {
			continue
		}
		analysis.PrimaryDeviations = append(analysis.PrimaryDeviations, model.ForceDeviation{
			Force:             force,
			Percentage:        distribution[force],
			SampleResponseIDs: samples[force],
		})
	}

	if accuracy < lowAccuracyThreshold {
		analysis.Reasons = append(analysis.Reasons,
			fmt.Sprintf("only %d%% of responses express the expected %s force", accuracy, forceLabels[expected]))
		analysis.Recommendations = append(analysis.Recommendations,
			"question may not effectively prompt the expected force; consider rewording it")
	}
	if len(analysis.PrimaryDeviations) > broadQuestionDeviations {
		analysis.Reasons = append(analysis.Reasons,
			fmt.Sprintf("responses scatter across %d unexpected forces", len(analysis.PrimaryDeviations)))
		analysis.Recommendations = append(analysis.Recommendations,
			"question may be too broad; narrow it to a single force")
	}
	if expected != model.ForceDemographic && distribution[model.ForceDemographic] > demographicDriftThreshold {
		analysis.Reasons = append(analysis.Reasons,
			"a majority of responses read as background information")
		analysis.Recommendations = append(analysis.Recommendations,
			"add context to the question to elicit behavioral responses")
	}

	return analysis
}

func roundPercent(count, total int) int {
	return int(math.Round(100 * float64(count) / float64(total)))
}
