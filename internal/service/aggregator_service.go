package service

import (
	"context"
	"fmt"
	"sort"

	"forcepulse/internal/cache"
	"forcepulse/internal/model"
	"forcepulse/internal/repository"
)

const topThemeLimit = 5

// Insight thresholds
const (
	balanceGapThreshold  = 1.0 // push-resistance gap that signals a clear lean
	highConfidenceFloor  = 4.0
	lowConfidenceCeiling = 3.0
)

// AggregatorService rolls a whole survey's classified responses up into
// organization-level force statistics and insights
type AggregatorService struct {
	analysis       repository.AnalysisRepo
	aggregateCache cache.AggregateCache
}

// NewAggregatorService creates a new aggregator service
func NewAggregatorService(analysis repository.AnalysisRepo, aggregateCache cache.AggregateCache) *AggregatorService {
	return &AggregatorService{
		analysis:       analysis,
		aggregateCache: aggregateCache,
	}
}

// AggregateForceScores scores all five forces over the survey's responses,
// picks the dominant force, computes the push/resistance/neutral balance and
// generates ordered insights, then upserts the aggregate keyed by survey.
func (s *AggregatorService) AggregateForceScores(ctx context.Context, orgID, surveyID string, responses []model.ClassifiedResponse) (*model.AggregateForceScore, error) {
	if len(responses) == 0 {
		return nil, fmt.Errorf("aggregate for survey %s: %w", surveyID, ErrNoResponses)
	}

	overall := make(map[model.Force]model.ForceScoreResult, len(model.Forces))
	themes := make(map[model.Force][]string, len(model.Forces))
	for _, force := range model.Forces {
		overall[force] = CalculateForceScore(responses, force)
		themes[force] = topThemes(responses, force, topThemeLimit)
	}

	// Dominant force by highest average; ties keep the earliest force in
	// canonical order, so iteration uses model.Forces and strict greater-than.
	dominant := model.Forces[0]
	for _, force := range model.Forces[1:] {
		if overall[force].AverageScore > overall[dominant].AverageScore {
			dominant = force
		}
	}

	balance := model.ForceBalance{
		PushForces:       round2((overall[model.ForcePainOfOld].AverageScore + overall[model.ForcePullOfNew].AverageScore) / 2),
		ResistanceForces: round2((overall[model.ForceAnchorsToOld].AverageScore + overall[model.ForceAnxietyOfNew].AverageScore) / 2),
		NeutralForces:    overall[model.ForceDemographic].AverageScore,
	}

	agg := &model.AggregateForceScore{
		SurveyID:      surveyID,
		OrgID:         orgID,
		OverallScores: overall,
		TopThemes:     themes,
		DominantForce: dominant,
		ForceBalance:  balance,
		Insights:      generateInsights(overall, dominant, balance),
	}

	if err := s.analysis.UpsertAggregate(ctx, agg); err != nil {
		return nil, err
	}
	if err := s.aggregateCache.Set(ctx, agg); err != nil {
		return nil, err
	}
	return agg, nil
}

// GetAggregate returns the stored aggregate for a survey, preferring the
// cache over MongoDB
func (s *AggregatorService) GetAggregate(ctx context.Context, surveyID string) (*model.AggregateForceScore, error) {
	agg, err := s.aggregateCache.Get(ctx, surveyID)
	if err != nil {
		return nil, err
	}
	if agg != nil {
		return agg, nil
	}
	return s.analysis.GetAggregate(ctx, surveyID)
}

// topThemes returns the most frequent themes among responses matching the
// force, most frequent first. Equal counts order alphabetically so output
// stays deterministic.
func topThemes(responses []model.ClassifiedResponse, force model.Force, limit int) []string {
	counts := make(map[string]int)
	for i := range responses {
		c := &responses[i].Classification
		if !c.MatchesForce(force) {
			continue
		}
		for _, theme := range c.Themes {
			counts[theme]++
		}
	}
	if len(counts) == 0 {
		return nil
	}

	themes := make([]string, 0, len(counts))
	for theme := range counts {
		themes = append(themes, theme)
	}
	sort.Slice(themes, func(i, j int) bool {
		if counts[themes[i]] != counts[themes[j]] {
			return counts[themes[i]] > counts[themes[j]]
		}
		return themes[i] < themes[j]
	})

	if len(themes) > limit {
		themes = themes[:limit]
	}
	return themes
}

// generateInsights produces the ordered, deterministic insight list:
// dominant force, push-vs-resistance balance, then confidence quality.
func generateInsights(overall map[model.Force]model.ForceScoreResult, dominant model.Force, balance model.ForceBalance) []string {
	insights := []string{
		fmt.Sprintf("The dominant force is %s with an average score of %.2f (%s).",
			forceLabels[dominant], overall[dominant].AverageScore, overall[dominant].Strength),
	}

	gap := balance.PushForces - balance.ResistanceForces
	switch {
	case gap > balanceGapThreshold:
		insights = append(insights,
			"Push forces clearly outweigh resistance: respondents show high motivation to change.")
	case gap < -balanceGapThreshold:
		insights = append(insights,
			"Resistance forces outweigh push: resistance may hinder adoption of new approaches.")
	default:
		insights = append(insights,
			"Push and resistance forces are balanced: careful change management will be needed.")
	}

	var confidenceSum float64
	for _, force := range model.Forces {
		confidenceSum += overall[force].Confidence
	}
	meanConfidence := confidenceSum / float64(len(model.Forces))
	switch {
	case meanConfidence >= highConfidenceFloor:
		insights = append(insights,
			fmt.Sprintf("Force scores carry high confidence (%.1f/5) and can support decisions.", meanConfidence))
	case meanConfidence < lowConfidenceCeiling:
		insights = append(insights,
			fmt.Sprintf("Confidence in force scores is low (%.1f/5); more responses are needed.", meanConfidence))
	default:
		insights = append(insights,
			fmt.Sprintf("Force scores carry moderate confidence (%.1f/5).", meanConfidence))
	}

	return insights
}
