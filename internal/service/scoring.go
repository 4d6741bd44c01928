package service

import (
	"math"

	"forcepulse/internal/model"
)

// Scoring weights: a primary classification counts double a secondary one
const (
	primaryWeight   = 2.0
	secondaryWeight = 1.0
)

// CalculateForceScore rolls up a set of classified responses into one
// force's weighted average, confidence and strength tier. Responses whose
// primary or secondary classification matches the force contribute; a
// primary match carries twice the weight of a secondary one.
func CalculateForceScore(responses []model.ClassifiedResponse, force model.Force) model.ForceScoreResult {
	var weightedSum, totalWeight float64
	var scores []float64

	for i := range responses {
		c := &responses[i].Classification
		if !c.MatchesForce(force) {
			continue
		}
		weight := secondaryWeight
		if c.PrimaryForce == force {
			weight = primaryWeight
		}
		weightedSum += float64(c.ForceStrengthScore) * weight
		totalWeight += weight
		scores = append(scores, float64(c.ForceStrengthScore))
	}

	if len(scores) == 0 {
		return model.ForceScoreResult{Strength: model.StrengthWeak}
	}

	averageScore := round2(weightedSum / totalWeight)

	// Confidence rewards a high share of matching responses and low score
	// dispersion. Scores live in [1,5], so variance stays well under 25 and
	// the penalty term cannot go negative.
	ratio := float64(len(scores)) / float64(len(responses))
	variance := populationVariance(scores)
	confidence := clampFloat(ratio*5*(1-variance/25), 1, 5)

	return model.ForceScoreResult{
		AverageScore:   averageScore,
		TotalResponses: len(scores),
		Confidence:     round2(confidence),
		Strength:       strengthTier(averageScore),
	}
}

// populationVariance is the mean squared deviation from the mean
func populationVariance(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	mean := sum / float64(len(values))

	var sqDiff float64
	for _, v := range values {
		d := v - mean
		sqDiff += d * d
	}
	return sqDiff / float64(len(values))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func clampFloat(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

func clampInt(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
