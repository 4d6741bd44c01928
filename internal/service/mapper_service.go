package service

import (
	"context"
	"fmt"
	"strings"

	"forcepulse/internal/cache"
	"forcepulse/internal/model"
	"forcepulse/internal/repository"

	"github.com/google/uuid"
)

// MapperService classifies each survey question's expected JTBD force from
// its text and category, and generates the response-validation rules for it.
// Mappings are created once per question and reused afterwards.
type MapperService struct {
	mappings     repository.MappingRepo
	mappingCache cache.MappingCache
}

// NewMapperService creates a new mapper service
func NewMapperService(mappings repository.MappingRepo, mappingCache cache.MappingCache) *MapperService {
	return &MapperService{
		mappings:     mappings,
		mappingCache: mappingCache,
	}
}

// LookupMapping returns the stored mapping for a question, or nil when the
// question has never been mapped. Absence is a valid state, not an error.
func (s *MapperService) LookupMapping(ctx context.Context, questionID string) (*model.QuestionForceMapping, error) {
	mapping, err := s.mappingCache.Get(ctx, questionID)
	if err != nil {
		return nil, err
	}
	if mapping != nil {
		return mapping, nil
	}

	mapping, err = s.mappings.GetByQuestionID(ctx, questionID)
	if err != nil {
		return nil, err
	}
	if mapping == nil {
		return nil, nil
	}

	if err := s.mappingCache.Set(ctx, mapping); err != nil {
		return nil, err
	}
	return mapping, nil
}

// MapQuestionToForce returns the question's force mapping, computing and
// persisting it on first call. The computation is deterministic for a given
// question, so a concurrent first-time race resolves as a harmless
// last-write-wins upsert.
func (s *MapperService) MapQuestionToForce(ctx context.Context, question *model.Question) (*model.QuestionForceMapping, error) {
	existing, err := s.LookupMapping(ctx, question.ID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	force, confidence, matched := classifyQuestion(question.Text, question.Category)
	profile := forceProfiles[force]

	rationale := fmt.Sprintf("no %s keywords matched; defaulted by declaration order", forceLabels[force])
	if len(matched) > 0 {
		rationale = fmt.Sprintf("question matched %d %s keyword(s): %s",
			len(matched), forceLabels[force], strings.Join(matched, ", "))
	}

	mapping := &model.QuestionForceMapping{
		ID:              uuid.NewString(),
		QuestionID:      question.ID,
		OrgID:           question.OrgID,
		TemplateID:      question.TemplateID,
		ExpectedForce:   force,
		ConfidenceLevel: confidence,
		Rationale:       rationale,
		ValidationRules: model.ValidationRules{
			RequiredKeywords:  profile.RequiredKeywords,
			ExpectedSentiment: profile.ExpectedSentiment,
			MinResponseLength: profile.MinResponseLength,
			MaxResponseLength: profile.MaxResponseLength,
		},
	}

	if err := s.mappings.Upsert(ctx, mapping); err != nil {
		return nil, err
	}
	if err := s.mappingCache.Set(ctx, mapping); err != nil {
		return nil, err
	}
	return mapping, nil
}

// classifyQuestion scores every force by keyword hits weighted by its base
// confidence and returns the winner. Ties keep the earliest force in
// canonical order.
func classifyQuestion(text, category string) (model.Force, int, []string) {
	haystack := strings.ToLower(text + " " + category)

	var (
		bestForce   model.Force
		bestScore   = -1
		bestMatched []string
	)
	for _, force := range model.Forces {
		profile := forceProfiles[force]

		var matched []string
		for _, kw := range profile.Keywords {
			if strings.Contains(haystack, kw) {
				matched = append(matched, kw)
			}
		}

		score := len(matched) * profile.BaseConfidence
		if score > bestScore {
			bestForce = force
			bestScore = score
			bestMatched = matched
		}
	}

	confidence := clampInt(forceProfiles[bestForce].BaseConfidence+len(bestMatched), 1, 5)
	return bestForce, confidence, bestMatched
}
