package service

import (
	"context"
	"fmt"

	"forcepulse/internal/model"
)

// In-memory fakes for the Mongo repositories and Redis caches so the
// services can be tested deterministically.

type fakeMappingRepo struct {
	mappings    map[string]*model.QuestionForceMapping
	upsertCalls int
	getCalls    int
	failNext    error
}

func newFakeMappingRepo() *fakeMappingRepo {
	return &fakeMappingRepo{mappings: make(map[string]*model.QuestionForceMapping)}
}

func (r *fakeMappingRepo) GetByQuestionID(ctx context.Context, questionID string) (*model.QuestionForceMapping, error) {
	if r.failNext != nil {
		return nil, r.failNext
	}
	r.getCalls++
	m, ok := r.mappings[questionID]
	if !ok {
		return nil, nil
	}
	copied := *m
	return &copied, nil
}

func (r *fakeMappingRepo) Upsert(ctx context.Context, mapping *model.QuestionForceMapping) error {
	if r.failNext != nil {
		return r.failNext
	}
	r.upsertCalls++
	copied := *mapping
	r.mappings[mapping.QuestionID] = &copied
	return nil
}

func (r *fakeMappingRepo) GetByQuestionIDs(ctx context.Context, questionIDs []string) ([]*model.QuestionForceMapping, error) {
	var out []*model.QuestionForceMapping
	for _, id := range questionIDs {
		if m, ok := r.mappings[id]; ok {
			copied := *m
			out = append(out, &copied)
		}
	}
	return out, nil
}

type fakeMappingCache struct {
	mappings map[string]*model.QuestionForceMapping
	hits     int
}

func newFakeMappingCache() *fakeMappingCache {
	return &fakeMappingCache{mappings: make(map[string]*model.QuestionForceMapping)}
}

func (c *fakeMappingCache) Get(ctx context.Context, questionID string) (*model.QuestionForceMapping, error) {
	m, ok := c.mappings[questionID]
	if !ok {
		return nil, nil
	}
	c.hits++
	copied := *m
	return &copied, nil
}

func (c *fakeMappingCache) Set(ctx context.Context, mapping *model.QuestionForceMapping) error {
	copied := *mapping
	c.mappings[mapping.QuestionID] = &copied
	return nil
}

type distKey struct {
	surveyID   string
	questionID string
}

type fakeAnalysisRepo struct {
	distributions map[distKey]*model.ForceDistribution
	aggregates    map[string]*model.AggregateForceScore
	distUpserts   int
	aggUpserts    int
}

func newFakeAnalysisRepo() *fakeAnalysisRepo {
	return &fakeAnalysisRepo{
		distributions: make(map[distKey]*model.ForceDistribution),
		aggregates:    make(map[string]*model.AggregateForceScore),
	}
}

func (r *fakeAnalysisRepo) UpsertDistribution(ctx context.Context, dist *model.ForceDistribution) error {
	r.distUpserts++
	copied := *dist
	r.distributions[distKey{dist.SurveyID, dist.QuestionID}] = &copied
	return nil
}

func (r *fakeAnalysisRepo) GetDistribution(ctx context.Context, surveyID, questionID string) (*model.ForceDistribution, error) {
	d, ok := r.distributions[distKey{surveyID, questionID}]
	if !ok {
		return nil, nil
	}
	copied := *d
	return &copied, nil
}

func (r *fakeAnalysisRepo) GetDistributionsBySurvey(ctx context.Context, surveyID string) ([]*model.ForceDistribution, error) {
	var out []*model.ForceDistribution
	for key, d := range r.distributions {
		if key.surveyID == surveyID {
			copied := *d
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *fakeAnalysisRepo) UpsertAggregate(ctx context.Context, agg *model.AggregateForceScore) error {
	r.aggUpserts++
	copied := *agg
	r.aggregates[agg.SurveyID] = &copied
	return nil
}

func (r *fakeAnalysisRepo) GetAggregate(ctx context.Context, surveyID string) (*model.AggregateForceScore, error) {
	a, ok := r.aggregates[surveyID]
	if !ok {
		return nil, nil
	}
	copied := *a
	return &copied, nil
}

type fakeAggregateCache struct {
	aggregates map[string]*model.AggregateForceScore
}

func newFakeAggregateCache() *fakeAggregateCache {
	return &fakeAggregateCache{aggregates: make(map[string]*model.AggregateForceScore)}
}

func (c *fakeAggregateCache) Get(ctx context.Context, surveyID string) (*model.AggregateForceScore, error) {
	a, ok := c.aggregates[surveyID]
	if !ok {
		return nil, nil
	}
	copied := *a
	return &copied, nil
}

func (c *fakeAggregateCache) Set(ctx context.Context, agg *model.AggregateForceScore) error {
	copied := *agg
	c.aggregates[agg.SurveyID] = &copied
	return nil
}

func (c *fakeAggregateCache) Invalidate(ctx context.Context, surveyID string) error {
	delete(c.aggregates, surveyID)
	return nil
}

type fakeQuestionRepo struct {
	questions map[string]*model.Question
}

func newFakeQuestionRepo(questions ...*model.Question) *fakeQuestionRepo {
	r := &fakeQuestionRepo{questions: make(map[string]*model.Question)}
	for _, q := range questions {
		r.questions[q.ID] = q
	}
	return r
}

func (r *fakeQuestionRepo) Create(ctx context.Context, question *model.Question) error {
	r.questions[question.ID] = question
	return nil
}

func (r *fakeQuestionRepo) GetByID(ctx context.Context, id string) (*model.Question, error) {
	q, ok := r.questions[id]
	if !ok {
		return nil, nil
	}
	return q, nil
}

func (r *fakeQuestionRepo) GetBySurveyID(ctx context.Context, surveyID string) ([]*model.Question, error) {
	var out []*model.Question
	for _, q := range r.questions {
		if q.SurveyID == surveyID {
			out = append(out, q)
		}
	}
	return out, nil
}

func (r *fakeQuestionRepo) Delete(ctx context.Context, id string) error {
	delete(r.questions, id)
	return nil
}

type fakeResponseRepo struct {
	responses []*model.SurveyResponse
}

func (r *fakeResponseRepo) Create(ctx context.Context, response *model.SurveyResponse) error {
	r.responses = append(r.responses, response)
	return nil
}

func (r *fakeResponseRepo) GetByID(ctx context.Context, id string) (*model.SurveyResponse, error) {
	for _, resp := range r.responses {
		if resp.ID == id {
			return resp, nil
		}
	}
	return nil, nil
}

func (r *fakeResponseRepo) GetBySurveyID(ctx context.Context, surveyID string) ([]*model.SurveyResponse, error) {
	var out []*model.SurveyResponse
	for _, resp := range r.responses {
		if resp.SurveyID == surveyID {
			out = append(out, resp)
		}
	}
	return out, nil
}

func (r *fakeResponseRepo) GetByQuestionID(ctx context.Context, surveyID, questionID string) ([]*model.SurveyResponse, error) {
	var out []*model.SurveyResponse
	for _, resp := range r.responses {
		if resp.SurveyID == surveyID && resp.QuestionID == questionID {
			out = append(out, resp)
		}
	}
	return out, nil
}

func (r *fakeResponseRepo) SetClassification(ctx context.Context, id string, c *model.ResponseClassification) error {
	for _, resp := range r.responses {
		if resp.ID == id {
			resp.Classification = c
			return nil
		}
	}
	return fmt.Errorf("response %s not found", id)
}

type fakeClassifier struct {
	result *model.ResponseClassification
	err    error
}

func (c *fakeClassifier) ClassifyResponse(ctx context.Context, questionText, responseText string) (*model.ResponseClassification, error) {
	if c.err != nil {
		return nil, c.err
	}
	return c.result, nil
}

// newTestMapper wires a mapper over fresh fakes
func newTestMapper() (*MapperService, *fakeMappingRepo, *fakeMappingCache) {
	repo := newFakeMappingRepo()
	mappingCache := newFakeMappingCache()
	return NewMapperService(repo, mappingCache), repo, mappingCache
}
