package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"forcepulse/internal/config"
	"forcepulse/internal/model"
)

// ClassifierService labels a single response with its JTBD forces via the
// Gemini API. The analysis pipeline treats it as a black box: failures
// propagate to the caller and are never retried here.
type ClassifierService struct {
	config *config.AIConfig
	client *http.Client
}

// NewClassifierService creates a new classifier service
func NewClassifierService() *ClassifierService {
	cfg := config.DefaultAIConfig()
	return &ClassifierService{
		config: cfg,
		client: &http.Client{
			Timeout: time.Duration(cfg.TimeoutMS) * time.Millisecond,
		},
	}
}

// ClassifyResponse returns the force classification for one response. With
// no API key configured it falls back to the keyword heuristic so the
// pipeline stays usable in development.
func (s *ClassifierService) ClassifyResponse(ctx context.Context, questionText, responseText string) (*model.ResponseClassification, error) {
	if !s.config.IsEnabled() {
		return s.mockClassify(questionText, responseText), nil
	}

	prompt := s.buildClassifyPrompt(questionText, responseText)
	response, err := s.callGemini(ctx, s.config.Models.Classify, prompt)
	if err != nil {
		return nil, fmt.Errorf("classify response: %w", err)
	}

	var classification model.ResponseClassification
	if err := json.Unmarshal([]byte(response), &classification); err != nil {
		return nil, fmt.Errorf("classify response: decode model output: %w", err)
	}
	if !classification.PrimaryForce.IsValid() {
		return nil, fmt.Errorf("classify response: model returned unknown force %q", classification.PrimaryForce)
	}
	classification.ForceStrengthScore = clampInt(classification.ForceStrengthScore, 1, 5)
	classification.Confidence = clampInt(classification.Confidence, 1, 5)

	return &classification, nil
}

// callGemini makes a request to the Gemini API
func (s *ClassifierService) callGemini(ctx context.Context, modelName, prompt string) (string, error) {
	reqBody := map[string]interface{}{
		"contents": []map[string]interface{}{
			{
				"parts": []map[string]string{
					{"text": prompt},
				},
			},
		},
		"generationConfig": map[string]interface{}{
			"responseMimeType": "application/json",
		},
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("%s?key=%s", s.config.ModelEndpoint(modelName), s.config.APIKey)
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(jsonBody))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	// Parse Gemini response structure
	var geminiResp struct {
		Candidates []struct {
			Content struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"content"`
		} `json:"candidates"`
	}

	if err := json.Unmarshal(body, &geminiResp); err != nil {
		return "", err
	}

	if len(geminiResp.Candidates) > 0 && len(geminiResp.Candidates[0].Content.Parts) > 0 {
		return geminiResp.Candidates[0].Content.Parts[0].Text, nil
	}

	return "", fmt.Errorf("empty response from Gemini")
}

func (s *ClassifierService) buildClassifyPrompt(questionText, responseText string) string {
	return fmt.Sprintf(`You are classifying a survey response against the Jobs-to-be-Done force framework. Return ONLY valid JSON matching this schema:
{
  "primaryForce": "pain_of_old" | "pull_of_new" | "anchors_to_old" | "anxiety_of_new" | "demographic",
  "secondaryForces": ["zero or more of the same values"],
  "forceStrengthScore": 1 to 5,
  "confidence": 1 to 5,
  "sentiment": "positive" | "negative" | "neutral" | "mixed",
  "themes": ["theme1", "theme2"],
  "summary": "one sentence summary"
}

Force definitions:
- pain_of_old: frustration with the current way of working
- pull_of_new: attraction to a new approach or tool
- anchors_to_old: attachment to existing habits and investments
- anxiety_of_new: fear or uncertainty about adopting something new
- demographic: background information about the respondent

Question: %s
Response: %s

Pick the single force the response expresses most strongly as primaryForce,
list any other clearly present forces as secondaryForces, and rate how
strongly the primary force is expressed (1 = barely, 5 = intensely).`,
		questionText, responseText)
}

// mockClassify reuses the question keyword tables as a crude classifier so
// the pipeline works without an API key
func (s *ClassifierService) mockClassify(questionText, responseText string) *model.ResponseClassification {
	force, _, matched := classifyQuestion(responseText, "")

	wordCount := len(strings.Fields(responseText))
	strength := clampInt(1+wordCount/20, 1, 5)

	sentiment := model.SentimentNeutral
	switch force {
	case model.ForcePainOfOld, model.ForceAnxietyOfNew:
		sentiment = model.SentimentNegative
	case model.ForcePullOfNew:
		sentiment = model.SentimentPositive
	}

	return &model.ResponseClassification{
		PrimaryForce:       force,
		ForceStrengthScore: strength,
		Confidence:         clampInt(1+len(matched), 1, 5),
		Sentiment:          sentiment,
		Themes:             matched,
		Summary:            fmt.Sprintf("Heuristic classification for: %s", questionText),
	}
}
