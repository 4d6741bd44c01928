package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"forcepulse/internal/model"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func main() {
	mongoURI := os.Getenv("MONGO_URI")
	if mongoURI == "" {
		mongoURI = "mongodb://localhost:27017"
	}
	database := os.Getenv("MONGO_DATABASE")
	if database == "" {
		database = "forcepulse"
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURI))
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer client.Disconnect(ctx)

	db := client.Database(database)
	orgID := "org_demo"

	survey := model.Survey{
		ID:          uuid.NewString(),
		OrgID:       orgID,
		Title:       "AI Readiness Pulse",
		Description: "Baseline check of how ready the team is to adopt AI tooling.",
		Status:      model.SurveyStatusActive,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}

	questions := []model.Question{
		{
			Text:     "What frustrates you about your current manual reporting process?",
			Category: "pain points",
		},
		{
			Text:     "What excites you about using a new AI assistant in your daily work?",
			Category: "opportunities",
		},
		{
			Text:     "Which parts of your existing workflow would you want to keep unchanged?",
			Category: "workflow",
		},
		{
			Text:     "What concerns or risks do you see in adopting AI tools on your team?",
			Category: "adoption",
		},
		{
			Text:     "What is your role and how many years of experience do you have?",
			Category: "background",
		},
	}

	if _, err := db.Collection("surveys").InsertOne(ctx, survey); err != nil {
		log.Fatalf("Failed to insert survey: %v", err)
	}

	for i := range questions {
		questions[i].ID = uuid.NewString()
		questions[i].SurveyID = survey.ID
		questions[i].OrgID = orgID
		questions[i].Position = i + 1
		questions[i].CreatedAt = time.Now()
		if _, err := db.Collection("questions").InsertOne(ctx, questions[i]); err != nil {
			log.Fatalf("Failed to insert question: %v", err)
		}
	}

	// A few pre-classified responses so the aggregate endpoint has data
	// before the classifier runs
	responses := []model.SurveyResponse{
		{
			QuestionID: questions[0].ID,
			Text:       "The manual exports eat hours every week and the numbers are often wrong. It is a real problem for the whole team.",
			Classification: &model.ResponseClassification{
				PrimaryForce:       model.ForcePainOfOld,
				ForceStrengthScore: 4,
				Confidence:         4,
				Sentiment:          model.SentimentNegative,
				Themes:             []string{"manual work", "data quality"},
			},
		},
		{
			QuestionID: questions[1].ID,
			Text:       "A new assistant could draft the weekly summary for me, which would be so much better than today.",
			Classification: &model.ResponseClassification{
				PrimaryForce:       model.ForcePullOfNew,
				SecondaryForces:    []model.Force{model.ForcePainOfOld},
				ForceStrengthScore: 5,
				Confidence:         4,
				Sentiment:          model.SentimentPositive,
				Themes:             []string{"automation", "summaries"},
			},
		},
		{
			QuestionID: questions[3].ID,
			Text:       "My main concern is the risk of leaking customer data into a model we do not control.",
			Classification: &model.ResponseClassification{
				PrimaryForce:       model.ForceAnxietyOfNew,
				ForceStrengthScore: 4,
				Confidence:         5,
				Sentiment:          model.SentimentNegative,
				Themes:             []string{"data privacy", "trust"},
			},
		},
	}

	for i := range responses {
		responses[i].ID = uuid.NewString()
		responses[i].SurveyID = survey.ID
		responses[i].OrgID = orgID
		responses[i].SubmittedAt = time.Now()
		if _, err := db.Collection("survey_responses").InsertOne(ctx, responses[i]); err != nil {
			log.Fatalf("Failed to insert response: %v", err)
		}
	}

	fmt.Printf("Seeded survey %q with %d questions and %d responses for org %s\n",
		survey.Title, len(questions), len(responses), orgID)
}
