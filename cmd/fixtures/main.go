package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/14kear/polls-api/internal/config"
	"github.com/14kear/polls-api/internal/entity"
	"github.com/14kear/polls-api/internal/storage/postgres"
	"github.com/brianvoe/gofakeit/v7"
	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v3"
)

type fixtureFile struct {
	Users     []fixtureUser     `yaml:"users"`
	Questions []fixtureQuestion `yaml:"questions"`
}

type fixtureUser struct {
	Username  string `yaml:"username"`
	Password  string `yaml:"password"`
	Email     string `yaml:"email"`
	FirstName string `yaml:"first_name"`
	LastName  string `yaml:"last_name"`
	IsStaff   bool   `yaml:"is_staff"`
}

type fixtureQuestion struct {
	QuestionText string          `yaml:"question_text"`
	PubDate      time.Time       `yaml:"pub_date"`
	Choices      []fixtureChoice `yaml:"choices"`
}

type fixtureChoice struct {
	ChoiceText string `yaml:"choice_text"`
	Votes      int64  `yaml:"votes"`
}

func main() {
	var (
		configPath   string
		fixturesPath string
		generate     int
	)

	flag.StringVar(&configPath, "config", "config/local.yaml", "path to config file")
	flag.StringVar(&fixturesPath, "fixtures", "fixtures/polls.yaml", "path to fixtures file")
	flag.IntVar(&generate, "generate", 0, "number of extra fake questions to generate")
	flag.Parse()

	cfg := config.Load(configPath)

	storage, err := postgres.New(cfg.StoragePath)
	if err != nil {
		log.Fatal(err)
	}
	defer storage.Close()

	ctx := context.Background()

	data, err := os.ReadFile(fixturesPath)
	if err != nil {
		log.Fatal(err)
	}

	var fixtures fixtureFile
	if err := yaml.Unmarshal(data, &fixtures); err != nil {
		log.Fatal(err)
	}

	for _, fu := range fixtures.Users {
		passHash, err := bcrypt.GenerateFromPassword([]byte(fu.Password), bcrypt.DefaultCost)
		if err != nil {
			log.Fatal(err)
		}

		id, err := storage.SaveUser(ctx, entity.User{
			Username:  fu.Username,
			Email:     fu.Email,
			FirstName: fu.FirstName,
			LastName:  fu.LastName,
			PassHash:  passHash,
			IsActive:  true,
			IsStaff:   fu.IsStaff,
		})
		if err != nil {
			log.Printf("skipping user %q: %v", fu.Username, err)
			continue
		}
		fmt.Printf("user %q created (id=%d)\n", fu.Username, id)
	}

	for _, fq := range fixtures.Questions {
		if err := seedQuestion(ctx, storage, fq); err != nil {
			log.Fatal(err)
		}
	}

	for i := 0; i < generate; i++ {
		fq := fixtureQuestion{
			QuestionText: gofakeit.Question(),
			PubDate:      gofakeit.DateRange(time.Now().AddDate(0, -1, 0), time.Now()),
		}
		for j := 0; j < gofakeit.Number(2, 5); j++ {
			fq.Choices = append(fq.Choices, fixtureChoice{
				ChoiceText: gofakeit.HipsterSentence(3),
				Votes:      int64(gofakeit.Number(0, 50)),
			})
		}
		if err := seedQuestion(ctx, storage, fq); err != nil {
			log.Fatal(err)
		}
	}

	fmt.Println("fixtures loaded")
}

func seedQuestion(ctx context.Context, storage *postgres.Storage, fq fixtureQuestion) error {
	questionID, err := storage.SaveQuestion(ctx, fq.QuestionText, fq.PubDate, nil)
	if err != nil {
		return fmt.Errorf("save question %q: %w", fq.QuestionText, err)
	}

	for _, fc := range fq.Choices {
		if _, err := storage.SaveChoice(ctx, questionID, fc.ChoiceText, fc.Votes); err != nil {
			return fmt.Errorf("save choice %q: %w", fc.ChoiceText, err)
		}
	}

	fmt.Printf("question %q created (id=%d, choices=%d)\n", fq.QuestionText, questionID, len(fq.Choices))
	return nil
}
