package polls

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/14kear/polls-api/internal/entity"
)

type Polls struct {
	log             *slog.Logger
	questionStorage QuestionStorage
	choiceStorage   ChoiceStorage
	answerStorage   AnswerStorage
	userProvider    UserProvider
}

type QuestionStorage interface {
	SaveQuestion(ctx context.Context, text string, pubDate time.Time, createdBy *int64) (int64, error)
	GetQuestionByID(ctx context.Context, id int64) (entity.Question, error)
	GetQuestions(ctx context.Context) ([]entity.Question, error)
	UpdateQuestion(ctx context.Context, id int64, text string, pubDate time.Time) error
	DeleteQuestion(ctx context.Context, id int64) error
}

type ChoiceStorage interface {
	SaveChoice(ctx context.Context, questionID int64, text string, votes int64) (int64, error)
	GetChoiceByID(ctx context.Context, id int64) (entity.Choice, error)
	GetChoices(ctx context.Context) ([]entity.Choice, error)
	GetChoicesByQuestionID(ctx context.Context, questionID int64) ([]entity.Choice, error)
	UpdateChoice(ctx context.Context, id, questionID int64, text string, votes int64) error
	DeleteChoice(ctx context.Context, id int64) error
}

type AnswerStorage interface {
	SaveAnswer(ctx context.Context, choiceID, userID int64) (int64, error)
	GetAnswerByID(ctx context.Context, id int64) (entity.Answer, error)
	GetAnswers(ctx context.Context) ([]entity.Answer, error)
	DeleteAnswer(ctx context.Context, id int64) error
	GetTalliesByQuestionID(ctx context.Context, questionID int64) ([]entity.ChoiceTally, error)
}

type UserProvider interface {
	IsStaff(ctx context.Context, userID int64) (bool, error)
}

var ErrPermissionDenied = errors.New("permission denied")

func NewPolls(
	log *slog.Logger,
	questionStorage QuestionStorage,
	choiceStorage ChoiceStorage,
	answerStorage AnswerStorage,
	userProvider UserProvider,
) *Polls {
	return &Polls{
		log:             log,
		questionStorage: questionStorage,
		choiceStorage:   choiceStorage,
		answerStorage:   answerStorage,
		userProvider:    userProvider,
	}
}

func (p *Polls) CreateQuestion(ctx context.Context, text string, pubDate time.Time, userID int64) (int64, error) {
	const op = "polls.CreateQuestion"

	createdBy := &userID

	id, err := p.questionStorage.SaveQuestion(ctx, text, pubDate, createdBy)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	p.log.Info("question created", slog.String("op", op), slog.Int64("id", id))

	return id, nil
}

func (p *Polls) GetQuestionByID(ctx context.Context, id int64) (entity.Question, error) {
	const op = "polls.GetQuestionByID"

	question, err := p.questionStorage.GetQuestionByID(ctx, id)
	if err != nil {
		return entity.Question{}, fmt.Errorf("%s: %w", op, err)
	}

	return question, nil
}

func (p *Polls) GetQuestions(ctx context.Context) ([]entity.Question, error) {
	const op = "polls.GetQuestions"

	questions, err := p.questionStorage.GetQuestions(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return questions, nil
}

func (p *Polls) UpdateQuestion(ctx context.Context, id int64, text string, pubDate time.Time) error {
	const op = "polls.UpdateQuestion"

	if err := p.questionStorage.UpdateQuestion(ctx, id, text, pubDate); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// DeleteQuestion removes a question and, via cascade, its choices. Staff only.
func (p *Polls) DeleteQuestion(ctx context.Context, id, userID int64) error {
	const op = "polls.DeleteQuestion"

	if err := p.requireStaff(ctx, userID, op); err != nil {
		return err
	}

	if err := p.questionStorage.DeleteQuestion(ctx, id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	p.log.Info("question deleted", slog.String("op", op), slog.Int64("id", id))

	return nil
}

func (p *Polls) CreateChoice(ctx context.Context, questionID int64, text string, votes int64) (int64, error) {
	const op = "polls.CreateChoice"

	id, err := p.choiceStorage.SaveChoice(ctx, questionID, text, votes)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return id, nil
}

func (p *Polls) GetChoiceByID(ctx context.Context, id int64) (entity.Choice, error) {
	const op = "polls.GetChoiceByID"

	choice, err := p.choiceStorage.GetChoiceByID(ctx, id)
	if err != nil {
		return entity.Choice{}, fmt.Errorf("%s: %w", op, err)
	}

	return choice, nil
}

func (p *Polls) GetChoices(ctx context.Context) ([]entity.Choice, error) {
	const op = "polls.GetChoices"

	choices, err := p.choiceStorage.GetChoices(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return choices, nil
}

// GetChoicesByQuestionID lists the choices of a single question. An unknown
// question id surfaces as ErrQuestionNotFound rather than an empty list.
func (p *Polls) GetChoicesByQuestionID(ctx context.Context, questionID int64) ([]entity.Choice, error) {
	const op = "polls.GetChoicesByQuestionID"

	if _, err := p.questionStorage.GetQuestionByID(ctx, questionID); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	choices, err := p.choiceStorage.GetChoicesByQuestionID(ctx, questionID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return choices, nil
}

func (p *Polls) UpdateChoice(ctx context.Context, id, questionID int64, text string, votes int64) error {
	const op = "polls.UpdateChoice"

	if err := p.choiceStorage.UpdateChoice(ctx, id, questionID, text, votes); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// DeleteChoice removes a choice. Staff only.
func (p *Polls) DeleteChoice(ctx context.Context, id, userID int64) error {
	const op = "polls.DeleteChoice"

	if err := p.requireStaff(ctx, userID, op); err != nil {
		return err
	}

	if err := p.choiceStorage.DeleteChoice(ctx, id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// SaveAnswer records the user's vote for a choice.
func (p *Polls) SaveAnswer(ctx context.Context, choiceID, userID int64) (int64, error) {
	const op = "polls.SaveAnswer"

	id, err := p.answerStorage.SaveAnswer(ctx, choiceID, userID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	p.log.Info("answer recorded", slog.String("op", op), slog.Int64("choiceID", choiceID), slog.Int64("userID", userID))

	return id, nil
}

// GetAnswerByID returns a single answer. Users see their own; staff see all.
func (p *Polls) GetAnswerByID(ctx context.Context, id, userID int64) (entity.Answer, error) {
	const op = "polls.GetAnswerByID"

	answer, err := p.answerStorage.GetAnswerByID(ctx, id)
	if err != nil {
		return entity.Answer{}, fmt.Errorf("%s: %w", op, err)
	}

	if answer.UserID != userID {
		if err := p.requireStaff(ctx, userID, op); err != nil {
			return entity.Answer{}, err
		}
	}

	return answer, nil
}

// GetAnswers lists every recorded answer. Staff only.
func (p *Polls) GetAnswers(ctx context.Context, userID int64) ([]entity.Answer, error) {
	const op = "polls.GetAnswers"

	if err := p.requireStaff(ctx, userID, op); err != nil {
		return nil, err
	}

	answers, err := p.answerStorage.GetAnswers(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return answers, nil
}

// DeleteAnswer retracts a vote. Staff only.
func (p *Polls) DeleteAnswer(ctx context.Context, id, userID int64) error {
	const op = "polls.DeleteAnswer"

	if err := p.requireStaff(ctx, userID, op); err != nil {
		return err
	}

	if err := p.answerStorage.DeleteAnswer(ctx, id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// GetQuestionResults returns a question together with its per-choice tallies.
func (p *Polls) GetQuestionResults(ctx context.Context, questionID int64) (entity.Question, []entity.ChoiceTally, error) {
	const op = "polls.GetQuestionResults"

	question, err := p.questionStorage.GetQuestionByID(ctx, questionID)
	if err != nil {
		return entity.Question{}, nil, fmt.Errorf("%s: %w", op, err)
	}

	tallies, err := p.answerStorage.GetTalliesByQuestionID(ctx, questionID)
	if err != nil {
		return entity.Question{}, nil, fmt.Errorf("%s: %w", op, err)
	}

	return question, tallies, nil
}

func (p *Polls) requireStaff(ctx context.Context, userID int64, op string) error {
	isStaff, err := p.userProvider.IsStaff(ctx, userID)
	if err != nil {
		return fmt.Errorf("%s: failed to check staff rights: %w", op, err)
	}
	if !isStaff {
		return fmt.Errorf("%s: %w", op, ErrPermissionDenied)
	}
	return nil
}
