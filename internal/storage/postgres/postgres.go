package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/14kear/polls-api/internal/entity"
	"github.com/14kear/polls-api/internal/storage"
	"github.com/lib/pq"
)

type Storage struct {
	db *sql.DB
}

func New(postgresURL string) (*Storage, error) {
	const op = "storage.postgres.New"

	db, err := sql.Open("postgres", postgresURL)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Storage{db: db}, nil
}

func (s *Storage) Close() error {
	return s.db.Close()
}

func (s *Storage) SaveQuestion(ctx context.Context, text string, pubDate time.Time, createdBy *int64) (int64, error) {
	const op = "storage.postgres.SaveQuestion"

	query := `INSERT INTO questions (question_text, pub_date, created_by) VALUES ($1, $2, $3) RETURNING id`

	var id int64
	err := s.db.QueryRowContext(ctx, query, text, pubDate, createdBy).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return id, nil
}

func (s *Storage) GetQuestionByID(ctx context.Context, id int64) (entity.Question, error) {
	const op = "storage.postgres.GetQuestionByID"

	query := `SELECT id, question_text, pub_date, created_by FROM questions WHERE id = $1`

	var question entity.Question
	err := s.db.QueryRowContext(ctx, query, id).Scan(&question.ID, &question.QuestionText, &question.PubDate, &question.CreatedBy)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return entity.Question{}, fmt.Errorf("%s: %w", op, storage.ErrQuestionNotFound)
		}
		return entity.Question{}, fmt.Errorf("%s: %w", op, err)
	}

	return question, nil
}

func (s *Storage) GetQuestions(ctx context.Context) ([]entity.Question, error) {
	const op = "storage.postgres.GetQuestions"

	query := `SELECT id, question_text, pub_date, created_by FROM questions ORDER BY id`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var questions []entity.Question
	for rows.Next() {
		var question entity.Question
		if err := rows.Scan(&question.ID, &question.QuestionText, &question.PubDate, &question.CreatedBy); err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}
		questions = append(questions, question)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: rows error: %w", op, err)
	}

	return questions, nil
}

func (s *Storage) UpdateQuestion(ctx context.Context, id int64, text string, pubDate time.Time) error {
	const op = "storage.postgres.UpdateQuestion"

	const query = `UPDATE questions SET question_text = $1, pub_date = $2 WHERE id = $3`

	res, err := s.db.ExecContext(ctx, query, text, pubDate, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrQuestionNotFound)
	}
	return nil
}

func (s *Storage) DeleteQuestion(ctx context.Context, id int64) error {
	const op = "storage.postgres.DeleteQuestion"

	query := `DELETE FROM questions WHERE id = $1`

	res, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if n, _ := res.RowsAffected(); n == 0 {
		return storage.ErrQuestionNotFound
	}

	return nil
}

func (s *Storage) SaveChoice(ctx context.Context, questionID int64, text string, votes int64) (int64, error) {
	const op = "storage.postgres.SaveChoice"

	query := `INSERT INTO choices (question_id, choice_text, votes) VALUES ($1, $2, $3) RETURNING id`

	var id int64
	err := s.db.QueryRowContext(ctx, query, questionID, text, votes).Scan(&id)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23503" {
			return 0, fmt.Errorf("%s: %w", op, storage.ErrQuestionNotFound)
		}
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return id, nil
}

func (s *Storage) GetChoiceByID(ctx context.Context, id int64) (entity.Choice, error) {
	const op = "storage.postgres.GetChoiceByID"

	query := `SELECT id, question_id, choice_text, votes FROM choices WHERE id = $1`

	var choice entity.Choice
	err := s.db.QueryRowContext(ctx, query, id).Scan(&choice.ID, &choice.QuestionID, &choice.ChoiceText, &choice.Votes)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return entity.Choice{}, fmt.Errorf("%s: %w", op, storage.ErrChoiceNotFound)
		}
		return entity.Choice{}, fmt.Errorf("%s: %w", op, err)
	}

	return choice, nil
}

func (s *Storage) GetChoices(ctx context.Context) ([]entity.Choice, error) {
	const op = "storage.postgres.GetChoices"

	query := `SELECT id, question_id, choice_text, votes FROM choices ORDER BY id`

	return s.scanChoices(ctx, op, query)
}

func (s *Storage) GetChoicesByQuestionID(ctx context.Context, questionID int64) ([]entity.Choice, error) {
	const op = "storage.postgres.GetChoicesByQuestionID"

	query := `SELECT id, question_id, choice_text, votes FROM choices WHERE question_id = $1 ORDER BY id`

	return s.scanChoices(ctx, op, query, questionID)
}

func (s *Storage) scanChoices(ctx context.Context, op, query string, args ...any) ([]entity.Choice, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var choices []entity.Choice
	for rows.Next() {
		var choice entity.Choice
		if err := rows.Scan(&choice.ID, &choice.QuestionID, &choice.ChoiceText, &choice.Votes); err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}
		choices = append(choices, choice)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: rows error: %w", op, err)
	}

	return choices, nil
}

func (s *Storage) UpdateChoice(ctx context.Context, id, questionID int64, text string, votes int64) error {
	const op = "storage.postgres.UpdateChoice"

	const query = `UPDATE choices SET question_id = $1, choice_text = $2, votes = $3 WHERE id = $4`

	res, err := s.db.ExecContext(ctx, query, questionID, text, votes, id)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23503" {
			return fmt.Errorf("%s: %w", op, storage.ErrQuestionNotFound)
		}
		return fmt.Errorf("%s: %w", op, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrChoiceNotFound)
	}
	return nil
}

func (s *Storage) DeleteChoice(ctx context.Context, id int64) error {
	const op = "storage.postgres.DeleteChoice"

	query := `DELETE FROM choices WHERE id = $1`

	res, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if n, _ := res.RowsAffected(); n == 0 {
		return storage.ErrChoiceNotFound
	}

	return nil
}

// SaveAnswer records a vote and bumps the choice counter in one transaction.
func (s *Storage) SaveAnswer(ctx context.Context, choiceID, userID int64) (int64, error) {
	const op = "storage.postgres.SaveAnswer"

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	defer tx.Rollback()

	var id int64
	err = tx.QueryRowContext(ctx,
		`INSERT INTO answers (choice_id, user_id) VALUES ($1, $2) RETURNING id`,
		choiceID, userID,
	).Scan(&id)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23503" {
			return 0, fmt.Errorf("%s: %w", op, storage.ErrChoiceNotFound)
		}
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	if _, err := tx.ExecContext(ctx, `UPDATE choices SET votes = votes + 1 WHERE id = $1`, choiceID); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return id, nil
}

func (s *Storage) GetAnswerByID(ctx context.Context, id int64) (entity.Answer, error) {
	const op = "storage.postgres.GetAnswerByID"

	query := `SELECT id, choice_id, user_id, created_at FROM answers WHERE id = $1`

	var answer entity.Answer
	err := s.db.QueryRowContext(ctx, query, id).Scan(&answer.ID, &answer.ChoiceID, &answer.UserID, &answer.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return entity.Answer{}, fmt.Errorf("%s: %w", op, storage.ErrAnswerNotFound)
		}
		return entity.Answer{}, fmt.Errorf("%s: %w", op, err)
	}

	return answer, nil
}

func (s *Storage) GetAnswers(ctx context.Context) ([]entity.Answer, error) {
	const op = "storage.postgres.GetAnswers"

	query := `SELECT id, choice_id, user_id, created_at FROM answers ORDER BY created_at DESC`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var answers []entity.Answer
	for rows.Next() {
		var answer entity.Answer
		if err := rows.Scan(&answer.ID, &answer.ChoiceID, &answer.UserID, &answer.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}
		answers = append(answers, answer)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: rows error: %w", op, err)
	}

	return answers, nil
}

// DeleteAnswer removes a vote and restores the choice counter it bumped.
func (s *Storage) DeleteAnswer(ctx context.Context, id int64) error {
	const op = "storage.postgres.DeleteAnswer"

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer tx.Rollback()

	var choiceID int64
	err = tx.QueryRowContext(ctx, `DELETE FROM answers WHERE id = $1 RETURNING choice_id`, id).Scan(&choiceID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return storage.ErrAnswerNotFound
		}
		return fmt.Errorf("%s: %w", op, err)
	}

	if _, err := tx.ExecContext(ctx, `UPDATE choices SET votes = votes - 1 WHERE id = $1`, choiceID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (s *Storage) GetTalliesByQuestionID(ctx context.Context, questionID int64) ([]entity.ChoiceTally, error) {
	const op = "storage.postgres.GetTalliesByQuestionID"

	query := `SELECT id, choice_text, votes FROM choices WHERE question_id = $1 ORDER BY votes DESC, id`

	rows, err := s.db.QueryContext(ctx, query, questionID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var tallies []entity.ChoiceTally
	for rows.Next() {
		var tally entity.ChoiceTally
		if err := rows.Scan(&tally.ChoiceID, &tally.ChoiceText, &tally.Votes); err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}
		tallies = append(tallies, tally)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: rows error: %w", op, err)
	}

	return tallies, nil
}
