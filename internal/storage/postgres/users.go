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

func (s *Storage) SaveUser(ctx context.Context, user entity.User) (int64, error) {
	const op = "storage.postgres.SaveUser"

	query := `INSERT INTO users (username, email, first_name, last_name, pass_hash, is_active, is_staff)
		VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`

	var id int64
	err := s.db.QueryRowContext(ctx, query,
		user.Username, user.Email, user.FirstName, user.LastName, user.PassHash, user.IsActive, user.IsStaff,
	).Scan(&id)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return 0, fmt.Errorf("%s: %w", op, storage.ErrUserExists)
		}
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return id, nil
}

func (s *Storage) UserByUsername(ctx context.Context, username string) (entity.User, error) {
	const op = "storage.postgres.UserByUsername"

	query := `SELECT id, username, email, first_name, last_name, pass_hash, is_active, is_staff, date_joined
		FROM users WHERE username = $1`

	return s.scanUser(ctx, op, query, username)
}

func (s *Storage) UserByID(ctx context.Context, id int64) (entity.User, error) {
	const op = "storage.postgres.UserByID"

	query := `SELECT id, username, email, first_name, last_name, pass_hash, is_active, is_staff, date_joined
		FROM users WHERE id = $1`

	return s.scanUser(ctx, op, query, id)
}

func (s *Storage) scanUser(ctx context.Context, op, query string, arg any) (entity.User, error) {
	var user entity.User
	err := s.db.QueryRowContext(ctx, query, arg).Scan(
		&user.ID, &user.Username, &user.Email, &user.FirstName, &user.LastName,
		&user.PassHash, &user.IsActive, &user.IsStaff, &user.DateJoined,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return entity.User{}, fmt.Errorf("%s: %w", op, storage.ErrUserNotFound)
		}
		return entity.User{}, fmt.Errorf("%s: %w", op, err)
	}
	return user, nil
}

func (s *Storage) GetUsers(ctx context.Context) ([]entity.User, error) {
	const op = "storage.postgres.GetUsers"

	query := `SELECT id, username, email, first_name, last_name, pass_hash, is_active, is_staff, date_joined
		FROM users ORDER BY id`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var users []entity.User
	for rows.Next() {
		var user entity.User
		if err := rows.Scan(
			&user.ID, &user.Username, &user.Email, &user.FirstName, &user.LastName,
			&user.PassHash, &user.IsActive, &user.IsStaff, &user.DateJoined,
		); err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}
		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: rows error: %w", op, err)
	}

	return users, nil
}

func (s *Storage) UpdateUser(ctx context.Context, user entity.User) error {
	const op = "storage.postgres.UpdateUser"

	query := `UPDATE users SET username = $1, email = $2, first_name = $3, last_name = $4,
		pass_hash = $5, is_active = $6, is_staff = $7 WHERE id = $8`

	res, err := s.db.ExecContext(ctx, query,
		user.Username, user.Email, user.FirstName, user.LastName,
		user.PassHash, user.IsActive, user.IsStaff, user.ID,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return fmt.Errorf("%s: %w", op, storage.ErrUserExists)
		}
		return fmt.Errorf("%s: %w", op, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrUserNotFound)
	}
	return nil
}

func (s *Storage) DeleteUser(ctx context.Context, id int64) error {
	const op = "storage.postgres.DeleteUser"

	res, err := s.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if n, _ := res.RowsAffected(); n == 0 {
		return storage.ErrUserNotFound
	}

	return nil
}

func (s *Storage) IsStaff(ctx context.Context, userID int64) (bool, error) {
	const op = "storage.postgres.IsStaff"

	var isStaff bool
	err := s.db.QueryRowContext(ctx, `SELECT is_staff FROM users WHERE id = $1`, userID).Scan(&isStaff)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, fmt.Errorf("%s: %w", op, storage.ErrUserNotFound)
		}
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return isStaff, nil
}

func (s *Storage) SaveToken(ctx context.Context, userID int64, token string, expiresAt time.Time) (int64, error) {
	const op = "storage.postgres.SaveToken"

	query := `INSERT INTO refresh_tokens (user_id, token, expires_at) VALUES ($1, $2, $3) RETURNING id`

	var id int64
	err := s.db.QueryRowContext(ctx, query, userID, token, expiresAt).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return id, nil
}

func (s *Storage) IsRefreshTokenValid(ctx context.Context, userID int64, token string) (bool, error) {
	const op = "storage.postgres.IsRefreshTokenValid"

	query := `SELECT EXISTS(
		SELECT 1 FROM refresh_tokens
		WHERE token = $1 AND user_id = $2 AND revoked = FALSE AND expires_at > NOW()
	)`

	var isValid bool
	err := s.db.QueryRowContext(ctx, query, token, userID).Scan(&isValid)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}

	return isValid, nil
}

// RevokeRefreshToken marks a stored refresh token as revoked so it no longer
// passes IsRefreshTokenValid. Already-revoked tokens count as not found.
func (s *Storage) RevokeRefreshToken(ctx context.Context, userID int64, token string) error {
	const op = "storage.postgres.RevokeRefreshToken"

	query := `UPDATE refresh_tokens SET revoked = TRUE WHERE token = $1 AND user_id = $2 AND revoked = FALSE`

	res, err := s.db.ExecContext(ctx, query, token, userID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrTokenNotFound)
	}

	return nil
}
