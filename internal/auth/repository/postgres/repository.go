package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/ancheloroman23/EasyLogin/internal/auth/domain"
	apperr "github.com/ancheloroman23/EasyLogin/internal/errors"
)

const uniqueViolationCode = "23505"

// PgxIface is the slice of pgxpool.Pool the repository needs; pgxmock
// satisfies it in tests.
type PgxIface interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type PostgresRepository struct {
	db PgxIface
}

func NewPostgresRepository(db PgxIface) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) queryUser(ctx context.Context, query string, args ...any) (*domain.User, error) {
	row := r.db.QueryRow(ctx, query, args...)

	var user domain.User
	err := row.Scan(&user.ID, &user.Name, &user.Surname, &user.Username, &user.Email,
		&user.PasswordHash, &user.AuthToken)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query user: %w", err)
	}

	return &user, nil
}

func (r *PostgresRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	query := `
		SELECT id, name, surname, username, email, password_hash, auth_token
		FROM users
		WHERE username = $1
		LIMIT 1;
	`
	return r.queryUser(ctx, query, username)
}

func (r *PostgresRepository) GetByUsernameOrEmail(ctx context.Context, username, email string) (*domain.User, error) {
	query := `
		SELECT id, name, surname, username, email, password_hash, auth_token
		FROM users
		WHERE username = $1 OR email = $2
		LIMIT 1;
	`
	return r.queryUser(ctx, query, username, email)
}

func (r *PostgresRepository) GetByAuthToken(ctx context.Context, token string) (*domain.User, error) {
	query := `
		SELECT id, name, surname, username, email, password_hash, auth_token
		FROM users
		WHERE auth_token = $1
		LIMIT 1;
	`
	return r.queryUser(ctx, query, token)
}

func (r *PostgresRepository) Create(ctx context.Context, user *domain.User) error {
	query := `
		INSERT INTO users (name, surname, username, email, password_hash, auth_token)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id;
	`
	err := r.db.QueryRow(ctx, query,
		user.Name, user.Surname, user.Username, user.Email, user.PasswordHash, user.AuthToken,
	).Scan(&user.ID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			// A concurrent registration won the race between the existence
			// check and this insert.
			return apperr.ErrUsernameOrEmailInUse
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

func (r *PostgresRepository) UpdateAuthToken(ctx context.Context, userID int, token string) error {
	_, err := r.db.Exec(ctx, `UPDATE users SET auth_token = $1 WHERE id = $2`, token, userID)
	if err != nil {
		return fmt.Errorf("failed to update auth token: %w", err)
	}

	return nil
}

func (r *PostgresRepository) UpdatePasswordHash(ctx context.Context, userID int, hash string) error {
	_, err := r.db.Exec(ctx, `UPDATE users SET password_hash = $1 WHERE id = $2`, hash, userID)
	if err != nil {
		return fmt.Errorf("failed to update password hash: %w", err)
	}

	return nil
}

func (r *PostgresRepository) RecordAuditLog(ctx context.Context, entry *domain.AuditLog) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO audit_logs (user_id, endpoint, parameters, created_at)
		VALUES ($1, $2, $3, now())
	`, entry.UserID, entry.Endpoint, entry.Parameters)
	if err != nil {
		return fmt.Errorf("failed to record audit log: %w", err)
	}

	return nil
}
