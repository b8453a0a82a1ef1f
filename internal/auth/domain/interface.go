package domain

import "context"

//go:generate mockgen -destination=../../mocks/mock_user_repository.go -package=mocks github.com/ancheloroman23/EasyLogin/internal/auth/domain UserRepository

type UserRepository interface {
	GetByUsername(ctx context.Context, username string) (*User, error)
	GetByUsernameOrEmail(ctx context.Context, username, email string) (*User, error)
	GetByAuthToken(ctx context.Context, token string) (*User, error)
	Create(ctx context.Context, user *User) error
	UpdateAuthToken(ctx context.Context, userID int, token string) error
	UpdatePasswordHash(ctx context.Context, userID int, hash string) error
	RecordAuditLog(ctx context.Context, entry *AuditLog) error
}
