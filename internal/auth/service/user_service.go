package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/ancheloroman23/EasyLogin/internal/auth/domain"
	"github.com/ancheloroman23/EasyLogin/internal/auth/dto"
	apperr "github.com/ancheloroman23/EasyLogin/internal/errors"
	"github.com/ancheloroman23/EasyLogin/pkg/constant"
)

type UserService struct {
	repo             domain.UserRepository
	tokenService     TokenGenerator
	hasher           PasswordHasher
	strictTokenCheck bool
}

func NewUserService(repo domain.UserRepository, tokenService TokenGenerator, hasher PasswordHasher, strictTokenCheck bool) *UserService {
	return &UserService{
		repo:             repo,
		tokenService:     tokenService,
		hasher:           hasher,
		strictTokenCheck: strictTokenCheck,
	}
}

func (s *UserService) Register(ctx context.Context, input dto.RegisterInput) (*domain.User, error) {
	existing, err := s.repo.GetByUsernameOrEmail(ctx, input.Username, input.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperr.ErrUsernameOrEmailInUse
	}

	if strings.TrimSpace(input.Username) == "" || strings.TrimSpace(input.Password) == "" || strings.TrimSpace(input.Email) == "" {
		return nil, apperr.ErrAllFieldsRequired
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Name:         input.Name,
		Surname:      input.Surname,
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: hash,
		// Placeholder until the first login swaps in a signed token.
		AuthToken: uuid.NewString(),
	}

	// The unique indexes on username and email back this up: a concurrent
	// registration that slips past the check above surfaces as
	// ErrUsernameOrEmailInUse from Create.
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

func (s *UserService) Login(ctx context.Context, input dto.LoginInput) (*domain.User, error) {
	user, err := s.repo.GetByUsername(ctx, input.Username)
	if err != nil {
		return nil, err
	}

	// Same error for unknown username and wrong password, so callers cannot
	// enumerate accounts.
	if user == nil || !s.hasher.Verify(user.PasswordHash, input.Password) {
		return nil, apperr.ErrInvalidCredentials
	}

	entry := &domain.AuditLog{
		UserID:     user.ID,
		Endpoint:   constant.LoginEndpointTag,
		Parameters: fmt.Sprintf("username=%s", input.Username),
	}
	if err := s.repo.RecordAuditLog(ctx, entry); err != nil {
		return nil, err
	}

	token, _, err := s.tokenService.Generate(user.ID)
	if err != nil {
		return nil, err
	}

	if err := s.repo.UpdateAuthToken(ctx, user.ID, token); err != nil {
		return nil, err
	}
	user.AuthToken = token

	return user, nil
}

func (s *UserService) ChangePassword(ctx context.Context, user *domain.User, input dto.PasswordChangeInput) error {
	if !s.hasher.Verify(user.PasswordHash, input.OldPassword) {
		return apperr.ErrIncorrectOldPassword
	}

	if input.NewPassword != input.ConfirmPassword {
		return apperr.ErrPasswordMismatch
	}

	hash, err := s.hasher.Hash(input.NewPassword)
	if err != nil {
		return err
	}

	if err := s.repo.UpdatePasswordHash(ctx, user.ID, hash); err != nil {
		return err
	}
	user.PasswordHash = hash

	return nil
}

// Authenticate resolves the bearer token in an Authorization header to the
// user it was last issued to. Tokens are matched by equality against the
// stored value, so a token stays valid until the next login replaces it. With
// strict checking enabled the token's signature, issuer, audience and expiry
// are verified before the lookup.
func (s *UserService) Authenticate(ctx context.Context, authorizationHeader string) (*domain.User, error) {
	if !strings.HasPrefix(authorizationHeader, constant.BearerPrefix) {
		return nil, apperr.ErrInvalidToken
	}

	token := strings.TrimPrefix(authorizationHeader, constant.BearerPrefix)
	if token == "" {
		return nil, apperr.ErrInvalidToken
	}

	if s.strictTokenCheck {
		if _, err := s.tokenService.Verify(token); err != nil {
			return nil, apperr.ErrInvalidToken
		}
	}

	user, err := s.repo.GetByAuthToken(ctx, token)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperr.ErrInvalidToken
	}

	return user, nil
}
