package handler_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang/mock/gomock"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/ancheloroman23/EasyLogin/internal/auth/domain"
	"github.com/ancheloroman23/EasyLogin/internal/auth/dto"
	"github.com/ancheloroman23/EasyLogin/internal/auth/handler"
	"github.com/ancheloroman23/EasyLogin/internal/auth/service"
	"github.com/ancheloroman23/EasyLogin/internal/mocks"
	"github.com/ancheloroman23/EasyLogin/pkg/constant"
)

type userPayload struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	Surname   string `json:"surname"`
	Username  string `json:"username"`
	Password  string `json:"password"`
	Email     string `json:"email"`
	AuthToken string `json:"authToken"`
}

type envelope struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	Data    *userPayload `json:"data"`
	Error   string       `json:"error"`
}

func newTestApp(t *testing.T) (*fiber.App, *mocks.MockUserRepository, *mocks.MockTokenGenerator) {
	t.Helper()

	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	mockRepo := mocks.NewMockUserRepository(ctrl)
	mockTokens := mocks.NewMockTokenGenerator(ctrl)

	log := logrus.New()
	log.SetOutput(io.Discard)

	userService := service.NewUserService(mockRepo, mockTokens, service.NewPasswordHasher(), false)
	authHandler := handler.NewAuthHandler(userService, log)

	app := fiber.New()
	handler.RegisterRoutes(app, authHandler)

	return app, mockRepo, mockTokens
}

func doRequest(t *testing.T, app *fiber.App, method, path string, body any, headers map[string]string) (*http.Response, envelope) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	var env envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))

	return resp, env
}

func testExpiry() time.Time {
	return time.Now().Add(time.Hour)
}

func bcryptHash(t *testing.T, password string) string {
	t.Helper()
	digest, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	require.NoError(t, err)
	return string(digest)
}

func TestRegisterEndpoint(t *testing.T) {
	t.Run("success scrubs password and id", func(t *testing.T) {
		app, mockRepo, _ := newTestApp(t)

		mockRepo.EXPECT().GetByUsernameOrEmail(gomock.Any(), "alice", "a@x.com").Return(nil, nil)
		mockRepo.EXPECT().Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ interface{}, user *domain.User) error {
				user.ID = 17
				return nil
			})

		resp, env := doRequest(t, app, http.MethodPost, "/registerUser", dto.RegisterInput{
			Name:     "Alice",
			Surname:  "Smith",
			Username: "alice",
			Password: "password123",
			Email:    "a@x.com",
		}, nil)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.True(t, env.Success)
		assert.Equal(t, "Registration successful", env.Message)
		require.NotNil(t, env.Data)
		assert.Equal(t, 0, env.Data.ID)
		assert.Equal(t, constant.PasswordPlaceholder, env.Data.Password)
		assert.Equal(t, "alice", env.Data.Username)
		assert.NotEmpty(t, env.Data.AuthToken)
	})

	t.Run("duplicate username or email", func(t *testing.T) {
		app, mockRepo, _ := newTestApp(t)

		existing := &domain.User{ID: 1, Username: "alice"}
		mockRepo.EXPECT().GetByUsernameOrEmail(gomock.Any(), "alice", "a@x.com").Return(existing, nil)

		resp, env := doRequest(t, app, http.MethodPost, "/registerUser", dto.RegisterInput{
			Username: "alice",
			Password: "password123",
			Email:    "a@x.com",
		}, nil)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.False(t, env.Success)
		assert.Equal(t, "Registration failed", env.Message)
		assert.Contains(t, env.Error, "already in use")
		assert.Nil(t, env.Data)
	})

	t.Run("missing fields", func(t *testing.T) {
		app, mockRepo, _ := newTestApp(t)

		mockRepo.EXPECT().GetByUsernameOrEmail(gomock.Any(), "", "").Return(nil, nil)

		resp, env := doRequest(t, app, http.MethodPost, "/registerUser", dto.RegisterInput{}, nil)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.False(t, env.Success)
		assert.Equal(t, "All fields are required", env.Error)
	})

	t.Run("malformed body", func(t *testing.T) {
		app, _, _ := newTestApp(t)

		req := httptest.NewRequest(http.MethodPost, "/registerUser", bytes.NewReader([]byte("{not json")))
		req.Header.Set("Content-Type", "application/json")

		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("store failure stays inside the envelope", func(t *testing.T) {
		app, mockRepo, _ := newTestApp(t)

		mockRepo.EXPECT().GetByUsernameOrEmail(gomock.Any(), "alice", "a@x.com").
			Return(nil, errors.New("connection reset"))

		resp, env := doRequest(t, app, http.MethodPost, "/registerUser", dto.RegisterInput{
			Username: "alice",
			Password: "password123",
			Email:    "a@x.com",
		}, nil)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.False(t, env.Success)
		assert.Equal(t, "internal server error", env.Error)
	})
}

func TestLoginEndpoint(t *testing.T) {
	t.Run("success returns the new token", func(t *testing.T) {
		app, mockRepo, mockTokens := newTestApp(t)

		stored := &domain.User{
			ID:           5,
			Name:         "Alice",
			Username:     "alice",
			Email:        "a@x.com",
			PasswordHash: bcryptHash(t, "correct-horse"),
			AuthToken:    "previous-token",
		}

		mockRepo.EXPECT().GetByUsername(gomock.Any(), "alice").Return(stored, nil)
		mockRepo.EXPECT().RecordAuditLog(gomock.Any(), gomock.Any()).Return(nil)
		mockTokens.EXPECT().Generate(5).Return("fresh-signed-token", testExpiry(), nil)
		mockRepo.EXPECT().UpdateAuthToken(gomock.Any(), 5, "fresh-signed-token").Return(nil)

		resp, env := doRequest(t, app, http.MethodPost, "/login", dto.LoginInput{
			Username: "alice",
			Password: "correct-horse",
		}, nil)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.True(t, env.Success)
		assert.Equal(t, "Login successful", env.Message)
		require.NotNil(t, env.Data)
		assert.Equal(t, "fresh-signed-token", env.Data.AuthToken)
		assert.Equal(t, 0, env.Data.ID)
		assert.Equal(t, constant.PasswordPlaceholder, env.Data.Password)
	})

	t.Run("unknown user and wrong password are indistinguishable", func(t *testing.T) {
		app, mockRepo, _ := newTestApp(t)

		mockRepo.EXPECT().GetByUsername(gomock.Any(), "nobody").Return(nil, nil)
		_, envUnknown := doRequest(t, app, http.MethodPost, "/login", dto.LoginInput{
			Username: "nobody",
			Password: "whatever",
		}, nil)

		stored := &domain.User{ID: 5, Username: "alice", PasswordHash: bcryptHash(t, "correct-horse")}
		mockRepo.EXPECT().GetByUsername(gomock.Any(), "alice").Return(stored, nil)
		_, envWrongPass := doRequest(t, app, http.MethodPost, "/login", dto.LoginInput{
			Username: "alice",
			Password: "wrong",
		}, nil)

		assert.False(t, envUnknown.Success)
		assert.False(t, envWrongPass.Success)
		assert.Equal(t, envUnknown.Message, envWrongPass.Message)
		assert.Equal(t, envUnknown.Error, envWrongPass.Error)
		assert.Equal(t, "Username or password incorrect", envUnknown.Error)
	})

	t.Run("malformed body", func(t *testing.T) {
		app, _, _ := newTestApp(t)

		req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewReader([]byte("")))
		req.Header.Set("Content-Type", "application/json")

		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

// Full account lifecycle against one app: register, duplicate register,
// failed login, successful login.
func TestAccountLifecycle(t *testing.T) {
	app, mockRepo, mockTokens := newTestApp(t)

	var created *domain.User

	// Register "alice".
	mockRepo.EXPECT().GetByUsernameOrEmail(gomock.Any(), "alice", "a@x.com").Return(nil, nil)
	mockRepo.EXPECT().Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ interface{}, user *domain.User) error {
			user.ID = 1
			created = user
			return nil
		})

	_, env := doRequest(t, app, http.MethodPost, "/registerUser", dto.RegisterInput{
		Name:     "Alice",
		Surname:  "Smith",
		Username: "alice",
		Password: "correct-horse",
		Email:    "a@x.com",
	}, nil)
	assert.True(t, env.Success)
	require.NotNil(t, created)

	// Register the same username again.
	mockRepo.EXPECT().GetByUsernameOrEmail(gomock.Any(), "alice", "b@x.com").Return(created, nil)

	_, env = doRequest(t, app, http.MethodPost, "/registerUser", dto.RegisterInput{
		Username: "alice",
		Password: "another-pass",
		Email:    "b@x.com",
	}, nil)
	assert.False(t, env.Success)
	assert.Contains(t, env.Error, "already in use")

	// Login with the wrong password.
	mockRepo.EXPECT().GetByUsername(gomock.Any(), "alice").Return(created, nil)

	_, env = doRequest(t, app, http.MethodPost, "/login", dto.LoginInput{
		Username: "alice",
		Password: "wrongpass",
	}, nil)
	assert.False(t, env.Success)
	assert.Equal(t, "Username or password incorrect", env.Error)

	// Login with the right password.
	mockRepo.EXPECT().GetByUsername(gomock.Any(), "alice").Return(created, nil)
	mockRepo.EXPECT().RecordAuditLog(gomock.Any(), gomock.Any()).Return(nil)
	mockTokens.EXPECT().Generate(1).Return("lifecycle-token", testExpiry(), nil)
	mockRepo.EXPECT().UpdateAuthToken(gomock.Any(), 1, "lifecycle-token").Return(nil)

	_, env = doRequest(t, app, http.MethodPost, "/login", dto.LoginInput{
		Username: "alice",
		Password: "correct-horse",
	}, nil)
	assert.True(t, env.Success)
	require.NotNil(t, env.Data)
	assert.Equal(t, "lifecycle-token", env.Data.AuthToken)
	assert.Equal(t, 0, env.Data.ID)
	assert.Equal(t, constant.PasswordPlaceholder, env.Data.Password)

	// The issued token now passes the gate.
	mockRepo.EXPECT().GetByAuthToken(gomock.Any(), "lifecycle-token").Return(created, nil)

	_, env = doRequest(t, app, http.MethodGet, "/user_info", nil, map[string]string{
		"Authorization": "Bearer lifecycle-token",
	})
	assert.True(t, env.Success)
	assert.Equal(t, "User login", env.Message)
}

func TestUserInfoEndpoint(t *testing.T) {
	app, mockRepo, _ := newTestApp(t)

	stored := &domain.User{
		ID:           5,
		Name:         "Alice",
		Surname:      "Smith",
		Username:     "alice",
		Email:        "a@x.com",
		PasswordHash: "hash",
		AuthToken:    "the-token",
	}
	mockRepo.EXPECT().GetByAuthToken(gomock.Any(), "the-token").Return(stored, nil)

	resp, env := doRequest(t, app, http.MethodGet, "/user_info", nil, map[string]string{
		"Authorization": "Bearer the-token",
	})

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, env.Success)
	assert.Equal(t, "User login", env.Message)
	require.NotNil(t, env.Data)
	assert.Equal(t, 0, env.Data.ID)
	assert.Equal(t, "alice", env.Data.Username)
	assert.Equal(t, constant.PasswordPlaceholder, env.Data.Password)
}

func TestChangePasswordEndpoint(t *testing.T) {
	authenticated := func(t *testing.T) (*fiber.App, *mocks.MockUserRepository) {
		app, mockRepo, _ := newTestApp(t)
		stored := &domain.User{
			ID:           5,
			Username:     "alice",
			PasswordHash: bcryptHash(t, "old-password"),
			AuthToken:    "the-token",
		}
		mockRepo.EXPECT().GetByAuthToken(gomock.Any(), "the-token").Return(stored, nil)
		return app, mockRepo
	}
	bearer := map[string]string{"Authorization": "Bearer the-token"}

	t.Run("success", func(t *testing.T) {
		app, mockRepo := authenticated(t)
		mockRepo.EXPECT().UpdatePasswordHash(gomock.Any(), 5, gomock.Any()).Return(nil)

		resp, env := doRequest(t, app, http.MethodPost, "/change_password", dto.PasswordChangeInput{
			OldPassword:     "old-password",
			NewPassword:     "new-password",
			ConfirmPassword: "new-password",
		}, bearer)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.True(t, env.Success)
		assert.Equal(t, "Password changed successfully", env.Message)
		assert.Nil(t, env.Data)
	})

	t.Run("wrong old password", func(t *testing.T) {
		app, _ := authenticated(t)

		_, env := doRequest(t, app, http.MethodPost, "/change_password", dto.PasswordChangeInput{
			OldPassword:     "not-it",
			NewPassword:     "new-password",
			ConfirmPassword: "new-password",
		}, bearer)

		assert.False(t, env.Success)
		assert.Equal(t, "The current password is incorrect", env.Error)
	})

	t.Run("confirmation mismatch", func(t *testing.T) {
		app, _ := authenticated(t)

		_, env := doRequest(t, app, http.MethodPost, "/change_password", dto.PasswordChangeInput{
			OldPassword:     "old-password",
			NewPassword:     "new-password",
			ConfirmPassword: "other",
		}, bearer)

		assert.False(t, env.Success)
		assert.Equal(t, "Passwords don't match", env.Error)
	})
}
