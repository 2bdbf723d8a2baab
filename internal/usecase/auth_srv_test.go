package usecase

import (
	"context"
	"testing"
	"time"

	"flight-booking/internal/data/entity"
	"flight-booking/internal/data/repository"
	"flight-booking/internal/dto/request"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeUserRepo struct {
	users []*entity.User
}

func (r *fakeUserRepo) Create(_ context.Context, user *entity.User) error {
	r.users = append(r.users, user)
	return nil
}

func (r *fakeUserRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) FindByUsername(_ context.Context, username string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, nil
}

type fakeSessionRepo struct {
	sessions []*entity.Session
}

func (r *fakeSessionRepo) Create(_ context.Context, session *entity.Session) error {
	r.sessions = append(r.sessions, session)
	return nil
}

func (r *fakeSessionRepo) FindValidSession(_ context.Context, token string) (*entity.Session, error) {
	for _, s := range r.sessions {
		if s.Token.String() == token && s.RevokedAt == nil && s.ExpiresAt.After(time.Now()) {
			return s, nil
		}
	}
	return nil, nil
}

func (r *fakeSessionRepo) Revoke(_ context.Context, token string) error {
	for _, s := range r.sessions {
		if s.Token.String() == token {
			now := time.Now()
			s.RevokedAt = &now
		}
	}
	return nil
}

func newAuthTestService() (AuthService, *fakeUserRepo, *fakeSessionRepo) {
	users := &fakeUserRepo{}
	sessions := &fakeSessionRepo{}
	repo := &repository.Repository{User: users, Session: sessions}
	return NewAuthService(repo, time.Hour, zap.NewNop()), users, sessions
}

func registerRequest() *request.RegisterRequest {
	return &request.RegisterRequest{
		Username: "asha",
		Email:    "asha@example.com",
		Password: "s3cretpw",
	}
}

func TestRegister_CreatesUserWithHashedPassword(t *testing.T) {
	svc, users, _ := newAuthTestService()

	resp, err := svc.Register(context.Background(), registerRequest())
	require.NoError(t, err)
	assert.Equal(t, "asha", resp.Username)
	assert.Empty(t, resp.Token)

	require.Len(t, users.users, 1)
	assert.NotEqual(t, "s3cretpw", users.users[0].PasswordHash)
	assert.True(t, users.users[0].IsActive)
}

func TestRegister_RejectsDuplicateUsername(t *testing.T) {
	svc, _, _ := newAuthTestService()

	_, err := svc.Register(context.Background(), registerRequest())
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), registerRequest())
	assert.ErrorIs(t, err, ErrUserExists)
}

func TestLogin_OpensSession(t *testing.T) {
	svc, _, sessions := newAuthTestService()

	_, err := svc.Register(context.Background(), registerRequest())
	require.NoError(t, err)

	resp, err := svc.Login(context.Background(), &request.LoginRequest{
		Username: "asha",
		Password: "s3cretpw",
	}, "test-agent", "127.0.0.1")
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	require.NotNil(t, resp.ExpiresAt)

	session, err := sessions.FindValidSession(context.Background(), resp.Token)
	require.NoError(t, err)
	require.NotNil(t, session)
}

func TestLogin_WrongPassword(t *testing.T) {
	svc, _, _ := newAuthTestService()

	_, err := svc.Register(context.Background(), registerRequest())
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), &request.LoginRequest{
		Username: "asha",
		Password: "wrong",
	}, "", "")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_UnknownUser(t *testing.T) {
	svc, _, _ := newAuthTestService()

	_, err := svc.Login(context.Background(), &request.LoginRequest{
		Username: "nobody",
		Password: "whatever",
	}, "", "")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogout_RevokesSession(t *testing.T) {
	svc, _, sessions := newAuthTestService()

	_, err := svc.Register(context.Background(), registerRequest())
	require.NoError(t, err)

	resp, err := svc.Login(context.Background(), &request.LoginRequest{
		Username: "asha",
		Password: "s3cretpw",
	}, "", "")
	require.NoError(t, err)

	require.NoError(t, svc.Logout(context.Background(), resp.Token))

	session, err := sessions.FindValidSession(context.Background(), resp.Token)
	require.NoError(t, err)
	assert.Nil(t, session)
}
