package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/shiftlog-hr/timeclock-backend-go/internal/domain/auth"
	"github.com/shiftlog-hr/timeclock-backend-go/internal/domain/worker"
	"github.com/shiftlog-hr/timeclock-backend-go/internal/pkg/jwt"
	"github.com/shiftlog-hr/timeclock-backend-go/internal/pkg/validator"
)

type fakeWorkerRepo struct {
	worker.WorkerRepository
	workers map[string]worker.Worker
	seq     int
}

func newFakeWorkerRepo() *fakeWorkerRepo {
	return &fakeWorkerRepo{workers: make(map[string]worker.Worker)}
}

func (f *fakeWorkerRepo) Create(_ context.Context, w worker.Worker) (worker.Worker, error) {
	f.seq++
	w.ID = string(rune('0' + f.seq))
	f.workers[w.ID] = w
	return w, nil
}

func (f *fakeWorkerRepo) GetByID(_ context.Context, id string) (worker.Worker, error) {
	if w, ok := f.workers[id]; ok {
		return w, nil
	}
	return worker.Worker{}, worker.ErrWorkerNotFound
}

func (f *fakeWorkerRepo) GetByEmail(_ context.Context, email string) (worker.Worker, error) {
	for _, w := range f.workers {
		if w.Email == email {
			return w, nil
		}
	}
	return worker.Worker{}, worker.ErrWorkerNotFound
}

func (f *fakeWorkerRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	_, err := f.GetByEmail(context.Background(), email)
	return err == nil, nil
}

func newTestService() (auth.AuthService, *fakeWorkerRepo) {
	repo := newFakeWorkerRepo()
	jwtService := jwt.NewJWTService("test-secret", "15m", "168h")
	return NewAuthService(repo, jwtService), repo
}

func registerRequest() auth.RegisterRequest {
	return auth.RegisterRequest{
		Name:            "Aoki",
		Email:           "aoki@example.com",
		Password:        "password123",
		ConfirmPassword: "password123",
	}
}

func TestRegister(t *testing.T) {
	t.Run("creates worker and issues tokens", func(t *testing.T) {
		svc, repo := newTestService()

		res, err := svc.Register(context.Background(), registerRequest())
		require.NoError(t, err)

		assert.NotEmpty(t, res.AccessToken)
		assert.NotEmpty(t, res.RefreshToken)
		assert.Equal(t, "Aoki", res.Name)

		stored, err := repo.GetByEmail(context.Background(), "aoki@example.com")
		require.NoError(t, err)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("password123")))
	})

	t.Run("duplicate email", func(t *testing.T) {
		svc, _ := newTestService()

		_, err := svc.Register(context.Background(), registerRequest())
		require.NoError(t, err)

		_, err = svc.Register(context.Background(), registerRequest())
		assert.ErrorIs(t, err, worker.ErrEmailExists)
	})

	t.Run("validation failure", func(t *testing.T) {
		svc, _ := newTestService()

		req := registerRequest()
		req.ConfirmPassword = "different"
		_, err := svc.Register(context.Background(), req)

		var verrs validator.ValidationErrors
		require.ErrorAs(t, err, &verrs)
	})
}

func TestLogin(t *testing.T) {
	t.Run("valid credentials", func(t *testing.T) {
		svc, _ := newTestService()
		_, err := svc.Register(context.Background(), registerRequest())
		require.NoError(t, err)

		res, err := svc.Login(context.Background(), auth.LoginRequest{
			Email:    "aoki@example.com",
			Password: "password123",
		})
		require.NoError(t, err)
		assert.NotEmpty(t, res.AccessToken)
	})

	t.Run("wrong password", func(t *testing.T) {
		svc, _ := newTestService()
		_, err := svc.Register(context.Background(), registerRequest())
		require.NoError(t, err)

		_, err = svc.Login(context.Background(), auth.LoginRequest{
			Email:    "aoki@example.com",
			Password: "wrong-password",
		})
		assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
	})

	t.Run("unknown email maps to invalid credentials", func(t *testing.T) {
		svc, _ := newTestService()

		_, err := svc.Login(context.Background(), auth.LoginRequest{
			Email:    "nobody@example.com",
			Password: "password123",
		})
		assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
	})
}

func TestRefresh(t *testing.T) {
	t.Run("rotates the refresh token", func(t *testing.T) {
		svc, _ := newTestService()
		registered, err := svc.Register(context.Background(), registerRequest())
		require.NoError(t, err)

		res, err := svc.Refresh(context.Background(), registered.RefreshToken)
		require.NoError(t, err)
		assert.Equal(t, registered.WorkerID, res.WorkerID)
		assert.NotEmpty(t, res.AccessToken)

		// The old token was revoked by the rotation.
		_, err = svc.Refresh(context.Background(), registered.RefreshToken)
		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	})

	t.Run("rejects garbage token", func(t *testing.T) {
		svc, _ := newTestService()

		_, err := svc.Refresh(context.Background(), "not-a-token")
		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	})

	t.Run("rejects access token used as refresh token", func(t *testing.T) {
		svc, _ := newTestService()
		registered, err := svc.Register(context.Background(), registerRequest())
		require.NoError(t, err)

		_, err = svc.Refresh(context.Background(), registered.AccessToken)
		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	})
}
