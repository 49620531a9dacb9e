package auth

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/shiftlog-hr/timeclock-backend-go/internal/domain/auth"
	"github.com/shiftlog-hr/timeclock-backend-go/internal/domain/worker"
	"github.com/shiftlog-hr/timeclock-backend-go/internal/pkg/jwt"
)

type AuthServiceImpl struct {
	workerRepo worker.WorkerRepository
	jwtService jwt.Service
}

func NewAuthService(workerRepo worker.WorkerRepository, jwtService jwt.Service) auth.AuthService {
	return &AuthServiceImpl{
		workerRepo: workerRepo,
		jwtService: jwtService,
	}
}

// Register implements auth.AuthService.
func (s *AuthServiceImpl) Register(ctx context.Context, req auth.RegisterRequest) (auth.TokenResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.TokenResponse{}, err
	}

	exists, err := s.workerRepo.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to check email: %w", err)
	}
	if exists {
		return auth.TokenResponse{}, worker.ErrEmailExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to hash password: %w", err)
	}

	created, err := s.workerRepo.Create(ctx, worker.Worker{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
	})
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to create worker: %w", err)
	}

	return s.issueTokens(created)
}

// Login implements auth.AuthService.
func (s *AuthServiceImpl) Login(ctx context.Context, req auth.LoginRequest) (auth.TokenResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.TokenResponse{}, err
	}

	w, err := s.workerRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, worker.ErrWorkerNotFound) {
			return auth.TokenResponse{}, auth.ErrInvalidCredentials
		}
		return auth.TokenResponse{}, fmt.Errorf("failed to get worker: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(w.PasswordHash), []byte(req.Password)); err != nil {
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}

	return s.issueTokens(w)
}

// Refresh implements auth.AuthService. The presented refresh token is revoked
// so each one is good for a single rotation.
func (s *AuthServiceImpl) Refresh(ctx context.Context, refreshToken string) (auth.TokenResponse, error) {
	if s.jwtService.IsTokenRevoked(refreshToken) {
		return auth.TokenResponse{}, auth.ErrInvalidToken
	}

	workerID, err := s.jwtService.ValidateRefreshToken(refreshToken)
	if err != nil {
		return auth.TokenResponse{}, auth.ErrInvalidToken
	}

	w, err := s.workerRepo.GetByID(ctx, workerID)
	if err != nil {
		if errors.Is(err, worker.ErrWorkerNotFound) {
			return auth.TokenResponse{}, auth.ErrInvalidToken
		}
		return auth.TokenResponse{}, fmt.Errorf("failed to get worker: %w", err)
	}

	s.jwtService.RevokeToken(refreshToken)

	return s.issueTokens(w)
}

func (s *AuthServiceImpl) issueTokens(w worker.Worker) (auth.TokenResponse, error) {
	accessToken, expiresAt, err := s.jwtService.GenerateAccessToken(w.ID, w.Name, w.Email)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to generate access token: %w", err)
	}

	refreshToken, refreshExp, err := s.jwtService.GenerateRefreshToken(w.ID)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	return auth.TokenResponse{
		WorkerID:     w.ID,
		Name:         w.Name,
		AccessToken:  accessToken,
		ExpiresAt:    expiresAt,
		RefreshToken: refreshToken,
		RefreshExp:   refreshExp,
	}, nil
}
