package usecase

import (
	"context"
	"fmt"

	"hotel-reservation/internal/data/entity"
	"hotel-reservation/internal/data/repository"
	"hotel-reservation/internal/dto/request"
	"hotel-reservation/internal/dto/response"
	"hotel-reservation/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type AuthService interface {
	Register(ctx context.Context, req *request.RegisterRequest) (*response.AuthResponse, error)
	Login(ctx context.Context, req *request.LoginRequest) (*response.AuthResponse, error)
}

type authService struct {
	repo   *repository.Repository
	config *utils.Config
	clock  utils.Clock
	log    *zap.Logger
}

func NewAuthService(repo *repository.Repository, config *utils.Config, clock utils.Clock, log *zap.Logger) AuthService {
	return &authService{
		repo:   repo,
		config: config,
		clock:  clock,
		log:    log.With(zap.String("service", "auth")),
	}
}

func (s *authService) Register(ctx context.Context, req *request.RegisterRequest) (*response.AuthResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, &InvalidInputError{Reason: utils.FormatValidationErrors(errs)}
	}

	existing, err := s.repo.User.FindByUsername(ctx, req.Username)
	if err != nil {
		return nil, fmt.Errorf("check username: %w", err)
	}
	if existing != nil {
		return nil, &ConflictError{Reason: fmt.Sprintf("username %s is already taken", req.Username)}
	}

	existing, err = s.repo.User.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	}
	if existing != nil {
		return nil, &ConflictError{Reason: fmt.Sprintf("email %s is already registered", req.Email)}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := s.clock.Now()
	user := &entity.User{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: string(hash),
		FullName:     req.FullName,
		Phone:        req.Phone,
		Role:         entity.RoleGuest,
		Active:       true,
	}

	if err := s.repo.User.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.log.Info("User registered",
		zap.String("user_id", user.ID.String()),
		zap.String("username", user.Username),
	)

	return s.buildAuthResponse(user)
}

func (s *authService) Login(ctx context.Context, req *request.LoginRequest) (*response.AuthResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, &InvalidInputError{Reason: utils.FormatValidationErrors(errs)}
	}

	user, err := s.repo.User.FindByUsername(ctx, req.Username)
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	if user == nil || !user.Active {
		return nil, &ForbiddenError{Reason: "invalid username or password"}
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		s.log.Warn("Failed login attempt", zap.String("username", req.Username))
		return nil, &ForbiddenError{Reason: "invalid username or password"}
	}

	s.log.Info("User logged in",
		zap.String("user_id", user.ID.String()),
		zap.String("username", user.Username),
	)

	return s.buildAuthResponse(user)
}

func (s *authService) buildAuthResponse(user *entity.User) (*response.AuthResponse, error) {
	token, expiresAt, err := utils.GenerateAccessToken(s.config.JWT, user.ID, string(user.Role))
	if err != nil {
		return nil, err
	}

	return &response.AuthResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		User: response.UserResponse{
			ID:       user.ID.String(),
			Username: user.Username,
			Email:    user.Email,
			FullName: user.FullName,
			Role:     string(user.Role),
		},
	}, nil
}
