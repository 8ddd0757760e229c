package commands

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"salon-scheduler/internal/domain/user"
	reqdto "salon-scheduler/internal/handler/dto/request"
	"salon-scheduler/internal/infra"
	"salon-scheduler/internal/pkg/clock"
	"salon-scheduler/internal/pkg/errs"
	"salon-scheduler/internal/pkg/jwt"
	"salon-scheduler/internal/pkg/password"
)

var (
	ErrUserNotFound         = errs.New("user not found")
	ErrInvalidCredentials   = errs.New("invalid credentials")
	ErrAuthenticationFailed = errs.New("authentication failed")
	ErrTokenGeneration      = errs.New("token generation failed")
)

type LoginResult struct {
	UserID      uuid.UUID
	Role        string
	SalonID     *uuid.UUID
	AccessToken string
}

type AuthCommands interface {
	Login(ctx context.Context, req reqdto.LoginRequest) (*LoginResult, error)
}

type authCommandsImpl struct {
	userRepo   UserRepository
	jwtService *jwt.Service
	clock      clock.Clock
}

func NewAuthCommands(userRepo UserRepository, jwtService *jwt.Service, clock clock.Clock) AuthCommands {
	return &authCommandsImpl{
		userRepo:   userRepo,
		jwtService: jwtService,
		clock:      clock,
	}
}

func (a *authCommandsImpl) Login(ctx context.Context, req reqdto.LoginRequest) (*LoginResult, error) {
	credentials, err := req.ToDomain()
	if err != nil {
		return nil, errs.Mark(err, ErrAuthenticationFailed)
	}

	snapshot, err := a.validateUser(ctx, credentials.Email().Value(), credentials.Password().Value())
	if err != nil {
		return nil, err
	}

	role, err := user.NewRole(snapshot.Role)
	if err != nil {
		return nil, errs.Mark(err, ErrAuthenticationFailed)
	}

	accessToken, err := a.jwtService.GenerateToken(snapshot.ID, role, snapshot.SalonID)
	if err != nil {
		return nil, errs.Mark(err, ErrTokenGeneration)
	}

	if updateErr := a.userRepo.UpdateLastLogin(ctx, snapshot.ID, a.clock.Now()); updateErr != nil {
		// Not critical, login itself succeeded
		slog.Warn("failed to update last login", "user_id", snapshot.ID, "error", updateErr.Error())
	}

	return &LoginResult{
		UserID:      snapshot.ID,
		Role:        snapshot.Role,
		SalonID:     snapshot.SalonID,
		AccessToken: accessToken,
	}, nil
}

func (a *authCommandsImpl) validateUser(ctx context.Context, email, plainPassword string) (*UserSnapshot, error) {
	snapshot, err := a.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			// Same error as a password mismatch to prevent user enumeration
			return nil, ErrInvalidCredentials
		}
		return nil, errs.Mark(err, ErrAuthenticationFailed)
	}

	if err = password.ComparePassword(snapshot.PasswordHash, plainPassword); err != nil {
		return nil, ErrInvalidCredentials
	}

	return snapshot, nil
}
