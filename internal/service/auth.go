package service

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"salescrm/internal/auth"
	"salescrm/internal/model"
	"salescrm/internal/repository"
)

const (
	maxLoginAttempts = 3
	lockDuration     = 5 * time.Minute
)

// Session is an authenticated user's signed token pair context, the user
// itself and their resolved department when they belong to one.
type Session struct {
	Jwt        *auth.Jwt
	User       *model.User
	Department *model.Department
}

// AuthService verifies credentials and manages token lifecycles
type AuthService interface {
	Login(ctx context.Context, username, password, fingerprint string, at time.Time) (*Session, *model.RefreshToken, error)
	Refresh(ctx context.Context, tokenID, fingerprint string, at time.Time) (*Session, *model.RefreshToken, error)
	Logout(ctx context.Context, tokenID string) error
}

type authService struct {
	jwtIssuer      *auth.JwtIssuer
	rfrTokenIssuer *auth.RefreshTokenIssuer
	userRps        repository.UserRepository
	departmentRps  repository.DepartmentRepository
	rfrTokenRps    repository.RefreshTokenRepository
	logRps         repository.SystemLogRepository
}

// NewAuthService builds new AuthService
func NewAuthService(
	jwtIssuer *auth.JwtIssuer,
	rfrTokenIssuer *auth.RefreshTokenIssuer,
	userRps repository.UserRepository,
	departmentRps repository.DepartmentRepository,
	rfrTokenRps repository.RefreshTokenRepository,
	logRps repository.SystemLogRepository,
) AuthService {
	return &authService{
		jwtIssuer:      jwtIssuer,
		rfrTokenIssuer: rfrTokenIssuer,
		userRps:        userRps,
		departmentRps:  departmentRps,
		rfrTokenRps:    rfrTokenRps,
		logRps:         logRps,
	}
}

// Login verifies credentials with lockout bookkeeping: the third failed
// attempt in a row locks the account for five minutes.
func (s *authService) Login(ctx context.Context, username, password, fingerprint string, at time.Time) (*Session, *model.RefreshToken, error) {
	user, err := s.userRps.FindByUsername(ctx, username)
	if err != nil {
		return nil, nil, err
	}
	if user == nil {
		return nil, nil, echo.NewHTTPError(http.StatusUnauthorized, "invalid username or password")
	}

	if !user.IsActive {
		return nil, nil, echo.NewHTTPError(http.StatusUnauthorized, "account is disabled")
	}

	if user.LockedUntil != nil && user.LockedUntil.After(at) {
		remaining := int(math.Ceil(user.LockedUntil.Sub(at).Minutes()))
		return nil, nil, echo.NewHTTPError(http.StatusUnauthorized,
			fmt.Sprintf("account is locked, try again in %d minutes", remaining))
	}

	if err := auth.VerifyPassword(user.PasswordHash, password); err != nil {
		return nil, nil, s.registerFailedAttempt(ctx, user, at)
	}

	if err := s.userRps.UpdateLoginState(ctx, user.ID, 0, nil); err != nil {
		return nil, nil, err
	}

	if err := s.logRps.Create(ctx, &model.SystemLog{
		ID:        uuid.NewString(),
		UserID:    &user.ID,
		Action:    model.LogActionLogin,
		Target:    "User",
		TargetID:  &user.ID,
		Detail:    "user logged in",
		CreatedAt: at,
	}); err != nil {
		return nil, nil, err
	}

	jwtToken, err := s.jwtIssuer.Sign(user, at)
	if err != nil {
		return nil, nil, err
	}

	rfrToken := s.rfrTokenIssuer.Sign(user.ID, fingerprint, at)

	userTokens, err := s.rfrTokenRps.FindByUserID(ctx, user.ID)
	if err != nil {
		return nil, nil, err
	}
	if len(userTokens) >= s.rfrTokenIssuer.TokensMaxCount() {
		if err := s.rfrTokenRps.DeleteByUserID(ctx, user.ID); err != nil {
			return nil, nil, err
		}
	}

	if err := s.rfrTokenRps.Create(ctx, rfrToken); err != nil {
		return nil, nil, err
	}

	sess, err := s.buildSession(ctx, jwtToken, user)
	if err != nil {
		return nil, nil, err
	}
	return sess, rfrToken, nil
}

func (s *authService) Refresh(ctx context.Context, tokenID, fingerprint string, at time.Time) (*Session, *model.RefreshToken, error) {
	rfrToken, err := s.rfrTokenRps.FindByID(ctx, tokenID)
	if err != nil {
		return nil, nil, err
	}
	if rfrToken == nil {
		return nil, nil, echo.NewHTTPError(http.StatusUnauthorized, "non-existent refresh token provided")
	}

	if err := s.rfrTokenRps.DeleteByID(ctx, rfrToken.ID); err != nil {
		return nil, nil, err
	}

	if err := auth.VerifyRefreshToken(rfrToken, fingerprint, at); err != nil {
		return nil, nil, echo.NewHTTPError(http.StatusUnauthorized, err.Error())
	}

	user, err := s.userRps.FindByID(ctx, rfrToken.UserID)
	if err != nil {
		return nil, nil, err
	}
	if user == nil || !user.IsActive {
		return nil, nil, echo.NewHTTPError(http.StatusUnauthorized, "user is no longer active")
	}

	jwtToken, err := s.jwtIssuer.Sign(user, at)
	if err != nil {
		return nil, nil, err
	}

	newRfrToken := s.rfrTokenIssuer.Sign(user.ID, fingerprint, at)
	if err := s.rfrTokenRps.Create(ctx, newRfrToken); err != nil {
		return nil, nil, err
	}

	sess, err := s.buildSession(ctx, jwtToken, user)
	if err != nil {
		return nil, nil, err
	}
	return sess, newRfrToken, nil
}

func (s *authService) buildSession(ctx context.Context, jwtToken *auth.Jwt, user *model.User) (*Session, error) {
	sess := &Session{Jwt: jwtToken, User: user}
	if user.DepartmentID == nil {
		return sess, nil
	}

	department, err := s.departmentRps.FindByID(ctx, *user.DepartmentID)
	if err != nil {
		return nil, err
	}
	sess.Department = department
	return sess, nil
}

func (s *authService) Logout(ctx context.Context, tokenID string) error {
	return s.rfrTokenRps.DeleteByID(ctx, tokenID)
}

func (s *authService) registerFailedAttempt(ctx context.Context, user *model.User, at time.Time) error {
	attempts := user.LoginAttempts + 1

	if attempts >= maxLoginAttempts {
		lockedUntil := at.Add(lockDuration)
		if err := s.userRps.UpdateLoginState(ctx, user.ID, 0, &lockedUntil); err != nil {
			return err
		}
		return echo.NewHTTPError(http.StatusUnauthorized,
			fmt.Sprintf("too many failed attempts, account locked for %d minutes", int(lockDuration.Minutes())))
	}

	if err := s.userRps.UpdateLoginState(ctx, user.ID, attempts, nil); err != nil {
		return err
	}
	return echo.NewHTTPError(http.StatusUnauthorized,
		fmt.Sprintf("wrong password, %d attempts left", maxLoginAttempts-attempts))
}
