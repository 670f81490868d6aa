package service

import (
	"context"
	"crypto/ed25519"
	"net/http"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"salescrm/internal/auth"
	"salescrm/internal/model"
	"salescrm/internal/repository/mocks"
)

const (
	jwtAlgoEd25519 = "EdDSA"
	jwtIssuerClaim = "test-issuer"
	jwtTimeToLive  = 3 * time.Minute
)

const (
	refreshTokenMaxCount   = 2
	refreshTokenTimeToLive = 720 * time.Hour
)

var testAuthCtx = context.Background()
var testLoginAt = time.Date(2024, time.March, 12, 9, 0, 0, 0, time.UTC)
var testPassword = "secret_password"
var testFingerprint = "87c37298-2f3d-40a1-9438-f45d2d819206"
var testPrivateKey = ed25519.PrivateKey("MC4CAQAwBQYDK2VwBCIEIBvYJuek9MjwZuvYT+6W7S9RRgr0SmxRqejl2v6y9jjo")

var jwtIssuer = auth.NewJwtIssuer(jwtIssuerClaim, jwt.GetSigningMethod(jwtAlgoEd25519), jwtTimeToLive, testPrivateKey)
var rfrTokenIssuer = auth.NewRefreshTokenIssuer(refreshTokenMaxCount, refreshTokenTimeToLive)

var testRfrToken = &model.RefreshToken{
	ID:          "1165dfc0-2dd0-4bea-ac69-4462f1cacacf",
	UserID:      "bdf2f837-75f6-462a-b9ec-5dfb2e8f8792",
	Fingerprint: testFingerprint,
	ExpiresIn:   int(refreshTokenTimeToLive.Seconds()),
	CreatedAt:   testLoginAt,
}

type authServiceTestSuite struct {
	suite.Suite
	authSvc           AuthService
	userRpsMock       *mocks.UserRepository
	departmentRpsMock *mocks.DepartmentRepository
	rfrTokenRpsMock   *mocks.RefreshTokenRepository
	logRpsMock        *mocks.SystemLogRepository
}

func (s *authServiceTestSuite) SetupTest() {
	t := s.T()
	s.userRpsMock = mocks.NewUserRepository(t)
	s.departmentRpsMock = mocks.NewDepartmentRepository(t)
	s.rfrTokenRpsMock = mocks.NewRefreshTokenRepository(t)
	s.logRpsMock = mocks.NewSystemLogRepository(t)
	s.authSvc = NewAuthService(jwtIssuer, rfrTokenIssuer, s.userRpsMock, s.departmentRpsMock, s.rfrTokenRpsMock, s.logRpsMock)
}

func (s *authServiceTestSuite) activeUser() *model.User {
	return &model.User{
		ID:           "bdf2f837-75f6-462a-b9ec-5dfb2e8f8792",
		Username:     "jsmith",
		PasswordHash: "$2y$10$iKrALz6vQTs8KcAOElIdHeO0ZKWZkyfFnxPsJYU.Dys/2Rz177p32",
		Name:         "John Smith",
		Role:         model.RoleSales,
		IsActive:     true,
	}
}

func (s *authServiceTestSuite) TestLoginBadUsername() {
	s.userRpsMock.On("FindByUsername", testAuthCtx, "ghost").Return(nil, nil).Once()

	s.T().Log("login with a username which is not registered")
	{
		_, _, err := s.authSvc.Login(testAuthCtx, "ghost", testPassword, testFingerprint, testLoginAt)
		s.Assert().Error(err, "username is not registered but no error raised")

		var httpErr *echo.HTTPError
		s.Require().ErrorAs(err, &httpErr, "error must be echo error")
		s.Assert().Equal(http.StatusUnauthorized, httpErr.Code)
	}
}

func (s *authServiceTestSuite) TestLoginDisabledAccount() {
	user := s.activeUser()
	user.IsActive = false

	s.userRpsMock.On("FindByUsername", testAuthCtx, user.Username).Return(user, nil).Once()

	s.T().Log("login to a disabled account")
	{
		_, _, err := s.authSvc.Login(testAuthCtx, user.Username, testPassword, testFingerprint, testLoginAt)
		s.Assert().Error(err, "account is disabled but no error raised")

		var httpErr *echo.HTTPError
		s.Require().ErrorAs(err, &httpErr, "error must be echo error")
		s.Assert().Equal(http.StatusUnauthorized, httpErr.Code)
	}
}

func (s *authServiceTestSuite) TestLoginLockedAccount() {
	user := s.activeUser()
	lockedUntil := testLoginAt.Add(4 * time.Minute)
	user.LockedUntil = &lockedUntil

	s.userRpsMock.On("FindByUsername", testAuthCtx, user.Username).Return(user, nil).Once()

	s.T().Log("login while the lockout window is still open")
	{
		_, _, err := s.authSvc.Login(testAuthCtx, user.Username, testPassword, testFingerprint, testLoginAt)
		s.Assert().Error(err, "account is locked but no error raised")

		var httpErr *echo.HTTPError
		s.Require().ErrorAs(err, &httpErr, "error must be echo error")
		s.Assert().Equal(http.StatusUnauthorized, httpErr.Code)
		s.Assert().Contains(httpErr.Message, "locked", "message must mention the lock")
	}
}

func (s *authServiceTestSuite) TestLoginBadPasswordCountsAttempt() {
	user := s.activeUser()

	s.userRpsMock.On("FindByUsername", testAuthCtx, user.Username).Return(user, nil).Once()
	s.userRpsMock.On("UpdateLoginState", testAuthCtx, user.ID, 1, (*time.Time)(nil)).Return(nil).Once()

	s.T().Log("first wrong password must be counted")
	{
		_, _, err := s.authSvc.Login(testAuthCtx, user.Username, "invalid_password", testFingerprint, testLoginAt)
		s.Assert().Error(err, "wrong password is provided but no error raised")

		var httpErr *echo.HTTPError
		s.Require().ErrorAs(err, &httpErr, "error must be echo error")
		s.Assert().Equal(http.StatusUnauthorized, httpErr.Code)
		s.Assert().Contains(httpErr.Message, "2 attempts left")
	}
}

func (s *authServiceTestSuite) TestLoginThirdFailureLocksAccount() {
	user := s.activeUser()
	user.LoginAttempts = 2

	s.userRpsMock.On("FindByUsername", testAuthCtx, user.Username).Return(user, nil).Once()
	s.userRpsMock.On("UpdateLoginState", testAuthCtx, user.ID, 0, mock.AnythingOfType("*time.Time")).Return(nil).Once()

	s.T().Log("third wrong password in a row locks the account")
	{
		_, _, err := s.authSvc.Login(testAuthCtx, user.Username, "invalid_password", testFingerprint, testLoginAt)
		s.Assert().Error(err, "account must be locked but no error raised")

		var httpErr *echo.HTTPError
		s.Require().ErrorAs(err, &httpErr, "error must be echo error")
		s.Assert().Equal(http.StatusUnauthorized, httpErr.Code)
		s.Assert().Contains(httpErr.Message, "locked for 5 minutes")
	}
}

func (s *authServiceTestSuite) TestLoginSuccessResetsAttempts() {
	user := s.activeUser()
	user.LoginAttempts = 2

	s.userRpsMock.On("FindByUsername", testAuthCtx, user.Username).Return(user, nil).Once()
	s.userRpsMock.On("UpdateLoginState", testAuthCtx, user.ID, 0, (*time.Time)(nil)).Return(nil).Once()
	s.logRpsMock.On("Create", testAuthCtx, mock.AnythingOfType("*model.SystemLog")).Return(nil).Once()
	s.rfrTokenRpsMock.On("FindByUserID", testAuthCtx, user.ID).Return(nil, nil).Once()
	s.rfrTokenRpsMock.On("Create", testAuthCtx, mock.AnythingOfType("*model.RefreshToken")).Return(nil).Once()

	s.T().Log("correct password resets the failed attempt counter")
	{
		sess, rfrToken, err := s.authSvc.Login(testAuthCtx, user.Username, testPassword, testFingerprint, testLoginAt)
		s.Require().NoError(err, "credentials are correct but error was raised")
		s.Assert().Equal(testLoginAt.Add(jwtTimeToLive).Unix(), sess.Jwt.ExpiresAt, "incorrect time to live was set for jwt")
		s.Assert().Equal(int(refreshTokenTimeToLive.Seconds()), rfrToken.ExpiresIn, "expires in is set incorrectly")
		s.userRpsMock.AssertCalled(s.T(), "UpdateLoginState", testAuthCtx, user.ID, 0, (*time.Time)(nil))
	}
}

func (s *authServiceTestSuite) TestLoginResolvesDepartment() {
	departmentID := "9d5ce68a-5a0f-47c4-a569-81b00f95cbc6"
	department := &model.Department{ID: departmentID, Name: "East Region"}
	user := s.activeUser()
	user.Role = model.RoleManager
	user.DepartmentID = &departmentID

	s.userRpsMock.On("FindByUsername", testAuthCtx, user.Username).Return(user, nil).Once()
	s.userRpsMock.On("UpdateLoginState", testAuthCtx, user.ID, 0, (*time.Time)(nil)).Return(nil).Once()
	s.logRpsMock.On("Create", testAuthCtx, mock.AnythingOfType("*model.SystemLog")).Return(nil).Once()
	s.rfrTokenRpsMock.On("FindByUserID", testAuthCtx, user.ID).Return(nil, nil).Once()
	s.rfrTokenRpsMock.On("Create", testAuthCtx, mock.AnythingOfType("*model.RefreshToken")).Return(nil).Once()
	s.departmentRpsMock.On("FindByID", testAuthCtx, departmentID).Return(department, nil).Once()

	s.T().Log("session of a department member carries the resolved department")
	{
		sess, _, err := s.authSvc.Login(testAuthCtx, user.Username, testPassword, testFingerprint, testLoginAt)
		s.Require().NoError(err, "credentials are correct but error was raised")
		s.Require().NotNil(sess.Department, "department must be resolved for the session")
		s.Assert().Equal("East Region", sess.Department.Name)
	}
}

func (s *authServiceTestSuite) TestLoginPreviousTokensRemoved() {
	user := s.activeUser()

	dbTokens := []*model.RefreshToken{
		{
			ID:          "af1adce5-51a4-4d2e-a6ba-da0e7009a1bf",
			UserID:      user.ID,
			Fingerprint: "86d36dcb-512b-402d-bec4-ae8922677cd7",
			ExpiresIn:   1000,
			CreatedAt:   testLoginAt,
		},
		{
			ID:          "4a1a767e-4dbb-42fd-85b9-5a2b26840ed4",
			UserID:      user.ID,
			Fingerprint: "88a6a8ac-1104-41ae-b13c-c33deb5af5c2",
			ExpiresIn:   2000,
			CreatedAt:   testLoginAt,
		},
	}

	s.userRpsMock.On("FindByUsername", testAuthCtx, user.Username).Return(user, nil).Once()
	s.userRpsMock.On("UpdateLoginState", testAuthCtx, user.ID, 0, (*time.Time)(nil)).Return(nil).Once()
	s.logRpsMock.On("Create", testAuthCtx, mock.AnythingOfType("*model.SystemLog")).Return(nil).Once()
	s.rfrTokenRpsMock.On("FindByUserID", testAuthCtx, user.ID).Return(dbTokens, nil).Once()
	s.rfrTokenRpsMock.On("DeleteByUserID", testAuthCtx, user.ID).Return(nil).Once()
	s.rfrTokenRpsMock.On("Create", testAuthCtx, mock.AnythingOfType("*model.RefreshToken")).Return(nil).Once()

	s.T().Log("login succeeds but all previous tokens must be removed")
	{
		_, _, err := s.authSvc.Login(testAuthCtx, user.Username, testPassword, testFingerprint, testLoginAt)
		s.Assert().NoError(err, "user login is correct but error was raised")
		s.rfrTokenRpsMock.AssertCalled(s.T(), "DeleteByUserID", testAuthCtx, user.ID)
	}
}

func (s *authServiceTestSuite) TestRefreshInvalidToken() {
	s.rfrTokenRpsMock.On("FindByID", testAuthCtx, testRfrToken.ID).Return(nil, nil).Once()

	s.T().Log("refresh with invalid token")
	{
		_, _, err := s.authSvc.Refresh(testAuthCtx, testRfrToken.ID, testFingerprint, testLoginAt)
		s.Assert().Error(err, "invalid refresh token id was provided but no error raised")
		s.Assert().IsType(&echo.HTTPError{}, err, "error must be echo error")
	}
}

func (s *authServiceTestSuite) TestRefreshInvalidFingerprint() {
	invalidFingerprint := "461b07b5-3373-495d-b26b-d689a0c8a557"

	s.rfrTokenRpsMock.On("FindByID", testAuthCtx, testRfrToken.ID).Return(testRfrToken, nil).Once()
	s.rfrTokenRpsMock.On("DeleteByID", testAuthCtx, testRfrToken.ID).Return(nil).Once()

	s.T().Log("refresh with invalid fingerprint")
	{
		_, _, err := s.authSvc.Refresh(testAuthCtx, testRfrToken.ID, invalidFingerprint, testLoginAt)
		s.Assert().Error(err, "invalid refresh token fingerprint was provided but no error raised")
		s.Assert().IsType(&echo.HTTPError{}, err, "error must be echo error")
	}
}

func (s *authServiceTestSuite) TestRefreshExpiredToken() {
	futureNow := testLoginAt.Add(725 * time.Hour)

	s.rfrTokenRpsMock.On("FindByID", testAuthCtx, testRfrToken.ID).Return(testRfrToken, nil).Once()
	s.rfrTokenRpsMock.On("DeleteByID", testAuthCtx, testRfrToken.ID).Return(nil).Once()

	s.T().Log("refresh with already expired token")
	{
		_, _, err := s.authSvc.Refresh(testAuthCtx, testRfrToken.ID, testFingerprint, futureNow)
		s.Assert().Error(err, "refresh for expired refresh token was provided but no error raised")
		s.Assert().IsType(&echo.HTTPError{}, err, "error must be echo error")
	}
}

func (s *authServiceTestSuite) TestRefreshInactiveUser() {
	user := s.activeUser()
	user.IsActive = false

	s.rfrTokenRpsMock.On("FindByID", testAuthCtx, testRfrToken.ID).Return(testRfrToken, nil).Once()
	s.rfrTokenRpsMock.On("DeleteByID", testAuthCtx, testRfrToken.ID).Return(nil).Once()
	s.userRpsMock.On("FindByID", testAuthCtx, testRfrToken.UserID).Return(user, nil).Once()

	s.T().Log("refresh for a user deactivated since login")
	{
		_, _, err := s.authSvc.Refresh(testAuthCtx, testRfrToken.ID, testFingerprint, testLoginAt)
		s.Assert().Error(err, "user is deactivated but no error raised")
		s.Assert().IsType(&echo.HTTPError{}, err, "error must be echo error")
	}
}

func (s *authServiceTestSuite) TestRefreshSuccessful() {
	user := s.activeUser()

	s.rfrTokenRpsMock.On("FindByID", testAuthCtx, testRfrToken.ID).Return(testRfrToken, nil).Once()
	s.rfrTokenRpsMock.On("DeleteByID", testAuthCtx, testRfrToken.ID).Return(nil).Once()
	s.userRpsMock.On("FindByID", testAuthCtx, testRfrToken.UserID).Return(user, nil).Once()
	s.rfrTokenRpsMock.On("Create", testAuthCtx, mock.AnythingOfType("*model.RefreshToken")).Return(nil).Once()

	s.T().Log("refresh rotates the token successfully")
	{
		sess, rfrToken, err := s.authSvc.Refresh(testAuthCtx, testRfrToken.ID, testFingerprint, testLoginAt)
		s.Assert().NoError(err, "refresh request is correctly sent but error raised")
		s.Assert().Equal(testLoginAt.Add(jwtTimeToLive).Unix(), sess.Jwt.ExpiresAt, "incorrect time to live was set for jwt")
		s.Assert().Equal(int(refreshTokenTimeToLive.Seconds()), rfrToken.ExpiresIn, "expires in is set incorrectly")
	}
}

func (s *authServiceTestSuite) TestLogout() {
	s.rfrTokenRpsMock.On("DeleteByID", testAuthCtx, testRfrToken.ID).Return(nil).Once()

	s.T().Log("logout removes the refresh token")
	{
		err := s.authSvc.Logout(testAuthCtx, testRfrToken.ID)
		s.Assert().NoError(err, "logout request is correct but error was raised")
	}
}

// start auth service test suite
func TestAuthServiceTestSuite(t *testing.T) {
	suite.Run(t, new(authServiceTestSuite))
}
