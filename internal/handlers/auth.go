package handlers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"salescrm/internal/model"
	"salescrm/internal/service"
)

type sessionUser struct {
	ID         string     `json:"id"`
	Username   string     `json:"username"`
	Name       string     `json:"name"`
	Role       model.Role `json:"role"`
	Department *string    `json:"department"`
}

type session struct {
	Token        string      `json:"accessToken"`
	ExpiresAt    int64       `json:"expiresAt"`
	RefreshToken string      `json:"refreshToken"`
	User         sessionUser `json:"user"`
}

type login struct {
	Username    string `json:"username" validate:"required"`
	Password    string `json:"password" validate:"required"`
	Fingerprint string `json:"fingerprint" validate:"required"`
}

type refresh struct {
	Fingerprint  string `json:"fingerprint" validate:"required"`
	RefreshToken string `json:"refreshToken" validate:"required,uuid"`
}

type logout struct {
	RefreshToken string `json:"refreshToken" validate:"required,uuid"`
}

// AuthHTTPHandler is http handler for auth endpoint
type AuthHTTPHandler struct {
	authSvc service.AuthService
}

// NewAuthHTTPHandler builds new AuthHTTPHandler
func NewAuthHTTPHandler(authSvc service.AuthService) *AuthHTTPHandler {
	return &AuthHTTPHandler{authSvc: authSvc}
}

// Login verifies credentials and signs access and refresh tokens
func (h *AuthHTTPHandler) Login(c echo.Context) error {
	var lgn login
	if err := c.Bind(&lgn); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := c.Validate(&lgn); err != nil {
		return err
	}

	sess, rfrToken, err := h.authSvc.Login(c.Request().Context(), lgn.Username, lgn.Password, lgn.Fingerprint, time.Now())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, sessionResponse(sess, rfrToken))
}

// Refresh rotates the refresh token and signs a new session
func (h *AuthHTTPHandler) Refresh(c echo.Context) error {
	var r refresh
	if err := c.Bind(&r); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := c.Validate(&r); err != nil {
		return err
	}

	sess, rfrToken, err := h.authSvc.Refresh(c.Request().Context(), r.RefreshToken, r.Fingerprint, time.Now())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, sessionResponse(sess, rfrToken))
}

// Logout removes the session's refresh token
func (h *AuthHTTPHandler) Logout(c echo.Context) error {
	var lgt logout
	if err := c.Bind(&lgt); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := c.Validate(&lgt); err != nil {
		return err
	}

	if err := h.authSvc.Logout(c.Request().Context(), lgt.RefreshToken); err != nil {
		return err
	}
	return c.NoContent(http.StatusOK)
}

func sessionResponse(sess *service.Session, rfrToken *model.RefreshToken) *session {
	user := sessionUser{
		ID:       sess.User.ID,
		Username: sess.User.Username,
		Name:     sess.User.Name,
		Role:     sess.User.Role,
	}
	if sess.Department != nil {
		user.Department = &sess.Department.Name
	}

	return &session{
		Token:        sess.Jwt.Signed,
		ExpiresAt:    sess.Jwt.ExpiresAt,
		RefreshToken: rfrToken.ID,
		User:         user,
	}
}
