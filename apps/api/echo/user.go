package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/musicaulas/backend/core"
	"github.com/musicaulas/backend/core/session"
	"github.com/musicaulas/backend/core/user"
)

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (lr *LoginRequest) Validate(validate *validator.Validate) error {
	lr.Email = core.CleanString(lr.Email, true /* lower */)
	return validate.Struct(lr)
}

func (s *server) login(ctx echo.Context) error {
	var data LoginRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to LoginRequest")
	}
	if err := data.Validate(s.opts.Validate); err != nil {
		return err
	}

	usr, err := s.opts.SessionStore.Login(ctx.Request().Context(), data.Email, data.Password)
	if err != nil {
		if errors.Cause(err) == session.ErrInvalidCredentials {
			return core.NewValidationError(session.ErrInvalidCredentials)
		}
		return errors.Wrap(err, "logging in")
	}

	if err := s.setSessionCookie(ctx, usr); err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, usr)
}

func (s *server) register(ctx echo.Context) error {
	var data user.NewUser
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewUser")
	}
	if err := data.Validate(ctx.Request().Context(), s.opts.Validate, s.opts.UserSvc); err != nil {
		return err
	}

	usr, err := s.opts.SessionStore.Register(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "registering user")
	}

	if err := s.setSessionCookie(ctx, usr); err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, usr)
}

func (s *server) logout(ctx echo.Context) error {
	if err := s.opts.SessionStore.Logout(ctx.Request().Context()); err != nil {
		return errors.Wrap(err, "logging out")
	}
	s.clearSessionCookie(ctx)
	return ctx.NoContent(http.StatusNoContent)
}
