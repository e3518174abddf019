package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/musicaulas/backend/core/authz"
)

// requireAuth is the route guard: a single-shot decision per navigation
// attempt. Anonymous requests are redirected to /login, authenticated
// requests lacking one of the allowed roles are sent back home, and the
// signed session cookie must match the current session user.
func (s *server) requireAuth(roles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			sess := s.opts.SessionStore.Current()
			if sess.IsLoading() {
				return errHttpSessionLoading
			}

			switch authz.CheckRoute(sess, roles) {
			case authz.RedirectLogin:
				return ctx.Redirect(http.StatusFound, "/login")
			case authz.RedirectHome:
				return ctx.Redirect(http.StatusFound, "/")
			}

			claims, err := s.cookieClaims(ctx)
			if err != nil || claims.Subject != sess.User.ID {
				return ctx.Redirect(http.StatusFound, "/login")
			}
			return next(ctx)
		}
	}
}
