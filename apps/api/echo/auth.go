package echoapi

import (
	"net/http"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/musicaulas/backend/core/user"
)

// sessionCookieName holds the signed session token on the client.
const sessionCookieName = "musicaAulasToken"

// Claims represents the authorization claims transmitted via the session cookie.
type Claims struct {
	jwt.StandardClaims
	Name        string `json:"name,omitempty"`
	Email       string `json:"email,omitempty"`
	Role        string `json:"role,omitempty"`
	IsProfessor bool   `json:"is_professor,omitempty"` // -> PROFESSOR PORTAL
	IsStudent   bool   `json:"is_student,omitempty"`   // -> STUDENT PORTAL
}

func (s *server) getUserClaims(usr user.User) *Claims {
	now := time.Now()
	return &Claims{
		StandardClaims: jwt.StandardClaims{
			Issuer:    s.opts.Conf.AppName,
			Subject:   usr.ID,
			ExpiresAt: now.Add(s.opts.Conf.Server.JWTExpirationDelta).Unix(),
			IssuedAt:  now.Unix(),
		},
		Name:        usr.Name,
		Email:       usr.Email,
		Role:        usr.Role,
		IsProfessor: usr.IsProfessor(),
		IsStudent:   usr.IsStudent(),
	}
}

// generateToken generates a signed JWT token string representing the user Claims.
func (s *server) generateToken(claims *Claims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	ss, err := token.SignedString(s.opts.Conf.SecretKey)
	return ss, errors.Wrap(err, "signing token")
}

func (s *server) parseToken(tokenStr string) (*Claims, error) {
	claims := new(Claims)
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.opts.Conf.SecretKey, nil
	})
	if err != nil || !token.Valid {
		return nil, errUnauthorized
	}
	return claims, nil
}

func (s *server) setSessionCookie(ctx echo.Context, usr user.User) error {
	token, err := s.generateToken(s.getUserClaims(usr))
	if err != nil {
		return err
	}
	ctx.SetCookie(&http.Cookie{
		Name:     sessionCookieName,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(s.opts.Conf.Server.JWTExpirationDelta),
		HttpOnly: true,
	})
	return nil
}

func (s *server) clearSessionCookie(ctx echo.Context) {
	ctx.SetCookie(&http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
}

func (s *server) cookieClaims(ctx echo.Context) (*Claims, error) {
	cookie, err := ctx.Cookie(sessionCookieName)
	if err != nil {
		return nil, errUnauthorized
	}
	return s.parseToken(cookie.Value)
}
