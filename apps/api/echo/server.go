package echoapi

import (
	"context"
	"net/http"
	"time"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"

	"github.com/musicaulas/backend/core"
	"github.com/musicaulas/backend/core/session"
	"github.com/musicaulas/backend/core/user"
	"github.com/musicaulas/backend/core/video"
)

type (
	Options struct {
		Addr           string
		DisableReqLogs bool

		Conf       *core.Config
		Logger     core.Logger
		Validate   *validator.Validate
		Translator ut.Translator

		SessionStore *session.Store
		UserSvc      *user.Service
		VideoSvc     *video.Service
	}

	Server interface {
		http.Handler
		Start()
		Stop(context.Context) error
	}

	server struct {
		opts     *Options
		app      *echo.Echo
		shutdown chan struct{}
	}
)

var _ Server = (*server)(nil)

func NewServer(opts *Options) Server {
	s := &server{
		opts:     opts,
		app:      echo.New(),
		shutdown: make(chan struct{}, 1),
	}
	s.setup()
	return s
}

func (s *server) setup() {
	debug := s.opts.Conf.Debug

	s.app.Pre(middleware.RemoveTrailingSlash())
	if !s.opts.DisableReqLogs {
		s.app.Use(middleware.Logger())
	}
	// do not recover in DEV|TEST mode
	if !(debug || s.opts.Conf.TestMode) {
		s.app.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{LogLevel: log.ERROR}))
	}

	s.app.HTTPErrorHandler = s.appHTTPErrorHandler
	s.app.Debug = debug

	// role-dispatch landing + auth endpoints
	s.app.GET("/", s.home)
	s.app.POST("/login", s.login)
	s.app.POST("/register", s.register)
	s.app.POST("/logout", s.logout, s.requireAuth())

	// any authenticated role
	vg := s.app.Group("/videos", s.requireAuth())
	vg.GET("", s.queryVideos)
	vg.GET("/:id", s.retrieveVideo)

	// professor portal
	ag := s.app.Group("/admin", s.requireAuth(user.RoleProfessor))
	ag.GET("", s.queryOwnVideos)
	ag.POST("/videos", s.createVideo)
	ag.GET("/videos/:id", s.retrieveOwnVideo)
	ag.PUT("/videos/:id", s.updateVideo)
	ag.DELETE("/videos/:id", s.deleteVideo)
}

func (s *server) Start() {
	go func() {
		<-s.shutdown
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := s.Stop(ctx); err != nil {
			s.app.Logger.Error(err)
		}
	}()
	s.app.Logger.Fatal(s.app.Start(s.opts.Addr))
}

// signalShutdown requests a graceful stop once data integrity has been
// compromised.
func (s *server) signalShutdown() {
	select {
	case s.shutdown <- struct{}{}:
	default: // already signaled
	}
}

func (s *server) Stop(ctx context.Context) error {
	return s.app.Shutdown(ctx)
}

func (s *server) ServeHTTP(w http.ResponseWriter, r *http.Request) { // for tests
	s.app.ServeHTTP(w, r)
}

// home dispatches on the session's role: anonymous visitors go to the login
// page, professors to their portal, students to the catalog.
func (s *server) home(ctx echo.Context) error {
	sess := s.opts.SessionStore.Current()
	if sess.IsLoading() {
		return errHttpSessionLoading
	}
	if !sess.IsAuthenticated() {
		return ctx.Redirect(http.StatusFound, "/login")
	}
	if sess.User.IsProfessor() {
		return ctx.Redirect(http.StatusFound, "/admin")
	}

	vids, err := s.opts.VideoSvc.ListForRole(ctx.Request().Context(), sess)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, vids)
}
