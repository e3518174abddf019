package echoapi

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/musicaulas/backend/core"
	"github.com/musicaulas/backend/core/session"
	"github.com/musicaulas/backend/core/user"
	"github.com/musicaulas/backend/core/video"
	"github.com/musicaulas/backend/services/logger"
	"github.com/musicaulas/backend/storage/database/inmem"
	"github.com/musicaulas/backend/storage/kvstore"
	"github.com/musicaulas/backend/tests"
)

type testEnv struct {
	srv       *server
	sessStore *session.Store
	usrRepo   user.Repository
	vidRepo   video.Repository

	joao  user.User // professor
	rita  user.User // second professor
	maria user.User // student

	joaoVids []video.Video // oldest first
	ritaVid  video.Video
}

func setup(t *testing.T) *testEnv {
	t.Helper()
	return setupWith(t, kvstore.NewInMem(), true /* restore */)
}

// setupWith builds the server on an arbitrary session storage; restore=false
// leaves the session store in its pre-restore loading state.
func setupWith(t *testing.T, storage session.Storage, restore bool) *testEnv {
	t.Helper()

	conf := &core.Config{
		Env:               "TEST",
		TestMode:          true,
		AppName:           "MusicaAulas",
		SecretKey:         []byte("test-secret"),
		SessionStorageKey: "musicaAulasUser",
		Server:            core.ServerConfig{JWTExpirationDelta: time.Hour},
	}
	validate, translator := core.NewValidator()
	user.RegisterValidators(validate, translator)

	db := inmemdb.Open()
	usrRepo := inmemdb.NewUserRepository(db)
	vidRepo := inmemdb.NewVideoRepository(db)
	logger := logsvc.NewStdLogger(log.New(io.Discard, "", 0))

	usrSvc := user.NewService(usrRepo, nil, conf)
	vidSvc := video.NewService(vidRepo)
	sessStore := session.NewStore(usrSvc, storage, conf, logger)
	if restore {
		sessStore.Restore(context.Background())
	}

	srv := NewServer(&Options{
		DisableReqLogs: true,
		Conf:           conf,
		Logger:         logger,
		Validate:       validate,
		Translator:     translator,
		SessionStore:   sessStore,
		UserSvc:        usrSvc,
		VideoSvc:       vidSvc,
	}).(*server)

	joao := testutil.CreateUser(t, usrRepo, "Professor João", "joao@example.com", "senha123", user.RoleProfessor)
	rita := testutil.CreateUser(t, usrRepo, "Professora Rita", "rita@example.com", "senha123", user.RoleProfessor)
	maria := testutil.CreateUser(t, usrRepo, "Aluno Maria", "maria@example.com", "senha123", user.RoleStudent)

	base := time.Date(2023, 5, 15, 10, 0, 0, 0, time.UTC)
	joaoVids := []video.Video{
		testutil.CreateVideo(t, vidRepo, "Introdução ao Violão", "Aula 1: primeiros acordes", "https://player.vimeo.com/video/76979871", joao, base),
		testutil.CreateVideo(t, vidRepo, "Técnicas de Dedilhado", "Aula 2: padrões de dedilhado", "https://player.vimeo.com/video/90509568", joao, base.AddDate(0, 0, 1)),
	}
	ritaVid := testutil.CreateVideo(t, vidRepo, "Harmonia Funcional", "Campo harmônico maior", "https://player.vimeo.com/video/163153865", rita, base.AddDate(0, 0, 3))

	return &testEnv{
		srv:       srv,
		sessStore: sessStore,
		usrRepo:   usrRepo,
		vidRepo:   vidRepo,
		joao:      joao,
		rita:      rita,
		maria:     maria,
		joaoVids:  joaoVids,
		ritaVid:   ritaVid,
	}
}

// loginAs authenticates the process-wide session as usr and returns the
// matching signed session cookie.
func (env *testEnv) loginAs(t *testing.T, usr user.User) *http.Cookie {
	t.Helper()

	if _, err := env.sessStore.Login(context.Background(), usr.Email, "senha123"); err != nil {
		t.Fatalf("loginAs() failed: %v", err)
	}
	return env.sessionCookie(t, usr)
}

// sessionCookie mints a cookie for usr without touching the session store.
func (env *testEnv) sessionCookie(t *testing.T, usr user.User) *http.Cookie {
	t.Helper()

	token, err := env.srv.generateToken(env.srv.getUserClaims(usr))
	if err != nil {
		t.Fatalf("sessionCookie() failed: %v", err)
	}
	return &http.Cookie{Name: sessionCookieName, Value: token}
}

func (env *testEnv) logout(t *testing.T) {
	t.Helper()
	if err := env.sessStore.Logout(context.Background()); err != nil {
		t.Fatalf("logout() failed: %v", err)
	}
}

type httpErr struct {
	Error string `json:"error"`
}

type httpTest struct {
	name     string
	method   string
	path     string
	body     []byte
	cookie   *http.Cookie
	wantCode int
	wantLoc  string // expected Location header on redirects
	wantData []byte // nil skips the body check
}

func (env *testEnv) do(method, path string, cookie *http.Cookie, data ...[]byte) *httptest.ResponseRecorder {
	var body bytes.Buffer
	if len(data) > 0 {
		body.Write(data[0])
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	env.srv.ServeHTTP(rec, req)
	return rec
}

func marshallObj(t *testing.T, obj interface{}) []byte {
	t.Helper()
	data, err := json.Marshal(obj)
	if err != nil {
		t.Fatalf("marshallObj() failed: %v", err)
	}
	return data
}

func marshallList(t *testing.T, objs ...interface{}) []byte {
	t.Helper()
	data, err := json.Marshal(objs)
	if err != nil {
		t.Fatalf("marshallList() failed: %v", err)
	}
	return data
}

func jsonBytesEqual(t *testing.T, b1, b2 []byte) (bool, error) {
	var j1, j2 interface{}
	if err := json.Unmarshal(b1, &j1); err != nil {
		return false, err
	}
	if err := json.Unmarshal(b2, &j2); err != nil {
		return false, err
	}
	if reflect.DeepEqual(j1, j2) {
		return true, nil
	}
	if j1 == nil || j2 == nil {
		return false, nil
	}
	return assert.ElementsMatch(t, j1, j2), nil
}

func checkCodeAndData(t *testing.T, tt httpTest, rec *httptest.ResponseRecorder) {
	t.Helper()

	if rec.Code != tt.wantCode {
		t.Errorf("failed! code = %v; wantCode %v", rec.Code, tt.wantCode)
	}
	if tt.wantLoc != "" {
		if loc := rec.Header().Get("Location"); loc != tt.wantLoc {
			t.Errorf("failed! location = %q; wantLoc %q", loc, tt.wantLoc)
		}
	}
	if tt.wantData == nil {
		return
	}
	ok, err := jsonBytesEqual(t, rec.Body.Bytes(), tt.wantData)
	if err != nil {
		t.Errorf("jsonBytesEqual() failed to compare; err %v", err)
	}
	if !ok {
		t.Errorf("failed! data = %v; wantData %v", rec.Body.String(), string(tt.wantData))
	}
}

func runHTTPTests(t *testing.T, env *testEnv, tests []httpTest) {
	t.Helper()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			method := tt.method
			if method == "" {
				method = http.MethodGet
			}
			rec := env.do(method, tt.path, tt.cookie, tt.body)
			checkCodeAndData(t, tt, rec)
		})
	}
}
