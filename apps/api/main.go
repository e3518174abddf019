package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/musicaulas/backend/apps/api/echo"
	"github.com/musicaulas/backend/core"
	"github.com/musicaulas/backend/core/session"
	"github.com/musicaulas/backend/core/user"
	"github.com/musicaulas/backend/core/video"
	"github.com/musicaulas/backend/services/email"
	"github.com/musicaulas/backend/services/logger"
	"github.com/musicaulas/backend/storage/database/inmem"
	"github.com/musicaulas/backend/storage/kvstore"
)

func main() {
	std := log.New(os.Stdout, "API : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)

	conf, err := core.NewConfig()
	if err != nil {
		std.Fatal(err)
	}

	var logger core.Logger
	if !conf.Debug && conf.RollbarToken != "" {
		logger = logsvc.NewRollbarLogger(std, conf)
	} else {
		logger = logsvc.NewStdLogger(std)
	}

	validate, translator := core.NewValidator()
	user.RegisterValidators(validate, translator)

	// set up stores
	db := inmemdb.Open()
	kv, err := kvstore.OpenSQLite(conf.DatabasePath)
	if err != nil {
		logger.Fatal("opening session storage", err)
	}
	defer kv.Close()

	// set up services
	var mailSvc core.EmailService
	if conf.Debug {
		mailSvc = emailsvc.NewConsoleService(conf)
	} else {
		mailSvc = emailsvc.NewSendgridService(conf, logger)
	}
	usrSvc := user.NewService(inmemdb.NewUserRepository(db), mailSvc, conf)
	vidSvc := video.NewService(inmemdb.NewVideoRepository(db))
	sessStore := session.NewStore(usrSvc, kv, conf, logger)

	ctx := context.Background()
	if err := inmemdb.Seed(ctx, db); err != nil {
		logger.Fatal("seeding data", err)
	}
	// role-gated routes are not served until the restore completes
	sessStore.Restore(ctx)

	// start API server
	app := echoapi.NewServer(&echoapi.Options{
		Addr:         fmt.Sprintf("%s:%d", conf.Server.Host, conf.Server.Port),
		Conf:         conf,
		Logger:       logger,
		Validate:     validate,
		Translator:   translator,
		SessionStore: sessStore,
		UserSvc:      usrSvc,
		VideoSvc:     vidSvc,
	})
	app.Start()
}
