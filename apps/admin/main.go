package main

import (
	"context"
	"log"
	"os"

	"github.com/musicaulas/backend/core"
	"github.com/musicaulas/backend/core/session"
	"github.com/musicaulas/backend/core/user"
	"github.com/musicaulas/backend/services/logger"
	"github.com/musicaulas/backend/storage/database/inmem"
	"github.com/musicaulas/backend/storage/kvstore"
)

var logger *log.Logger

// The admin CLI drives the same durable session entry the app restores at
// startup: an operator can log the instance in or out, or inspect who is
// currently persisted, against the seeded directory.
func main() {
	defer os.Exit(0)

	logger = log.New(os.Stdout, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)

	conf, err := core.NewConfig()
	errAndDie(err)

	ctx := context.Background()

	db := inmemdb.Open()
	errAndDie(inmemdb.Seed(ctx, db))

	kv, err := kvstore.OpenSQLite(conf.DatabasePath)
	errAndDie(err)
	defer kv.Close()

	usrSvc := user.NewService(inmemdb.NewUserRepository(db), nil, conf)
	sessStore := session.NewStore(usrSvc, kv, conf, logsvc.NewStdLogger(logger))
	sessStore.Restore(ctx)

	// start CLI
	cli := commandLine{sessStore: sessStore}
	if err := cli.run(ctx, os.Args); err != nil {
		if err != errHelp {
			logger.Printf("\nerror: %s\n", err)
		}
		os.Exit(1)
	}
}

func errAndDie(err error) {
	if err != nil {
		logger.Fatal(err)
	}
}
