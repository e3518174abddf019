package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"syscall"

	"golang.org/x/term"

	"github.com/musicaulas/backend/core/session"
)

var (
	readPasswordFunc = term.ReadPassword // mockable

	errHelp = errors.New("help provided")
)

type commandLine struct {
	sessStore *session.Store
}

func (cli *commandLine) printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  login -email EMAIL - log the instance in; the password will be prompted next")
	fmt.Println("  logout             - clear the persisted session")
	fmt.Println("  whoami             - show the persisted session user")
}

func (cli *commandLine) run(ctx context.Context, args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	loginCmd := flag.NewFlagSet("login", flag.ExitOnError)
	loginEmail := loginCmd.String("email", "", "The user's email. The password will be prompted next.")

	switch args[1] {
	case "login":
		if err := loginCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *loginEmail == "" {
			loginCmd.Usage()
			return errHelp
		}
		fmt.Print("Enter password:")
		pwd, err := readPasswordFunc(syscall.Stdin)
		fmt.Println()
		if err != nil {
			return err
		}
		if len(pwd) == 0 {
			loginCmd.Usage()
			return errHelp
		}
		return cli.login(ctx, *loginEmail, string(pwd))
	case "logout":
		return cli.logout(ctx)
	case "whoami":
		return cli.whoami()
	default:
		cli.printUsage()
		return errHelp
	}
}

func (cli *commandLine) login(ctx context.Context, email, pwd string) error {
	usr, err := cli.sessStore.Login(ctx, email, pwd)
	if err != nil {
		return err
	}
	fmt.Printf("logged in as %s <%s> (%s)\n", usr.Name, usr.Email, usr.Role)
	return nil
}

func (cli *commandLine) logout(ctx context.Context) error {
	if err := cli.sessStore.Logout(ctx); err != nil {
		return err
	}
	fmt.Println("logged out")
	return nil
}

func (cli *commandLine) whoami() error {
	sess := cli.sessStore.Current()
	if !sess.IsAuthenticated() {
		fmt.Println("not logged in")
		return nil
	}
	fmt.Printf("%s <%s> (%s)\n", sess.User.Name, sess.User.Email, sess.User.Role)
	return nil
}
