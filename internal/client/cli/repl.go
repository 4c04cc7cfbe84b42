package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/dramahub/internal/client/api"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	SignUp(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	ChangePassword(ctx context.Context) error
	DeleteAccount(ctx context.Context) error
	SetCommand(ctx context.Context, set api.Set, args []string) error
	Recommend(ctx context.Context) error
}

// runREPL starts a simple read-eval-print loop for the DramaHub CLI.
//
// Commands:
//
//	Not logged in:
//	  - help                    show available commands
//	  - signup                  create an account
//	  - login                   authenticate
//	  - recommend               ask for recommendations
//	  - exit | quit             leave the program
//
//	Logged in, additionally:
//	  - fav add|rm <id>         change favorites
//	  - fav ls | fav details    list favorites, with catalog details
//	  - watch ...               same for the watchlist
//	  - passwd                  change password
//	  - delete                  delete the account
//	  - logout                  log out
//
// Errors returned by command handlers are printed and the loop continues.
// Lines are read from the same reader the commands prompt on, so piped
// input works.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("dh %s> ", statusFn()))
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		err = nil
		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: fav, watch, recommend, passwd, delete, logout, exit")
				printlnFn("  fav|watch add <id> | rm <id> | ls | details")
			} else {
				printlnFn("Available commands: signup, login, recommend, exit")
			}

		case "signup", "register":
			err = a.SignUp(ctx)

		case "login":
			err = a.Login(ctx)

		case "recommend":
			err = a.Recommend(ctx)

		case "fav", "favorites", "watch", "watchlist":
			if !a.isLoggedIn() {
				printlnFn("Please log in first")
				continue
			}
			set := api.Favorites
			if strings.HasPrefix(cmd, "watch") {
				set = api.Watchlist
			}
			err = a.SetCommand(ctx, set, args)

		case "passwd":
			if !a.isLoggedIn() {
				printlnFn("Please log in first")
				continue
			}
			err = a.ChangePassword(ctx)

		case "delete":
			if !a.isLoggedIn() {
				printlnFn("Please log in first")
				continue
			}
			err = a.DeleteAccount(ctx)

		case "logout":
			err = a.Logout(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if err != nil {
			printlnFn("Error:", err)
		}
	}
}
