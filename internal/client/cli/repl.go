package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for REPL output.
var printlnFn = fmt.Println

// execIface is the command surface the REPL dispatches to. *App implements
// it; tests use a recording stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Google(ctx context.Context) error
	Reset(ctx context.Context) error
	ConfirmReset(ctx context.Context) error
	Logout(ctx context.Context) error
	Profile(ctx context.Context) error
	Rename(ctx context.Context, name string) error
	List(ctx context.Context) error
	Show(ctx context.Context, ref string) error
	Favs(ctx context.Context) error
	Fav(ctx context.Context, ref string, on bool) error
	Search(ctx context.Context, text string) error
	Add(ctx context.Context, posterPath string) error
	Settings(ctx context.Context) error
	Set(ctx context.Context, key, value string) error
}

const (
	helpGuest = "Available commands: register, login, google, reset, confirm-reset, " +
		"(l)ist, show <id|#N>, search <text>, settings, set <key> <on|off>, exit"
	helpUser = "Available commands: (l)ist, show <id|#N>, favs, fav <id|#N>, unfav <id|#N>, " +
		"search <text>, add [poster file], profile, rename [name], settings, set <key> <on|off>, logout, exit"
)

// runREPL reads commands line by line from reader and dispatches them to a.
// Handlers print their own results and errors, so their return values are
// ignored here. The loop ends on EOF, "exit"/"quit" or when ctx is done.
//
// A "#N" reference means row N of the list printed last.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for ctx.Err() == nil {
		printlnFn(fmt.Sprintf("md %s > ", statusFn()))

		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]
		rest := strings.Join(args, " ")

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn(helpUser)
			} else {
				printlnFn(helpGuest)
			}

		case "register":
			_ = a.Register(ctx)
		case "login":
			_ = a.Login(ctx)
		case "google":
			_ = a.Google(ctx)
		case "reset":
			_ = a.Reset(ctx)
		case "confirm-reset":
			_ = a.ConfirmReset(ctx)
		case "logout":
			_ = a.Logout(ctx)
		case "profile":
			_ = a.Profile(ctx)
		case "rename":
			_ = a.Rename(ctx, rest)

		case "l", "list":
			_ = a.List(ctx)
		case "favs":
			_ = a.Favs(ctx)
		case "search":
			_ = a.Search(ctx, rest)
		case "show", "fav", "unfav":
			if len(args) != 1 {
				printlnFn(fmt.Sprintf("Usage: %s <id|#N>", cmd))
				continue
			}
			if cmd == "show" {
				_ = a.Show(ctx, args[0])
			} else {
				_ = a.Fav(ctx, args[0], cmd == "fav")
			}
		case "add":
			_ = a.Add(ctx, rest)

		case "settings":
			_ = a.Settings(ctx)
		case "set":
			if len(args) != 2 {
				printlnFn("Usage: set <key> <on|off>")
				continue
			}
			_ = a.Set(ctx, args[0], args[1])

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
