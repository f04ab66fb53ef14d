package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for prompt output.
var printlnFn = fmt.Println

// execIface is the command surface the REPL dispatches to.
type execIface interface {
	isLoggedIn() bool
	SignUp(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Me(ctx context.Context) error
	Users(ctx context.Context, args []string) error
	DeleteUser(ctx context.Context, args []string) error
	Events(ctx context.Context, args []string) error
	Show(ctx context.Context, args []string) error
	CreateEvent(ctx context.Context) error
	DeleteEvent(ctx context.Context, args []string) error
	Join(ctx context.Context, args []string) error
	Leave(ctx context.Context, args []string) error
	Registrants(ctx context.Context, args []string) error
	AddCoordinator(ctx context.Context, args []string) error
	RemoveCoordinator(ctx context.Context, args []string) error
	Coordinators(ctx context.Context, args []string) error
	MyEvents(ctx context.Context) error
	Upload(ctx context.Context, args []string) error
}

const (
	helpAnonymous = "Available commands: signup, login, events [term], show <id|slug>, coords <event>, exit"
	helpSignedIn  = "Available commands: me, users [start] [limit] [asc], deleteuser <id>, events [term], show <id|slug>, " +
		"create, deleteevent <id>, join <event>, leave <event>, registrants <event>, " +
		"addcoord <event> <user>, rmcoord <event> <user>, coords <event>, myevents, upload <profile|event>, logout, exit"
)

// runREPL reads commands line by line and dispatches them to a until EOF,
// "exit" or "quit". Command errors are reported by the commands themselves.
// Prompts inside commands read from the same reader.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("eh %s> ", statusFn()))
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn(helpSignedIn)
			} else {
				printlnFn(helpAnonymous)
			}
		case "signup":
			_ = a.SignUp(ctx)
		case "login":
			_ = a.Login(ctx)
		case "logout":
			_ = a.Logout(ctx)
		case "me":
			_ = a.Me(ctx)
		case "users":
			_ = a.Users(ctx, args)
		case "deleteuser":
			_ = a.DeleteUser(ctx, args)
		case "events", "l":
			_ = a.Events(ctx, args)
		case "show":
			_ = a.Show(ctx, args)
		case "create":
			_ = a.CreateEvent(ctx)
		case "deleteevent":
			_ = a.DeleteEvent(ctx, args)
		case "join":
			_ = a.Join(ctx, args)
		case "leave":
			_ = a.Leave(ctx, args)
		case "registrants":
			_ = a.Registrants(ctx, args)
		case "addcoord":
			_ = a.AddCoordinator(ctx, args)
		case "rmcoord":
			_ = a.RemoveCoordinator(ctx, args)
		case "coords":
			_ = a.Coordinators(ctx, args)
		case "myevents":
			_ = a.MyEvents(ctx)
		case "upload":
			_ = a.Upload(ctx, args)
		case "exit", "quit":
			printlnFn("Bye!")
			return
		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
