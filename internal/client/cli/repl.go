package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the command surface the REPL needs. The real App
// satisfies it; tests provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	loginRequested() bool

	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	WhoAmI(ctx context.Context) error
	Refresh(ctx context.Context) error
	ChangePassword(ctx context.Context) error

	Nodes(ctx context.Context, args []string) error
	NodeConfig(ctx context.Context, args []string) error
	NodeDelete(ctx context.Context, args []string) error
	Tunnels(ctx context.Context, args []string) error
	TunnelStart(ctx context.Context, args []string) error
	TunnelStop(ctx context.Context, args []string) error
	TunnelDelete(ctx context.Context, args []string) error

	Logs(ctx context.Context, args []string) error
	Stats(ctx context.Context) error
	Config(ctx context.Context) error
	TestEmail(ctx context.Context, args []string) error
	Backup(ctx context.Context) error
}

const (
	helpSignedOut = "Available commands: login, help, exit"
	helpSignedIn  = "Available commands: whoami, refresh, passwd, nodes [id], node-config <id>, node-delete <id>, " +
		"tunnels [id], tunnel-start <id>, tunnel-stop <id>, tunnel-delete <id>, logs [page], stats, config, " +
		"test-email <to>, backup, logout, exit"
)

// runREPL reads commands from reader line by line and dispatches them to
// a. Before every prompt it checks whether the session was sent to the
// login route and, if so, asks for credentials first. The loop exits on
// EOF or on "exit"/"quit".
//
// Errors returned by command handlers are ignored here; handlers report
// their own errors.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		if a.loginRequested() {
			printlnFn("Please sign in.")
			_ = a.Login(ctx)
		}

		printlnFn(fmt.Sprintf("gost> %s > ", statusFn()))
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
				printlnFn(helpSignedOut)
			}

		case "login":
			_ = a.Login(ctx)
		case "logout":
			_ = a.Logout(ctx)
		case "whoami":
			_ = a.WhoAmI(ctx)
		case "refresh":
			_ = a.Refresh(ctx)
		case "passwd":
			_ = a.ChangePassword(ctx)

		case "nodes":
			_ = a.Nodes(ctx, args)
		case "node-config":
			_ = a.NodeConfig(ctx, args)
		case "node-delete":
			_ = a.NodeDelete(ctx, args)
		case "tunnels":
			_ = a.Tunnels(ctx, args)
		case "tunnel-start":
			_ = a.TunnelStart(ctx, args)
		case "tunnel-stop":
			_ = a.TunnelStop(ctx, args)
		case "tunnel-delete":
			_ = a.TunnelDelete(ctx, args)

		case "logs":
			_ = a.Logs(ctx, args)
		case "stats":
			_ = a.Stats(ctx)
		case "config":
			_ = a.Config(ctx)
		case "test-email":
			_ = a.TestEmail(ctx, args)
		case "backup":
			_ = a.Backup(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
