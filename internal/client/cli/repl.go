package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"studypilot/internal/client/guard"
)

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a
// lightweight stub.
type execIface interface {
	guardState() guard.State
	isLoggedIn() bool
	Login(ctx context.Context) error
	Signup(ctx context.Context) error
	Logout(ctx context.Context) error
	Dashboard(ctx context.Context) error
	Ask(ctx context.Context) error
	Upload(ctx context.Context) error
	Summary(ctx context.Context) error
	Quiz(ctx context.Context) error
	History(ctx context.Context) error
}

// guardedCommands is the protected subtree of the command set: everything
// here requires an authenticated session.
var guardedCommands = map[string]func(execIface, context.Context) error{
	"dashboard": execIface.Dashboard,
	"ask":       execIface.Ask,
	"upload":    execIface.Upload,
	"summary":   execIface.Summary,
	"quiz":      execIface.Quiz,
	"history":   execIface.History,
}

// runREPL starts the read–eval–print loop for the StudyPilot CLI.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "exit" or "quit".
//
// Guarded commands re-evaluate the session guard on every dispatch:
//   - Pending: a neutral waiting notice, no navigation decision,
//   - Denied: redirect to the login entry point, the requested command is
//     discarded (the originally requested destination is not replayed
//     after login),
//   - Allowed: the command runs.
//
// Any errors returned by command handlers are ignored here; handlers
// surface their own errors. This keeps the REPL loop resilient and focused
// on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner, w io.Writer) {
	for {
		fmt.Fprintf(w, "studypilot %s> ", statusFn())
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]

		if handler, ok := guardedCommands[cmd]; ok {
			switch a.guardState() {
			case guard.Pending:
				fmt.Fprintln(w, "Session is still restoring, try again in a moment.")
			case guard.Denied:
				fmt.Fprintln(w, "You are not signed in. Use 'login' or 'signup' first.")
			case guard.Allowed:
				_ = handler(a, ctx)
			}
			continue
		}

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				fmt.Fprintln(w, "Available commands: dashboard, ask, upload, summary, quiz, history, logout, exit")
			} else {
				fmt.Fprintln(w, "Available commands: login, signup, exit")
			}

		case "login":
			_ = a.Login(ctx)

		case "signup", "register":
			_ = a.Signup(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "exit", "quit":
			fmt.Fprintln(w, "Bye!")
			return

		default:
			fmt.Fprintln(w, "Unknown command:", cmd)
		}
	}
}
