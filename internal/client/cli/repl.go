package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// printlnFn is a test seam for REPL output.
var printlnFn = fmt.Println

// execIface is the command surface the REPL drives. App satisfies it.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	WhoAmI(ctx context.Context) error
	List(ctx context.Context) error
	Show(ctx context.Context, id string) error
	Add(ctx context.Context) error
	Done(ctx context.Context, id string) error
	Undo(ctx context.Context, id string) error
	Rename(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
	Snapshot(ctx context.Context) error
}

const (
	helpLoggedOut = "Available commands: register, login, help, exit"
	helpLoggedIn  = "Available commands: (l)ist, show <id>, add, done <id>, undo <id>, rename <id>, delete <id>, snapshot, whoami, logout, help, exit"
)

// runREPL reads commands line by line from reader until EOF, "exit" or
// "quit". Task commands need a session; commands taking an id print their
// usage when it is missing. Handlers report their own errors, so the loop
// ignores them.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("growflow %s> ", statusFn()))

		line, err := reader.ReadString('\n')
		if err != nil && !(errors.Is(err, io.EOF) && line != "") {
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
				printlnFn(helpLoggedIn)
			} else {
				printlnFn(helpLoggedOut)
			}
			continue
		case "exit", "quit":
			printlnFn("Bye!")
			return
		case "register":
			_ = a.Register(ctx)
			continue
		case "login":
			_ = a.Login(ctx)
			continue
		}

		if !isTaskCommand(cmd) {
			printlnFn("Unknown command:", cmd)
			continue
		}
		if !a.isLoggedIn() {
			printlnFn("Please login or register first.")
			continue
		}

		switch cmd {
		case "logout":
			_ = a.Logout(ctx)
		case "whoami":
			_ = a.WhoAmI(ctx)
		case "l", "list":
			_ = a.List(ctx)
		case "add":
			_ = a.Add(ctx)
		case "snapshot":
			_ = a.Snapshot(ctx)
		default:
			if len(args) == 0 {
				printlnFn(fmt.Sprintf("Usage: %s <id>", cmd))
				continue
			}
			runWithID(ctx, a, cmd, args[0])
		}
	}
}

var taskCommands = map[string]bool{
	"logout": true, "whoami": true, "l": true, "list": true, "add": true, "snapshot": true,
	"show": true, "done": true, "undo": true, "rename": true, "delete": true,
}

func isTaskCommand(cmd string) bool {
	return taskCommands[cmd]
}

func runWithID(ctx context.Context, a execIface, cmd, id string) {
	switch cmd {
	case "show":
		_ = a.Show(ctx, id)
	case "done":
		_ = a.Done(ctx, id)
	case "undo":
		_ = a.Undo(ctx, id)
	case "rename":
		_ = a.Rename(ctx, id)
	case "delete":
		_ = a.Delete(ctx, id)
	}
}
