package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// printFn prints the prompt without a newline.
var printFn = fmt.Print

// command handles one shell command. args excludes the command name.
type command func(ctx context.Context, args []string) error

// execIface defines the command surface the REPL dispatches to. App
// satisfies it; tests provide a recording stub.
type execIface interface {
	Plans(ctx context.Context, args []string) error
	NewPlan(ctx context.Context, args []string) error
	Use(ctx context.Context, args []string) error
	RenamePlan(ctx context.Context, args []string) error
	DropPlan(ctx context.Context, args []string) error
	List(ctx context.Context, args []string) error
	Show(ctx context.Context, args []string) error
	Add(ctx context.Context, args []string) error
	Toggle(ctx context.Context, args []string) error
	Edit(ctx context.Context, args []string) error
	Delete(ctx context.Context, args []string) error
	Move(ctx context.Context, args []string) error
	Reorder(ctx context.Context, args []string) error
	Title(ctx context.Context, args []string) error
	Notes(ctx context.Context, args []string) error
	Budget(ctx context.Context, args []string) error
	Price(ctx context.Context, args []string) error
	Clear(ctx context.Context, args []string) error
	Undo(ctx context.Context, args []string) error
	Rewrite(ctx context.Context, args []string) error
	Export(ctx context.Context, args []string) error
}

const helpText = `Plans:   plans | new <title> | use <n|id> | rename <title> | drop | export
Lists:   list tasks|shopping|checklist | show | title <text> | notes | budget <amount> [currency]
Items:   add <text> | toggle <n> | edit <n> <text> | del <n> | price <n> <amount>
Order:   move <n>[,<n>...] <to> | reorder <n> [<n>...]
Bulk:    clear | undo | rewrite
Other:   help | exit
Shopping items: <name> [x<qty>[unit]] [@<price>] [#<category>]`

// runREPL reads commands line by line and dispatches them to a. The prompt,
// built from statusFn, is printed only when prompt is set. Command errors are
// printed and the loop continues. It returns on EOF, "exit"/"quit" or when
// ctx is done.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader, prompt bool) {
	commands := map[string]command{
		"plans":   a.Plans,
		"new":     a.NewPlan,
		"use":     a.Use,
		"rename":  a.RenamePlan,
		"drop":    a.DropPlan,
		"list":    a.List,
		"l":       a.List,
		"show":    a.Show,
		"s":       a.Show,
		"add":     a.Add,
		"a":       a.Add,
		"toggle":  a.Toggle,
		"t":       a.Toggle,
		"edit":    a.Edit,
		"del":     a.Delete,
		"move":    a.Move,
		"reorder": a.Reorder,
		"title":   a.Title,
		"notes":   a.Notes,
		"budget":  a.Budget,
		"price":   a.Price,
		"clear":   a.Clear,
		"undo":    a.Undo,
		"rewrite": a.Rewrite,
		"export":  a.Export,
	}

	for {
		if ctx.Err() != nil {
			return
		}
		if prompt {
			printFn(fmt.Sprintf("lk%s> ", withSpace(statusFn())))
		}
		line, err := readLine(reader)
		if err != nil {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help", "?":
			printlnFn(helpText)
			continue
		case "exit", "quit":
			printlnFn("Bye!")
			return
		}

		fn, ok := commands[cmd]
		if !ok {
			printlnFn("Unknown command:", cmd)
			continue
		}
		if err := fn(ctx, args); err != nil {
			printlnFn("Error:", err)
		}
	}
}

func withSpace(s string) string {
	if s == "" {
		return ""
	}
	return " " + s
}
