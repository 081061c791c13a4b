package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn and printFn are test seams for REPL output.
var (
	printlnFn = fmt.Println
	printFn   = fmt.Print
)

// execIface is the command surface the REPL dispatches to. App satisfies it;
// tests use a stub.
type execIface interface {
	List(ctx context.Context) error
	Search(ctx context.Context, keyword string) error
	Show(ctx context.Context, id string) error
	New(ctx context.Context) error
	Edit(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
	Export(ctx context.Context, path string) error
	Import(ctx context.Context, path string) error
}

const helpText = `Available commands:
  (l)ist            list entries, newest first
  search <keyword>  list entries containing keyword
  show <id>         show one entry
  new               write a new entry
  edit <id>         edit an entry
  delete <id>       delete an entry
  export [file]     write a backup file
  import <file>     load a backup file
  exit | quit       leave the program`

// runREPL reads commands from reader until EOF, "exit" or "quit". Handler
// errors are reported by the handlers themselves. The prompt is only shown
// when stdin is a terminal.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	interactive := isTerminal()

	for {
		if ctx.Err() != nil {
			return
		}
		if interactive {
			printFn(fmt.Sprintf("diary %s> ", statusFn()))
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
		arg := strings.Join(args, " ")

		switch cmd {
		case "help":
			printlnFn(helpText)

		case "l", "list":
			_ = a.List(ctx)

		case "search":
			if arg == "" {
				printlnFn("Usage: search <keyword>")
				continue
			}
			_ = a.Search(ctx, arg)

		case "show", "edit", "delete":
			if len(args) != 1 {
				printlnFn(fmt.Sprintf("Usage: %s <id>", cmd))
				continue
			}
			switch cmd {
			case "show":
				_ = a.Show(ctx, args[0])
			case "edit":
				_ = a.Edit(ctx, args[0])
			default:
				_ = a.Delete(ctx, args[0])
			}

		case "new":
			_ = a.New(ctx)

		case "export":
			_ = a.Export(ctx, arg)

		case "import":
			if arg == "" {
				printlnFn("Usage: import <file>")
				continue
			}
			_ = a.Import(ctx, arg)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
