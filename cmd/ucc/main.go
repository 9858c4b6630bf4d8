package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/mattn/go-isatty"
	"github.com/peterh/liner"

	ucc "github.com/kstewart83/ucc"
)

const (
	appName     = "ucc"
	historyFile = ".ucc_history"
	prompt      = ">> "
)

var useColor = isatty.IsTerminal(os.Stdout.Fd())

func red(s string) string {
	if !useColor {
		return s
	}
	return "\x1b[31m" + s + "\x1b[0m"
}

func blue(s string) string {
	if !useColor {
		return s
	}
	return "\x1b[94m" + s + "\x1b[0m"
}

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	switch cmd := os.Args[1]; cmd {
	case "repl":
		os.Exit(cmdRepl(os.Args[2:]))
	case "run":
		os.Exit(cmdRun(os.Args[2:]))
	case "test":
		os.Exit(cmdTest(os.Args[2:]))
	case "version":
		fmt.Println(ucc.Version)
	case "-h", "--help", "help":
		usage()
	default:
		fmt.Fprintf(os.Stderr, "%s: unknown command %q\n", appName, cmd)
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Printf(`ucc %s — untyped concatenative calculus

Usage:
  %s repl [-max-steps n] [-no-prelude] [-drop-defs] [-no-compress]
  %s run [-max-steps n] [-no-prelude] <file.ucc>
  %s test <suite.yaml> [...]
  %s version

`, ucc.Version, appName, appName, appName, appName)
}

// -----------------------------------------------------------------------------
// repl
// -----------------------------------------------------------------------------

func cmdRepl(args []string) int {
	fs := flag.NewFlagSet("repl", flag.ContinueOnError)
	maxSteps := fs.Int("max-steps", 100000, "abort a reduction after this many steps (0 = unbounded)")
	noPrelude := fs.Bool("no-prelude", false, "start without the built-in definitions")
	dropDefs := fs.Bool("drop-defs", false, ":drop forgets the last definition instead of clearing the stack")
	noCompress := fs.Bool("no-compress", false, "do not display quoted values by their defined names")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	fmt.Printf("ucc %s REPL\nCtrl+C cancels input, Ctrl+D exits. Type :help for commands.\n", ucc.Version)

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(sigc)
	go func() {
		<-sigc
		ln.Close()
		os.Exit(130)
	}()

	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}

	ip := ucc.NewInterp(ucc.Options{
		MaxSteps: *maxSteps,
		Prelude:  !*noPrelude,
		DropDefs: *dropDefs,
		Compress: !*noCompress,
	})

	for {
		line, err := ln.Prompt(prompt)
		if errors.Is(err, io.EOF) {
			fmt.Println()
			return 0
		}
		if errors.Is(err, liner.ErrPromptAborted) {
			continue
		}
		if err != nil {
			fmt.Fprintln(os.Stderr, red(err.Error()))
			return 1
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		ln.AppendHistory(line)

		quit, werr := ip.Start(line, colorWriter{os.Stdout})
		if werr != nil {
			fmt.Fprintln(os.Stderr, red(werr.Error()))
			return 1
		}
		if quit {
			return 0
		}
		for !ip.Done() {
			if werr := ip.Step(colorWriter{os.Stdout}); werr != nil {
				fmt.Fprintln(os.Stderr, red(werr.Error()))
				return 1
			}
		}
	}
}

// colorWriter tints configuration lines (those carrying a stack delimiter)
// so reduction output stands apart from session chatter.
type colorWriter struct {
	w io.Writer
}

func (cw colorWriter) Write(p []byte) (int, error) {
	s := string(p)
	if useColor && strings.Contains(s, "⟨") {
		if _, err := io.WriteString(cw.w, blue(strings.TrimSuffix(s, "\n"))+"\n"); err != nil {
			return 0, err
		}
		return len(p), nil
	}
	return cw.w.Write(p)
}

// -----------------------------------------------------------------------------
// run
// -----------------------------------------------------------------------------

func cmdRun(args []string) int {
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	maxSteps := fs.Int("max-steps", 1000000, "abort a reduction after this many steps (0 = unbounded)")
	noPrelude := fs.Bool("no-prelude", false, "run without the built-in definitions")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "usage: %s run [flags] <file.ucc>\n", appName)
		return 2
	}

	file := fs.Arg(0)
	src, err := os.ReadFile(file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: cannot read %s: %v\n", appName, file, err)
		return 1
	}

	ctx := ucc.NewContext()
	if !*noPrelude {
		ctx.LoadPrelude()
	}
	items, perr := ucc.ParseItems(ctx.Interner, string(src))
	if perr != nil {
		fmt.Fprintln(os.Stderr, red(ucc.WrapErrorWithSource(perr, string(src)).Error()))
		return 1
	}

	cfg := ucc.Config{}
	for _, item := range items {
		if item.Kind == ucc.ItemDef {
			ctx.Define(item.Def)
			continue
		}
		cfg.Expr = item.Expr
		out, rerr := ctx.Eval(cfg, *maxSteps)
		if rerr != nil {
			p := ucc.NewPrinter(ctx)
			fmt.Fprintf(os.Stderr, "%s\n", red(rerr.Error()))
			fmt.Fprintf(os.Stderr, "stuck at %s\n", p.Config(out))
			return 1
		}
		cfg = out
	}

	fmt.Println(ucc.NewPrinter(ctx).Config(cfg))
	return 0
}

// -----------------------------------------------------------------------------
// test
// -----------------------------------------------------------------------------

func cmdTest(args []string) int {
	if len(args) == 0 {
		fmt.Fprintf(os.Stderr, "usage: %s test <suite.yaml> [...]\n", appName)
		return 2
	}

	failed := 0
	for _, path := range args {
		suite, err := ucc.LoadSuite(path)
		if err != nil {
			fmt.Fprintln(os.Stderr, red(err.Error()))
			return 1
		}
		results, nfail := ucc.RunSuite(suite)
		failed += nfail
		name := suite.Name
		if name == "" {
			name = path
		}
		fmt.Printf("%s: %d/%d passed\n", name, len(results)-nfail, len(results))
		for _, r := range results {
			if !r.Pass {
				fmt.Printf("  FAIL %s\n    %s\n", r.Name, red(r.Detail))
			}
		}
	}
	if failed > 0 {
		return 1
	}
	return 0
}
