package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/j2h4u/beeminder-wordcount/internal/poller"
	"github.com/j2h4u/beeminder-wordcount/internal/session"
	"github.com/j2h4u/beeminder-wordcount/internal/settings"
	"github.com/j2h4u/beeminder-wordcount/internal/submit"
	"github.com/j2h4u/beeminder-wordcount/internal/tui"
	"github.com/j2h4u/beeminder-wordcount/internal/wordcount"
)

// signalContext returns a context cancelled on SIGINT/SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
}

// watchCommand is one line typed during a watch session.
type watchCommand int

const (
	watchUnknown watchCommand = iota
	watchEmpty
	watchSend
	watchStatus
	watchQuit
	watchHelp
)

// parseWatchCommand maps an input line to a command.
func parseWatchCommand(line string) watchCommand {
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "":
		return watchEmpty
	case "s", "send":
		return watchSend
	case "st", "status":
		return watchStatus
	case "q", "quit", "exit":
		return watchQuit
	case "h", "help", "?":
		return watchHelp
	}
	return watchUnknown
}

// runWatch runs the poller and reads commands from stdin until quit or a signal.
func runWatch(args []string) int {
	var flags commonFlags
	fs := flag.NewFlagSet("watch", flag.ExitOnError)
	flags.register(fs)
	_ = fs.Parse(args) // ExitOnError handles errors

	ctx, cancel := signalContext()
	defer cancel()

	a, err := newApp(ctx, flags)
	if err != nil {
		tui.PrintError(err.Error())
		return 1
	}
	defer a.Close()

	sess := session.New(session.Config{
		Store:             a.store,
		Poller:            poller.New(a.workspace, a.cfg.Poll.Interval),
		Submitter:         a.submitter(),
		Workspace:         a.workspace,
		WatchPath:         a.store.Path(),
		AuthTokenOverride: os.Getenv(authTokenEnv),
		OnOutcome:         printOutcome,
		OnNotice:          tui.PrintWarn,
	})

	errCh := make(chan error, 1)
	go func() { errCh <- sess.Run(ctx) }()

	tui.PrintInfo(fmt.Sprintf("Watching %s. Commands: send, status, quit.", a.workspace.Path()))

	lines := make(chan string)
	go readLines(os.Stdin, lines)

	for {
		select {
		case err := <-errCh:
			if err != nil {
				tui.PrintError(err.Error())
				return 1
			}
			return 0
		case line, ok := <-lines:
			if !ok {
				// stdin closed: keep measuring until a signal arrives
				lines = nil
				continue
			}
			switch parseWatchCommand(line) {
			case watchSend:
				if err := sess.RequestSubmit(ctx); err != nil {
					log.Debug().Err(err).Msg("submit request dropped")
				}
			case watchStatus:
				if st, err := sess.Status(ctx); err == nil {
					printStatus(st)
				}
			case watchQuit:
				cancel()
			case watchHelp:
				fmt.Println("send    submit the current word count")
				fmt.Println("status  show the last measurement and settings")
				fmt.Println("quit    stop watching")
			case watchUnknown:
				tui.PrintWarn(fmt.Sprintf("Unknown command %q (try help)", strings.TrimSpace(line)))
			}
		}
	}
}

func readLines(r io.Reader, out chan<- string) {
	defer close(out)
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		out <- scanner.Text()
	}
}

// runSend submits one datapoint from the stored settings.
func runSend(args []string) int {
	var flags commonFlags
	fs := flag.NewFlagSet("send", flag.ExitOnError)
	flags.register(fs)
	_ = fs.Parse(args)

	ctx, cancel := signalContext()
	defer cancel()

	a, err := newApp(ctx, flags)
	if err != nil {
		tui.PrintError(err.Error())
		return 1
	}
	defer a.Close()

	st, err := a.store.Load()
	if err != nil {
		tui.PrintError(err.Error())
		return 1
	}
	if token := os.Getenv(authTokenEnv); token != "" {
		st.AuthToken = token
	}

	if !submit.Available(st.Scope, a.workspace) {
		tui.PrintWarn("No active editor view; select some text first.")
		return 1
	}

	outcome := a.submitter().Submit(ctx, st)
	printOutcome(outcome)
	if !outcome.Success {
		return 1
	}
	return 0
}

// runCount prints the word count of the vault, or of the files given as arguments.
func runCount(args []string) int {
	var flags commonFlags
	fs := flag.NewFlagSet("count", flag.ExitOnError)
	flags.register(fs)
	_ = fs.Parse(args)

	ctx, cancel := signalContext()
	defer cancel()

	a, err := newApp(ctx, flags)
	if err != nil {
		tui.PrintError(err.Error())
		return 1
	}
	defer a.Close()

	if fs.NArg() == 0 {
		total, err := wordcount.CountVault(ctx, a.vault)
		if err != nil {
			tui.PrintError(err.Error())
			return 1
		}
		fmt.Printf("%d words in vault %s\n", total, a.vault.Name())
		return 0
	}

	total := 0
	for _, path := range fs.Args() {
		data, err := os.ReadFile(path)
		if err != nil {
			tui.PrintError(err.Error())
			return 1
		}
		n := wordcount.Count(string(data))
		total += n
		fmt.Printf("%8d %s\n", n, path)
	}
	if fs.NArg() > 1 {
		fmt.Printf("%8d total\n", total)
	}
	return 0
}

// runSelect publishes stdin as the active view's selection.
func runSelect(args []string) int {
	var flags commonFlags
	fs := flag.NewFlagSet("select", flag.ExitOnError)
	flags.register(fs)
	title := fs.String("title", "", "title of the document the selection comes from")
	clearView := fs.Bool("clear", false, "remove the active view instead of publishing one")
	_ = fs.Parse(args)

	ctx, cancel := signalContext()
	defer cancel()

	a, err := newApp(ctx, flags)
	if err != nil {
		tui.PrintError(err.Error())
		return 1
	}
	defer a.Close()

	if *clearView {
		if err := a.workspace.Clear(); err != nil {
			tui.PrintError(err.Error())
			return 1
		}
		return 0
	}

	text, err := io.ReadAll(os.Stdin)
	if err != nil {
		tui.PrintError(err.Error())
		return 1
	}
	if err := a.workspace.Publish(*title, string(text)); err != nil {
		tui.PrintError(err.Error())
		return 1
	}
	log.Debug().Str("title", *title).Int("words", wordcount.Count(string(text))).Msg("selection published")
	return 0
}

// runSettings opens the settings panel.
func runSettings(args []string) int {
	var flags commonFlags
	fs := flag.NewFlagSet("settings", flag.ExitOnError)
	flags.register(fs)
	_ = fs.Parse(args)

	ctx, cancel := signalContext()
	defer cancel()

	a, err := newApp(ctx, flags)
	if err != nil {
		tui.PrintError(err.Error())
		return 1
	}
	defer a.Close()

	st, err := a.store.Load()
	if err != nil {
		tui.PrintError(err.Error())
		return 1
	}
	if err := tui.EditSettings(settings.NewEditor(a.store, &st)); err != nil {
		tui.PrintError(err.Error())
		return 1
	}
	tui.PrintSuccess(fmt.Sprintf("Settings saved to %s", a.store.Path()))
	return 0
}

// runHistory prints recent submissions.
func runHistory(args []string) int {
	var flags commonFlags
	fs := flag.NewFlagSet("history", flag.ExitOnError)
	flags.register(fs)
	limit := fs.Int("n", 10, "number of submissions to show")
	_ = fs.Parse(args)

	ctx, cancel := signalContext()
	defer cancel()

	a, err := newApp(ctx, flags)
	if err != nil {
		tui.PrintError(err.Error())
		return 1
	}
	defer a.Close()

	if a.history == nil {
		tui.PrintWarn("Submission history is disabled (paths.history)")
		return 1
	}
	attempts, err := a.history.Recent(ctx, *limit)
	if err != nil {
		tui.PrintError(err.Error())
		return 1
	}
	if len(attempts) == 0 {
		tui.PrintInfo("No submissions yet")
		return 0
	}
	for _, at := range attempts {
		mark := tui.ColorGreen + "ok  " + tui.ColorReset
		if !at.Success {
			mark = tui.ColorRed + "fail" + tui.ColorReset
		}
		fmt.Printf("%s %s %6d %s/%s %s\n",
			at.CreatedAt.Local().Format(time.DateTime), mark, at.Value, at.UserName, at.GoalName, at.Comment)
	}
	return 0
}

func printOutcome(o submit.Outcome) {
	if o.Success {
		tui.PrintSuccess(o.Message())
		return
	}
	tui.PrintError(o.Message())
}

func printStatus(st settings.Settings) {
	fmt.Printf("user=%s goal=%s scope=%s words=%d title=%q\n",
		st.UserName, st.GoalName, st.Scope, st.CurrentWordCount, st.EditingFileTitle)
}
