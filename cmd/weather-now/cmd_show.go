package main

import (
	"bufio"
	"errors"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/i474232898/weather-now/internal/config"
	"github.com/i474232898/weather-now/internal/screen"
)

var showOnce bool

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the weather screen in the terminal",
	Long: `Acquire the position, fetch the current weather and print it.
Type r (or press enter) to refresh or retry, q to quit.`,
	RunE: runShow,
}

func init() {
	rootCmd.AddCommand(showCmd)
	showCmd.Flags().BoolVar(&showOnce, "once", false, "print the first result and exit; an error result exits non-zero")
}

func runShow(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	in := bufio.NewReader(os.Stdin)
	out := cmd.OutOrStdout()

	pipeline := buildPipeline(cfg, nil, in, out)
	defer pipeline.Close()

	// Ctrl-C keeps its default behaviour here; the action read below blocks.
	ctx := cmd.Context()

	states, unsubscribe := pipeline.Subscribe()
	defer unsubscribe()

	pipeline.Mount(ctx)

	var last screen.State
	for {
		var s screen.State
		select {
		case s = <-states:
		case <-ctx.Done():
			return nil
		}

		// The location stage re-enters Loading; draw it once per cycle.
		if s.Phase == screen.PhaseLoading && last.Phase == screen.PhaseLoading && s.Generation == last.Generation {
			continue
		}
		last = s
		if err := screen.Render(out, s); err != nil {
			return err
		}
		if s.Phase == screen.PhaseLoading {
			continue
		}

		if showOnce {
			if s.Phase == screen.PhaseError {
				return errors.New(s.Message)
			}
			return nil
		}

		quit, err := readAction(in)
		if err != nil || quit {
			return nil
		}
		pipeline.Refresh()
	}
}

// readAction reads one command line. It reports quit on q, quit or end of input.
func readAction(in *bufio.Reader) (bool, error) {
	line, err := in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return true, err
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "q", "quit":
		return true, nil
	default:
		return false, nil
	}
}
