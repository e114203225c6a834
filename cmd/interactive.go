package cmd

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/jmorganca/seqmap/envconfig"
	"github.com/jmorganca/seqmap/readline"
)

func runInteractive(s *Session) error {
	usageShortcuts := func() {
		fmt.Fprintln(os.Stderr, "Available keyboard shortcuts:")
		fmt.Fprintln(os.Stderr, "  Ctrl + a            Move to the beginning of the line (Home)")
		fmt.Fprintln(os.Stderr, "  Ctrl + e            Move to the end of the line (End)")
		fmt.Fprintln(os.Stderr, "   Alt + b            Move back (left) one word")
		fmt.Fprintln(os.Stderr, "   Alt + f            Move forward (right) one word")
		fmt.Fprintln(os.Stderr, "  Ctrl + k            Delete the sentence after the cursor")
		fmt.Fprintln(os.Stderr, "  Ctrl + u            Delete the sentence before the cursor")
		fmt.Fprintln(os.Stderr, "  Ctrl + w            Delete the word before the cursor")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "  Ctrl + l            Clear the screen")
		fmt.Fprintln(os.Stderr, "  Ctrl + d            Exit (exit)")
		fmt.Fprintln(os.Stderr, "")
	}

	var history *readline.History
	if !envconfig.NoHistory {
		var err error
		if history, err = openHistory(); err != nil {
			slog.Warn("history unavailable", "error", err)
		}
	}

	scanner, err := readline.New(readline.Prompt{
		Prompt:      "seqmap> ",
		Placeholder: "Enter a command (help for a list, ? for shortcuts)",
	}, history)
	if err != nil {
		return err
	}

	for {
		line, err := scanner.Readline()
		switch {
		case errors.Is(err, io.EOF):
			return nil
		case errors.Is(err, readline.ErrInterrupt):
			if line == "" {
				fmt.Println("Use Ctrl + d or exit to exit.")
			}
			continue
		case err != nil:
			return err
		}

		if line == "?" {
			usageShortcuts()
			continue
		}

		quit, err := s.Exec(line)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			continue
		}
		if quit {
			return nil
		}
	}
}

func openHistory() (*readline.History, error) {
	path, err := readline.DefaultHistoryPath()
	if err != nil {
		return nil, err
	}
	return readline.NewHistory(path, envconfig.HistoryLimit)
}
