package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/jmorganca/seqmap/envconfig"
)

func RunHandler(cmd *cobra.Command, args []string) error {
	s := NewSession(cmd.OutOrStdout(), envconfig.Capacity)

	if len(args) == 1 {
		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()

		return runScript(s, f, args[0])
	}

	if in, ok := cmd.InOrStdin().(*os.File); ok && term.IsTerminal(int(in.Fd())) {
		return runInteractive(s)
	}

	return runScript(s, cmd.InOrStdin(), "<stdin>")
}

// runScript executes r line by line and stops at the first failing command.
func runScript(s *Session, r io.Reader, name string) error {
	scanner := bufio.NewScanner(r)
	for n := 1; scanner.Scan(); n++ {
		quit, err := s.Exec(scanner.Text())
		if err != nil {
			return fmt.Errorf("%s:%d: %w", name, n, err)
		}
		if quit {
			return nil
		}
	}
	return scanner.Err()
}
