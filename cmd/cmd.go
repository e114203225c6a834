package cmd

import (
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jmorganca/seqmap/envconfig"
	"github.com/jmorganca/seqmap/logutil"
)

func NewCLI() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "seqmap",
		Short: "Insertion-ordered map shell",
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Disable usage printing on errors
			cmd.SilenceUsage = true
			// logs go to stderr so replies on stdout stay clean
			slog.SetDefault(logutil.NewLogger(cmd.ErrOrStderr(), envconfig.LogLevel()))
		},
	}

	cobra.EnableCommandSorting = false

	runCmd := &cobra.Command{
		Use:   "run [FILE]",
		Short: "Run map commands from a file, stdin, or an interactive prompt",
		Args:  cobra.MaximumNArgs(1),
		RunE:  RunHandler,
	}

	envCmd := &cobra.Command{
		Use:   "env",
		Short: "Show environment variables",
		Args:  cobra.NoArgs,
		RunE:  EnvHandler,
	}

	appendEnvDocs(runCmd)

	rootCmd.AddCommand(
		runCmd,
		envCmd,
	)

	return rootCmd
}

func EnvHandler(cmd *cobra.Command, _ []string) error {
	vars := envconfig.AsMap()

	var data [][]string
	for _, name := range slices.Sorted(maps.Keys(vars)) {
		v := vars[name]
		data = append(data, []string{name, fmt.Sprintf("%v", v.Value), v.Description})
	}
	renderTable(cmd.OutOrStdout(), []string{"NAME", "VALUE", "DESCRIPTION"}, data)
	return nil
}

func appendEnvDocs(cmd *cobra.Command) {
	vars := envconfig.AsMap()

	var sb strings.Builder
	sb.WriteString("\nEnvironment Variables:\n")
	for _, name := range slices.Sorted(maps.Keys(vars)) {
		fmt.Fprintf(&sb, "      %-24s %s\n", name, vars[name].Description)
	}
	cmd.SetUsageTemplate(cmd.UsageTemplate() + sb.String())
}
