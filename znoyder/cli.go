package znoyder

import (
	"io"
	"os"

	"github.com/SoftKiwiGames/znoyder/znoyder/ui"
	"github.com/spf13/cobra"
)

type Znoyder struct {
	stdout io.Writer
	stderr io.Writer
}

func New(stdout io.Writer, stderr io.Writer) *Znoyder {
	return &Znoyder{
		stdout: stdout,
		stderr: stderr,
	}
}

func (z *Znoyder) Run() {
	os.Exit(z.Main(os.Args[1:]))
}

// Main executes the command line and returns the process exit code.
func (z *Znoyder) Main(args []string) int {
	rootCmd := z.buildRootCommand()
	rootCmd.SetArgs(args)
	rootCmd.SetOut(z.stdout)
	rootCmd.SetErr(z.stderr)

	if err := rootCmd.Execute(); err != nil {
		ui.NewOutput(z.stdout, z.stderr).Error("Error: %v", err)
		return 1
	}
	return 0
}

func (z *Znoyder) buildRootCommand() *cobra.Command {
	var verbose bool

	rootCmd := &cobra.Command{
		Use:           "znoyder",
		Short:         "Znoyder - Zuul job finder",
		Long:          "Znoyder scans Zuul configuration and reports which jobs run in which pipelines.",
		Version:       "0.1.0",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging on stderr")

	rootCmd.AddCommand(
		z.buildFindJobsCommand(&verbose),
		z.buildPipelinesCommand(),
	)

	return rootCmd
}
