package znoyder

import (
	"github.com/SoftKiwiGames/znoyder/znoyder/ui"
	"github.com/SoftKiwiGames/znoyder/znoyder/zuul"
	"github.com/spf13/cobra"
)

func (z *Znoyder) buildPipelinesCommand() *cobra.Command {
	return &cobra.Command{
		Use:           "pipelines",
		Short:         "List the pipeline names accepted by --pipeline",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := ui.NewOutput(z.stdout, z.stderr)
			for _, p := range zuul.Pipelines() {
				out.Info("%s", p)
			}
			return nil
		},
	}
}
