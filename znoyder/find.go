package znoyder

import (
	"fmt"

	"github.com/SoftKiwiGames/znoyder/znoyder/finder"
	"github.com/SoftKiwiGames/znoyder/znoyder/ui"
	"github.com/spf13/cobra"
)

func (z *Znoyder) buildFindJobsCommand(verbose *bool) *cobra.Command {
	var cfg Config

	cmd := &cobra.Command{
		Use:           "find-jobs",
		Short:         "List jobs run by the selected pipelines",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg.Verbose = *verbose
			return z.findJobs(cfg)
		},
	}

	cmd.Flags().StringVarP(&cfg.Directory, "directory", "d", ".", "Directory to search for project jobs")
	cmd.Flags().StringVarP(&cfg.Templates, "templates", "t", "", "Directory to search for project templates (default: --directory)")
	cmd.Flags().StringVarP(&cfg.Pipeline, "pipeline", "p", "check", "Comma-separated pipelines to report")
	cmd.Flags().StringSliceVarP(&cfg.Exclude, "exclude", "e", nil, "Files or directories to skip (glob, repeatable)")
	cmd.Flags().StringVarP(&cfg.Output, "output", "o", OutputText, "Output format: text or table")

	return cmd
}

func (z *Znoyder) findJobs(cfg Config) error {
	if err := cfg.Prepare(); err != nil {
		return err
	}

	logger := newLogger(z.stderr, cfg.Verbose)

	pipelines, err := finder.FindPipelines(cfg.Pipeline)
	if err != nil {
		return err
	}
	logger.Debug("resolved pipelines", "pipelines", pipelines)

	f := finder.New(logger)

	docs, err := f.Load(cfg.Directory, cfg.Exclude)
	if err != nil {
		return fmt.Errorf("failed to find jobs: %w", err)
	}
	jobs := finder.JobsIn(docs, pipelines)
	logger.Debug("found jobs", "count", len(jobs))

	templateDocs := docs
	if cfg.Templates != cfg.Directory {
		templateDocs, err = f.Load(cfg.Templates, cfg.Exclude)
		if err != nil {
			return fmt.Errorf("failed to find templates: %w", err)
		}
	}
	templates, err := finder.TemplatesIn(templateDocs, pipelines)
	if err != nil {
		return fmt.Errorf("failed to find templates: %w", err)
	}
	logger.Debug("found templates", "count", len(templates))

	used := finder.ReferencedTemplates(docs)
	logger.Debug("projects use templates", "templates", used)
	for _, name := range finder.MissingTemplates(used, templates) {
		logger.Warn("template used by a project is not defined", "template", name, "templates", cfg.Templates)
	}

	rows := make([]ui.Row, 0, len(jobs))
	for _, job := range jobs {
		rows = append(rows, ui.Row{Pipeline: job.Pipeline, Job: job.Name})
	}
	for _, tpl := range templates {
		for _, job := range tpl.TemplateJobs {
			rows = append(rows, ui.Row{Pipeline: job.Pipeline, Job: job.Name, Template: tpl.TemplateName})
		}
	}

	out := ui.NewOutput(z.stdout, z.stderr)
	if cfg.Output == OutputTable {
		out.Table(rows)
		return nil
	}
	for _, r := range rows {
		out.Line(r)
	}
	return nil
}
