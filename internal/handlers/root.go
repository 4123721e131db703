package handlers

import (
	"context"

	"github.com/alimgiray/repodigest/pkg/config"
	"github.com/alimgiray/repodigest/pkg/logger"
	"github.com/spf13/cobra"
)

// NewRootCommand wires every stage command under a single root
func NewRootCommand() *cobra.Command {
	cfg := config.Load()
	var logLevel string

	root := &cobra.Command{
		Use:   "repodigest",
		Short: "Turn a GitHub repository into a single Markdown digest",
		Long: `repodigest fetches repository metadata from the GitHub API, reduces it to
text-relevant fields and renders it as one Markdown document.

Stages:
  fetch    repository URL      -> raw_data.json
  prepare  raw_data.json       -> analysis_ready.json
  render   analysis_ready.json -> analysis_ready_for_llm.md
  export   analysis_ready.json -> analysis_ready.xlsx`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			logger.SetFormat(cfg.Log.Format)
			if cmd.Flags().Changed("log-level") {
				logger.SetLevel(logLevel)
				return
			}
			logger.SetLevel(cfg.Log.Level)
		},
	}
	root.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error)")

	root.AddCommand(
		NewFetchHandler(cfg).Command(),
		NewPrepareHandler().Command(),
		NewRenderHandler().Command(),
		NewExportHandler().Command(),
	)
	return root
}

// Execute runs the CLI with os.Args
func Execute(ctx context.Context) error {
	return NewRootCommand().ExecuteContext(ctx)
}
