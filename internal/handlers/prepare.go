package handlers

import (
	"fmt"
	"io"

	"github.com/alimgiray/repodigest/internal/models"
	"github.com/alimgiray/repodigest/internal/repositories"
	"github.com/alimgiray/repodigest/internal/services"
	"github.com/alimgiray/repodigest/pkg/logger"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

type PrepareHandler struct {
	store  *repositories.ArtifactRepository
	output string
}

func NewPrepareHandler() *PrepareHandler {
	return &PrepareHandler{store: repositories.NewArtifactRepository("")}
}

// Command builds the prepare subcommand
func (h *PrepareHandler) Command() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prepare <raw_json_path>",
		Short: "Reduce raw_data.json to analysis_ready.json",
		Args:  cobra.ExactArgs(1),
		RunE:  h.Run,
	}
	cmd.Flags().StringVarP(&h.output, "output", "o", "", "Output path (default derived from the input name)")
	return cmd
}

// Run loads the aggregate record, reduces it and saves the result
func (h *PrepareHandler) Run(cmd *cobra.Command, args []string) error {
	inputPath := args[0]

	var record models.AggregateRecord
	if err := h.store.LoadJSON(inputPath, &record); err != nil {
		return err
	}

	reduced := services.ReduceAggregate(&record)

	outputPath := h.output
	if outputPath == "" {
		outputPath = repositories.PreparedPath(inputPath)
	}
	if err := h.store.SaveJSON(outputPath, reduced); err != nil {
		return err
	}

	logger.WithFields(logrus.Fields{
		"path":     outputPath,
		"issues":   reduced.Stats.TotalIssues,
		"releases": reduced.Stats.TotalReleases,
		"docs":     reduced.Stats.TotalDocuments,
	}).Info("Saved analysis-ready data")
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Analysis-ready data saved to %s\n", outputPath)
	printStats(out, reduced.Stats)
	return nil
}

func printStats(w io.Writer, stats models.Stats) {
	fmt.Fprintln(w, "Stats:")
	fmt.Fprintf(w, "  • README: %d characters\n", stats.ReadmeLength)
	fmt.Fprintf(w, "  • Issues: %d\n", stats.TotalIssues)
	fmt.Fprintf(w, "  • Releases: %d\n", stats.TotalReleases)
	fmt.Fprintf(w, "  • Documents: %d\n", stats.TotalDocuments)
	fmt.Fprintf(w, "  • Workflows: %d\n", stats.TotalWorkflows)
	fmt.Fprintf(w, "  • PR template: %s\n", yesNo(stats.HasPRTemplate))
	fmt.Fprintf(w, "  • Issue templates: %s\n", yesNo(stats.HasIssueTemplates))
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
