package handlers

import (
	"fmt"
	"io"

	"github.com/alimgiray/repodigest/internal/models"
	"github.com/alimgiray/repodigest/internal/repositories"
	"github.com/alimgiray/repodigest/internal/services"
	"github.com/alimgiray/repodigest/pkg/logger"
	"github.com/spf13/cobra"
)

type ExportHandler struct {
	store  *repositories.ArtifactRepository
	output string
}

func NewExportHandler() *ExportHandler {
	return &ExportHandler{store: repositories.NewArtifactRepository("")}
}

// Command builds the export subcommand
func (h *ExportHandler) Command() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export <analysis_ready_json_path>",
		Short: "Export analysis_ready.json as an Excel workbook",
		Args:  cobra.ExactArgs(1),
		RunE:  h.Run,
	}
	cmd.Flags().StringVarP(&h.output, "output", "o", "", "Output path (default <stem>.xlsx)")
	return cmd
}

func (h *ExportHandler) Run(cmd *cobra.Command, args []string) error {
	inputPath := args[0]

	var record models.ReducedRecord
	if err := h.store.LoadJSON(inputPath, &record); err != nil {
		return err
	}

	outputPath := h.output
	if outputPath == "" {
		outputPath = repositories.WorkbookPath(inputPath)
	}
	err := h.store.Save(outputPath, func(w io.Writer) error {
		return services.ExportWorkbook(&record, w)
	})
	if err != nil {
		return err
	}

	logger.WithField("path", outputPath).Info("Saved workbook")
	fmt.Fprintf(cmd.OutOrStdout(), "Workbook saved to %s\n", outputPath)
	return nil
}
