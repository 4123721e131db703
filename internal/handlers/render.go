package handlers

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/alimgiray/repodigest/internal/models"
	"github.com/alimgiray/repodigest/internal/repositories"
	"github.com/alimgiray/repodigest/internal/services"
	"github.com/alimgiray/repodigest/pkg/logger"
	"github.com/spf13/cobra"
)

type RenderHandler struct {
	store  *repositories.ArtifactRepository
	output string
}

func NewRenderHandler() *RenderHandler {
	return &RenderHandler{store: repositories.NewArtifactRepository("")}
}

// Command builds the render subcommand
func (h *RenderHandler) Command() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render <analysis_ready_json_path>",
		Short: "Render analysis_ready.json as a Markdown document",
		Args:  cobra.ExactArgs(1),
		RunE:  h.Run,
	}
	cmd.Flags().StringVarP(&h.output, "output", "o", "", "Output path (default <stem>_for_llm.md)")
	return cmd
}

// Run renders the reduced record and saves the Markdown
func (h *RenderHandler) Run(cmd *cobra.Command, args []string) error {
	inputPath := args[0]

	var record models.ReducedRecord
	if err := h.store.LoadJSON(inputPath, &record); err != nil {
		return err
	}

	markdown := services.RenderMarkdown(&record)

	outputPath := h.output
	if outputPath == "" {
		outputPath = repositories.RenderedPath(inputPath)
	}
	if err := h.store.SaveText(outputPath, markdown); err != nil {
		return err
	}

	logger.WithField("path", outputPath).Infof("Saved Markdown digest (%d bytes)", len(markdown))
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Markdown saved to %s\n", outputPath)
	fmt.Fprintf(out, "  • Size: %d characters\n", utf8.RuneCountInString(markdown))
	fmt.Fprintf(out, "  • Lines: %d\n", strings.Count(markdown, "\n")+1)
	return nil
}
