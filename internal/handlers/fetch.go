package handlers

import (
	"fmt"

	"github.com/alimgiray/repodigest/internal/models"
	"github.com/alimgiray/repodigest/internal/repositories"
	"github.com/alimgiray/repodigest/internal/services"
	"github.com/alimgiray/repodigest/pkg/config"
	"github.com/alimgiray/repodigest/pkg/logger"
	"github.com/spf13/cobra"
)

type FetchHandler struct {
	cfg     *config.Config
	token   string
	output  string
	envFile string
}

func NewFetchHandler(cfg *config.Config) *FetchHandler {
	return &FetchHandler{cfg: cfg}
}

// Command builds the fetch subcommand
func (h *FetchHandler) Command() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fetch <repo_url>",
		Short: "Fetch repository metadata into raw_data.json",
		Args:  cobra.ExactArgs(1),
		RunE:  h.Run,
	}
	cmd.Flags().StringVar(&h.token, "token", "", "GitHub token (overrides the env file and GITHUB_TOKEN)")
	cmd.Flags().StringVarP(&h.output, "output", "o", "", "Output path (default output/{owner}_{repo}/raw_data.json)")
	cmd.Flags().StringVar(&h.envFile, "env-file", "", "Dotfile holding GITHUB_TOKEN (default .env)")
	return cmd
}

// Run fetches every resource kind and saves the aggregate record.
// Only a malformed URL or a failed write is an error; per-resource failures are not.
func (h *FetchHandler) Run(cmd *cobra.Command, args []string) error {
	ref, err := models.ParseRepositoryURL(args[0])
	if err != nil {
		return err
	}

	envFile := h.envFile
	if envFile == "" {
		envFile = h.cfg.GitHub.EnvFile
	}
	token := config.NewCredentialResolver(config.DefaultSources(h.token, envFile)...).Resolve()

	client, err := services.NewGitHubClient(h.cfg.GitHub.APIURL, token, h.cfg.GitHub.Timeout)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fetcher := services.NewRepositoryFetcher(client, out, h.cfg.GitHub.IssueLimit, h.cfg.GitHub.ReleaseLimit)
	record := fetcher.Fetch(cmd.Context(), ref)

	store := repositories.NewArtifactRepository(h.cfg.Output.Dir)
	outputPath := h.output
	if outputPath == "" {
		outputPath = store.RawDataPath(ref)
	}
	if err := store.SaveJSON(outputPath, record); err != nil {
		return err
	}

	logger.WithField("path", outputPath).Info("Saved raw repository data")
	fmt.Fprintf(out, "Raw data saved to %s\n", outputPath)
	return nil
}
