package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/viral-agent/internal/client"
	"github.com/viral-agent/internal/config"
	"github.com/viral-agent/internal/ideas"
	"github.com/viral-agent/internal/models"
	"github.com/viral-agent/internal/storage"
	"github.com/viral-agent/internal/storage/sqlite"
	"github.com/viral-agent/pkg/logger"
)

var (
	cfgFile string
	cfg     *config.Config
	log     *logger.Logger
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "viral-agent",
		Short: "Viral YouTube video idea generator",
		Long: `Generates viral video concepts for a content niche from a fixed
set of hand-written templates, locally or through a running server.`,
		PersistentPreRunE: initializeApp,
		SilenceUsage:      true,
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./configs/config.yaml)")

	rootCmd.AddCommand(generateCmd())
	rootCmd.AddCommand(ideasCmd())
	rootCmd.AddCommand(templatesCmd())
	rootCmd.AddCommand(historyCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func initializeApp(cmd *cobra.Command, args []string) error {
	var err error

	cfg, err = config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Keep stdout for command output
	output := cfg.Logging.Output
	if output == "" || output == "stdout" {
		output = "stderr"
	}
	log = logger.New(logger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: output,
	})

	return nil
}

// ============ GENERATE COMMANDS ============

func generateCmd() *cobra.Command {
	var niche, contentType string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate ideas in-process",
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := ideas.NewGenerator().Generate(niche, contentType)
			if err != nil {
				return err
			}

			log.Debug().Strs("templates", result.TemplateIDs).Msg("Generated ideas")

			if asJSON {
				return printJSON(models.GenerateResponse{Ideas: result.Ideas})
			}
			printIdeas(result.Ideas)
			return nil
		},
	}

	cmd.Flags().StringVar(&niche, "niche", "", "Content niche (e.g. Gaming, Cooking)")
	cmd.Flags().StringVar(&contentType, "content-type", "", "Optional content type (shorts, long-form, tutorial, ...)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the API response body instead of text")
	cmd.MarkFlagRequired("niche")
	return cmd
}

func ideasCmd() *cobra.Command {
	var niche, contentType, serverURL string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "ideas",
		Short: "Request ideas from a running server",
		RunE: func(cmd *cobra.Command, args []string) error {
			if serverURL == "" {
				serverURL = cfg.APIBaseURL()
			}

			ctx, cancel := context.WithTimeout(context.Background(), cfg.Web.RequestTimeout)
			defer cancel()

			result, err := client.New(serverURL, cfg.Web.RequestTimeout).Generate(ctx, niche, contentType)
			if err != nil {
				return fmt.Errorf("failed to generate ideas: %w", err)
			}

			if asJSON {
				return printJSON(models.GenerateResponse{Ideas: result})
			}
			printIdeas(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&niche, "niche", "", "Content niche (e.g. Gaming, Cooking)")
	cmd.Flags().StringVar(&contentType, "content-type", "", "Optional content type")
	cmd.Flags().StringVar(&serverURL, "url", "", "Server base URL (default from config)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the API response body instead of text")
	cmd.MarkFlagRequired("niche")
	return cmd
}

func templatesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "templates",
		Short: "List the built-in idea templates",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Printf("\n=== Templates ===\n")
			for _, t := range ideas.Templates() {
				fmt.Printf("%-28s viral %2d/10  views %-8s  %s\n", t.ID, t.ViralPotential, t.EstimatedViews, t.Title("<niche>"))
			}
			return nil
		},
	}
}

// ============ HISTORY COMMANDS ============

func historyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Generation history commands",
	}

	cmd.AddCommand(historyListCmd())
	cmd.AddCommand(historyPruneCmd())
	return cmd
}

func openHistory() (storage.Repository, error) {
	if !cfg.History.Enabled {
		return nil, fmt.Errorf("history is disabled: set history.enabled in config or VIRAL_HISTORY_ENABLED=true")
	}

	repo, err := sqlite.New(cfg.History.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := repo.Migrate(); err != nil {
		repo.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	return repo, nil
}

func historyListCmd() *cobra.Command {
	var limit, offset int
	var niche string
	var since time.Duration

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recent generations",
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := openHistory()
			if err != nil {
				return err
			}
			defer repo.Close()

			filter := storage.DefaultGenerationFilter()
			filter.Limit = limit
			filter.Offset = offset
			if niche != "" {
				filter.Niche = &niche
			}
			if since > 0 {
				from := time.Now().Add(-since)
				filter.Since = &from
			}

			gens, err := repo.ListGenerations(context.Background(), filter)
			if err != nil {
				return fmt.Errorf("failed to list generations: %w", err)
			}

			if len(gens) == 0 {
				fmt.Println("No generations recorded")
				return nil
			}

			fmt.Printf("\n=== Generations (%d) ===\n", len(gens))
			for _, g := range gens {
				contentType := g.ContentType
				if contentType == "" {
					contentType = "-"
				}
				fmt.Printf("[%d] %s  %-20s %-14s %s\n",
					g.ID,
					g.CreatedAt.Format(time.RFC3339),
					g.Niche,
					contentType,
					strings.Join(g.TemplateIDs, ", "),
				)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of rows")
	cmd.Flags().IntVar(&offset, "offset", 0, "Skip this many rows (for paging)")
	cmd.Flags().DurationVar(&since, "since", 0, "Only show generations newer than this (e.g. 24h)")
	cmd.Flags().StringVar(&niche, "niche", "", "Only show this niche")
	return cmd
}

func historyPruneCmd() *cobra.Command {
	var days int

	cmd := &cobra.Command{
		Use:   "prune",
		Short: "Delete generations older than the retention window",
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := openHistory()
			if err != nil {
				return err
			}
			defer repo.Close()

			if days <= 0 {
				days = cfg.History.RetentionDays
			}
			cutoff := time.Now().AddDate(0, 0, -days)

			removed, err := repo.DeleteGenerationsBefore(context.Background(), cutoff)
			if err != nil {
				return fmt.Errorf("failed to prune history: %w", err)
			}

			log.Info().Int64("removed", removed).Int("days", days).Msg("History pruned")
			fmt.Printf("Removed %d generations older than %d days\n", removed, days)
			return nil
		},
	}

	cmd.Flags().IntVar(&days, "days", 0, "Retention in days (default from config)")
	return cmd
}

// ============ OUTPUT ============

func printJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printIdeas(list []models.VideoIdea) {
	fmt.Printf("\n=== Your Viral Video Ideas ===\n")
	for i, idea := range list {
		fmt.Printf("\n#%d  %s\n", i+1, idea.Title)
		fmt.Printf("Viral Potential: %d/10   Est. Views: %s\n", idea.ViralPotential, idea.EstimatedViews)
		fmt.Printf("Hook:            %s\n", idea.Hook)
		fmt.Printf("Description:     %s\n", idea.Description)
		fmt.Printf("Target Audience: %s\n", idea.TargetAudience)
		fmt.Printf("Key Elements:    %s\n", strings.Join(idea.KeyElements, ", "))
		fmt.Printf("Thumbnail Ideas:\n")
		for _, thumb := range idea.ThumbnailIdeas {
			fmt.Printf("  - %s\n", thumb)
		}
	}
}
