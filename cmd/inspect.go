package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"os/signal"

	"github.com/spigell/hire-assessor/internal/document"
	"github.com/spigell/hire-assessor/internal/logger"
	"github.com/spigell/hire-assessor/internal/profile"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Run a single extraction step without calling the AI provider",
}

var inspectResumeCmd = &cobra.Command{
	Use:     "resume <url>",
	Short:   "Print the text extracted from a resume",
	Example: "  hire-assessor inspect resume https://example.com/cv.docx",
	Args:    cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		inspectResume(cmd, args[0])
	},
}

var inspectProfileCmd = &cobra.Command{
	Use:     "profile <url>",
	Short:   "Print the fields scraped from a GitHub profile as JSON",
	Example: "  hire-assessor inspect profile https://github.com/example-user",
	Args:    cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		inspectProfile(cmd, args[0])
	},
}

func init() {
	inspectCmd.AddCommand(inspectResumeCmd, inspectProfileCmd)
	rootCmd.AddCommand(inspectCmd)
}

func inspectResume(cmd *cobra.Command, rawURL string) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	logger, config := setupInspect()

	ref := document.NewReference(rawURL)
	reader := document.NewReader(newFetchClient(config.Fetch, logger), logger)

	out := reader.Read(ctx, ref)
	if out.Err != nil {
		logger.Warn("reading resume", zap.String("format", string(ref.Format())), zap.Error(out.Err))
	}

	fmt.Fprintln(cmd.OutOrStdout(), out.Value)
}

func inspectProfile(cmd *cobra.Command, rawURL string) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	logger, config := setupInspect()

	scraper := profile.NewScraper(newFetchClient(config.Fetch, logger), profile.GitHubSchema, logger)

	out := scraper.Scrape(ctx, rawURL)
	if out.Err != nil {
		logger.Fatal("scraping profile", zap.String("url", rawURL), zap.Error(out.Err))
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	if err := enc.Encode(out.Value); err != nil {
		logger.Fatal("writing profile", zap.Error(err))
	}
}

func setupInspect() (*zap.Logger, *Config) {
	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	return logger, config
}
