package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/url"
	"os"
	"os/signal"
	"strings"

	"github.com/spigell/hire-assessor/internal/logger"
	"github.com/spigell/hire-assessor/internal/pipeline"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const (
	outputText = "text"
	outputJSON = "json"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Assess a candidate against a job description",
	Long: `Fetches the candidate's resume (PDF or DOCX, detected by the URL suffix;
Google Drive share links are rewritten to direct downloads) and public GitHub
profile, then asks the configured AI provider for a hiring assessment that
covers skills match, technical proficiency, cultural fit, strengths and a final
recommendation.

Inputs that are not given as flags are asked for interactively unless
--no-input is set.`,
	Example: `  hire-assessor analyze \
    --resume https://drive.google.com/example-resume.pdf \
    --profile https://github.com/example-user \
    --job "Looking for a Senior Python Developer with 5+ years of experience in web development, machine learning, and cloud technologies. Must have strong problem-solving skills and experience with agile methodologies." \
    --company "Tech startup focused on AI solutions, fast-paced environment, collaborative culture, emphasis on innovation and continuous learning."

  hire-assessor analyze --resume https://example.com/cv.docx --profile https://github.com/example-user \
    --job-file job.md --company-file company.md --output json --no-input`,
	Run: func(cmd *cobra.Command, _ []string) {
		analyze(cmd)
	},
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
	addAnalyzeFlags(analyzeCmd)
}

func addAnalyzeFlags(cmd *cobra.Command) {
	cmd.Flags().String("resume", "", "resume URL (.pdf or .docx)")
	cmd.Flags().String("profile", "", "GitHub profile URL")
	cmd.Flags().String("job", "", "job description text")
	cmd.Flags().String("job-file", "", "file with the job description")
	cmd.Flags().String("company", "", "company information text")
	cmd.Flags().String("company-file", "", "file with the company information")
	cmd.Flags().StringP("output", "o", outputText, "output format: text or json")
	cmd.Flags().Bool("no-input", false, "never prompt for missing inputs")
}

func analyze(cmd *cobra.Command) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}
	defer logger.Sync()

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	logger.Info("starting the hire-assessor", zap.String("version", version))

	// do not bother error since there is a valid parseable config
	pretty, _ := json.MarshalIndent(redacted(config), "", "  ")
	logger.Debug(fmt.Sprintf("starting with config: \n %s", pretty))

	output, _ := cmd.Flags().GetString("output")
	if output != outputText && output != outputJSON {
		logger.Fatal("invalid output format", zap.String("output", output))
	}

	noInput, _ := cmd.Flags().GetBool("no-input")

	req, err := readRequest(cmd, askFunc(noInput))
	if err != nil {
		logger.Fatal("reading inputs", zap.Error(err))
	}

	analyzer, err := newAnalyzer(ctx, config, logger)
	if err != nil {
		logger.Fatal("Error analyzing candidate", zap.Error(err))
	}

	result, err := analyzer.Analyze(ctx, req)
	if err != nil {
		logger.Fatal("Error analyzing candidate", zap.Error(err))
	}

	if err := writeResult(cmd.OutOrStdout(), output, result); err != nil {
		logger.Fatal("writing result", zap.Error(err))
	}
}

// asker returns a value for a missing input.
type asker func(label string, validate promptui.ValidateFunc) (string, error)

var errMissingInput = errors.New("missing input")

func askFunc(noInput bool) asker {
	if noInput {
		return func(label string, _ promptui.ValidateFunc) (string, error) {
			return "", fmt.Errorf("%w: %s", errMissingInput, label)
		}
	}

	return func(label string, validate promptui.ValidateFunc) (string, error) {
		p := promptui.Prompt{
			Label:    label,
			Validate: validate,
		}
		return p.Run()
	}
}

func readRequest(cmd *cobra.Command, ask asker) (pipeline.Request, error) {
	var req pipeline.Request
	var err error

	if req.ResumeURL, err = flagOrAsk(cmd, "resume", "Resume URL", validateURL, ask); err != nil {
		return req, err
	}

	if req.ProfileURL, err = flagOrAsk(cmd, "profile", "GitHub profile URL", validateURL, ask); err != nil {
		return req, err
	}

	if req.JobDescription, err = textInput(cmd, "job", "Job description", ask); err != nil {
		return req, err
	}

	if req.CompanyInfo, err = textInput(cmd, "company", "Company information", ask); err != nil {
		return req, err
	}

	return req, nil
}

func flagOrAsk(cmd *cobra.Command, name, label string, validate promptui.ValidateFunc, ask asker) (string, error) {
	value, _ := cmd.Flags().GetString(name)
	if value = strings.TrimSpace(value); value != "" {
		if err := validate(value); err != nil {
			return "", fmt.Errorf("--%s: %w", name, err)
		}
		return value, nil
	}

	value, err := ask(label, validate)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(value), nil
}

// textInput prefers the inline flag, then the -file flag, then asks.
func textInput(cmd *cobra.Command, name, label string, ask asker) (string, error) {
	if value, _ := cmd.Flags().GetString(name); strings.TrimSpace(value) != "" {
		return strings.TrimSpace(value), nil
	}

	if file, _ := cmd.Flags().GetString(name + "-file"); file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("reading --%s-file: %w", name, err)
		}
		return strings.TrimSpace(string(data)), nil
	}

	return flagOrAsk(cmd, name, label, validateNotEmpty, ask)
}

func validateURL(s string) error {
	u, err := url.Parse(strings.TrimSpace(s))
	if err != nil {
		return err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return errors.New("url must start with http:// or https://")
	}
	if u.Host == "" {
		return errors.New("url must include a host")
	}
	return nil
}

func validateNotEmpty(s string) error {
	if strings.TrimSpace(s) == "" {
		return errors.New("value must not be empty")
	}
	return nil
}

func writeResult(w io.Writer, output string, result *pipeline.Result) error {
	if output == outputJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		return enc.Encode(result)
	}

	for _, warning := range result.Warnings {
		if _, err := fmt.Fprintf(w, "%s\n", warning); err != nil {
			return err
		}
	}
	if len(result.Warnings) > 0 {
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}

	_, err := fmt.Fprintln(w, result.Assessment)
	return err
}

// redacted returns a copy of config safe for debug output.
func redacted(config *Config) *Config {
	if config == nil || config.AI == nil {
		return config
	}

	c := *config
	ai := *config.AI
	if ai.Gemini != nil {
		g := *ai.Gemini
		g.APIKey = mask(g.APIKey)
		ai.Gemini = &g
	}
	if ai.Claude != nil {
		cl := *ai.Claude
		cl.APIKey = mask(cl.APIKey)
		ai.Claude = &cl
	}
	c.AI = &ai
	return &c
}

func mask(s string) string {
	if s == "" {
		return ""
	}
	return "***"
}
