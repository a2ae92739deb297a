package cmd

import (
	"errors"
	"log"
	"time"

	"github.com/spigell/hire-assessor/internal/ai"
	"github.com/spigell/hire-assessor/internal/ai/claude"
	"github.com/spigell/hire-assessor/internal/fetch"
	"github.com/spigell/hire-assessor/internal/pipeline"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	app = "hire-assessor"
)

type Config struct {
	Fetch    *FetchConfig    `mapstructure:"fetch"`
	Pipeline pipeline.Policy `mapstructure:"pipeline"`
	AI       *AIConfig       `mapstructure:"ai"`
}

type FetchConfig struct {
	Timeout   time.Duration `mapstructure:"timeout"`
	UserAgent string        `mapstructure:"user-agent"`
	MaxBytes  int64         `mapstructure:"max-bytes"`
}

type AIConfig struct {
	Provider          string        `mapstructure:"provider"`
	Timeout           time.Duration `mapstructure:"timeout"`
	SystemInstruction string        `mapstructure:"system-instruction"`
	Gemini            *GeminiConfig `mapstructure:"gemini"`
	Claude            *ClaudeConfig `mapstructure:"claude"`
}

type GeminiConfig struct {
	APIKey       string `mapstructure:"api-key"`
	APIKeyFile   string `mapstructure:"api-key-file"`
	Model        string `mapstructure:"model"`
	MaxRetries   int    `mapstructure:"max-retries"`
	MaxLogLength int    `mapstructure:"max-log-length"`
}

type ClaudeConfig struct {
	APIKey       string `mapstructure:"api-key"`
	APIKeyFile   string `mapstructure:"api-key-file"`
	BaseURL      string `mapstructure:"base-url"`
	Model        string `mapstructure:"model"`
	MaxTokens    int    `mapstructure:"max-tokens"`
	MaxLogLength int    `mapstructure:"max-log-length"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "hire-assessor reads a candidate's resume and public profile and asks an AI model for a hiring assessment",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	envBindings := map[string]string{
		"ai.gemini.api-key-file": "GEMINI_API_KEY_FILE",
		"ai.claude.api-key-file": "CLAUDE_API_KEY_FILE",
		"ai.provider":            "HIRE_ASSESSOR_AI_PROVIDER",
	}
	for key, env := range envBindings {
		if err := viper.BindEnv(key, env); err != nil {
			log.Fatalf("binding %s environment variable: %v", env, err)
		}
	}

	setDefaults()

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is hire-assessor.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
}

func setDefaults() {
	viper.SetDefault("fetch.timeout", fetch.DefaultTimeout)
	viper.SetDefault("fetch.user-agent", fetch.DefaultUserAgent)
	viper.SetDefault("fetch.max-bytes", fetch.DefaultMaxBytes)

	viper.SetDefault("pipeline.resume-failure", string(pipeline.Degrade))
	viper.SetDefault("pipeline.profile-failure", string(pipeline.Degrade))

	viper.SetDefault("ai.provider", ai.ProviderGemini)
	viper.SetDefault("ai.timeout", 3*time.Minute)
	viper.SetDefault("ai.system-instruction", ai.DefaultSystemInstruction)

	viper.SetDefault("ai.gemini.model", "gemini-2.5-pro")
	viper.SetDefault("ai.gemini.max-retries", 3)
	viper.SetDefault("ai.gemini.max-log-length", 200)

	viper.SetDefault("ai.claude.base-url", claude.DefaultBaseURL)
	viper.SetDefault("ai.claude.model", claude.DefaultModel)
	viper.SetDefault("ai.claude.max-tokens", claude.DefaultMaxTokens)
	viper.SetDefault("ai.claude.max-log-length", 200)
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app)
		viper.SetConfigType("yaml")
	}

	// The config file is optional unless it was requested explicitly.
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile == "" && errors.As(err, &notFound) {
			return
		}
		log.Fatal(err)
	}
}

func getConfig() (*Config, error) {
	var config *Config
	err := viper.Unmarshal(&config)
	if err != nil {
		return config, err
	}

	if config == nil {
		return nil, errors.New("config is empty")
	}

	if config.Pipeline, err = config.Pipeline.Normalize(); err != nil {
		return config, err
	}

	return config, nil
}
