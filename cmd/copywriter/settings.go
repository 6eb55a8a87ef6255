package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/sheet-copywriter/internal/config"
	"github.com/jonathan/sheet-copywriter/internal/generation"
	"github.com/jonathan/sheet-copywriter/internal/logging"
	"github.com/jonathan/sheet-copywriter/internal/pipeline"
	"github.com/jonathan/sheet-copywriter/internal/sheets"
)

// flagSettings holds the persistent flags shared by every command.
var flagSettings config.Config

var configPath string

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configPath, "config", "", "Path to a JSON or YAML config file (values can be overridden by other flags)")
	pf.StringVarP(&flagSettings.Provider, "provider", "p", "", "Model provider: openai, gemini or mock (env LLM_PROVIDER)")
	pf.StringVarP(&flagSettings.Model, "model", "m", "", "Model name (env LLM_MODEL)")
	pf.StringVar(&flagSettings.BaseURL, "base-url", "", "OpenAI-compatible API base URL (env LLM_BASE_URL)")
	pf.StringVar(&flagSettings.APIKey, "api-key", "", "Provider API key (env OPENAI_API_KEY, GEMINI_API_KEY or LLM_API_KEY)")
	pf.StringVar(&flagSettings.CredentialsFile, "credentials", "", "Google service account JSON (env GOOGLE_APPLICATION_CREDENTIALS)")
	pf.IntVar(&flagSettings.MaxConcurrency, "max-concurrency", 0, "Maximum in-flight model calls, 0 for one per row (env MAX_CONCURRENCY)")
	pf.IntVar(&flagSettings.RetryAttempts, "retry-attempts", 0, "Attempts per row before falling back to empty copy (default 3)")
	pf.StringVar(&flagSettings.LogEnv, "log-env", "", "Log format: production (JSON) or development (env LOG_ENV)")
}

// resolveSettings layers flags over the config file over the environment and
// validates the result. Zero flag values mean "unset" unless changed reports
// the flag as given on the command line; changed may be nil.
func resolveSettings(flags config.Config, changed func(name string) bool, path string) (config.Config, error) {
	env, err := config.FromEnv()
	if err != nil {
		return config.Config{}, err
	}

	defaults := env
	if path != "" {
		file, err := config.LoadConfig(path)
		if err != nil {
			return config.Config{}, fmt.Errorf("failed to load config: %w", err)
		}
		if err := file.Validate(); err != nil {
			return config.Config{}, fmt.Errorf("invalid config file: %w", err)
		}
		defaults = file.MergeWithDefaults(env)
	}

	merged := flags.MergeWithDefaults(defaults)
	if changed != nil && changed("max-concurrency") {
		merged.MaxConcurrency = flags.MaxConcurrency
	}
	if err := merged.Validate(); err != nil {
		return config.Config{}, err
	}
	return merged, nil
}

// app bundles what the sheet-facing commands need.
type app struct {
	settings config.Config
	logger   *zap.Logger
	pipeline *pipeline.Pipeline
}

func newApp(ctx context.Context, cmd *cobra.Command) (*app, error) {
	settings, err := resolveSettings(flagSettings, cmd.Flags().Changed, configPath)
	if err != nil {
		return nil, err
	}

	logger, err := logging.New(settings.LoggingEnv())
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	svc, err := sheets.NewGoogleService(ctx, settings.CredentialsFile)
	if err != nil {
		return nil, err
	}

	gen, err := generation.New(settings.GeneratorOptions(), nil, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to load prompts: %w", err)
	}

	logger.Debug("settings resolved", zap.String("command", cmd.Name()), zap.Int("max_concurrency", settings.MaxConcurrency))
	return &app{settings: settings, logger: logger, pipeline: pipeline.New(svc, gen, logger)}, nil
}
