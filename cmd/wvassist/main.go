// Package main provides the wvassist CLI entry point.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"wvassist/internal/config"
	"wvassist/internal/generation"
	"wvassist/internal/logging"
	"wvassist/internal/perception"
	"wvassist/internal/store"
	"wvassist/internal/wizyvision"
)

// Version is the CLI version, overridable at link time.
var Version = "0.3.0"

var (
	// Global flags
	cfgPath     string
	verbose     bool
	modelFlag   string
	maxAttempts int
	outputDir   string

	// Logger
	logger *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "wvassist",
	Short: "wvassist - WizyVision application schema assistant",
	Long: `wvassist turns natural-language descriptions of WizyVision applications
into validated JSON schema documents.

It prompts a generative language model for a draft-07 style schema where
every property carries an x-wv-type field annotation, validates the result
against the WizyVision field-type contract, and retries with an escalated
prompt until the document passes or attempts run out.

Run without arguments to start the interactive assistant.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip logger init for interactive mode (it has its own UI)
		if cmd.Use == "wvassist" && cmd.CalledAs() == "wvassist" {
			return nil
		}

		zc := zap.NewProductionConfig()
		if verbose {
			zc.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = zc.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
		logging.CloseAll()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runShell()
	},
}

// generateCmd produces one schema from a single request and exits.
var generateCmd = &cobra.Command{
	Use:   "generate [request]",
	Short: "Generate a schema for one request and save it",
	Long: `Generates a WizyVision application schema from a natural-language
request, validates it, and writes the accepted document to the output
directory.

Example:
  wvassist generate "inspection app with photo checklist and severity dropdown"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runGenerate,
}

// typesCmd prints the supported field-type catalog.
var typesCmd = &cobra.Command{
	Use:   "types",
	Short: "List the supported WizyVision field types",
	RunE:  runTypes,
}

// versionCmd prints the CLI version.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the wvassist version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("wvassist %s\n", Version)
	},
}

var (
	generateOutput string
	generateNoSave bool
)

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "Config file (default: .wvassist/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&modelFlag, "model", "", "Model override (e.g. gemini-2.5-flash)")
	rootCmd.PersistentFlags().IntVar(&maxAttempts, "max-attempts", 0, "Override the generation attempt limit")
	rootCmd.PersistentFlags().StringVarP(&outputDir, "output-dir", "d", "", "Directory for saved schemas")

	generateCmd.Flags().StringVarP(&generateOutput, "output", "o", "", "Output filename (default: timestamped)")
	generateCmd.Flags().BoolVar(&generateNoSave, "no-save", false, "Print the schema without saving")

	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(typesCmd)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig reads the config file and applies command-line overrides.
func loadConfig() (*config.Config, error) {
	path := cfgPath
	if path == "" {
		path = config.DefaultConfigPath()
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if modelFlag != "" {
		cfg.LLM.Model = modelFlag
	}
	if maxAttempts > 0 {
		cfg.Generation.MaxAttempts = maxAttempts
	}
	if outputDir != "" {
		cfg.Output.Directory = outputDir
	}
	if verbose {
		cfg.Logging.DebugMode = true
	}
	return cfg, nil
}

// buildGenerator wires the provider client and retry loop from config.
func buildGenerator(ctx context.Context, cfg *config.Config) (*generation.Generator, error) {
	pc, err := perception.ResolveProvider(cfg)
	if err != nil {
		return nil, err
	}
	client, err := perception.NewClientFromConfig(ctx, pc)
	if err != nil {
		return nil, err
	}
	opts := generation.Options{
		MaxAttempts:       cfg.Generation.MaxAttempts,
		EscalateOnInvalid: cfg.Generation.EscalateOnInvalid,
		ParseRetryDelay:   cfg.ParseRetryDelay(),
		IncludeExamples:   cfg.Generation.IncludeExamples,
	}
	return generation.New(client, opts), nil
}

// runGenerate handles the one-shot generate subcommand.
func runGenerate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if cfg.Logging.DebugMode {
		if err := logging.Initialize(".", logging.Settings{
			DebugMode:  cfg.Logging.DebugMode,
			Level:      cfg.Logging.Level,
			Categories: cfg.Logging.Categories,
		}); err != nil {
			logger.Warn("File logging unavailable", zap.Error(err))
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ParseTimeout()*time.Duration(cfg.Generation.MaxAttempts))
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Info("Received shutdown signal")
		cancel()
	}()

	gen, err := buildGenerator(ctx, cfg)
	if err != nil {
		return err
	}

	request := strings.Join(args, " ")
	logger.Info("Generating schema", zap.String("request", request))

	doc, status, err := gen.Generate(ctx, request)
	if err != nil {
		return fmt.Errorf("%s", status)
	}
	logger.Info("Generation complete", zap.String("status", status))

	data, err := doc.MarshalIndent()
	if err != nil {
		return fmt.Errorf("encoding schema: %w", err)
	}
	fmt.Println(string(data))

	if generateNoSave {
		return nil
	}
	saver := store.NewSaver(cfg.Output.Directory)
	path, err := saver.Save(doc, generateOutput)
	if err != nil {
		return err
	}
	fmt.Printf("Saved to %s\n", path)
	return nil
}

// runTypes prints the field-type catalog with per-type constraints.
func runTypes(cmd *cobra.Command, args []string) error {
	fmt.Println("Supported WizyVision field types:")
	fmt.Println()
	for _, ft := range wizyvision.AllFieldTypes() {
		contract, ok := wizyvision.ContractFor(ft)
		if !ok {
			continue
		}
		fmt.Printf("  %-16s %s\n", ft, ft.Description())
		fmt.Printf("  %-16s json type: %s\n", "", contractTypeLine(contract))
		fmt.Println()
	}
	fmt.Println("Predefined structural fields:")
	fmt.Printf("  %s\n", strings.Join(wizyvision.PredefinedFieldNames, ", "))
	return nil
}

func contractTypeLine(c wizyvision.TypeContract) string {
	var parts []string
	if c.Type != "" {
		parts = append(parts, c.Type)
	}
	if len(c.TypeIn) > 0 {
		parts = append(parts, "one of "+strings.Join(c.TypeIn, "|"))
	}
	if len(c.FormatIn) > 0 {
		parts = append(parts, "format "+strings.Join(c.FormatIn, "|"))
	}
	if c.RequiresEnum {
		parts = append(parts, "enum required")
	}
	if c.ItemType != "" {
		parts = append(parts, "items "+c.ItemType)
	}
	if c.Object != nil {
		parts = append(parts, "requires "+strings.Join(c.Object.Required, ","))
	}
	return strings.Join(parts, ", ")
}
