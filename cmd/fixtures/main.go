package main

import (
	"fmt"
	"os"
	"strconv"

	"javafixtures/internal/config"
	"javafixtures/internal/logging"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Global flags
	verbose    bool
	workspace  string
	configPath string

	// Loaded in PersistentPreRunE
	cfg    *config.Config
	logger *zap.Logger
)

// newRootCmd builds the command tree. Flags bind to the package globals and
// are reset to their defaults on every call.
func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "fixtures",
		Short: "Run and verify the java-compiler sample programs",
		Long: `fixtures reproduces the console output of the java-compiler test programs
(Test: FizzBuzz, Primes: the prime printer) and checks output against golden files.

Configuration is read from <workspace>/.fixtures/config.yaml when present.`,
		SilenceUsage:      true,
		PersistentPreRunE: setup,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if logger != nil {
				_ = logger.Sync()
			}
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVarP(&workspace, "workspace", "w", "", "Workspace directory (default: current)")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file (default: <workspace>/.fixtures/config.yaml)")

	rootCmd.AddCommand(newRunCmd())
	rootCmd.AddCommand(newFizzBuzzCmd())
	rootCmd.AddCommand(newPrimesCmd())
	rootCmd.AddCommand(newListCmd())
	rootCmd.AddCommand(newVerifyCmd())
	rootCmd.AddCommand(newHistoryCmd())
	return rootCmd
}

// setup resolves the workspace, loads config and starts logging.
func setup(cmd *cobra.Command, args []string) error {
	if workspace == "" {
		wd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("failed to resolve workspace: %w", err)
		}
		workspace = wd
	}
	if configPath == "" {
		configPath = config.DefaultPath(workspace)
	}

	loaded, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if err := loaded.Validate(); err != nil {
		return fmt.Errorf("invalid config %s: %w", configPath, err)
	}
	loaded.Resolve(workspace)
	cfg = loaded

	logger, err = logging.Initialize(cfg.Logging, verbose)
	if err != nil {
		return err
	}
	logging.Get(logging.CategoryCommand).Debug("command start",
		zap.String("command", cmd.CommandPath()),
		zap.String("workspace", workspace),
		zap.String("config", configPath),
	)
	return nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// parseBound parses a positional range argument.
func parseBound(name, s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: must be an integer", name, s)
	}
	return n, nil
}

// rangeArgs accepts either no arguments or a start and an end.
func rangeArgs(cmd *cobra.Command, args []string) error {
	if len(args) != 0 && len(args) != 2 {
		return fmt.Errorf("accepts 0 or 2 args (start end), received %d", len(args))
	}
	return nil
}
