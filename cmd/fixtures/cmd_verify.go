package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"javafixtures/internal/logging"
	"javafixtures/internal/programs"
	"javafixtures/internal/samples"
	"javafixtures/internal/store"
	"javafixtures/internal/verify"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var errVerifyFailed = errors.New("verification failed")

func newVerifyCmd() *cobra.Command {
	var (
		update    bool
		goldenDir string
		program   string
		output    string
		mode      string
	)
	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Check program output against golden files",
		Long: `Runs every fixture program twice, fails any program whose two runs differ,
and compares the output with <golden_dir>/<Program>.golden.

With --output, the named file (or - for stdin) is compared with the golden file
of --program instead; use this to check output captured from the compiled fixture.

With --update, golden files are rewritten from the current output.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			vcfg := verify.Config{
				GoldenDir:   cfg.Verify.GoldenDir,
				Parallelism: cfg.Verify.Parallelism,
				Timeout:     cfg.GetVerifyTimeout(),
				Mode:        cfg.PrimesMode(),
				Bounds:      cfg.Programs.Bounds,
			}
			if goldenDir != "" {
				vcfg.GoldenDir = goldenDir
			}
			if mode != "" {
				m, err := samples.ParseMode(mode)
				if err != nil {
					return err
				}
				vcfg.Mode = m
			}

			targets := programs.All()
			if program != "" {
				p, err := programs.Lookup(program)
				if err != nil {
					return err
				}
				targets = []*programs.Program{p}
			}
			if output != "" && program == "" {
				return fmt.Errorf("--output requires --program")
			}

			var rec verify.Recorder
			if cfg.History.Enabled && !update {
				hs, err := store.Open(cfg.History.DatabasePath)
				if err != nil {
					return err
				}
				defer hs.Close()
				rec = hs
			}

			v := verify.New(vcfg, rec)
			var (
				results []verify.Result
				err     error
			)
			switch {
			case update:
				results, err = v.Update(ctx, targets)
			case output != "":
				var actual []byte
				if actual, err = readOutput(cmd, output); err != nil {
					return err
				}
				results = []verify.Result{v.CheckOutput(ctx, targets[0], actual)}
			default:
				results, err = v.CheckAll(ctx, targets)
			}

			renderResults(cmd.OutOrStdout(), results)
			if err != nil {
				return err
			}
			if !verify.Passed(results) {
				logging.Get(logging.CategoryVerify).Info("verification failed", zap.Int("programs", len(results)))
				return errVerifyFailed
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&update, "update", false, "Rewrite golden files from current output")
	cmd.Flags().StringVar(&goldenDir, "golden", "", "Golden file directory (default: config verify.golden_dir)")
	cmd.Flags().StringVarP(&program, "program", "p", "", "Only verify this program")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Compare this captured output (- for stdin) instead of running the program")
	cmd.Flags().StringVar(&mode, "mode", "", "Primality strategy: trial or parity (default: config)")
	return cmd
}

func readOutput(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read output file: %w", err)
	}
	return data, nil
}
