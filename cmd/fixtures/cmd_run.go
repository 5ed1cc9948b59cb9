package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"javafixtures/internal/logging"
	"javafixtures/internal/programs"
	"javafixtures/internal/samples"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newRunCmd() *cobra.Command {
	var (
		start, end int
		mode       string
	)
	cmd := &cobra.Command{
		Use:   "run [program]",
		Short: "Run a fixture program the way its main method does",
		Long: `Runs a registered fixture program with the bounds its entry point hardcodes
(Test: 1..100, Primes: 1..120), or with the bounds given in the config or flags.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := programs.Lookup(args[0])
			if err != nil {
				return err
			}
			opts, err := programOptions(cmd, p, mode)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("start") {
				opts.Start = &start
			}
			if cmd.Flags().Changed("end") {
				opts.End = &end
			}
			return runProgram(cmd, p, opts)
		},
	}
	cmd.Flags().IntVar(&start, "start", 0, "First value of the range (default: program default)")
	cmd.Flags().IntVar(&end, "end", 0, "Last value of the range (default: program default)")
	cmd.Flags().StringVar(&mode, "mode", "", "Primality strategy: trial or parity (default: config)")
	return cmd
}

func newFizzBuzzCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fizzbuzz [start end]",
		Short: "Print FizzBuzz over an inclusive range (default 1 100)",
		Args:  rangeArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRange(cmd, "Test", "", args)
		},
	}
}

func newPrimesCmd() *cobra.Command {
	var mode string
	cmd := &cobra.Command{
		Use:   "primes [start end]",
		Short: "Print the primes in an inclusive range (default 1 120)",
		Args:  rangeArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRange(cmd, "Primes", mode, args)
		},
	}
	cmd.Flags().StringVar(&mode, "mode", "", "Primality strategy: trial or parity (default: config)")
	return cmd
}

func runRange(cmd *cobra.Command, name, mode string, args []string) error {
	p, err := programs.Lookup(name)
	if err != nil {
		return err
	}
	opts, err := programOptions(cmd, p, mode)
	if err != nil {
		return err
	}
	if len(args) == 2 {
		start, err := parseBound("start", args[0])
		if err != nil {
			return err
		}
		end, err := parseBound("end", args[1])
		if err != nil {
			return err
		}
		opts.Start, opts.End = &start, &end
	}
	return runProgram(cmd, p, opts)
}

// programOptions layers config bounds and mode under any flag value.
func programOptions(cmd *cobra.Command, p *programs.Program, mode string) (programs.Options, error) {
	opts := programs.Options{Mode: cfg.PrimesMode()}
	if mode != "" {
		m, err := samples.ParseMode(mode)
		if err != nil {
			return opts, err
		}
		opts.Mode = m
	}
	if b, ok := cfg.BoundsFor(p.Name); ok {
		start, end := b.Start, b.End
		opts.Start, opts.End = &start, &end
	}
	return opts, nil
}

func runProgram(cmd *cobra.Command, p *programs.Program, opts programs.Options) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log := logging.Get(logging.CategoryRun)
	log.Debug("running program",
		zap.String("program", p.Name),
		zap.Stringer("bounds", p.Bounds(opts)),
		zap.String("mode", string(opts.Mode)),
	)
	if err := p.Run(ctx, cmd.OutOrStdout(), opts); err != nil {
		log.Error("program failed", zap.String("program", p.Name), zap.Error(err))
		return err
	}
	return nil
}
