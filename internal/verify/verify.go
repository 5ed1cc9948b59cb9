// Package verify checks fixture program output against golden files and
// confirms that repeated runs are byte-identical.
package verify

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"javafixtures/internal/diff"
	"javafixtures/internal/logging"
	"javafixtures/internal/programs"
	"javafixtures/internal/samples"
	"javafixtures/internal/store"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Status is the outcome of checking one program.
type Status string

const (
	StatusPass          Status = "pass"
	StatusMismatch      Status = "mismatch"
	StatusNonIdempotent Status = "non-idempotent"
	StatusMissingGolden Status = "missing-golden"
	StatusError         Status = "error"
	StatusUpdated       Status = "updated"
)

// OK reports whether the status counts as success.
func (s Status) OK() bool {
	return s == StatusPass || s == StatusUpdated
}

// Result describes one program check.
type Result struct {
	Program  string
	Golden   string
	Bounds   programs.Bounds
	Mode     samples.Mode
	Status   Status
	Digest   string
	Diff     string
	Err      error
	Duration time.Duration
}

// Recorder persists results. *store.HistoryStore satisfies it.
type Recorder interface {
	RecordRun(ctx context.Context, r store.Run) (store.Run, error)
}

// Config configures a Verifier.
type Config struct {
	GoldenDir   string
	Parallelism int
	// Timeout bounds CheckAll and Update. Zero means none.
	Timeout time.Duration
	Mode    samples.Mode
	// Bounds overrides per program name, matched case-insensitively.
	Bounds map[string]programs.Bounds
}

// Verifier runs checks against a golden directory.
type Verifier struct {
	cfg      Config
	recorder Recorder
	log      *zap.Logger
}

// New creates a verifier. rec may be nil.
func New(cfg Config, rec Recorder) *Verifier {
	if cfg.Parallelism < 1 {
		cfg.Parallelism = 1
	}
	if cfg.Mode == "" {
		cfg.Mode = samples.ModeTrial
	}
	return &Verifier{cfg: cfg, recorder: rec, log: logging.Get(logging.CategoryVerify)}
}

// GoldenPath returns the golden file for p under the current mode. Programs
// whose output depends on the mode get the mode in the file name unless it
// is the default.
func (v *Verifier) GoldenPath(p *programs.Program) string {
	name := p.Name
	if p.UsesMode && v.cfg.Mode != samples.ModeTrial {
		name += "." + string(v.cfg.Mode)
	}
	return filepath.Join(v.cfg.GoldenDir, name+".golden")
}

func (v *Verifier) options(p *programs.Program) programs.Options {
	opts := programs.Options{Mode: v.cfg.Mode}
	for k, b := range v.cfg.Bounds {
		if strings.EqualFold(k, p.Name) {
			start, end := b.Start, b.End
			opts.Start, opts.End = &start, &end
		}
	}
	return opts
}

func (v *Verifier) newResult(p *programs.Program) Result {
	return Result{
		Program: p.Name,
		Golden:  v.GoldenPath(p),
		Bounds:  p.Bounds(v.options(p)),
		Mode:    v.cfg.Mode,
	}
}

func (v *Verifier) produce(ctx context.Context, p *programs.Program) ([]byte, error) {
	var buf bytes.Buffer
	if err := p.Run(ctx, &buf, v.options(p)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Check runs p twice, fails if the two outputs differ, then compares the
// output with the golden file.
func (v *Verifier) Check(ctx context.Context, p *programs.Program) Result {
	started := time.Now()
	res := v.newResult(p)

	first, err := v.produce(ctx, p)
	if err == nil {
		var second []byte
		if second, err = v.produce(ctx, p); err == nil {
			res.Digest = digest(first)
			if !bytes.Equal(first, second) {
				res.Status = StatusNonIdempotent
				res.Diff = diff.Lines(p.Name+" (run 1)", p.Name+" (run 2)", string(first), string(second)).Unified()
			} else {
				v.compare(&res, first)
			}
		}
	}
	if err != nil {
		res.Status = StatusError
		res.Err = err
	}

	res.Duration = time.Since(started)
	v.finish(ctx, res)
	return res
}

// CheckOutput compares output produced elsewhere, such as by the compiled
// fixture, with p's golden file.
func (v *Verifier) CheckOutput(ctx context.Context, p *programs.Program, actual []byte) Result {
	started := time.Now()
	res := v.newResult(p)
	res.Digest = digest(actual)
	v.compare(&res, actual)
	res.Duration = time.Since(started)
	v.finish(ctx, res)
	return res
}

func (v *Verifier) compare(res *Result, actual []byte) {
	expected, err := os.ReadFile(res.Golden)
	switch {
	case errors.Is(err, os.ErrNotExist):
		res.Status = StatusMissingGolden
		return
	case err != nil:
		res.Status = StatusError
		res.Err = fmt.Errorf("failed to read golden file: %w", err)
		return
	}

	if bytes.Equal(expected, actual) {
		res.Status = StatusPass
		return
	}
	res.Status = StatusMismatch
	res.Diff = diff.Lines(filepath.Base(res.Golden), res.Program+" output", string(expected), string(actual)).Unified()
}

func (v *Verifier) finish(ctx context.Context, res Result) {
	fields := []zap.Field{
		zap.String("program", res.Program),
		zap.String("status", string(res.Status)),
		zap.Stringer("bounds", res.Bounds),
		zap.Duration("duration", res.Duration),
	}
	if res.Err != nil {
		fields = append(fields, zap.Error(res.Err))
	}
	if res.Status.OK() {
		v.log.Debug("program checked", fields...)
	} else {
		v.log.Warn("program check failed", fields...)
	}

	if v.recorder == nil {
		return
	}
	detail := res.Diff
	if res.Err != nil {
		detail = res.Err.Error()
	}
	// History is best effort; a cancelled verification still gets recorded.
	_, err := v.recorder.RecordRun(context.WithoutCancel(ctx), store.Run{
		Program:  res.Program,
		Start:    res.Bounds.Start,
		End:      res.Bounds.End,
		Mode:     string(res.Mode),
		Status:   string(res.Status),
		Digest:   res.Digest,
		Detail:   detail,
		Duration: res.Duration,
	})
	if err != nil {
		v.log.Warn("failed to record run", zap.String("program", res.Program), zap.Error(err))
	}
}

// CheckAll checks every program in ps concurrently. Per-program failures
// are reported in the results; the error is non-nil only when the context
// ends before every check ran. Results keep the order of ps and hold only
// the programs that were checked.
func (v *Verifier) CheckAll(ctx context.Context, ps []*programs.Program) ([]Result, error) {
	return v.forEach(ctx, ps, v.Check)
}

// Update rewrites the golden file of every program in ps from its current
// output. Results follow the same rules as CheckAll.
func (v *Verifier) Update(ctx context.Context, ps []*programs.Program) ([]Result, error) {
	if err := os.MkdirAll(v.cfg.GoldenDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create golden directory: %w", err)
	}
	return v.forEach(ctx, ps, v.update)
}

func (v *Verifier) update(ctx context.Context, p *programs.Program) Result {
	started := time.Now()
	res := v.newResult(p)

	out, err := v.produce(ctx, p)
	if err == nil {
		err = os.WriteFile(res.Golden, out, 0644)
	}
	if err != nil {
		res.Status = StatusError
		res.Err = err
	} else {
		res.Status = StatusUpdated
		res.Digest = digest(out)
		logging.Get(logging.CategoryGolden).Info("golden file written",
			zap.String("path", res.Golden),
			zap.Int("bytes", len(out)),
		)
	}
	res.Duration = time.Since(started)
	return res
}

func (v *Verifier) forEach(ctx context.Context, ps []*programs.Program, fn func(context.Context, *programs.Program) Result) ([]Result, error) {
	if v.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, v.cfg.Timeout)
		defer cancel()
	}

	slots := make([]Result, len(ps))
	ran := make([]bool, len(ps))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(v.cfg.Parallelism)
	for i, p := range ps {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			slots[i] = fn(gctx, p)
			ran[i] = true
			return nil
		})
	}
	err := g.Wait()

	results := make([]Result, 0, len(ps))
	for i, r := range slots {
		if ran[i] {
			results = append(results, r)
		}
	}
	return results, err
}

// Passed reports whether every result succeeded.
func Passed(results []Result) bool {
	for _, r := range results {
		if !r.Status.OK() {
			return false
		}
	}
	return true
}

func digest(b []byte) string {
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:])
}
