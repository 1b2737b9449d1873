package scan

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"lastgood/internal/command"
	"lastgood/internal/target"
	"lastgood/internal/verify"
)

// Options configures a scan.
type Options struct {
	Target   target.Target // file to locate, plus optional selector
	Template string        // verification command template
	Pytest   bool          // synthesize a pytest invocation, ignoring Template
	Restore  bool          // re-materialize the original revision at run end
}

// Engine drives the scan. It owns the workspace pointer for the run's
// duration: every mutation goes through its Store, strictly one revision
// at a time.
type Engine struct {
	store  Store
	runner verify.Runner
	log    *slog.Logger
	opts   Options
}

// New creates an engine.
func New(store Store, runner verify.Runner, log *slog.Logger, opts Options) *Engine {
	return &Engine{store: store, runner: runner, log: log, opts: opts}
}

// Run walks the history newest-first looking for the most recent revision
// at which the target file is present and the verifier passes. The
// original workspace pointer is captured exactly once, before any
// mutation; when Options.Restore is set it is re-materialized after the
// walk regardless of how the walk ended. A restoration failure is joined
// onto the prior error, never substituted for it.
//
// Nothing found is not an error: Run returns a zero Outcome and a nil
// error after an exhausted walk.
func (e *Engine) Run(ctx context.Context) (Outcome, error) {
	original, err := e.store.Head()
	if err != nil {
		return Outcome{}, fmt.Errorf("%w: %w", ErrHistory, err)
	}
	e.log.Info("current checkout captured", "revision", original.Short())

	outcome, scanErr := e.scan(ctx)

	if !e.opts.Restore {
		return outcome, scanErr
	}

	e.log.Info("restoring original checkout", "revision", original.Short())
	if err := e.store.Checkout(original); err != nil {
		restoreErr := fmt.Errorf("%w: %s: %w", ErrRestore, original.Short(), err)
		if scanErr != nil {
			return outcome, errors.Join(scanErr, restoreErr)
		}
		return outcome, restoreErr
	}

	return outcome, scanErr
}

// scan performs the walk itself. The presence filter strictly precedes
// both materialization and verification: a revision without the target
// file is skipped with no side effects at all.
func (e *Engine) scan(ctx context.Context) (Outcome, error) {
	iter, err := e.store.Log()
	if err != nil {
		return Outcome{}, fmt.Errorf("%w: %w", ErrHistory, err)
	}
	defer iter.Close()

	for {
		rev, err := iter.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return Outcome{}, fmt.Errorf("%w: %w", ErrHistory, err)
		}

		present, err := e.store.Exists(rev, e.opts.Target.Path)
		if err != nil {
			return Outcome{}, fmt.Errorf("%w: revision %s: %w", ErrHistory, rev.Short(), err)
		}
		if !present {
			e.log.Debug("file absent, skipping", "revision", rev.Short(), "path", e.opts.Target.Path)
			continue
		}

		if err := e.store.Checkout(rev); err != nil {
			return Outcome{}, fmt.Errorf("%w: revision %s: %w", ErrCheckout, rev.Short(), err)
		}

		cmdline := command.Build(e.opts.Template, e.opts.Target, e.opts.Pytest)
		e.log.Debug("checking revision", "revision", rev.Short(), "command", cmdline)

		res, err := e.runner.Run(ctx, cmdline)
		if err != nil {
			return Outcome{}, fmt.Errorf("%w: %w", ErrVerifier, err)
		}

		if res.Passed() {
			// First (newest) passing revision wins. History is not
			// assumed monotonic, so there is no boundary to search
			// for beyond this point.
			e.log.Info("found working revision",
				"revision", rev.ID,
				"summary", rev.Summary,
				"when", rev.When)
			return Outcome{Found: true, Revision: rev}, nil
		}

		e.log.Debug("verifier failed", "revision", rev.Short(), "exit_code", res.ExitCode)
		if res.Stderr != "" {
			e.log.Debug("verifier stderr", "revision", rev.Short(),
				"stderr", strings.TrimRight(res.Stderr, "\n"))
		}
	}

	e.log.Warn("no working revision found in history", "path", e.opts.Target.Path)
	return Outcome{}, nil
}
