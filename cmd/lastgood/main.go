// Command lastgood walks a git repository's history, newest commit
// first, looking for the most recent commit at which a target file still
// passes an external verification command, then restores the original
// checkout.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"lastgood/internal/cli"
	"lastgood/internal/command"
	"lastgood/internal/config"
	"lastgood/internal/gitstore"
	"lastgood/internal/logging"
	"lastgood/internal/report"
	"lastgood/internal/scan"
	"lastgood/internal/target"
	"lastgood/internal/verify"
)

func main() {
	os.Exit(run(os.Args[1:], os.Environ(), ".", os.Stdout, os.Stderr))
}

// run orchestrates the full execution flow and returns the process exit
// code. It is separated from main() to enable testing.
//
// Exit codes: 0 whether or not a working revision was found ("nothing
// found" is an outcome, not a failure); 1 for infrastructure failures;
// 2 for usage errors.
func run(args, environ []string, workdir string, stdout, stderr io.Writer) int {
	cmd, err := cli.ParseArgs(args)
	if err != nil {
		fmt.Fprintln(stderr, "Error:", err)
		return 2
	}

	if cmd.Subcommand == cli.SubcommandRuns {
		cfg, err := config.Load(workdir, environ)
		if err != nil {
			fmt.Fprintln(stderr, "Error:", err)
			return 1
		}
		return runRuns(cmd, cfg, stdout, stderr)
	}

	return runScan(cmd, environ, workdir, stdout, stderr)
}

func runScan(cmd cli.Command, environ []string, workdir string, stdout, stderr io.Writer) int {
	repoPath := cmd.Repo
	if !filepath.IsAbs(repoPath) {
		repoPath = filepath.Join(workdir, repoPath)
	}

	// The config file lives in the repository being scanned, so it is
	// read only after the repository location is resolved.
	cfg, err := config.Load(repoPath, environ)
	if err != nil {
		fmt.Fprintln(stderr, "Error:", err)
		return 1
	}

	// Flags win over config-file and environment defaults.
	template := cmd.Cmd
	if template == "" {
		template = cfg.Command
	}
	if template == "" && !cmd.Pytest {
		fmt.Fprintln(stderr, "Error:", cli.ErrNoCommand)
		return 2
	}

	restore := true
	if cfg.Restore != nil {
		restore = *cfg.Restore
	}
	if cmd.NoRestore {
		restore = false
	}

	log := logging.New(stderr, cmd.Verbose || cfg.Verbose)

	tgt := target.Parse(cmd.File)
	if cmd.Select != "" {
		tgt.Selector = cmd.Select
	}

	log.Info("starting lastgood", "target", tgt.String(), "repo", repoPath)

	store, err := gitstore.Open(repoPath)
	if err != nil {
		log.Error("cannot open repository", "error", err)
		return 1
	}

	opts := scan.Options{
		Target:   tgt,
		Template: template,
		Pytest:   cmd.Pytest,
		Restore:  restore,
	}
	runner := &verify.ShellRunner{Dir: repoPath}
	engine := scan.New(store, runner, log, opts)

	started := time.Now()
	outcome, err := engine.Run(context.Background())
	if err != nil {
		log.Error("scan failed", "error", err)
		return 1
	}

	if cmd.SaveReport {
		if err := saveReport(cmd, cfg, opts, repoPath, outcome, started); err != nil {
			log.Error("cannot save run report", "error", err)
			return 1
		}
	}

	if outcome.Found {
		fmt.Fprintln(stdout, outcome.Revision.ID)
	}
	return 0
}

func saveReport(cmd cli.Command, cfg config.Config, opts scan.Options, repoPath string, outcome scan.Outcome, started time.Time) error {
	cmdline := command.Build(opts.Template, opts.Target, opts.Pytest)

	r := report.RunReport{
		RunID:     report.ComputeRunID(repoPath, opts.Target.Path, cmdline, started),
		Repo:      repoPath,
		Target:    opts.Target.Path,
		Selector:  opts.Target.Selector,
		Command:   cmdline,
		Found:     outcome.Found,
		StartedAt: started.UTC(),
		Duration:  time.Since(started).Round(time.Millisecond).String(),
	}
	if outcome.Found {
		r.Revision = outcome.Revision.ID
		r.Summary = outcome.Revision.Summary
		r.RevisionAt = outcome.Revision.When
	}

	store := report.NewStore(resolveReportDir(cmd, cfg))
	_, err := store.Save(r)
	return err
}

// runRuns handles the runs subcommand.
func runRuns(cmd cli.Command, cfg config.Config, stdout, stderr io.Writer) int {
	store := report.NewStore(resolveReportDir(cmd, cfg))

	if cmd.DeleteID != "" {
		if err := store.Delete(cmd.DeleteID); err != nil {
			if errors.Is(err, report.ErrReportNotFound) {
				fmt.Fprintf(stderr, "Error: report not found: %s\n", cmd.DeleteID)
				return 1
			}
			fmt.Fprintf(stderr, "Error: cannot delete report: %v\n", err)
			return 1
		}
		fmt.Fprintf(stdout, "Deleted report: %s\n", cmd.DeleteID)
		return 0
	}

	if cmd.PruneDays > 0 {
		duration := time.Duration(cmd.PruneDays) * 24 * time.Hour
		deleted, err := store.Prune(duration)
		if err != nil {
			fmt.Fprintf(stderr, "Error: cannot prune reports: %v\n", err)
			return 1
		}
		fmt.Fprintf(stdout, "Pruned %d report(s) older than %d days\n", deleted, cmd.PruneDays)
		return 0
	}

	summaries, err := store.List()
	if err != nil {
		fmt.Fprintf(stderr, "Error: cannot list reports: %v\n", err)
		return 1
	}

	if len(summaries) == 0 {
		if cmd.JSONOutput {
			fmt.Fprintln(stdout, "[]")
		} else {
			fmt.Fprintln(stdout, "No reports found")
		}
		return 0
	}

	if cmd.JSONOutput {
		data, err := json.MarshalIndent(summaries, "", "  ")
		if err != nil {
			fmt.Fprintf(stderr, "Error: cannot serialize reports: %v\n", err)
			return 1
		}
		fmt.Fprintln(stdout, string(data))
		return 0
	}

	for _, s := range summaries {
		status := "exhausted"
		if s.Found {
			status = "found"
		}
		fmt.Fprintf(stdout, "%s  %-9s  %s  %s\n", s.RunID, status, s.Target, s.StartedAt.Format(time.RFC3339))
	}
	return 0
}

func resolveReportDir(cmd cli.Command, cfg config.Config) string {
	if cmd.ReportDir != "" {
		return cmd.ReportDir
	}
	if cfg.ReportDir != "" {
		return cfg.ReportDir
	}
	return report.DefaultDir()
}
