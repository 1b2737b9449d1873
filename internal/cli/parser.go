// Package cli parses the lastgood command line.
package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrNoTarget is returned when no target file is provided.
var ErrNoTarget = errors.New("no target provided: usage: lastgood [flags] <path[::selector]>")

// ErrNoCommand is returned when neither a command template nor pytest
// mode is provided.
var ErrNoCommand = errors.New("no verification command: provide --cmd or --pytest")

// ErrMissingFlagValue is returned when a flag requires a value but none
// is provided.
var ErrMissingFlagValue = errors.New("flag requires a value")

// Subcommand represents the CLI subcommand.
type Subcommand string

const (
	// SubcommandScan is the default mode: walk history for a working
	// revision.
	SubcommandScan Subcommand = "scan"
	// SubcommandRuns lists and manages stored run reports.
	SubcommandRuns Subcommand = "runs"
)

// Command represents the parsed CLI input.
type Command struct {
	Subcommand Subcommand

	// Scan flags
	File      string // -f/--file or positional: path, optionally path::selector
	Cmd       string // -c/--cmd: verification command template
	Repo      string // -r/--repo: repository location
	NoRestore bool   // --no-restore: leave the workspace where the scan ended
	Verbose   bool   // -v/--verbose
	Pytest    bool   // --pytest: synthesize a pytest invocation
	Select    string // -k/--select: selector override for pytest mode

	// Report flags
	SaveReport bool   // --save-report
	ReportDir  string // --report-dir <dir>

	// Runs subcommand flags
	JSONOutput bool   // --json
	DeleteID   string // --delete <id>
	PruneDays  int    // --prune <days>
}

// ParseArgs parses CLI arguments into a Command. It expects args to be
// os.Args[1:]. Flag validation that depends on config-file defaults
// (e.g. a template supplied by .lastgood.yaml) is left to the caller;
// ParseArgs only rejects structurally invalid input.
func ParseArgs(args []string) (Command, error) {
	if len(args) > 0 && args[0] == string(SubcommandRuns) {
		return parseRuns(args[1:])
	}
	return parseScan(args)
}

func parseScan(args []string) (Command, error) {
	cmd := Command{
		Subcommand: SubcommandScan,
		Repo:       ".",
	}

	i := 0
	for i < len(args) {
		arg := args[i]

		if !strings.HasPrefix(arg, "-") {
			// Positional target, equivalent to --file.
			if cmd.File != "" {
				return Command{}, fmt.Errorf("unexpected argument: %s", arg)
			}
			cmd.File = arg
			i++
			continue
		}

		switch arg {
		case "-f", "--file":
			v, next, err := flagValue(args, i)
			if err != nil {
				return Command{}, err
			}
			cmd.File, i = v, next
		case "-c", "--cmd":
			v, next, err := flagValue(args, i)
			if err != nil {
				return Command{}, err
			}
			cmd.Cmd, i = v, next
		case "-r", "--repo":
			v, next, err := flagValue(args, i)
			if err != nil {
				return Command{}, err
			}
			cmd.Repo, i = v, next
		case "--no-restore":
			cmd.NoRestore = true
			i++
		case "-v", "--verbose":
			cmd.Verbose = true
			i++
		case "--pytest":
			cmd.Pytest = true
			i++
		case "-k", "--select":
			v, next, err := flagValue(args, i)
			if err != nil {
				return Command{}, err
			}
			cmd.Select, i = v, next
		case "--save-report":
			cmd.SaveReport = true
			i++
		case "--report-dir":
			v, next, err := flagValue(args, i)
			if err != nil {
				return Command{}, err
			}
			cmd.ReportDir, i = v, next
		default:
			return Command{}, fmt.Errorf("unknown flag: %s", arg)
		}
	}

	if cmd.File == "" {
		return Command{}, ErrNoTarget
	}

	return cmd, nil
}

func parseRuns(args []string) (Command, error) {
	cmd := Command{Subcommand: SubcommandRuns}

	i := 0
	for i < len(args) {
		arg := args[i]

		switch arg {
		case "--json":
			cmd.JSONOutput = true
			i++
		case "--delete":
			v, next, err := flagValue(args, i)
			if err != nil {
				return Command{}, err
			}
			cmd.DeleteID, i = v, next
		case "--prune":
			v, next, err := flagValue(args, i)
			if err != nil {
				return Command{}, err
			}
			days, convErr := strconv.Atoi(v)
			if convErr != nil || days <= 0 {
				return Command{}, fmt.Errorf("--prune requires a positive number of days, got %q", v)
			}
			cmd.PruneDays, i = days, next
		case "--report-dir":
			v, next, err := flagValue(args, i)
			if err != nil {
				return Command{}, err
			}
			cmd.ReportDir, i = v, next
		default:
			return Command{}, fmt.Errorf("unknown flag: %s", arg)
		}
	}

	return cmd, nil
}

// flagValue returns the value following the flag at index i and the
// index of the next unconsumed argument.
func flagValue(args []string, i int) (string, int, error) {
	if i+1 >= len(args) {
		return "", 0, fmt.Errorf("%w: %s", ErrMissingFlagValue, args[i])
	}
	return args[i+1], i + 2, nil
}
