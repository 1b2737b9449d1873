package cli

import (
	"errors"
	"testing"
)

func TestParseArgs_Scan(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want Command
	}{
		{
			name: "positional target with command",
			args: []string{"-c", "python script.py", "script.py"},
			want: Command{Subcommand: SubcommandScan, File: "script.py", Cmd: "python script.py", Repo: "."},
		},
		{
			name: "long flags",
			args: []string{"--file", "tests/test_a.py", "--cmd", "pytest", "--repo", "/tmp/repo"},
			want: Command{Subcommand: SubcommandScan, File: "tests/test_a.py", Cmd: "pytest", Repo: "/tmp/repo"},
		},
		{
			name: "pytest mode with selector override",
			args: []string{"--pytest", "-k", "TestFoo::test_bar", "tests/test_a.py"},
			want: Command{Subcommand: SubcommandScan, File: "tests/test_a.py", Pytest: true, Select: "TestFoo::test_bar", Repo: "."},
		},
		{
			name: "no restore and verbose",
			args: []string{"-f", "a.py", "-c", "true", "--no-restore", "-v"},
			want: Command{Subcommand: SubcommandScan, File: "a.py", Cmd: "true", Repo: ".", NoRestore: true, Verbose: true},
		},
		{
			name: "report flags",
			args: []string{"a.py", "-c", "true", "--save-report", "--report-dir", "/tmp/runs"},
			want: Command{Subcommand: SubcommandScan, File: "a.py", Cmd: "true", Repo: ".", SaveReport: true, ReportDir: "/tmp/runs"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseArgs(tt.args)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("ParseArgs() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestParseArgs_Runs(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want Command
	}{
		{
			name: "bare list",
			args: []string{"runs"},
			want: Command{Subcommand: SubcommandRuns},
		},
		{
			name: "json list",
			args: []string{"runs", "--json"},
			want: Command{Subcommand: SubcommandRuns, JSONOutput: true},
		},
		{
			name: "delete",
			args: []string{"runs", "--delete", "abc123"},
			want: Command{Subcommand: SubcommandRuns, DeleteID: "abc123"},
		},
		{
			name: "prune",
			args: []string{"runs", "--prune", "30"},
			want: Command{Subcommand: SubcommandRuns, PruneDays: 30},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseArgs(tt.args)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("ParseArgs() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestParseArgs_Errors(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr error
	}{
		{
			name:    "empty args",
			args:    []string{},
			wantErr: ErrNoTarget,
		},
		{
			name:    "flag without value",
			args:    []string{"a.py", "--cmd"},
			wantErr: ErrMissingFlagValue,
		},
		{
			name:    "selector flag without value",
			args:    []string{"a.py", "-k"},
			wantErr: ErrMissingFlagValue,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseArgs(tt.args)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestParseArgs_RejectsUnknownFlag(t *testing.T) {
	if _, err := ParseArgs([]string{"a.py", "--bogus"}); err == nil {
		t.Error("expected error for unknown flag")
	}
	if _, err := ParseArgs([]string{"runs", "--bogus"}); err == nil {
		t.Error("expected error for unknown runs flag")
	}
}

func TestParseArgs_RejectsSecondPositional(t *testing.T) {
	if _, err := ParseArgs([]string{"a.py", "b.py"}); err == nil {
		t.Error("expected error for second positional argument")
	}
}

func TestParseArgs_RejectsBadPrune(t *testing.T) {
	for _, v := range []string{"0", "-3", "soon"} {
		if _, err := ParseArgs([]string{"runs", "--prune", v}); err == nil {
			t.Errorf("expected error for --prune %s", v)
		}
	}
}
